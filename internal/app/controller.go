package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samvad-hq/waha-client/internal/config"
	"github.com/samvad-hq/waha-client/internal/storage"
	"github.com/samvad-hq/waha-client/pkg/httpclient"
	"github.com/samvad-hq/waha-client/pkg/publishers"
	"github.com/samvad-hq/waha-client/pkg/waha"
)

// Controller ties the gateway client to the local session cache and the
// lifecycle event publishers. Every CLI command goes through it.
type Controller struct {
	cfg     *config.Config
	client  *waha.Client
	store   storage.Store
	fanout  *publishers.Fanout
	metrics *prometheus.Registry
	log     waha.Logger
}

// Option customizes controller construction.
type Option func(*options)

type options struct {
	transport httpclient.Client
}

// WithTransport replaces the resty transport built from config. A
// preconfigured *resty.Client can be passed through httpclient.NewRestyClientFrom.
func WithTransport(t httpclient.Client) Option {
	return func(o *options) { o.transport = t }
}

// NewController builds a controller from config.
func NewController(ctx context.Context, cfg *config.Config, log waha.Logger, opts ...Option) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = waha.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		rc := httpclient.NewRestyHTTPClient(cfg.RequestTimeout)
		if cfg.AppName != "" {
			rc.SetHeader("User-Agent", cfg.AppName)
		}
		transport = httpclient.NewRestyClientFrom(rc)
	}

	var reg *prometheus.Registry
	if cfg.MetricsEnabled {
		reg = prometheus.NewRegistry()
		instrumented, err := httpclient.NewInstrumented(transport, reg)
		if err != nil {
			return nil, fmt.Errorf("init metrics: %w", err)
		}
		transport = instrumented
	}

	client := waha.NewClient(waha.Config{
		BaseURL: cfg.WAHAURL,
		APIKey:  cfg.WAHAAPIKey,
		Timeout: cfg.RequestTimeout,
	}, waha.WithTransport(transport), waha.WithLogger(log))

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.CacheType, cfg.CachePath, storage.Options{
		SnapshotTTL:     cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanup,
	})
	if errors.Is(err, storage.ErrUnavailable) {
		log.WarnObj("session cache unavailable, continuing without it", "storage_error", map[string]any{
			"type":  cfg.CacheType,
			"path":  cfg.CachePath,
			"error": err.Error(),
		})
		store, err = storage.NewNoop(), nil
	}
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.DebugObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.CacheType,
		"path":                     cfg.CachePath,
		"ttl_seconds":              int(cfg.CacheTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.CacheCleanup.Seconds()),
	})

	return &Controller{
		cfg:     cfg,
		client:  client,
		store:   store,
		fanout:  fanout,
		metrics: reg,
		log:     log,
	}, nil
}

// buildFanout loads enabled publishers. An empty path yields an empty fanout.
func buildFanout(ctx context.Context, path string, log waha.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.DebugObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Client exposes the underlying gateway client.
func (c *Controller) Client() *waha.Client { return c.client }

// MetricsHandler serves transport metrics, or returns nil when metrics are disabled.
func (c *Controller) MetricsHandler() http.Handler {
	if c.metrics == nil {
		return nil
	}
	return promhttp.HandlerFor(c.metrics, promhttp.HandlerOpts{})
}

// Close releases publishers and the session cache.
func (c *Controller) Close() error {
	if c == nil {
		return nil
	}
	if err := c.fanout.Close(); err != nil {
		c.log.ErrorObj("publishers close failed", "error", err)
	}
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err)
		return err
	}
	return nil
}

// publish delivers a lifecycle event. Delivery failures are logged, never returned.
func (c *Controller) publish(ctx context.Context, typ, session string, status waha.SessionStatus) {
	if c.fanout.Size() == 0 {
		return
	}
	evt := publishers.NewEvent(typ, c.client.Config().BaseURL, session, status)
	delivered, err := c.fanout.Publish(ctx, evt)
	if err != nil {
		c.log.WarnObj("event delivery failed", "publish_error", map[string]any{
			"event":     typ,
			"session":   session,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	c.log.DebugObj("event delivered", "publish_meta", map[string]any{
		"event":     typ,
		"session":   session,
		"delivered": delivered,
	})
}

// cache stores a snapshot, logging instead of failing the command.
func (c *Controller) cache(info waha.SessionInfo) {
	if err := c.store.PutSession(info); err != nil {
		c.log.WarnObj("session cache write failed", "cache_error", map[string]any{
			"session": info.Name,
			"error":   err.Error(),
		})
	}
}

func (c *Controller) uncache(name string) {
	if err := c.store.DeleteSession(name); err != nil {
		c.log.WarnObj("session cache delete failed", "cache_error", map[string]any{
			"session": name,
			"error":   err.Error(),
		})
	}
}

func sessionName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return waha.DefaultSessionName
	}
	return name
}
