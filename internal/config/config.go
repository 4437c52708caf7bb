package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	WAHAURL               string        `mapstructure:"waha_url"`
	WAHAAPIKey            string        `mapstructure:"waha_api_key"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	PublishersFile        string        `mapstructure:"publishers_file"`
	MetricsEnabled        bool          `mapstructure:"metrics_enabled"`
	MetricsAddr           string        `mapstructure:"metrics_addr"`
	WatchIntervalSeconds  int64         `mapstructure:"watch_interval_seconds"`
	WatchInterval         time.Duration `mapstructure:"-"`

	CacheType     string        `mapstructure:"cache_type"`
	CachePath     string        `mapstructure:"cache_path"`
	CacheTTLSecs  int64         `mapstructure:"cache_ttl_seconds"`
	CacheTTL      time.Duration `mapstructure:"-"`
	CacheCleanSec int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheCleanup  time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "wahactl")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("waha_url", "http://localhost:3000")
	v.SetDefault("waha_api_key", "")
	v.SetDefault("request_timeout_seconds", 0) // transport default
	v.SetDefault("publishers_file", "")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("watch_interval_seconds", 30)
	v.SetDefault("cache_type", "bbolt")
	v.SetDefault("cache_path", "./data/sessions.db")
	v.SetDefault("cache_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64(time.Hour/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.WAHAURL = strings.TrimSpace(cfg.WAHAURL)
	if cfg.WAHAURL == "" {
		return nil, fmt.Errorf("waha_url must not be empty")
	}
	if u, err := url.Parse(cfg.WAHAURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid waha_url %q", cfg.WAHAURL)
	}

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.WatchIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid watch_interval_seconds (must be positive seconds)")
	}
	cfg.WatchInterval = time.Duration(cfg.WatchIntervalSeconds) * time.Second

	if cfg.CacheTTLSecs <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanSec <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSecs) * time.Second
	cfg.CacheCleanup = time.Duration(cfg.CacheCleanSec) * time.Second

	return &cfg, nil
}
