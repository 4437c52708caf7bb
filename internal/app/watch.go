package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/waha-client/pkg/publishers"
	"github.com/samvad-hq/waha-client/pkg/waha"
)

// Watch polls the gateway every interval until ctx is cancelled, refreshing
// the cache and publishing a status_changed event whenever a session moves
// to a new status.
func (c *Controller) Watch(ctx context.Context, interval time.Duration) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("controller is not initialized")
	}
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}

	c.log.InfoObj("watch loop starting", "watch_state", map[string]any{
		"gateway":          c.client.Config().BaseURL,
		"publishers_count": c.fanout.Size(),
		"interval":         interval.String(),
	})

	if err := c.pollOnce(ctx); err != nil {
		c.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := c.pollOnce(ctx); err != nil {
				c.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

// pollOnce lists every session and reports status transitions against the
// cached snapshots.
func (c *Controller) pollOnce(ctx context.Context) error {
	start := time.Now()
	list, err := c.client.ListAllSessions(ctx, nil)
	if err != nil {
		return err
	}

	changed := 0
	for _, info := range list {
		prev, found, err := c.store.GetSession(info.Name)
		if err != nil {
			c.log.WarnObj("session cache read failed", "cache_error", map[string]any{
				"session": info.Name,
				"error":   err.Error(),
			})
		}
		c.cache(info)
		if statusChanged(prev.Session, found, info) {
			changed++
			c.publish(ctx, publishers.EventStatusChanged, info.Name, info.Status)
		}
	}

	c.log.DebugObj("poll completed", "poll_meta", map[string]any{
		"sessions":   len(list),
		"changed":    changed,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func statusChanged(prev waha.SessionInfo, found bool, cur waha.SessionInfo) bool {
	return !found || prev.Status != cur.Status
}
