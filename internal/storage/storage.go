package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

// Package storage keeps the last-known gateway session snapshots locally.

// Snapshot is a session as last reported by the gateway.
type Snapshot struct {
	Session   waha.SessionInfo `json:"session"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Store caches session snapshots by session name.
type Store interface {
	Close() error
	PutSession(info waha.SessionInfo) error
	GetSession(name string) (Snapshot, bool, error)
	ListSessions() ([]Snapshot, error)
	DeleteSession(name string) error
}

// ErrUnavailable marks a configured backend that could not be opened, for
// example because another process holds the database lock.
var ErrUnavailable = errors.New("storage unavailable")

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	SnapshotTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultSnapshotTTL     = 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return NewNoop(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = defaultSnapshotTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// NewNoop returns a Store that keeps nothing.
func NewNoop() Store { return noopStore{} }

type noopStore struct{}

func (noopStore) Close() error                              { return nil }
func (noopStore) PutSession(waha.SessionInfo) error         { return nil }
func (noopStore) GetSession(string) (Snapshot, bool, error) { return Snapshot{}, false, nil }
func (noopStore) ListSessions() ([]Snapshot, error)         { return nil, nil }
func (noopStore) DeleteSession(string) error                { return nil }
