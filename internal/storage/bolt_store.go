package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

const (
	sessionBucket    = "sessions"
	expiryValueBytes = 8
)

// boltStore implements a Store backed by BoltDB. Each value is an 8 byte
// big-endian expiry followed by the JSON encoded Snapshot.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	snapshotTTL     time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open bbolt db %s: %w", ErrUnavailable, path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		snapshotTTL:     opts.SnapshotTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// PutSession stores info under its name with a fresh expiry.
func (b *boltStore) PutSession(info waha.SessionInfo) error {
	if b == nil || b.db == nil {
		return nil
	}
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return fmt.Errorf("session name is empty")
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	payload, err := json.Marshal(Snapshot{Session: info, FetchedAt: now.UTC()})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	value := make([]byte, expiryValueBytes, expiryValueBytes+len(payload))
	binary.BigEndian.PutUint64(value, uint64(now.Add(b.snapshotTTL).Unix()))
	value = append(value, payload...)

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		return bucket.Put([]byte(name), value)
	})
}

// GetSession returns the unexpired snapshot for name. Expired entries are
// removed on read.
func (b *boltStore) GetSession(name string) (Snapshot, bool, error) {
	if b == nil || b.db == nil {
		return Snapshot{}, false, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return Snapshot{}, false, err
	}

	var (
		snap  Snapshot
		found bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}

		key := []byte(name)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		s, ok := decodeValue(value, now)
		if !ok {
			return bucket.Delete(key)
		}
		snap, found = s, true
		return nil
	})
	return snap, found, err
}

// ListSessions returns every unexpired snapshot ordered by session name.
func (b *boltStore) ListSessions() ([]Snapshot, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	var out []Snapshot
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		return bucket.ForEach(func(_, v []byte) error {
			if s, ok := decodeValue(v, now); ok {
				out = append(out, s)
			}
			return nil
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Session.Name < out[j].Session.Name })
	return out, err
}

// DeleteSession drops the snapshot for name, if any.
func (b *boltStore) DeleteSession(name string) error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}
		return bucket.Delete([]byte(name))
	})
}

// maybeCleanupExpired removes expired snapshots on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeValue returns the snapshot in value if it has not expired at now.
func decodeValue(value []byte, now time.Time) (Snapshot, bool) {
	expiry, ok := decodeExpiry(value)
	if !ok || !expiry.After(now) {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(value[expiryValueBytes:], &snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

// decodeExpiry decodes the expiry time from the stored value prefix.
func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
