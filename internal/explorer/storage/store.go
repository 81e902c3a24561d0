// Package storage persists the explorer index in pebble and serves its read queries.
package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/goccy/go-json"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"go.uber.org/zap"
)

const defaultCacheSize = 256 << 20

// Config configures the pebble store.
type Config struct {
	Dir string
	// FS overrides the filesystem; tests use vfs.NewMem().
	FS        vfs.FS
	CacheSize int64
	// NoSync trades durability of the last writes for throughput during initial sync.
	NoSync bool
}

// Store is the storage writer. Writes are serialized; reads are lock-free.
type Store struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	metrics   Metrics
	logger    *zap.Logger

	writeMu sync.Mutex
}

// Open opens (or creates) the store at cfg.Dir.
func Open(cfg Config, metrics Metrics, logger *zap.Logger) (*Store, error) {
	opts := &pebble.Options{
		FS:           cfg.FS,
		MaxOpenFiles: 500,
	}
	if cfg.FS == nil {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache := pebble.NewCache(cacheSize)
	defer cache.Unref()
	opts.Cache = cache

	db, err := pebble.Open(cfg.Dir, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open pebble: %w", chain.ErrStorageUnavailable, err)
	}

	writeOpts := pebble.Sync
	if cfg.NoSync {
		writeOpts = pebble.NoSync
	}
	return &Store{
		db:        db,
		writeOpts: writeOpts,
		metrics:   metrics,
		logger:    logger.Named("storage"),
	}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) observe(operation string, err error, started time.Time) {
	if errors.Is(err, chain.ErrNotFound) {
		err = nil
	}
	s.metrics.Observe(operation, err, started)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", chain.ErrStorageUnavailable, op, err)
}

// getJSON decodes the value at key into v and reports whether the key existed.
func getJSON(r pebble.Reader, key []byte, v any) (bool, error) {
	value, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("get", err)
	}
	defer closer.Close()

	if err := json.Unmarshal(value, v); err != nil {
		return false, storageErr(fmt.Sprintf("decode %q", key), err)
	}
	return true, nil
}

func getString(r pebble.Reader, key []byte) (string, bool, error) {
	value, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr("get", err)
	}
	defer closer.Close()
	return string(value), true, nil
}

func setJSON(b *pebble.Batch, key []byte, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return storageErr(fmt.Sprintf("encode %q", key), err)
	}
	if err := b.Set(key, value, nil); err != nil {
		return storageErr("set", err)
	}
	return nil
}

func deleteKey(b *pebble.Batch, key []byte) error {
	if err := b.Delete(key, nil); err != nil {
		return storageErr("delete", err)
	}
	return nil
}

// scan visits every key with prefix in ascending order, or descending when reverse is set.
// Returning false from fn stops the scan.
func scan(r pebble.Reader, prefix []byte, reverse bool, fn func(key, value []byte) (bool, error)) error {
	iter, err := r.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return storageErr("new iterator", err)
	}

	valid := iter.First()
	if reverse {
		valid = iter.Last()
	}
	for ; valid; valid = step(iter, reverse) {
		more, err := fn(iter.Key(), iter.Value())
		if err != nil {
			_ = iter.Close()
			return err
		}
		if !more {
			break
		}
	}
	if err := iter.Close(); err != nil {
		return storageErr("close iterator", err)
	}
	return nil
}

func step(iter *pebble.Iterator, reverse bool) bool {
	if reverse {
		return iter.Prev()
	}
	return iter.Next()
}

func listJSON[T any](r pebble.Reader, prefix []byte) ([]T, error) {
	var items []T
	err := scan(r, prefix, false, func(key, value []byte) (bool, error) {
		var item T
		if err := json.Unmarshal(value, &item); err != nil {
			return false, storageErr(fmt.Sprintf("decode %q", key), err)
		}
		items = append(items, item)
		return true, nil
	})
	return items, err
}
