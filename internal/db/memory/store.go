// Package memory implements db.Store as an in-process LRU backed by ccache.
package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/lotego/lotego/internal/db"
)

var _ db.Store = (*Store)(nil)

// DefaultMaxSize is the entry count used when Config.MaxSize is not set.
const DefaultMaxSize = 1000

// noExpiry stands in for ttl <= 0; ccache entries always carry a deadline.
const noExpiry = 100 * 365 * 24 * time.Hour

// Config holds cache sizing.
type Config struct {
	MaxSize int64
}

// Store is a process-local expiring key-value store.
type Store struct {
	cache  *ccache.Cache[[]byte]
	closed atomic.Bool
}

// NewStore creates an in-memory store.
func NewStore(cfg Config) *Store {
	size := cfg.MaxSize
	if size <= 0 {
		size = DefaultMaxSize
	}
	return &Store{cache: ccache.New(ccache.Configure[[]byte]().MaxSize(size))}
}

// Ping reports ErrClosed after Close, nil otherwise.
func (s *Store) Ping(_ context.Context) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// Close stops the background eviction worker.
func (s *Store) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.cache.Stop()
	}
}

// WaitForReady returns immediately; the store is ready once constructed.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Get returns the value for key. Expired entries are reported as missing.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrClosed}
	}
	item := s.cache.Get(key)
	if item == nil || item.Expired() {
		return nil, db.ErrKeyNotFound
	}
	return item.Value(), nil
}

// SetWithTTL stores a copy of value. ttl <= 0 stores without expiry.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpSet, Err: db.ErrClosed}
	}
	if ttl <= 0 {
		ttl = noExpiry
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	s.cache.Set(key, buf, ttl)
	return nil
}

// Del removes key if present.
func (s *Store) Del(_ context.Context, key string) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpDel, Err: db.ErrClosed}
	}
	s.cache.Delete(key)
	return nil
}
