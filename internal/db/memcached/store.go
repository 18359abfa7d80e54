// Package memcached implements db.Store on top of gomemcache.
package memcached

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/lotego/lotego/internal/db"
)

var _ db.Store = (*Store)(nil)

// maxRelativeTTL is the longest expiration memcached treats as relative seconds.
// Larger values are interpreted as absolute unix timestamps.
const maxRelativeTTL = 30 * 24 * time.Hour

// Config holds connection parameters.
type Config struct {
	Addrs   []string
	Timeout time.Duration
}

// client is the subset of *memcache.Client the store uses.
type client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
	Ping() error
}

// Store implements db.Store via gomemcache. The client has no context support;
// ctx is only checked for cancellation before each call.
type Store struct {
	client client
}

// NewStore creates a memcached store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	c := memcache.New(cfg.Addrs...)
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	return &Store{client: c}, nil
}

// Ping checks that every server responds.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if err := s.client.Ping(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases idle connections when the client supports it.
func (s *Store) Close() {
	if c, ok := s.client.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// WaitForReady polls Ping until the servers respond or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for cache: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	item, err := s.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return item.Value, nil
}

// SetWithTTL stores a value. ttl is rounded up to whole seconds and capped at 30 days.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	err := s.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: expirationSeconds(ttl),
	})
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key. Missing keys are not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if err := s.client.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

func expirationSeconds(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0 // never expires
	}
	if ttl > maxRelativeTTL {
		ttl = maxRelativeTTL
	}
	secs := int32(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}
