// Package pagecache stores listing search result pages in a key-value store.
package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lotego/lotego/internal/db"
	"github.com/lotego/lotego/internal/domain/search/result"
)

// DefaultKeyPrefix namespaces cache keys in shared backends.
const DefaultKeyPrefix = "lotego:search:"

// store is the consumer interface for the page cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache is a best-effort page cache. Backend errors are logged and reported as misses.
type Cache struct {
	store      store
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a page cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly; nil disables counting.
func New(s store, prefix string, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Cache{
		store:      s,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached page for a query key.
func (c *Cache) Get(ctx context.Context, key string) (result.Page, bool) {
	k := c.cacheKey(key)

	data, err := c.store.Get(ctx, k)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached page", zap.String("key", k), zap.Error(err))
		}
		c.inc("miss")
		return result.Page{}, false
	}

	var row pageRow
	if err := json.Unmarshal(data, &row); err != nil {
		c.logger.Warn("Failed to parse cached page", zap.String("key", k), zap.Error(err))
		c.inc("miss")
		return result.Page{}, false
	}

	c.inc("hit")
	return pageFromRow(row), true
}

// Set stores a page under a query key.
func (c *Cache) Set(ctx context.Context, key string, p result.Page, ttl time.Duration) {
	k := c.cacheKey(key)

	data, err := json.Marshal(pageToRow(p))
	if err != nil {
		c.logger.Warn("Failed to encode page", zap.String("key", k), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, k, data, ttl); err != nil {
		c.logger.Warn("Failed to cache page", zap.String("key", k), zap.Error(err))
	}
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the query key so every backend gets a short, safe key.
func (c *Cache) cacheKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return c.prefix + hex.EncodeToString(h[:])
}
