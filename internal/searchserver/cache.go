package searchserver

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/go-librarian/librarian/pkg/config"
	pkgredis "github.com/go-librarian/librarian/pkg/redis"
)

// CacheKeyPrefix namespaces every query-result cache key. cmd/indexer
// imports this to build the glob pattern it flushes after an ingest
// mutates the index a running query server might be caching against.
const CacheKeyPrefix = "librarian:query:"

// QueryCache fronts RunQuery with a Redis-backed result cache and dedupes
// concurrent identical queries via singleflight, so a burst of requests for
// the same query string triggers exactly one RunQuery call.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewQueryCache wraps client for query-result caching.
func NewQueryCache(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

func (c *QueryCache) get(ctx context.Context, query string) ([]string, bool) {
	data, err := c.client.Get(ctx, c.buildKey(query))
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Warn("cache get failed", "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		c.logger.Warn("cache unmarshal failed", "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return names, true
}

func (c *QueryCache) set(ctx context.Context, query string, names []string) {
	data, err := json.Marshal(names)
	if err != nil {
		c.logger.Warn("cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.buildKey(query), data, c.cfg.CacheTTL); err != nil {
		c.logger.Warn("cache set failed", "error", err)
	}
}

// GetOrCompute returns the cached result for query if present, else calls
// compute and populates the cache. The bool result reports whether the
// value came from cache.
func (c *QueryCache) GetOrCompute(ctx context.Context, query string, compute func() ([]string, error)) ([]string, bool, error) {
	if names, ok := c.get(ctx, query); ok {
		return names, true, nil
	}
	key := c.buildKey(query)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if names, ok := c.get(ctx, query); ok {
			return names, nil
		}
		names, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(ctx, query, names)
		return names, nil
	})
	if err != nil {
		return nil, false, err
	}
	names, _ := val.([]string)
	return names, false, nil
}

// Stats returns cumulative hit/miss counts.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s%x", CacheKeyPrefix, sum[:16])
}
