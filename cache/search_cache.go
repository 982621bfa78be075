package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
)

const (
	DefaultSearchTTL = 10 * time.Minute

	// maxSearchEntries bounds the in-process tier; it is emptied when full.
	maxSearchEntries = 4096

	searchKeyPrefix = "store:search:"
)

// ── Search results cache ─────────────────────────────────────────────────────
// Keyed by the raw query string: "Piso" and "piso" are separate entries.
// In-process entries live until the cache is reset, so results can go
// stale when the product list changes. The optional Redis tier shares
// entries between instances and expires them after ttl.

type SearchCache struct {
	mu      sync.RWMutex
	entries map[string][]catalog.RankedProduct

	redis *redis.Client
	ttl   time.Duration
}

// cachedResult is the Redis encoding of a ranked product. RankedProduct
// cannot round-trip directly because Product's UnmarshalJSON is promoted.
type cachedResult struct {
	Product   models.Product `json:"product"`
	Relevance int            `json:"relevance"`
}

// NewSearchCache creates a cache. rdb may be nil for an in-process cache only.
func NewSearchCache(rdb *redis.Client, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &SearchCache{
		entries: make(map[string][]catalog.RankedProduct),
		redis:   rdb,
		ttl:     ttl,
	}
}

// Get looks query up and reports which tier answered.
func (c *SearchCache) Get(ctx context.Context, query string) ([]catalog.RankedProduct, string, bool) {
	c.mu.RLock()
	results, ok := c.entries[query]
	c.mu.RUnlock()
	if ok {
		return results, observability.CacheTierMemory, true
	}

	if c.redis == nil {
		return nil, observability.CacheTierMiss, false
	}

	raw, err := c.redis.Get(ctx, searchKeyPrefix+query).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("search cache redis get failed", zap.Error(err))
		}
		return nil, observability.CacheTierMiss, false
	}

	var cached []cachedResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		zap.L().Warn("search cache entry corrupt", zap.String("query", query), zap.Error(err))
		return nil, observability.CacheTierMiss, false
	}
	results = make([]catalog.RankedProduct, len(cached))
	for i, r := range cached {
		results[i] = catalog.RankedProduct{Product: r.Product, Relevance: r.Relevance}
	}

	c.storeLocal(query, results)
	return results, observability.CacheTierRedis, true
}

// Set stores results for query in every tier.
func (c *SearchCache) Set(ctx context.Context, query string, results []catalog.RankedProduct) {
	c.storeLocal(query, results)

	if c.redis == nil {
		return
	}
	cached := make([]cachedResult, len(results))
	for i, r := range results {
		cached[i] = cachedResult{Product: r.Product, Relevance: r.Relevance}
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, searchKeyPrefix+query, raw, c.ttl).Err(); err != nil {
		zap.L().Warn("search cache redis set failed", zap.Error(err))
	}
}

func (c *SearchCache) storeLocal(query string, results []catalog.RankedProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[query]; !exists && len(c.entries) >= maxSearchEntries {
		c.entries = make(map[string][]catalog.RankedProduct)
	}
	c.entries[query] = results
}

// Len returns the number of in-process entries.
func (c *SearchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset empties the in-process tier.
func (c *SearchCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string][]catalog.RankedProduct)
	c.mu.Unlock()
}
