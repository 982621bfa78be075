package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/guelo0987/gigante-storefront/models"
)

const DefaultCatalogTTL = 5 * time.Minute

// Snapshot is one fetch of the product list and category tree. Snapshots
// are shared between requests and must be treated as read-only.
type Snapshot struct {
	Products   []models.Product
	Categories []models.Category
	Version    string
	FetchedAt  time.Time
}

// Loader fetches a fresh snapshot from the backend.
type Loader func(ctx context.Context) (Snapshot, error)

// ── Catalog snapshot cache ───────────────────────────────────────────────────
// Concurrent misses share a single upstream fetch. Failed loads are not
// cached, so the next request retries.

type CatalogCache struct {
	ttl  time.Duration
	load Loader
	now  func() time.Time

	mu    sync.RWMutex
	entry *Snapshot

	group singleflight.Group
}

func NewCatalogCache(ttl time.Duration, load Loader) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{ttl: ttl, load: load, now: time.Now}
}

// Peek returns the cached snapshot if it is still fresh.
func (c *CatalogCache) Peek() (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry != nil && c.now().Sub(c.entry.FetchedAt) < c.ttl {
		return *c.entry, true
	}
	return Snapshot{}, false
}

// Get returns the cached snapshot, loading it when missing or expired.
// The load runs detached from ctx cancellation so that one caller giving
// up does not fail the others waiting on the same fetch.
func (c *CatalogCache) Get(ctx context.Context) (Snapshot, error) {
	if snap, ok := c.Peek(); ok {
		return snap, nil
	}

	ch := c.group.DoChan("catalog", func() (any, error) {
		if snap, ok := c.Peek(); ok {
			return snap, nil
		}
		snap, err := c.load(context.WithoutCancel(ctx))
		if err != nil {
			return Snapshot{}, err
		}
		if snap.Version == "" {
			snap.Version = Version(snap.Products, snap.Categories)
		}
		snap.FetchedAt = c.now()
		c.set(snap)
		return snap, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		return res.Val.(Snapshot), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (c *CatalogCache) set(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &snap
}

// Invalidate drops the cached snapshot.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// Version fingerprints a catalog so clients can tell whether it changed.
func Version(products []models.Product, categories []models.Category) string {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(products)
	_ = enc.Encode(categories)
	return strconv.FormatUint(h.Sum64(), 16)
}
