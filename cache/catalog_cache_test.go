package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelo0987/gigante-storefront/models"
)

func snapshotOf(names ...string) Snapshot {
	products := make([]models.Product, len(names))
	for i, n := range names {
		products[i] = models.Product{Code: models.ProductCode(n), Name: n}
	}
	return Snapshot{Products: products, Categories: []models.Category{}}
}

func TestCatalogCache_LoadsOnceWithinTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewCatalogCache(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls.Add(1)
		return snapshotOf("taladro"), nil
	})

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	second, err := c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first.Version, second.Version)
	assert.NotEmpty(t, first.Version)
	assert.Len(t, second.Products, 1)
}

func TestCatalogCache_ReloadsAfterTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewCatalogCache(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls.Add(1)
		return snapshotOf("taladro"), nil
	})
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestCatalogCache_ConcurrentMissesShareOneFetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCatalogCache(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls.Add(1)
		<-release
		return snapshotOf("martillo"), nil
	})

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background())
			errs <- err
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCatalogCache_FailedLoadIsNotCached(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	c := NewCatalogCache(time.Minute, func(ctx context.Context) (Snapshot, error) {
		if calls.Add(1) == 1 {
			return Snapshot{}, boom
		}
		return snapshotOf("sierra"), nil
	})

	_, err := c.Get(context.Background())
	require.ErrorIs(t, err, boom)

	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Products, 1)
}

func TestCatalogCache_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c := NewCatalogCache(time.Minute, func(ctx context.Context) (Snapshot, error) {
		<-release
		return snapshotOf("x"), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCatalogCache_Invalidate(t *testing.T) {
	var calls atomic.Int32
	c := NewCatalogCache(time.Minute, func(ctx context.Context) (Snapshot, error) {
		calls.Add(1)
		return snapshotOf("x"), nil
	})

	_, _ = c.Get(context.Background())
	c.Invalidate()
	_, ok := c.Peek()
	assert.False(t, ok)

	_, _ = c.Get(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestVersion_ChangesWithContent(t *testing.T) {
	a := snapshotOf("a", "b")
	b := snapshotOf("a", "b")
	c := snapshotOf("a", "c")

	assert.Equal(t, Version(a.Products, a.Categories), Version(b.Products, b.Categories))
	assert.NotEqual(t, Version(a.Products, a.Categories), Version(c.Products, c.Categories))
}
