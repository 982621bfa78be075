package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func searchFixtures() []models.Product {
	return []models.Product{
		{Code: "200", Name: "Piso gris mate", Brand: "Lamosa", Measure: "60x60", Stock: 8,
			Category: &models.CategoryRef{ID: 2, Name: catalog.CeramicsCategory}},
		{Code: "201", Name: "Porcelanato madera", Description: "Para piso interior", Stock: 0,
			Category: &models.CategoryRef{ID: 2, Name: catalog.CeramicsCategory}},
		{Code: "100", Name: "Taladro percutor", Brand: "DeWalt", Stock: 4,
			Category:    &models.CategoryRef{ID: 1, Name: "Herramientas"},
			Subcategory: &models.SubcategoryRef{ID: 10, Name: "Eléctricas"}},
	}
}

func TestSearchCache_RedisSharedBetweenInstances(t *testing.T) {
	_, rdb := setupRedis(t)
	ctx := context.Background()

	want := catalog.RankSearch(searchFixtures(), "piso")
	require.Len(t, want, 2)

	writer := NewSearchCache(rdb, time.Minute)
	writer.Set(ctx, "piso", want)

	reader := NewSearchCache(rdb, time.Minute)
	assert.Equal(t, 0, reader.Len())

	got, tier, ok := reader.Get(ctx, "piso")
	require.True(t, ok)
	assert.Equal(t, observability.CacheTierRedis, tier)
	assert.Equal(t, want, got)

	// A redis hit fills the in-process tier.
	assert.Equal(t, 1, reader.Len())
	got, tier, ok = reader.Get(ctx, "piso")
	require.True(t, ok)
	assert.Equal(t, observability.CacheTierMemory, tier)
	assert.Equal(t, want, got)
}

func TestSearchCache_RedisEntryExpires(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	NewSearchCache(rdb, time.Minute).Set(ctx, "piso", catalog.RankSearch(searchFixtures(), "piso"))
	assert.Equal(t, time.Minute, mr.TTL(searchKeyPrefix+"piso"))

	_, tier, ok := NewSearchCache(rdb, time.Minute).Get(ctx, "piso")
	require.True(t, ok)
	assert.Equal(t, observability.CacheTierRedis, tier)

	mr.FastForward(time.Minute + time.Second)

	_, tier, ok = NewSearchCache(rdb, time.Minute).Get(ctx, "piso")
	assert.False(t, ok)
	assert.Equal(t, observability.CacheTierMiss, tier)
}

func TestSearchCache_RedisCorruptEntryIsMiss(t *testing.T) {
	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set(searchKeyPrefix+"piso", "not json"))

	c := NewSearchCache(rdb, time.Minute)
	got, tier, ok := c.Get(context.Background(), "piso")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, observability.CacheTierMiss, tier)
	assert.Equal(t, 0, c.Len())
}

func TestSearchCache_RedisAbsentKeyIsMiss(t *testing.T) {
	_, rdb := setupRedis(t)

	c := NewSearchCache(rdb, time.Minute)
	_, tier, ok := c.Get(context.Background(), "taladro")
	assert.False(t, ok)
	assert.Equal(t, observability.CacheTierMiss, tier)
}

func TestSearchCache_RedisDownFallsBackToMemory(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()
	mr.Close()

	c := NewSearchCache(rdb, time.Minute)
	want := catalog.RankSearch(searchFixtures(), "taladro")
	c.Set(ctx, "taladro", want)

	got, tier, ok := c.Get(ctx, "taladro")
	require.True(t, ok)
	assert.Equal(t, observability.CacheTierMemory, tier)
	assert.Equal(t, want, got)

	_, tier, ok = c.Get(ctx, "piso")
	assert.False(t, ok)
	assert.Equal(t, observability.CacheTierMiss, tier)
}
