package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelo0987/gigante-storefront/cache"
)

func TestSearchService_ShortQuerySkipsEverything(t *testing.T) {
	backend := newFakeBackend()
	svc := NewSearchService(newTestCatalog(backend), cache.NewSearchCache(nil, 0), nil)

	res, err := svc.Search(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.NotNil(t, res.Results)
	assert.Zero(t, backend.productCalls.Load())
}

func TestSearchService_RanksAndCaches(t *testing.T) {
	backend := newFakeBackend()
	results := cache.NewSearchCache(nil, 0)
	svc := NewSearchService(newTestCatalog(backend), results, nil)

	first, err := svc.Search(context.Background(), "piso")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.Len(t, first.Results, 2)
	assert.Equal(t, "200", first.Results[0].Code)
	assert.Equal(t, 12, first.Results[0].Relevance)

	second, err := svc.Search(context.Background(), "piso")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, 1, results.Len())
}

func TestSearchService_CacheSurvivesCatalogChange(t *testing.T) {
	backend := newFakeBackend()
	catalogSvc := newTestCatalog(backend)
	svc := NewSearchService(catalogSvc, cache.NewSearchCache(nil, 0), nil)

	before, err := svc.Search(context.Background(), "taladro")
	require.NoError(t, err)
	require.Len(t, before.Results, 1)

	backend.products = backend.products[1:]
	catalogSvc.Invalidate()

	after, err := svc.Search(context.Background(), "taladro")
	require.NoError(t, err)
	assert.True(t, after.Cached)
	assert.Equal(t, before.Results, after.Results)
}

func TestSearchService_UpstreamFailureIsNotCached(t *testing.T) {
	backend := newFakeBackend()
	backend.err = ErrUpstream
	results := cache.NewSearchCache(nil, 0)
	svc := NewSearchService(newTestCatalog(backend), results, nil)

	res, err := svc.Search(context.Background(), "piso")
	require.ErrorIs(t, err, ErrUpstream)
	assert.True(t, res.UpstreamError)
	assert.Empty(t, res.Results)
	assert.Zero(t, results.Len())
}
