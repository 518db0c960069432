package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

// fakeListingCatalog serves a fixed number of products, paged the way the
// store api pages, and counts every fetch it receives.
type fakeListingCatalog struct {
	mu       sync.Mutex
	total    int
	category string
	fetches  []request.Listing
	err      error
}

func (f *fakeListingCatalog) ListProducts(
	_ context.Context,
	param request.Listing,
) ([]response.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, param)
	if f.err != nil {
		return nil, f.err
	}

	start := (param.Page - 1) * param.Limit
	if start >= f.total {
		return []response.Product{}, nil
	}
	end := start + param.Limit
	if end > f.total {
		end = f.total
	}
	products := make([]response.Product, 0, end-start)
	for i := start; i < end; i++ {
		products = append(products, response.Product{
			Id:       response.ProductId(strconv.Itoa(i + 1)),
			Title:    fmt.Sprintf("Product %d", i+1),
			Price:    decimal.NewFromInt(int64(i + 1)),
			Category: f.category,
		})
	}
	return products, nil
}

func (f *fakeListingCatalog) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}

func TestLoadNextPageAppends(t *testing.T) {
	catalog := &fakeListingCatalog{total: 20}
	engine := NewListingEngine(catalog, &notification.Recorder{}, 8)
	c := context.Background()

	require.NoError(t, engine.LoadNextPage(c))
	assert.Len(t, engine.Products(), 8)
	assert.Equal(t, 2, engine.Page())
	assert.Equal(t, StateIdle, engine.State())

	require.NoError(t, engine.LoadNextPage(c))
	products := engine.Products()
	require.Len(t, products, 16)
	// pages only ever append, earlier entries keep their position
	assert.Equal(t, response.ProductId("1"), products[0].Id)
	assert.Equal(t, response.ProductId("9"), products[8].Id)
}

func TestLoadNextPageEmptyPageExhausts(t *testing.T) {
	catalog := &fakeListingCatalog{total: 10}
	engine := NewListingEngine(catalog, &notification.Recorder{}, 8)
	c := context.Background()

	require.NoError(t, engine.LoadNextPage(c))
	require.NoError(t, engine.LoadNextPage(c))
	assert.Len(t, engine.Products(), 10)

	require.NoError(t, engine.LoadNextPage(c))
	assert.Equal(t, StateExhausted, engine.State())
	assert.False(t, engine.HasMore())

	// further scroll hooks never reach the catalog again
	fetched := catalog.fetchCount()
	require.NoError(t, engine.OnScrollNearBottom(c))
	require.NoError(t, engine.OnScrollNearBottom(c))
	assert.Equal(t, fetched, catalog.fetchCount())
}

func TestLoadNextPageErrorNotifiesAndStaysIdle(t *testing.T) {
	catalog := &fakeListingCatalog{total: 20, err: fmt.Errorf("connection refused")}
	recorder := &notification.Recorder{}
	engine := NewListingEngine(catalog, recorder, 8)
	c := context.Background()

	assert.Error(t, engine.LoadNextPage(c))
	assert.Equal(t, StateIdle, engine.State())
	assert.Empty(t, engine.Products())
	assert.Equal(t, []string{"Failed while loading products"}, recorder.Errors)

	// idle again, so a retry goes back out
	catalog.mu.Lock()
	catalog.err = nil
	catalog.mu.Unlock()
	require.NoError(t, engine.LoadNextPage(c))
	assert.Len(t, engine.Products(), 8)
}

func TestSetFilterResetsToFirstPage(t *testing.T) {
	catalog := &fakeListingCatalog{total: 20}
	engine := NewListingEngine(catalog, &notification.Recorder{}, 8)
	c := context.Background()

	require.NoError(t, engine.LoadNextPage(c))
	require.NoError(t, engine.LoadNextPage(c))
	require.Len(t, engine.Products(), 16)

	catalog.mu.Lock()
	catalog.category = "electronics"
	catalog.total = 6
	catalog.mu.Unlock()

	require.NoError(t, engine.SetFilter(c, "electronics", ""))

	// the old accumulation is gone, only the new filter's first page remains
	products := engine.Products()
	require.Len(t, products, 6)
	assert.Equal(t, "electronics", products[0].Category)
	assert.Equal(t, 2, engine.Page())

	last := catalog.fetches[len(catalog.fetches)-1]
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, "electronics", last.Category)
}

type reentrantCatalog struct {
	inner   *fakeListingCatalog
	onFetch func(c context.Context)
}

func (r *reentrantCatalog) ListProducts(
	c context.Context,
	param request.Listing,
) ([]response.Product, error) {
	if r.onFetch != nil {
		hook := r.onFetch
		r.onFetch = nil
		hook(c)
	}
	return r.inner.ListProducts(c, param)
}

func TestLoadNextPageWhileLoadingIsDropped(t *testing.T) {
	inner := &fakeListingCatalog{total: 20}
	catalog := &reentrantCatalog{inner: inner}
	engine := NewListingEngine(catalog, &notification.Recorder{}, 8)
	c := context.Background()

	// a second call arriving mid fetch must be dropped, not queued
	catalog.onFetch = func(c context.Context) {
		require.NoError(t, engine.LoadNextPage(c))
	}

	require.NoError(t, engine.LoadNextPage(c))
	assert.Len(t, engine.Products(), 8)
	assert.Equal(t, 1, inner.fetchCount())
}

func TestSetFilterLeavesExhaustion(t *testing.T) {
	catalog := &fakeListingCatalog{total: 0}
	engine := NewListingEngine(catalog, &notification.Recorder{}, 8)
	c := context.Background()

	require.NoError(t, engine.LoadNextPage(c))
	require.Equal(t, StateExhausted, engine.State())

	catalog.mu.Lock()
	catalog.total = 5
	catalog.mu.Unlock()

	require.NoError(t, engine.SetFilter(c, "jewelery", ""))
	assert.Len(t, engine.Products(), 5)
	assert.Equal(t, StateIdle, engine.State())
}
