package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

type catalog interface {
	ListProducts(c context.Context, param request.Listing) ([]response.Product, error)
}

// ListingEngine materializes the catalog page by page. Pages only ever append,
// changing the category or sort discards everything and starts over from page
// 1, and the first empty page parks the engine in StateExhausted for good.
type ListingEngine struct {
	mu       sync.Mutex
	catalog  catalog
	notifier notification.Notifier
	pageSize int

	state    State
	page     int
	category string
	sort     string
	// generation guards against a filter change racing an in-flight page
	// fetch, stale results are discarded on arrival
	generation uint64
	products   []response.Product
}

func NewListingEngine(
	catalog catalog,
	notifier notification.Notifier,
	pageSize int,
) *ListingEngine {
	return &ListingEngine{
		catalog:  catalog,
		notifier: notifier,
		pageSize: pageSize,
		state:    StateIdle,
		page:     1,
	}
}

// LoadNextPage fetches the next catalog page. A call while loading or after
// exhaustion is dropped, not queued.
func (e *ListingEngine) LoadNextPage(c context.Context) error {
	c, span := otel.Tracer.Start(c, "ListingEngine LoadNextPage")
	defer span.End()

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return nil
	}
	e.state = StateLoading
	param := request.Listing{
		Page:     e.page,
		Limit:    e.pageSize,
		Category: e.category,
		Sort:     e.sort,
	}
	generation := e.generation
	e.mu.Unlock()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ListingEngine LoadNextPage").
		Int(log.KeyPage, param.Page).
		Str(log.KeyCategory, param.Category).
		Str(log.KeySort, param.Sort).
		Logger()

	logger.Info().Msg("fetching catalog page")
	products, err := e.catalog.ListProducts(c, param)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.generation != generation {
		// filter changed while this page was in flight
		logger.Info().Msg("discarding stale catalog page")
		return nil
	}

	if err != nil {
		err = fmt.Errorf("failed fetching catalog page with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		e.state = StateIdle
		e.notifier.Error(c, "Failed while loading products")
		return err
	}

	if len(products) == 0 {
		logger.Info().Msg("catalog exhausted")
		e.state = StateExhausted
		return nil
	}

	e.products = append(e.products, products...)
	e.page++
	e.state = StateIdle
	logger.Info().Int(log.KeyPage, e.page).Msgf("appended %d products", len(products))
	return nil
}

// SetFilter swaps the active category and sort. Accumulated results never
// survive a filter change, the engine resets to page 1 and immediately loads
// the first page for the new filter.
func (e *ListingEngine) SetFilter(c context.Context, category, sort string) error {
	c, span := otel.Tracer.Start(c, "ListingEngine SetFilter")
	defer span.End()

	zerolog.Ctx(c).
		Info().
		Str(log.KeyTag, "ListingEngine SetFilter").
		Str(log.KeyCategory, category).
		Str(log.KeySort, sort).
		Msg("resetting listing for new filter")

	e.mu.Lock()
	e.category = category
	e.sort = sort
	e.products = nil
	e.page = 1
	e.state = StateIdle
	e.generation++
	e.mu.Unlock()

	return e.LoadNextPage(c)
}

// OnScrollNearBottom is the viewport hook, subject to the same drop rules as
// LoadNextPage.
func (e *ListingEngine) OnScrollNearBottom(c context.Context) error {
	return e.LoadNextPage(c)
}

func (e *ListingEngine) Products() []response.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	products := make([]response.Product, len(e.products))
	copy(products, e.products)
	return products
}

func (e *ListingEngine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *ListingEngine) Page() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

func (e *ListingEngine) HasMore() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != StateExhausted
}
