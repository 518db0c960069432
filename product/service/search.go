package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/response"
)

type searchCatalog interface {
	SearchProducts(c context.Context, q string) ([]response.Product, error)
}

// Searcher debounces free text catalog search. Only the last text entered
// within the debounce window triggers a query, and every issued query carries
// a sequence number so a slow response that has been superseded is discarded
// on arrival instead of overwriting newer results.
type Searcher struct {
	mu      sync.Mutex
	catalog searchCatalog
	delay   time.Duration

	timer   *time.Timer
	seq     uint64
	text    string
	loading bool
	results []response.Product
}

func NewSearcher(catalog searchCatalog, delay time.Duration) *Searcher {
	return &Searcher{catalog: catalog, delay: delay}
}

// SetText registers a keystroke. Empty text cancels any pending search and
// reverts to an empty result set immediately.
func (s *Searcher) SetText(c context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++

	text = strings.TrimSpace(text)
	s.text = text
	if text == "" {
		s.results = nil
		s.loading = false
		return
	}

	s.loading = true
	seq := s.seq
	s.timer = time.AfterFunc(s.delay, func() {
		s.run(c, seq, text)
	})
}

// Flush fires a pending search without waiting out the debounce delay. The
// one-shot CLI path uses it, the interactive path just lets the timer fire.
func (s *Searcher) Flush(c context.Context) {
	s.mu.Lock()
	if s.timer == nil || !s.timer.Stop() {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	seq := s.seq
	text := s.text
	s.mu.Unlock()
	s.run(c, seq, text)
}

func (s *Searcher) run(c context.Context, seq uint64, text string) {
	c, span := otel.Tracer.Start(c, "Searcher run")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Searcher run").
		Str(log.KeySearch, text).
		Logger()

	logger.Info().Msg("searching products")
	products, err := s.catalog.SearchProducts(c, strings.ToLower(text))

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		logger.Info().Msg("discarding superseded search results")
		return
	}
	s.loading = false

	if err != nil {
		err = fmt.Errorf("failed searching products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.results = nil
		return
	}

	// the api treats q loosely, narrow again by title substring
	needle := strings.ToLower(text)
	matched := make([]response.Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Title), needle) {
			matched = append(matched, product)
		}
	}
	s.results = matched
	logger.Info().Msgf("search matched %d products", len(matched))
}

func (s *Searcher) Results() []response.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]response.Product, len(s.results))
	copy(results, s.results)
	return results
}

func (s *Searcher) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
