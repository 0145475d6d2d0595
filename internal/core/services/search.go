package services

import (
	"context"
	"strings"
	"sync"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// Ensure SearchController implements the interface.
var _ driving.SearchService = (*SearchController)(nil)

// Default search options, matching the dashboard's query parameters.
const (
	DefaultTopK      = 10
	DefaultThreshold = 0.1
)

// SearchController owns a single in-flight semantic query.
//
// Every dispatched query gets a sequence number; when a response resolves
// it is applied only if its sequence is still the latest issued. A slow,
// stale response therefore can never overwrite the results of a faster,
// newer query - completion order across requests is not issuance order.
type SearchController struct {
	mu      sync.Mutex
	gateway driven.Gateway
	opts    domain.SearchOptions

	seq     uint64
	pending bool
	query   string
	results []domain.SearchResult
}

// NewSearchController creates a search controller.
func NewSearchController(gateway driven.Gateway, opts domain.SearchOptions) *SearchController {
	if opts.TopK == 0 {
		opts.TopK = DefaultTopK
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	return &SearchController{
		gateway: gateway,
		opts:    opts,
	}
}

// Search issues a ranked-results query.
func (s *SearchController) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		// Rejected locally: no request, pending never set.
		return nil, domain.ErrEmptyQuery
	}
	if s.gateway == nil {
		return nil, domain.ErrGatewayUnavailable
	}

	s.mu.Lock()
	s.seq++
	mySeq := s.seq
	s.pending = true
	s.mu.Unlock()

	results, err := s.gateway.SemanticSearch(ctx, trimmed, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if mySeq != s.seq {
		// A newer query was issued while this one was in flight; its
		// response owns the slot now.
		logger.Debug("search: discarding stale response for %q", trimmed)
		return nil, domain.ErrStaleQuery
	}

	s.pending = false
	if err != nil {
		// Error is terminal for this query; previous results stay visible.
		return nil, err
	}

	s.query = trimmed
	s.results = results
	logger.Debug("search: %q -> %d results", trimmed, len(results))

	out := make([]domain.SearchResult, len(results))
	copy(out, results)
	return out, nil
}

// Results returns a snapshot copy of the latest applied result set.
func (s *SearchController) Results() []domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// Query returns the query the current results belong to.
func (s *SearchController) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Pending reports whether the latest issued query is still in flight.
func (s *SearchController) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
