package driving

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// SearchService drives the semantic search query/response cycle. It owns a
// single query slot: a new query supersedes any in-flight one, and a stale
// completion never overwrites newer results.
type SearchService interface {
	// Search issues a ranked-results query. Blank queries are rejected
	// locally with domain.ErrEmptyQuery before any request. If a newer
	// query was issued while this one was in flight, the resolved response
	// is discarded and domain.ErrStaleQuery is returned.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// Results returns a snapshot copy of the latest applied result set.
	Results() []domain.SearchResult

	// Query returns the query the current results belong to.
	Query() string

	// Pending reports whether the latest issued query is still in flight.
	Pending() bool
}
