package driving

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// ClientService loads the wealth-planning client roster.
type ClientService interface {
	// Refresh fetches the roster. On failure the previously loaded roster
	// is left untouched.
	Refresh(ctx context.Context) error

	// Clients returns a snapshot copy of the roster.
	Clients() []domain.Client

	// Total returns the backend-reported total client count, which may
	// exceed the page of clients actually fetched.
	Total() int

	// Loading reports whether a refresh is in flight.
	Loading() bool
}
