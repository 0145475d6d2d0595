package services

import (
	"context"
	"sync"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// Ensure ClientRoster implements the interface.
var _ driving.ClientService = (*ClientRoster)(nil)

// Default roster paging, matching the dashboard sidebar.
const (
	DefaultRosterUserID  = 1
	DefaultRosterPerPage = 5
)

// RosterConfig holds configuration for the client roster.
type RosterConfig struct {
	// UserID scopes the roster query.
	UserID int

	// PerPage is the roster page size.
	PerPage int
}

// ClientRoster loads the wealth-planning client roster. A failed refresh
// leaves the previously loaded roster untouched.
type ClientRoster struct {
	mu      sync.Mutex
	gateway driven.Gateway
	cfg     RosterConfig

	clients []domain.Client
	total   int
	loading bool
}

// NewClientRoster creates a client roster loader.
func NewClientRoster(gateway driven.Gateway, cfg RosterConfig) *ClientRoster {
	if cfg.UserID == 0 {
		cfg.UserID = DefaultRosterUserID
	}
	if cfg.PerPage == 0 {
		cfg.PerPage = DefaultRosterPerPage
	}
	return &ClientRoster{
		gateway: gateway,
		cfg:     cfg,
	}
}

// Refresh fetches the roster.
func (r *ClientRoster) Refresh(ctx context.Context) error {
	if r.gateway == nil {
		return domain.ErrGatewayUnavailable
	}

	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()

	clients, total, err := r.gateway.ListClients(ctx, r.cfg.UserID, r.cfg.PerPage)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		logger.Warn("clients: refresh failed: %v", err)
		return err
	}

	r.clients = clients
	r.total = total
	logger.Debug("clients: loaded %d of %d", len(clients), total)
	return nil
}

// Clients returns a snapshot copy of the roster.
func (r *ClientRoster) Clients() []domain.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Total returns the backend-reported total client count.
func (r *ClientRoster) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Loading reports whether a refresh is in flight.
func (r *ClientRoster) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}
