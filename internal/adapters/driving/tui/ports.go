// Package tui provides an interactive terminal user interface for polaris.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat drives the conversation transcript.
	Chat driving.ChatService

	// Document drives the upload/index/delete pipeline.
	Document driving.DocumentService

	// Search drives semantic search queries.
	Search driving.SearchService

	// Health aggregates backend readiness probes.
	Health driving.HealthService

	// Clients loads the wealth-planning client roster.
	Clients driving.ClientService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	document driving.DocumentService,
	search driving.SearchService,
	health driving.HealthService,
	clients driving.ClientService,
) *Ports {
	return &Ports{
		Chat:     chat,
		Document: document,
		Search:   search,
		Health:   health,
		Clients:  clients,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Health == nil {
		return ErrMissingHealthService
	}
	return nil
}
