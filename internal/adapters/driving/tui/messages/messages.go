// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu and dashboard.
	ViewMenu ViewType = iota
	// ViewChat is the conversation view.
	ViewChat
	// ViewDocuments is the uploaded-document management view.
	ViewDocuments
	// ViewSearch is the semantic search view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// TurnCompleted signals that a chat turn finished. Message is the terminal
// assistant message appended to the transcript; Err is set only for locally
// rejected submissions (blank input, turn already in flight).
type TurnCompleted struct {
	Message domain.Message
	Err     error
}

// HealthChecked carries a completed health poll reading.
type HealthChecked struct {
	Snapshot domain.HealthSnapshot
	Err      error
}

// ClientsLoaded carries the client roster from the service.
type ClientsLoaded struct {
	Clients []domain.Client
	Total   int
	Err     error
}

// DocumentsLoaded carries the uploaded-document list from the service.
type DocumentsLoaded struct {
	Documents []domain.UploadedDocument
	Err       error
}

// StatsLoaded carries index statistics from the service.
type StatsLoaded struct {
	Stats domain.IndexStats
	Err   error
}

// DocumentDeleted signals a document delete attempt completed.
type DocumentDeleted struct {
	ID  int64
	Err error
}

// IndexTriggered signals an indexing run was requested.
type IndexTriggered struct {
	Rebuild bool
	Err     error
}

// SearchCompleted carries search results back to the model. A stale
// completion (superseded by a newer query) arrives with Err set to
// domain.ErrStaleQuery and must be ignored.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}
