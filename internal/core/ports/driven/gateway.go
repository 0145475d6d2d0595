package driven

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// Gateway is the request gateway to the POLARIS backend. Every outbound
// call goes through it and comes back either as parsed payload data or as a
// *domain.BackendError carrying the failure classification. The gateway has
// no business logic; controllers decide what a failure means.
type Gateway interface {
	// GenerateDocument runs a plain (non-augmented) chat generation.
	GenerateDocument(ctx context.Context, prompt, docContext, documentType string) (*GenerateResult, error)

	// ChatWithRAG runs a context-augmented chat turn.
	ChatWithRAG(ctx context.Context, prompt string, userID int, documentType string) (*RAGChatResult, error)

	// ListClients fetches the client roster and its total count.
	ListClients(ctx context.Context, userID, perPage int) ([]domain.Client, int, error)

	// ListDocuments fetches the canonical uploaded-document list.
	ListDocuments(ctx context.Context) ([]domain.UploadedDocument, error)

	// UploadDocument uploads one file as multipart form data.
	UploadDocument(ctx context.Context, file domain.UploadFile, userID int, category string) error

	// DeleteDocument removes a document by ID.
	DeleteDocument(ctx context.Context, id int64) error

	// TriggerIndexing asks the backend to (re)index uploaded documents.
	TriggerIndexing(ctx context.Context, rebuild bool) error

	// IndexStats fetches search index and database statistics.
	IndexStats(ctx context.Context) (*domain.IndexStats, error)

	// SemanticSearch runs a ranked similarity query. Result order is the
	// backend's; the client must not re-sort.
	SemanticSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// RAGHealth fetches the per-subsystem readiness probes.
	RAGHealth(ctx context.Context) (domain.SubsystemHealth, error)
}

// GenerateResult is the payload of a successful plain chat generation.
type GenerateResult struct {
	// Response is the generated text.
	Response string

	// Model identifies the model that produced it, when reported.
	Model string
}

// RAGChatResult is the payload of a successful context-augmented chat turn.
type RAGChatResult struct {
	// Response is the generated text.
	Response string

	// HasContext reports whether retrieved document context was used.
	HasContext bool

	// ContextLength is the size of the retrieved context in characters.
	ContextLength int
}
