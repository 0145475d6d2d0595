package driving

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// DocumentService drives the document ingestion pipeline. It owns the
// uploaded-document list as a cache of server truth: the canonical set is
// re-fetched after every mutating action, never mutated locally.
type DocumentService interface {
	// Refresh replaces the local document list wholesale from the backend.
	Refresh(ctx context.Context) error

	// Upload sends a batch of files sequentially. A single file's failure
	// does not abort the rest; after the whole batch was attempted the
	// document list and index statistics are refreshed exactly once.
	// An empty batch is a no-op. Returns domain.ErrUploadInFlight while a
	// batch is already running.
	Upload(ctx context.Context, files []domain.UploadFile) (domain.UploadReport, error)

	// TriggerIndexing fires an index run and unconditionally refreshes
	// statistics afterwards.
	TriggerIndexing(ctx context.Context, rebuild bool) error

	// Delete removes a document. The list and statistics are refreshed
	// only on explicit success; on failure the list is left untouched.
	Delete(ctx context.Context, id int64) error

	// RefreshStats re-fetches index statistics, keeping the previous
	// reading on failure.
	RefreshStats(ctx context.Context) error

	// Documents returns a snapshot copy of the document list.
	Documents() []domain.UploadedDocument

	// Stats returns the last fetched index statistics.
	Stats() domain.IndexStats

	// UploadPending reports whether an upload batch is in flight.
	UploadPending() bool
}
