package domain

import "time"

// ProcessingStatus is the backend's ingestion state for an uploaded document.
type ProcessingStatus string

const (
	// StatusQueued means the document is waiting to be processed.
	StatusQueued ProcessingStatus = "queued"

	// StatusProcessing means ingestion is in progress.
	StatusProcessing ProcessingStatus = "processing"

	// StatusDone means the document was processed successfully.
	StatusDone ProcessingStatus = "done"

	// StatusError means processing failed on the backend.
	StatusError ProcessingStatus = "error"
)

// ParseProcessingStatus maps the backend's wire values onto the client's
// status enum. The backend reports Portuguese status strings; unknown
// values fall back to queued rather than failing the whole listing.
func ParseProcessingStatus(wire string) ProcessingStatus {
	switch wire {
	case "PROCESSANDO":
		return StatusProcessing
	case "CONCLUIDO":
		return StatusDone
	case "ERRO":
		return StatusError
	default:
		return StatusQueued
	}
}

// UploadedDocument is a server-side document reflected on the client.
// The backend is authoritative: the client never creates or mutates these
// locally, it re-fetches the canonical list after every mutating action.
type UploadedDocument struct {
	// ID is the backend's document identifier.
	ID int64

	// Title is the display title.
	Title string

	// FileType is the file extension or MIME hint reported by the backend.
	FileType string

	// SizeBytes is the stored file size.
	SizeBytes int64

	// UploadedAt is when the backend received the file.
	UploadedAt time.Time

	// Status is the ingestion state.
	Status ProcessingStatus

	// Indexed reports whether the document is searchable.
	Indexed bool
}
