package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyInput indicates a blank or whitespace-only submission.
	// Caught locally before any request is issued.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyQuery indicates a blank search query. No request is sent.
	ErrEmptyQuery = errors.New("empty query")

	// ErrTurnInFlight indicates a chat turn is already pending.
	// Submissions while pending are no-ops.
	ErrTurnInFlight = errors.New("chat turn already in flight")

	// ErrUploadInFlight indicates an upload batch is already running.
	ErrUploadInFlight = errors.New("upload batch already in flight")

	// ErrStaleQuery indicates a search response resolved after a newer
	// query was issued. The response is discarded, not rendered.
	ErrStaleQuery = errors.New("superseded by a newer query")

	// ErrGatewayUnavailable indicates the backend gateway is not configured.
	ErrGatewayUnavailable = errors.New("backend gateway unavailable")
)

// FailureKind classifies how a backend request failed. Downstream components
// choose user-facing text from the kind, never from raw transport errors.
type FailureKind string

const (
	// FailNetwork means the backend could not be reached at all
	// (connection refused, DNS failure).
	FailNetwork FailureKind = "network-unreachable"

	// FailTimeout means the request exceeded its deadline.
	FailTimeout FailureKind = "timeout"

	// FailServer means the backend answered with a 5xx status.
	FailServer FailureKind = "server-error"

	// FailApplication means transport succeeded but the payload signalled
	// success=false.
	FailApplication FailureKind = "application-error"
)

// BackendError is the normalized failure produced by the request gateway.
type BackendError struct {
	// Kind is the failure classification.
	Kind FailureKind

	// Status is the HTTP status code, when one was received.
	Status int

	// Detail is the backend-provided explanation or the underlying
	// transport error text. Kept for display side channels, never embedded
	// verbatim in the transcript.
	Detail string

	// Unavailable marks a server error that signalled the service is
	// temporarily unavailable (503), worth a retry-later message.
	Unavailable bool
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// KindOf extracts the failure kind from an error chain. Errors that did not
// come from the gateway classify as application errors: by the time they
// reach a controller they are terminal, non-transport failures.
func KindOf(err error) FailureKind {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return FailApplication
}

// AsBackendError unwraps a BackendError from an error chain, if present.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
