package driving

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// ChatService drives the conversation with the backend. It owns the
// transcript; no other component may append to it.
type ChatService interface {
	// Submit runs one chat turn: appends the user message, routes to the
	// context-augmented or plain endpoint based on the health snapshot
	// taken at dispatch, and appends exactly one terminal assistant
	// message (success or error-flagged). Returns that assistant message.
	//
	// Returns domain.ErrEmptyInput for blank input and
	// domain.ErrTurnInFlight while a turn is pending; in both cases the
	// transcript is untouched and no request is issued.
	Submit(ctx context.Context, input string) (domain.Message, error)

	// Messages returns a snapshot copy of the transcript.
	Messages() []domain.Message

	// Pending reports whether a turn is in flight.
	Pending() bool

	// LastFailure returns the most recent normalized backend failure, for
	// display side channels. Nil after a successful turn.
	LastFailure() *domain.BackendError
}
