package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks a message typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a message produced by the backend (or an error
	// standing in for one).
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation transcript. Messages are
// immutable once appended; the transcript is an ordered, append-only
// sequence owned exclusively by the chat orchestrator.
type Message struct {
	// ID is unique and monotonically increasing, derived from creation
	// time. Guarantees stable render keys and chronological order.
	ID int64

	// Role is who authored the message.
	Role Role

	// Text is the message body.
	Text string

	// CreatedAt is when the message was appended.
	CreatedAt time.Time

	// IsError marks an assistant message that stands in for a failed turn.
	IsError bool

	// Model is the backend model identifier, when the response carried one.
	Model string

	// ContextUsed reports whether retrieved document context enriched the
	// response (context-augmented chat only).
	ContextUsed bool

	// ContextLength is the size in characters of the retrieved context.
	ContextLength int
}
