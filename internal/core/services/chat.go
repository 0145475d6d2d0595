package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// Ensure ChatOrchestrator implements the interface.
var _ driving.ChatService = (*ChatOrchestrator)(nil)

// conversationContext is the fixed context description sent with plain
// (non-augmented) generation requests.
const conversationContext = "Conversational exchange with the POLARIS wealth-planning assistant."

// User-facing failure texts, chosen by failure kind. The raw error detail
// is kept in the LastFailure side channel, never in the transcript.
const (
	fallbackResponseText   = "Sorry, I could not generate a response. Please try again."
	unreachableText        = "The POLARIS backend is unreachable. Check that it is running and try again."
	temporarilyDownText    = "The AI service is temporarily unavailable. Please try again in a moment."
	connectivityText       = "Something went wrong while processing your message. Please try again."
	applicationFailureText = "Sorry, I could not process your message. Please try again."
)

// ChatConfig holds configuration for the chat orchestrator.
type ChatConfig struct {
	// UserID identifies the user on context-augmented requests.
	UserID int

	// DocumentType is the backend document type for chat turns.
	DocumentType string
}

// ChatOrchestrator owns the conversation transcript and routes each turn to
// the context-augmented or plain generation endpoint based on the health
// snapshot taken when the turn is dispatched.
//
// The transcript is append-only. Every accepted submission produces exactly
// one terminal assistant message - a response or an error-flagged stand-in -
// and the pending flag is cleared on every exit path.
type ChatOrchestrator struct {
	mu      sync.Mutex
	gateway driven.Gateway
	health  driving.HealthService
	cfg     ChatConfig

	messages    []domain.Message
	pending     bool
	lastFailure *domain.BackendError
	lastID      int64
}

// NewChatOrchestrator creates a chat orchestrator.
func NewChatOrchestrator(gateway driven.Gateway, health driving.HealthService, cfg ChatConfig) *ChatOrchestrator {
	if cfg.DocumentType == "" {
		cfg.DocumentType = "chat"
	}
	return &ChatOrchestrator{
		gateway: gateway,
		health:  health,
		cfg:     cfg,
	}
}

// Submit runs one chat turn.
func (c *ChatOrchestrator) Submit(ctx context.Context, input string) (domain.Message, error) {
	trimmed := strings.TrimSpace(input)

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return domain.Message{}, domain.ErrTurnInFlight
	}
	if trimmed == "" {
		c.mu.Unlock()
		return domain.Message{}, domain.ErrEmptyInput
	}
	if c.gateway == nil {
		c.mu.Unlock()
		return domain.Message{}, domain.ErrGatewayUnavailable
	}

	// The user message lands before any network call, so the transcript
	// always reflects what was sent even if the backend never answers.
	c.appendLocked(domain.Message{Role: domain.RoleUser, Text: trimmed})
	c.pending = true
	c.mu.Unlock()

	// Endpoint choice is fixed now; a health change mid-turn must not
	// retroactively reroute a pending turn.
	snapshot := c.healthSnapshot()

	assistant := c.runTurn(ctx, trimmed, snapshot)

	c.mu.Lock()
	assistant = c.appendLocked(assistant)
	c.pending = false
	c.mu.Unlock()

	return assistant, nil
}

// healthSnapshot reads the aggregator, tolerating a missing one.
func (c *ChatOrchestrator) healthSnapshot() domain.HealthSnapshot {
	if c.health == nil {
		return domain.HealthSnapshot{State: domain.HealthUnknown}
	}
	return c.health.Snapshot()
}

// runTurn performs the network half of a turn and builds the terminal
// assistant message. It never returns an error: failures become
// error-flagged messages.
func (c *ChatOrchestrator) runTurn(ctx context.Context, prompt string, health domain.HealthSnapshot) domain.Message {
	if health.Ready() {
		logger.Debug("chat: routing to context-augmented endpoint")
		res, err := c.gateway.ChatWithRAG(ctx, prompt, c.cfg.UserID, c.cfg.DocumentType)
		if err != nil {
			return c.failureMessage(err)
		}
		c.setFailure(nil)
		return domain.Message{
			Role:          domain.RoleAssistant,
			Text:          nonEmpty(res.Response, fallbackResponseText),
			ContextUsed:   res.HasContext,
			ContextLength: res.ContextLength,
		}
	}

	logger.Debug("chat: routing to plain generation endpoint")
	res, err := c.gateway.GenerateDocument(ctx, prompt, conversationContext, c.cfg.DocumentType)
	if err != nil {
		return c.failureMessage(err)
	}
	c.setFailure(nil)
	return domain.Message{
		Role:  domain.RoleAssistant,
		Text:  nonEmpty(res.Response, fallbackResponseText),
		Model: res.Model,
	}
}

// failureMessage converts a normalized failure into the error-flagged
// assistant message for the transcript and records the detail side channel.
func (c *ChatOrchestrator) failureMessage(err error) domain.Message {
	be, ok := domain.AsBackendError(err)
	if !ok {
		be = &domain.BackendError{Kind: domain.FailApplication, Detail: err.Error()}
	}
	c.setFailure(be)
	logger.Warn("chat: turn failed: %s", be.Kind)

	var text string
	switch {
	case be.Kind == domain.FailApplication:
		text = nonEmpty(be.Detail, applicationFailureText)
	case be.Kind == domain.FailNetwork:
		text = unreachableText
	case be.Kind == domain.FailServer && be.Unavailable:
		text = temporarilyDownText
	default:
		text = connectivityText
	}

	return domain.Message{
		Role:    domain.RoleAssistant,
		Text:    text,
		IsError: true,
	}
}

// appendLocked stamps ID and timestamp and appends (caller holds the lock).
func (c *ChatOrchestrator) appendLocked(msg domain.Message) domain.Message {
	msg.ID = c.nextIDLocked()
	msg.CreatedAt = time.Now()
	c.messages = append(c.messages, msg)
	return msg
}

// nextIDLocked derives a unique, monotonically increasing ID from creation
// time, tie-broken by increment when two appends share a millisecond.
func (c *ChatOrchestrator) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// setFailure records the last normalized failure for display side channels.
func (c *ChatOrchestrator) setFailure(be *domain.BackendError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFailure = be
}

// Messages returns a snapshot copy of the transcript.
func (c *ChatOrchestrator) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a turn is in flight.
func (c *ChatOrchestrator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// LastFailure returns the most recent normalized backend failure, or nil.
func (c *ChatOrchestrator) LastFailure() *domain.BackendError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFailure
}

// nonEmpty returns s unless it is empty, in which case fallback is used.
func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
