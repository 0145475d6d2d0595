package chat

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/messages"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

type mockChatService struct {
	submitFunc func(ctx context.Context, input string) (domain.Message, error)
	transcript []domain.Message
	pending    bool
	failure    *domain.BackendError
}

func (m *mockChatService) Submit(ctx context.Context, input string) (domain.Message, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, input)
	}
	return domain.Message{Role: domain.RoleAssistant, Text: "ok"}, nil
}
func (m *mockChatService) Messages() []domain.Message        { return m.transcript }
func (m *mockChatService) Pending() bool                     { return m.pending }
func (m *mockChatService) LastFailure() *domain.BackendError { return m.failure }

func newTestView(svc *mockChatService) *View {
	view := NewView(nil, nil, svc)
	view.SetDimensions(100, 30)
	return view
}

// runTurn drives one enter keypress and returns the TurnCompleted message
// produced by the dispatched command batch.
func runTurn(t *testing.T, view *View, prompt string) messages.TurnCompleted {
	t.Helper()

	view.input.SetValue(prompt)
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "enter should dispatch a command batch")

	for _, sub := range batch {
		if completed, ok := sub().(messages.TurnCompleted); ok {
			return completed
		}
	}
	t.Fatal("no TurnCompleted message in batch")
	return messages.TurnCompleted{}
}

func TestView_BlankEnterIsNoOp(t *testing.T) {
	svc := &mockChatService{
		submitFunc: func(context.Context, string) (domain.Message, error) {
			t.Fatal("service should not be called for blank input")
			return domain.Message{}, nil
		},
	}
	view := newTestView(svc)
	view.input.SetValue("   ")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_EnterSubmitsTrimmedPrompt(t *testing.T) {
	var got string
	svc := &mockChatService{
		submitFunc: func(_ context.Context, input string) (domain.Message, error) {
			got = input
			return domain.Message{Role: domain.RoleAssistant, Text: "answer"}, nil
		},
	}
	view := newTestView(svc)

	completed := runTurn(t, view, "  what is a trust?  ")

	assert.Equal(t, "what is a trust?", got)
	assert.NoError(t, completed.Err)
	assert.Equal(t, "answer", completed.Message.Text)
	assert.Empty(t, view.input.Value(), "input is cleared on dispatch")
}

func TestView_PendingTurnBlocksNewSubmission(t *testing.T) {
	svc := &mockChatService{
		pending: true,
		submitFunc: func(context.Context, string) (domain.Message, error) {
			t.Fatal("service should not be called while a turn is pending")
			return domain.Message{}, nil
		},
	}
	view := newTestView(svc)
	view.input.SetValue("second question")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "second question", view.input.Value(), "prompt stays in the input")
}

func TestView_TurnCompletedSyncsTranscript(t *testing.T) {
	svc := &mockChatService{
		transcript: []domain.Message{
			{ID: 1, Role: domain.RoleUser, Text: "hello"},
			{ID: 2, Role: domain.RoleAssistant, Text: "hi there"},
		},
	}
	view := newTestView(svc)

	updated, _ := view.Update(messages.TurnCompleted{
		Message: domain.Message{ID: 2, Role: domain.RoleAssistant, Text: "hi there"},
	})

	assert.Len(t, updated.Transcript(), 2)
	assert.NoError(t, updated.Err())
	assert.Contains(t, updated.View(), "hi there")
}

func TestView_LocalRejectionIsShownAsError(t *testing.T) {
	view := newTestView(&mockChatService{})

	updated, _ := view.Update(messages.TurnCompleted{Err: domain.ErrTurnInFlight})

	assert.Error(t, updated.Err())
	assert.Contains(t, updated.View(), "Error:")
}

func TestView_ErrorAnswerShowsFailureKind(t *testing.T) {
	svc := &mockChatService{
		failure: &domain.BackendError{Kind: domain.FailNetwork},
		transcript: []domain.Message{
			{ID: 1, Role: domain.RoleUser, Text: "hello"},
			{ID: 2, Role: domain.RoleAssistant, Text: "unreachable", IsError: true},
		},
	}
	view := newTestView(svc)

	updated, _ := view.Update(messages.TurnCompleted{
		Message: domain.Message{ID: 2, Role: domain.RoleAssistant, Text: "unreachable", IsError: true},
	})

	assert.NoError(t, updated.Err(), "the answer itself is not a view error")
	assert.Contains(t, updated.View(), "unreachable")
}

func TestView_SpinnerTickRefreshesTranscript(t *testing.T) {
	svc := &mockChatService{pending: true}
	view := newTestView(svc)

	svc.transcript = []domain.Message{{ID: 1, Role: domain.RoleUser, Text: "just sent"}}
	updated, cmd := view.Update(view.spinner.Tick())

	assert.Len(t, updated.Transcript(), 1)
	assert.NotNil(t, cmd, "tick keeps ticking while pending")
}

func TestView_EscSignalsMenu(t *testing.T) {
	view := newTestView(&mockChatService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_ContextBadgeIsRendered(t *testing.T) {
	svc := &mockChatService{
		transcript: []domain.Message{
			{ID: 1, Role: domain.RoleAssistant, Text: "answer", ContextUsed: true, ContextLength: 1200},
		},
	}
	view := newTestView(svc)
	view.syncTranscript()

	assert.Contains(t, view.View(), "[context: 1200 chars]")
}
