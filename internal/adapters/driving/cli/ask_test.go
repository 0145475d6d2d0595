package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

func TestAskCmd_PrintsAnswer(t *testing.T) {
	ts := setupTestServices(t)

	var got string
	ts.chat.submitFunc = func(_ context.Context, input string) (domain.Message, error) {
		got = input
		return domain.Message{Role: domain.RoleAssistant, Text: "A trust is a legal arrangement."}, nil
	}

	stdout, _, err := executeCommand(t, "ask", "what", "is", "a", "trust?")

	require.NoError(t, err)
	assert.Equal(t, "what is a trust?", got, "args are joined into one question")
	assert.Contains(t, stdout, "A trust is a legal arrangement.")
	assert.Equal(t, 1, ts.health.polls, "health is polled once before the turn")
}

func TestAskCmd_PrintsContextBadge(t *testing.T) {
	ts := setupTestServices(t)

	ts.chat.submitFunc = func(context.Context, string) (domain.Message, error) {
		return domain.Message{
			Role:          domain.RoleAssistant,
			Text:          "answer",
			ContextUsed:   true,
			ContextLength: 1500,
		}, nil
	}

	stdout, _, err := executeCommand(t, "ask", "question")

	require.NoError(t, err)
	assert.Contains(t, stdout, "(answered with 1500 chars of document context)")
}

func TestAskCmd_PlainSkipsHealthCheck(t *testing.T) {
	ts := setupTestServices(t)

	_, _, err := executeCommand(t, "ask", "--plain", "question")

	require.NoError(t, err)
	assert.Zero(t, ts.health.polls)
}

func TestAskCmd_ErrorAnswerExitsNonZero(t *testing.T) {
	ts := setupTestServices(t)

	ts.chat.failure = &domain.BackendError{Kind: domain.FailNetwork, Detail: "connection refused"}
	ts.chat.submitFunc = func(context.Context, string) (domain.Message, error) {
		return domain.Message{Role: domain.RoleAssistant, Text: "The assistant is unreachable.", IsError: true}, nil
	}

	_, stderr, err := executeCommand(t, "ask", "question")

	require.Error(t, err)
	assert.Contains(t, stderr, "The assistant is unreachable.")
	assert.Contains(t, stderr, "detail: connection refused")
}

func TestAskCmd_LocalRejectionFails(t *testing.T) {
	ts := setupTestServices(t)

	ts.chat.submitFunc = func(context.Context, string) (domain.Message, error) {
		return domain.Message{}, domain.ErrTurnInFlight
	}

	_, _, err := executeCommand(t, "ask", "question")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTurnInFlight)
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	setupTestServices(t)

	_, _, err := executeCommand(t, "ask")

	assert.Error(t, err)
}
