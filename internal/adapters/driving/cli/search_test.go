package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

func TestSearchCmd_PrintsRankedResults(t *testing.T) {
	ts := setupTestServices(t)

	ts.search.searchFunc = func(_ context.Context, query string) ([]domain.SearchResult, error) {
		assert.Equal(t, "trusts", query)
		return []domain.SearchResult{
			{Title: "Living Trusts", Source: "guide.pdf", Score: 0.92, Rank: 1, Preview: "A living trust..."},
			{Title: "Wills", Source: "guide.pdf", Score: 0.81, Rank: 2},
		}, nil
	}

	stdout, _, err := executeCommand(t, "search", "trusts")

	require.NoError(t, err)
	assert.Contains(t, stdout, "[1] Living Trusts (0.92)")
	assert.Contains(t, stdout, "Source: guide.pdf")
	assert.Contains(t, stdout, "A living trust...")
	assert.Contains(t, stdout, "[2] Wills (0.81)")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := executeCommand(t, "search", "nothing")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No matches found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	ts := setupTestServices(t)

	ts.search.searchFunc = func(context.Context, string) ([]domain.SearchResult, error) {
		return []domain.SearchResult{{Title: "Living Trusts", Score: 0.92, Rank: 1}}, nil
	}

	stdout, _, err := executeCommand(t, "search", "--json", "trusts")

	require.NoError(t, err)
	var decoded []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Living Trusts", decoded[0].Title)
}

func TestSearchCmd_FlagsBuildFreshController(t *testing.T) {
	ts := setupTestServices(t)

	_, _, err := executeCommand(t, "search", "--top-k", "3", "--threshold", "0.5", "trusts")

	require.NoError(t, err)
	require.NotNil(t, ts.lastSearchOpts, "overriding flags builds a per-invocation controller")
	assert.Equal(t, 3, ts.lastSearchOpts.TopK)
	assert.InDelta(t, 0.5, ts.lastSearchOpts.Threshold, 1e-9)
	assert.True(t, ts.lastSearchOpts.IncludeContext)
}

func TestSearchCmd_DefaultFlagsUseSharedController(t *testing.T) {
	ts := setupTestServices(t)

	_, _, err := executeCommand(t, "search", "trusts")

	require.NoError(t, err)
	assert.Nil(t, ts.lastSearchOpts)
}

func TestSearchCmd_FailurePropagates(t *testing.T) {
	ts := setupTestServices(t)

	ts.search.searchFunc = func(context.Context, string) ([]domain.SearchResult, error) {
		return nil, &domain.BackendError{Kind: domain.FailServer, Detail: "index corrupted"}
	}

	_, _, err := executeCommand(t, "search", "trusts")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}
