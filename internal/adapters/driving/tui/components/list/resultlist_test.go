package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{Title: "Living Trusts", Source: "guide.pdf", Type: "documento", Score: 0.92, Rank: 1, Preview: "A living trust..."},
		{Title: "Wills", Source: "guide.pdf", Score: 0.81, Rank: 2, Preview: "A will..."},
		{Title: "Estate Taxes", Source: "notes.txt", Score: 0.70, Rank: 3, Preview: "Federal estate tax..."},
	}
}

func TestResultList_EmptyShowsNoMatches(t *testing.T) {
	list := NewResultList(nil)

	assert.True(t, list.IsEmpty())
	assert.Contains(t, list.View(), "No matches")
	assert.Nil(t, list.SelectedResult())
}

func TestResultList_SetResultsResetsSelection(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())
	list.MoveDown()
	require.Equal(t, 1, list.Selected())

	list.SetResults(sampleResults()[:2])

	assert.Equal(t, 0, list.Selected())
	assert.Equal(t, 2, list.Count())
}

func TestResultList_NavigationStaysInBounds(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.MoveUp()
	assert.Equal(t, 0, list.Selected(), "cannot move above the first result")

	list.MoveDown()
	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, 2, list.Selected(), "cannot move past the last result")
}

func TestResultList_SelectedResultFollowsSelection(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.MoveDown()

	selected := list.SelectedResult()
	require.NotNil(t, selected)
	assert.Equal(t, "Wills", selected.Title)
}

func TestResultList_SetSelectedIgnoresOutOfRange(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.SetSelected(99)
	assert.Equal(t, 0, list.Selected())

	list.SetSelected(2)
	assert.Equal(t, 2, list.Selected())
}

func TestResultList_ViewShowsTitleSourceAndPreview(t *testing.T) {
	list := NewResultList(nil)
	list.SetDimensions(100, 20)
	list.SetResults(sampleResults())

	view := list.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "Living Trusts")
	assert.Contains(t, view, "guide.pdf · documento")
	assert.Contains(t, view, "A living trust...")
}
