package search

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/messages"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

type mockSearchService struct {
	searchFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)
}

func (m *mockSearchService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}
func (m *mockSearchService) Results() []domain.SearchResult { return nil }
func (m *mockSearchService) Query() string                  { return "" }
func (m *mockSearchService) Pending() bool                  { return false }

func newTestView(svc *mockSearchService) *View {
	view := NewView(nil, nil, svc)
	view.SetDimensions(100, 30)
	return view
}

func TestView_StartsInInputMode(t *testing.T) {
	view := newTestView(&mockSearchService{})

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Results())
}

func TestView_EnterWithEmptyQueryDoesNothing(t *testing.T) {
	view := newTestView(&mockSearchService{})

	updated, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, updated.InputFocused())
}

func TestView_EnterSubmitsQuery(t *testing.T) {
	var got string
	svc := &mockSearchService{
		searchFunc: func(_ context.Context, query string) ([]domain.SearchResult, error) {
			got = query
			return []domain.SearchResult{{Title: "Trusts"}}, nil
		},
	}
	view := newTestView(svc)
	view.SetQuery("estate planning")

	updated, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "estate planning", got)
	assert.Equal(t, "estate planning", completed.Query)
	require.Len(t, completed.Results, 1)
	assert.False(t, updated.InputFocused())
}

func TestView_SearchCompletedShowsResults(t *testing.T) {
	view := newTestView(&mockSearchService{})

	results := []domain.SearchResult{
		{Title: "Living Trusts", Source: "guide.pdf", Score: 0.92, Rank: 1},
		{Title: "Wills", Source: "guide.pdf", Score: 0.81, Rank: 2},
	}
	updated, _ := view.Update(messages.SearchCompleted{Query: "trusts", Results: results})

	assert.Len(t, updated.Results(), 2)
	assert.NoError(t, updated.Err())
	assert.Contains(t, updated.View(), "Living Trusts")
}

func TestView_SearchCompletedWithNoMatches(t *testing.T) {
	view := newTestView(&mockSearchService{})

	updated, _ := view.Update(messages.SearchCompleted{Query: "nothing here", Results: nil})

	assert.Empty(t, updated.Results())
	assert.Contains(t, updated.View(), "No matches")
}

func TestView_StaleCompletionIsIgnored(t *testing.T) {
	view := newTestView(&mockSearchService{})

	current := []domain.SearchResult{{Title: "Current"}}
	view.Update(messages.SearchCompleted{Query: "newer", Results: current})

	updated, _ := view.Update(messages.SearchCompleted{
		Query: "older",
		Err:   domain.ErrStaleQuery,
	})

	require.Len(t, updated.Results(), 1)
	assert.Equal(t, "Current", updated.Results()[0].Title)
	assert.NoError(t, updated.Err())
}

func TestView_SearchFailureIsShown(t *testing.T) {
	view := newTestView(&mockSearchService{})

	failure := &domain.BackendError{Kind: domain.FailNetwork, Detail: "connection refused"}
	updated, _ := view.Update(messages.SearchCompleted{Query: "trusts", Err: failure})

	assert.Error(t, updated.Err())
	assert.Contains(t, updated.View(), "Error:")
}

func TestView_NavigationInResultsMode(t *testing.T) {
	view := newTestView(&mockSearchService{})

	results := []domain.SearchResult{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	view.Update(messages.SearchCompleted{Query: "q", Results: results})

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, view.SelectedIndex())

	require.NotNil(t, view.SelectedResult())
	assert.Equal(t, "B", view.SelectedResult().Title)
}

func TestView_NewSearchRefocusesInput(t *testing.T) {
	view := newTestView(&mockSearchService{})
	view.Update(messages.SearchCompleted{Query: "q", Results: []domain.SearchResult{{Title: "A"}}})
	require.False(t, view.InputFocused())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Query())
}

func TestView_EscSignalsMenu(t *testing.T) {
	view := newTestView(&mockSearchService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_ResetClearsState(t *testing.T) {
	view := newTestView(&mockSearchService{})
	view.Update(messages.SearchCompleted{Query: "q", Results: []domain.SearchResult{{Title: "A"}}})

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Results())
	assert.Empty(t, view.Query())
	assert.NoError(t, view.Err())
}
