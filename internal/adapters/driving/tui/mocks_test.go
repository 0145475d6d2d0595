package tui

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// Function-field mocks for the driving ports.

type mockChat struct {
	submitFunc func(ctx context.Context, input string) (domain.Message, error)
	messages   []domain.Message
	pending    bool
	failure    *domain.BackendError
}

func (m *mockChat) Submit(ctx context.Context, input string) (domain.Message, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, input)
	}
	return domain.Message{Role: domain.RoleAssistant, Text: "ok"}, nil
}
func (m *mockChat) Messages() []domain.Message          { return m.messages }
func (m *mockChat) Pending() bool                       { return m.pending }
func (m *mockChat) LastFailure() *domain.BackendError   { return m.failure }

type mockDocuments struct {
	refreshFunc func(ctx context.Context) error
	docs        []domain.UploadedDocument
	stats       domain.IndexStats
}

func (m *mockDocuments) Refresh(ctx context.Context) error {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}
func (m *mockDocuments) Upload(context.Context, []domain.UploadFile) (domain.UploadReport, error) {
	return domain.UploadReport{}, nil
}
func (m *mockDocuments) TriggerIndexing(context.Context, bool) error { return nil }
func (m *mockDocuments) Delete(context.Context, int64) error         { return nil }
func (m *mockDocuments) RefreshStats(context.Context) error          { return nil }
func (m *mockDocuments) Documents() []domain.UploadedDocument        { return m.docs }
func (m *mockDocuments) Stats() domain.IndexStats                    { return m.stats }
func (m *mockDocuments) UploadPending() bool                         { return false }

type mockSearch struct {
	searchFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)
	results    []domain.SearchResult
	query      string
}

func (m *mockSearch) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}
func (m *mockSearch) Results() []domain.SearchResult { return m.results }
func (m *mockSearch) Query() string                  { return m.query }
func (m *mockSearch) Pending() bool                  { return false }

type mockHealth struct {
	snapshot domain.HealthSnapshot
	polls    int
}

func (m *mockHealth) Poll(context.Context) (domain.HealthSnapshot, error) {
	m.polls++
	return m.snapshot, nil
}
func (m *mockHealth) Snapshot() domain.HealthSnapshot { return m.snapshot }

type mockClients struct {
	clients []domain.Client
	total   int
}

func (m *mockClients) Refresh(context.Context) error { return nil }
func (m *mockClients) Clients() []domain.Client      { return m.clients }
func (m *mockClients) Total() int                    { return m.total }
func (m *mockClients) Loading() bool                 { return false }

func testPorts() *Ports {
	return NewPorts(&mockChat{}, &mockDocuments{}, &mockSearch{}, &mockHealth{}, &mockClients{})
}
