package services

import (
	"context"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
)

// mockGateway implements driven.Gateway with overridable function fields
// and per-endpoint call counters.
type mockGateway struct {
	generateFunc  func(ctx context.Context, prompt, docContext, documentType string) (*driven.GenerateResult, error)
	chatRAGFunc   func(ctx context.Context, prompt string, userID int, documentType string) (*driven.RAGChatResult, error)
	clientsFunc   func(ctx context.Context, userID, perPage int) ([]domain.Client, int, error)
	listDocsFunc  func(ctx context.Context) ([]domain.UploadedDocument, error)
	uploadFunc    func(ctx context.Context, file domain.UploadFile, userID int, category string) error
	deleteFunc    func(ctx context.Context, id int64) error
	indexFunc     func(ctx context.Context, rebuild bool) error
	statsFunc     func(ctx context.Context) (*domain.IndexStats, error)
	searchFunc    func(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
	ragHealthFunc func(ctx context.Context) (domain.SubsystemHealth, error)

	generateCalls  int
	chatRAGCalls   int
	listDocsCalls  int
	uploadCalls    int
	deleteCalls    int
	indexCalls     int
	statsCalls     int
	searchCalls    int
	ragHealthCalls int
}

var _ driven.Gateway = (*mockGateway)(nil)

func (m *mockGateway) GenerateDocument(ctx context.Context, prompt, docContext, documentType string) (*driven.GenerateResult, error) {
	m.generateCalls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, docContext, documentType)
	}
	return &driven.GenerateResult{Response: "generated"}, nil
}

func (m *mockGateway) ChatWithRAG(ctx context.Context, prompt string, userID int, documentType string) (*driven.RAGChatResult, error) {
	m.chatRAGCalls++
	if m.chatRAGFunc != nil {
		return m.chatRAGFunc(ctx, prompt, userID, documentType)
	}
	return &driven.RAGChatResult{Response: "augmented"}, nil
}

func (m *mockGateway) ListClients(ctx context.Context, userID, perPage int) ([]domain.Client, int, error) {
	if m.clientsFunc != nil {
		return m.clientsFunc(ctx, userID, perPage)
	}
	return nil, 0, nil
}

func (m *mockGateway) ListDocuments(ctx context.Context) ([]domain.UploadedDocument, error) {
	m.listDocsCalls++
	if m.listDocsFunc != nil {
		return m.listDocsFunc(ctx)
	}
	return nil, nil
}

func (m *mockGateway) UploadDocument(ctx context.Context, file domain.UploadFile, userID int, category string) error {
	m.uploadCalls++
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, file, userID, category)
	}
	return nil
}

func (m *mockGateway) DeleteDocument(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockGateway) TriggerIndexing(ctx context.Context, rebuild bool) error {
	m.indexCalls++
	if m.indexFunc != nil {
		return m.indexFunc(ctx, rebuild)
	}
	return nil
}

func (m *mockGateway) IndexStats(ctx context.Context) (*domain.IndexStats, error) {
	m.statsCalls++
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &domain.IndexStats{}, nil
}

func (m *mockGateway) SemanticSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.searchCalls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, opts)
	}
	return nil, nil
}

func (m *mockGateway) RAGHealth(ctx context.Context) (domain.SubsystemHealth, error) {
	m.ragHealthCalls++
	if m.ragHealthFunc != nil {
		return m.ragHealthFunc(ctx)
	}
	return domain.SubsystemHealth{}, nil
}

// readyHealth is a HealthService stub pinned to a fixed snapshot.
type stubHealth struct {
	snapshot domain.HealthSnapshot
}

func (s *stubHealth) Poll(context.Context) (domain.HealthSnapshot, error) {
	return s.snapshot, nil
}

func (s *stubHealth) Snapshot() domain.HealthSnapshot {
	return s.snapshot
}

func readyHealth() *stubHealth {
	return &stubHealth{snapshot: domain.HealthSnapshot{
		State: domain.HealthReady,
		Probes: domain.SubsystemHealth{
			ChatInference:    true,
			KeyConfigured:    true,
			EmbeddingService: true,
			SearchIndex:      true,
		},
	}}
}

func degradedHealth() *stubHealth {
	return &stubHealth{snapshot: domain.HealthSnapshot{
		State:  domain.HealthDegraded,
		Probes: domain.SubsystemHealth{KeyConfigured: true},
	}}
}
