package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
)

// Function-field mocks for the driving ports, one per service.

type mockChatService struct {
	submitFunc func(ctx context.Context, input string) (domain.Message, error)
	failure    *domain.BackendError
}

func (m *mockChatService) Submit(ctx context.Context, input string) (domain.Message, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, input)
	}
	return domain.Message{Role: domain.RoleAssistant, Text: "ok"}, nil
}
func (m *mockChatService) Messages() []domain.Message        { return nil }
func (m *mockChatService) Pending() bool                     { return false }
func (m *mockChatService) LastFailure() *domain.BackendError { return m.failure }

type mockDocumentService struct {
	refreshFunc func(ctx context.Context) error
	uploadFunc  func(ctx context.Context, files []domain.UploadFile) (domain.UploadReport, error)
	indexFunc   func(ctx context.Context, rebuild bool) error
	deleteFunc  func(ctx context.Context, id int64) error
	docs        []domain.UploadedDocument
	stats       domain.IndexStats
}

func (m *mockDocumentService) Refresh(ctx context.Context) error {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}

func (m *mockDocumentService) Upload(ctx context.Context, files []domain.UploadFile) (domain.UploadReport, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, files)
	}
	return domain.UploadReport{Attempted: len(files), Uploaded: len(files)}, nil
}

func (m *mockDocumentService) TriggerIndexing(ctx context.Context, rebuild bool) error {
	if m.indexFunc != nil {
		return m.indexFunc(ctx, rebuild)
	}
	return nil
}

func (m *mockDocumentService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
func (m *mockDocumentService) RefreshStats(context.Context) error   { return nil }
func (m *mockDocumentService) Documents() []domain.UploadedDocument { return m.docs }
func (m *mockDocumentService) Stats() domain.IndexStats             { return m.stats }
func (m *mockDocumentService) UploadPending() bool                  { return false }

type mockSearchService struct {
	searchFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)
	opts       domain.SearchOptions
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

type mockHealthService struct {
	pollFunc func(ctx context.Context) (domain.HealthSnapshot, error)
	polls    int
}

func (m *mockHealthService) Poll(ctx context.Context) (domain.HealthSnapshot, error) {
	m.polls++
	if m.pollFunc != nil {
		return m.pollFunc(ctx)
	}
	return domain.HealthSnapshot{State: domain.HealthReady}, nil
}
func (m *mockHealthService) Snapshot() domain.HealthSnapshot { return domain.HealthSnapshot{} }

type mockClientService struct {
	refreshFunc func(ctx context.Context) error
	clients     []domain.Client
	total       int
}

func (m *mockClientService) Refresh(ctx context.Context) error {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}
func (m *mockClientService) Clients() []domain.Client { return m.clients }
func (m *mockClientService) Total() int               { return m.total }
func (m *mockClientService) Loading() bool            { return false }

// testServices bundles the mocks wired into the command tree.
type testServices struct {
	chat    *mockChatService
	docs    *mockDocumentService
	search  *mockSearchService
	health  *mockHealthService
	clients *mockClientService

	// lastSearchOpts records the options the search factory was called with.
	lastSearchOpts *domain.SearchOptions
}

// setupTestServices injects mocks into the command tree and restores the
// previous wiring when the test finishes.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		chat:    &mockChatService{},
		docs:    &mockDocumentService{},
		search:  &mockSearchService{},
		health:  &mockHealthService{},
		clients: &mockClientService{},
	}

	SetServices(&Services{
		Chat:     ts.chat,
		Document: ts.docs,
		Search:   ts.search,
		Health:   ts.health,
		Clients:  ts.clients,
		NewSearch: func(opts domain.SearchOptions) driving.SearchService {
			ts.lastSearchOpts = &opts
			return &mockSearchService{opts: opts, searchFunc: ts.search.searchFunc}
		},
	})

	t.Cleanup(func() {
		chatService = nil
		documentService = nil
		searchService = nil
		healthService = nil
		clientService = nil
		configStore = nil
		newSearchService = nil
		configure = nil
	})

	return ts
}

// executeCommand runs the root command with the given args and captures
// stdout and stderr. Flag state is reset first so tests do not leak
// values into each other.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags()

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// resetFlags restores every flag to its default between test runs.
func resetFlags() {
	for _, cmd := range append(rootCmd.Commands(), rootCmd, docsCmd) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
	}
	for _, sub := range docsCmd.Commands() {
		sub.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
	}
}
