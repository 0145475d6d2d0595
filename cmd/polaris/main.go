// Command polaris is the terminal client for the POLARIS wealth-planning
// backend. It wires the driven adapters (HTTP gateway, TOML config store)
// into the core services and hands them to the CLI driving adapter.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driven/backend"
	configfile "github.com/polaris-labs/polaris-cli/internal/adapters/driven/config/file"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/cli"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/core/services"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetConfigureFunc(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices constructs the service graph. Called once after flag
// parsing so the --backend and --config overrides are known.
func buildServices(backendURL, configDir string) (*cli.Services, error) {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	baseURL := backendURL
	if baseURL == "" {
		baseURL = store.GetString("backend.url")
	}
	if baseURL == "" {
		baseURL = backend.DefaultBaseURL
	}

	gatewayCfg := backend.Config{BaseURL: baseURL}
	if secs := store.GetInt("backend.timeout_seconds"); secs > 0 {
		gatewayCfg.Timeout = time.Duration(secs) * time.Second
	}
	if secs := store.GetInt("backend.chat_timeout_seconds"); secs > 0 {
		gatewayCfg.ChatTimeout = time.Duration(secs) * time.Second
	}
	gateway := backend.NewGateway(gatewayCfg)

	userID := store.GetInt("user.id")
	if userID == 0 {
		userID = 1
	}

	searchOpts := domain.SearchOptions{
		TopK:           store.GetInt("search.top_k"),
		Threshold:      store.GetFloat("search.threshold"),
		IncludeContext: true,
	}

	health := services.NewHealthAggregator(gateway)
	chat := services.NewChatOrchestrator(gateway, health, services.ChatConfig{
		UserID:       userID,
		DocumentType: store.GetString("chat.document_type"),
	})
	documents := services.NewDocumentPipeline(gateway, services.DocumentConfig{
		UserID:   userID,
		Category: store.GetString("docs.category"),
	})
	search := services.NewSearchController(gateway, searchOpts)
	clients := services.NewClientRoster(gateway, services.RosterConfig{
		UserID:  userID,
		PerPage: store.GetInt("clients.per_page"),
	})

	return &cli.Services{
		Chat:     chat,
		Document: documents,
		Search:   search,
		Health:   health,
		Clients:  clients,
		Config:   store,
		NewSearch: func(opts domain.SearchOptions) driving.SearchService {
			return services.NewSearchController(gateway, opts)
		},
	}, nil
}
