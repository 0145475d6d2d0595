// Package cli implements the command-line driving adapter. Each command
// file registers itself on the root command in its init function; services
// are injected once from main before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driven"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
	"github.com/polaris-labs/polaris-cli/internal/logger"
)

// version is stamped from main at startup.
var version = "dev"

// Injected services, set once via SetServices before Execute.
var (
	chatService     driving.ChatService
	documentService driving.DocumentService
	searchService   driving.SearchService
	healthService   driving.HealthService
	clientService   driving.ClientService
	configStore     driven.ConfigStore

	// newSearchService builds a search controller with per-invocation
	// options, for commands that override top-k or threshold.
	newSearchService func(opts domain.SearchOptions) driving.SearchService
)

// Global flags.
var (
	flagVerbose bool
	flagBackend string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "polaris",
	Short: "Terminal client for the POLARIS wealth-planning backend",
	Long: `polaris is a terminal client for the POLARIS wealth-planning backend.

It drives the backend's chat, document ingestion and semantic search APIs
from the command line, and ships an interactive TUI (polaris tui).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if chatService == nil && configure != nil {
			// Services are built only after flags are parsed, so the
			// --backend and --config overrides can take effect.
			services, err := configure(flagBackend, flagConfig)
			if err != nil {
				return err
			}
			SetServices(services)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config directory")
}

// Services aggregates everything the commands need.
type Services struct {
	Chat      driving.ChatService
	Document  driving.DocumentService
	Search    driving.SearchService
	Health    driving.HealthService
	Clients   driving.ClientService
	Config    driven.ConfigStore
	NewSearch func(opts domain.SearchOptions) driving.SearchService
}

// SetServices injects the core services into the command tree.
func SetServices(s *Services) {
	chatService = s.Chat
	documentService = s.Document
	searchService = s.Search
	healthService = s.Health
	clientService = s.Clients
	configStore = s.Config
	newSearchService = s.NewSearch
}

// configure builds the service graph once flags are known.
var configure func(backend, configPath string) (*Services, error)

// SetConfigureFunc registers the service factory called after flag parsing.
func SetConfigureFunc(fn func(backend, configPath string) (*Services, error)) {
	configure = fn
}

// SetVersion stamps the build version shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// BackendFlag returns the --backend override, if any.
func BackendFlag() string {
	return flagBackend
}

// ConfigFlag returns the --config override, if any.
func ConfigFlag() string {
	return flagConfig
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
