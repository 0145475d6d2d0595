package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend readiness",
	Long: `Polls the backend's per-subsystem health probes and prints them.

Exits non-zero when the backend is degraded, so the command can be used
in scripts and health checks.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	snapshot, err := healthService.Poll(context.Background())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	printProbe(cmd, "chat inference", snapshot.Probes.ChatInference)
	printProbe(cmd, "API key", snapshot.Probes.KeyConfigured)
	printProbe(cmd, "embedding service", snapshot.Probes.EmbeddingService)
	printProbe(cmd, "search index", snapshot.Probes.SearchIndex)
	cmd.Println()

	if snapshot.State == domain.HealthReady {
		cmd.Println("Backend ready.")
		return nil
	}
	return errors.New("backend degraded")
}

func printProbe(cmd *cobra.Command, name string, ok bool) {
	mark := "✗"
	if ok {
		mark = "✓"
	}
	cmd.Printf("  %s %s\n", mark, name)
}
