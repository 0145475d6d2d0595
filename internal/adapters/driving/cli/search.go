package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

var (
	searchTopK      int
	searchThreshold float64
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents semantically",
	Long: `Runs a semantic search over the backend's document index and prints
the ranked results with relevance scores.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 10, "maximum number of results")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0.1, "minimum similarity score")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	svc := searchService
	if newSearchService != nil && (cmd.Flags().Changed("top-k") || cmd.Flags().Changed("threshold")) {
		svc = newSearchService(domain.SearchOptions{
			TopK:           searchTopK,
			Threshold:      searchThreshold,
			IncludeContext: true,
		})
	}
	if svc == nil {
		return errors.New("search service not configured")
	}

	results, err := svc.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = "(Untitled)"
		}

		cmd.Printf("  [%d] %s (%.2f)\n", results[i].Rank, title, results[i].Score)
		if results[i].Source != "" {
			cmd.Printf("      Source: %s\n", results[i].Source)
		}
		if results[i].Preview != "" {
			cmd.Printf("      %s\n", results[i].Preview)
		}
		cmd.Println()
	}

	return nil
}
