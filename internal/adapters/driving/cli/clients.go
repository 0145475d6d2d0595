package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clientsJSON bool

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List wealth-planning clients",
	Long:  `Fetches the client roster from the backend and prints it.`,
	RunE:  runClients,
}

func init() {
	clientsCmd.Flags().BoolVar(&clientsJSON, "json", false, "output the roster as JSON")
	rootCmd.AddCommand(clientsCmd)
}

func runClients(cmd *cobra.Command, _ []string) error {
	if clientService == nil {
		return errors.New("client service not configured")
	}

	if err := clientService.Refresh(context.Background()); err != nil {
		return fmt.Errorf("loading clients failed: %w", err)
	}

	clients := clientService.Clients()

	if clientsJSON {
		data, err := json.MarshalIndent(clients, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal clients: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(clients) == 0 {
		cmd.Println("No clients found.")
		return nil
	}

	cmd.Printf("Clients (%d total):\n\n", clientService.Total())
	for _, c := range clients {
		cmd.Printf("  [%d] %s\n", c.ID, c.FullName)
		if c.Email != "" {
			cmd.Printf("      %s\n", c.Email)
		}
		cmd.Printf("      Total assets: $%.2f\n\n", c.TotalAssets)
	}
	return nil
}
