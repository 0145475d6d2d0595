package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for POLARIS.

The TUI provides a chat view, document management and semantic search
with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Send / Select
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the TUI needs an interactive terminal")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(chatService, documentService, searchService, healthService, clientService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("starting TUI: %w", err)
	}

	return app.WithContext(cmd.Context()).Run()
}
