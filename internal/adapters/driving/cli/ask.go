package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the wealth-planning assistant a question",
	Long: `Sends one question to the POLARIS assistant and prints the answer.

The backend is health-checked first: when every subsystem is ready the
question goes to the context-augmented endpoint, otherwise it falls back
to plain generation. Use --plain to skip the health check and force the
plain endpoint.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "skip the health check and use plain generation")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := context.Background()

	// One poll before the turn fixes the endpoint choice for it.
	if !askPlain && healthService != nil {
		if _, err := healthService.Poll(ctx); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: health check failed, using plain generation")
		}
	}

	answer, err := chatService.Submit(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if answer.IsError {
		fmt.Fprintln(cmd.ErrOrStderr(), answer.Text)
		if failure := chatService.LastFailure(); failure != nil && failure.Detail != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "detail: %s\n", failure.Detail)
		}
		return errors.New("the assistant could not answer")
	}

	cmd.Println(answer.Text)
	if answer.ContextUsed {
		cmd.Printf("\n(answered with %d chars of document context)\n", answer.ContextLength)
	}
	return nil
}
