package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"expenses/internal/cli"
	"expenses/internal/client"
	"expenses/internal/tui"
)

func rootCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "expenses-tui",
		Short: "Terminal client for the expense tracker",
		Long: `expenses-tui shows your expenses, a form to add or edit them and a
per-category summary. It talks to the expenses API server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := client.New(apiURL)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), api, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", defaultAPIURL(), "base URL of the expenses API (env EXPENSES_API_URL)")
	return cmd
}

func defaultAPIURL() string {
	if v := os.Getenv("EXPENSES_API_URL"); v != "" {
		return v
	}
	return client.DefaultBaseURL
}

func main() {
	cli.LoadEnvFile()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
