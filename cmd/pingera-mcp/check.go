package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/pingera-mcp/internal/tools"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test the connection to the Pingera API and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags)
		},
	}
}

// runCheck prints the connection envelope and fails when the API is
// unreachable or rejects the key.
func runCheck(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	logger := configureLogger(cfg, true)

	a, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*cfg.RequestTimeout())
	defer cancel()

	text, connected := tools.ConnectionReport(ctx, a.deps)
	fmt.Fprintln(cmd.OutOrStdout(), text)
	if !connected {
		return errors.New("connection check failed")
	}
	return nil
}
