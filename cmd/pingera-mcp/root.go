package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/pingera-mcp/internal/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configFile string
	envFile    string
	logLevel   string
	readWrite  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "pingera-mcp",
		Short: "MCP server for the Pingera monitoring API",
		Long: `pingera-mcp exposes Pingera status pages, components, checks, alerts,
heartbeats and incidents as MCP tools and resources.

Configuration comes from pingera-mcp.yaml, PINGERA_* environment variables
and a .env file. Write tools are only available in read_write mode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotenv(flags.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file (default: search ./, ~/.pingera-mcp, /etc/pingera-mcp)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Dotenv file loaded before configuration")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&flags.readWrite, "read-write", false, "Enable write tools regardless of the configured mode")

	cmd.AddCommand(
		newServeCmd(flags),
		newCheckCmd(flags),
		newToolsCmd(flags),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig applies command-line overrides on top of the loaded config.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.readWrite {
		cfg.Mode = config.ModeReadWrite
	}
	if lvl := strings.TrimSpace(f.logLevel); lvl != "" {
		switch strings.ToLower(lvl) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(lvl)
		default:
			return nil, fmt.Errorf("invalid --log-level %q", lvl)
		}
	}
	return cfg, nil
}

// configureLogger installs the default slog logger. stdout belongs to the
// MCP stdio transport, so stdio mode logs to stderr.
func configureLogger(cfg *config.Config, stdio bool) *slog.Logger {
	var w io.Writer = os.Stdout
	if stdio {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pingera-mcp %s\n", version)
		},
	}
}
