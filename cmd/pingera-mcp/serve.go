package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/pingera-mcp/internal/telemetry"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio by default, streamable HTTP with --http)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			useHTTP := cmd.Flags().Changed("http")
			return runServe(cmd.Context(), flags, useHTTP, httpAddr)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve streamable HTTP on this address instead of stdio (--http= uses http_addr)")
	return cmd
}

func runServe(ctx context.Context, flags *rootFlags, useHTTP bool, httpAddr string) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if useHTTP && httpAddr != "" {
		cfg.HTTPAddr = httpAddr
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger := configureLogger(cfg, !useHTTP)

	shutdownTracing, err := telemetry.Setup(cfg.Trace, nil)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("trace shutdown", slog.Any("error", err))
		}
	}()

	a, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	server, registry := a.buildMCPServer()

	enabled := 0
	for _, info := range registry.Tools() {
		if info.Enabled {
			enabled++
		}
	}
	transport := "stdio"
	if useHTTP {
		transport = "http"
	}
	logger.Info("pingera MCP server",
		slog.String("version", version),
		slog.String("transport", transport),
		slog.String("mode", string(cfg.Mode)),
		slog.String("base_url", a.client.BaseURL()),
		slog.Int("tools", enabled),
		slog.Int("resources", len(registry.Resources())))

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !useHTTP {
		if err := server.Run(sigCtx, &mcp.StdioTransport{}); err != nil && sigCtx.Err() == nil {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	}

	return startHTTPServer(sigCtx, &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.buildMux(server),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * cfg.RequestTimeout(),
	}, "MCP server")
}
