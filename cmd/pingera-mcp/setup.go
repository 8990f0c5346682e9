package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anatolykoptev/pingera-mcp/internal/config"
	"github.com/anatolykoptev/pingera-mcp/internal/metrics"
	"github.com/anatolykoptev/pingera-mcp/internal/normalize"
	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
	"github.com/anatolykoptev/pingera-mcp/internal/tools"
	"github.com/anatolykoptev/pingera-mcp/internal/validate"
)

// app holds everything a serve or check run needs.
type app struct {
	cfg      *config.Config
	client   *pingera.Client
	deps     tools.Deps
	registry *prometheus.Registry
}

// buildApp wires the API client, metrics and pipeline dependencies.
func buildApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client, err := pingera.New(pingera.Options{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.RequestTimeout(),
		MaxRetries: cfg.MaxRetries,
		UserAgent:  "pingera-mcp/" + version,
		Observer:   m,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		client: client,
		deps: tools.Deps{
			Client:     client,
			Normalizer: normalize.New(cfg.NormalizerOptions(logger)),
			Validator:  validate.New(),
			Metrics:    m,
			Logger:     logger,
			ReadWrite:  cfg.IsReadWrite(),
			ServerName: cfg.ServerName,
		},
		registry: reg,
	}, nil
}

func (a *app) Close() { a.client.Close() }

// buildMCPServer creates an MCP server with every allowed tool and resource.
func (a *app) buildMCPServer() (*mcp.Server, *tools.Registry) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    a.cfg.ServerName,
		Version: version,
	}, nil)
	return server, tools.RegisterAll(server, a.deps)
}

// buildMCPHTTPHandler returns a streamable HTTP handler for server.
func buildMCPHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}

// buildMux routes MCP, health and metrics endpoints.
func (a *app) buildMux(server *mcp.Server) *http.ServeMux {
	mx := http.NewServeMux()
	h := buildMCPHTTPHandler(server)
	mx.Handle("/mcp", h)
	mx.Handle("/mcp/", h)
	mx.HandleFunc("GET /health", healthHandler(string(a.cfg.Mode)))
	mx.Handle("GET /metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	return mx
}

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Mode    string `json:"mode,omitempty"`
}

// healthHandler reports liveness only; it does not call the API.
func healthHandler(mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthStatus{
			Status:  "ok",
			Service: "pingera-mcp",
			Version: version,
			Mode:    mode,
		})
	}
}

// startHTTPServer runs srv until ctx is done, then shuts it down.
// It returns the listen error, if any.
func startHTTPServer(ctx context.Context, srv *http.Server, label string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info(label+" listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error(label+" failed", slog.Any("error", err))
		}
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down " + label)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn(label+" shutdown", slog.Any("error", err))
	}
	slog.Info(label + " stopped")
	return nil
}
