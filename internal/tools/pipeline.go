// Package tools exposes the Pingera API as MCP tools and resources. Every
// tool runs through the same pipeline: validate arguments, call the API,
// normalize the result and wrap it in a response envelope.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anatolykoptev/pingera-mcp/internal/envelope"
	"github.com/anatolykoptev/pingera-mcp/internal/metrics"
	"github.com/anatolykoptev/pingera-mcp/internal/normalize"
	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
	"github.com/anatolykoptev/pingera-mcp/internal/telemetry"
	"github.com/anatolykoptev/pingera-mcp/internal/validate"
)

// Kind separates read tools from tools that change state.
type Kind string

const (
	KindRead  Kind = "read"
	KindWrite Kind = "write"
)

// Deps are the collaborators shared by every pipeline.
type Deps struct {
	Client     *pingera.Client
	Normalizer *normalize.Normalizer
	Validator  *validator.Validate
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	ReadWrite  bool
	ServerName string
}

func (d *Deps) withDefaults() {
	if d.Normalizer == nil {
		d.Normalizer = normalize.New(normalize.Options{Logger: d.Logger})
	}
	if d.Validator == nil {
		d.Validator = validate.New()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
}

// ToolSpec declares one tool. Call receives validated input and returns a
// raw API value; the pipeline does the rest.
type ToolSpec[In any] struct {
	Name        string
	Description string
	Kind        Kind
	Call        func(ctx context.Context, c *pingera.Client, in In) (any, error)
}

// Info describes a tool in the catalog.
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

// Registry collects tool declarations and, when bound to a server,
// registers the ones allowed by the operation mode.
type Registry struct {
	server    *mcp.Server
	deps      Deps
	tools     []Info
	resources []ResourceInfo
}

// NewRegistry returns a registry bound to server. A nil server only builds
// the catalog.
func NewRegistry(server *mcp.Server, deps Deps) *Registry {
	deps.withDefaults()
	return &Registry{server: server, deps: deps}
}

// Tools returns the catalog in declaration order.
func (r *Registry) Tools() []Info { return r.tools }

// Resources returns the resource catalog in declaration order.
func (r *Registry) Resources() []ResourceInfo { return r.resources }

func add[In any](r *Registry, spec ToolSpec[In]) {
	enabled := spec.Kind != KindWrite || r.deps.ReadWrite
	r.tools = append(r.tools, Info{
		Name:        spec.Name,
		Description: spec.Description,
		Kind:        spec.Kind,
		Enabled:     enabled,
	})
	if r.server == nil || !enabled {
		return
	}

	tool := &mcp.Tool{Name: spec.Name, Description: spec.Description}
	if spec.Kind == KindRead {
		tool.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true}
	}
	deps := &r.deps
	mcp.AddTool(r.server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		text := deps.run(ctx, spec.Name, func(ctx context.Context) (any, error) {
			if err := validate.Struct(deps.Validator, in); err != nil {
				return nil, err
			}
			return spec.Call(ctx, deps.Client, in)
		})
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}, nil, nil
	})
}

// run executes one pipeline and always returns an envelope.
func (d *Deps) run(ctx context.Context, name string, call func(context.Context) (any, error)) string {
	start := time.Now()
	requestID := uuid.NewString()
	ctx, span := telemetry.Tracer().Start(ctx, "tool "+name, trace.WithAttributes(
		attribute.String("mcp.tool", name),
		attribute.String("request_id", requestID),
	))
	defer span.End()

	text, err := d.execute(ctx, call)
	elapsed := time.Since(start)
	d.Metrics.ObserveTool(name, err == nil, elapsed)

	attrs := []any{
		slog.String("tool", name),
		slog.String("request_id", requestID),
		slog.Duration("elapsed", elapsed),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.Logger.Warn("tool call failed", append(attrs, slog.Any("error", err))...)
	} else {
		d.Logger.Debug("tool call", attrs...)
	}
	return text
}

func (d *Deps) execute(ctx context.Context, call func(context.Context) (any, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			d.Logger.Error("tool panic", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			text = envelope.FromError(err)
		}
	}()

	data, err := call(ctx)
	if err != nil {
		return envelope.FromError(err), err
	}
	out := d.Normalizer.Normalize(data)
	if rec, ok := out.(normalize.Record); ok && normalize.IsExtractionFailed(rec) {
		d.Metrics.ExtractionFailed()
	}
	return envelope.Success(out), nil
}
