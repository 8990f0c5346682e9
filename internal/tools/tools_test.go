package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/anatolykoptev/pingera-mcp/internal/envelope"
	"github.com/anatolykoptev/pingera-mcp/internal/metrics"
	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI serves a small subset of the Pingera API and records what it saw.
type fakeAPI struct {
	mu       sync.Mutex
	hits     int
	query    url.Values
	body     map[string]any
	lastPath string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits++
	f.query = r.URL.Query()
	f.lastPath = r.Method + " " + r.URL.Path
	f.body = nil
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&f.body)
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.Method + " " + r.URL.Path {
	case "GET /v1/pages":
		io.WriteString(w, `{"pages":[{"id":"p1","name":"Main"}],"total":1,"page":1,"per_page":100}`)
	case "GET /v1/pages/p1":
		io.WriteString(w, `{"id":"p1","name":"Main","created_at":"2024-01-02T03:04:05Z"}`)
	case "GET /v1/pages/p1/components":
		io.WriteString(w, `[{"id":"c1","name":"API","status":"operational"}]`)
	case "GET /v1/checks":
		io.WriteString(w, `{"checks":[],"total":0}`)
	case "POST /v1/checks/c1/pause":
		io.WriteString(w, `{}`)
	case "DELETE /v1/pages/p1":
		w.WriteHeader(http.StatusNoContent)
	case "POST /v1/checks/execute":
		io.WriteString(w, `{"job_id":"j1","status":"pending"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Not found"}`)
	}
}

func (f *fakeAPI) snapshot() (int, url.Values, map[string]any, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits, f.query, f.body, f.lastPath
}

type harness struct {
	cs      *mcp.ClientSession
	api     *fakeAPI
	apiURL  string
	metrics *metrics.Metrics
}

func newHarness(t *testing.T, readWrite bool) *harness {
	t.Helper()
	api := &fakeAPI{}
	h := newHarnessWith(t, readWrite, api)
	h.api = api
	return h
}

// newHarnessWith connects an in-memory MCP client to a server whose API
// client talks to handler.
func newHarnessWith(t *testing.T, readWrite bool, handler http.Handler) *harness {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := pingera.New(pingera.Options{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("pingera.New: %v", err)
	}
	t.Cleanup(client.Close)

	m := metrics.New(prometheus.NewRegistry())
	server := mcp.NewServer(&mcp.Implementation{Name: "pingera-test", Version: "test"}, nil)
	RegisterAll(server, Deps{
		Client:     client,
		Metrics:    m,
		Logger:     quietLogger(),
		ReadWrite:  readWrite,
		ServerName: "Pingera Test",
	})

	ctx := context.Background()
	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	cs, err := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil).Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})
	return &harness{cs: cs, apiURL: srv.URL, metrics: m}
}

func (h *harness) call(t *testing.T, name string, args map[string]any) envelope.Envelope {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := h.cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if res.IsError {
		t.Fatalf("CallTool(%s) returned a protocol-level error: %+v", name, res.Content)
	}
	if len(res.Content) != 1 {
		t.Fatalf("CallTool(%s) content = %d items, want 1", name, len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s) content is %T", name, res.Content[0])
	}
	env, err := envelope.Parse(text.Text)
	if err != nil {
		t.Fatalf("parse envelope: %v\n%s", err, text.Text)
	}
	return env
}

func dataMap(t *testing.T, env envelope.Envelope) map[string]any {
	t.Helper()
	if !env.Success {
		t.Fatalf("envelope failed: %s", env.Error)
	}
	m, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T, want object", env.Data)
	}
	return m
}

func TestListTools_ModeGating(t *testing.T) {
	for _, readWrite := range []bool{false, true} {
		h := newHarness(t, readWrite)
		res, err := h.cs.ListTools(context.Background(), &mcp.ListToolsParams{})
		if err != nil {
			t.Fatalf("ListTools: %v", err)
		}
		names := map[string]bool{}
		for _, tool := range res.Tools {
			names[tool.Name] = true
		}
		if !names["list_pages"] || !names["test_pingera_connection"] {
			t.Errorf("readWrite=%v: read tools missing", readWrite)
		}
		if names["create_page"] != readWrite || names["pause_check"] != readWrite {
			t.Errorf("readWrite=%v: create_page=%v pause_check=%v",
				readWrite, names["create_page"], names["pause_check"])
		}

		want := 0
		for _, info := range Catalog(readWrite).Tools() {
			if info.Enabled {
				want++
			}
		}
		if len(res.Tools) != want {
			t.Errorf("readWrite=%v: %d tools registered, catalog says %d", readWrite, len(res.Tools), want)
		}
	}
}

func TestWriteToolUnavailableInReadOnly(t *testing.T) {
	h := newHarness(t, false)
	_, err := h.cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "delete_page",
		Arguments: map[string]any{"page_id": "p1"},
	})
	if err == nil {
		t.Fatal("expected unknown tool error")
	}
	if hits, _, _, _ := h.api.snapshot(); hits != 0 {
		t.Errorf("API hit %d times", hits)
	}
}

func TestListPages(t *testing.T) {
	h := newHarness(t, false)
	data := dataMap(t, h.call(t, "list_pages", map[string]any{"per_page": 500}))

	_, query, _, _ := h.api.snapshot()
	if got := query.Get("per_page"); got != "100" {
		t.Errorf("per_page forwarded as %q, want clamped 100", got)
	}
	pages, ok := data["pages"].([]any)
	if !ok || len(pages) != 1 {
		t.Fatalf("pages = %#v", data["pages"])
	}
	if page := pages[0].(map[string]any); page["id"] != "p1" || page["name"] != "Main" {
		t.Errorf("page = %v", page)
	}
	if data["total"] != float64(1) {
		t.Errorf("total = %v", data["total"])
	}
	if got := testutil.ToFloat64(h.metrics.ToolCallsTotal.WithLabelValues("list_pages", metrics.OutcomeOK)); got != 1 {
		t.Errorf("ok calls = %v", got)
	}
}

func TestGetPageDetails(t *testing.T) {
	h := newHarness(t, false)
	data := dataMap(t, h.call(t, "get_page_details", map[string]any{"page_id": "p1"}))
	if data["id"] != "p1" {
		t.Errorf("id = %v", data["id"])
	}
	if data["created_at"] != "2024-01-02T03:04:05Z" {
		t.Errorf("created_at = %v", data["created_at"])
	}
	if _, ok := data["updated_at"]; ok {
		t.Error("nil updated_at should be omitted")
	}
}

func TestValidationFailures(t *testing.T) {
	h := newHarness(t, true)
	tests := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"get_page_details", nil, "page_id is required"},
		{"get_page_details", map[string]any{"page_id": "a/b"}, "page_id must be a non-empty identifier"},
		{"get_component_details", map[string]any{"page_id": "p1"}, "component_id is required"},
		{"create_page", map[string]any{"data": map[string]any{}}, "data must be a non-empty object"},
		{"execute_custom_check", map[string]any{"url": "not a url"}, "url must be a valid URL"},
	}
	for _, tt := range tests {
		env := h.call(t, tt.tool, tt.args)
		if env.Success {
			t.Errorf("%s: expected failure", tt.tool)
			continue
		}
		if !strings.Contains(env.Error, tt.want) {
			t.Errorf("%s: error = %q, want containing %q", tt.tool, env.Error, tt.want)
		}
		if env.Data != nil {
			t.Errorf("%s: data = %v, want null", tt.tool, env.Data)
		}
	}
	if hits, _, _, _ := h.api.snapshot(); hits != 0 {
		t.Errorf("invalid calls reached the API %d times", hits)
	}
	if got := testutil.ToFloat64(h.metrics.ToolCallsTotal.WithLabelValues("get_page_details", metrics.OutcomeError)); got != 2 {
		t.Errorf("error calls = %v, want 2", got)
	}
}

func TestAPIErrorBecomesFailure(t *testing.T) {
	h := newHarness(t, false)
	env := h.call(t, "get_page_details", map[string]any{"page_id": "missing"})
	if env.Success {
		t.Fatal("expected failure")
	}
	if env.Error != "API error 404: Not found" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestWriteTools(t *testing.T) {
	h := newHarness(t, true)

	data := dataMap(t, h.call(t, "pause_check", map[string]any{"check_id": "c1"}))
	if data["message"] != "Check c1 paused successfully" || data["status"] != "paused" {
		t.Errorf("pause result = %v", data)
	}

	data = dataMap(t, h.call(t, "delete_page", map[string]any{"page_id": "p1"}))
	if data["page_id"] != "p1" || data["deleted"] != true {
		t.Errorf("delete result = %v", data)
	}
	if _, _, _, last := h.api.snapshot(); last != "DELETE /v1/pages/p1" {
		t.Errorf("last request = %q", last)
	}
}

func TestExecuteCustomCheck_Defaults(t *testing.T) {
	h := newHarness(t, true)
	data := dataMap(t, h.call(t, "execute_custom_check", map[string]any{"url": "https://example.com"}))
	if data["job_id"] != "j1" {
		t.Errorf("job_id = %v", data["job_id"])
	}

	_, _, body, _ := h.api.snapshot()
	want := map[string]any{
		"url":     "https://example.com",
		"type":    "web",
		"timeout": float64(30),
		"name":    "On-demand check for https://example.com",
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%s] = %v, want %v", k, body[k], v)
		}
	}
}

func TestConnectionTool(t *testing.T) {
	h := newHarness(t, false)
	data := dataMap(t, h.call(t, "test_pingera_connection", nil))
	if data["connected"] != true {
		t.Errorf("connected = %v (error %v)", data["connected"], data["error"])
	}
	if data["base_url"] != h.apiURL {
		t.Errorf("base_url = %v, want %s", data["base_url"], h.apiURL)
	}
	if data["server_mode"] != "read_only" || data["api_version"] != "v1" {
		t.Errorf("status = %v", data)
	}
	features, _ := data["features"].(map[string]any)
	if features["read"] != true || features["write"] != false {
		t.Errorf("features = %v", features)
	}
}

func TestResources(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	templates, err := h.cs.ListResourceTemplates(ctx, &mcp.ListResourceTemplatesParams{})
	if err != nil {
		t.Fatalf("ListResourceTemplates: %v", err)
	}
	if len(templates.ResourceTemplates) != 3 {
		t.Errorf("templates = %d, want 3", len(templates.ResourceTemplates))
	}
	resources, err := h.cs.ListResources(ctx, &mcp.ListResourcesParams{})
	if err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if len(resources.Resources) != 5 {
		t.Errorf("resources = %d, want 5", len(resources.Resources))
	}

	read := func(uri string) map[string]any {
		t.Helper()
		res, err := h.cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
		if err != nil {
			t.Fatalf("ReadResource(%s): %v", uri, err)
		}
		if len(res.Contents) != 1 || res.Contents[0].MIMEType != mimeJSON {
			t.Fatalf("ReadResource(%s) contents = %+v", uri, res.Contents)
		}
		env, err := envelope.Parse(res.Contents[0].Text)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		return dataMap(t, env)
	}

	if page := read("pingera://pages/p1"); page["id"] != "p1" {
		t.Errorf("page = %v", page)
	}
	comps := read("pingera://pages/p1/components")
	if items, _ := comps["components"].([]any); len(items) != 1 {
		t.Errorf("components = %v", comps)
	}
	if status := read("pingera://status"); status["connected"] != true {
		t.Errorf("status = %v", status)
	}
}

func TestCatalog(t *testing.T) {
	r := Catalog(false)
	seen := map[string]bool{}
	writes := 0
	for _, info := range r.Tools() {
		if seen[info.Name] {
			t.Errorf("duplicate tool %s", info.Name)
		}
		seen[info.Name] = true
		if info.Kind == KindWrite {
			writes++
			if info.Enabled {
				t.Errorf("%s enabled in read-only catalog", info.Name)
			}
		}
		if info.Description == "" {
			t.Errorf("%s has no description", info.Name)
		}
	}
	if len(r.Tools()) != 52 {
		t.Errorf("tools = %d, want 52", len(r.Tools()))
	}
	if writes != 26 {
		t.Errorf("write tools = %d, want 26", writes)
	}
	if len(r.Resources()) != 8 {
		t.Errorf("resources = %d, want 8", len(r.Resources()))
	}
}
