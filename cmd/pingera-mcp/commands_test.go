package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/anatolykoptev/pingera-mcp/internal/envelope"
)

// isolate keeps config and .env discovery inside a temp dir.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestToolsCommand_JSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "tools", "--format", "json")
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	var c catalog
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if c.Mode != "read_only" {
		t.Errorf("mode = %q", c.Mode)
	}
	if len(c.Tools) == 0 || len(c.Resources) != 8 {
		t.Fatalf("tools = %d, resources = %d", len(c.Tools), len(c.Resources))
	}
	for _, info := range c.Tools {
		if info.Name == "create_page" && info.Enabled {
			t.Error("create_page enabled in read-only catalog")
		}
	}
}

func TestToolsCommand_YAMLReadWrite(t *testing.T) {
	isolate(t)
	out, err := execute(t, "tools", "--read-write")
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	var c catalog
	if err := yaml.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if c.Mode != "read_write" {
		t.Errorf("mode = %q", c.Mode)
	}
	for _, info := range c.Tools {
		if !info.Enabled {
			t.Errorf("%s disabled in read-write catalog", info.Name)
		}
	}
}

func TestToolsCommand_BadFormat(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "tools", "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   bool
		connected bool
	}{
		{"ok", http.StatusOK, `{"checks":[]}`, false, true},
		{"bad key", http.StatusUnauthorized, `{"detail":"invalid token"}`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "secret" {
					t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()
			t.Setenv("PINGERA_API_KEY", "secret")
			t.Setenv("PINGERA_BASE_URL", srv.URL)
			t.Setenv("PINGERA_MAX_RETRIES", "0")

			out, err := execute(t, "check")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			env, perr := envelope.Parse(strings.TrimSpace(out))
			if perr != nil {
				t.Fatalf("parse: %v\n%s", perr, out)
			}
			data, _ := env.Data.(map[string]any)
			if !env.Success || data["connected"] != tt.connected {
				t.Errorf("envelope = %+v", env)
			}
			if !tt.connected && data["error"] != "Authentication failed. Check your API key." {
				t.Errorf("error = %v", data["error"])
			}
		})
	}
}

func TestCheckCommand_MissingKey(t *testing.T) {
	isolate(t)
	t.Setenv("PINGERA_API_KEY", "")
	_, err := execute(t, "check")
	if err == nil || !strings.Contains(err.Error(), "api_key is required") {
		t.Errorf("err = %v", err)
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler("read_only")(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var h healthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Mode != "read_only" || h.Service != "pingera-mcp" {
		t.Errorf("health = %+v", h)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	if err != nil || !strings.Contains(out, "pingera-mcp "+version) {
		t.Errorf("out = %q, err = %v", out, err)
	}
}
