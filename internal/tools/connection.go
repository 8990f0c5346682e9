package tools

import (
	"context"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

// Status is reported by test_pingera_connection and pingera://status.
type Status struct {
	pingera.ConnectionInfo
	ServerName string   `json:"server_name,omitempty"`
	ServerMode string   `json:"server_mode"`
	Features   Features `json:"features"`
}

// Features lists the tool groups enabled by the operation mode.
type Features struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

func (d *Deps) status(ctx context.Context) Status {
	mode := "read_only"
	if d.ReadWrite {
		mode = "read_write"
	}
	return Status{
		ConnectionInfo: d.Client.TestConnection(ctx),
		ServerName:     d.ServerName,
		ServerMode:     mode,
		Features:       Features{Read: true, Write: d.ReadWrite},
	}
}

func registerConnection(r *Registry) {
	deps := &r.deps
	add(r, ToolSpec[NoInput]{
		Name:        "test_pingera_connection",
		Description: "Test connectivity and authentication against the Pingera API. Reports base URL, API version and the server's operation mode.",
		Kind:        KindRead,
		Call: func(ctx context.Context, _ *pingera.Client, _ NoInput) (any, error) {
			return deps.status(ctx), nil
		},
	})
}

// ConnectionReport runs the connection test through the tool pipeline and
// returns the envelope with whether the API was reachable.
func ConnectionReport(ctx context.Context, deps Deps) (string, bool) {
	deps.withDefaults()
	connected := false
	text := deps.run(ctx, "test_pingera_connection", func(ctx context.Context) (any, error) {
		st := deps.status(ctx)
		connected = st.Connected
		return st, nil
	})
	return text, connected
}
