package tools

import (
	"context"
	"time"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

func registerHeartbeats(r *Registry) {
	add(r, ToolSpec[ListHeartbeatsInput]{
		Name:        "list_heartbeats",
		Description: "List heartbeat monitors (cron and background job check-ins), optionally filtered by status.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in ListHeartbeatsInput) (any, error) {
			return c.ListHeartbeats(ctx, in.Page, in.PageSize, in.Status)
		},
	})
	add(r, ToolSpec[HeartbeatInput]{
		Name:        "get_heartbeat_details",
		Description: "Get one heartbeat monitor, including its last ping.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in HeartbeatInput) (any, error) {
			return c.GetHeartbeat(ctx, in.HeartbeatID)
		},
	})
	add(r, ToolSpec[HeartbeatLogsInput]{
		Name:        "get_heartbeat_logs",
		Description: "Get the ping log of a heartbeat, optionally limited to a from/to time range.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in HeartbeatLogsInput) (any, error) {
			return c.HeartbeatLogs(ctx, in.HeartbeatID, pingera.LogQuery{
				From: in.From, To: in.To, Page: in.Page, PageSize: in.PageSize,
			})
		},
	})
	add(r, ToolSpec[CreateInput]{
		Name:        "create_heartbeat",
		Description: "Create a heartbeat monitor. data holds the fields (name, interval, grace_period, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CreateInput) (any, error) {
			return c.CreateHeartbeat(ctx, in.Data)
		},
	})
	add(r, ToolSpec[HeartbeatUpdateInput]{
		Name:        "update_heartbeat",
		Description: "Update the given fields of a heartbeat monitor.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in HeartbeatUpdateInput) (any, error) {
			return c.UpdateHeartbeat(ctx, in.HeartbeatID, in.Data)
		},
	})
	add(r, ToolSpec[HeartbeatInput]{
		Name:        "delete_heartbeat",
		Description: "Permanently delete a heartbeat monitor.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in HeartbeatInput) (any, error) {
			if err := c.DeleteHeartbeat(ctx, in.HeartbeatID); err != nil {
				return nil, err
			}
			return deleted("heartbeat_id", in.HeartbeatID), nil
		},
	})
	add(r, ToolSpec[HeartbeatInput]{
		Name:        "send_heartbeat_ping",
		Description: "Record a manual ping for a heartbeat, as the monitored job would.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in HeartbeatInput) (any, error) {
			res, err := c.SendHeartbeatPing(ctx, in.HeartbeatID)
			if err != nil {
				return nil, err
			}
			if res == nil {
				// 204 or empty body.
				return map[string]any{
					"ping_sent": true,
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				}, nil
			}
			return res, nil
		},
	})
}
