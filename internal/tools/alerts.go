package tools

import (
	"context"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

func registerAlerts(r *Registry) {
	add(r, ToolSpec[PaginationInput]{
		Name:        "list_alerts",
		Description: "List alert rules.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in PaginationInput) (any, error) {
			return c.ListAlerts(ctx, in.Page, in.PageSize)
		},
	})
	add(r, ToolSpec[AlertInput]{
		Name:        "get_alert_details",
		Description: "Get one alert rule.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in AlertInput) (any, error) {
			return c.GetAlert(ctx, in.AlertID)
		},
	})
	add(r, ToolSpec[NoInput]{
		Name:        "get_alert_statistics",
		Description: "Get alert statistics for the organization.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, _ NoInput) (any, error) {
			return c.AlertStats(ctx)
		},
	})
	add(r, ToolSpec[NoInput]{
		Name:        "list_alert_channels",
		Description: "List notification channels (email, webhook, telegram, ...) alerts can deliver to.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, _ NoInput) (any, error) {
			return c.ListAlertChannels(ctx)
		},
	})
	add(r, ToolSpec[CreateInput]{
		Name:        "create_alert",
		Description: "Create an alert rule. data holds the rule fields (name, check_id, conditions, channels, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CreateInput) (any, error) {
			return c.CreateAlert(ctx, in.Data)
		},
	})
	add(r, ToolSpec[AlertUpdateInput]{
		Name:        "update_alert",
		Description: "Update the given fields of an alert rule.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in AlertUpdateInput) (any, error) {
			return c.UpdateAlert(ctx, in.AlertID, in.Data)
		},
	})
	add(r, ToolSpec[AlertInput]{
		Name:        "delete_alert",
		Description: "Permanently delete an alert rule.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in AlertInput) (any, error) {
			if err := c.DeleteAlert(ctx, in.AlertID); err != nil {
				return nil, err
			}
			return deleted("alert_id", in.AlertID), nil
		},
	})
}
