package tools

import (
	"context"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

func registerIncidents(r *Registry) {
	add(r, ToolSpec[ListIncidentsInput]{
		Name:        "list_incidents",
		Description: "List incidents and scheduled maintenance of a status page, optionally filtered by status.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in ListIncidentsInput) (any, error) {
			return c.ListIncidents(ctx, in.PageID, in.Page, in.PageSize, in.Status)
		},
	})
	add(r, ToolSpec[IncidentInput]{
		Name:        "get_incident_details",
		Description: "Get one incident of a status page.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in IncidentInput) (any, error) {
			return c.GetIncident(ctx, in.PageID, in.IncidentID)
		},
	})
	add(r, ToolSpec[IncidentInput]{
		Name:        "list_incident_updates",
		Description: "List the timeline of updates posted to an incident.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in IncidentInput) (any, error) {
			return c.ListIncidentUpdates(ctx, in.PageID, in.IncidentID)
		},
	})
	add(r, ToolSpec[IncidentCreateInput]{
		Name:        "create_incident",
		Description: "Open an incident on a status page. data holds the fields (name, status, impact, body, components, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in IncidentCreateInput) (any, error) {
			return c.CreateIncident(ctx, in.PageID, in.Data)
		},
	})
	add(r, ToolSpec[IncidentUpdateInput]{
		Name:        "update_incident",
		Description: "Update the given fields of an incident, e.g. its status or impact.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in IncidentUpdateInput) (any, error) {
			return c.UpdateIncident(ctx, in.PageID, in.IncidentID, in.Data)
		},
	})
	add(r, ToolSpec[IncidentInput]{
		Name:        "delete_incident",
		Description: "Permanently delete an incident.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in IncidentInput) (any, error) {
			if err := c.DeleteIncident(ctx, in.PageID, in.IncidentID); err != nil {
				return nil, err
			}
			return deleted("incident_id", in.IncidentID), nil
		},
	})
	add(r, ToolSpec[IncidentUpdateInput]{
		Name:        "add_incident_update",
		Description: "Post a timeline update to an incident. data holds the fields (body, status, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in IncidentUpdateInput) (any, error) {
			return c.AddIncidentUpdate(ctx, in.PageID, in.IncidentID, in.Data)
		},
	})
}
