package tools

import (
	"context"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

func registerComponents(r *Registry) {
	add(r, ToolSpec[PageInput]{
		Name:        "list_components",
		Description: "List the components (services shown on the status page) of a page.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in PageInput) (any, error) {
			return c.ListComponents(ctx, in.PageID)
		},
	})
	add(r, ToolSpec[ComponentGroupsInput]{
		Name:        "list_component_groups",
		Description: "List component groups of a page. Set show_deleted to include deleted groups.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in ComponentGroupsInput) (any, error) {
			return c.ListComponentGroups(ctx, in.PageID, in.ShowDeleted)
		},
	})
	add(r, ToolSpec[ComponentInput]{
		Name:        "get_component_details",
		Description: "Get one component of a page, including its current status.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in ComponentInput) (any, error) {
			return c.GetComponent(ctx, in.PageID, in.ComponentID)
		},
	})
	add(r, ToolSpec[PageUpdateInput]{
		Name:        "create_component",
		Description: "Create a component on a page. data holds the component fields (name, description, status, group_id, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in PageUpdateInput) (any, error) {
			return c.CreateComponent(ctx, in.PageID, in.Data)
		},
	})
	add(r, ToolSpec[ComponentUpdateInput]{
		Name:        "update_component",
		Description: "Replace a component's configuration with data (full update).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in ComponentUpdateInput) (any, error) {
			return c.UpdateComponent(ctx, in.PageID, in.ComponentID, in.Data)
		},
	})
	add(r, ToolSpec[ComponentUpdateInput]{
		Name:        "patch_component",
		Description: "Update only the given fields of a component, e.g. {\"status\": \"degraded_performance\"}.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in ComponentUpdateInput) (any, error) {
			return c.PatchComponent(ctx, in.PageID, in.ComponentID, in.Data)
		},
	})
	add(r, ToolSpec[ComponentInput]{
		Name:        "delete_component",
		Description: "Permanently delete a component from a page.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in ComponentInput) (any, error) {
			if err := c.DeleteComponent(ctx, in.PageID, in.ComponentID); err != nil {
				return nil, err
			}
			return deleted("component_id", in.ComponentID), nil
		},
	})
}
