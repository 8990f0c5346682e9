package tools

import (
	"context"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

// maxPerPage caps list_pages page size.
const maxPerPage = 100

func registerPages(r *Registry) {
	add(r, ToolSpec[ListPagesInput]{
		Name:        "list_pages",
		Description: "List status pages in your Pingera organization. Supports pagination (page, per_page up to 100) and a status filter.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in ListPagesInput) (any, error) {
			perPage := in.PerPage
			if perPage != nil && *perPage > maxPerPage {
				capped := maxPerPage
				perPage = &capped
			}
			return c.ListPages(ctx, pingera.PageQuery{Page: in.Page, PerPage: perPage, Status: in.Status})
		},
	})
	add(r, ToolSpec[PageInput]{
		Name:        "get_page_details",
		Description: "Get full details of one status page by page_id.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in PageInput) (any, error) {
			return c.GetPage(ctx, in.PageID)
		},
	})
	add(r, ToolSpec[CreateInput]{
		Name:        "create_page",
		Description: "Create a status page. data holds the page fields (name is required by the API; subdomain, domain, url, language, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CreateInput) (any, error) {
			return c.CreatePage(ctx, in.Data)
		},
	})
	add(r, ToolSpec[PageUpdateInput]{
		Name:        "update_page",
		Description: "Replace a status page's configuration with data (full update).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in PageUpdateInput) (any, error) {
			return c.UpdatePage(ctx, in.PageID, in.Data)
		},
	})
	add(r, ToolSpec[PageUpdateInput]{
		Name:        "patch_page",
		Description: "Update only the given fields of a status page.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in PageUpdateInput) (any, error) {
			return c.PatchPage(ctx, in.PageID, in.Data)
		},
	})
	add(r, ToolSpec[PageInput]{
		Name:        "delete_page",
		Description: "Permanently delete a status page and all its data.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in PageInput) (any, error) {
			if err := c.DeletePage(ctx, in.PageID); err != nil {
				return nil, err
			}
			return deleted("page_id", in.PageID), nil
		},
	})
}

// deleted is the result of every delete tool.
func deleted(key, id string) map[string]any {
	return map[string]any{key: id, "deleted": true}
}
