package pingera

import (
	"context"
	"net/http"
	"net/url"
)

// PageQuery filters ListPages.
type PageQuery struct {
	Page    *int
	PerPage *int
	Status  string
}

// ListPages returns the organization's status pages.
func (c *Client) ListPages(ctx context.Context, q PageQuery) (*List[Page], error) {
	v := url.Values{}
	setInt(v, "page", q.Page)
	setInt(v, "per_page", q.PerPage)
	setString(v, "status", q.Status)
	return getList[Page](ctx, c, "pages", "/v1/pages", "/v1/pages", v)
}

// GetPage returns one status page.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	return getOne[Page](ctx, c, "/v1/pages/{page_id}", "/v1/pages/"+seg(pageID))
}

// CreatePage creates a status page from a free-form payload.
func (c *Client) CreatePage(ctx context.Context, payload map[string]any) (*Page, error) {
	return sendOne[Page](ctx, c, http.MethodPost, "/v1/pages", "/v1/pages", payload)
}

// UpdatePage replaces a status page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, payload map[string]any) (*Page, error) {
	return sendOne[Page](ctx, c, http.MethodPut, "/v1/pages/{page_id}", "/v1/pages/"+seg(pageID), payload)
}

// PatchPage updates selected fields of a status page.
func (c *Client) PatchPage(ctx context.Context, pageID string, payload map[string]any) (*Page, error) {
	return sendOne[Page](ctx, c, http.MethodPatch, "/v1/pages/{page_id}", "/v1/pages/"+seg(pageID), payload)
}

// DeletePage deletes a status page.
func (c *Client) DeletePage(ctx context.Context, pageID string) error {
	return c.send(ctx, http.MethodDelete, "/v1/pages/{page_id}", "/v1/pages/"+seg(pageID), nil, nil)
}
