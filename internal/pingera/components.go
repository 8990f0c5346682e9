package pingera

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

func componentsPath(pageID string) string {
	return "/v1/pages/" + seg(pageID) + "/components"
}

func componentPath(pageID, componentID string) string {
	return componentsPath(pageID) + "/" + seg(componentID)
}

const (
	componentsRoute = "/v1/pages/{page_id}/components"
	componentRoute  = "/v1/pages/{page_id}/components/{component_id}"
)

// ListComponents returns the components of a status page.
func (c *Client) ListComponents(ctx context.Context, pageID string) (*List[Component], error) {
	return getList[Component](ctx, c, "components", componentsRoute, componentsPath(pageID), nil)
}

// ListComponentGroups returns the component groups of a status page.
func (c *Client) ListComponentGroups(ctx context.Context, pageID string, showDeleted bool) (*List[ComponentGroup], error) {
	v := url.Values{}
	if showDeleted {
		v.Set("show_deleted", "true")
	}
	return getList[ComponentGroup](ctx, c, "component_groups",
		"/v1/pages/{page_id}/component-groups", "/v1/pages/"+seg(pageID)+"/component-groups", v)
}

// GetComponent returns one component. When the single-component endpoint
// answers 404 the page's component list is scanned instead.
func (c *Client) GetComponent(ctx context.Context, pageID, componentID string) (*Component, error) {
	comp, err := getOne[Component](ctx, c, componentRoute, componentPath(pageID, componentID))
	if err == nil || !IsNotFound(err) {
		return comp, err
	}

	c.log.Debug("component endpoint returned 404, scanning list",
		slog.String("page_id", pageID), slog.String("component_id", componentID))
	list, listErr := c.ListComponents(ctx, pageID)
	if listErr != nil {
		return nil, err
	}
	for i := range list.Items {
		if list.Items[i].ID == componentID {
			return &list.Items[i], nil
		}
	}
	return nil, &APIError{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("component %s not found on page %s", componentID, pageID),
	}
}

// CreateComponent adds a component to a status page.
func (c *Client) CreateComponent(ctx context.Context, pageID string, payload map[string]any) (*Component, error) {
	return sendOne[Component](ctx, c, http.MethodPost, componentsRoute, componentsPath(pageID), payload)
}

// UpdateComponent replaces a component.
func (c *Client) UpdateComponent(ctx context.Context, pageID, componentID string, payload map[string]any) (*Component, error) {
	return sendOne[Component](ctx, c, http.MethodPut, componentRoute, componentPath(pageID, componentID), payload)
}

// PatchComponent updates selected fields of a component.
func (c *Client) PatchComponent(ctx context.Context, pageID, componentID string, payload map[string]any) (*Component, error) {
	return sendOne[Component](ctx, c, http.MethodPatch, componentRoute, componentPath(pageID, componentID), payload)
}

// DeleteComponent removes a component.
func (c *Client) DeleteComponent(ctx context.Context, pageID, componentID string) error {
	return c.send(ctx, http.MethodDelete, componentRoute, componentPath(pageID, componentID), nil, nil)
}
