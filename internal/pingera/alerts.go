package pingera

import (
	"context"
	"net/http"
	"net/url"
)

const (
	alertsRoute = "/v1/alerts"
	alertRoute  = "/v1/alerts/{alert_id}"
)

func alertPath(alertID string) string { return "/v1/alerts/" + seg(alertID) }

// ListAlerts returns alert rules.
func (c *Client) ListAlerts(ctx context.Context, page, pageSize *int) (*List[Alert], error) {
	v := url.Values{}
	setInt(v, "page", page)
	setInt(v, "page_size", pageSize)
	return getList[Alert](ctx, c, "alerts", alertsRoute, alertsRoute, v)
}

// GetAlert returns one alert rule.
func (c *Client) GetAlert(ctx context.Context, alertID string) (*Alert, error) {
	return getOne[Alert](ctx, c, alertRoute, alertPath(alertID))
}

// CreateAlert creates an alert rule.
func (c *Client) CreateAlert(ctx context.Context, payload map[string]any) (*Alert, error) {
	return sendOne[Alert](ctx, c, http.MethodPost, alertsRoute, alertsRoute, payload)
}

// UpdateAlert updates an alert rule.
func (c *Client) UpdateAlert(ctx context.Context, alertID string, payload map[string]any) (*Alert, error) {
	return sendOne[Alert](ctx, c, http.MethodPatch, alertRoute, alertPath(alertID), payload)
}

// DeleteAlert deletes an alert rule.
func (c *Client) DeleteAlert(ctx context.Context, alertID string) error {
	return c.send(ctx, http.MethodDelete, alertRoute, alertPath(alertID), nil, nil)
}

// AlertStats returns alert statistics.
func (c *Client) AlertStats(ctx context.Context) (any, error) {
	return c.getRaw(ctx, "/v1/alerts/stats", "/v1/alerts/stats", nil)
}

// ListAlertChannels returns the notification channels alerts can use.
func (c *Client) ListAlertChannels(ctx context.Context) (any, error) {
	return c.getRaw(ctx, "/v1/alerts/channels", "/v1/alerts/channels", nil)
}
