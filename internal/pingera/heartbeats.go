package pingera

import (
	"context"
	"net/http"
	"net/url"
)

const (
	heartbeatsRoute = "/v1/heartbeats"
	heartbeatRoute  = "/v1/heartbeats/{heartbeat_id}"
)

func heartbeatPath(id string) string { return "/v1/heartbeats/" + seg(id) }

// LogQuery filters HeartbeatLogs.
type LogQuery struct {
	From     string
	To       string
	Page     *int
	PageSize *int
}

// ListHeartbeats returns heartbeat monitors.
func (c *Client) ListHeartbeats(ctx context.Context, page, pageSize *int, status string) (*List[Heartbeat], error) {
	v := url.Values{}
	setInt(v, "page", page)
	setInt(v, "page_size", pageSize)
	setString(v, "status", status)
	return getList[Heartbeat](ctx, c, "heartbeats", heartbeatsRoute, heartbeatsRoute, v)
}

// GetHeartbeat returns one heartbeat.
func (c *Client) GetHeartbeat(ctx context.Context, id string) (*Heartbeat, error) {
	return getOne[Heartbeat](ctx, c, heartbeatRoute, heartbeatPath(id))
}

// CreateHeartbeat creates a heartbeat.
func (c *Client) CreateHeartbeat(ctx context.Context, payload map[string]any) (*Heartbeat, error) {
	return sendOne[Heartbeat](ctx, c, http.MethodPost, heartbeatsRoute, heartbeatsRoute, payload)
}

// UpdateHeartbeat updates a heartbeat.
func (c *Client) UpdateHeartbeat(ctx context.Context, id string, payload map[string]any) (*Heartbeat, error) {
	return sendOne[Heartbeat](ctx, c, http.MethodPatch, heartbeatRoute, heartbeatPath(id), payload)
}

// DeleteHeartbeat deletes a heartbeat.
func (c *Client) DeleteHeartbeat(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, heartbeatRoute, heartbeatPath(id), nil, nil)
}

// SendHeartbeatPing records a ping for a heartbeat.
func (c *Client) SendHeartbeatPing(ctx context.Context, id string) (any, error) {
	return c.sendRaw(ctx, http.MethodPost, heartbeatRoute+"/ping", heartbeatPath(id)+"/ping", nil)
}

// HeartbeatLogs returns the ping history of a heartbeat.
func (c *Client) HeartbeatLogs(ctx context.Context, id string, q LogQuery) (any, error) {
	v := url.Values{}
	setString(v, "from", q.From)
	setString(v, "to", q.To)
	setInt(v, "page", q.Page)
	setInt(v, "page_size", q.PageSize)
	return c.getRaw(ctx, heartbeatRoute+"/logs", heartbeatPath(id)+"/logs", v)
}
