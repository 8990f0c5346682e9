package pingera

import (
	"context"
	"net/url"
)

// APIVersion is the API generation the endpoint paths target.
const APIVersion = "v1"

// ConnectionInfo describes the result of TestConnection.
type ConnectionInfo struct {
	Connected  bool   `json:"connected"`
	BaseURL    string `json:"base_url"`
	APIVersion string `json:"api_version"`
	Error      string `json:"error,omitempty"`
}

// Ping performs the cheapest authenticated request the API offers.
func (c *Client) Ping(ctx context.Context) error {
	v := url.Values{}
	v.Set("page", "1")
	v.Set("page_size", "1")
	return c.get(ctx, checksRoute, checksRoute, v, nil)
}

// TestConnection pings the API and reports the outcome without failing.
func (c *Client) TestConnection(ctx context.Context) ConnectionInfo {
	info := ConnectionInfo{BaseURL: c.baseURL, APIVersion: APIVersion}
	if err := c.Ping(ctx); err != nil {
		info.Error = err.Error()
		return info
	}
	info.Connected = true
	return info
}
