package pingera

import (
	"context"
	"net/http"
	"net/url"
)

const (
	incidentsRoute       = "/v1/pages/{page_id}/incidents"
	incidentRoute        = "/v1/pages/{page_id}/incidents/{incident_id}"
	incidentUpdatesRoute = "/v1/pages/{page_id}/incidents/{incident_id}/updates"
)

func incidentsPath(pageID string) string {
	return "/v1/pages/" + seg(pageID) + "/incidents"
}

func incidentPath(pageID, incidentID string) string {
	return incidentsPath(pageID) + "/" + seg(incidentID)
}

// ListIncidents returns the incidents of a status page.
func (c *Client) ListIncidents(ctx context.Context, pageID string, page, pageSize *int, status string) (*List[Incident], error) {
	v := url.Values{}
	setInt(v, "page", page)
	setInt(v, "page_size", pageSize)
	setString(v, "status", status)
	return getList[Incident](ctx, c, "incidents", incidentsRoute, incidentsPath(pageID), v)
}

// GetIncident returns one incident.
func (c *Client) GetIncident(ctx context.Context, pageID, incidentID string) (*Incident, error) {
	return getOne[Incident](ctx, c, incidentRoute, incidentPath(pageID, incidentID))
}

// CreateIncident opens an incident on a status page.
func (c *Client) CreateIncident(ctx context.Context, pageID string, payload map[string]any) (*Incident, error) {
	return sendOne[Incident](ctx, c, http.MethodPost, incidentsRoute, incidentsPath(pageID), payload)
}

// UpdateIncident updates an incident.
func (c *Client) UpdateIncident(ctx context.Context, pageID, incidentID string, payload map[string]any) (*Incident, error) {
	return sendOne[Incident](ctx, c, http.MethodPatch, incidentRoute, incidentPath(pageID, incidentID), payload)
}

// DeleteIncident deletes an incident.
func (c *Client) DeleteIncident(ctx context.Context, pageID, incidentID string) error {
	return c.send(ctx, http.MethodDelete, incidentRoute, incidentPath(pageID, incidentID), nil, nil)
}

// ListIncidentUpdates returns the timeline of an incident.
func (c *Client) ListIncidentUpdates(ctx context.Context, pageID, incidentID string) (*List[IncidentUpdate], error) {
	return getList[IncidentUpdate](ctx, c, "updates", incidentUpdatesRoute, incidentPath(pageID, incidentID)+"/updates", nil)
}

// AddIncidentUpdate posts a timeline entry to an incident.
func (c *Client) AddIncidentUpdate(ctx context.Context, pageID, incidentID string, payload map[string]any) (*IncidentUpdate, error) {
	return sendOne[IncidentUpdate](ctx, c, http.MethodPost, incidentUpdatesRoute, incidentPath(pageID, incidentID)+"/updates", payload)
}
