package tools

// Every field is omitempty so that missing arguments reach the validator
// and come back as failure envelopes.

// NoInput is the argument type of tools without parameters.
type NoInput struct{}

// Pages.

type ListPagesInput struct {
	Page    *int   `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PerPage *int   `json:"per_page,omitempty" jsonschema:"Items per page (max 100)"`
	Status  string `json:"status,omitempty" jsonschema:"Filter by page status"`
}

type PageInput struct {
	PageID string `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
}

type CreateInput struct {
	Data map[string]any `json:"data,omitempty" jsonschema:"Fields of the new object, as accepted by the Pingera API" validate:"required,payload"`
}

type PageUpdateInput struct {
	PageID string         `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	Data   map[string]any `json:"data,omitempty" jsonschema:"Fields to update" validate:"required,payload"`
}

// Components.

type ComponentGroupsInput struct {
	PageID      string `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	ShowDeleted bool   `json:"show_deleted,omitempty" jsonschema:"Include deleted groups"`
}

type ComponentInput struct {
	PageID      string `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	ComponentID string `json:"component_id,omitempty" jsonschema:"Component ID" validate:"required,ident"`
}

type ComponentUpdateInput struct {
	PageID      string         `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	ComponentID string         `json:"component_id,omitempty" jsonschema:"Component ID" validate:"required,ident"`
	Data        map[string]any `json:"data,omitempty" jsonschema:"Fields to update" validate:"required,payload"`
}

// Checks.

type ListChecksInput struct {
	Page     *int   `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize *int   `json:"page_size,omitempty" jsonschema:"Items per page"`
	Type     string `json:"type,omitempty" jsonschema:"Filter by check type (web, api, ssl, tcp, ...)"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by check status"`
}

type CheckInput struct {
	CheckID string `json:"check_id,omitempty" jsonschema:"Check ID" validate:"required,ident"`
}

type CheckUpdateInput struct {
	CheckID string         `json:"check_id,omitempty" jsonschema:"Check ID" validate:"required,ident"`
	Data    map[string]any `json:"data,omitempty" jsonschema:"Fields to update" validate:"required,payload"`
}

type CheckResultsInput struct {
	CheckID  string `json:"check_id,omitempty" jsonschema:"Check ID" validate:"required,ident"`
	From     string `json:"from,omitempty" jsonschema:"Start of the time range (ISO 8601)"`
	To       string `json:"to,omitempty" jsonschema:"End of the time range (ISO 8601)"`
	Page     *int   `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize *int   `json:"page_size,omitempty" jsonschema:"Items per page"`
}

type JobInput struct {
	JobID string `json:"job_id,omitempty" jsonschema:"Check job ID" validate:"required,ident"`
}

type UnifiedInput struct {
	CheckIDs []string `json:"check_ids,omitempty" jsonschema:"Restrict to these check IDs" validate:"omitempty,dive,ident"`
	From     string   `json:"from,omitempty" jsonschema:"Start of the time range (ISO 8601)"`
	To       string   `json:"to,omitempty" jsonschema:"End of the time range (ISO 8601)"`
	Status   string   `json:"status,omitempty" jsonschema:"Filter by result status"`
	Page     *int     `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize *int     `json:"page_size,omitempty" jsonschema:"Items per page"`
}

type CustomCheckInput struct {
	URL        string         `json:"url,omitempty" jsonschema:"URL to check" validate:"required,url"`
	Type       string         `json:"check_type,omitempty" jsonschema:"Check type (default web)"`
	Timeout    *int           `json:"timeout,omitempty" jsonschema:"Timeout in seconds (default 30)" validate:"omitempty,gte=1,lte=300"`
	Name       string         `json:"name,omitempty" jsonschema:"Display name for the check"`
	Parameters map[string]any `json:"parameters,omitempty" jsonschema:"Type-specific check parameters"`
}

type PaginationInput struct {
	Page     *int `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize *int `json:"page_size,omitempty" jsonschema:"Items per page"`
}

// Alerts.

type AlertInput struct {
	AlertID string `json:"alert_id,omitempty" jsonschema:"Alert ID" validate:"required,ident"`
}

type AlertUpdateInput struct {
	AlertID string         `json:"alert_id,omitempty" jsonschema:"Alert ID" validate:"required,ident"`
	Data    map[string]any `json:"data,omitempty" jsonschema:"Fields to update" validate:"required,payload"`
}

// Heartbeats.

type ListHeartbeatsInput struct {
	Page     *int   `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize *int   `json:"page_size,omitempty" jsonschema:"Items per page"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by heartbeat status"`
}

type HeartbeatInput struct {
	HeartbeatID string `json:"heartbeat_id,omitempty" jsonschema:"Heartbeat ID" validate:"required,ident"`
}

type HeartbeatUpdateInput struct {
	HeartbeatID string         `json:"heartbeat_id,omitempty" jsonschema:"Heartbeat ID" validate:"required,ident"`
	Data        map[string]any `json:"data,omitempty" jsonschema:"Fields to update" validate:"required,payload"`
}

type HeartbeatLogsInput struct {
	HeartbeatID string `json:"heartbeat_id,omitempty" jsonschema:"Heartbeat ID" validate:"required,ident"`
	From        string `json:"from,omitempty" jsonschema:"Start of the time range (ISO 8601)"`
	To          string `json:"to,omitempty" jsonschema:"End of the time range (ISO 8601)"`
	Page        *int   `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize    *int   `json:"page_size,omitempty" jsonschema:"Items per page"`
}

// Incidents.

type ListIncidentsInput struct {
	PageID   string `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	Page     *int   `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	PageSize *int   `json:"page_size,omitempty" jsonschema:"Items per page"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by incident status"`
}

type IncidentInput struct {
	PageID     string `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	IncidentID string `json:"incident_id,omitempty" jsonschema:"Incident ID" validate:"required,ident"`
}

type IncidentCreateInput struct {
	PageID string         `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	Data   map[string]any `json:"data,omitempty" jsonschema:"Incident fields (name, status, body, ...)" validate:"required,payload"`
}

type IncidentUpdateInput struct {
	PageID     string         `json:"page_id,omitempty" jsonschema:"Status page ID" validate:"required,ident"`
	IncidentID string         `json:"incident_id,omitempty" jsonschema:"Incident ID" validate:"required,ident"`
	Data       map[string]any `json:"data,omitempty" jsonschema:"Fields to update" validate:"required,payload"`
}
