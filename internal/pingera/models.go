package pingera

import "time"

// Timestamps are shared by most API resources.
type Timestamps struct {
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Page is a public status page.
type Page struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Subdomain             string `json:"subdomain,omitempty"`
	Domain                string `json:"domain,omitempty"`
	URL                   string `json:"url,omitempty"`
	OrganizationID        string `json:"organization_id,omitempty"`
	Headline              string `json:"headline,omitempty"`
	PageDescription       string `json:"page_description,omitempty"`
	Language              string `json:"language,omitempty"`
	TimeZone              string `json:"time_zone,omitempty"`
	SupportURL            string `json:"support_url,omitempty"`
	Template              string `json:"template,omitempty"`
	State                 string `json:"state,omitempty"`
	Country               string `json:"country,omitempty"`
	City                  string `json:"city,omitempty"`
	HiddenFromSearch      *bool  `json:"hidden_from_search,omitempty"`
	AllowPageSubscribers  *bool  `json:"allow_page_subscribers,omitempty"`
	AllowIncidentSubs     *bool  `json:"allow_incident_subscribers,omitempty"`
	AllowEmailSubscribers *bool  `json:"allow_email_subscribers,omitempty"`
	AllowWebhookSubs      *bool  `json:"allow_webhook_subscribers,omitempty"`
	ViewersMustBeTeam     *bool  `json:"viewers_must_be_team_members,omitempty"`
	Timestamps
}

// Component is a monitored part of a status page.
type Component struct {
	ID                 string     `json:"id"`
	PageID             string     `json:"page_id,omitempty"`
	GroupID            *string    `json:"group_id,omitempty"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Status             string     `json:"status,omitempty"`
	Position           *int       `json:"position,omitempty"`
	Group              *bool      `json:"group,omitempty"`
	Showcase           *bool      `json:"showcase,omitempty"`
	OnlyShowIfDegraded *bool      `json:"only_show_if_degraded,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	Timestamps
}

// ComponentGroup is a component that contains other components.
type ComponentGroup struct {
	ID          string      `json:"id"`
	PageID      string      `json:"page_id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Position    *int        `json:"position,omitempty"`
	Components  []Component `json:"components,omitempty"`
	Timestamps
}

// Check is an uptime or synthetic monitor.
type Check struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"type,omitempty"`
	URL           string         `json:"url,omitempty"`
	Host          string         `json:"host,omitempty"`
	Port          *int           `json:"port,omitempty"`
	Interval      *int           `json:"interval,omitempty"`
	Timeout       *int           `json:"timeout,omitempty"`
	Active        *bool          `json:"active,omitempty"`
	Status        string         `json:"status,omitempty"`
	Regions       []string       `json:"regions,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty"`
	LastCheckedAt *time.Time     `json:"last_checked_at,omitempty"`
	Timestamps
}

// CheckResult is one execution of a check.
type CheckResult struct {
	ID           string         `json:"id"`
	CheckID      string         `json:"check_id,omitempty"`
	Status       string         `json:"status,omitempty"`
	ResponseTime *float64       `json:"response_time,omitempty"`
	StatusCode   *int           `json:"status_code,omitempty"`
	Region       string         `json:"region,omitempty"`
	Error        string         `json:"error_message,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	CheckedAt    *time.Time     `json:"checked_at,omitempty"`
	Timestamps
}

// Alert is an alert rule.
type Alert struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type,omitempty"`
	Active      *bool          `json:"active,omitempty"`
	Conditions  map[string]any `json:"conditions,omitempty"`
	ChannelIDs  []string       `json:"channel_ids,omitempty"`
	CheckIDs    []string       `json:"check_ids,omitempty"`
	Timestamps
}

// Heartbeat is a passive monitor pinged by cron jobs and workers.
type Heartbeat struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Interval    *int       `json:"interval,omitempty"`
	GracePeriod *int       `json:"grace_period,omitempty"`
	PingURL     string     `json:"ping_url,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	LastPingAt  *time.Time `json:"last_ping_at,omitempty"`
	Timestamps
}

// Incident is a status page incident.
type Incident struct {
	ID           string     `json:"id"`
	PageID       string     `json:"page_id,omitempty"`
	Name         string     `json:"name"`
	Status       string     `json:"status,omitempty"`
	Impact       string     `json:"impact,omitempty"`
	Body         string     `json:"body,omitempty"`
	ComponentIDs []string   `json:"component_ids,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	Timestamps
}

// IncidentUpdate is a timeline entry of an incident.
type IncidentUpdate struct {
	ID         string     `json:"id"`
	IncidentID string     `json:"incident_id,omitempty"`
	Status     string     `json:"status,omitempty"`
	Body       string     `json:"body,omitempty"`
	DisplayAt  *time.Time `json:"display_at,omitempty"`
	Timestamps
}
