package pingera

import (
	"context"
	"net/http"
	"net/url"
)

const (
	checksRoute = "/v1/checks"
	checkRoute  = "/v1/checks/{check_id}"
)

func checkPath(checkID string) string { return "/v1/checks/" + seg(checkID) }

// CheckQuery filters ListChecks.
type CheckQuery struct {
	Page     *int
	PageSize *int
	Type     string
	Status   string
}

// ResultQuery filters CheckResults.
type ResultQuery struct {
	From     string
	To       string
	Page     *int
	PageSize *int
}

// UnifiedQuery filters results and statistics across checks.
type UnifiedQuery struct {
	CheckIDs []string
	From     string
	To       string
	Status   string
	Page     *int
	PageSize *int
}

// CustomCheck describes an on-demand check of an arbitrary URL.
type CustomCheck struct {
	URL        string         `json:"url"`
	Type       string         `json:"type"`
	Timeout    int            `json:"timeout"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// ListChecks returns monitoring checks.
func (c *Client) ListChecks(ctx context.Context, q CheckQuery) (*List[Check], error) {
	v := url.Values{}
	setInt(v, "page", q.Page)
	setInt(v, "page_size", q.PageSize)
	setString(v, "type", q.Type)
	setString(v, "status", q.Status)
	return getList[Check](ctx, c, "checks", checksRoute, checksRoute, v)
}

// GetCheck returns one check.
func (c *Client) GetCheck(ctx context.Context, checkID string) (*Check, error) {
	return getOne[Check](ctx, c, checkRoute, checkPath(checkID))
}

// CreateCheck creates a check from a free-form payload.
func (c *Client) CreateCheck(ctx context.Context, payload map[string]any) (*Check, error) {
	return sendOne[Check](ctx, c, http.MethodPost, checksRoute, checksRoute, payload)
}

// UpdateCheck updates a check.
func (c *Client) UpdateCheck(ctx context.Context, checkID string, payload map[string]any) (*Check, error) {
	return sendOne[Check](ctx, c, http.MethodPatch, checkRoute, checkPath(checkID), payload)
}

// DeleteCheck deletes a check.
func (c *Client) DeleteCheck(ctx context.Context, checkID string) error {
	return c.send(ctx, http.MethodDelete, checkRoute, checkPath(checkID), nil, nil)
}

// PauseCheck stops scheduling a check.
func (c *Client) PauseCheck(ctx context.Context, checkID string) error {
	return c.send(ctx, http.MethodPost, checkRoute+"/pause", checkPath(checkID)+"/pause", nil, nil)
}

// ResumeCheck resumes a paused check.
func (c *Client) ResumeCheck(ctx context.Context, checkID string) error {
	return c.send(ctx, http.MethodPost, checkRoute+"/resume", checkPath(checkID)+"/resume", nil, nil)
}

// CheckResults returns the execution history of a check.
func (c *Client) CheckResults(ctx context.Context, checkID string, q ResultQuery) (*List[CheckResult], error) {
	v := url.Values{}
	setString(v, "from", q.From)
	setString(v, "to", q.To)
	setInt(v, "page", q.Page)
	setInt(v, "page_size", q.PageSize)
	return getList[CheckResult](ctx, c, "results", checkRoute+"/results", checkPath(checkID)+"/results", v)
}

// CheckStats returns aggregated statistics for a check.
func (c *Client) CheckStats(ctx context.Context, checkID string) (any, error) {
	return c.getRaw(ctx, checkRoute+"/stats", checkPath(checkID)+"/stats", nil)
}

// ListCheckJobs returns check execution jobs.
func (c *Client) ListCheckJobs(ctx context.Context) (any, error) {
	return c.getRaw(ctx, "/v1/checks/jobs", "/v1/checks/jobs", nil)
}

// GetCheckJob returns one execution job, including on-demand jobs.
func (c *Client) GetCheckJob(ctx context.Context, jobID string) (any, error) {
	return c.getRaw(ctx, "/v1/checks/jobs/{job_id}", "/v1/checks/jobs/"+seg(jobID), nil)
}

// UnifiedResults returns results across several checks.
func (c *Client) UnifiedResults(ctx context.Context, q UnifiedQuery) (any, error) {
	v := unifiedValues(q)
	setString(v, "status", q.Status)
	setInt(v, "page", q.Page)
	setInt(v, "page_size", q.PageSize)
	return c.getRaw(ctx, "/v1/checks/unified-results", "/v1/checks/unified-results", v)
}

// UnifiedStats returns statistics aggregated across several checks.
func (c *Client) UnifiedStats(ctx context.Context, q UnifiedQuery) (any, error) {
	return c.getRaw(ctx, "/v1/checks/unified-results/stats", "/v1/checks/unified-results/stats", unifiedValues(q))
}

func unifiedValues(q UnifiedQuery) url.Values {
	v := url.Values{}
	for _, id := range q.CheckIDs {
		v.Add("check_ids", id)
	}
	setString(v, "from", q.From)
	setString(v, "to", q.To)
	return v
}

// ExecuteCustomCheck runs a one-off check of an arbitrary URL.
func (c *Client) ExecuteCustomCheck(ctx context.Context, check CustomCheck) (any, error) {
	return c.sendRaw(ctx, http.MethodPost, "/v1/checks/execute", "/v1/checks/execute", check)
}

// ExecuteCheck runs an existing check immediately.
func (c *Client) ExecuteCheck(ctx context.Context, checkID string) (any, error) {
	return c.sendRaw(ctx, http.MethodPost, checkRoute+"/execute", checkPath(checkID)+"/execute", nil)
}

// ListOnDemandChecks returns past on-demand executions.
func (c *Client) ListOnDemandChecks(ctx context.Context, page, pageSize *int) (any, error) {
	v := url.Values{}
	setInt(v, "page", page)
	setInt(v, "page_size", pageSize)
	return c.getRaw(ctx, "/v1/on-demand-checks", "/v1/on-demand-checks", v)
}
