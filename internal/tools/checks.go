package tools

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

// On-demand check defaults.
const (
	defaultCheckType    = "web"
	defaultCheckTimeout = 30
)

func registerChecks(r *Registry) {
	add(r, ToolSpec[ListChecksInput]{
		Name:        "list_checks",
		Description: "List monitoring checks. Filter by type (web, api, ssl, tcp, synthetic, ...) and status; paginate with page and page_size.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in ListChecksInput) (any, error) {
			return c.ListChecks(ctx, pingera.CheckQuery{
				Page: in.Page, PageSize: in.PageSize, Type: in.Type, Status: in.Status,
			})
		},
	})
	add(r, ToolSpec[CheckInput]{
		Name:        "get_check_details",
		Description: "Get the configuration of one monitoring check.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in CheckInput) (any, error) {
			return c.GetCheck(ctx, in.CheckID)
		},
	})
	add(r, ToolSpec[CheckResultsInput]{
		Name:        "get_check_results",
		Description: "Get execution results of a check, optionally limited to a from/to time range.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in CheckResultsInput) (any, error) {
			return c.CheckResults(ctx, in.CheckID, pingera.ResultQuery{
				From: in.From, To: in.To, Page: in.Page, PageSize: in.PageSize,
			})
		},
	})
	add(r, ToolSpec[CheckInput]{
		Name:        "get_check_statistics",
		Description: "Get uptime and response-time statistics of a check.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in CheckInput) (any, error) {
			return c.CheckStats(ctx, in.CheckID)
		},
	})
	add(r, ToolSpec[NoInput]{
		Name:        "list_check_jobs",
		Description: "List check execution jobs.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, _ NoInput) (any, error) {
			return c.ListCheckJobs(ctx)
		},
	})
	add(r, ToolSpec[JobInput]{
		Name:        "get_check_job_details",
		Description: "Get one check execution job and its result.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in JobInput) (any, error) {
			return c.GetCheckJob(ctx, in.JobID)
		},
	})
	add(r, ToolSpec[UnifiedInput]{
		Name:        "get_unified_results",
		Description: "Get results across several checks at once, filtered by check_ids, time range and status.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in UnifiedInput) (any, error) {
			return c.UnifiedResults(ctx, in.query())
		},
	})
	add(r, ToolSpec[UnifiedInput]{
		Name:        "get_unified_statistics",
		Description: "Get statistics aggregated across several checks for a time range.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in UnifiedInput) (any, error) {
			return c.UnifiedStats(ctx, in.query())
		},
	})
	add(r, ToolSpec[PaginationInput]{
		Name:        "list_on_demand_checks",
		Description: "List past on-demand check executions.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in PaginationInput) (any, error) {
			return c.ListOnDemandChecks(ctx, in.Page, in.PageSize)
		},
	})
	add(r, ToolSpec[JobInput]{
		Name:        "get_on_demand_job_status",
		Description: "Get the status and result of an on-demand check job started by execute_custom_check or execute_existing_check.",
		Kind:        KindRead,
		Call: func(ctx context.Context, c *pingera.Client, in JobInput) (any, error) {
			return c.GetCheckJob(ctx, in.JobID)
		},
	})

	add(r, ToolSpec[CreateInput]{
		Name:        "create_check",
		Description: "Create a monitoring check. data holds the check fields (name, type, url, interval, timeout, parameters, ...).",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CreateInput) (any, error) {
			return c.CreateCheck(ctx, in.Data)
		},
	})
	add(r, ToolSpec[CheckUpdateInput]{
		Name:        "update_check",
		Description: "Update the given fields of a monitoring check.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CheckUpdateInput) (any, error) {
			return c.UpdateCheck(ctx, in.CheckID, in.Data)
		},
	})
	add(r, ToolSpec[CheckInput]{
		Name:        "delete_check",
		Description: "Permanently delete a monitoring check and its results.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CheckInput) (any, error) {
			if err := c.DeleteCheck(ctx, in.CheckID); err != nil {
				return nil, err
			}
			return deleted("check_id", in.CheckID), nil
		},
	})
	add(r, ToolSpec[CheckInput]{
		Name:        "pause_check",
		Description: "Pause a monitoring check so it stops running.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CheckInput) (any, error) {
			if err := c.PauseCheck(ctx, in.CheckID); err != nil {
				return nil, err
			}
			return checkState(in.CheckID, "paused"), nil
		},
	})
	add(r, ToolSpec[CheckInput]{
		Name:        "resume_check",
		Description: "Resume a paused monitoring check.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CheckInput) (any, error) {
			if err := c.ResumeCheck(ctx, in.CheckID); err != nil {
				return nil, err
			}
			return checkState(in.CheckID, "active"), nil
		},
	})
	add(r, ToolSpec[CustomCheckInput]{
		Name:        "execute_custom_check",
		Description: "Run a one-off check of any URL without saving it. Defaults: check_type web, timeout 30. Returns a job to poll with get_on_demand_job_status.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CustomCheckInput) (any, error) {
			return c.ExecuteCustomCheck(ctx, in.customCheck())
		},
	})
	add(r, ToolSpec[CheckInput]{
		Name:        "execute_existing_check",
		Description: "Run an existing check immediately. Returns a job to poll with get_on_demand_job_status.",
		Kind:        KindWrite,
		Call: func(ctx context.Context, c *pingera.Client, in CheckInput) (any, error) {
			return c.ExecuteCheck(ctx, in.CheckID)
		},
	})
}

func (in UnifiedInput) query() pingera.UnifiedQuery {
	return pingera.UnifiedQuery{
		CheckIDs: in.CheckIDs,
		From:     in.From,
		To:       in.To,
		Status:   in.Status,
		Page:     in.Page,
		PageSize: in.PageSize,
	}
}

func (in CustomCheckInput) customCheck() pingera.CustomCheck {
	check := pingera.CustomCheck{
		URL:        in.URL,
		Type:       in.Type,
		Timeout:    defaultCheckTimeout,
		Name:       in.Name,
		Parameters: in.Parameters,
	}
	if check.Type == "" {
		check.Type = defaultCheckType
	}
	if in.Timeout != nil {
		check.Timeout = *in.Timeout
	}
	if check.Name == "" {
		check.Name = "On-demand check for " + in.URL
	}
	if check.Parameters == nil {
		check.Parameters = map[string]any{}
	}
	return check
}

func checkState(checkID, status string) map[string]any {
	verb := "paused"
	if status == "active" {
		verb = "resumed"
	}
	return map[string]any{
		"message":  fmt.Sprintf("Check %s %s successfully", checkID, verb),
		"check_id": checkID,
		"status":   status,
	}
}
