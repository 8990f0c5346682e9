package tools

import (
	"context"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/pingera-mcp/internal/pingera"
)

const (
	resourceScheme = "pingera://"
	mimeJSON       = "application/json"
)

// ResourceInfo describes a resource or resource template in the catalog.
type ResourceInfo struct {
	URI         string `json:"uri" yaml:"uri"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Template    bool   `json:"template" yaml:"template"`
}

type resourceSpec struct {
	URI         string
	Name        string
	Description string
	Read        func(ctx context.Context, d *Deps, params map[string]string) (any, error)
}

func registerResources(r *Registry) {
	addResource(r, resourceSpec{
		URI:         "pingera://status",
		Name:        "status",
		Description: "Connection status and operation mode of this server",
		Read: func(ctx context.Context, d *Deps, _ map[string]string) (any, error) {
			return d.status(ctx), nil
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://pages",
		Name:        "pages",
		Description: "All status pages of the organization",
		Read: func(ctx context.Context, d *Deps, _ map[string]string) (any, error) {
			return d.Client.ListPages(ctx, pingera.PageQuery{})
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://pages/{page_id}",
		Name:        "page",
		Description: "One status page",
		Read: func(ctx context.Context, d *Deps, p map[string]string) (any, error) {
			return d.Client.GetPage(ctx, p["page_id"])
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://pages/{page_id}/components",
		Name:        "page_components",
		Description: "Components of one status page",
		Read: func(ctx context.Context, d *Deps, p map[string]string) (any, error) {
			return d.Client.ListComponents(ctx, p["page_id"])
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://checks",
		Name:        "checks",
		Description: "All monitoring checks",
		Read: func(ctx context.Context, d *Deps, _ map[string]string) (any, error) {
			return d.Client.ListChecks(ctx, pingera.CheckQuery{})
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://checks/{check_id}",
		Name:        "check",
		Description: "One monitoring check",
		Read: func(ctx context.Context, d *Deps, p map[string]string) (any, error) {
			return d.Client.GetCheck(ctx, p["check_id"])
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://heartbeats",
		Name:        "heartbeats",
		Description: "All heartbeat monitors",
		Read: func(ctx context.Context, d *Deps, _ map[string]string) (any, error) {
			return d.Client.ListHeartbeats(ctx, nil, nil, "")
		},
	})
	addResource(r, resourceSpec{
		URI:         "pingera://alerts",
		Name:        "alerts",
		Description: "All alert rules",
		Read: func(ctx context.Context, d *Deps, _ map[string]string) (any, error) {
			return d.Client.ListAlerts(ctx, nil, nil)
		},
	})
}

func addResource(r *Registry, spec resourceSpec) {
	template := strings.Contains(spec.URI, "{")
	r.resources = append(r.resources, ResourceInfo{
		URI:         spec.URI,
		Name:        spec.Name,
		Description: spec.Description,
		Template:    template,
	})
	if r.server == nil {
		return
	}

	deps := &r.deps
	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		params, ok := matchURI(spec.URI, uri)
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		text := deps.run(ctx, "resource:"+spec.Name, func(ctx context.Context) (any, error) {
			return spec.Read(ctx, deps, params)
		})
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mimeJSON, Text: text}},
		}, nil
	}

	if template {
		r.server.AddResourceTemplate(&mcp.ResourceTemplate{
			Name:        spec.Name,
			Description: spec.Description,
			URITemplate: spec.URI,
			MIMEType:    mimeJSON,
		}, handler)
		return
	}
	r.server.AddResource(&mcp.Resource{
		Name:        spec.Name,
		Description: spec.Description,
		URI:         spec.URI,
		MIMEType:    mimeJSON,
	}, handler)
}

// matchURI matches uri against a pattern whose {name} segments capture one
// non-empty path segment each.
func matchURI(pattern, uri string) (map[string]string, bool) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, false
	}
	want := strings.Split(strings.TrimPrefix(pattern, resourceScheme), "/")
	got := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	if len(want) != len(got) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, "{"); ok {
			v, err := url.PathUnescape(got[i])
			if err != nil || strings.TrimSpace(v) == "" {
				return nil, false
			}
			params[strings.TrimSuffix(name, "}")] = v
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}
