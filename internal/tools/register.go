package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers every tool allowed by deps.ReadWrite and every
// resource on server. It returns the registry for catalog inspection.
func RegisterAll(server *mcp.Server, deps Deps) *Registry {
	r := NewRegistry(server, deps)
	registerConnection(r)
	registerPages(r)
	registerComponents(r)
	registerChecks(r)
	registerAlerts(r)
	registerHeartbeats(r)
	registerIncidents(r)
	registerResources(r)
	return r
}

// Catalog lists all tools and resources without a server or API client.
// Write tools are marked disabled unless readWrite is set.
func Catalog(readWrite bool) *Registry {
	return RegisterAll(nil, Deps{ReadWrite: readWrite})
}
