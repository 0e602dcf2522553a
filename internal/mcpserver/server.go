// Package mcpserver exposes the deterministic review stages as MCP tools so
// assistants can score and look up guidance without the HTTP API.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"rai-review-backend/internal/reviews"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Deps are the collaborators the tools need. Resources may be nil, in which
// case architectures come from the catalog alone.
type Deps struct {
	Reviews   *reviews.Service
	Resources ArchitectureSource
}

// New creates the MCP server with every tool registered.
func New(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"rai-review",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	riskTool := NewRiskScoreTool()
	s.AddTool(riskTool.Definition(), riskTool.Handle)

	archTool := NewArchitectureTool(deps.Reviews.Catalog, deps.Resources)
	s.AddTool(archTool.Definition(), archTool.Handle)

	linksTool := NewComplianceLinksTool(deps.Reviews.Catalog)
	s.AddTool(linksTool.Definition(), linksTool.Handle)

	assessTool := NewAssessTool(deps.Reviews)
	s.AddTool(assessTool.Definition(), assessTool.Handle)

	reviewTool := NewReviewTool(deps.Reviews)
	s.AddTool(reviewTool.Definition(), reviewTool.Handle)

	return s
}

const instructions = `Responsible AI review tools.
Use assess_profile first to see how complete a project profile is and which scenario it matches.
Use review_project for the full review document. risk_score, reference_architectures and compliance_links answer narrower questions and never call a language model.`
