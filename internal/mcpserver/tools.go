package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/profile"
	"rai-review-backend/internal/resources"
	"rai-review-backend/internal/reviews"
	"rai-review-backend/internal/risk"
)

// ArchitectureSource returns reference architectures enriched with live data.
type ArchitectureSource interface {
	Architectures(ctx context.Context, cat *catalog.Catalog, projectType, useCase string) resources.Architecture
}

// RiskScoreTool handles the risk_score tool.
type RiskScoreTool struct{}

func NewRiskScoreTool() *RiskScoreTool {
	return &RiskScoreTool{}
}

func (t *RiskScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("risk_score",
		mcp.WithDescription("Estimate a preliminary 0-100 risk score from a few project facts. Deterministic and offline."),
		mcp.WithString("project_description", mcp.Required(), mcp.Description("What the AI system does")),
		mcp.WithString("deployment_stage", mcp.Description("idea, prototype, pilot or production")),
		mcp.WithString("industry", mcp.Description("Industry or domain")),
		mcp.WithString("ai_capabilities", mcp.Description("Comma separated tags such as personal_data, decisions, facial_recognition")),
	)
}

func (t *RiskScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := req.RequireString("project_description")
	if err != nil || strings.TrimSpace(desc) == "" {
		return mcp.NewToolResultError("project_description is required"), nil
	}
	p := profile.Profile{
		profile.FieldProjectDescription: desc,
		profile.FieldDeploymentStage:    req.GetString("deployment_stage", ""),
		profile.FieldIndustry:           req.GetString("industry", ""),
		profile.FieldAICapabilities:     req.GetString("ai_capabilities", ""),
	}
	return jsonResult(risk.Estimate(p))
}

// ArchitectureTool handles the reference_architectures tool.
type ArchitectureTool struct {
	catalog reviews.CatalogSource
	res     ArchitectureSource
}

func NewArchitectureTool(cat reviews.CatalogSource, res ArchitectureSource) *ArchitectureTool {
	return &ArchitectureTool{catalog: cat, res: res}
}

func (t *ArchitectureTool) Definition() mcp.Tool {
	return mcp.NewTool("reference_architectures",
		mcp.WithDescription("Suggest a reference architecture with Azure services, sample repositories and quick start commands."),
		mcp.WithString("project_type", mcp.Description("Detected project type, e.g. \"LLM/Generative AI\" or \"AI Agent\"")),
		mcp.WithString("use_case", mcp.Description("Free text use case used for keyword matching")),
	)
}

func (t *ArchitectureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := t.catalog.Current()
	if cat == nil {
		return mcp.NewToolResultError("catalog not loaded"), nil
	}
	projectType := req.GetString("project_type", "")
	useCase := req.GetString("use_case", "")
	if t.res == nil {
		return jsonResult(resources.CatalogArchitecture(cat, projectType, useCase))
	}
	return jsonResult(t.res.Architectures(ctx, cat, projectType, useCase))
}

// ComplianceLinksTool handles the compliance_links tool.
type ComplianceLinksTool struct {
	catalog reviews.CatalogSource
}

func NewComplianceLinksTool(cat reviews.CatalogSource) *ComplianceLinksTool {
	return &ComplianceLinksTool{catalog: cat}
}

func (t *ComplianceLinksTool) Definition() mcp.Tool {
	return mcp.NewTool("compliance_links",
		mcp.WithDescription("List regulatory and guidance links for a responsible AI pillar, or for every pillar when none is given."),
		mcp.WithString("pillar", mcp.Description("fairness, reliability_safety, privacy_security, inclusiveness, transparency or accountability")),
	)
}

func (t *ComplianceLinksTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := t.catalog.Current()
	if cat == nil {
		return mcp.NewToolResultError("catalog not loaded"), nil
	}
	raw := strings.TrimSpace(req.GetString("pillar", ""))
	if raw == "" {
		return jsonResult(cat.ComplianceLinks)
	}
	key, ok := catalog.PillarKey(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown pillar %q", raw)), nil
	}
	links := cat.ComplianceLinks[key]
	if links == nil {
		links = []catalog.Link{}
	}
	return jsonResult(map[string][]catalog.Link{key: links})
}

// AssessTool handles the assess_profile tool.
type AssessTool struct {
	svc *reviews.Service
}

func NewAssessTool(svc *reviews.Service) *AssessTool {
	return &AssessTool{svc: svc}
}

func (t *AssessTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_profile",
		mcp.WithDescription("Score profile completeness, pick the review depth and explain scenario matching. Never calls a language model."),
		profileArg(),
	)
}

func (t *AssessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := profileFrom(req)
	if errResult != nil {
		return errResult, nil
	}
	prep, err := t.svc.Explain(ctx, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(prep)
}

// ReviewTool handles the review_project tool.
type ReviewTool struct {
	svc *reviews.Service
}

func NewReviewTool(svc *reviews.Service) *ReviewTool {
	return &ReviewTool{svc: svc}
}

func (t *ReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("review_project",
		mcp.WithDescription("Run a full responsible AI review and return the review document. Falls back to catalog guidance when generation is unavailable."),
		profileArg(),
	)
}

func (t *ReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := profileFrom(req)
	if errResult != nil {
		return errResult, nil
	}
	doc, err := t.svc.Review(ctx, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(doc)
}

func profileArg() mcp.ToolOption {
	return mcp.WithObject("profile",
		mcp.Required(),
		mcp.Description("Project profile fields such as project_name, project_description, deployment_stage, industry, data_types"),
	)
}

func profileFrom(req mcp.CallToolRequest) (profile.Profile, *mcp.CallToolResult) {
	raw, ok := req.GetArguments()["profile"].(map[string]any)
	if !ok {
		return nil, mcp.NewToolResultError("profile must be an object")
	}
	return profile.FromMap(raw), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
