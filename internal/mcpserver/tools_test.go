package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rai-review-backend/internal/augment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/resources"
	"rai-review-backend/internal/reviews"
	"rai-review-backend/internal/risk"
)

func newService(t *testing.T) *reviews.Service {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return &reviews.Service{Catalog: catalog.NewHolder(cat), Augmentor: augment.New(nil)}
}

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatalf("no text content in result")
	return ""
}

func TestRiskScoreTool(t *testing.T) {
	tool := NewRiskScoreTool()
	assert.Equal(t, "risk_score", tool.Definition().Name)
	assert.Contains(t, tool.Definition().InputSchema.Required, "project_description")

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"project_description": "Chatbot that answers cafeteria menu questions",
		"deployment_stage":    "production",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var score risk.Score
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &score))
	assert.Equal(t, 65, score.Overall)
	assert.Equal(t, risk.LevelLow, score.Level)
}

func TestRiskScoreToolRequiresDescription(t *testing.T) {
	res, err := NewRiskScoreTool().Handle(context.Background(), makeReq(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestArchitectureToolWithoutResources(t *testing.T) {
	svc := newService(t)
	tool := NewArchitectureTool(svc.Catalog, nil)

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"project_type": "AI Agent"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var arch resources.Architecture
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &arch))
	assert.NotEmpty(t, arch.Pattern)
	assert.NotEmpty(t, arch.References)
}

func TestComplianceLinksTool(t *testing.T) {
	svc := newService(t)
	tool := NewComplianceLinksTool(svc.Catalog)

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"pillar": "Privacy & Security"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	var out map[string][]catalog.Link
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Contains(t, out, "privacy_security")

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"pillar": "vibes"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAssessTool(t *testing.T) {
	tool := NewAssessTool(newService(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"profile": map[string]any{
			"project_name":        "Clinic assistant",
			"project_description": "Summarize patient records and suggest diagnosis codes",
			"industry":            "Healthcare",
		},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), "clinical_decision_support")

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"profile": "not an object"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReviewToolValidation(t *testing.T) {
	tool := NewReviewTool(newService(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{"profile": map[string]any{}}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"profile": map[string]any{"project_name": "Bot"}}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	var doc augment.Document
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &doc))
	assert.Equal(t, "Bot", doc.ProjectName)
}

func TestNewRegistersTools(t *testing.T) {
	s := New(Deps{Reviews: newService(t)})
	tools := s.ListTools()
	for _, name := range []string{"risk_score", "reference_architectures", "compliance_links", "assess_profile", "review_project"} {
		assert.Contains(t, tools, name)
	}
}
