package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFencedJSONWithProse(t *testing.T) {
	raw := "Here is the review you asked for:\n```json\n" +
		`{"review_mode":"quick_scan","risk_scores":{"overall_score":"72%","risk_level":"Medium"},"next_steps":["Ship it"]}` +
		"\n```\nLet me know if you need more."

	g, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "quick_scan", g.ReviewMode)
	require.NotNil(t, g.RiskScores)
	require.NotNil(t, g.RiskScores.OverallScore)
	assert.Equal(t, 72, g.RiskScores.OverallScore.Int())
	assert.Equal(t, "Medium", g.RiskScores.RiskLevel)
	assert.Nil(t, g.RiskScores.PrincipleScores)
	assert.Equal(t, []string{"Ship it"}, g.NextSteps)
	assert.Nil(t, g.ReferenceArchitecture)
}

func TestParseProseAroundBareObject(t *testing.T) {
	raw := `Sure! {"next_steps":["Use {braces} in strings", "ok"]} trailing {not json`
	g, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Use {braces} in strings", "ok"}, g.NextSteps)
}

func TestParseRejectsPartialAndNonJSON(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":     "",
		"prose":     "I cannot help with that.",
		"truncated": `{"risk_scores": {"overall_score": 70, "risk_level": "Med`,
	} {
		t.Run(name, func(t *testing.T) {
			g, err := Parse(raw)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidJSON), "got %v", err)
			assert.Equal(t, ErrorCodeInvalidJSON, Classify(err))
		})
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	raw := `{"project_summary":"x","risk_scores":{"overall_score":40,"mystery":true},"extra":[1,2,3]}`
	g, err := Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, g.RiskScores)
	assert.Equal(t, 40, g.RiskScores.OverallScore.Int())
	assert.False(t, g.Empty())
}

func TestParseKeepsValidSiblingFields(t *testing.T) {
	raw := `{"risk_scores":{"overall_score":70,"principle_scores":{"fairness":"high","safety":"64%"}},` +
		`"recommendations_by_pillar":{"fairness":[{"title":"Audit bias","implementation_steps":"run fairlearn"},"not an object"]}}`
	g, err := Parse(raw)
	require.NoError(t, err)

	require.NotNil(t, g.RiskScores)
	require.NotNil(t, g.RiskScores.OverallScore)
	assert.Equal(t, 70, g.RiskScores.OverallScore.Int())
	assert.Equal(t, map[string]Number{"safety": 64}, g.RiskScores.PrincipleScores)

	recs := g.RecommendationsByPillar["fairness"]
	require.Len(t, recs, 1)
	assert.Equal(t, "Audit bias", recs[0].Title)
	assert.Equal(t, []string{"run fairlearn"}, recs[0].ImplementationSteps)
}

func TestParseDropsSectionWithWrongShape(t *testing.T) {
	raw := `{"risk_scores":"high","next_steps":"Review data flows","quick_start_guide":{"essential_tools":["Fairlearn",{"name":"PyRIT","install":"pip install pyrit","cost":0}]}}`
	g, err := Parse(raw)
	require.NoError(t, err)
	assert.Nil(t, g.RiskScores)
	assert.Equal(t, []string{"Review data flows"}, g.NextSteps)
	require.NotNil(t, g.QuickStartGuide)
	tools := g.QuickStartGuide.EssentialTools
	require.Len(t, tools, 2)
	assert.Equal(t, Tool{Name: "Fairlearn"}, tools[0])
	assert.Equal(t, "PyRIT", tools[1].Name)
	assert.Equal(t, "pip install pyrit", tools[1].InstallCommand)
	assert.Equal(t, "0", tools[1].Cost)
}

func TestParseDropsBadFieldInsideTool(t *testing.T) {
	g, err := Parse(`{"quick_start_guide":{"essential_tools":[{"name":"Presidio","url":{"href":"x"}}]}}`)
	require.NoError(t, err)
	require.NotNil(t, g.QuickStartGuide)
	require.Len(t, g.QuickStartGuide.EssentialTools, 1)
	assert.Equal(t, Tool{Name: "Presidio"}, g.QuickStartGuide.EssentialTools[0])
}

func TestParseKeepsEmptySectionsDistinctFromAbsent(t *testing.T) {
	g, err := Parse(`{"reference_architecture":{},"recommendations_by_pillar":{}}`)
	require.NoError(t, err)
	require.NotNil(t, g.ReferenceArchitecture)
	assert.Empty(t, g.ReferenceArchitecture.AzureServices)
	assert.NotNil(t, g.RecommendationsByPillar)
	assert.Nil(t, g.QuickStartGuide)
}

func TestEmpty(t *testing.T) {
	var g *Generated
	assert.True(t, g.Empty())
	assert.True(t, (&Generated{ReviewMode: "deep_dive"}).Empty())
	assert.False(t, (&Generated{NextSteps: []string{"a"}}).Empty())
}

func TestNumberRejectsGarbage(t *testing.T) {
	g, err := Parse(`{"risk_scores":{"overall_score":"very high","risk_level":"High"},"next_steps":["a"]}`)
	require.NoError(t, err)
	require.NotNil(t, g.RiskScores)
	assert.Nil(t, g.RiskScores.OverallScore)
	assert.Equal(t, "High", g.RiskScores.RiskLevel)
}
