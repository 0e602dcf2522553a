package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rai-review-backend/internal/profile"
)

func TestEstimateBaseline(t *testing.T) {
	s := Estimate(profile.Profile{"project_name": "X"})
	assert.Equal(t, 55, s.Overall)
	assert.Equal(t, LevelLow, s.Level)
	assert.Empty(t, s.DriversNegative)
	assert.Equal(t, 55, s.PrincipleScores["privacy_security"])
	assert.Equal(t, 52, s.PrincipleScores["inclusiveness"])
	assert.Len(t, s.PrincipleScores, 6)
}

func TestEstimatePatientDiagnosisInProductionIsHigh(t *testing.T) {
	s := Estimate(profile.Profile{
		"project_name":        "Triage",
		"project_description": "Suggests next steps from patient diagnosis history",
		"deployment_stage":    "Production",
	})
	assert.Equal(t, 89, s.Overall)
	assert.Equal(t, LevelHigh, s.Level)

	var health bool
	for _, d := range s.DriversNegative {
		if strings.Contains(d, "Health-related") && strings.Contains(d, "patient") {
			health = true
		}
	}
	assert.True(t, health, "drivers: %v", s.DriversNegative)
	assert.Contains(t, s.DriversNegative, "Production deployment increases risk")
	assert.Contains(t, s.DriversNegative, "High-risk AI capability: health_data")
}

func TestEstimateClampsAndLevels(t *testing.T) {
	s := Estimate(profile.Profile{
		"project_description": "Facial biometric payments for student loan patients",
		"deployment_stage":    "live",
		"ai_capabilities":     "decisions, personal data",
	})
	assert.Equal(t, 95, s.Overall)
	assert.Equal(t, LevelHigh, s.Level)
	assert.Equal(t, 90, s.PrincipleScores["reliability_safety"])
	assert.Equal(t, 95, s.PrincipleScores["privacy_security"])

	early := Estimate(profile.Profile{"deployment_stage": "Prototype"})
	assert.Equal(t, 50, early.Overall)
	require.Len(t, early.DriversPositive, 1)
	assert.Equal(t, 50, early.PrincipleScores["fairness"])
}

func TestEstimateAlwaysInRange(t *testing.T) {
	profiles := []profile.Profile{
		{},
		{"deployment_stage": "ga", "project_description": "bank"},
		{"project_description": "children health face payment", "deployment_stage": "production", "ai_capabilities": "financial"},
	}
	for _, p := range profiles {
		s := Estimate(p)
		require.GreaterOrEqual(t, s.Overall, 0)
		require.LessOrEqual(t, s.Overall, 95)
		assert.Equal(t, LevelFor(s.Overall), s.Level)
		assert.Equal(t, s, Estimate(p), "estimate must be deterministic")
	}
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities(profile.Profile{
		"ai_capabilities":     "Personal Data, decisions, decisions",
		"project_description": "reads the clinical record",
	})
	assert.Equal(t, []string{"personal_data", "decisions", "health_data"}, caps)
}
