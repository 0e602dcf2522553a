package assessment

import (
	"math"

	"rai-review-backend/internal/profile"
)

// FieldWeight is one row of the completeness weight table.
type FieldWeight struct {
	Field  string
	Weight int
}

// FieldWeights is the completeness table. Order determines the order of
// provided and missing field lists. The weights sum to 100.
var FieldWeights = []FieldWeight{
	{profile.FieldProjectName, 10},
	{profile.FieldProjectDescription, 15},
	{profile.FieldDeploymentStage, 10},
	{profile.FieldTechnologyType, 10},
	{profile.FieldIndustry, 10},
	{profile.FieldTargetUsers, 8},
	{profile.FieldDataTypes, 8},
	{profile.FieldSensitiveData, 8},
	{profile.FieldPotentialRisks, 8},
	{profile.FieldIntendedPurpose, 8},
	{profile.FieldHumanInLoop, 5},
}

const (
	highValueWeight   = 8
	maxHighValueHints = 5
)

var criticalFields = []string{profile.FieldProjectName, profile.FieldProjectDescription}

var fieldHints = map[string]string{
	profile.FieldProjectDescription: "Describe what the system does and who it serves",
	profile.FieldDeploymentStage:    "State the deployment stage so priorities match your timeline",
	profile.FieldTechnologyType:     "Name the AI technology (LLM, agent, vision, classic ML)",
	profile.FieldIndustry:           "Add the industry to match sector-specific risks",
	profile.FieldTargetUsers:        "Describe the target users to assess inclusiveness and impact",
	profile.FieldDataTypes:          "List the data types the system processes",
	profile.FieldSensitiveData:      "Call out sensitive or personal data to size privacy controls",
	profile.FieldPotentialRisks:     "List known risks so mitigations can be prioritized",
	profile.FieldIntendedPurpose:    "State the intended purpose to scope misuse scenarios",
}

// Assessment describes how much usable context a profile carries.
type Assessment struct {
	CompletenessScore      int      `json:"completeness_score"`
	Depth                  Depth    `json:"response_depth"`
	ProvidedFields         []string `json:"provided_fields"`
	MissingHighValueFields []string `json:"missing_high_value_fields"`
	MissingCritical        []string `json:"missing_critical"`
	Suggestions            []string `json:"suggestions"`
	FieldCount             int      `json:"field_count"`
	TotalFields            int      `json:"total_fields"`
}

// Assess scores the completeness of p. It is pure and deterministic.
func Assess(p profile.Profile) Assessment {
	var total, achieved int
	provided := make([]string, 0, len(FieldWeights))
	var highValue []string
	missing := make(map[string]bool)

	for _, fw := range FieldWeights {
		total += fw.Weight
		if p.Has(fw.Field) {
			provided = append(provided, fw.Field)
			achieved += fw.Weight
			continue
		}
		missing[fw.Field] = true
		if fw.Weight >= highValueWeight && len(highValue) < maxHighValueHints {
			highValue = append(highValue, fw.Field)
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(100 * float64(achieved) / float64(total)))
	}

	var critical []string
	for _, f := range criticalFields {
		if missing[f] {
			critical = append(critical, f)
		}
	}
	suggestions := make([]string, 0, len(highValue))
	for _, f := range highValue {
		if hint, ok := fieldHints[f]; ok {
			suggestions = append(suggestions, hint)
		}
	}

	return Assessment{
		CompletenessScore:      score,
		Depth:                  SelectDepth(score),
		ProvidedFields:         provided,
		MissingHighValueFields: nonNil(highValue),
		MissingCritical:        nonNil(critical),
		Suggestions:            suggestions,
		FieldCount:             len(provided),
		TotalFields:            len(FieldWeights),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
