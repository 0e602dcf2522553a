package profile

import "strings"

// Field names recognized by the pipeline.
const (
	FieldProjectName        = "project_name"
	FieldProjectDescription = "project_description"
	FieldDeploymentStage    = "deployment_stage"
	FieldTechnologyType     = "technology_type"
	FieldIndustry           = "industry"
	FieldTargetUsers        = "target_users"
	FieldDataTypes          = "data_types"
	FieldSensitiveData      = "sensitive_data"
	FieldPotentialRisks     = "potential_risks"
	FieldIntendedPurpose    = "intended_purpose"
	FieldHumanInLoop        = "human_in_loop"
	FieldAIModels           = "ai_models"
	FieldModelType          = "model_type"
	FieldAICapabilities     = "ai_capabilities"
)

// TextFields are concatenated for keyword detection and scenario matching.
var TextFields = []string{
	FieldProjectDescription,
	FieldTechnologyType,
	FieldAIModels,
	FieldIndustry,
	FieldModelType,
	FieldIntendedPurpose,
	FieldDataTypes,
	FieldSensitiveData,
	FieldTargetUsers,
}

var sentinels = map[string]bool{
	"not specified": true,
	"not provided":  true,
	"n/a":           true,
	"none":          true,
}

// Profile is the caller-supplied project description. It is treated as
// immutable once it enters the pipeline.
type Profile map[string]string

// Get returns the trimmed value of field, or "" when the field is absent or a sentinel.
func (p Profile) Get(field string) string {
	v := strings.TrimSpace(p[field])
	if sentinels[strings.ToLower(v)] {
		return ""
	}
	return v
}

// Has reports whether field carries a usable value.
func (p Profile) Has(field string) bool {
	return p.Get(field) != ""
}

// Name returns the project name.
func (p Profile) Name() string {
	return p.Get(FieldProjectName)
}

// Stage returns the lower-cased deployment stage.
func (p Profile) Stage() string {
	return strings.ToLower(p.Get(FieldDeploymentStage))
}

// Text returns the lower-cased, space-joined usable values of fields.
func (p Profile) Text(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := p.Get(f); v != "" {
			parts = append(parts, strings.ToLower(v))
		}
	}
	return strings.Join(parts, " ")
}

// FreeText is Text over TextFields.
func (p Profile) FreeText() string {
	return p.Text(TextFields...)
}

// ContainsAny reports whether text contains any keyword as a substring.
func ContainsAny(text string, keywords []string) bool {
	_, ok := FirstMatch(text, keywords)
	return ok
}

// FirstMatch returns the first keyword found in text.
func FirstMatch(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
