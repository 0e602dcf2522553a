package assessment

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/profile"
)

func TestFieldWeightsSumToHundred(t *testing.T) {
	total := 0
	for _, fw := range FieldWeights {
		if fw.Weight <= 0 {
			t.Fatalf("weight for %s must be positive", fw.Field)
		}
		total += fw.Weight
	}
	if total != 100 {
		t.Fatalf("total weight = %d, want 100", total)
	}
}

func TestAssessNameOnly(t *testing.T) {
	got := Assess(profile.Profile{"project_name": "X"})
	if got.CompletenessScore != 10 {
		t.Fatalf("score = %d, want 10", got.CompletenessScore)
	}
	if got.Depth != DepthMinimal {
		t.Fatalf("depth = %s, want minimal", got.Depth)
	}
	if diff := cmp.Diff([]string{"project_description"}, got.MissingCritical); diff != "" {
		t.Fatalf("missing critical (-want +got):\n%s", diff)
	}
	want := []string{"project_description", "deployment_stage", "technology_type", "industry", "target_users"}
	if diff := cmp.Diff(want, got.MissingHighValueFields); diff != "" {
		t.Fatalf("missing high value (-want +got):\n%s", diff)
	}
	if len(got.Suggestions) != 5 {
		t.Fatalf("suggestions = %v", got.Suggestions)
	}
}

func TestAssessCoreFieldsReachStandard(t *testing.T) {
	p := profile.Profile{
		"project_name":        "Clinic Notes",
		"project_description": "Summarizes visit notes for clinicians",
		"deployment_stage":    "Production",
		"technology_type":     "LLM",
		"industry":            "Healthcare",
	}
	got := Assess(p)
	if got.CompletenessScore < 50 {
		t.Fatalf("score = %d, want >= 50", got.CompletenessScore)
	}
	if got.Depth != DepthStandard {
		t.Fatalf("depth = %s, want standard", got.Depth)
	}
	if len(got.MissingCritical) != 0 {
		t.Fatalf("missing critical = %v", got.MissingCritical)
	}
}

func TestAssessSentinelsCountAsMissing(t *testing.T) {
	p := profile.Profile{
		"project_name":     "X",
		"industry":         "N/A",
		"deployment_stage": "not specified",
		"target_users":     "  ",
	}
	if got := Assess(p).CompletenessScore; got != 10 {
		t.Fatalf("score = %d, want 10", got)
	}
}

func TestAssessEmptyProfile(t *testing.T) {
	got := Assess(profile.Profile{})
	if got.CompletenessScore != 0 || got.Depth != DepthMinimal {
		t.Fatalf("got score=%d depth=%s", got.CompletenessScore, got.Depth)
	}
	if len(got.ProvidedFields) != 0 {
		t.Fatalf("provided = %v", got.ProvidedFields)
	}
}

func TestAssessAddingFieldsNeverLowersScore(t *testing.T) {
	p := profile.Profile{}
	prev := Assess(p).CompletenessScore
	for _, fw := range FieldWeights {
		p[fw.Field] = "value for " + fw.Field
		score := Assess(p).CompletenessScore
		if score < prev {
			t.Fatalf("adding %s lowered score %d -> %d", fw.Field, prev, score)
		}
		if score < 0 || score > 100 {
			t.Fatalf("score out of range: %d", score)
		}
		prev = score
	}
	if prev != 100 {
		t.Fatalf("full profile score = %d, want 100", prev)
	}
}

func TestDetectCharacteristics(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	tests := []struct {
		name    string
		profile profile.Profile
		check   func(Characteristics) bool
		primary string
	}{
		{
			name:    "empty profile",
			profile: profile.Profile{"project_name": "X"},
			check: func(c Characteristics) bool {
				return !c.IsLLM && !c.IsAgent && !c.IsML && !c.IsVision && !c.IsDocument &&
					!c.HandlesPII && !c.IsHighRisk && !c.IsCustomerFacing
			},
			primary: TypeGeneral,
		},
		{
			name: "llm in healthcare",
			profile: profile.Profile{
				"project_description": "Summarizes visit notes for clinicians",
				"technology_type":     "LLM",
				"industry":            "Healthcare",
			},
			check:   func(c Characteristics) bool { return c.IsLLM && c.IsHighRisk && !c.IsAgent },
			primary: TypeLLM,
		},
		{
			name: "agent outranks llm",
			profile: profile.Profile{
				"project_description": "Autonomous agent that books travel using GPT",
			},
			check:   func(c Characteristics) bool { return c.IsAgent && c.IsLLM },
			primary: TypeAgent,
		},
		{
			name: "vision outranks document",
			profile: profile.Profile{
				"project_description": "Camera based image inspection of invoice scans",
			},
			check:   func(c Characteristics) bool { return c.IsVision && c.IsDocument },
			primary: TypeVision,
		},
		{
			name: "traditional ml",
			profile: profile.Profile{
				"project_description": "Demand forecast for warehouse stock",
			},
			check:   func(c Characteristics) bool { return c.IsML && !c.IsLLM },
			primary: TypeML,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCharacteristics(tt.profile, cat)
			if !tt.check(got) {
				t.Fatalf("unexpected flags: %+v", got)
			}
			if got.PrimaryType != tt.primary {
				t.Fatalf("primary = %q, want %q", got.PrimaryType, tt.primary)
			}
		})
	}
}

func TestDetectCharacteristicsNilCatalog(t *testing.T) {
	got := DetectCharacteristics(profile.Profile{"project_description": "chatbot"}, nil)
	if got.IsLLM || got.PrimaryType != TypeGeneral {
		t.Fatalf("got %+v", got)
	}
}
