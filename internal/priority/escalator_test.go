package priority

import (
	"testing"

	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
)

func contexts() []Context {
	var out []Context
	for _, highRisk := range []bool{false, true} {
		for _, pii := range []bool{false, true} {
			for _, stage := range []string{"", "Development", "PRODUCTION"} {
				for _, risk := range []string{"", RiskPIIExposure, RiskExplainability, "bias_discrimination"} {
					out = append(out, Context{
						Characteristics: assessment.Characteristics{IsHighRisk: highRisk, HandlesPII: pii},
						Stage:           stage,
						RiskType:        risk,
					})
				}
			}
		}
	}
	return out
}

func TestEscalateIsMonotonicAndNeverLowers(t *testing.T) {
	for _, ctx := range contexts() {
		for _, a := range Tiers {
			ea := Escalate(a, ctx, DefaultRules)
			if a.MoreSevereThan(ea) {
				t.Fatalf("escalate(%s, %+v) lowered to %s", a, ctx, ea)
			}
			for _, b := range Tiers {
				if b.MoreSevereThan(a) && ea.MoreSevereThan(Escalate(b, ctx, DefaultRules)) {
					t.Fatalf("not monotonic: %s -> %s but %s -> %s (%+v)", a, ea, b, Escalate(b, ctx, DefaultRules), ctx)
				}
			}
		}
	}
	if Escalate(CriticalBlocker, contexts()[0], DefaultRules) != CriticalBlocker {
		t.Fatalf("critical blocker must stay critical")
	}
}

func TestEscalateRules(t *testing.T) {
	highRisk := assessment.Characteristics{IsHighRisk: true}
	pii := assessment.Characteristics{HandlesPII: true}

	tests := []struct {
		name string
		base Tier
		ctx  Context
		want Tier
	}{
		{"no context", Recommended, Context{}, Recommended},
		{"high risk raises recommended", Recommended, Context{Characteristics: highRisk}, HighlyRecommended},
		{"high risk is a single step", NiceToHave, Context{Characteristics: highRisk}, Recommended},
		{"production raises highly recommended", HighlyRecommended, Context{Stage: "production"}, CriticalBlocker},
		{"production is case insensitive", Recommended, Context{Stage: "Production"}, HighlyRecommended},
		{"pilot is not production", Recommended, Context{Stage: "pilot"}, Recommended},
		{"high risk then production", Recommended, Context{Characteristics: highRisk, Stage: "production"}, CriticalBlocker},
		{"production leaves nice to have", NiceToHave, Context{Stage: "production"}, NiceToHave},
		{"pii override", NiceToHave, Context{Characteristics: pii, RiskType: RiskPIIExposure}, CriticalBlocker},
		{"pii override needs pii handling", NiceToHave, Context{RiskType: RiskPIIExposure}, NiceToHave},
		{"explainability with pii", Recommended, Context{Characteristics: pii, RiskType: RiskExplainability}, HighlyRecommended},
		{"explainability never lowers", CriticalBlocker, Context{Characteristics: pii, RiskType: RiskExplainability}, CriticalBlocker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escalate(tt.base, tt.ctx, DefaultRules); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEscalatorUsesCatalogPriorities(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	e := NewEscalator(cat)

	if got := e.Base("prompt_injection_jailbreak"); got != CriticalBlocker {
		t.Fatalf("base prompt injection = %s", got)
	}
	if got := e.Base("unheard_of_risk"); got != Recommended {
		t.Fatalf("unknown risk base = %s", got)
	}
	if got := e.ForRisk("cost_optimization", Context{Characteristics: assessment.Characteristics{IsHighRisk: true}}); got != Recommended {
		t.Fatalf("cost optimization high risk = %s", got)
	}

	prod := Context{Stage: "production"}
	if got := e.ForTool("Azure Monitor", prod); got != HighlyRecommended {
		t.Fatalf("Azure Monitor in production = %s", got)
	}
	if got := e.ForTool("fairlearn", prod); got != CriticalBlocker {
		t.Fatalf("Fairlearn in production = %s", got)
	}
	if got := e.ForTool("Presidio", Context{}); got != CriticalBlocker {
		t.Fatalf("Presidio = %s", got)
	}
	if got := e.ForTool("Unknown Tool", Context{}); got != Recommended {
		t.Fatalf("unknown tool = %s", got)
	}
}

func TestParseTier(t *testing.T) {
	tests := map[string]Tier{
		"CRITICAL_BLOCKER":   CriticalBlocker,
		"Critical Blocker":   CriticalBlocker,
		"non-negotiable":     CriticalBlocker,
		"HIGHLY_RECOMMENDED": HighlyRecommended,
		"high":               HighlyRecommended,
		"medium":             Recommended,
		"nice_to_have":       NiceToHave,
		"optional":           NiceToHave,
	}
	for raw, want := range tests {
		got, err := ParseTier(raw)
		if err != nil || got != want {
			t.Fatalf("ParseTier(%q) = %s, %v", raw, got, err)
		}
	}
	if _, err := ParseTier("urgent"); err == nil {
		t.Fatalf("expected error")
	}
}
