package priority

import (
	"strings"

	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
)

// Risk types with dedicated escalation rules.
const (
	RiskPIIExposure    = "pii_data_exposure"
	RiskExplainability = "lack_of_explainability"
)

// Context is the per-recommendation input to escalation.
type Context struct {
	Characteristics assessment.Characteristics
	Stage           string
	RiskType        string
}

// Move shifts a tier one step toward CriticalBlocker.
type Move struct {
	From Tier
	To   Tier
}

// Rule applies at most one of its moves when its condition holds.
// A terminal rule ends evaluation when it fires.
type Rule struct {
	Name     string
	When     func(Context) bool
	Moves    []Move
	Terminal bool
}

// DefaultRules are evaluated in order.
var DefaultRules = []Rule{
	{
		Name:  "high_risk",
		When:  func(c Context) bool { return c.Characteristics.IsHighRisk },
		Moves: []Move{{Recommended, HighlyRecommended}, {NiceToHave, Recommended}},
	},
	{
		Name:  "production",
		When:  func(c Context) bool { return strings.EqualFold(strings.TrimSpace(c.Stage), "production") },
		Moves: []Move{{HighlyRecommended, CriticalBlocker}, {Recommended, HighlyRecommended}},
	},
	{
		Name:  "explainability_with_pii",
		When:  func(c Context) bool { return c.RiskType == RiskExplainability && c.Characteristics.HandlesPII },
		Moves: []Move{{Recommended, HighlyRecommended}, {NiceToHave, HighlyRecommended}},
	},
	{
		Name:     "pii_exposure",
		When:     func(c Context) bool { return c.RiskType == RiskPIIExposure && c.Characteristics.HandlesPII },
		Moves:    []Move{{HighlyRecommended, CriticalBlocker}, {Recommended, CriticalBlocker}, {NiceToHave, CriticalBlocker}},
		Terminal: true,
	},
}

// Escalate applies rules to base in order. Moves only ever increase severity.
func Escalate(base Tier, ctx Context, rules []Rule) Tier {
	tier := base
	for _, r := range rules {
		if !r.When(ctx) {
			continue
		}
		for _, m := range r.Moves {
			if m.From == tier && m.To.MoreSevereThan(tier) {
				tier = m.To
				break
			}
		}
		if r.Terminal {
			break
		}
	}
	return tier
}

// Escalator resolves base priorities from the catalog and escalates them.
type Escalator struct {
	cat   *catalog.Catalog
	rules []Rule
}

func NewEscalator(cat *catalog.Catalog) *Escalator {
	return &Escalator{cat: cat, rules: DefaultRules}
}

// Base returns the catalog priority for riskType, defaulting to Recommended.
func (e *Escalator) Base(riskType string) Tier {
	if e.cat == nil {
		return Recommended
	}
	raw, ok := e.cat.RiskPriorities[riskType]
	if !ok {
		return Recommended
	}
	t, err := ParseTier(raw)
	if err != nil {
		return Recommended
	}
	return t
}

// ForRisk escalates the catalog priority of riskType.
func (e *Escalator) ForRisk(riskType string, ctx Context) Tier {
	ctx.RiskType = riskType
	return Escalate(e.Base(riskType), ctx, e.rules)
}

// ForTier escalates an explicit base tier for the risk in ctx.
func (e *Escalator) ForTier(base Tier, ctx Context) Tier {
	return Escalate(base, ctx, e.rules)
}

// ForTool returns the most severe escalated tier across the risks the tool
// addresses. Unknown tools escalate from Recommended.
func (e *Escalator) ForTool(name string, ctx Context) Tier {
	if e.cat == nil {
		return Escalate(Recommended, ctx, e.rules)
	}
	tool, ok := e.cat.Tool(name)
	if !ok || len(tool.Risks) == 0 {
		return Escalate(Recommended, ctx, e.rules)
	}
	best := NiceToHave
	for _, risk := range tool.Risks {
		best = Max(best, e.ForRisk(risk, ctx))
	}
	return best
}
