package augment

import (
	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/priority"
)

const (
	maxNextSteps       = 8
	maxBlockerSteps    = 3
	maxComplianceSteps = 2
)

// mergeNextSteps keeps generated next steps. Without them the steps are built
// from critical blockers, compliance links, the first phase and the scenario.
func (b *builder) mergeNextSteps(g []string, summary priority.Summary, recs map[string][]Recommendation) ([]string, Source) {
	if steps := nonBlank(g); len(steps) > 0 {
		return steps, SourceGenerated
	}

	seen := dedupe{}
	out := make([]string, 0, maxNextSteps)
	add := func(step string) {
		if len(out) < maxNextSteps && seen.first(step) {
			out = append(out, step)
		}
	}

	for i, title := range summary.CriticalBlockers {
		if i == maxBlockerSteps {
			break
		}
		add("Resolve before deployment: " + title)
	}
	for i, link := range b.complianceLinks(recs) {
		if i == maxComplianceSteps {
			break
		}
		add("Review " + link.Title + ": " + link.URL)
	}
	if cat := b.in.Catalog; cat != nil && len(cat.Phases) > 0 {
		for _, action := range cat.Phases[0].Actions {
			add(action)
		}
	}
	if sc := b.in.Scenario; sc != nil {
		for _, step := range sc.ImplementationSteps {
			add(step)
		}
	}
	if b.in.Assessment.Depth < assessment.DepthStandard {
		for _, s := range b.in.Assessment.Suggestions {
			add(s)
		}
	}
	if len(out) == 0 {
		out = append(out, "Complete the project profile and request a new review")
	}
	return out, SourceFallback
}

// complianceLinks returns the compliance links for the pillars of the most
// severe recommendations, in pillar order.
func (b *builder) complianceLinks(recs map[string][]Recommendation) []catalog.Link {
	cat := b.in.Catalog
	if cat == nil {
		return nil
	}
	best := priority.NiceToHave
	for _, list := range recs {
		for _, r := range list {
			best = priority.Max(best, r.Tier)
		}
	}
	var out []catalog.Link
	for _, pillar := range pillarOrder(recs) {
		hit := false
		for _, r := range recs[pillar] {
			if r.Tier == best {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		out = append(out, cat.ComplianceLinks[pillar]...)
	}
	return out
}
