package augment

import (
	"fmt"
	"sort"
	"strings"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/priority"
)

// defaultPillar receives generated recommendations that name no known pillar.
const defaultPillar = "accountability"

// mergeRecommendations keeps every generated recommendation and adds catalog
// templates for pillars the generated response left empty. Template additions
// are the most severe first and stop at the depth's recommendation limit.
func (b *builder) mergeRecommendations(g *generation.Generated) (map[string][]Recommendation, Source) {
	out := make(map[string][]Recommendation)
	seen := dedupe{}
	total := 0
	add := func(r Recommendation) bool {
		if !seen.first(r.Title) {
			return false
		}
		out[r.Pillar] = append(out[r.Pillar], r)
		total++
		return true
	}

	if g != nil {
		for _, key := range pillarOrder(g.RecommendationsByPillar) {
			pillar := normalizePillar(key)
			for _, gr := range g.RecommendationsByPillar[key] {
				if r, ok := b.fromGenerated(gr, pillar); ok {
					add(r)
				}
			}
		}
		for _, gr := range g.Recommendations {
			if r, ok := b.fromGenerated(gr, b.pillarFor(gr)); ok {
				add(r)
			}
		}
	}
	generated := total
	covered := make(map[string]bool, len(out))
	for pillar := range out {
		covered[pillar] = true
	}

	limit := b.in.Template.RecommendationLimit
	unlimited := b.in.Template.Unlimited()
	candidates := b.templateCandidates(false)
	if len(candidates) == 0 && generated == 0 {
		candidates = b.templateCandidates(true)
	}
	for _, c := range candidates {
		if !unlimited && total >= limit {
			break
		}
		if covered[c.Pillar] {
			continue
		}
		add(c)
	}

	switch {
	case generated == 0:
		return out, SourceFallback
	case total > generated:
		return out, SourceMerged
	default:
		return out, SourceGenerated
	}
}

// fromGenerated converts a generated recommendation. The generated priority
// text is kept as given. Its tier is used when it names one; otherwise the
// catalog priority is escalated.
func (b *builder) fromGenerated(gr generation.Recommendation, pillar string) (Recommendation, bool) {
	title := strings.TrimSpace(gr.Title)
	if title == "" {
		title = strings.TrimSpace(gr.Issue)
	}
	if title == "" {
		return Recommendation{}, false
	}
	r := Recommendation{
		ID:                  gr.ID,
		Pillar:              pillar,
		Title:               title,
		RiskType:            gr.RiskType,
		Issue:               gr.Issue,
		WhyNeeded:           gr.WhyNeeded,
		WhatHappensWithout:  gr.WhatHappensWithout,
		Recommendation:      gr.Recommendation,
		ImplementationSteps: gr.ImplementationSteps,
		Source:              SourceGenerated,
	}
	if tier, err := priority.ParseTier(gr.Priority); err == nil {
		r.Tier = tier
	} else if gr.RiskType != "" {
		r.Tier = b.escalator.ForRisk(gr.RiskType, b.pctx)
	} else {
		r.Tier = b.escalator.ForTier(priority.Recommended, b.pctx)
	}
	r.Priority = strings.TrimSpace(gr.Priority)
	if r.Priority == "" {
		r.Priority = r.Tier.Key()
	}
	r.PriorityLabel = b.label(r.Tier)
	if len(gr.Tools) > 0 {
		r.Tool = b.toolLink(gr.Tools[0].Name, gr.Tools[0].URL)
	}
	return r, true
}

// pillarFor places a flat generated recommendation by its principle, then by
// the pillar of a template with the same risk type.
func (b *builder) pillarFor(gr generation.Recommendation) string {
	if key, ok := catalog.PillarKey(gr.Principle); ok {
		return key
	}
	if cat := b.in.Catalog; cat != nil && gr.RiskType != "" {
		for _, t := range cat.Recommendations {
			if t.RiskType == gr.RiskType {
				return normalizePillar(t.Pillar)
			}
		}
	}
	return defaultPillar
}

// templateCandidates returns the catalog templates that apply to the
// project, most severe first. all ignores applies_to.
func (b *builder) templateCandidates(all bool) []Recommendation {
	if b.in.Catalog == nil {
		return nil
	}
	var out []Recommendation
	for _, t := range b.in.Catalog.Recommendations {
		if !all && !b.applies(t) {
			continue
		}
		tier := b.escalator.ForRisk(t.RiskType, b.pctx)
		r := Recommendation{
			Pillar:              normalizePillar(t.Pillar),
			Title:               t.Title,
			RiskType:            t.RiskType,
			WhyNeeded:           t.WhyNeeded,
			WhatHappensWithout:  t.WhatHappensWithout,
			Priority:            tier.Key(),
			Tier:                tier,
			PriorityLabel:       b.label(tier),
			ImplementationSteps: append([]string(nil), t.ImplementationSteps...),
			Source:              SourceFallback,
		}
		if t.Tool != "" {
			r.Tool = b.toolLink(t.Tool, "")
			r.ProjectContext = b.scenarioContext(t.Tool)
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tier.MoreSevereThan(out[j].Tier)
	})
	return out
}

func (b *builder) applies(t catalog.RecommendationTemplate) bool {
	if len(t.AppliesTo) == 0 {
		return true
	}
	for _, flag := range t.AppliesTo {
		if b.in.Characteristics.Has(flag) {
			return true
		}
	}
	return false
}

func (b *builder) toolLink(name, url string) *ToolLink {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if url == "" {
		if ct, ok := b.catalogTool(name); ok {
			url = ct.URL
		}
	}
	return &ToolLink{Name: name, URL: url}
}

// scenarioContext explains why a tool matters for the matched scenario.
func (b *builder) scenarioContext(tool string) string {
	sc := b.in.Scenario
	if sc == nil {
		return ""
	}
	for _, ref := range sc.RequiredTools {
		if strings.EqualFold(ref.Name, tool) {
			return fmt.Sprintf("Required for %s: %s", sc.Title, ref.Purpose)
		}
	}
	for _, ref := range sc.RecommendedTools {
		if strings.EqualFold(ref.Name, tool) {
			return fmt.Sprintf("Recommended for %s: %s", sc.Title, ref.Purpose)
		}
	}
	return ""
}
