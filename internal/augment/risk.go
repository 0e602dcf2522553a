package augment

import (
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/risk"
)

func fallbackRisk(est risk.Score) RiskScores {
	return RiskScores{
		OverallScore:          generation.Number(est.Overall),
		RiskLevel:             est.Level,
		PrincipleScores:       copyScores(est.PrincipleScores),
		RiskSummary:           est.Summary,
		DriversPositive:       est.DriversPositive,
		DriversNegative:       est.DriversNegative,
		QualitativeAssessment: est.QualitativeAssessment,
	}
}

// mergeRisk keeps every generated value as given and fills the rest from the
// estimate. The level of a generated score is derived from that score, not the
// estimate. A generated principle key covers its pillar under any spelling.
func mergeRisk(g *generation.RiskScores, est risk.Score) (RiskScores, Source) {
	if g == nil {
		return fallbackRisk(est), SourceFallback
	}
	filled := false
	out := RiskScores{ScoreExplanation: g.ScoreExplanation, RiskLevel: g.RiskLevel}

	if g.OverallScore != nil {
		out.OverallScore = *g.OverallScore
	} else {
		filled = true
		out.OverallScore = generation.Number(est.Overall)
		out.RiskSummary = est.Summary
		out.DriversPositive = est.DriversPositive
		out.DriversNegative = est.DriversNegative
	}
	if out.RiskLevel == "" {
		filled = true
		out.RiskLevel = risk.LevelFor(out.OverallScore.Int())
	}

	out.PrincipleScores = make(map[string]generation.Number, len(catalog.Pillars))
	covered := make(map[string]bool, len(g.PrincipleScores))
	for key, v := range g.PrincipleScores {
		out.PrincipleScores[key] = v
		if pillar, ok := catalog.PillarKey(key); ok {
			covered[pillar] = true
		}
	}
	for _, pillar := range catalog.Pillars {
		if !covered[pillar] {
			filled = true
			out.PrincipleScores[pillar] = generation.Number(est.PrincipleScores[pillar])
		}
	}
	if filled {
		out.QualitativeAssessment = est.QualitativeAssessment
		return out, SourceMerged
	}
	return out, SourceGenerated
}

func copyScores(in map[string]int) map[string]generation.Number {
	out := make(map[string]generation.Number, len(in))
	for k, v := range in {
		out[k] = generation.Number(v)
	}
	return out
}
