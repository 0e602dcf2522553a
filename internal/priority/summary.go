package priority

import "rai-review-backend/internal/catalog"

const (
	ReadinessNotReady    = "NOT READY"
	ReadinessConditional = "CONDITIONAL"
)

const maxImmediateActions = 3

// Item is anything that carries a title and a tier.
type Item struct {
	Title string
	Tier  Tier
}

// Summary counts items per tier and derives deployment readiness.
type Summary struct {
	NonNegotiableCount     int      `json:"non_negotiable_count"`
	HighlyRecommendedCount int      `json:"highly_recommended_count"`
	RecommendedCount       int      `json:"recommended_count"`
	OptionalCount          int      `json:"optional_count"`
	CriticalBlockers       []string `json:"critical_blockers"`
	ImmediateActions       []string `json:"immediate_actions"`
	DeploymentReadiness    string   `json:"deployment_readiness"`
}

// Summarize builds the tier summary for items in their given order.
func Summarize(items []Item) Summary {
	s := Summary{CriticalBlockers: []string{}, ImmediateActions: []string{}}
	var high []string
	for _, it := range items {
		title := it.Title
		if title == "" {
			title = "Untitled"
		}
		switch it.Tier {
		case CriticalBlocker:
			s.NonNegotiableCount++
			s.CriticalBlockers = append(s.CriticalBlockers, title)
		case HighlyRecommended:
			s.HighlyRecommendedCount++
			high = append(high, title)
		case Recommended:
			s.RecommendedCount++
		default:
			s.OptionalCount++
		}
	}
	for _, title := range append(append([]string(nil), s.CriticalBlockers...), high...) {
		if len(s.ImmediateActions) == maxImmediateActions {
			break
		}
		s.ImmediateActions = append(s.ImmediateActions, title)
	}
	s.DeploymentReadiness = ReadinessConditional
	if s.NonNegotiableCount > 0 {
		s.DeploymentReadiness = ReadinessNotReady
	}
	return s
}

// Definition returns the catalog definition for t.
func Definition(cat *catalog.Catalog, t Tier) (catalog.TierDefinition, bool) {
	if cat == nil {
		return catalog.TierDefinition{}, false
	}
	def, ok := cat.Tiers[t.Key()]
	return def, ok
}
