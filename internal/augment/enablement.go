package augment

import (
	"strings"

	"rai-review-backend/internal/assessment"
)

const (
	enablementHeader    = "Enabling Responsible Innovation"
	enablementPrinciple = "Responsible AI accelerates adoption by building trust and reducing risk"
)

// enablementMessage frames the review as an enabler, with one value
// proposition per relevant characteristic.
func enablementMessage(ch assessment.Characteristics) string {
	lines := []string{enablementHeader, ""}
	if ch.IsCustomerFacing {
		lines = append(lines, "• Fair AI systems reach broader markets and build lasting customer trust")
	}
	if ch.IsLLM || ch.IsAgent {
		lines = append(lines, "• Safe AI reduces incident response costs and protects brand reputation")
	}
	if ch.HandlesPII {
		lines = append(lines, "• Privacy-first design simplifies global compliance (GDPR, CCPA, etc.)")
	}
	if ch.IsHighRisk {
		lines = append(lines, "• Explainable AI accelerates stakeholder buy-in and user adoption")
	}
	lines = append(lines, "", enablementPrinciple)
	return strings.Join(lines, "\n")
}
