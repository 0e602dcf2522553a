package augment

import (
	"fmt"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/profile"
)

var flagReasons = map[string]string{
	catalog.FlagHighRisk:       "The project operates in a domain listed as high-risk",
	catalog.FlagLLM:            "The system generates content with a language model",
	catalog.FlagAgent:          "The system acts autonomously on behalf of its users",
	catalog.FlagCustomerFacing: "The system interacts directly with people",
	catalog.FlagPII:            "The system processes personal data",
}

// mergeEUAIAct keeps the generated classification and fills empty fields
// from the catalog classification. Industry requirements always come from
// the catalog. It returns nil when neither source has anything.
func (b *builder) mergeEUAIAct(g *generation.EUAIActClassification) (*EUAIActClassification, Source) {
	fb, ok := b.classifyEUAIAct()
	if g == nil {
		if !ok {
			return nil, SourceFallback
		}
		return fb, SourceFallback
	}

	out := &EUAIActClassification{
		RiskCategory:             g.RiskCategory,
		CategoryRationale:        g.CategoryRationale,
		AnnexReference:           g.AnnexReference,
		ComplianceRequirements:   nonBlank(g.ComplianceRequirements),
		EstimatedComplianceLevel: g.EstimatedComplianceLevel,
		ComplianceGaps:           nonBlank(g.ComplianceGaps),
	}
	if !ok {
		return out, SourceGenerated
	}
	out.Reference = fb.Reference
	out.ApplicableRegulations = fb.ApplicableRegulations
	out.IndustryPriorityTools = fb.IndustryPriorityTools

	filled := false
	if out.RiskCategory == "" {
		filled = true
		out.RiskCategory = fb.RiskCategory
		out.CategoryRationale = fb.CategoryRationale
		out.AnnexReference = fb.AnnexReference
	}
	if out.CategoryRationale == "" {
		filled = true
		out.CategoryRationale = fb.CategoryRationale
	}
	if len(out.ComplianceRequirements) == 0 {
		filled = true
		out.ComplianceRequirements = fb.ComplianceRequirements
	}
	if filled {
		return out, SourceMerged
	}
	return out, SourceGenerated
}

// classifyEUAIAct places the project in the first catalog risk category
// whose keywords or characteristic flags match. Without a match it uses the
// last category.
func (b *builder) classifyEUAIAct() (*EUAIActClassification, bool) {
	cat := b.in.Catalog
	if cat == nil {
		return nil, false
	}
	f, ok := cat.Framework(catalog.FrameworkEUAIAct)
	if !ok || len(f.RiskCategories) == 0 {
		return nil, false
	}

	rc, reason := b.riskCategory(f.RiskCategories)
	out := &EUAIActClassification{
		RiskCategory:           rc.Level,
		CategoryRationale:      reason + ". " + rc.Description,
		AnnexReference:         rc.AnnexReference,
		ComplianceRequirements: append([]string(nil), rc.Obligations...),
		Reference:              f.URL,
	}
	if req, ok := cat.Industry(b.in.Profile.Get(profile.FieldIndustry)); ok {
		out.ApplicableRegulations = append([]string(nil), req.RegulatoryRequirements...)
		out.IndustryPriorityTools = append([]string(nil), req.PriorityTools...)
	}
	return out, true
}

func (b *builder) riskCategory(categories []catalog.RiskCategory) (catalog.RiskCategory, string) {
	text := b.in.Profile.FreeText()
	for _, rc := range categories {
		if kw, ok := profile.FirstMatch(text, rc.Keywords); ok {
			return rc, fmt.Sprintf("The project description mentions %q", kw)
		}
		for _, flag := range rc.Flags {
			if !b.in.Characteristics.Has(flag) {
				continue
			}
			if reason, ok := flagReasons[flag]; ok {
				return rc, reason
			}
			return rc, "The project has the " + flag + " characteristic"
		}
	}
	return categories[len(categories)-1], "No prohibited, high-risk or transparency triggers were found"
}
