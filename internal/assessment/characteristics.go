package assessment

import (
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/profile"
)

// Primary project types in detection precedence order.
const (
	TypeAgent    = "AI Agent"
	TypeLLM      = "LLM/Generative AI"
	TypeVision   = "Computer Vision"
	TypeDocument = "Document Intelligence"
	TypeML       = "Traditional ML"
	TypeGeneral  = "General AI"
)

// Characteristics are independent flags detected from profile text.
type Characteristics struct {
	IsLLM            bool   `json:"is_llm"`
	IsAgent          bool   `json:"is_agent"`
	IsML             bool   `json:"is_ml"`
	IsVision         bool   `json:"is_vision"`
	IsDocument       bool   `json:"is_document"`
	HandlesPII       bool   `json:"handles_pii"`
	IsHighRisk       bool   `json:"is_high_risk"`
	IsCustomerFacing bool   `json:"is_customer_facing"`
	PrimaryType      string `json:"primary_type"`
}

// Has reports the flag named by one of the catalog.Flag* constants.
func (c Characteristics) Has(flag string) bool {
	switch flag {
	case catalog.FlagLLM:
		return c.IsLLM
	case catalog.FlagAgent:
		return c.IsAgent
	case catalog.FlagML:
		return c.IsML
	case catalog.FlagVision:
		return c.IsVision
	case catalog.FlagDocument:
		return c.IsDocument
	case catalog.FlagPII:
		return c.HandlesPII
	case catalog.FlagHighRisk:
		return c.IsHighRisk
	case catalog.FlagCustomerFacing:
		return c.IsCustomerFacing
	default:
		return false
	}
}

// DetectCharacteristics matches catalog keyword lists against the profile's
// free text. A nil catalog detects nothing.
func DetectCharacteristics(p profile.Profile, cat *catalog.Catalog) Characteristics {
	out := Characteristics{PrimaryType: TypeGeneral}
	if cat == nil {
		return out
	}
	text := p.FreeText()
	if text == "" {
		return out
	}
	match := func(flag string) bool {
		return profile.ContainsAny(text, cat.DetectionKeywords(flag))
	}

	out.IsLLM = match(catalog.FlagLLM)
	out.IsAgent = match(catalog.FlagAgent)
	out.IsML = match(catalog.FlagML)
	out.IsVision = match(catalog.FlagVision)
	out.IsDocument = match(catalog.FlagDocument)
	out.HandlesPII = match(catalog.FlagPII)
	out.IsHighRisk = match(catalog.FlagHighRisk)
	out.IsCustomerFacing = match(catalog.FlagCustomerFacing)

	switch {
	case out.IsAgent:
		out.PrimaryType = TypeAgent
	case out.IsLLM:
		out.PrimaryType = TypeLLM
	case out.IsVision:
		out.PrimaryType = TypeVision
	case out.IsDocument:
		out.PrimaryType = TypeDocument
	case out.IsML:
		out.PrimaryType = TypeML
	}
	return out
}
