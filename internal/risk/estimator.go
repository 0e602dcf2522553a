package risk

import (
	"strings"

	"rai-review-backend/internal/profile"
)

// Risk levels.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

const (
	baseline        = 55
	maxOverall      = 95
	highThreshold   = 85
	mediumThreshold = 70
)

// Score is a deterministic risk estimate.
type Score struct {
	Overall               int               `json:"overall_score"`
	Level                 string            `json:"risk_level"`
	Summary               string            `json:"risk_summary"`
	PrincipleScores       map[string]int    `json:"principle_scores"`
	DriversPositive       []string          `json:"drivers_positive"`
	DriversNegative       []string          `json:"drivers_negative"`
	QualitativeAssessment map[string]string `json:"qualitative_assessment"`
}

type bump struct {
	amount   int
	reason   string
	keywords []string
}

var (
	productionStages = map[string]bool{"production": true, "ga": true, "live": true}
	earlyStages      = map[string]bool{"idea": true, "prototype": true, "poc": true, "proof of concept": true, "research": true, "development": true}

	keywordBumps = []bump{
		{12, "Health-related use case", []string{"health", "medical", "patient"}},
		{10, "Financial decisioning or data", []string{"financial", "bank", "payment", "loan"}},
		{8, "Impacts children or minors", []string{"children", "minor", "student"}},
		{10, "Biometric data involved", []string{"biometric", "facial", "face", "voiceprint"}},
	}

	highRiskCapabilities = map[string]bool{
		"personal_data":      true,
		"decisions":          true,
		"facial_recognition": true,
		"health_data":        true,
		"financial":          true,
	}

	// capabilityHints infer capability tags from free text when the caller
	// did not list them explicitly. Order is fixed for deterministic output.
	capabilityHints = []struct {
		tag      string
		keywords []string
	}{
		{"health_data", []string{"patient", "diagnosis", "medical record", "health record", "clinical"}},
		{"personal_data", []string{"personal data", "pii", "customer data"}},
		{"financial", []string{"credit score", "transaction history", "loan application"}},
		{"decisions", []string{"automated decision", "eligibility", "approve or deny", "hiring decision"}},
		{"facial_recognition", []string{"facial recognition", "face recognition", "face matching"}},
	}
)

const (
	earlyStageCredit = -5
	productionBump   = 10
	capabilityBump   = 12
)

// Estimate scores p without consulting the catalog, the network or any cache.
func Estimate(p profile.Profile) Score {
	overall := baseline
	positive := []string{}
	negative := []string{}
	add := func(amount int, reason string) {
		overall += amount
		if amount < 0 {
			positive = append(positive, reason)
			return
		}
		negative = append(negative, reason)
	}

	stage := p.Stage()
	switch {
	case productionStages[stage]:
		add(productionBump, "Production deployment increases risk")
	case earlyStages[stage]:
		add(earlyStageCredit, "Early stage leaves room to add controls before launch")
	}

	text := p.FreeText()
	for _, b := range keywordBumps {
		if kw, ok := profile.FirstMatch(text, b.keywords); ok {
			add(b.amount, b.reason+" ("+kw+")")
		}
	}

	if caps := Capabilities(p); len(caps) > 0 {
		for _, c := range caps {
			if highRiskCapabilities[c] {
				add(capabilityBump, "High-risk AI capability: "+c)
				break
			}
		}
	}

	overall = clamp(overall, 0, maxOverall)
	return Score{
		Overall:               overall,
		Level:                 LevelFor(overall),
		Summary:               "Preliminary risk estimate based on limited input; provide more details for a refined score.",
		PrincipleScores:       principleScores(overall, len(negative) > 0),
		DriversPositive:       positive,
		DriversNegative:       negative,
		QualitativeAssessment: qualitative(),
	}
}

// Capabilities returns the explicit ai_capabilities tags followed by tags
// inferred from free text, without duplicates.
func Capabilities(p profile.Profile) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range strings.Split(p.Get(profile.FieldAICapabilities), ",") {
		tag := strings.ToLower(strings.TrimSpace(raw))
		tag = strings.ReplaceAll(tag, " ", "_")
		if tag != "" && !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	text := p.FreeText()
	for _, h := range capabilityHints {
		if !seen[h.tag] && profile.ContainsAny(text, h.keywords) {
			seen[h.tag] = true
			out = append(out, h.tag)
		}
	}
	return out
}

// LevelFor maps an overall score to a risk level.
func LevelFor(overall int) string {
	switch {
	case overall >= highThreshold:
		return LevelHigh
	case overall >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func principleScores(overall int, hasNegative bool) map[string]int {
	base := clamp(overall, 50, 90)
	privacy := base
	if hasNegative {
		privacy = min(95, base+5)
	}
	return map[string]int{
		"reliability_safety": clamp(base, 0, 100),
		"privacy_security":   clamp(privacy, 0, 100),
		"fairness":           clamp(base, 0, 100),
		"transparency":       clamp(base-2, 0, 100),
		"inclusiveness":      clamp(base-3, 0, 100),
		"accountability":     clamp(base-1, 0, 100),
	}
}

func qualitative() map[string]string {
	return map[string]string{
		"governance":   "Add ownership, escalation, and change control to improve accountability.",
		"safety":       "Validate safety filters, abuse monitoring, and rate limits.",
		"privacy":      "Confirm data minimization, retention limits, and PII handling.",
		"fairness":     "Check for biased training data and add evaluation slices.",
		"transparency": "Document intended use, limitations, and user messaging.",
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
