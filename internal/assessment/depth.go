package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Depth is the response detail level. Values are ordered.
type Depth int

const (
	DepthMinimal Depth = iota
	DepthBasic
	DepthStandard
	DepthComprehensive
)

// depthThresholds is indexed by Depth and strictly increasing.
var depthThresholds = [...]int{
	DepthMinimal:       0,
	DepthBasic:         25,
	DepthStandard:      50,
	DepthComprehensive: 75,
}

// SelectDepth scans from the highest threshold down, so a score exactly on a
// boundary belongs to the higher tier.
func SelectDepth(score int) Depth {
	for d := DepthComprehensive; d > DepthMinimal; d-- {
		if score >= depthThresholds[d] {
			return d
		}
	}
	return DepthMinimal
}

// Threshold returns the minimum completeness score for d.
func (d Depth) Threshold() int {
	if d < DepthMinimal || d > DepthComprehensive {
		return 0
	}
	return depthThresholds[d]
}

func (d Depth) String() string {
	switch d {
	case DepthMinimal:
		return "minimal"
	case DepthBasic:
		return "basic"
	case DepthStandard:
		return "standard"
	case DepthComprehensive:
		return "comprehensive"
	default:
		return fmt.Sprintf("depth(%d)", int(d))
	}
}

// ParseDepth accepts the lower-case names produced by String.
func ParseDepth(raw string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "minimal":
		return DepthMinimal, nil
	case "basic":
		return DepthBasic, nil
	case "standard":
		return DepthStandard, nil
	case "comprehensive":
		return DepthComprehensive, nil
	default:
		return DepthMinimal, fmt.Errorf("unknown depth %q", raw)
	}
}

func (d Depth) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Depth) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDepth(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Template shapes the document produced at a given depth.
type Template struct {
	Mode                 string   `json:"review_mode"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Sections             []string `json:"sections_to_include"`
	RecommendationLimit  int      `json:"recommendation_limit"`
	IncludeCodeSnippets  bool     `json:"include_code_snippets"`
	IncludeCostEstimates bool     `json:"include_cost_estimates"`
}

// SectionEUAIAct is the template section that asks for an EU AI Act classification.
const SectionEUAIAct = "eu_ai_act"

// Includes reports whether the template asks for section. "all" includes every section.
func (t Template) Includes(section string) bool {
	for _, s := range t.Sections {
		if s == section || s == "all" {
			return true
		}
	}
	return false
}

// Unlimited reports whether the template places no cap on recommendations.
func (t Template) Unlimited() bool {
	return t.RecommendationLimit <= 0
}

var templates = map[Depth]Template{
	DepthMinimal: {
		Mode:                "quick_guidance",
		Title:               "Quick Guidance",
		Description:         "Based on the limited information provided, here's quick guidance to get started.",
		Sections:            []string{"quick_start", "reference_architecture", "essential_tools", "next_steps"},
		RecommendationLimit: 5,
	},
	DepthBasic: {
		Mode:                "quick_scan",
		Title:               "Quick Scan Review",
		Description:         "Reference architectures and starter guidance based on your project context.",
		Sections:            []string{"risk_overview", "reference_architecture", "starter_tools", "30_day_roadmap", "next_steps"},
		RecommendationLimit: 8,
		IncludeCodeSnippets: true,
	},
	DepthStandard: {
		Mode:                 "standard_review",
		Title:                "Standard Review",
		Description:          "Analysis across all responsible AI principles with specific tool recommendations.",
		Sections:             []string{"risk_scores", SectionEUAIAct, "principle_analysis", "tools", "implementation_timeline", "next_steps"},
		RecommendationLimit:  12,
		IncludeCodeSnippets:  true,
		IncludeCostEstimates: true,
	},
	DepthComprehensive: {
		Mode:                 "deep_dive",
		Title:                "Deep Dive Review",
		Description:          "Exhaustive analysis with custom implementation roadmap and detailed guidance.",
		Sections:             []string{"all"},
		IncludeCodeSnippets:  true,
		IncludeCostEstimates: true,
	},
}

// TemplateFor returns the template for d.
func TemplateFor(d Depth) Template {
	t, ok := templates[d]
	if !ok {
		return templates[DepthMinimal]
	}
	t.Sections = append([]string(nil), t.Sections...)
	return t
}
