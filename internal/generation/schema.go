package generation

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Generated is the subset of a provider response the pipeline understands.
// Pointer and nil-able fields distinguish an absent section from an empty one.
// Unknown fields are ignored.
type Generated struct {
	ReviewMode              string                      `json:"review_mode,omitempty"`
	RiskScores              *RiskScores                 `json:"risk_scores,omitempty"`
	EUAIActClassification   *EUAIActClassification      `json:"eu_ai_act_classification,omitempty"`
	ReferenceArchitecture   *ReferenceArchitecture      `json:"reference_architecture,omitempty"`
	QuickStartGuide         *QuickStartGuide            `json:"quick_start_guide,omitempty"`
	RecommendationsByPillar map[string][]Recommendation `json:"recommendations_by_pillar,omitempty"`
	Recommendations         []Recommendation            `json:"recommendations,omitempty"`
	NextSteps               []string                    `json:"next_steps,omitempty"`
}

type RiskScores struct {
	OverallScore     *Number           `json:"overall_score,omitempty"`
	RiskLevel        string            `json:"risk_level,omitempty"`
	PrincipleScores  map[string]Number `json:"principle_scores,omitempty"`
	ScoreExplanation string            `json:"score_explanation,omitempty"`
}

type EUAIActClassification struct {
	RiskCategory             string   `json:"risk_category,omitempty"`
	CategoryRationale        string   `json:"category_rationale,omitempty"`
	AnnexReference           string   `json:"annex_reference,omitempty"`
	ComplianceRequirements   []string `json:"compliance_requirements,omitempty"`
	EstimatedComplianceLevel string   `json:"estimated_compliance_level,omitempty"`
	ComplianceGaps           []string `json:"compliance_gaps,omitempty"`
}

type ReferenceArchitecture struct {
	RecommendedPattern   string     `json:"recommended_pattern,omitempty"`
	ArchitectureDiagram  string     `json:"architecture_diagram,omitempty"`
	AzureServices        []Service  `json:"azure_services,omitempty"`
	GitHubRepos          []RepoLink `json:"github_repos,omitempty"`
	EstimatedMonthlyCost string     `json:"estimated_monthly_cost,omitempty"`
	DeploymentComplexity string     `json:"deployment_complexity,omitempty"`
}

type Service struct {
	Service string `json:"service"`
	Purpose string `json:"purpose,omitempty"`
	Tier    string `json:"tier,omitempty"`
}

type RepoLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars,omitempty"`
}

type QuickStartGuide struct {
	DetectedProjectType string                 `json:"detected_project_type,omitempty"`
	WeekOneChecklist    []ChecklistItem        `json:"week_one_checklist,omitempty"`
	EssentialTools      []Tool                 `json:"essential_tools,omitempty"`
	ThirtyDayRoadmap    map[string]RoadmapWeek `json:"thirty_day_roadmap,omitempty"`
	QuickReference      *QuickReference        `json:"quick_reference,omitempty"`
	CodeSnippets        []CodeSnippet          `json:"code_snippets,omitempty"`
}

type ChecklistItem struct {
	Task         string `json:"task"`
	ResourceURL  string `json:"resource_url,omitempty"`
	Priority     string `json:"priority,omitempty"`
	TimeEstimate string `json:"time_estimate,omitempty"`
}

// Tool accepts either an object or a bare tool name.
type Tool struct {
	Name           string `json:"name"`
	URL            string `json:"url,omitempty"`
	InstallCommand string `json:"install_command,omitempty"`
	Purpose        string `json:"purpose,omitempty"`
	Cost           string `json:"cost,omitempty"`
	Priority       string `json:"priority,omitempty"`
}

func (t *Tool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*t = Tool{Name: name}
		return nil
	}
	type plain Tool
	var p plain
	if err := json.Unmarshal(data, new(map[string]json.RawMessage)); err != nil {
		return err
	}
	decodeLenient(data, reflect.ValueOf(&p).Elem(), "tool")
	*t = Tool(p)
	if t.InstallCommand == "" {
		var alias struct {
			Install string `json:"install"`
		}
		if json.Unmarshal(data, &alias) == nil {
			t.InstallCommand = alias.Install
		}
	}
	return nil
}

type RoadmapWeek struct {
	Focus     string   `json:"focus"`
	Actions   []string `json:"actions"`
	Milestone string   `json:"milestone,omitempty"`
}

type QuickReference struct {
	Top3Tools             []string `json:"top_3_tools,omitempty"`
	KeyMetrics            []string `json:"key_metrics,omitempty"`
	RedFlags              []string `json:"red_flags,omitempty"`
	StakeholdersToInvolve []string `json:"stakeholders_to_involve,omitempty"`
}

type CodeSnippet struct {
	Tool        string `json:"tool"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Code        string `json:"code"`
}

type Recommendation struct {
	ID                  string   `json:"id,omitempty"`
	Principle           string   `json:"principle,omitempty"`
	Priority            string   `json:"priority,omitempty"`
	Title               string   `json:"title"`
	RiskType            string   `json:"risk_type,omitempty"`
	Issue               string   `json:"issue,omitempty"`
	WhyNeeded           string   `json:"why_needed,omitempty"`
	WhatHappensWithout  string   `json:"what_happens_without,omitempty"`
	Recommendation      string   `json:"recommendation,omitempty"`
	ImplementationSteps []string `json:"implementation_steps,omitempty"`
	Tools               []Tool   `json:"tools,omitempty"`
}

// Number decodes a JSON number or a numeric string such as "72" or "72%".
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Int rounds n to the nearest integer.
func (n Number) Int() int {
	return int(math.Round(float64(n)))
}
