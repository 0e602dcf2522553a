package augment

import (
	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/priority"
	"rai-review-backend/internal/resources"
)

// Section names as they appear in the document and in Sources.
const (
	SectionRiskScores      = "risk_scores"
	SectionArchitecture    = "reference_architecture"
	SectionQuickStart      = "quick_start_guide"
	SectionRecommendations = "recommendations_by_pillar"
	SectionNextSteps       = "next_steps"

	// SectionEUAIAct is present only when the depth template asks for it.
	SectionEUAIAct = "eu_ai_act_classification"
)

// Sections lists the required sections in document order.
var Sections = []string{SectionRiskScores, SectionArchitecture, SectionQuickStart, SectionRecommendations, SectionNextSteps}

// Source records where a section or item came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceMerged    Source = "merged"
	SourceScenario  Source = "scenario"
	SourceFallback  Source = "fallback"
)

// Document is the final review returned to callers. Every section in
// Sections is present and non-empty.
type Document struct {
	ReviewID                string                           `json:"review_id,omitempty"`
	ProjectName             string                           `json:"project_name"`
	ReviewMode              string                           `json:"review_mode"`
	CatalogVersion          string                           `json:"catalog_version"`
	RiskScores              RiskScores                       `json:"risk_scores"`
	EUAIActClassification   *EUAIActClassification           `json:"eu_ai_act_classification,omitempty"`
	ReferenceArchitecture   ReferenceArchitecture            `json:"reference_architecture"`
	QuickStartGuide         QuickStartGuide                  `json:"quick_start_guide"`
	RecommendationsByPillar map[string][]Recommendation      `json:"recommendations_by_pillar"`
	NextSteps               []string                         `json:"next_steps"`
	TierSummary             priority.Summary                 `json:"tier_summary"`
	InputAssessment         InputAssessment                  `json:"input_assessment"`
	MatchedScenario         *ScenarioRef                     `json:"matched_scenario,omitempty"`
	ToolVersions            map[string]resources.ToolVersion `json:"tool_versions,omitempty"`
	Generation              GenerationInfo                   `json:"generation"`
	Sources                 map[string]Source                `json:"sources"`
}

type RiskScores struct {
	OverallScore          generation.Number            `json:"overall_score"`
	RiskLevel             string                       `json:"risk_level"`
	PrincipleScores       map[string]generation.Number `json:"principle_scores"`
	ScoreExplanation      string                       `json:"score_explanation,omitempty"`
	RiskSummary           string                       `json:"risk_summary,omitempty"`
	DriversPositive       []string                     `json:"drivers_positive,omitempty"`
	DriversNegative       []string                     `json:"drivers_negative,omitempty"`
	QualitativeAssessment map[string]string            `json:"qualitative_assessment,omitempty"`
}

type EUAIActClassification struct {
	RiskCategory             string   `json:"risk_category"`
	CategoryRationale        string   `json:"category_rationale"`
	AnnexReference           string   `json:"annex_reference,omitempty"`
	ComplianceRequirements   []string `json:"compliance_requirements"`
	EstimatedComplianceLevel string   `json:"estimated_compliance_level,omitempty"`
	ComplianceGaps           []string `json:"compliance_gaps,omitempty"`
	ApplicableRegulations    []string `json:"applicable_regulations,omitempty"`
	IndustryPriorityTools    []string `json:"industry_priority_tools,omitempty"`
	Reference                string   `json:"reference,omitempty"`
}

type ReferenceArchitecture struct {
	RecommendedPattern   string                        `json:"recommended_pattern"`
	Patterns             []string                      `json:"patterns,omitempty"`
	ArchitectureDiagram  string                        `json:"architecture_diagram,omitempty"`
	AzureServices        []generation.Service          `json:"azure_services"`
	GitHubRepos          []generation.RepoLink         `json:"github_repos"`
	Documentation        []catalog.Link                `json:"documentation,omitempty"`
	QuickStartCommands   []resources.QuickStartCommand `json:"quick_start_commands,omitempty"`
	EstimatedMonthlyCost string                        `json:"estimated_monthly_cost,omitempty"`
	DeploymentComplexity string                        `json:"deployment_complexity,omitempty"`
	Freshness            string                        `json:"freshness,omitempty"`
}

type QuickStartGuide struct {
	DetectedProjectType string                            `json:"detected_project_type"`
	WeekOneChecklist    []generation.ChecklistItem        `json:"week_one_checklist"`
	EssentialTools      []Tool                            `json:"essential_tools"`
	ThirtyDayRoadmap    map[string]generation.RoadmapWeek `json:"thirty_day_roadmap"`
	QuickReference      *generation.QuickReference        `json:"quick_reference,omitempty"`
	CodeSnippets        []generation.CodeSnippet          `json:"code_snippets,omitempty"`
}

// Tool is an essential tool with its resolved priority tier. Priority holds
// the generated wording when there is one and the tier key otherwise.
type Tool struct {
	Name           string        `json:"name"`
	URL            string        `json:"url,omitempty"`
	InstallCommand string        `json:"install_command,omitempty"`
	Purpose        string        `json:"purpose,omitempty"`
	Cost           string        `json:"cost,omitempty"`
	Priority       string        `json:"priority"`
	Tier           priority.Tier `json:"priority_tier"`
	PriorityLabel  string        `json:"priority_label"`
	Source         Source        `json:"source"`
}

// ToolLink names the tool a recommendation relies on.
type ToolLink struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Recommendation struct {
	ID                  string        `json:"id,omitempty"`
	Pillar              string        `json:"pillar"`
	Title               string        `json:"title"`
	RiskType            string        `json:"risk_type,omitempty"`
	Issue               string        `json:"issue,omitempty"`
	WhyNeeded           string        `json:"why_needed,omitempty"`
	WhatHappensWithout  string        `json:"what_happens_without,omitempty"`
	Recommendation      string        `json:"recommendation,omitempty"`
	Priority            string        `json:"priority"`
	Tier                priority.Tier `json:"priority_tier"`
	PriorityLabel       string        `json:"priority_label"`
	Tool                *ToolLink     `json:"tool,omitempty"`
	ImplementationSteps []string      `json:"implementation_steps,omitempty"`
	ProjectContext      string        `json:"project_context,omitempty"`
	Source              Source        `json:"source"`
}

// InputAssessment echoes how complete the submitted profile was.
type InputAssessment struct {
	assessment.Assessment
	ReviewMode        string `json:"review_mode"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	EnablementMessage string `json:"enablement_message"`
}

type ScenarioRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	RiskProfile string `json:"risk_profile,omitempty"`
}

// GenerationInfo reports the provider call outcome for the review.
type GenerationInfo struct {
	Provider string `json:"provider"`
	Outcome  string `json:"outcome"`
}

// PillarOrder lists the pillars of recs in display order.
func PillarOrder(recs map[string][]Recommendation) []string {
	return pillarOrder(recs)
}
