package catalog

import "strings"

// Characteristic flag names used by detection keyword sets and recommendation templates.
const (
	FlagLLM            = "is_llm"
	FlagAgent          = "is_agent"
	FlagML             = "is_ml"
	FlagVision         = "is_vision"
	FlagDocument       = "is_document"
	FlagPII            = "handles_pii"
	FlagHighRisk       = "is_high_risk"
	FlagCustomerFacing = "is_customer_facing"
)

// Pillars lists the six responsible AI principles in display order.
var Pillars = []string{
	"fairness",
	"reliability_safety",
	"privacy_security",
	"inclusiveness",
	"transparency",
	"accountability",
}

var pillarAliases = map[string]string{
	"fairness":               "fairness",
	"reliability":            "reliability_safety",
	"safety":                 "reliability_safety",
	"reliability & safety":   "reliability_safety",
	"reliability and safety": "reliability_safety",
	"privacy":                "privacy_security",
	"security":               "privacy_security",
	"privacy & security":     "privacy_security",
	"privacy and security":   "privacy_security",
	"inclusiveness":          "inclusiveness",
	"inclusion":              "inclusiveness",
	"transparency":           "transparency",
	"accountability":         "accountability",
}

// PillarKey maps a pillar key or display name to its key.
func PillarKey(name string) (string, bool) {
	n := normalizeName(name)
	for _, p := range Pillars {
		if n == p {
			return p, true
		}
	}
	key, ok := pillarAliases[n]
	return key, ok
}

// PillarTitle returns the display name of a pillar key.
func PillarTitle(key string) string {
	switch key {
	case "reliability_safety":
		return "Reliability & Safety"
	case "privacy_security":
		return "Privacy & Security"
	case "":
		return ""
	default:
		return strings.ToUpper(key[:1]) + key[1:]
	}
}

// Catalog is the read-only knowledge base shared by every pipeline stage.
// A published Catalog must never be mutated; reloads build a new value.
type Catalog struct {
	Version         string                    `yaml:"version" json:"version"`
	Scenarios       []Scenario                `yaml:"scenarios" json:"scenarios"`
	TypeHints       map[string]string         `yaml:"type_hints" json:"type_hints"`
	Tools           []Tool                    `yaml:"tools" json:"tools"`
	RiskPriorities  map[string]string         `yaml:"risk_priorities" json:"risk_priorities"`
	FallbackTools   FallbackTools             `yaml:"fallback_tools" json:"fallback_tools"`
	Recommendations []RecommendationTemplate  `yaml:"recommendations" json:"recommendations"`
	Architectures   []ArchitecturePattern     `yaml:"architectures" json:"architectures"`
	ToolRepos       []RepoRef                 `yaml:"tool_repos" json:"tool_repos"`
	ComplianceLinks map[string][]Link         `yaml:"compliance_links" json:"compliance_links"`
	Phases          []Phase                   `yaml:"phases" json:"phases"`
	Tiers           map[string]TierDefinition `yaml:"tiers" json:"tiers"`
	Detection       map[string][]string       `yaml:"detection" json:"detection"`

	RegulatoryFrameworks map[string]RegulatoryFramework `yaml:"regulatory_frameworks" json:"regulatory_frameworks"`
	IndustryRequirements []IndustryRequirement          `yaml:"industry_requirements" json:"industry_requirements"`

	toolIndex     map[string]int
	scenarioIndex map[string]int
}

// Scenario is a curated project archetype.
type Scenario struct {
	ID                  string    `yaml:"id" json:"id"`
	Title               string    `yaml:"title" json:"title"`
	Description         string    `yaml:"description" json:"description"`
	RiskProfile         string    `yaml:"risk_profile" json:"risk_profile"`
	Industries          []string  `yaml:"industries" json:"industries"`
	KeywordHints        []string  `yaml:"keyword_hints" json:"keyword_hints"`
	RequiredTools       []ToolRef `yaml:"required_tools" json:"required_tools"`
	RecommendedTools    []ToolRef `yaml:"recommended_tools" json:"recommended_tools"`
	ImplementationSteps []string  `yaml:"implementation_steps" json:"implementation_steps"`
	CommonPitfalls      []string  `yaml:"common_pitfalls" json:"common_pitfalls"`
}

// ToolRef points at a catalog tool with a scenario-specific purpose.
type ToolRef struct {
	Name    string `yaml:"name" json:"name"`
	Purpose string `yaml:"purpose" json:"purpose"`
}

type Tool struct {
	Name        string   `yaml:"name" json:"name"`
	URL         string   `yaml:"url" json:"url"`
	Description string   `yaml:"description" json:"description"`
	Install     string   `yaml:"install,omitempty" json:"install,omitempty"`
	Pillar      string   `yaml:"pillar" json:"pillar"`
	Cost        string   `yaml:"cost" json:"cost"`
	Risks       []string `yaml:"risks" json:"risks"`
}

// FallbackTools groups the tools injected when generation omits them, by characteristic.
type FallbackTools struct {
	Core     []string `yaml:"core" json:"core"`
	LLM      []string `yaml:"llm" json:"llm"`
	Agent    []string `yaml:"agent" json:"agent"`
	PII      []string `yaml:"pii" json:"pii"`
	HighRisk []string `yaml:"high_risk" json:"high_risk"`
}

// RecommendationTemplate is a pillar recommendation used by the deterministic fallback.
// An empty AppliesTo matches every project.
type RecommendationTemplate struct {
	Pillar              string   `yaml:"pillar" json:"pillar"`
	RiskType            string   `yaml:"risk_type" json:"risk_type"`
	Title               string   `yaml:"title" json:"title"`
	WhyNeeded           string   `yaml:"why_needed" json:"why_needed"`
	WhatHappensWithout  string   `yaml:"what_happens_without" json:"what_happens_without"`
	Tool                string   `yaml:"tool" json:"tool"`
	AppliesTo           []string `yaml:"applies_to" json:"applies_to"`
	ImplementationSteps []string `yaml:"implementation_steps" json:"implementation_steps"`
}

type ArchitecturePattern struct {
	Key          string         `yaml:"key" json:"key"`
	PrimaryTypes []string       `yaml:"primary_types" json:"primary_types"`
	Keywords     []string       `yaml:"keywords" json:"keywords"`
	Patterns     []string       `yaml:"patterns" json:"patterns"`
	Repos        []RepoRef      `yaml:"repos" json:"repos"`
	Docs         []Link         `yaml:"docs" json:"docs"`
	Services     []ServiceUsage `yaml:"services" json:"services"`
	Complexity   string         `yaml:"complexity" json:"complexity"`
}

type RepoRef struct {
	Owner string `yaml:"owner" json:"owner"`
	Repo  string `yaml:"repo" json:"repo"`
}

// FullName returns owner/repo.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

type Link struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

type ServiceUsage struct {
	Service string `yaml:"service" json:"service"`
	Purpose string `yaml:"purpose" json:"purpose"`
}

type Phase struct {
	Phase     int      `yaml:"phase" json:"phase"`
	Name      string   `yaml:"name" json:"name"`
	Duration  string   `yaml:"duration" json:"duration"`
	Focus     string   `yaml:"focus" json:"focus"`
	Actions   []string `yaml:"actions" json:"actions"`
	Milestone string   `yaml:"milestone" json:"milestone"`
}

type TierDefinition struct {
	Label            string `yaml:"label" json:"label"`
	ShortLabel       string `yaml:"short_label" json:"short_label"`
	Description      string `yaml:"description" json:"description"`
	TimelineGuidance string `yaml:"timeline_guidance" json:"timeline_guidance"`
	RiskIfSkipped    string `yaml:"risk_if_skipped" json:"risk_if_skipped"`
}

// FrameworkEUAIAct is the regulatory_frameworks key of the EU AI Act.
const FrameworkEUAIAct = "eu_ai_act"

// RegulatoryFramework is a regulation with risk categories ordered from most
// to least severe. The last category is the default.
type RegulatoryFramework struct {
	Name           string         `yaml:"name" json:"name"`
	URL            string         `yaml:"url" json:"url"`
	RiskCategories []RiskCategory `yaml:"risk_categories" json:"risk_categories"`
}

// RiskCategory places a project when its free text contains one of Keywords
// or it has one of the characteristic Flags.
type RiskCategory struct {
	Key            string   `yaml:"key" json:"key"`
	Level          string   `yaml:"level" json:"level"`
	Description    string   `yaml:"description" json:"description"`
	AnnexReference string   `yaml:"annex_reference,omitempty" json:"annex_reference,omitempty"`
	Keywords       []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Flags          []string `yaml:"flags,omitempty" json:"flags,omitempty"`
	Obligations    []string `yaml:"obligations" json:"obligations"`
}

// IndustryRequirement lists the regulations and priority tools of an industry.
type IndustryRequirement struct {
	Industry               string   `yaml:"industry" json:"industry"`
	Aliases                []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	RegulatoryRequirements []string `yaml:"regulatory_requirements" json:"regulatory_requirements"`
	PriorityTools          []string `yaml:"priority_tools" json:"priority_tools"`
}

// Framework returns the regulatory framework with the given key.
func (c *Catalog) Framework(key string) (RegulatoryFramework, bool) {
	f, ok := c.RegulatoryFrameworks[key]
	return f, ok
}

// Industry finds the requirements whose industry or alias occurs in the
// given industry text, case-insensitively.
func (c *Catalog) Industry(industry string) (IndustryRequirement, bool) {
	n := normalizeName(industry)
	if n == "" {
		return IndustryRequirement{}, false
	}
	for _, r := range c.IndustryRequirements {
		for _, name := range append([]string{r.Industry}, r.Aliases...) {
			if name = normalizeName(name); name != "" && strings.Contains(n, name) {
				return r, true
			}
		}
	}
	return IndustryRequirement{}, false
}

// Tool looks up a tool by name, case-insensitively.
func (c *Catalog) Tool(name string) (Tool, bool) {
	idx, ok := c.toolIndex[normalizeName(name)]
	if !ok {
		return Tool{}, false
	}
	return c.Tools[idx], true
}

// Scenario looks up a scenario by id.
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	idx, ok := c.scenarioIndex[id]
	if !ok {
		return Scenario{}, false
	}
	return c.Scenarios[idx], true
}

// DetectionKeywords returns the keyword list for a characteristic flag.
func (c *Catalog) DetectionKeywords(flag string) []string {
	return c.Detection[flag]
}

// Architecture returns the pattern with the given key.
func (c *Catalog) Architecture(key string) (ArchitecturePattern, bool) {
	for _, a := range c.Architectures {
		if a.Key == key {
			return a, true
		}
	}
	return ArchitecturePattern{}, false
}

// ToolsForRisk returns the tools that address riskType in catalog order.
func (c *Catalog) ToolsForRisk(riskType string) []Tool {
	var out []Tool
	for _, t := range c.Tools {
		for _, r := range t.Risks {
			if r == riskType {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// ScenarioIDs returns scenario ids in catalog order.
func (c *Catalog) ScenarioIDs() []string {
	ids := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		ids = append(ids, s.ID)
	}
	return ids
}

func (c *Catalog) buildIndexes() {
	c.toolIndex = make(map[string]int, len(c.Tools))
	for i, t := range c.Tools {
		c.toolIndex[normalizeName(t.Name)] = i
	}
	c.scenarioIndex = make(map[string]int, len(c.Scenarios))
	for i, s := range c.Scenarios {
		c.scenarioIndex[s.ID] = i
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
