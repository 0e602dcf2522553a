package generation

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/profile"
)

var (
	//go:embed prompts/system.txt
	promptSystem string
	//go:embed prompts/response_format.txt
	promptResponseFormat string
	//go:embed prompts/type_llm.txt
	promptTypeLLM string
	//go:embed prompts/type_agent.txt
	promptTypeAgent string
	//go:embed prompts/type_pii.txt
	promptTypePII string
	//go:embed prompts/type_high_risk.txt
	promptTypeHighRisk string
	//go:embed prompts/eu_ai_act.txt
	promptEUAIAct string
)

var depthInstructions = map[assessment.Depth]string{
	assessment.DepthMinimal: "## Response depth: quick guidance\nThe caller gave little context. Give your best assessment of the project type " +
		"and key risks, 3-5 essential recommendations (CRITICAL_BLOCKER and HIGHLY_RECOMMENDED only), a simple " +
		"reference architecture, 3 essential tools, and say what extra information would improve the review.",
	assessment.DepthBasic: "## Response depth: quick scan\nGive an overall risk score, a reference architecture with Azure services, " +
		"5-8 prioritized recommendations, a 30-day roadmap and essential tools with code examples.",
	assessment.DepthStandard: "## Response depth: standard review\nGive per-principle risk scores, a reference architecture with cost " +
		"estimates, 10-12 prioritized recommendations with implementation details, code examples for key tools, " +
		"an implementation timeline and clear next steps.",
	assessment.DepthComprehensive: "## Response depth: deep dive\nGive an exhaustive analysis: detailed risk explanations, a custom " +
		"architecture, every relevant recommendation with implementation details, a phased rollout plan, budget " +
		"estimates, success metrics and a long-term monitoring plan.",
}

var detailFields = []struct {
	label string
	field string
}{
	{"Intended Purpose", profile.FieldIntendedPurpose},
	{"Sensitive Data", profile.FieldSensitiveData},
	{"AI Models", profile.FieldAIModels},
	{"Model Type", profile.FieldModelType},
	{"Human-in-Loop", profile.FieldHumanInLoop},
	{"Potential Risks", profile.FieldPotentialRisks},
	{"AI Capabilities", profile.FieldAICapabilities},
}

// PromptInput is everything the prompt builder reads. Catalog may be nil.
type PromptInput struct {
	Catalog         *catalog.Catalog
	Profile         profile.Profile
	Assessment      assessment.Assessment
	Characteristics assessment.Characteristics
	Template        assessment.Template
	Scenario        *catalog.Scenario
}

// BuildPrompt assembles the system and user prompts for one review.
func BuildPrompt(in PromptInput) Prompt {
	return Prompt{System: buildSystem(in), User: buildUser(in)}
}

func buildSystem(in PromptInput) string {
	parts := []string{strings.TrimSpace(promptSystem), depthInstructions[in.Assessment.Depth]}
	ch := in.Characteristics
	if ch.IsLLM {
		parts = append(parts, strings.TrimSpace(promptTypeLLM))
	}
	if ch.IsAgent {
		parts = append(parts, strings.TrimSpace(promptTypeAgent))
	}
	if ch.HandlesPII {
		parts = append(parts, strings.TrimSpace(promptTypePII))
	}
	if ch.IsHighRisk {
		parts = append(parts, strings.TrimSpace(promptTypeHighRisk))
	}
	if sc := in.Scenario; sc != nil {
		parts = append(parts, scenarioContext(*sc))
	}
	if in.Template.Includes(assessment.SectionEUAIAct) {
		if ctx := regulatoryContext(in.Catalog, in.Profile.Get(profile.FieldIndustry)); ctx != "" {
			parts = append(parts, ctx)
		}
		parts = append(parts, strings.TrimSpace(promptEUAIAct))
	}

	limit := "Return as many recommendations as the project warrants."
	if !in.Template.Unlimited() {
		limit = "Return at most " + strconv.Itoa(in.Template.RecommendationLimit) + " recommendations in total."
	}
	format := strings.NewReplacer(
		"{{REVIEW_MODE}}", in.Template.Mode,
		"{{RECOMMENDATION_LIMIT}}", limit,
	).Replace(promptResponseFormat)
	parts = append(parts, strings.TrimSpace(format))
	return strings.Join(parts, "\n\n")
}

func scenarioContext(sc catalog.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Closest known scenario: %s\n%s\nRisk profile: %s\n", sc.Title, sc.Description, sc.RiskProfile)
	if len(sc.RequiredTools) > 0 {
		b.WriteString("Required tools:\n")
		for _, t := range sc.RequiredTools {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Purpose)
		}
	}
	if len(sc.CommonPitfalls) > 0 {
		b.WriteString("Common pitfalls:\n")
		for _, p := range sc.CommonPitfalls {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	return strings.TrimSpace(b.String())
}

// regulatoryContext summarizes the EU AI Act categories and the industry's
// requirements from the catalog.
func regulatoryContext(cat *catalog.Catalog, industry string) string {
	if cat == nil {
		return ""
	}
	var b strings.Builder
	if f, ok := cat.Framework(catalog.FrameworkEUAIAct); ok {
		fmt.Fprintf(&b, "## %s quick reference\n", f.Name)
		for _, rc := range f.RiskCategories {
			fmt.Fprintf(&b, "- %s: %s\n", rc.Level, rc.Description)
		}
	}
	if req, ok := cat.Industry(industry); ok {
		fmt.Fprintf(&b, "\n## Industry requirements: %s\n", req.Industry)
		fmt.Fprintf(&b, "Regulatory: %s\n", strings.Join(req.RegulatoryRequirements, ", "))
		fmt.Fprintf(&b, "Priority tools: %s\n", strings.Join(req.PriorityTools, ", "))
	}
	return strings.TrimSpace(b.String())
}

func buildUser(in PromptInput) string {
	p := in.Profile
	value := func(field, def string) string {
		if v := p.Get(field); v != "" {
			return v
		}
		return def
	}

	var b strings.Builder
	b.WriteString("# Responsible AI Review Request\n\n## Project Information\n")
	fmt.Fprintf(&b, "- Project Name: %s\n", value(profile.FieldProjectName, "Not provided"))
	fmt.Fprintf(&b, "- Description: %s\n", value(profile.FieldProjectDescription, "Not provided"))
	fmt.Fprintf(&b, "- Deployment Stage: %s\n", value(profile.FieldDeploymentStage, "Not specified"))

	depth := in.Assessment.Depth
	if depth >= assessment.DepthStandard {
		fmt.Fprintf(&b, "- Technology Type: %s\n", value(profile.FieldTechnologyType, "Not specified"))
		fmt.Fprintf(&b, "- Industry: %s\n", value(profile.FieldIndustry, "Not specified"))
		fmt.Fprintf(&b, "- Target Users: %s\n", value(profile.FieldTargetUsers, "Not specified"))
		fmt.Fprintf(&b, "- Data Types: %s\n", value(profile.FieldDataTypes, "Not specified"))
	}
	if depth == assessment.DepthComprehensive {
		b.WriteString("\n### Detailed Context\n")
		for _, d := range detailFields {
			if v := p.Get(d.field); v != "" {
				fmt.Fprintf(&b, "- %s: %s\n", d.label, v)
			}
		}
	}

	b.WriteString("\n---\nResponse configuration:\n")
	fmt.Fprintf(&b, "- Review mode: %s\n", in.Template.Mode)
	fmt.Fprintf(&b, "- Detected project type: %s\n", in.Characteristics.PrimaryType)
	fmt.Fprintf(&b, "- Completeness score: %d%%\n", in.Assessment.CompletenessScore)
	fmt.Fprintf(&b, "- Response depth: %s\n", depth)
	b.WriteString("\nProvide the response as JSON following the structure above.\n")
	return b.String()
}
