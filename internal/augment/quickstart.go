package augment

import (
	"fmt"
	"strings"

	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/priority"
)

const quickReferenceTools = 3

// mergeQuickStart keeps generated content and fills gaps. Essential tools are
// merged from the generated list, the matched scenario and the fallback sets.
func (b *builder) mergeQuickStart(g *generation.QuickStartGuide) (QuickStartGuide, Source) {
	var out QuickStartGuide
	var genTools []generation.Tool
	if g != nil {
		out = QuickStartGuide{
			DetectedProjectType: g.DetectedProjectType,
			WeekOneChecklist:    g.WeekOneChecklist,
			ThirtyDayRoadmap:    g.ThirtyDayRoadmap,
			QuickReference:      g.QuickReference,
			CodeSnippets:        g.CodeSnippets,
		}
		genTools = g.EssentialTools
	}

	filled := false
	if out.DetectedProjectType == "" {
		filled = true
		out.DetectedProjectType = b.in.Characteristics.PrimaryType
	}
	if len(out.WeekOneChecklist) == 0 {
		filled = true
		out.WeekOneChecklist = b.checklist()
	}
	var added bool
	out.EssentialTools, added = b.mergeTools(genTools)
	filled = filled || added
	if b.fillRoadmap(&out) {
		filled = true
	}
	if out.QuickReference == nil {
		filled = true
		out.QuickReference = b.quickReference(out.EssentialTools)
	}

	switch {
	case g == nil:
		return out, SourceFallback
	case filled:
		return out, SourceMerged
	default:
		return out, SourceGenerated
	}
}

// mergeTools merges tool lists in the order generated, scenario required,
// scenario recommended, fallback sets. Duplicates by name are dropped. It
// reports whether anything beyond the generated list was added.
func (b *builder) mergeTools(generated []generation.Tool) ([]Tool, bool) {
	seen := dedupe{}
	out := make([]Tool, 0, len(generated)+8)
	for _, gt := range generated {
		if !seen.first(gt.Name) {
			continue
		}
		t := Tool{
			Name:           gt.Name,
			URL:            gt.URL,
			InstallCommand: gt.InstallCommand,
			Purpose:        gt.Purpose,
			Cost:           gt.Cost,
			Source:         SourceGenerated,
		}
		if tier, err := priority.ParseTier(gt.Priority); err == nil {
			t.Tier = tier
		} else {
			t.Tier = b.escalator.ForTool(gt.Name, b.pctx)
		}
		t.Priority = strings.TrimSpace(gt.Priority)
		b.completeTool(&t)
		out = append(out, t)
	}

	added := false
	add := func(name, purpose string, floor priority.Tier, src Source) {
		if !seen.first(name) {
			return
		}
		tier := priority.Max(b.escalator.ForTool(name, b.pctx), floor)
		t := Tool{Name: name, Purpose: purpose, Tier: tier, Source: src}
		b.completeTool(&t)
		out = append(out, t)
		added = true
	}
	if sc := b.in.Scenario; sc != nil {
		for _, ref := range sc.RequiredTools {
			add(ref.Name, ref.Purpose, priority.HighlyRecommended, SourceScenario)
		}
		for _, ref := range sc.RecommendedTools {
			add(ref.Name, ref.Purpose, priority.NiceToHave, SourceScenario)
		}
	}
	for _, name := range b.fallbackToolNames() {
		add(name, "", priority.NiceToHave, SourceFallback)
	}
	return out, added
}

// completeTool fills empty tool fields from the catalog entry and the tier.
func (b *builder) completeTool(t *Tool) {
	if ct, ok := b.catalogTool(t.Name); ok {
		if t.URL == "" {
			t.URL = ct.URL
		}
		if t.InstallCommand == "" {
			t.InstallCommand = ct.Install
		}
		if t.Purpose == "" {
			t.Purpose = ct.Description
		}
		if t.Cost == "" {
			t.Cost = ct.Cost
		}
	}
	if t.Priority == "" {
		t.Priority = t.Tier.Key()
	}
	t.PriorityLabel = b.label(t.Tier)
}

// checklist builds the first week from phase one actions and the scenario's
// implementation steps.
func (b *builder) checklist() []generation.ChecklistItem {
	var tasks []string
	if cat := b.in.Catalog; cat != nil && len(cat.Phases) > 0 {
		tasks = append(tasks, cat.Phases[0].Actions...)
	}
	if sc := b.in.Scenario; sc != nil {
		tasks = append(tasks, sc.ImplementationSteps...)
	}

	seen := dedupe{}
	out := make([]generation.ChecklistItem, 0, len(tasks))
	for _, task := range tasks {
		if !seen.first(task) {
			continue
		}
		item := generation.ChecklistItem{Task: task, Priority: priority.Recommended.Key()}
		if tool, ok := b.toolMentioned(task); ok {
			item.ResourceURL = tool.URL
			item.Priority = b.escalator.ForTool(tool.Name, b.pctx).Key()
		}
		out = append(out, item)
	}
	return out
}

// fillRoadmap adds a week entry for every catalog phase the generated
// roadmap lacks.
func (b *builder) fillRoadmap(q *QuickStartGuide) bool {
	if b.in.Catalog == nil {
		return false
	}
	filled := false
	roadmap := make(map[string]generation.RoadmapWeek, len(b.in.Catalog.Phases))
	for k, v := range q.ThirtyDayRoadmap {
		roadmap[k] = v
	}
	for _, ph := range b.in.Catalog.Phases {
		key := fmt.Sprintf("week_%d", ph.Phase)
		if _, ok := roadmap[key]; ok {
			continue
		}
		filled = true
		roadmap[key] = generation.RoadmapWeek{
			Focus:     ph.Name + ": " + ph.Focus,
			Actions:   append([]string(nil), ph.Actions...),
			Milestone: ph.Milestone,
		}
	}
	q.ThirtyDayRoadmap = roadmap
	return filled
}

func (b *builder) quickReference(tools []Tool) *generation.QuickReference {
	ref := &generation.QuickReference{}
	for _, t := range tools {
		if len(ref.Top3Tools) == quickReferenceTools {
			break
		}
		ref.Top3Tools = append(ref.Top3Tools, t.Name)
	}
	if sc := b.in.Scenario; sc != nil {
		ref.RedFlags = append(ref.RedFlags, sc.CommonPitfalls...)
	}
	return ref
}
