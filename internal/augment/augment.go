package augment

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/priority"
	"rai-review-backend/internal/profile"
	"rai-review-backend/internal/resources"
	"rai-review-backend/internal/risk"
	"rai-review-backend/internal/shared/metrics"
	"rai-review-backend/internal/shared/telemetry"
)

// Resources supplies advisory data fetched through the resource cache.
type Resources interface {
	Architectures(ctx context.Context, cat *catalog.Catalog, projectType, useCase string) resources.Architecture
	ToolVersions(ctx context.Context, cat *catalog.Catalog) map[string]resources.ToolVersion
}

// Inputs is the per-review state the augmentor reads. None of it is mutated.
type Inputs struct {
	Catalog         *catalog.Catalog
	Profile         profile.Profile
	Assessment      assessment.Assessment
	Characteristics assessment.Characteristics
	Template        assessment.Template
	Scenario        *catalog.Scenario
	Generation      GenerationInfo
}

// Augmentor merges a generated response with deterministic fallbacks.
type Augmentor struct {
	resources Resources
	estimate  func(profile.Profile) risk.Score
}

type Option func(*Augmentor)

// WithEstimator replaces the risk estimator.
func WithEstimator(fn func(profile.Profile) risk.Score) Option {
	return func(a *Augmentor) {
		a.estimate = fn
	}
}

// New returns an Augmentor. A nil res limits enrichment to catalog data.
func New(res Resources, opts ...Option) *Augmentor {
	a := &Augmentor{resources: res, estimate: risk.Estimate}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type enrichment struct {
	arch     resources.Architecture
	versions map[string]resources.ToolVersion
}

// Augment builds the final document. Generated values are kept as they are;
// only absent or empty fields are filled. g may be nil.
func (a *Augmentor) Augment(ctx context.Context, g *generation.Generated, in Inputs) Document {
	if g == nil {
		g = &generation.Generated{}
	}
	b := &builder{
		in:        in,
		escalator: priority.NewEscalator(in.Catalog),
		pctx: priority.Context{
			Characteristics: in.Characteristics,
			Stage:           in.Profile.Stage(),
		},
	}
	enr := a.enrich(ctx, in)

	doc := Document{
		ProjectName:    in.Profile.Name(),
		ReviewMode:     in.Template.Mode,
		CatalogVersion: catalogVersion(in.Catalog),
		Generation:     in.Generation,
		Sources:        make(map[string]Source, len(Sections)),
		ToolVersions:   enr.versions,
		InputAssessment: InputAssessment{
			Assessment:        in.Assessment,
			ReviewMode:        in.Template.Mode,
			Title:             in.Template.Title,
			Description:       in.Template.Description,
			EnablementMessage: enablementMessage(in.Characteristics),
		},
	}
	if sc := in.Scenario; sc != nil {
		doc.MatchedScenario = &ScenarioRef{ID: sc.ID, Title: sc.Title, RiskProfile: sc.RiskProfile}
	}

	var src Source
	doc.RiskScores, src = section(SectionRiskScores,
		func() (RiskScores, Source) { return mergeRisk(g.RiskScores, a.estimate(in.Profile)) },
		func() RiskScores { return fallbackRisk(risk.Estimate(in.Profile)) })
	doc.Sources[SectionRiskScores] = src

	if in.Template.Includes(assessment.SectionEUAIAct) {
		doc.EUAIActClassification, src = section(SectionEUAIAct,
			func() (*EUAIActClassification, Source) { return b.mergeEUAIAct(g.EUAIActClassification) },
			func() *EUAIActClassification { return first(b.mergeEUAIAct(nil)) })
		if doc.EUAIActClassification != nil {
			doc.Sources[SectionEUAIAct] = src
		}
	}

	doc.ReferenceArchitecture, src = section(SectionArchitecture,
		func() (ReferenceArchitecture, Source) { return mergeArchitecture(g.ReferenceArchitecture, enr.arch) },
		func() ReferenceArchitecture { return fromArchitecture(b.catalogArchitecture()) })
	doc.Sources[SectionArchitecture] = src

	doc.QuickStartGuide, src = section(SectionQuickStart,
		func() (QuickStartGuide, Source) { return b.mergeQuickStart(g.QuickStartGuide) },
		func() QuickStartGuide { return first(b.mergeQuickStart(nil)) })
	doc.Sources[SectionQuickStart] = src

	doc.RecommendationsByPillar, src = section(SectionRecommendations,
		func() (map[string][]Recommendation, Source) { return b.mergeRecommendations(g) },
		func() map[string][]Recommendation { return first(b.mergeRecommendations(nil)) })
	doc.Sources[SectionRecommendations] = src

	doc.TierSummary = priority.Summarize(summaryItems(doc.RecommendationsByPillar))

	doc.NextSteps, src = section(SectionNextSteps,
		func() ([]string, Source) { return b.mergeNextSteps(g.NextSteps, doc.TierSummary, doc.RecommendationsByPillar) },
		func() []string { return first(b.mergeNextSteps(nil, doc.TierSummary, doc.RecommendationsByPillar)) })
	doc.Sources[SectionNextSteps] = src

	return doc
}

// enrich fetches advisory data concurrently. Failures leave catalog-only data.
func (a *Augmentor) enrich(ctx context.Context, in Inputs) enrichment {
	useCase := in.Profile.FreeText()
	out := enrichment{}
	if a.resources == nil {
		out.arch = resources.CatalogArchitecture(in.Catalog, in.Characteristics.PrimaryType, useCase)
		return out
	}

	var (
		arch     *resources.Architecture
		versions map[string]resources.ToolVersion
		g        errgroup.Group
	)
	g.Go(func() error {
		return guarded("architectures", func() {
			v := a.resources.Architectures(ctx, in.Catalog, in.Characteristics.PrimaryType, useCase)
			arch = &v
		})
	})
	g.Go(func() error {
		return guarded("tool_versions", func() {
			versions = a.resources.ToolVersions(ctx, in.Catalog)
		})
	})
	if err := g.Wait(); err != nil {
		telemetry.Warn("augment.enrichment_failed", map[string]any{"error": err})
	}

	if arch != nil {
		out.arch = *arch
	} else {
		out.arch = resources.CatalogArchitecture(in.Catalog, in.Characteristics.PrimaryType, useCase)
	}
	if len(versions) > 0 {
		out.versions = versions
	}
	return out
}

// guarded runs fn and converts a panic into an error.
func guarded(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	fn()
	return nil
}

// section builds one document section. A panic in build degrades the section
// to the catalog-only fallback.
func section[T any](name string, build func() (T, Source), fallback func() T) (out T, src Source) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("augment.section_panic", map[string]any{
				"section": name,
				"panic":   fmt.Sprint(r),
				"stack":   string(debug.Stack()),
			})
			out, src = fallback(), SourceFallback
		}
		if src == SourceFallback {
			metrics.IncSectionFallback(name)
		}
	}()
	return build()
}

func first[T any](v T, _ Source) T {
	return v
}

func catalogVersion(cat *catalog.Catalog) string {
	if cat == nil {
		return ""
	}
	return cat.Version
}

func summaryItems(recs map[string][]Recommendation) []priority.Item {
	var items []priority.Item
	for _, pillar := range pillarOrder(recs) {
		for _, r := range recs[pillar] {
			items = append(items, priority.Item{Title: r.Title, Tier: r.Tier})
		}
	}
	return items
}
