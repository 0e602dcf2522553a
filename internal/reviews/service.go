package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/augment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/profile"
	"rai-review-backend/internal/risk"
	"rai-review-backend/internal/scenarios"
	"rai-review-backend/internal/shared/metrics"
	"rai-review-backend/internal/shared/telemetry"
)

const defaultGenerationTimeout = 60 * time.Second

var tracer = otel.Tracer("rai-review-backend/internal/reviews")

// CatalogSource returns the catalog snapshot a review runs against.
type CatalogSource interface {
	Current() *catalog.Catalog
}

// Service runs the review pipeline.
type Service struct {
	Catalog           CatalogSource
	Generator         generation.Client
	Augmentor         *augment.Augmentor
	Matcher           *scenarios.Matcher
	GenerationTimeout time.Duration
}

// Preparation is the deterministic part of a review, computed before any
// generation call.
type Preparation struct {
	Catalog         *catalog.Catalog           `json:"-"`
	Profile         profile.Profile            `json:"-"`
	Assessment      assessment.Assessment      `json:"assessment"`
	Characteristics assessment.Characteristics `json:"characteristics"`
	Template        assessment.Template        `json:"template"`
	Scenario        *catalog.Scenario          `json:"-"`
	MatchedScenario *augment.ScenarioRef       `json:"matched_scenario,omitempty"`
	ScenarioScores  []scenarios.Score          `json:"scenario_scores,omitempty"`
	RiskScore       risk.Score                 `json:"risk_score"`
	CatalogVersion  string                     `json:"catalog_version"`
}

// Validate checks the one required profile field.
func Validate(p profile.Profile) error {
	if p.Name() == "" {
		return &ValidationError{Field: profile.FieldProjectName, Message: "project_name is required"}
	}
	return nil
}

// Prepare validates p and runs every deterministic stage against the current
// catalog snapshot.
func (s *Service) Prepare(ctx context.Context, p profile.Profile) (Preparation, error) {
	_, span := tracer.Start(ctx, "reviews.prepare")
	defer span.End()

	if err := Validate(p); err != nil {
		return Preparation{}, err
	}
	cat := s.Catalog.Current()
	if cat == nil {
		return Preparation{}, errors.New("catalog not loaded")
	}

	a := assessment.Assess(p)
	ch := assessment.DetectCharacteristics(p, cat)
	prep := Preparation{
		Catalog:         cat,
		Profile:         p,
		Assessment:      a,
		Characteristics: ch,
		Template:        assessment.TemplateFor(a.Depth),
		RiskScore:       risk.Estimate(p),
		CatalogVersion:  cat.Version,
	}
	if sc, ok := s.matcher().Match(p, ch, cat); ok {
		prep.Scenario = &sc
		prep.MatchedScenario = &augment.ScenarioRef{ID: sc.ID, Title: sc.Title, RiskProfile: sc.RiskProfile}
	}
	span.SetAttributes(
		attribute.Int("review.completeness_score", a.CompletenessScore),
		attribute.String("review.depth", a.Depth.String()),
		attribute.String("review.primary_type", ch.PrimaryType),
	)
	return prep, nil
}

// Explain returns the assessment with per-scenario score breakdowns.
func (s *Service) Explain(ctx context.Context, p profile.Profile) (Preparation, error) {
	prep, err := s.Prepare(ctx, p)
	if err != nil {
		return Preparation{}, err
	}
	prep.ScenarioScores = s.matcher().Explain(p, prep.Characteristics, prep.Catalog)
	return prep, nil
}

// Review runs the full pipeline. Only validation errors are returned; every
// other failure degrades to fallback content inside the document.
func (s *Service) Review(ctx context.Context, p profile.Profile) (augment.Document, error) {
	start := time.Now()
	metrics.IncReviewStarted()
	ctx, span := tracer.Start(ctx, "reviews.review")
	defer span.End()

	prep, err := s.Prepare(ctx, p)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			metrics.IncReviewRejected()
		}
		return augment.Document{}, err
	}

	g, outcome := s.generate(ctx, prep)
	metrics.IncGenerationOutcome(outcome)

	augCtx, augSpan := tracer.Start(ctx, "reviews.augment")
	doc := s.Augmentor.Augment(augCtx, g, augment.Inputs{
		Catalog:         prep.Catalog,
		Profile:         prep.Profile,
		Assessment:      prep.Assessment,
		Characteristics: prep.Characteristics,
		Template:        prep.Template,
		Scenario:        prep.Scenario,
		Generation:      augment.GenerationInfo{Provider: s.generator().Name(), Outcome: outcome},
	})
	augSpan.End()
	doc.ReviewID = uuid.NewString()

	elapsed := metrics.SinceMillis(start)
	metrics.IncReviewCompleted()
	metrics.ObserveReviewDurationMs(elapsed)
	span.SetAttributes(attribute.String("review.id", doc.ReviewID), attribute.String("review.generation_outcome", outcome))

	sources := make(map[string]any, len(doc.Sources))
	for k, v := range doc.Sources {
		sources[k] = string(v)
	}
	telemetry.Info("review.completed", map[string]any{
		"request_id":         requestIDFromContext(ctx),
		"trace_id":           traceID(ctx),
		"review_id":          doc.ReviewID,
		"review_mode":        doc.ReviewMode,
		"completeness_score": prep.Assessment.CompletenessScore,
		"scenario":           scenarioID(prep.Scenario),
		"generation_outcome": outcome,
		"sources":            sources,
		"duration_ms":        elapsed,
	})
	return doc, nil
}

// generate calls the provider once under the generation timeout. Any failure
// yields a nil response and the outcome code.
func (s *Service) generate(ctx context.Context, prep Preparation) (*generation.Generated, string) {
	client := s.generator()
	timeout := s.GenerationTimeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "reviews.generate")
	defer span.End()

	prompt := generation.BuildPrompt(generation.PromptInput{
		Catalog:         prep.Catalog,
		Profile:         prep.Profile,
		Assessment:      prep.Assessment,
		Characteristics: prep.Characteristics,
		Template:        prep.Template,
		Scenario:        prep.Scenario,
	})
	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		outcome := generation.Classify(err)
		s.logGeneration(ctx, client, outcome, err)
		return nil, outcome
	}
	g, err := generation.Parse(raw)
	if err != nil {
		outcome := generation.Classify(err)
		s.logGeneration(ctx, client, outcome, err)
		return nil, outcome
	}
	if g.Empty() {
		s.logGeneration(ctx, client, generation.ErrorCodeEmptyResponse, generation.ErrEmptyResponse)
		return nil, generation.ErrorCodeEmptyResponse
	}
	return g, generation.OutcomeOK
}

func (s *Service) logGeneration(ctx context.Context, client generation.Client, outcome string, err error) {
	fields := map[string]any{
		"request_id": requestIDFromContext(ctx),
		"provider":   client.Name(),
		"outcome":    outcome,
		"error":      err,
	}
	if outcome == generation.ErrorCodeDisabled {
		telemetry.Debug("generation.skipped", fields)
		return
	}
	telemetry.Warn("generation.failed", fields)
}

func (s *Service) generator() generation.Client {
	if s.Generator == nil {
		return generation.PlaceholderClient{}
	}
	return s.Generator
}

func (s *Service) matcher() *scenarios.Matcher {
	if s.Matcher == nil {
		return scenarios.NewMatcher(scenarios.DefaultWeights())
	}
	return s.Matcher
}

// traceID returns the active trace id, or "" when tracing is off.
func traceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

func scenarioID(sc *catalog.Scenario) string {
	if sc == nil {
		return ""
	}
	return sc.ID
}
