package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rai-review-backend/internal/augment"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/priority"
)

func newReviewCommand(opts *rootOptions) *cobra.Command {
	var (
		asJSON  bool
		offline bool
	)
	cmd := &cobra.Command{
		Use:   "review <profile.json|->",
		Short: "Run a full review and print the result",
		Long: `Run the review pipeline against a JSON project profile. The generation
provider, cache backend and GitHub access come from the environment, the same
as the API server. --offline skips both generation and GitHub and returns the
catalog-only review.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(cmd, args[0])
			if err != nil {
				return err
			}
			cfg := opts.loadConfig()
			if offline {
				cfg.LLMProvider = "placeholder"
				cfg.CacheBackend = "memory"
			}
			app, err := buildApp(cmd, cfg)
			if err != nil {
				return err
			}
			defer app.Close()
			if offline {
				app.ReviewService.Augmentor = augment.New(nil)
				app.ReviewService.Generator = generation.PlaceholderClient{}
			}

			doc, err := app.ReviewService.Review(cmd.Context(), p)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), doc)
			}
			printReview(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the review document as JSON")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip generation and GitHub enrichment")
	return cmd
}

func printReview(w io.Writer, doc augment.Document) {
	title := color.New(color.FgCyan, color.Bold)
	heading := color.New(color.Bold)
	dim := color.New(color.Faint)

	title.Fprintf(w, "%s  [%s]\n", doc.ProjectName, doc.ReviewMode)
	dim.Fprintf(w, "review %s, catalog %s, generation %s/%s\n\n", doc.ReviewID, doc.CatalogVersion, doc.Generation.Provider, doc.Generation.Outcome)

	rs := doc.RiskScores
	fmt.Fprintf(w, "Risk: %g (%s)\n", float64(rs.OverallScore), levelColor(rs.RiskLevel).Sprint(rs.RiskLevel))
	fmt.Fprintf(w, "Deployment readiness: %s\n", readinessColor(doc.TierSummary.DeploymentReadiness).Sprint(doc.TierSummary.DeploymentReadiness))
	if doc.MatchedScenario != nil {
		fmt.Fprintf(w, "Scenario: %s\n", doc.MatchedScenario.Title)
	}
	if eu := doc.EUAIActClassification; eu != nil {
		fmt.Fprintf(w, "EU AI Act: %s\n", levelColor(eu.RiskCategory).Sprint(eu.RiskCategory))
	}

	heading.Fprintln(w, "\nRecommendations")
	for _, pillar := range augment.PillarOrder(doc.RecommendationsByPillar) {
		fmt.Fprintf(w, "  %s\n", pillar)
		for _, r := range doc.RecommendationsByPillar[pillar] {
			tierColor(r.Tier).Fprintf(w, "    [%s] ", r.Tier)
			fmt.Fprintln(w, r.Title)
		}
	}

	if len(doc.NextSteps) > 0 {
		heading.Fprintln(w, "\nNext steps")
		for i, s := range doc.NextSteps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}

	var fallbacks []string
	for _, s := range augment.Sections {
		if doc.Sources[s] == augment.SourceFallback {
			fallbacks = append(fallbacks, s)
		}
	}
	if len(fallbacks) > 0 {
		dim.Fprintf(w, "\nCatalog fallback used for: %s\n", strings.Join(fallbacks, ", "))
	}
}

func tierColor(t priority.Tier) *color.Color {
	switch t {
	case priority.CriticalBlocker:
		return color.New(color.FgRed, color.Bold)
	case priority.HighlyRecommended:
		return color.New(color.FgYellow)
	case priority.Recommended:
		return color.New(color.FgBlue)
	default:
		return color.New(color.Faint)
	}
}

func readinessColor(readiness string) *color.Color {
	if readiness == priority.ReadinessNotReady {
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgYellow)
}
