package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rai-review-backend/internal/reviews"
)

func newAssessCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "assess <profile.json|->",
		Short: "Score profile completeness and show the review depth and matched scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(cmd, args[0])
			if err != nil {
				return err
			}
			holder, err := opts.catalogHolder()
			if err != nil {
				return err
			}
			svc := &reviews.Service{Catalog: holder}
			prep, err := svc.Explain(cmd.Context(), p)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), prep)
			}
			printAssessment(cmd.OutOrStdout(), prep)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full assessment as JSON")
	return cmd
}

func printAssessment(w io.Writer, prep reviews.Preparation) {
	title := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	title.Fprintf(w, "%s\n", prep.Profile.Name())
	fmt.Fprintf(w, "  Completeness: %d/100 (%s)\n", prep.Assessment.CompletenessScore, prep.Assessment.Depth)
	fmt.Fprintf(w, "  Review mode:  %s\n", prep.Template.Mode)
	fmt.Fprintf(w, "  Project type: %s\n", prep.Characteristics.PrimaryType)
	if prep.MatchedScenario != nil {
		fmt.Fprintf(w, "  Scenario:     %s (%s)\n", prep.MatchedScenario.Title, prep.MatchedScenario.ID)
	} else {
		dim.Fprintf(w, "  Scenario:     none matched\n")
	}
	fmt.Fprintf(w, "  Risk:         %d (%s)\n", prep.RiskScore.Overall, levelColor(prep.RiskScore.Level).Sprint(prep.RiskScore.Level))
	if len(prep.Assessment.MissingHighValueFields) > 0 {
		fmt.Fprintln(w, "  Missing fields:")
		for _, f := range prep.Assessment.MissingHighValueFields {
			dim.Fprintf(w, "    - %s\n", f)
		}
	}
	if len(prep.Assessment.Suggestions) > 0 {
		fmt.Fprintln(w, "  Suggestions:")
		for _, s := range prep.Assessment.Suggestions {
			fmt.Fprintf(w, "    - %s\n", s)
		}
	}
}

func levelColor(level string) *color.Color {
	switch level {
	case "High", "Unacceptable":
		return color.New(color.FgRed, color.Bold)
	case "Medium", "Limited":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
