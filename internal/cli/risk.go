package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rai-review-backend/internal/risk"
)

func newRiskCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "risk <profile.json|->",
		Short: "Print the deterministic risk estimate for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(cmd, args[0])
			if err != nil {
				return err
			}
			score := risk.Estimate(p)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), score)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Overall: %d (%s)\n", score.Overall, levelColor(score.Level).Sprint(score.Level))
			for _, d := range score.DriversNegative {
				fmt.Fprintf(w, "  + %s\n", d)
			}
			for _, d := range score.DriversPositive {
				fmt.Fprintf(w, "  - %s\n", d)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the estimate as JSON")
	return cmd
}
