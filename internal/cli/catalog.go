package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rai-review-backend/internal/catalog"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the knowledge catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Parse and validate a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "invalid: %v\n", err)
				return fmt.Errorf("catalog %s is invalid", args[0])
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "ok: version %s\n", cat.Version)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Summarize the active catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			holder, err := opts.catalogHolder()
			if err != nil {
				return err
			}
			cat := holder.Current()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Version:         %s\n", cat.Version)
			fmt.Fprintf(w, "Scenarios:       %d\n", len(cat.Scenarios))
			fmt.Fprintf(w, "Tools:           %d\n", len(cat.Tools))
			fmt.Fprintf(w, "Recommendations: %d\n", len(cat.Recommendations))
			fmt.Fprintf(w, "Architectures:   %d\n", len(cat.Architectures))
			for _, id := range cat.ScenarioIDs() {
				fmt.Fprintf(w, "  - %s\n", id)
			}
			return nil
		},
	})
	return cmd
}
