package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rai-review-backend/internal/bootstrap"
	"rai-review-backend/internal/resources/cache"
)

func newCacheCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the resource cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts by kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := bootstrap.BuildCache(cmd.Context(), opts.loadConfig())
			if err != nil {
				return err
			}
			defer h.Close()
			st, err := h.Cache.Stats(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Backend: %s\n", st.Backend)
			fmt.Fprintf(w, "Entries: %d (%d bytes)\n", st.Entries, st.Bytes)
			for _, kind := range []string{cache.KindGitHub, cache.KindArchitectures, cache.KindTools, cache.KindWebSearch} {
				if n := st.ByKind[kind]; n > 0 {
					fmt.Fprintf(w, "  %-24s %d\n", kind, n)
				}
			}
			if st.Oldest != nil && st.Newest != nil {
				fmt.Fprintf(w, "Oldest:  %s\nNewest:  %s\n", st.Oldest.Format("2006-01-02 15:04"), st.Newest.Format("2006-01-02 15:04"))
			}
			return nil
		},
	})

	var kind string
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached entries, optionally of one kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kind != "" && !cache.ValidKind(kind) {
				return fmt.Errorf("unknown cache kind %q", kind)
			}
			h, err := bootstrap.BuildCache(cmd.Context(), opts.loadConfig())
			if err != nil {
				return err
			}
			defer h.Close()
			removed, err := h.Cache.Clear(cmd.Context(), kind)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
			return err
		},
	}
	clearCmd.Flags().StringVar(&kind, "kind", "", "github, reference_architectures, tools or web_search")
	cmd.AddCommand(clearCmd)

	return cmd
}
