package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"rai-review-backend/internal/mcpserver"
)

func newMCPCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the review tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(cmd, opts.loadConfig())
			if err != nil {
				return err
			}
			defer app.Close()
			s := mcpserver.New(mcpserver.Deps{Reviews: app.ReviewService, Resources: app.Fetcher})
			return server.ServeStdio(s)
		},
	}
}
