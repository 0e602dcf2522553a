package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rai-review-backend/internal/bootstrap"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/profile"
	"rai-review-backend/internal/shared/config"
	"rai-review-backend/internal/shared/telemetry"
)

// Version is set at build time via ldflags.
var Version = "dev"

type rootOptions struct {
	catalogPath  string
	cacheBackend string
	logLevel     string
	noColor      bool
}

// NewRootCommand creates the raictl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "raictl",
		Short: "Responsible AI review tooling",
		Long: `raictl runs responsible AI reviews against a project profile from the
command line, inspects and validates the knowledge catalog, manages the
resource cache, and serves the review tools over MCP.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			telemetry.SetOutput(cmd.ErrOrStderr(), opts.logLevel)
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog file (YAML or JSON); defaults to CATALOG_PATH or the built-in catalog")
	cmd.PersistentFlags().StringVar(&opts.cacheBackend, "cache-backend", "", "cache backend override: file, memory, redis, postgres or s3")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newAssessCommand(opts))
	cmd.AddCommand(newReviewCommand(opts))
	cmd.AddCommand(newRiskCommand())
	cmd.AddCommand(newCatalogCommand(opts))
	cmd.AddCommand(newCacheCommand(opts))
	cmd.AddCommand(newMCPCommand(opts))

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func (o *rootOptions) loadConfig() config.Config {
	cfg := config.Load()
	if o.catalogPath != "" {
		cfg.CatalogPath = o.catalogPath
	}
	if o.cacheBackend != "" {
		cfg.CacheBackend = strings.ToLower(strings.TrimSpace(o.cacheBackend))
	}
	cfg.CatalogWatch = false
	return cfg
}

func (o *rootOptions) catalogHolder() (*catalog.Holder, error) {
	cat, err := bootstrap.LoadCatalog(o.loadConfig().CatalogPath)
	if err != nil {
		return nil, err
	}
	return catalog.NewHolder(cat), nil
}

func buildApp(cmd *cobra.Command, cfg config.Config) (*bootstrap.App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return bootstrap.Build(ctx, cfg)
}

// readProfile reads a JSON profile from path, or from stdin when path is "-".
func readProfile(cmd *cobra.Command, path string) (profile.Profile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return profile.FromJSON(data)
}
