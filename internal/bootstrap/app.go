package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"rai-review-backend/internal/augment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/generation/providers"
	"rai-review-backend/internal/resources"
	"rai-review-backend/internal/resources/cache"
	"rai-review-backend/internal/reviews"
	"rai-review-backend/internal/scenarios"
	"rai-review-backend/internal/services/health"
	"rai-review-backend/internal/shared/config"
	"rai-review-backend/internal/shared/server"
	"rai-review-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Catalog       *catalog.Holder
	Watcher       *catalog.Watcher
	Cache         *cache.Cache
	Fetcher       *resources.Fetcher
	Generator     generation.Client
	ReviewService *reviews.Service
	Health        *health.Service

	closers  []func() error
	watching bool
}

// Build prepares every dependency and the router. The catalog watcher, when
// enabled, is created here and started by Start.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	cat, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Catalog: catalog.NewHolder(cat)}

	if cfg.CatalogWatch && cfg.CatalogPath != "" {
		w, err := catalog.NewWatcher(cfg.CatalogPath, app.Catalog)
		if err != nil {
			return nil, fmt.Errorf("watch catalog: %w", err)
		}
		app.Watcher = w
	}

	c, err := BuildCache(ctx, cfg)
	if err != nil {
		return nil, app.abort(err)
	}
	app.Cache = c.Cache
	app.closers = append(app.closers, c.Close)

	ttls := cache.TTLsFromConfig(cfg.CacheTTL)
	gh := resources.NewGitHub(app.Cache, resources.GitHubOptions{
		BaseURL: cfg.GitHubBaseURL,
		Token:   cfg.GitHubToken,
		Timeout: cfg.FetchTimeout,
		TTLs:    ttls,
	})
	app.Fetcher = resources.NewFetcher(gh, app.Cache, ttls)

	gen, err := providers.New(ctx, cfg)
	if err != nil {
		if !isDevLike(cfg.Env) {
			return nil, app.abort(err)
		}
		telemetry.Warn("bootstrap.generation_unavailable", map[string]any{"provider": cfg.LLMProvider, "error": err})
		gen = generation.PlaceholderClient{}
	}
	app.Generator = gen

	app.ReviewService = &reviews.Service{
		Catalog:           app.Catalog,
		Generator:         gen,
		Augmentor:         augment.New(app.Fetcher),
		Matcher:           scenarios.NewMatcher(MatcherWeights(cfg.Scenario)),
		GenerationTimeout: cfg.GenerationTimeout,
	}
	app.Health = health.NewService(app.Catalog, app.Cache.Backend(), gen.Name())

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ReviewHandler: reviews.NewHandler(app.ReviewService),
		CacheHandler:  cache.NewHandler(app.Cache),
		Health:        app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"catalog_version": cat.Version,
		"catalog_watch":   app.Watcher != nil,
		"cache_backend":   app.Cache.Backend(),
		"provider":        gen.Name(),
	})
	return app, nil
}

// Start runs background work until ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.Watcher != nil && !a.watching {
		a.watching = true
		go a.Watcher.Run(ctx)
	}
}

// Close releases the watcher and the cache backend. When Start ran, it waits
// for the watcher to stop, so cancel the Start context first.
func (a *App) Close() error {
	var errs []error
	if a.Watcher != nil {
		if a.watching {
			<-a.Watcher.Done()
		} else if err := a.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	telemetry.Sync()
	return errors.Join(errs...)
}

// abort releases whatever Build acquired before failing with err.
func (a *App) abort(err error) error {
	if cerr := a.Close(); cerr != nil {
		telemetry.Warn("bootstrap.cleanup_failed", map[string]any{"error": cerr})
	}
	return err
}

// LoadCatalog loads the catalog file at path, or the embedded default when
// path is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// CacheHandle is an opened cache with its backend close function.
type CacheHandle struct {
	Cache *cache.Cache
	Close func() error
}

// BuildCache opens the configured cache backend.
func BuildCache(ctx context.Context, cfg config.Config) (CacheHandle, error) {
	store, closeFn, err := cache.OpenStore(ctx, cfg)
	if err != nil {
		return CacheHandle{}, fmt.Errorf("open cache: %w", err)
	}
	retry := cache.DefaultRetryPolicy()
	if cfg.CacheRetries > 0 {
		retry.Attempts = cfg.CacheRetries
	}
	return CacheHandle{Cache: cache.New(store, cache.WithRetry(retry)), Close: closeFn}, nil
}

// MatcherWeights converts configured weights, keeping defaults for unset values.
func MatcherWeights(w config.ScenarioWeights) scenarios.Weights {
	out := scenarios.DefaultWeights()
	if w.KeywordHint > 0 {
		out.KeywordHint = w.KeywordHint
	}
	if w.IndustryMatch > 0 {
		out.IndustryMatch = w.IndustryMatch
	}
	if w.TypeHint > 0 {
		out.TypeHint = w.TypeHint
	}
	if w.TypeToken > 0 {
		out.TypeToken = w.TypeToken
	}
	if w.MinScore > 0 {
		out.MinScore = w.MinScore
	}
	return out
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
