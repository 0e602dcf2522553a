package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/resources/cache"
	"rai-review-backend/internal/shared/telemetry"
	"rai-review-backend/internal/shared/util"
)

const enrichConcurrency = 4

// QuickStartCommand is a shell command a team can run to bootstrap a reference sample.
type QuickStartCommand struct {
	Description string `json:"description"`
	Command     string `json:"command"`
}

// Architecture is a reference architecture pattern enriched with live repository data.
type Architecture struct {
	Pattern            string                 `json:"pattern"`
	Patterns           []string               `json:"patterns"`
	GitHubRepos        []Repo                 `json:"github_repos"`
	Documentation      []catalog.Link         `json:"documentation"`
	QuickStartCommands []QuickStartCommand    `json:"quick_start_commands"`
	Services           []catalog.ServiceUsage `json:"services,omitempty"`
	References         []catalog.RepoRef      `json:"references,omitempty"`
	Complexity         string                 `json:"complexity,omitempty"`
	Freshness          cache.Freshness        `json:"freshness"`
}

// Fetcher assembles advisory reference data from the catalog and GitHub.
type Fetcher struct {
	github *GitHub
	cache  *cache.Cache
	ttls   cache.TTLs
}

func NewFetcher(gh *GitHub, c *cache.Cache, ttls cache.TTLs) *Fetcher {
	if ttls == nil {
		ttls = cache.DefaultTTLs()
	}
	return &Fetcher{github: gh, cache: c, ttls: ttls}
}

// GitHub returns the underlying GitHub client.
func (f *Fetcher) GitHub() *GitHub {
	return f.github
}

// SelectPattern picks the first catalog pattern, in catalog order, whose
// primary types include projectType or whose keywords occur in useCase.
// The "default" pattern is returned when nothing matches.
func SelectPattern(cat *catalog.Catalog, projectType, useCase string) catalog.ArchitecturePattern {
	text := strings.ToLower(useCase)
	for _, a := range cat.Architectures {
		if a.Key == "default" {
			continue
		}
		for _, t := range a.PrimaryTypes {
			if strings.EqualFold(t, projectType) {
				return a
			}
		}
		for _, kw := range a.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return a
			}
		}
	}
	def, _ := cat.Architecture("default")
	return def
}

// CatalogArchitecture returns the reference architecture using catalog data only.
func CatalogArchitecture(cat *catalog.Catalog, projectType, useCase string) Architecture {
	pattern := SelectPattern(cat, projectType, useCase)
	return Architecture{
		Pattern:            pattern.Key,
		Patterns:           pattern.Patterns,
		Documentation:      pattern.Docs,
		QuickStartCommands: quickStart(nil, pattern.Repos),
		Services:           pattern.Services,
		References:         pattern.Repos,
		Complexity:         pattern.Complexity,
		Freshness:          cache.Unavailable,
	}
}

// Architectures returns the reference architecture for a project. The catalog
// part is always present; repository metadata is best effort.
func (f *Fetcher) Architectures(ctx context.Context, cat *catalog.Catalog, projectType, useCase string) Architecture {
	pattern := SelectPattern(cat, projectType, useCase)
	arch := CatalogArchitecture(cat, projectType, useCase)

	key := util.CacheKey(cache.KindArchitectures, pattern.Key, cat.Version)
	repos, res := cache.Fetch(ctx, f.cache, key, f.ttls.For(cache.KindArchitectures), func(ctx context.Context) ([]Repo, error) {
		repos := f.enrich(ctx, pattern.Repos)
		if len(repos) == 0 && len(pattern.Repos) > 0 {
			return nil, errors.New("no repository metadata available")
		}
		return repos, nil
	})
	if res.Err != nil {
		telemetry.Debug("resources.architectures_degraded", map[string]any{"pattern": pattern.Key, "freshness": res.Freshness, "error": res.Err})
	}
	arch.GitHubRepos = repos
	arch.Freshness = res.Freshness
	arch.QuickStartCommands = quickStart(repos, pattern.Repos)
	return arch
}

// enrich fetches repository metadata concurrently, keeping catalog order and
// skipping repositories that are unavailable.
func (f *Fetcher) enrich(ctx context.Context, refs []catalog.RepoRef) []Repo {
	slots := make([]*Repo, len(refs))
	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			repo, res := f.github.Repo(ctx, ref.Owner, ref.Repo)
			if res.Available() {
				slots[i] = &repo
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Repo, 0, len(refs))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func quickStart(repos []Repo, refs []catalog.RepoRef) []QuickStartCommand {
	var name, cloneURL, fullName string
	switch {
	case len(repos) > 0:
		name, cloneURL, fullName = repos[0].Name, repos[0].URL, repos[0].FullName
	case len(refs) > 0:
		name = refs[0].Repo
		fullName = refs[0].FullName()
		cloneURL = "https://github.com/" + fullName
	default:
		return nil
	}
	if fullName == "" {
		return nil
	}
	if cloneURL == "" {
		cloneURL = "https://github.com/" + fullName
	}
	return []QuickStartCommand{
		{Description: fmt.Sprintf("Clone %s", name), Command: "git clone " + cloneURL},
		{Description: "Deploy with Azure Developer CLI", Command: "azd init -t " + fullName},
	}
}
