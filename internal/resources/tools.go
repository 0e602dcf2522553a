package resources

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/resources/cache"
	"rai-review-backend/internal/shared/util"
)

// ToolVersion is the latest activity of a responsible AI tool repository.
type ToolVersion struct {
	LatestPush string          `json:"latest_push,omitempty"`
	Stars      int             `json:"stars"`
	URL        string          `json:"url"`
	Freshness  cache.Freshness `json:"freshness"`
}

// ToolVersions returns release activity for the catalog's tool repositories,
// keyed by repository name. Unavailable repositories are omitted.
func (f *Fetcher) ToolVersions(ctx context.Context, cat *catalog.Catalog) map[string]ToolVersion {
	out := make(map[string]ToolVersion, len(cat.ToolRepos))
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(enrichConcurrency)
	for _, ref := range cat.ToolRepos {
		g.Go(func() error {
			key := util.CacheKey(cache.KindTools, ref.Owner, ref.Repo)
			repo, res := cache.Fetch(ctx, f.cache, key, f.ttls.For(cache.KindTools), func(ctx context.Context) (Repo, error) {
				r, inner := f.github.Repo(ctx, ref.Owner, ref.Repo)
				if !inner.Available() {
					return Repo{}, fmt.Errorf("repository %s unavailable: %w", ref.FullName(), inner.Err)
				}
				return r, nil
			})
			if !res.Available() {
				return nil
			}
			mu.Lock()
			out[ref.Repo] = ToolVersion{LatestPush: repo.LastPushed, Stars: repo.Stars, URL: repo.URL, Freshness: res.Freshness}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
