package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"rai-review-backend/internal/shared/metrics"
	"rai-review-backend/internal/shared/telemetry"
	"rai-review-backend/internal/shared/util"
)

// Freshness describes the data returned by GetOrFetch.
type Freshness string

const (
	Fresh       Freshness = "fresh"
	Stale       Freshness = "stale"
	Unavailable Freshness = "unavailable"
)

// Source says where the payload came from.
type Source string

const (
	SourceCache      Source = "cache"
	SourceAPI        Source = "api"
	SourceStaleCache Source = "stale_cache"
	SourceNone       Source = ""
)

// Kinds of cached data and their default TTLs.
const (
	KindGitHub        = "github"
	KindArchitectures = "reference_architectures"
	KindTools         = "tools"
	KindWebSearch     = "web_search"
)

// FetchFunc retrieves fresh data. The value is stored as JSON.
type FetchFunc func(ctx context.Context) (any, error)

// Result is the outcome of a lookup. Err carries the fetch failure behind a
// stale or unavailable result; it is informational and never fatal.
type Result struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Freshness Freshness       `json:"freshness"`
	Source    Source          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	Err       error           `json:"-"`
}

// Available reports whether the result carries a payload.
func (r Result) Available() bool {
	return r.Freshness != Unavailable
}

// Cache is a TTL cache that serves the previous payload when a refresh fails.
type Cache struct {
	store Store
	retry RetryPolicy
	now   func() time.Time
	group singleflight.Group
}

type Option func(*Cache)

// WithRetry overrides DefaultRetryPolicy.
func WithRetry(p RetryPolicy) Option {
	return func(c *Cache) { c.retry = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		retry: DefaultRetryPolicy(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend names the underlying store.
func (c *Cache) Backend() string {
	return c.store.Name()
}

// GetOrFetch returns the cached payload for key when younger than ttl.
// Otherwise it calls fetch: success is persisted and returned fresh; failure
// returns the previous payload marked stale, or Unavailable when there is none.
// Concurrent callers for one key share a single fetch.
func (c *Cache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) Result {
	hash := util.HashKey(key)
	prev, found := c.load(ctx, hash, key)
	if found && c.now().Sub(prev.FetchedAt) < ttl {
		return c.finish(Result{Key: key, Payload: prev.Payload, Freshness: Fresh, Source: SourceCache, FetchedAt: prev.FetchedAt})
	}

	v, err, shared := c.group.Do(hash, func() (any, error) {
		payload, err := c.fetchWithRetry(ctx, fetch)
		if err != nil {
			return nil, err
		}
		entry := Entry{Key: key, Payload: payload, FetchedAt: c.now().UTC()}
		if err := c.store.Save(ctx, hash, entry); err != nil {
			telemetry.Warn("cache.save_failed", map[string]any{"key": key, "backend": c.store.Name(), "error": err})
		}
		return entry, nil
	})
	if err == nil {
		entry := v.(Entry)
		if shared {
			telemetry.Debug("cache.fetch_shared", map[string]any{"key": key})
		}
		return c.finish(Result{Key: key, Payload: entry.Payload, Freshness: Fresh, Source: SourceAPI, FetchedAt: entry.FetchedAt})
	}

	if found {
		telemetry.Debug("cache.serve_stale", map[string]any{"key": key, "error": err, "fetched_at": prev.FetchedAt})
		return c.finish(Result{Key: key, Payload: prev.Payload, Freshness: Stale, Source: SourceStaleCache, FetchedAt: prev.FetchedAt, Err: err})
	}
	telemetry.Debug("cache.unavailable", map[string]any{"key": key, "error": err})
	return c.finish(Result{Key: key, Freshness: Unavailable, Source: SourceNone, Err: err})
}

// Fetch is GetOrFetch with a typed payload. A payload that cannot be decoded
// into T is reported as Unavailable.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, Result) {
	res := c.GetOrFetch(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	var out T
	if !res.Available() {
		return out, res
	}
	if err := json.Unmarshal(res.Payload, &out); err != nil {
		var zero T
		res.Freshness = Unavailable
		res.Source = SourceNone
		res.Payload = nil
		res.Err = fmt.Errorf("decode cached payload: %w", err)
		return zero, res
	}
	return out, res
}

// Stats summarizes what the store currently holds.
type Stats struct {
	Backend string         `json:"backend"`
	Entries int            `json:"entries"`
	Bytes   int64          `json:"bytes"`
	ByKind  map[string]int `json:"by_kind"`
	Oldest  *time.Time     `json:"oldest,omitempty"`
	Newest  *time.Time     `json:"newest,omitempty"`
}

func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	entries, err := c.store.Entries(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list cache entries: %w", err)
	}
	st := Stats{Backend: c.store.Name(), ByKind: make(map[string]int)}
	for _, e := range entries {
		st.Entries++
		st.Bytes += int64(len(e.Payload))
		st.ByKind[e.Kind()]++
		at := e.FetchedAt
		if st.Oldest == nil || at.Before(*st.Oldest) {
			st.Oldest = &at
		}
		if st.Newest == nil || at.After(*st.Newest) {
			st.Newest = &at
		}
	}
	return st, nil
}

// Clear deletes entries of the given kind, or every entry when kind is empty.
// It returns the number of entries removed.
func (c *Cache) Clear(ctx context.Context, kind string) (int, error) {
	entries, err := c.store.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("list cache entries: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	removed := 0
	var errs []error
	for _, e := range entries {
		if kind != "" && e.Kind() != kind {
			continue
		}
		if err := c.store.Delete(ctx, util.HashKey(e.Key)); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	telemetry.Info("cache.cleared", map[string]any{"kind": kind, "removed": removed, "backend": c.store.Name()})
	return removed, errors.Join(errs...)
}

func (c *Cache) load(ctx context.Context, hash, key string) (Entry, bool) {
	e, err := c.store.Load(ctx, hash)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			telemetry.Warn("cache.load_failed", map[string]any{"key": key, "backend": c.store.Name(), "error": err})
		}
		return Entry{}, false
	}
	return e, true
}

func (c *Cache) finish(r Result) Result {
	metrics.IncCacheResult(string(r.Freshness))
	return r
}
