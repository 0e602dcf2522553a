package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rai-review-backend/internal/resources/cache"
	"rai-review-backend/internal/shared/util"
)

const (
	defaultGitHubURL = "https://api.github.com"
	userAgent        = "rai-review-backend"
	maxSearchResults = 20
)

// ErrGitHubStatus wraps non-2xx responses from the GitHub API.
var ErrGitHubStatus = errors.New("github api error")

// Repo is the repository metadata surfaced in review documents.
type Repo struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	LastUpdated string   `json:"last_updated,omitempty"`
	LastPushed  string   `json:"last_pushed,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Language    string   `json:"language,omitempty"`
	OpenIssues  int      `json:"open_issues"`
	License     string   `json:"license,omitempty"`
}

type apiRepo struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	UpdatedAt       string   `json:"updated_at"`
	PushedAt        string   `json:"pushed_at"`
	Topics          []string `json:"topics"`
	Language        string   `json:"language"`
	OpenIssuesCount int      `json:"open_issues_count"`
	License         *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

func (a apiRepo) toRepo() Repo {
	r := Repo{
		Name:        a.Name,
		FullName:    a.FullName,
		Description: a.Description,
		URL:         a.HTMLURL,
		Stars:       a.StargazersCount,
		Forks:       a.ForksCount,
		LastUpdated: a.UpdatedAt,
		LastPushed:  a.PushedAt,
		Topics:      a.Topics,
		Language:    a.Language,
		OpenIssues:  a.OpenIssuesCount,
	}
	if a.License != nil {
		r.License = a.License.SPDXID
	}
	return r
}

// GitHub reads repository metadata through the resource cache.
type GitHub struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *cache.Cache
	ttls       cache.TTLs
}

// GitHubOptions configures NewGitHub. Zero values select defaults.
type GitHubOptions struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	TTLs       cache.TTLs
}

func NewGitHub(c *cache.Cache, opts GitHubOptions) *GitHub {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = defaultGitHubURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	ttls := opts.TTLs
	if ttls == nil {
		ttls = cache.DefaultTTLs()
	}
	return &GitHub{baseURL: base, token: opts.Token, httpClient: hc, cache: c, ttls: ttls}
}

// Repo returns metadata for owner/repo. The result reports whether the data
// is fresh, stale or unavailable.
func (g *GitHub) Repo(ctx context.Context, owner, repo string) (Repo, cache.Result) {
	key := util.CacheKey(cache.KindGitHub, owner, repo)
	return cache.Fetch(ctx, g.cache, key, g.ttls.For(cache.KindGitHub), func(ctx context.Context) (Repo, error) {
		var out apiRepo
		path := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
		if err := g.get(ctx, path, &out); err != nil {
			return Repo{}, err
		}
		return out.toRepo(), nil
	})
}

// Search runs a repository search sorted by stars. Results are cached under
// the web search kind.
func (g *GitHub) Search(ctx context.Context, query string, limit int) ([]Repo, cache.Result) {
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	key := util.CacheKey(cache.KindWebSearch, query, strconv.Itoa(limit))
	return cache.Fetch(ctx, g.cache, key, g.ttls.For(cache.KindWebSearch), func(ctx context.Context) ([]Repo, error) {
		q := url.Values{}
		q.Set("q", query)
		q.Set("sort", "stars")
		q.Set("order", "desc")
		q.Set("per_page", strconv.Itoa(limit))
		var out struct {
			Items []apiRepo `json:"items"`
		}
		if err := g.get(ctx, "/search/repositories?"+q.Encode(), &out); err != nil {
			return nil, err
		}
		repos := make([]Repo, 0, len(out.Items))
		for _, item := range out.Items {
			repos = append(repos, item.toRepo())
		}
		return repos, nil
	})
}

func (g *GitHub) get(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", ErrGitHubStatus, path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("github response parse: %w", err)
	}
	return nil
}
