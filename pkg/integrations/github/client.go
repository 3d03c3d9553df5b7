package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/matzehuels/langstats/pkg/buildinfo"
	"github.com/matzehuels/langstats/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	reposPerPage = 100
	maxRepoPages = 10
)

// Client provides access to the GitHub API for repository language data.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// WithBaseURL points the client at a different API root (GitHub Enterprise, tests).
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.http = hc } }

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string, opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.http == nil {
		o.http = integrations.NewHTTPClient(o.timeout)
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(o.http, headers),
		baseURL: o.baseURL,
	}
}

// ListRepos retrieves the public repositories of user.
// Results are paginated automatically.
func (c *Client) ListRepos(ctx context.Context, user string) ([]Repo, error) {
	var all []Repo
	for page := 1; page <= maxRepoPages; page++ {
		var repos []Repo
		url := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d",
			c.baseURL, integrations.URLEncode(user), reposPerPage, page)
		if err := c.Get(ctx, url, &repos); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return nil, fmt.Errorf("%w: github user %s", err, user)
			}
			return nil, err
		}

		all = append(all, repos...)
		if len(repos) < reposPerPage {
			break
		}
	}
	return all, nil
}

// Languages retrieves the language breakdown of owner/repo in bytes.
func (c *Client) Languages(ctx context.Context, owner, repo string) (Languages, error) {
	var langs Languages
	url := fmt.Sprintf("%s/repos/%s/%s/languages",
		c.baseURL, integrations.URLEncode(owner), integrations.URLEncode(repo))
	if err := c.Get(ctx, url, &langs); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: github repo %s/%s", err, owner, repo)
		}
		return nil, err
	}
	return langs, nil
}
