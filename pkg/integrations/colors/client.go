package colors

import (
	"context"
	"net/http"
	"time"

	"github.com/matzehuels/langstats/pkg/integrations"
)

// DefaultURL is the raw colors.json of github.com/ozh/github-colors.
const DefaultURL = "https://raw.githubusercontent.com/ozh/github-colors/master/colors.json"

// Client fetches the color registry.
type Client struct {
	*integrations.Client
	url string
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the registry location.
func WithURL(u string) Option { return func(c *Client) { c.url = u } }

// NewClient creates a registry client. A nil hc uses a client with timeout.
func NewClient(hc *http.Client, timeout time.Duration, opts ...Option) *Client {
	if hc == nil {
		hc = integrations.NewHTTPClient(timeout)
	}
	c := &Client{
		Client: integrations.NewClient(hc, nil),
		url:    DefaultURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type entry struct {
	Color *string `json:"color"`
	URL   string  `json:"url"`
}

// Colors downloads the registry. Languages with a null color are omitted.
func (c *Client) Colors(ctx context.Context) (Palette, error) {
	var raw map[string]entry
	if err := c.Get(ctx, c.url, &raw); err != nil {
		return nil, err
	}

	p := make(Palette, len(raw))
	for name, e := range raw {
		if e.Color != nil && *e.Color != "" {
			p[name] = *e.Color
		}
	}
	return p, nil
}
