package stats

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/langstats/pkg/integrations/github"
	"github.com/matzehuels/langstats/pkg/observability"
)

// RepoSource lists repositories and their language breakdowns.
// *github.Client implements it.
type RepoSource interface {
	ListRepos(ctx context.Context, user string) ([]github.Repo, error)
	Languages(ctx context.Context, owner, repo string) (github.Languages, error)
}

// Aggregator sums language byte counts across an account's repositories.
type Aggregator struct {
	source RepoSource
	logger *log.Logger
}

// NewAggregator creates an aggregator reading from source.
func NewAggregator(source RepoSource, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{source: source, logger: logger}
}

// Aggregate fetches every repository of user and returns the merged tally
// and its byte total. One request per repository runs concurrently; the
// first failure cancels the others and fails the aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, user string) (*Tally, int64, error) {
	repos, err := a.source.ListRepos(ctx, user)
	if err != nil {
		return nil, 0, fmt.Errorf("list repos: %w", err)
	}
	a.logger.Debug("listed repositories", "user", user, "count", len(repos))

	partials := make([]*Tally, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	for i, repo := range repos {
		g.Go(func() error {
			langs, err := a.source.Languages(gctx, user, repo.Name)
			if err != nil {
				return fmt.Errorf("languages of %s: %w", repo.Name, err)
			}
			t := NewTally()
			for _, l := range langs {
				t.Add(l.Name, l.Bytes)
			}
			partials[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	tally := NewTally()
	for _, p := range partials {
		tally.Merge(p)
	}
	total := tally.Total()

	observability.Refresh().OnAggregate(ctx, len(repos), tally.Len(), total)
	a.logger.Debug("aggregated languages", "repos", len(repos), "languages", tally.Len(), "bytes", total)
	return tally, total, nil
}
