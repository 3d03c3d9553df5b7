package stats

import (
	"context"
	"errors"
	"net"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/langstats/pkg/errors"
	"github.com/matzehuels/langstats/pkg/integrations"
	"github.com/matzehuels/langstats/pkg/integrations/colors"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// ColorSource provides the language color registry.
// *colors.Client implements it.
type ColorSource interface {
	Colors(ctx context.Context) (colors.Palette, error)
}

// Service computes a fresh language ranking for one account.
// It implements snapshot.Refresher.
type Service struct {
	agg    *Aggregator
	colors ColorSource
	user   string
	logger *log.Logger
}

// Options configures a Service.
type Options struct {
	Logger *log.Logger
}

// NewService creates a service ranking the repositories of user.
// A nil cs colors every language from the embedded fallback palette.
func NewService(src RepoSource, cs ColorSource, user string, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		agg:    NewAggregator(src, logger),
		colors: cs,
		user:   user,
		logger: logger,
	}
}

// Compute aggregates the account's languages and ranks them.
//
// Upstream failures are returned as *errors.Error with ErrCodeNetwork,
// ErrCodeNotFound, or ErrCodeTimeout. A color registry failure is not fatal:
// the ranking falls back to the embedded palette.
func (s *Service) Compute(ctx context.Context) ([]snapshot.Language, error) {
	if err := apperrors.ValidateUsername(s.user); err != nil {
		return nil, err
	}

	tally, total, err := s.agg.Aggregate(ctx, s.user)
	if err != nil {
		return nil, apperrors.Wrap(upstreamCode(err), err, "aggregate languages of %s", s.user)
	}

	return SelectTop(tally, total, s.palette(ctx)), nil
}

func (s *Service) palette(ctx context.Context) colors.Palette {
	if s.colors == nil {
		return nil
	}
	p, err := s.colors.Colors(ctx)
	if err != nil {
		s.logger.Warn("color registry unavailable, using fallback palette", "err", err)
		return nil
	}
	return p
}

func upstreamCode(err error) apperrors.Code {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrCodeTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return apperrors.ErrCodeTimeout
	}
	if errors.Is(err, integrations.ErrNotFound) {
		return apperrors.ErrCodeNotFound
	}
	return apperrors.ErrCodeNetwork
}

var _ snapshot.Refresher = (*Service)(nil)
