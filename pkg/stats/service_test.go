package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/matzehuels/langstats/pkg/errors"
	"github.com/matzehuels/langstats/pkg/integrations"
	"github.com/matzehuels/langstats/pkg/integrations/colors"
	"github.com/matzehuels/langstats/pkg/integrations/github"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

type fakeColors struct {
	palette colors.Palette
	err     error
}

func (f fakeColors) Colors(ctx context.Context) (colors.Palette, error) {
	return f.palette, f.err
}

func newSource() *fakeSource {
	return &fakeSource{
		repos: repos("api", "site"),
		languages: map[string]github.Languages{
			"api":  {{Name: "Go", Bytes: 600}},
			"site": {{Name: "Go", Bytes: 200}, {Name: "HTML", Bytes: 200}},
		},
	}
}

func TestService_Compute(t *testing.T) {
	svc := NewService(newSource(), fakeColors{palette: colors.Palette{"Go": "#00ADD8", "HTML": "#e34c26"}}, "octocat", Options{})

	got, err := svc.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	want := []snapshot.Language{
		{Name: "Go", Value: 80, Color: "#00ADD8"},
		{Name: "HTML", Value: 20, Color: "#e34c26"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestService_ColorRegistryFailure(t *testing.T) {
	svc := NewService(newSource(), fakeColors{err: integrations.ErrNetwork}, "octocat", Options{})

	got, err := svc.Compute(context.Background())
	if err != nil {
		t.Fatalf("registry failure should not fail the refresh: %v", err)
	}
	if got[0].Color != colors.Resolve(nil, "Go") {
		t.Errorf("Go color = %s, want fallback palette color", got[0].Color)
	}
}

func TestService_Errors(t *testing.T) {
	tests := []struct {
		name string
		user string
		err  error
		want apperrors.Code
	}{
		{"invalid user", "-bad-", nil, apperrors.ErrCodeInvalidUser},
		{"network", "octocat", fmt.Errorf("%w: status 403", integrations.ErrNetwork), apperrors.ErrCodeNetwork},
		{"not found", "octocat", integrations.ErrNotFound, apperrors.ErrCodeNotFound},
		{"timeout", "octocat", fmt.Errorf("%w: %w", integrations.ErrNetwork, context.DeadlineExceeded), apperrors.ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource()
			src.listErr = tt.err
			svc := NewService(src, nil, tt.user, Options{})

			_, err := svc.Compute(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.GetCode(err); code != tt.want {
				t.Errorf("code = %s, want %s", code, tt.want)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("error chain lost cause: %v", err)
			}
		})
	}
}

func TestService_IsRefresher(t *testing.T) {
	store := snapshot.NewMemoryStore()
	gate := snapshot.NewGate(store, NewService(newSource(), nil, "octocat", Options{}))

	snap, refreshed, err := gate.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if !refreshed || len(snap.Languages) != 2 {
		t.Errorf("got refreshed=%v snapshot %+v", refreshed, snap)
	}
}
