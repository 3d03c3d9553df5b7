package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/pkg/snapshot"
)

var (
	topHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	topDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	topErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// tickInterval controls how often the freshness countdown redraws.
const tickInterval = time.Second

// snapshotSource is the part of the cache gate the top view drives.
type snapshotSource interface {
	Snapshot(ctx context.Context) (*snapshot.Snapshot, bool, error)
	Refresh(ctx context.Context) (*snapshot.Snapshot, error)
	Remaining(s *snapshot.Snapshot) time.Duration
	MaxAge() time.Duration
}

// topCommand creates the interactive ranking view.
func (c *CLI) topCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the language ranking interactively",
		Long:  `Show the language ranking in a live view. Press r to force a refresh and q to quit.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gate, store, _, err := c.newGate(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			p := tea.NewProgram(NewTopModel(ctx, gate), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(TopModel); ok && m.Err != nil {
				return m.Err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or write the snapshot store")
	return cmd
}

// =============================================================================
// TopModel - Live language ranking
// =============================================================================

type snapshotMsg struct {
	snap      *snapshot.Snapshot
	refreshed bool
	err       error
}

type tickMsg time.Time

// TopModel is the bubbletea model for the live ranking view.
type TopModel struct {
	ctx    context.Context
	source snapshotSource
	now    func() time.Time

	Snapshot  *snapshot.Snapshot
	Refreshed bool
	Loading   bool
	Err       error

	failedAt time.Time // last failed load; zero after a success
}

// NewTopModel creates a model that reads snapshots from source.
func NewTopModel(ctx context.Context, source snapshotSource) TopModel {
	return TopModel{ctx: ctx, source: source, now: time.Now, Loading: true}
}

func (m TopModel) Init() tea.Cmd {
	return tea.Batch(m.load(false), tick())
}

func (m TopModel) load(force bool) tea.Cmd {
	return func() tea.Msg {
		if force {
			snap, err := m.source.Refresh(m.ctx)
			return snapshotMsg{snap: snap, refreshed: true, err: err}
		}
		snap, refreshed, err := m.source.Snapshot(m.ctx)
		return snapshotMsg{snap: snap, refreshed: refreshed, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m TopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.Loading {
				return m, nil
			}
			m.Loading = true
			return m, m.load(true)
		}
	case snapshotMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.err != nil {
			m.failedAt = m.now()
			return m, nil
		}
		m.failedAt = time.Time{}
		m.Snapshot = msg.snap
		m.Refreshed = msg.refreshed
	case tickMsg:
		if m.autoReload() {
			m.Loading = true
			return m, tea.Batch(m.load(false), tick())
		}
		return m, tick()
	}
	return m, nil
}

// autoReload reports whether a tick should reload a stale snapshot. After a
// failed reload the view waits one freshness window before retrying on its
// own; r retries immediately.
func (m TopModel) autoReload() bool {
	if m.Loading || m.Snapshot == nil || m.source.Remaining(m.Snapshot) > 0 {
		return false
	}
	return m.failedAt.IsZero() || m.now().Sub(m.failedAt) >= m.source.MaxAge()
}

func (m TopModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Top Languages"))
	b.WriteString("\n")
	b.WriteString(topDimStyle.Render("r refresh  q quit"))
	b.WriteString("\n\n")

	if m.Snapshot == nil {
		switch {
		case m.Err != nil:
			b.WriteString(topErrorStyle.Render(iconError + " " + m.Err.Error()))
		case m.Loading:
			b.WriteString(topDimStyle.Render("Fetching language statistics..."))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.table().Render())
	b.WriteString("\n\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	return b.String()
}

func (m TopModel) table() *table.Table {
	langs := m.Snapshot.Languages
	rows := make([][]string, len(langs))
	for i, l := range langs {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			l.Name,
			languageBar(l, barWidth),
			fmt.Sprintf("%6.2f%%", l.Value),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Language", "Share", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return topHeaderStyle
			case col == 0:
				return topDimStyle
			case col == 3:
				return StyleNumber
			case col == 1 && row < len(langs):
				return lipgloss.NewStyle().Foreground(lipgloss.Color(langs[row].Color))
			}
			return lipgloss.NewStyle()
		})
}

func (m TopModel) status() string {
	if m.Loading {
		return topDimStyle.Render("  refreshing...")
	}
	line := snapshotStatus(m.Snapshot, m.Refreshed, m.source.Remaining(m.Snapshot), m.now())
	if m.Err != nil {
		line += "\n" + topErrorStyle.Render("  "+iconError+" "+m.Err.Error())
	}
	return line
}
