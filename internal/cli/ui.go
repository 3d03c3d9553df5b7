package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/langstats/pkg/snapshot"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "refreshed"
	iconBar     = "█"
)

// barWidth is the number of cells a 100% language bar spans.
const barWidth = 30

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Language Display
// =============================================================================

// printLanguages writes one line per language: name, colored bar, percentage.
func printLanguages(w io.Writer, langs []snapshot.Language) {
	fmt.Fprint(w, renderLanguages(langs))
}

func renderLanguages(langs []snapshot.Language) string {
	width := 0
	for _, l := range langs {
		width = max(width, lipgloss.Width(l.Name))
	}
	nameStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(width + 2)

	var b strings.Builder
	for _, l := range langs {
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(l.Name))
		b.WriteString(languageBar(l, barWidth))
		b.WriteString(" ")
		b.WriteString(StyleNumber.Render(fmt.Sprintf("%6.2f%%", l.Value)))
		b.WriteString("\n")
	}
	return b.String()
}

// languageBar renders a bar proportional to l.Value in the language color,
// padded with dim cells to width.
func languageBar(l snapshot.Language, width int) string {
	cells := int(l.Value*float64(width)/100 + 0.5)
	cells = min(max(cells, 0), width)
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render(strings.Repeat(iconBar, cells))
	return filled + StyleDim.Render(strings.Repeat("·", width-cells))
}

// printSnapshotStatus prints a single status line for a snapshot.
func printSnapshotStatus(s *snapshot.Snapshot, refreshed bool, remaining time.Duration) {
	fmt.Println(snapshotStatus(s, refreshed, remaining, time.Now()))
}

func snapshotStatus(s *snapshot.Snapshot, refreshed bool, remaining time.Duration, now time.Time) string {
	status := iconCached
	statusStyle := styleCached
	if refreshed {
		status = iconFresh
		statusStyle = styleComputed
	}
	parts := []string{
		statusStyle.Render(status),
		StyleDim.Render(fmt.Sprintf("%d languages", len(s.Languages))),
		StyleDim.Render("updated " + formatRelativeTime(s.Time(), now)),
	}
	if remaining > 0 {
		parts = append(parts, StyleDim.Render("fresh for "+remaining.Round(time.Second).String()))
	} else {
		parts = append(parts, StyleWarning.Render("stale"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// formatRelativeTime renders t relative to now.
func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
