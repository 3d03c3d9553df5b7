// Package badge renders a language snapshot as a compact SVG badge.
//
// # Layout
//
// The badge has two parts:
//
//   - A horizontal bar of rounded segments, one per language, drawn as thick
//     stroked paths between two round end caps.
//   - A two-column legend below the bar with a colored dot and a
//     "<name>    <percent>%" label for each language.
//
// Segment widths are smoothed before drawing: every value gets +1 and the
// results are rescaled to sum to 100, so a language with a tiny share is
// still visible. Labels always show the unsmoothed percentage.
//
// # Text
//
// Labels are emitted as outline <path> elements produced by [Outliner] from
// the embedded Go fonts, so the badge renders identically without any font
// installed. If outlining fails the label falls back to a <text> element.
//
// Rendering is deterministic: the same snapshot and options always produce
// the same bytes.
package badge
