// Package colors fetches the language color registry used to paint badge
// segments.
//
// The registry is the community-maintained colors.json from
// github.com/ozh/github-colors, which mirrors GitHub Linguist. It maps a
// language name to {"color": "#rrggbb", "url": ...}; some languages have a
// null color.
//
// [Resolve] never fails: a language missing from the fetched [Palette] is
// looked up in an embedded fallback palette, and finally painted with
// [DefaultColor].
package colors
