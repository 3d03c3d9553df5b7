package badge

import (
	"strconv"
	"strings"
)

// fmtNum prints geometry with the shortest representation that round-trips.
func fmtNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fmtCoord prints glyph coordinates with at most two decimals.
func fmtCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// fmtPercent prints a label value with exactly two decimals.
func fmtPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
