package stats

import (
	"cmp"
	"math/bits"
	"slices"

	"github.com/matzehuels/langstats/pkg/integrations/colors"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// TopN is the number of languages ranked individually.
const TopN = 5

// hundredths of a percent in a whole
const scale = 10000

// SelectTop ranks the tally and returns at most TopN+1 entries: the largest
// languages by bytes, then an Others bucket for everything left over.
//
// Ties keep the tally's first-seen order. Languages with zero bytes are never
// ranked. Others is present when unranked languages remain or when nothing
// could be ranked at all, so the result is never empty. With total == 0 every
// value is 0.
func SelectTop(t *Tally, total int64, palette colors.Palette) []snapshot.Language {
	entries := t.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Bytes, a.Bytes)
	})

	n := 0
	for n < len(entries) && n < TopN && entries[n].Bytes > 0 {
		n++
	}
	ranked, rest := entries[:n], entries[n:]

	buckets := make([]int64, 0, n+1)
	for _, e := range ranked {
		buckets = append(buckets, e.Bytes)
	}
	withOthers := len(rest) > 0 || n == 0
	if withOthers {
		var leftover int64
		for _, e := range rest {
			leftover += e.Bytes
		}
		buckets = append(buckets, leftover)
	}

	values := shares(buckets, total, withOthers)
	out := make([]snapshot.Language, 0, len(buckets))
	for i, e := range ranked {
		out = append(out, snapshot.Language{
			Name:  e.Name,
			Value: values[i],
			Color: colors.Resolve(palette, e.Name),
		})
	}
	if withOthers {
		out = append(out, snapshot.Language{
			Name:  snapshot.OthersName,
			Value: values[len(values)-1],
			Color: snapshot.OthersColor,
		})
	}
	return out
}

// shares converts byte counts into percentages with two decimals.
//
// Every ranked bucket is rounded on its own, so equal byte counts always show
// equal percentages. When the last bucket is Others it takes whatever the
// ranked entries leave of 100.00. Without Others, plain rounding is kept
// unless it drifts more than 0.01 from 100, in which case the hundredths are
// handed out by largest remainder. Buckets that do not cover total are only
// rounded.
func shares(buckets []int64, total int64, withOthers bool) []float64 {
	out := make([]float64, len(buckets))
	if total <= 0 {
		return out
	}

	var sum int64
	for _, b := range buckets {
		sum += b
	}

	floors := make([]int64, len(buckets))
	rems := make([]int64, len(buckets))
	units := make([]int64, len(buckets))
	var assigned int64
	for i, b := range buckets {
		floors[i], rems[i] = mulDiv(b, scale, total)
		units[i] = floors[i]
		if rems[i] >= total-rems[i] {
			units[i]++
		}
		assigned += units[i]
	}

	switch {
	case sum != total:
	case withOthers:
		last := len(units) - 1
		units[last] = max(scale-(assigned-units[last]), 0)
	case assigned-scale > 1 || scale-assigned > 1:
		units = largestRemainder(floors, rems)
	}

	for i, u := range units {
		out[i] = float64(u) / 100
	}
	return out
}

// largestRemainder hands the hundredths missing from floors to the buckets
// with the largest remainders, earliest first on ties.
func largestRemainder(floors, rems []int64) []int64 {
	units := slices.Clone(floors)
	var assigned int64
	for _, u := range units {
		assigned += u
	}

	order := make([]int, len(units))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(rems[b], rems[a])
	})
	for k := 0; assigned < scale && k < len(order); k++ {
		if rems[order[k]] == 0 {
			break
		}
		units[order[k]]++
		assigned++
	}
	return units
}

// mulDiv returns b*m/d and its remainder using 128-bit intermediates.
// It requires 0 <= b <= d.
func mulDiv(b, m, d int64) (q, r int64) {
	hi, lo := bits.Mul64(uint64(b), uint64(m))
	uq, ur := bits.Div64(hi, lo, uint64(d))
	return int64(uq), int64(ur)
}
