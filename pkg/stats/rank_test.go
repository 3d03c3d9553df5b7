package stats

import (
	"math"
	"testing"

	"github.com/matzehuels/langstats/pkg/integrations/colors"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

func tallyOf(entries ...Entry) *Tally {
	t := NewTally()
	for _, e := range entries {
		t.Add(e.Name, e.Bytes)
	}
	return t
}

func sum(langs []snapshot.Language) float64 {
	var s float64
	for _, l := range langs {
		s += l.Value
	}
	return math.Round(s*100) / 100
}

func TestSelectTop_TwoLanguages(t *testing.T) {
	tally := tallyOf(Entry{"A", 80}, Entry{"B", 20})
	got := SelectTop(tally, tally.Total(), nil)

	want := []snapshot.Language{
		{Name: "A", Value: 80, Color: colors.DefaultColor},
		{Name: "B", Value: 20, Color: colors.DefaultColor},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSelectTop_TiesKeepInsertionOrder(t *testing.T) {
	names := []string{"L1", "L2", "L3", "L4", "L5", "L6", "L7"}
	tally := NewTally()
	for _, n := range names {
		tally.Add(n, 100)
	}

	got := SelectTop(tally, tally.Total(), nil)
	if len(got) != TopN+1 {
		t.Fatalf("got %d entries, want %d", len(got), TopN+1)
	}
	for i := 0; i < TopN; i++ {
		if got[i].Name != names[i] {
			t.Errorf("rank %d = %s, want %s", i, got[i].Name, names[i])
		}
	}

	// Equal bytes show equal shares; Others takes the rounding residue.
	wantValues := []float64{14.29, 14.29, 14.29, 14.29, 14.29, 28.55}
	for i, v := range wantValues {
		if got[i].Value != v {
			t.Errorf("value[%d] = %v, want %v", i, got[i].Value, v)
		}
	}

	others := got[TopN]
	if others.Name != snapshot.OthersName || others.Color != snapshot.OthersColor {
		t.Errorf("last entry = %+v, want Others bucket", others)
	}
	if s := sum(got); s != 100 {
		t.Errorf("sum = %v, want 100", s)
	}
}

func TestSelectTop_Empty(t *testing.T) {
	got := SelectTop(NewTally(), 0, nil)
	if len(got) != 1 {
		t.Fatalf("got %+v, want a single Others entry", got)
	}
	if got[0].Name != snapshot.OthersName || got[0].Value != 0 {
		t.Errorf("got %+v, want Others with value 0", got[0])
	}
	if math.IsNaN(got[0].Value) {
		t.Error("value must not be NaN")
	}
}

func TestSelectTop_ZeroBytesNeverRanked(t *testing.T) {
	tally := tallyOf(Entry{"Go", 0}, Entry{"Shell", 0})
	got := SelectTop(tally, 0, nil)
	if len(got) != 1 || got[0].Name != snapshot.OthersName {
		t.Fatalf("got %+v, want only Others", got)
	}

	tally = tallyOf(Entry{"Empty", 0}, Entry{"Go", 10})
	got = SelectTop(tally, 10, nil)
	if got[0].Name != "Go" || got[0].Value != 100 {
		t.Errorf("got[0] = %+v, want Go at 100", got[0])
	}
	if len(got) != 2 || got[1].Name != snapshot.OthersName || got[1].Value != 0 {
		t.Errorf("zero-byte language should land in Others, got %+v", got)
	}
}

func TestSelectTop_Properties(t *testing.T) {
	tallies := []*Tally{
		tallyOf(Entry{"A", 1}, Entry{"B", 1}, Entry{"C", 1}),
		tallyOf(Entry{"Go", 912345}, Entry{"Python", 33333}, Entry{"Shell", 17},
			Entry{"C", 7777}, Entry{"Makefile", 3}, Entry{"Dockerfile", 1}, Entry{"HTML", 1}),
		tallyOf(Entry{"A", 1}, Entry{"B", 2}, Entry{"C", 3}, Entry{"D", 4}, Entry{"E", 5},
			Entry{"F", 6}, Entry{"G", 7}, Entry{"H", 8}, Entry{"I", 9}),
		tallyOf(Entry{"Huge", math.MaxInt64 / 4}, Entry{"Tiny", 1}),
	}

	for i, tally := range tallies {
		got := SelectTop(tally, tally.Total(), colors.Fallback())

		if len(got) > TopN+1 {
			t.Errorf("case %d: %d entries, want at most %d", i, len(got), TopN+1)
		}
		s := sum(got)
		if got[len(got)-1].Name == snapshot.OthersName && s != 100 {
			t.Errorf("case %d: sum = %v, want exactly 100 with Others", i, s)
		}
		if math.Abs(s-100) > 0.01+1e-9 {
			t.Errorf("case %d: sum = %v, want within 0.01 of 100", i, s)
		}

		seen := map[string]bool{}
		for _, l := range got {
			if seen[l.Name] {
				t.Errorf("case %d: duplicate %s", i, l.Name)
			}
			seen[l.Name] = true
			if l.Value < 0 || l.Value > 100 {
				t.Errorf("case %d: %s value %v out of range", i, l.Name, l.Value)
			}
			if l.Color == "" {
				t.Errorf("case %d: %s has no color", i, l.Name)
			}
		}

		for j := 1; j < len(got); j++ {
			if got[j].Name == snapshot.OthersName {
				continue
			}
			a, _ := tally.Get(got[j-1].Name)
			b, _ := tally.Get(got[j].Name)
			if a < b {
				t.Errorf("case %d: %s ranked above larger %s", i, got[j-1].Name, got[j].Name)
			}
		}
	}
}

func TestSelectTop_WithinOneHundredth(t *testing.T) {
	tally := tallyOf(Entry{"A", 1}, Entry{"B", 1}, Entry{"C", 1})
	got := SelectTop(tally, 3, nil)
	for _, l := range got {
		exact := 100.0 / 3
		if math.Abs(l.Value-exact) > 0.01+1e-9 {
			t.Errorf("%s = %v, more than 0.01 from %v", l.Name, l.Value, exact)
		}
	}
}

func TestSelectTop_Colors(t *testing.T) {
	tally := tallyOf(Entry{"Go", 3}, Entry{"Rust", 2}, Entry{"Unlisted", 1})
	got := SelectTop(tally, 6, colors.Palette{"Go": "#123456"})

	want := map[string]string{
		"Go":       "#123456",
		"Rust":     "#dea584",
		"Unlisted": colors.DefaultColor,
	}
	for _, l := range got {
		if l.Color != want[l.Name] {
			t.Errorf("%s color = %s, want %s", l.Name, l.Color, want[l.Name])
		}
	}
}

func TestShares_TotalMismatch(t *testing.T) {
	got := shares([]int64{1, 1}, 3, true)
	if got[0] != 33.33 || got[1] != 33.33 {
		t.Errorf("shares = %v, want per-entry rounding", got)
	}
}

func TestSelectTop_EqualBytesEqualShares(t *testing.T) {
	tally := tallyOf(Entry{"A", 1}, Entry{"B", 1}, Entry{"C", 1})
	got := SelectTop(tally, tally.Total(), nil)

	if len(got) != 3 {
		t.Fatalf("got %+v, want three entries and no Others", got)
	}
	for _, l := range got {
		if l.Value != 33.33 {
			t.Errorf("%s = %v, want 33.33", l.Name, l.Value)
		}
	}
}

func TestShares(t *testing.T) {
	tests := []struct {
		name       string
		buckets    []int64
		total      int64
		withOthers bool
		want       []float64
	}{
		{"exact", []int64{80, 20}, 100, false, []float64{80, 20}},
		{"zero total", []int64{0, 0}, 0, true, []float64{0, 0}},
		{"others absorbs residue", []int64{1, 1, 1}, 3, true, []float64{33.33, 33.33, 33.34}},
		{"others never negative", []int64{2, 1, 0}, 3, true, []float64{66.67, 33.33, 0}},
		// Plain rounding gives 25.00 x4 + 0.02 = 100.02.
		{"drift falls back to largest remainder", []int64{24996, 24996, 24996, 24996, 16}, 100000, false,
			[]float64{25, 25, 25, 24.99, 0.01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shares(tt.buckets, tt.total, tt.withOthers)
			if len(got) != len(tt.want) {
				t.Fatalf("shares() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("shares() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
