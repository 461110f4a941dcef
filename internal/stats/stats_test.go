package stats

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	vals := []float64{10, 20, 30, 40, 50}
	cases := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{50, 30},
		{75, 40},
		{79, 40},
		{80, 50},
		{90, 50},
		{100, 50},
	}
	for _, c := range cases {
		if got := Percentile(vals, c.p); got != c.want {
			t.Fatalf("Percentile(p=%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestPercentileEdge(t *testing.T) {
	if got := Percentile(nil, 90); got != 0 {
		t.Fatalf("empty percentile = %v, want 0", got)
	}
	if got := Percentile([]float64{7}, 90); got != 7 {
		t.Fatalf("single-value percentile = %v, want 7", got)
	}
	// NaN and Inf are excluded from the population
	if got := Percentile([]float64{math.NaN(), math.Inf(1), 5}, 100); got != 5 {
		t.Fatalf("percentile with non-finite = %v, want 5", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Fatalf("mean = %v, want 2", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("empty mean = %v, want 0", got)
	}
	if got := Mean([]float64{math.NaN(), 4}); got != 4 {
		t.Fatalf("mean with NaN = %v, want 4", got)
	}
}

func TestGroupByAndOutliers(t *testing.T) {
	type item struct {
		key string
		val float64
		ok  bool
	}
	items := []item{
		{"a", 10, true},
		{"a", 20, true},
		{"b", 1, true},
		{"b", 3, true},
		{"", 99, true},     // blank key skipped
		{"c", 999, false},  // undefined value skipped
	}
	groups := GroupBy(items,
		func(i item) string { return i.key },
		func(i item) (float64, bool) { return i.val, i.ok })

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if g := groups["a"]; g.Count != 2 || g.Mean() != 15 {
		t.Fatalf("group a = %+v", g)
	}

	// population mean of defined, keyed values: (10+20+1+3)/4 = 8.5
	out := OutlierGroups(groups, 8.5, 1.5)
	if len(out) != 1 || out[0] != "a" {
		t.Fatalf("outliers = %v, want [a]", out)
	}
	// boundary is strict: exactly at multiple*popMean is not an outlier
	if out := OutlierGroups(groups, 10, 1.5); len(out) != 0 {
		t.Fatalf("strict boundary violated: %v", out)
	}
}
