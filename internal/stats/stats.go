// Package stats provides the population statistics shared by insight rules:
// floor-indexed percentiles, means over defined values, and per-group
// aggregates used for group-relative thresholds.
package stats

import (
	"math"
	"sort"
)

// Percentile returns the value at the floor-indexed position
// floor(p/100 * n) of the ascending-sorted defined values, clamped to the
// last element, so p=0 is the minimum and p=100 the maximum. NaN and Inf
// inputs are excluded. Empty input returns 0.
func Percentile(values []float64, p float64) float64 {
	xs := finite(values)
	if len(xs) == 0 {
		return 0
	}
	sort.Float64s(xs)
	idx := int(math.Floor(p / 100 * float64(len(xs))))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(xs) {
		idx = len(xs) - 1
	}
	return xs[idx]
}

// Mean is the arithmetic mean over finite values only; empty input returns 0.
func Mean(values []float64) float64 {
	xs := finite(values)
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// GroupAgg accumulates one group's defined values.
type GroupAgg struct {
	Count int
	Sum   float64
}

// Mean returns the group mean, 0 for an empty group.
func (g GroupAgg) Mean() float64 {
	if g.Count == 0 {
		return 0
	}
	return g.Sum / float64(g.Count)
}

// GroupBy buckets values by key. Entries where keyFn returns "" or valFn
// reports no defined value are skipped.
func GroupBy[T any](items []T, keyFn func(T) string, valFn func(T) (float64, bool)) map[string]GroupAgg {
	out := map[string]GroupAgg{}
	for _, it := range items {
		key := keyFn(it)
		if key == "" {
			continue
		}
		v, ok := valFn(it)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		g := out[key]
		g.Count++
		g.Sum += v
		out[key] = g
	}
	return out
}

// OutlierGroups returns the keys of groups whose mean strictly exceeds
// multiple × popMean, sorted for deterministic output. The multiple is a
// per-rule constant (1.5, 1.75 or 2.0 in the catalog), not a global.
func OutlierGroups(groups map[string]GroupAgg, popMean, multiple float64) []string {
	var out []string
	for k, g := range groups {
		if g.Count == 0 {
			continue
		}
		if g.Mean() > multiple*popMean {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
