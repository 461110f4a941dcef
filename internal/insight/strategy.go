package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bundlebench/bundlebench/internal/schema"
	"github.com/bundlebench/bundlebench/internal/stats"
)

// The catalog is built from a small closed set of strategies rather than 50
// bespoke evaluators: absolute-threshold filters, percentile thresholds,
// group-relative thresholds, whole-population aggregates, and placeholders
// for rules whose data never reaches the canonical schema.

type evalFunc func(*Env) result

// rule couples catalog metadata with its evaluation strategy.
type rule struct {
	ID         int
	Key        string
	Title      string
	Definition string
	Category   Category
	eval       evalFunc
}

// severityFunc decides the rule-level severity from match count and table size.
type severityFunc func(matched, total int) Severity

// pct mirrors the presentation-layer rounding: integer percent, 0 when the
// denominator is empty.
func pct(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(float64(n)*100/float64(d) + 0.5)
}

// pctOver flags hi when the match percentage strictly exceeds threshold.
func pctOver(threshold int, hi, lo Severity) severityFunc {
	return func(matched, total int) Severity {
		if pct(matched, total) > threshold {
			return hi
		}
		return lo
	}
}

// countOver flags hi when the match count strictly exceeds threshold.
func countOver(threshold int, hi, lo Severity) severityFunc {
	return func(matched, _ int) Severity {
		if matched > threshold {
			return hi
		}
		return lo
	}
}

// always ignores the counts.
func always(sev Severity) severityFunc {
	return func(_, _ int) Severity { return sev }
}

// countSummary is the default "N households" summary.
func countSummary(matched, _ int) string {
	return fmt.Sprintf("%d households", matched)
}

type filterOpt func(*result)

func withRowSeverity(f func(schema.Row) Severity) filterOpt {
	return func(r *result) { r.rowSeverity = f }
}

func withRowImpact(f func(schema.Row) float64) filterOpt {
	return func(r *result) { r.rowImpact = f }
}

// filterRule matches rows by predicate and badges by count/percentage.
func filterRule(match func(*Env, schema.Row) bool, sev severityFunc, opts ...filterOpt) evalFunc {
	return func(env *Env) result {
		var idx []int
		for i, row := range env.Rows {
			if match(env, row) {
				idx = append(idx, i)
			}
		}
		r := result{
			matched: idx,
			summary: countSummary(len(idx), env.N()),
			sev:     sev(len(idx), env.N()),
		}
		for _, o := range opts {
			o(&r)
		}
		return r
	}
}

// percentileRule matches rows whose value sits at or above the pth
// percentile of the defined population, with an optional extra predicate.
func percentileRule(value func(schema.Row) (float64, bool), p float64, also func(*Env, schema.Row) bool, sev severityFunc, opts ...filterOpt) evalFunc {
	return func(env *Env) result {
		var vals []float64
		for _, row := range env.Rows {
			if v, ok := value(row); ok {
				vals = append(vals, v)
			}
		}
		cut := stats.Percentile(vals, p)
		var idx []int
		if len(vals) > 0 {
			for i, row := range env.Rows {
				v, ok := value(row)
				if !ok || v < cut {
					continue
				}
				if also != nil && !also(env, row) {
					continue
				}
				idx = append(idx, i)
			}
		}
		r := result{
			matched: idx,
			summary: countSummary(len(idx), env.N()),
			sev:     sev(len(idx), env.N()),
		}
		for _, o := range opts {
			o(&r)
		}
		return r
	}
}

// groupRule flags every row belonging to a group whose mean value strictly
// exceeds multiple × the population mean. The summary names the groups.
func groupRule(key func(schema.Row) string, value func(schema.Row) (float64, bool), multiple float64, hi, lo Severity) evalFunc {
	return func(env *Env) result {
		groups := stats.GroupBy(env.Rows, key, value)
		var all []float64
		for _, row := range env.Rows {
			if v, ok := value(row); ok {
				all = append(all, v)
			}
		}
		outliers := stats.OutlierGroups(groups, stats.Mean(all), multiple)
		hit := make(map[string]bool, len(outliers))
		for _, g := range outliers {
			hit[g] = true
		}
		var idx []int
		for i, row := range env.Rows {
			if hit[key(row)] {
				idx = append(idx, i)
			}
		}
		r := result{matched: idx}
		if len(outliers) > 0 {
			r.summary = joinList(outliers)
			r.sev = hi
		} else {
			r.summary = "none"
			r.sev = lo
		}
		return r
	}
}

// aggregateRule computes a population-level verdict with custom matching.
func aggregateRule(eval func(*Env) result) evalFunc {
	return eval
}

// placeholderRule is the degraded-but-non-fatal state for rules whose input
// (an event log, a producer column) is absent from the canonical schema:
// empty match set, severity warn, a clearly labeled summary.
func placeholderRule(need string) evalFunc {
	return func(*Env) result {
		return result{summary: fmt.Sprintf("data not available (%s)", need), sev: SeverityWarn}
	}
}

func joinList(items []string) string {
	sort.Strings(items)
	return strings.Join(items, ", ")
}
