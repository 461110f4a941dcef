package insight

import (
	"time"

	"github.com/bundlebench/bundlebench/internal/schema"
)

// Env is the evaluation context shared by all rules: the immutable
// canonical table, the normalization metadata, and the injected reference
// time. Rules only read from it.
type Env struct {
	Rows []schema.Row
	Meta schema.Meta
	Now  time.Time
}

// N is the household count.
func (e *Env) N() int { return len(e.Rows) }

// DaysUntil returns whole days from the reference time to t; undefined
// dates sort far into the future so "within X days" predicates never match.
func (e *Env) DaysUntil(t *time.Time) int {
	if t == nil {
		return 999999
	}
	return int(t.Sub(e.Now).Hours() / 24)
}

// DaysSince returns whole days from t to the reference time; undefined
// dates report a very large age.
func (e *Env) DaysSince(t *time.Time) int {
	if t == nil {
		return 999999
	}
	return int(e.Now.Sub(*t).Hours() / 24)
}

// Outcome is one rule's evaluation: the aggregate summary shown in reports
// plus the matched households and the insights derived from them.
type Outcome struct {
	RuleID     int       `json:"id" yaml:"id"`
	Key        string    `json:"key" yaml:"key"`
	Title      string    `json:"title" yaml:"title"`
	Definition string    `json:"definition" yaml:"definition"`
	Category   Category  `json:"category" yaml:"category"`
	Summary    string    `json:"summary" yaml:"summary"`
	Severity   Severity  `json:"severity" yaml:"severity"`
	Matched    []int     `json:"-" yaml:"-"` // indices into Env.Rows
	Insights   []Insight `json:"-" yaml:"-"`
}

// MatchedRows resolves the matched indices against the evaluated table.
func (o *Outcome) MatchedRows(rows []schema.Row) []schema.Row {
	out := make([]schema.Row, 0, len(o.Matched))
	for _, i := range o.Matched {
		out = append(out, rows[i])
	}
	return out
}

// result is what a rule's eval function produces before the engine attaches
// catalog metadata and expands matches into insights.
type result struct {
	matched []int
	summary string
	sev     Severity
	// rowSeverity overrides the rule-level severity per matched row.
	rowSeverity func(schema.Row) Severity
	// rowImpact supplies the optional ranking magnitude per matched row.
	rowImpact func(schema.Row) float64
}

// Report is the full engine output for one snapshot: catalog-ordered
// outcomes and the flat insight list consumed by the window/rank layer.
type Report struct {
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
	Insights []Insight `json:"insights" yaml:"insights"`
}

// Evaluate runs the whole catalog in id order against the table. Rules are
// independent and read-only; population statistics are recomputed inside
// each rule against the rows it was handed, never cached across calls.
func Evaluate(table schema.Table, now time.Time) Report {
	env := &Env{Rows: table.Rows, Meta: table.Meta, Now: now}
	rep := Report{Outcomes: make([]Outcome, 0, len(catalog))}

	for _, rule := range catalog {
		res := rule.eval(env)
		out := Outcome{
			RuleID:     rule.ID,
			Key:        rule.Key,
			Title:      rule.Title,
			Definition: rule.Definition,
			Category:   rule.Category,
			Summary:    res.summary,
			Severity:   res.sev,
			Matched:    res.matched,
		}
		for _, idx := range res.matched {
			row := env.Rows[idx]
			ins := Insight{
				RuleID:        rule.ID,
				Title:         rule.Title,
				HouseholdID:   row.HouseholdID,
				DetectionDate: detectionDate(row, now),
				Category:      rule.Category,
				Severity:      res.sev,
			}
			if res.rowSeverity != nil {
				ins.Severity = res.rowSeverity(row)
			}
			if res.rowImpact != nil {
				ins.Impact = res.rowImpact(row)
			}
			out.Insights = append(out.Insights, ins)
		}
		rep.Outcomes = append(rep.Outcomes, out)
		rep.Insights = append(rep.Insights, out.Insights...)
	}
	return rep
}

// detectionDate is the row's renewal date when present, else the reference
// time: rules without a natural date flag "now".
func detectionDate(row schema.Row, now time.Time) time.Time {
	if row.RenewalDate != nil {
		return *row.RenewalDate
	}
	return now
}
