// Package window buckets insights into forward-looking time windows and
// ranks them for outreach. Windows are half-open [start, end): an insight
// dated exactly on a boundary belongs to the later bin.
package window

import (
	"fmt"
	"math"
	"time"

	"github.com/bundlebench/bundlebench/internal/insight"
)

// intensitySaturation is the weighted-count at which a bin's heat pegs to 1.
const intensitySaturation = 10

// severityWeight feeds the intensity score; heavier severities heat a bin faster.
var severityWeight = map[insight.Severity]float64{
	insight.SeverityGood:        0.2,
	insight.SeverityOpportunity: 0.6,
	insight.SeverityWarn:        0.8,
	insight.SeverityUrgent:      1.0,
}

// Bin is one time window with its insight load.
type Bin struct {
	Label string    `json:"label" yaml:"label"`
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`

	Items []insight.Insight `json:"items" yaml:"items"`
	Total int               `json:"total" yaml:"total"`

	CountsBySeverity map[insight.Severity]int `json:"counts_by_severity" yaml:"counts_by_severity"`
	CountsByCategory map[insight.Category]int `json:"counts_by_category" yaml:"counts_by_category"`

	// Intensity is the severity-weighted load normalized to [0, 1].
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

func newBin(label string, start, end time.Time) Bin {
	return Bin{
		Label:            label,
		Start:            start,
		End:              end,
		CountsBySeverity: map[insight.Severity]int{},
		CountsByCategory: map[insight.Category]int{},
	}
}

func (b *Bin) add(ins insight.Insight) {
	b.Items = append(b.Items, ins)
	b.Total++
	b.CountsBySeverity[ins.Severity]++
	b.CountsByCategory[ins.Category]++
}

func (b *Bin) finish() {
	var weighted float64
	for sev, n := range b.CountsBySeverity {
		weighted += severityWeight[sev] * float64(n)
	}
	b.Intensity = math.Min(1, math.Max(0, weighted/intensitySaturation))
}

// FilterCategories keeps insights belonging to one of the given categories.
// An empty category set means no filtering.
func FilterCategories(items []insight.Insight, cats []insight.Category) []insight.Insight {
	if len(cats) == 0 {
		return items
	}
	keep := make(map[insight.Category]bool, len(cats))
	for _, c := range cats {
		keep[c] = true
	}
	out := make([]insight.Insight, 0, len(items))
	for _, it := range items {
		if keep[it.Category] {
			out = append(out, it)
		}
	}
	return out
}

// midnight truncates t to the start of its day in its own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalendarBins lays out months consecutive calendar-month windows starting
// at the first of the reference month and distributes the insights into
// them. Insights dated before the reference day or at/after the horizon are
// dropped.
func CalendarBins(insights []insight.Insight, months int, now time.Time) []Bin {
	ref := midnight(now)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	bins := make([]Bin, 0, months)
	for i := 0; i < months; i++ {
		start := first.AddDate(0, i, 0)
		end := first.AddDate(0, i+1, 0)
		bins = append(bins, newBin(start.Format("Jan 2006"), start, end))
	}
	if len(bins) == 0 {
		return bins
	}
	horizon := bins[len(bins)-1].End

	for _, ins := range insights {
		d := ins.DetectionDate
		if d.Before(ref) || !d.Before(horizon) {
			continue
		}
		for i := range bins {
			if !d.Before(bins[i].Start) && d.Before(bins[i].End) {
				bins[i].add(ins)
				break
			}
		}
	}
	for i := range bins {
		bins[i].finish()
	}
	return bins
}

// dayRangeLabels maps a range size to its two presentation labels.
func dayRangeLabels(rangeDays int) (string, string) {
	switch rangeDays {
	case 15:
		return "Next 15 days", "Days 16–30"
	case 30:
		return "Next 30 days", "Days 31–60"
	case 60:
		return "Next 60 days", "Days 61–120"
	case 90:
		return "Next 90 days", "Days 91–180"
	}
	return fmt.Sprintf("Next %d days", rangeDays),
		fmt.Sprintf("Days %d–%d", rangeDays+1, 2*rangeDays)
}

// DayRangeBins splits upcoming insights into two equal windows of rangeDays
// each, starting today. Insights before today or at/after today+2R are
// dropped.
func DayRangeBins(insights []insight.Insight, rangeDays int, now time.Time) []Bin {
	today := midnight(now)
	mid := today.AddDate(0, 0, rangeDays)
	end := today.AddDate(0, 0, 2*rangeDays)

	nearLabel, farLabel := dayRangeLabels(rangeDays)
	bins := []Bin{
		newBin(nearLabel, today, mid),
		newBin(farLabel, mid, end),
	}

	for _, ins := range insights {
		d := ins.DetectionDate
		switch {
		case d.Before(today) || !d.Before(end):
		case d.Before(mid):
			bins[0].add(ins)
		default:
			bins[1].add(ins)
		}
	}
	for i := range bins {
		bins[i].finish()
	}
	return bins
}
