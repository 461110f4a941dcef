package window

import (
	"sort"
	"time"

	"github.com/bundlebench/bundlebench/internal/insight"
)

// upcomingDays is the outreach horizon for the ranked list.
const upcomingDays = 60

// TopN returns the n highest-priority upcoming insights: detection date
// in [today, today+60d), ordered by severity descending, then impact
// descending, then detection date ascending. The sort is stable so equal
// insights keep catalog/input order.
func TopN(insights []insight.Insight, n int, now time.Time) []insight.Insight {
	today := midnight(now)
	horizon := today.AddDate(0, 0, upcomingDays)

	upcoming := make([]insight.Insight, 0, len(insights))
	for _, ins := range insights {
		d := ins.DetectionDate
		if d.Before(today) || !d.Before(horizon) {
			continue
		}
		upcoming = append(upcoming, ins)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Impact != b.Impact {
			return a.Impact > b.Impact
		}
		return a.DetectionDate.Before(b.DetectionDate)
	})

	if n >= 0 && len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}
