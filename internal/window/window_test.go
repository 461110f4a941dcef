package window

import (
	"math"
	"testing"
	"time"

	"github.com/bundlebench/bundlebench/internal/insight"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func ins(id string, d time.Time, sev insight.Severity) insight.Insight {
	return insight.Insight{
		RuleID:        1,
		HouseholdID:   id,
		DetectionDate: d,
		Category:      insight.CategoryGrowth,
		Severity:      sev,
	}
}

func TestCalendarBinsLayout(t *testing.T) {
	bins := CalendarBins(nil, 12, testNow)
	if len(bins) != 12 {
		t.Fatalf("bins = %d, want 12", len(bins))
	}
	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !bins[0].Start.Equal(first) {
		t.Fatalf("first bin starts %v, want %v", bins[0].Start, first)
	}
	if bins[0].Label != "Mar 2026" {
		t.Fatalf("first label = %q", bins[0].Label)
	}
	// consecutive and disjoint
	for i := 1; i < len(bins); i++ {
		if !bins[i].Start.Equal(bins[i-1].End) {
			t.Fatalf("bin %d start %v != previous end %v", i, bins[i].Start, bins[i-1].End)
		}
	}
	if !bins[11].End.Equal(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("horizon = %v", bins[11].End)
	}
}

func TestCalendarBinsDistribution(t *testing.T) {
	items := []insight.Insight{
		ins("past", testNow.AddDate(0, 0, -30), insight.SeverityUrgent),       // before reference day, dropped
		ins("early-month", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), insight.SeverityWarn), // before ref day, dropped
		ins("today", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), insight.SeverityUrgent),
		ins("april", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), insight.SeverityGood), // boundary goes to April
		ins("beyond", time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), insight.SeverityUrgent), // past horizon, dropped
	}
	bins := CalendarBins(items, 12, testNow)
	if bins[0].Total != 1 {
		t.Fatalf("march total = %d, want 1", bins[0].Total)
	}
	if bins[1].Total != 1 || bins[1].Items[0].HouseholdID != "april" {
		t.Fatalf("april bin = %+v", bins[1])
	}
	var sum int
	for _, b := range bins {
		sum += b.Total
	}
	if sum != 2 {
		t.Fatalf("kept %d insights, want 2", sum)
	}
}

func TestDayRangeBinsBoundaries(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []insight.Insight{
		ins("yesterday", today.AddDate(0, 0, -1), insight.SeverityUrgent), // dropped
		ins("today", today, insight.SeverityUrgent),
		ins("day29", today.AddDate(0, 0, 29), insight.SeverityGood),
		ins("day30", today.AddDate(0, 0, 30), insight.SeverityWarn), // exactly on the split: second bin
		ins("day59", today.AddDate(0, 0, 59), insight.SeverityGood),
		ins("day60", today.AddDate(0, 0, 60), insight.SeverityUrgent), // at the horizon: dropped
	}
	bins := DayRangeBins(items, 30, testNow)
	if len(bins) != 2 {
		t.Fatalf("bins = %d, want 2", len(bins))
	}
	if bins[0].Label != "Next 30 days" || bins[1].Label != "Days 31–60" {
		t.Fatalf("labels = %q, %q", bins[0].Label, bins[1].Label)
	}
	if bins[0].Total != 2 {
		t.Fatalf("near bin total = %d, want 2", bins[0].Total)
	}
	if bins[1].Total != 2 {
		t.Fatalf("far bin total = %d, want 2", bins[1].Total)
	}
	for _, it := range bins[1].Items {
		if it.HouseholdID == "day30" {
			return
		}
	}
	t.Fatal("boundary insight day30 not in second bin")
}

func TestBinCountsAndIntensity(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []insight.Insight{
		ins("u1", today, insight.SeverityUrgent),
		ins("u2", today, insight.SeverityUrgent),
		ins("g1", today, insight.SeverityGood),
	}
	bins := DayRangeBins(items, 30, testNow)
	b := bins[0]
	if b.CountsBySeverity[insight.SeverityUrgent] != 2 || b.CountsBySeverity[insight.SeverityGood] != 1 {
		t.Fatalf("severity counts = %v", b.CountsBySeverity)
	}
	if b.CountsByCategory[insight.CategoryGrowth] != 3 {
		t.Fatalf("category counts = %v", b.CountsByCategory)
	}
	// (2*1.0 + 1*0.2) / 10 = 0.22
	if math.Abs(b.Intensity-0.22) > 1e-9 {
		t.Fatalf("intensity = %v, want 0.22", b.Intensity)
	}
	if bins[1].Intensity != 0 {
		t.Fatalf("empty bin intensity = %v, want 0", bins[1].Intensity)
	}
}

func TestIntensityClamped(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	var items []insight.Insight
	for i := 0; i < 25; i++ {
		items = append(items, ins("h", today, insight.SeverityUrgent))
	}
	bins := DayRangeBins(items, 30, testNow)
	if bins[0].Intensity != 1 {
		t.Fatalf("intensity = %v, want clamped to 1", bins[0].Intensity)
	}
}

func TestDayRangeLabels(t *testing.T) {
	cases := []struct {
		days int
		near string
		far  string
	}{
		{15, "Next 15 days", "Days 16–30"},
		{30, "Next 30 days", "Days 31–60"},
		{60, "Next 60 days", "Days 61–120"},
		{90, "Next 90 days", "Days 91–180"},
		{45, "Next 45 days", "Days 46–90"},
	}
	for _, c := range cases {
		near, far := dayRangeLabels(c.days)
		if near != c.near || far != c.far {
			t.Fatalf("labels(%d) = %q/%q, want %q/%q", c.days, near, far, c.near, c.far)
		}
	}
}

func TestTopNOrdering(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	mk := func(id string, sev insight.Severity, impact float64, days int) insight.Insight {
		i := ins(id, today.AddDate(0, 0, days), sev)
		i.Impact = impact
		return i
	}
	items := []insight.Insight{
		mk("low-opp", insight.SeverityOpportunity, 10, 5),
		mk("urgent-late", insight.SeverityUrgent, 0, 40),
		mk("urgent-early", insight.SeverityUrgent, 0, 3),
		mk("warn", insight.SeverityWarn, 0, 10),
		mk("high-opp", insight.SeverityOpportunity, 80, 20),
		mk("stale", insight.SeverityUrgent, 99, -5),   // in the past, excluded
		mk("horizon", insight.SeverityUrgent, 99, 60), // exactly at the horizon: half-open, excluded
		mk("day59", insight.SeverityGood, 0, 59),
		mk("distant", insight.SeverityUrgent, 99, 90), // beyond 60 days, excluded
	}
	got := TopN(items, 10, testNow)
	want := []string{"urgent-early", "urgent-late", "warn", "high-opp", "low-opp", "day59"}
	if len(got) != len(want) {
		t.Fatalf("ranked %d insights, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].HouseholdID != id {
			t.Fatalf("position %d = %q, want %q", i, got[i].HouseholdID, id)
		}
	}
}

func TestFilterCategories(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	growth := ins("g", today, insight.SeverityGood)
	risk := ins("r", today, insight.SeverityUrgent)
	risk.Category = insight.CategoryRisk
	items := []insight.Insight{growth, risk}

	got := FilterCategories(items, []insight.Category{insight.CategoryRisk})
	if len(got) != 1 || got[0].HouseholdID != "r" {
		t.Fatalf("filtered = %+v", got)
	}
	if got := FilterCategories(items, nil); len(got) != 2 {
		t.Fatalf("nil filter should keep all, got %d", len(got))
	}
}

func TestTopNTruncates(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	var items []insight.Insight
	for i := 0; i < 30; i++ {
		items = append(items, ins("h", today, insight.SeverityUrgent))
	}
	if got := TopN(items, 10, testNow); len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
}
