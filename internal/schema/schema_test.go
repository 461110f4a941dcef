package schema

import (
	"testing"
	"time"
)

func TestResolveAliases(t *testing.T) {
	headers := []string{"HH_ID", "Num_Lines", "renewal_date", "touches_12m", "AHT_min", "remarket_minutes_est", "Remarkets", "mystery_column"}
	res := Resolve(headers)

	want := map[string]Field{
		"HH_ID":                FieldHouseholdID,
		"Num_Lines":            FieldLinesCount,
		"renewal_date":         FieldRenewalDate,
		"touches_12m":          FieldServiceTouches12m,
		"AHT_min":              FieldAvgMinutesPerTouch,
		"remarket_minutes_est": FieldEstMinutesPerRemarket,
		"Remarkets":            FieldRemarkets12m,
	}
	for h, f := range want {
		got, ok := res.HeaderMap[h]
		if !ok {
			t.Fatalf("header %q not resolved", h)
		}
		if got != f {
			t.Fatalf("header %q resolved to %q, want %q", h, got, f)
		}
	}
	if len(res.MissingRequired) != 0 {
		t.Fatalf("unexpected missing required: %v", res.MissingRequired)
	}
	if len(res.Unmapped) != 1 || res.Unmapped[0] != "mystery_column" {
		t.Fatalf("unmapped = %v, want [mystery_column]", res.Unmapped)
	}
}

func TestResolveMissingRequired(t *testing.T) {
	res := Resolve([]string{"household_id", "lines_count"})
	if len(res.MissingRequired) == 0 {
		t.Fatal("expected missing required fields")
	}
	for _, f := range res.MissingRequired {
		if f == FieldHouseholdID || f == FieldLinesCount {
			t.Fatalf("field %q reported missing but was present", f)
		}
	}
}

func TestNormalizeCoercions(t *testing.T) {
	headers := []string{"household_id", "lines_count", "renewal_date", "service_touches_12m", "avg_minutes_per_touch", "est_minutes_per_remarket", "remarkets_12m", "home_flag", "written_premium_total"}
	res := Resolve(headers)

	raws := []RawRow{
		{
			"household_id":             "HH-001",
			"lines_count":              "2",
			"renewal_date":             "2026-10-15",
			"service_touches_12m":      "4",
			"avg_minutes_per_touch":    "12.5",
			"est_minutes_per_remarket": "45",
			"remarkets_12m":            "1",
			"home_flag":                "Yes",
			"written_premium_total":    "$3,200.50",
		},
		{
			"household_id": "HH-002",
			"lines_count":  "not a number",
			"home_flag":    "maybe",
		},
		{
			// no id anywhere, dropped
			"lines_count": "1",
		},
	}
	table := Normalize(raws, res)

	if table.Meta.TotalRaw != 3 || table.Meta.TotalKept != 2 {
		t.Fatalf("raw/kept = %d/%d, want 3/2", table.Meta.TotalRaw, table.Meta.TotalKept)
	}
	if table.Meta.SnapshotID == "" {
		t.Fatal("snapshot id not assigned")
	}

	r := table.Rows[0]
	if r.HouseholdID != "HH-001" {
		t.Fatalf("household id = %q", r.HouseholdID)
	}
	if got := NumOr(r.LinesCount, -1); got != 2 {
		t.Fatalf("lines_count = %v, want 2", got)
	}
	if got := NumOr(r.WrittenPremiumTotal, -1); got != 3200.50 {
		t.Fatalf("premium = %v, want 3200.50", got)
	}
	if !FlagIs(r.HomeFlag, 1) {
		t.Fatal("home_flag Yes should coerce to 1")
	}
	if r.RenewalDate == nil || !r.RenewalDate.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("renewal date = %v", r.RenewalDate)
	}

	r2 := table.Rows[1]
	if r2.LinesCount != nil {
		t.Fatalf("unparseable lines_count should be nil, got %v", *r2.LinesCount)
	}
	if r2.HomeFlag != nil {
		t.Fatalf("unparseable flag should be nil, got %v", *r2.HomeFlag)
	}
}

func TestNormalizeHouseholdIDFallback(t *testing.T) {
	// Header maps nothing, but a raw Customer_ID column still identifies the row.
	raws := []RawRow{{"Customer_ID": " C-9 ", "whatever": "x"}}
	row, ok := NormalizeRow(raws[0], HeaderMap{})
	if !ok {
		t.Fatal("row with customer_id should be kept")
	}
	if row.HouseholdID != "C-9" {
		t.Fatalf("household id = %q, want C-9", row.HouseholdID)
	}
}

func TestToDateExcelSerial(t *testing.T) {
	d := toDate("45931")
	if d == nil {
		t.Fatal("excel serial should parse")
	}
	if d.Year() != 2025 {
		t.Fatalf("serial 45931 parsed to %v", d)
	}
	if toDate("12") != nil {
		t.Fatal("small numbers must not become dates")
	}
}

func TestRequiredFields(t *testing.T) {
	req := RequiredFields()
	if len(req) != 7 {
		t.Fatalf("required fields = %d, want 7", len(req))
	}
	if req[0] != FieldHouseholdID {
		t.Fatalf("first required = %q", req[0])
	}
}
