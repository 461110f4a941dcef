package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RawRow is one record as parsed from the upload: original header strings
// mapped to original cell strings, no coercion applied.
type RawRow map[string]string

// Meta describes a normalization pass over one uploaded snapshot.
type Meta struct {
	SnapshotID      string    `json:"snapshot_id" yaml:"snapshot_id"`
	TotalRaw        int       `json:"total_raw" yaml:"total_raw"`
	TotalKept       int       `json:"total_kept" yaml:"total_kept"`
	HeaderMap       HeaderMap `json:"header_map" yaml:"header_map"`
	MissingRequired []Field   `json:"missing_required" yaml:"missing_required"`
	Unmapped        []string  `json:"unmapped_headers" yaml:"unmapped_headers"`
}

// Table is the canonical, immutable output of one upload. A new upload
// produces a fresh Table; nothing merges across runs.
type Table struct {
	Rows []Row
	Meta Meta
}

// household_id fallbacks tried against raw headers directly when the alias
// map did not yield an id for a row.
var householdIDFallbacks = []string{"household_id", "hh_id", "account_id", "customer_id", "policyholder_id"}

// Normalize converts raw rows into the canonical table. Rows without a
// resolvable household_id are dropped entirely.
func Normalize(raws []RawRow, res Resolution) Table {
	t := Table{
		Meta: Meta{
			SnapshotID:      uuid.NewString(),
			TotalRaw:        len(raws),
			HeaderMap:       res.HeaderMap,
			MissingRequired: res.MissingRequired,
			Unmapped:        res.Unmapped,
		},
	}
	for _, raw := range raws {
		row, ok := NormalizeRow(raw, res.HeaderMap)
		if !ok {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	t.Meta.TotalKept = len(t.Rows)
	return t
}

// NormalizeRow coerces a single raw row. ok is false when no household_id
// could be resolved, including via the raw-header fallbacks.
func NormalizeRow(raw RawRow, hm HeaderMap) (Row, bool) {
	var row Row
	for rawKey, val := range raw {
		canon, ok := hm[rawKey]
		if !ok {
			continue
		}
		setField(&row, canon, val)
	}

	if row.HouseholdID == "" {
		for _, key := range householdIDFallbacks {
			if v, ok := lookupFold(raw, key); ok && strings.TrimSpace(v) != "" {
				row.HouseholdID = strings.TrimSpace(v)
				break
			}
		}
	}
	if row.HouseholdID == "" {
		return Row{}, false
	}
	return row, true
}

func lookupFold(raw RawRow, key string) (string, bool) {
	for k, v := range raw {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return v, true
		}
	}
	return "", false
}

func setField(row *Row, f Field, val string) {
	switch f {
	case FieldHouseholdID:
		row.HouseholdID = strings.TrimSpace(val)
	case FieldName:
		row.Name = strings.TrimSpace(val)
	case FieldEmail:
		row.Email = strings.TrimSpace(val)
	case FieldRemarketReason:
		row.RemarketReason = strings.TrimSpace(val)
	case FieldServiceChannel:
		row.ServiceChannel = strings.TrimSpace(val)
	case FieldPrimaryCarrier:
		row.PrimaryCarrier = strings.TrimSpace(val)
	case FieldSecondaryCarrier:
		row.SecondaryCarrier = strings.TrimSpace(val)
	case FieldSegmentTier:
		row.SegmentTier = strings.TrimSpace(val)
	case FieldOfficeLocation:
		row.OfficeLocation = strings.TrimSpace(val)
	case FieldServiceManager:
		row.ServiceManager = strings.TrimSpace(val)

	case FieldHomeFlag:
		row.HomeFlag = toFlag(val)
	case FieldAutoFlag:
		row.AutoFlag = toFlag(val)
	case FieldUmbrellaFlag:
		row.UmbrellaFlag = toFlag(val)
	case FieldBundledFlag:
		row.BundledFlag = toFlag(val)
	case FieldBundleDiscountFlag:
		row.BundleDiscountFlag = toFlag(val)
	case FieldSafeDriverFlag:
		row.SafeDriverFlag = toFlag(val)
	case FieldEquipmentBreakdownFlag:
		row.EquipmentBreakdownFlag = toFlag(val)
	case FieldKeyFobReplacementFlag:
		row.KeyFobReplacementFlag = toFlag(val)
	case FieldRefrigeratedProductsFlag:
		row.RefrigeratedProductsFlag = toFlag(val)
	case FieldRoofSurfacingLossSettlemnt:
		row.RoofSurfacingLossSettlement = toFlag(val)
	case FieldRetainedLastTermFlag:
		row.RetainedLastTermFlag = toFlag(val)

	case FieldLinesCount:
		row.LinesCount = toNum(val)
	case FieldWaterBackupLimit:
		row.WaterBackupLimit = toNum(val)
	case FieldServiceLineCoverageLimit:
		row.ServiceLineCoverageLimit = toNum(val)
	case FieldRefrigeratedProductsLimit:
		row.RefrigeratedProductsLimit = toNum(val)
	case FieldServiceTouches12m:
		row.ServiceTouches12m = toNum(val)
	case FieldAvgMinutesPerTouch:
		row.AvgMinutesPerTouch = toNum(val)
	case FieldEstMinutesPerRemarket:
		row.EstMinutesPerRemarket = toNum(val)
	case FieldRemarkets12m:
		row.Remarkets12m = toNum(val)
	case FieldClaimsOpenCount:
		row.ClaimsOpenCount = toNum(val)
	case FieldClaimsClosed12m:
		row.ClaimsClosed12m = toNum(val)
	case FieldWrittenPremiumTotal:
		row.WrittenPremiumTotal = toNum(val)
	case FieldCommissionRatePct:
		row.CommissionRatePct = toNum(val)
	case FieldTenureYears:
		row.TenureYears = toNum(val)
	case FieldDataConfidence:
		row.DataConfidence = toNum(val)
	case FieldChurnRiskScore:
		row.ChurnRiskScore = toNum(val)

	case FieldRenewalDate:
		row.RenewalDate = toDate(val)
	case FieldLastReviewedDate:
		row.LastReviewedDate = toDate(val)
	}
}

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// toNum strips currency symbols, thousands separators and other noise
// before parsing. Unparseable cells become nil, never zero.
func toNum(v string) *float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	s = nonNumericRe.ReplaceAllString(s, "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func toFlag(v string) *int {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" {
		return nil
	}
	switch s {
	case "1", "y", "yes", "true", "t":
		one := 1
		return &one
	case "0", "n", "no", "false", "f":
		zero := 0
		return &zero
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := 0
	if f != 0 {
		n = 1
	}
	return &n
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
}

func toDate(v string) *time.Time {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return &t
		}
	}
	// Spreadsheet date cells often arrive as Excel serial numbers.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 20000 && f < 80000 {
		t := excelEpoch.AddDate(0, 0, int(f))
		return &t
	}
	return nil
}

// excelEpoch is day 0 of the 1900 date system, shifted to absorb the
// fictitious 1900 leap day.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
