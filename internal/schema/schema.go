package schema

import "time"

// Field is a canonical column name the engine understands everywhere.
type Field string

// Canonical fields. Declaration order here is also alias-resolution
// priority when a header could match more than one field.
const (
	FieldHouseholdID Field = "household_id"
	FieldName        Field = "name"
	FieldEmail       Field = "email"

	FieldHomeFlag     Field = "home_flag"
	FieldAutoFlag     Field = "auto_flag"
	FieldUmbrellaFlag Field = "umbrella_flag"

	FieldLinesCount                 Field = "lines_count"
	FieldBundledFlag                Field = "bundled_flag"
	FieldBundleDiscountFlag         Field = "bundle_discount_flag"
	FieldSafeDriverFlag             Field = "safe_driver_flag"
	FieldWaterBackupLimit           Field = "water_backup_limit"
	FieldServiceLineCoverageLimit   Field = "service_line_coverage_limit"
	FieldEquipmentBreakdownFlag     Field = "equipment_breakdown_flag"
	FieldKeyFobReplacementFlag      Field = "key_fob_replacement_flag"
	FieldRefrigeratedProductsFlag   Field = "refrigerated_products_flag"
	FieldRefrigeratedProductsLimit  Field = "refrigerated_products_limit"
	FieldRoofSurfacingLossSettlemnt Field = "roof_surfacing_loss_settlement"

	FieldRenewalDate      Field = "renewal_date"
	FieldLastReviewedDate Field = "last_reviewed_date"

	FieldServiceTouches12m      Field = "service_touches_12m"
	FieldAvgMinutesPerTouch     Field = "avg_minutes_per_touch"
	FieldEstMinutesPerRemarket  Field = "est_minutes_per_remarket"
	FieldRemarkets12m           Field = "remarkets_12m"
	FieldRemarketReason         Field = "remarket_reason"
	FieldServiceChannel         Field = "service_channel"
	FieldClaimsOpenCount        Field = "claims_open_count"
	FieldClaimsClosed12m        Field = "claims_closed_12m"
	FieldWrittenPremiumTotal    Field = "written_premium_total"
	FieldCommissionRatePct      Field = "commission_rate_pct"
	FieldTenureYears            Field = "tenure_years"
	FieldRetainedLastTermFlag   Field = "retained_last_term_flag"
	FieldPrimaryCarrier         Field = "primary_carrier"
	FieldSecondaryCarrier       Field = "secondary_carrier_optional"
	FieldSegmentTier            Field = "segment_tier"
	FieldOfficeLocation         Field = "office_location"
	FieldDataConfidence         Field = "data_confidence"
	FieldChurnRiskScore         Field = "churn_risk_score_0_1"
	FieldServiceManager         Field = "service_manager"
)

// Kind determines the coercion applied to a field's raw cell values.
type Kind int

const (
	KindString Kind = iota
	KindFlag        // 0/1 semantics
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return "string"
}

// FieldSpec declares one canonical field: its coercion kind and the raw
// header aliases that map to it. Adding a field is a data change here,
// not a new coercion branch.
type FieldSpec struct {
	Field    Field
	Kind     Kind
	Aliases  []string
	Required bool
}

// Fields is the declarative schema, in resolution-priority order. Aliases
// are matched case-insensitively after whitespace trimming.
var Fields = []FieldSpec{
	{FieldHouseholdID, KindString, []string{"household_id", "hh_id", "account_id", "customer_id", "policyholder_id"}, true},
	{FieldName, KindString, []string{"name", "insured_name", "household_name", "client_name"}, false},
	{FieldEmail, KindString, []string{"email", "email_address", "primary_email"}, false},

	{FieldHomeFlag, KindFlag, []string{"home_flag", "home", "has_home", "home_policy_flag"}, false},
	{FieldAutoFlag, KindFlag, []string{"auto_flag", "auto", "has_auto", "auto_policy_flag"}, false},
	{FieldUmbrellaFlag, KindFlag, []string{"umbrella_flag", "umbrella", "has_umbrella"}, false},

	{FieldLinesCount, KindNumber, []string{"lines_count", "num_lines", "lines"}, true},
	{FieldBundledFlag, KindFlag, []string{"bundled_flag", "is_bundled", "bundle_flag"}, false},
	{FieldBundleDiscountFlag, KindFlag, []string{"bundle_discount_flag", "bundle_discount", "bundle_disc_flag"}, false},
	{FieldSafeDriverFlag, KindFlag, []string{"safe_driver_flag", "safe_driver", "safe_driver_disc_flag"}, false},
	{FieldWaterBackupLimit, KindNumber, []string{"water_backup_limit", "water_backup", "water_backup_$"}, false},
	{FieldServiceLineCoverageLimit, KindNumber, []string{"service_line_coverage_limit", "service_line_limit", "service_line_$"}, false},
	{FieldEquipmentBreakdownFlag, KindFlag, []string{"equipment_breakdown_flag", "equip_breakdown", "equipment_breakdown"}, false},
	{FieldKeyFobReplacementFlag, KindFlag, []string{"key_fob_replacement_flag", "key_fob_flag", "key_fob"}, false},
	{FieldRefrigeratedProductsFlag, KindFlag, []string{"refrigerated_products_flag", "fridge_products_flag", "food_spoilage_flag"}, false},
	{FieldRefrigeratedProductsLimit, KindNumber, []string{"refrigerated_products_limit", "fridge_products_limit", "food_spoilage_$"}, false},
	{FieldRoofSurfacingLossSettlemnt, KindFlag, []string{"roof_surfacing_loss_settlement", "roof_upgrade_flag", "roof_upgrade"}, false},

	{FieldRenewalDate, KindDate, []string{"renewal_date", "policy_renewal_date", "next_renewal"}, true},
	{FieldLastReviewedDate, KindDate, []string{"last_reviewed_date", "reviewed_on", "last_policy_review"}, false},

	{FieldServiceTouches12m, KindNumber, []string{"service_touches_12m", "service_touches", "touches_12m"}, true},
	{FieldAvgMinutesPerTouch, KindNumber, []string{"avg_minutes_per_touch", "aht_min", "avg_minutes_touch"}, true},
	{FieldEstMinutesPerRemarket, KindNumber, []string{"est_minutes_per_remarket", "remarket_minutes_est", "minutes_per_remarket_est"}, true},
	{FieldRemarkets12m, KindNumber, []string{"remarkets_12m", "remarkets", "remarketed_count_12m"}, true},
	{FieldRemarketReason, KindString, []string{"remarket_reason", "remarket_reason_primary", "remarket_reason_code"}, false},
	{FieldServiceChannel, KindString, []string{"service_channel", "channel", "primary_channel", "contact_channel"}, false},
	{FieldClaimsOpenCount, KindNumber, []string{"claims_open_count", "open_claims", "claims_open"}, false},
	{FieldClaimsClosed12m, KindNumber, []string{"claims_closed_12m", "claims_closed", "closed_claims_12m"}, false},
	{FieldWrittenPremiumTotal, KindNumber, []string{"written_premium_total", "written_premium", "wp_total"}, false},
	{FieldCommissionRatePct, KindNumber, []string{"commission_rate_pct", "commission_pct", "commission_rate"}, false},
	{FieldTenureYears, KindNumber, []string{"tenure_years", "tenure", "years_with_agency"}, false},
	{FieldRetainedLastTermFlag, KindFlag, []string{"retained_last_term_flag", "retained_last_term", "retained_flag"}, false},
	{FieldPrimaryCarrier, KindString, []string{"primary_carrier", "carrier", "main_carrier"}, false},
	{FieldSecondaryCarrier, KindString, []string{"secondary_carrier_optional", "secondary_carrier", "other_carrier"}, false},
	{FieldSegmentTier, KindString, []string{"segment_tier", "segment", "tier"}, false},
	{FieldOfficeLocation, KindString, []string{"office_location", "office", "location"}, false},
	{FieldDataConfidence, KindNumber, []string{"data_confidence", "confidence", "data_confidence_0_1"}, false},
	{FieldChurnRiskScore, KindNumber, []string{"churn_risk_score_0_1", "churn_score", "churn_risk"}, false},
	{FieldServiceManager, KindString, []string{"service_manager", "csr", "account_mgr", "account_manager"}, false},
}

// RequiredFields returns the canonical fields a usable upload must carry.
func RequiredFields() []Field {
	var out []Field
	for _, fs := range Fields {
		if fs.Required {
			out = append(out, fs.Field)
		}
	}
	return out
}

// Row is one normalized household snapshot. Optional numeric/flag/date
// fields are pointers: nil means the source cell was absent or unparseable,
// never an invalid raw string.
type Row struct {
	HouseholdID string
	Name        string
	Email       string

	HomeFlag     *int
	AutoFlag     *int
	UmbrellaFlag *int

	LinesCount                  *float64
	BundledFlag                 *int
	BundleDiscountFlag          *int
	SafeDriverFlag              *int
	WaterBackupLimit            *float64
	ServiceLineCoverageLimit    *float64
	EquipmentBreakdownFlag      *int
	KeyFobReplacementFlag       *int
	RefrigeratedProductsFlag    *int
	RefrigeratedProductsLimit   *float64
	RoofSurfacingLossSettlement *int

	RenewalDate      *time.Time
	LastReviewedDate *time.Time

	ServiceTouches12m     *float64
	AvgMinutesPerTouch    *float64
	EstMinutesPerRemarket *float64
	Remarkets12m          *float64
	RemarketReason        string
	ServiceChannel        string
	ClaimsOpenCount       *float64
	ClaimsClosed12m       *float64

	WrittenPremiumTotal *float64
	CommissionRatePct   *float64

	TenureYears          *float64
	RetainedLastTermFlag *int
	PrimaryCarrier       string
	SecondaryCarrier     string
	SegmentTier          string
	OfficeLocation       string
	DataConfidence       *float64
	ChurnRiskScore       *float64
	ServiceManager       string
}

// Num returns a numeric field's value with ok=false when undefined.
// A nil pointer stands for "no data", so callers can distinguish a true
// zero from a missing cell.
func Num(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// NumOr returns the value or a fallback when undefined.
func NumOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// FlagIs reports whether a 0/1 flag is defined and equal to want.
func FlagIs(p *int, want int) bool {
	return p != nil && *p == want
}

// FlagOr returns the flag value or a fallback when undefined.
func FlagOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
