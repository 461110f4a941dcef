package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bundlebench/bundlebench/internal/schema"
	"github.com/bundlebench/bundlebench/internal/stats"
)

// epsMinutes guards ratio denominators in efficiency rules.
const epsMinutes = 1e-4

// serviceMinutes is the yearly service load of one household; undefined
// when either factor is missing.
func serviceMinutes(r schema.Row) (float64, bool) {
	t, ok1 := schema.Num(r.ServiceTouches12m)
	m, ok2 := schema.Num(r.AvgMinutesPerTouch)
	if !ok1 || !ok2 {
		return 0, false
	}
	return t * m, true
}

func churnImpact(r schema.Row) float64 {
	return schema.NumOr(r.ChurnRiskScore, 0) * 100
}

// carriersDiffer requires both carriers present and distinct; a missing
// secondary carrier is not a split.
func carriersDiffer(r schema.Row) bool {
	return r.PrimaryCarrier != "" && r.SecondaryCarrier != "" && r.PrimaryCarrier != r.SecondaryCarrier
}

// catalog is the fixed, ordered rule set (ids 1..50). Threshold constants
// are rule-owned; they are documented in each rule's Definition.
var catalog = []rule{
	{
		ID: 1, Key: "bundling_gap", Title: "Bundling Gap",
		Definition: "HH has home & auto but different carriers, or only one eligible line.",
		Category:   CategoryGrowth,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			home := schema.FlagOr(r.HomeFlag, 0)
			auto := schema.FlagOr(r.AutoFlag, 0)
			return (home == 1 && auto == 1 && carriersDiffer(r)) || home+auto == 1
		}, pctOver(25, SeverityUrgent, SeverityOpportunity)),
	},
	{
		ID: 2, Key: "coverage_depth_tier", Title: "Coverage Depth Tier",
		Definition: "Classifies HH by lines_count: 1=shallow, 2=core, >=3=deep.",
		Category:   CategoryGrowth,
		eval: aggregateRule(func(env *Env) result {
			var shallow []int
			var core, deep int
			for i, r := range env.Rows {
				switch n := schema.NumOr(r.LinesCount, 0); {
				case n == 1:
					shallow = append(shallow, i)
				case n == 2:
					core++
				case n >= 3:
					deep++
				}
			}
			return result{
				matched: shallow,
				summary: fmt.Sprintf("%d%% shallow, %d%% core, %d%% deep",
					pct(len(shallow), env.N()), pct(core, env.N()), pct(deep, env.N())),
				sev: SeverityGood,
			}
		}),
	},
	{
		ID: 3, Key: "umbrella_opportunity", Title: "Umbrella Opportunity",
		Definition: "Suitable HH without umbrella (bronze tier excluded).",
		Category:   CategoryGrowth,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			if schema.FlagOr(r.UmbrellaFlag, 0) != 0 {
				return false
			}
			if schema.FlagOr(r.HomeFlag, 0) != 1 && schema.FlagOr(r.AutoFlag, 0) != 1 {
				return false
			}
			return !strings.Contains(strings.ToLower(r.SegmentTier), "bronze")
		}, countOver(20, SeverityOpportunity, SeverityGood)),
	},
	{
		ID: 4, Key: "water_backup_gap", Title: "Water Backup Gap",
		Definition: "HH lacks water backup coverage (limit null or zero).",
		Category:   CategoryRisk,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.NumOr(r.WaterBackupLimit, 0) == 0
		}, countOver(10, SeverityUrgent, SeverityGood)),
	},
	{
		ID: 5, Key: "service_line_gap", Title: "Service Line Gap",
		Definition: "Missing service line coverage (limit null or zero).",
		Category:   CategoryRisk,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.NumOr(r.ServiceLineCoverageLimit, 0) == 0
		}, countOver(10, SeverityUrgent, SeverityGood)),
	},
	{
		ID: 6, Key: "equipment_breakdown_gap", Title: "Equipment Breakdown Gap",
		Definition: "No equipment breakdown endorsement.",
		Category:   CategoryRisk,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.EquipmentBreakdownFlag, 0) == 0
		}, pctOver(20, SeverityUrgent, SeverityGood)),
	},
	{
		ID: 7, Key: "roof_upgrade_gap", Title: "Roof Upgrade Gap",
		Definition: "Roof surfacing loss settlement not present where carrier offers.",
		Category:   CategoryRisk,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.RoofSurfacingLossSettlement, 0) == 0
		}, countOver(10, SeverityOpportunity, SeverityGood)),
	},
	{
		ID: 8, Key: "pet_injury_gap", Title: "Pet Injury Gap (Auto)",
		Definition: "Auto HH without pet injury coverage; the endorsement is not tracked in the canonical schema, so every auto HH counts.",
		Category:   CategoryGrowth,
		eval: aggregateRule(func(env *Env) result {
			var idx []int
			for i, r := range env.Rows {
				if schema.FlagOr(r.AutoFlag, 0) == 1 {
					idx = append(idx, i)
				}
			}
			sev := SeverityGood
			if len(idx) > 0 {
				sev = SeverityOpportunity
			}
			return result{
				matched: idx,
				summary: fmt.Sprintf("%d / %d auto households", len(idx), len(idx)),
				sev:     sev,
			}
		}),
	},
	{
		ID: 9, Key: "key_fob_gap", Title: "Key Fob Replacement Gap",
		Definition: "HH lacks key fob coverage add-on.",
		Category:   CategoryGrowth,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.KeyFobReplacementFlag, 0) == 0
		}, countOver(20, SeverityOpportunity, SeverityGood)),
	},
	{
		ID: 10, Key: "refrigerated_products_gap", Title: "Refrigerated Products Coverage Gap",
		Definition: "HH lacks food spoilage coverage (flag off or limit zero).",
		Category:   CategoryRisk,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.RefrigeratedProductsFlag, 0) == 0 || schema.NumOr(r.RefrigeratedProductsLimit, 0) == 0
		}, countOver(15, SeverityOpportunity, SeverityGood)),
	},
	{
		ID: 11, Key: "home_umbrella_no_auto", Title: "Home+Umbrella, No Auto",
		Definition: "Easy cross-sell to complete the classic trio.",
		Category:   CategoryGrowth,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.HomeFlag, 0) == 1 && schema.FlagOr(r.UmbrellaFlag, 0) == 1 && schema.FlagOr(r.AutoFlag, 0) == 0
		}, always(SeverityOpportunity)),
	},
	{
		ID: 12, Key: "auto_umbrella_no_home", Title: "Auto+Umbrella, No Home",
		Definition: "Missing property line.",
		Category:   CategoryGrowth,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.AutoFlag, 0) == 1 && schema.FlagOr(r.UmbrellaFlag, 0) == 1 && schema.FlagOr(r.HomeFlag, 0) == 0
		}, always(SeverityOpportunity)),
	},
	{
		ID: 13, Key: "high_rl_segment", Title: "High RL Segment",
		Definition: "Remarketing load above the 25-per-100-renewals target.",
		Category:   CategoryService,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			rm := schema.NumOr(r.Remarkets12m, 0)
			return rm/(rm+1)*100 > 25
		}, pctOver(10, SeverityUrgent, SeverityGood)),
	},
	{
		ID: 14, Key: "chronic_remarketer", Title: "Chronic Remarketer HH",
		Definition: "HH remarketed in 2 of the last 3 cycles.",
		Category:   CategoryService,
		eval:       placeholderRule("remarket event log"),
	},
	{
		ID: 15, Key: "renewal_no_review", Title: "Renewal No Review Window",
		Definition: "Renewal inside 30 days without a review in the last 60.",
		Category:   CategoryRetention,
		eval: filterRule(func(env *Env, r schema.Row) bool {
			if r.RenewalDate == nil || env.DaysUntil(r.RenewalDate) >= 30 {
				return false
			}
			return r.LastReviewedDate == nil || env.DaysSince(r.LastReviewedDate) > 60
		}, countOver(5, SeverityUrgent, SeverityGood)),
	},
	{
		ID: 16, Key: "producer_reshop_outlier", Title: "Producer Re-shop Outlier",
		Definition: "Producer with RL above 150% of agency average for 2+ months.",
		Category:   CategoryService,
		eval:       placeholderRule("monthly per-producer remarketing series"),
	},
	{
		ID: 17, Key: "carrier_appetite_mismatch", Title: "Carrier Appetite Mismatch",
		Definition: "Carrier whose remarketing load exceeds 1.75x the agency mean.",
		Category:   CategoryService,
		eval: groupRule(
			func(r schema.Row) string { return r.PrimaryCarrier },
			func(r schema.Row) (float64, bool) { return schema.Num(r.Remarkets12m) },
			1.75, SeverityUrgent, SeverityGood),
	},
	{
		ID: 18, Key: "late_bound_renewals", Title: "Late-Bound Renewals",
		Definition: "Policies bound within 3 days of renewal.",
		Category:   CategoryRetention,
		eval:       placeholderRule("binding event log"),
	},
	{
		ID: 19, Key: "nonrenewal_early_warning", Title: "Non-renewal Early Warning",
		Definition: "Churn risk >= 0.7 with renewal inside 45 days.",
		Category:   CategoryRetention,
		eval: filterRule(func(env *Env, r schema.Row) bool {
			return schema.NumOr(r.ChurnRiskScore, 0) >= 0.7 && env.DaysUntil(r.RenewalDate) < 45
		}, countOver(5, SeverityUrgent, SeverityOpportunity), withRowImpact(churnImpact)),
	},
	{
		ID: 20, Key: "remarketing_reason_pareto", Title: "Remarketing Reason Pareto",
		Definition: "Top 3 remarket reasons by household share.",
		Category:   CategoryService,
		eval: aggregateRule(func(env *Env) result {
			counts := map[string]int{}
			for _, r := range env.Rows {
				if r.RemarketReason != "" {
					counts[r.RemarketReason]++
				}
			}
			type rc struct {
				reason string
				n      int
			}
			ranked := make([]rc, 0, len(counts))
			for k, n := range counts {
				ranked = append(ranked, rc{k, n})
			}
			sort.Slice(ranked, func(i, j int) bool {
				if ranked[i].n == ranked[j].n {
					return ranked[i].reason < ranked[j].reason
				}
				return ranked[i].n > ranked[j].n
			})
			if len(ranked) > 3 {
				ranked = ranked[:3]
			}
			top := make(map[string]bool, len(ranked))
			parts := make([]string, 0, len(ranked))
			for _, r := range ranked {
				top[r.reason] = true
				parts = append(parts, fmt.Sprintf("%s: %d%%", r.reason, pct(r.n, env.N())))
			}
			var idx []int
			for i, r := range env.Rows {
				if top[r.RemarketReason] {
					idx = append(idx, i)
				}
			}
			summary := strings.Join(parts, ", ")
			if summary == "" {
				summary = "no remarket reasons recorded"
			}
			return result{matched: idx, summary: summary, sev: SeverityGood}
		}),
	},
	{
		ID: 21, Key: "high_minutes_hh", Title: "High Minutes HH",
		Definition: "HH in the top decile of yearly service minutes.",
		Category:   CategoryService,
		eval: percentileRule(serviceMinutes, 90, nil, always(SeverityUrgent),
			withRowImpact(func(r schema.Row) float64 { v, _ := serviceMinutes(r); return v })),
	},
	{
		ID: 22, Key: "channel_cost_overweight", Title: "Channel Cost Overweight",
		Definition: "Service channel whose mean minutes/touch exceeds the population mean.",
		Category:   CategoryService,
		eval: aggregateRule(func(env *Env) result {
			aht := func(r schema.Row) (float64, bool) { return schema.Num(r.AvgMinutesPerTouch) }
			groups := stats.GroupBy(env.Rows, func(r schema.Row) string { return r.ServiceChannel }, aht)
			var all []float64
			for _, r := range env.Rows {
				if v, ok := aht(r); ok {
					all = append(all, v)
				}
			}
			over := stats.OutlierGroups(groups, stats.Mean(all), 1.0)
			hit := make(map[string]bool, len(over))
			for _, ch := range over {
				hit[ch] = true
			}
			var idx []int
			for i, r := range env.Rows {
				if hit[r.ServiceChannel] {
					idx = append(idx, i)
				}
			}
			if len(over) == 0 {
				return result{summary: "none", sev: SeverityGood}
			}
			return result{matched: idx, summary: joinList(over), sev: SeverityOpportunity}
		}),
	},
	{
		ID: 23, Key: "poi_drain", Title: "Proof of Insurance Drain",
		Definition: "High minutes on ID card / COI requests.",
		Category:   CategoryService,
		eval:       placeholderRule("service event log"),
	},
	{
		ID: 24, Key: "billing_time_sink", Title: "Billing & Payments Time Sink",
		Definition: "High minutes on billing issues.",
		Category:   CategoryService,
		eval:       placeholderRule("service event log"),
	},
	{
		ID: 25, Key: "claim_followup_burden", Title: "Claim Follow-up Burden",
		Definition: "Minutes spent on claim follow-ups above threshold.",
		Category:   CategoryService,
		eval:       placeholderRule("service event log"),
	},
	{
		ID: 26, Key: "unbundled_overhead", Title: "Unbundled Overhead",
		Definition: "Mean service minutes of unbundled households (20 min/HH threshold).",
		Category:   CategoryService,
		eval: aggregateRule(func(env *Env) result {
			var idx []int
			var mins []float64
			for i, r := range env.Rows {
				if schema.FlagOr(r.BundledFlag, 0) != 0 {
					continue
				}
				idx = append(idx, i)
				if v, ok := serviceMinutes(r); ok {
					mins = append(mins, v)
				}
			}
			m := stats.Mean(mins)
			sev := SeverityGood
			if m > 20 {
				sev = SeverityOpportunity
			}
			return result{matched: idx, summary: fmt.Sprintf("%.2f min/HH", m), sev: sev}
		}),
	},
	{
		ID: 27, Key: "csr_load_imbalance", Title: "CSR Load Imbalance",
		Definition: "One CSR's book consumes 30%+ more minutes/HH than the median.",
		Category:   CategoryService,
		eval:       placeholderRule("per-CSR assignment history"),
	},
	{
		ID: 28, Key: "fcr_gap", Title: "First-Contact Resolution Gap",
		Definition: "Multi-touch service threads where one touch should suffice.",
		Category:   CategoryService,
		eval:       placeholderRule("service event log"),
	},
	{
		ID: 29, Key: "aht_outlier", Title: "AHT Outlier",
		Definition: "Average minutes per touch in the top decile.",
		Category:   CategoryService,
		eval: percentileRule(
			func(r schema.Row) (float64, bool) { return schema.Num(r.AvgMinutesPerTouch) },
			90, nil, countOver(10, SeverityOpportunity, SeverityGood),
			withRowImpact(func(r schema.Row) float64 { return schema.NumOr(r.AvgMinutesPerTouch, 0) })),
	},
	{
		ID: 30, Key: "self_service_uptake", Title: "Self-Service Uptake",
		Definition: "Portal share of service channel mix (25% target).",
		Category:   CategoryService,
		eval: aggregateRule(func(env *Env) result {
			portal := 0
			var idx []int
			for i, r := range env.Rows {
				if strings.EqualFold(r.ServiceChannel, "Portal") {
					portal++
				} else {
					idx = append(idx, i)
				}
			}
			share := pct(portal, env.N())
			sev := SeverityGood
			if share < 25 {
				sev = SeverityOpportunity
			}
			return result{matched: idx, summary: fmt.Sprintf("Portal: %d%%", share), sev: sev}
		}),
	},
	{
		ID: 31, Key: "tenure_momentum_negative", Title: "Tenure Momentum Negative",
		Definition: "Month-over-month average tenure trend.",
		Category:   CategoryRetention,
		eval:       placeholderRule("monthly as-of snapshots"),
	},
	{
		ID: 32, Key: "low_tenure_high_depth_risk", Title: "Low Tenure, High Depth Risk",
		Definition: "Tenure < 2y with >= 2 lines and churn risk >= 0.6.",
		Category:   CategoryRetention,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.NumOr(r.TenureYears, 0) < 2 &&
				schema.NumOr(r.LinesCount, 0) >= 2 &&
				schema.NumOr(r.ChurnRiskScore, 0) >= 0.6
		}, countOver(5, SeverityUrgent, SeverityGood), withRowImpact(churnImpact)),
	},
	{
		ID: 33, Key: "retention_weak_signal", Title: "Retention Weak Signal",
		Definition: "Prior term not retained.",
		Category:   CategoryRetention,
		eval: aggregateRule(func(env *Env) result {
			var idx []int
			for i, r := range env.Rows {
				if schema.FlagOr(r.RetainedLastTermFlag, 0) == 0 {
					idx = append(idx, i)
				}
			}
			p := pct(len(idx), env.N())
			sev := SeverityGood
			if p > 10 {
				sev = SeverityUrgent
			}
			return result{matched: idx, summary: fmt.Sprintf("%d%% not retained", p), sev: sev}
		}),
	},
	{
		ID: 34, Key: "claims_backlog", Title: "Claims Backlog",
		Definition: "Open claims per household against a 0.2 benchmark.",
		Category:   CategoryRisk,
		eval: aggregateRule(func(env *Env) result {
			var open []float64
			var idx []int
			for i, r := range env.Rows {
				if v, ok := schema.Num(r.ClaimsOpenCount); ok {
					open = append(open, v)
					if v > 0.2 {
						idx = append(idx, i)
					}
				}
			}
			m := stats.Mean(open)
			sev := SeverityGood
			if m > 0.2 {
				sev = SeverityUrgent
			}
			return result{matched: idx, summary: fmt.Sprintf("%.2f open claims/HH", m), sev: sev}
		}),
	},
	{
		ID: 35, Key: "high_claim_freq_cohort", Title: "High Claim Frequency Cohort",
		Definition: "Segment whose closed-claim rate exceeds 1.5x the agency mean.",
		Category:   CategoryRisk,
		eval: groupRule(
			func(r schema.Row) string { return r.SegmentTier },
			func(r schema.Row) (float64, bool) { return schema.Num(r.ClaimsClosed12m) },
			1.5, SeverityOpportunity, SeverityGood),
	},
	{
		ID: 36, Key: "experience_quality_dip", Title: "Experience Quality Dip",
		Definition: "Mean open claims above mean closed claims (EQ proxy falling).",
		Category:   CategoryRisk,
		eval: aggregateRule(func(env *Env) result {
			var open, closed []float64
			for _, r := range env.Rows {
				if v, ok := schema.Num(r.ClaimsOpenCount); ok {
					open = append(open, v)
				}
				if v, ok := schema.Num(r.ClaimsClosed12m); ok {
					closed = append(closed, v)
				}
			}
			if stats.Mean(open) > stats.Mean(closed) {
				idx := make([]int, env.N())
				for i := range idx {
					idx[i] = i
				}
				return result{matched: idx, summary: "Dip", sev: SeverityUrgent}
			}
			return result{summary: "Stable", sev: SeverityGood}
		}),
	},
	{
		ID: 37, Key: "review_freshness_gap", Title: "Review Freshness Gap",
		Definition: "HH not reviewed in over 12 months (or never).",
		Category:   CategoryRetention,
		eval: filterRule(func(env *Env, r schema.Row) bool {
			return r.LastReviewedDate == nil || env.DaysSince(r.LastReviewedDate) > 365
		}, countOver(20, SeverityUrgent, SeverityGood)),
	},
	{
		ID: 38, Key: "churn_risk_hot_list", Title: "Churn Risk Hot List",
		Definition: "Top-decile churn risk with renewal inside 60 days.",
		Category:   CategoryRetention,
		eval: percentileRule(
			func(r schema.Row) (float64, bool) { return schema.Num(r.ChurnRiskScore) },
			90,
			func(env *Env, r schema.Row) bool { return env.DaysUntil(r.RenewalDate) < 60 },
			countOver(10, SeverityUrgent, SeverityGood),
			withRowImpact(churnImpact)),
	},
	{
		ID: 39, Key: "account_value_underweighted", Title: "Account Value Underweighted",
		Definition: "Premium at or above P75 with a single line.",
		Category:   CategoryGrowth,
		eval: percentileRule(
			func(r schema.Row) (float64, bool) { return schema.Num(r.WrittenPremiumTotal) },
			75,
			func(_ *Env, r schema.Row) bool { return schema.NumOr(r.LinesCount, 0) == 1 },
			countOver(10, SeverityOpportunity, SeverityGood),
			withRowImpact(func(r schema.Row) float64 { return schema.NumOr(r.WrittenPremiumTotal, 0) })),
	},
	{
		ID: 40, Key: "commission_efficiency", Title: "Commission Efficiency",
		Definition: "Commission dollars per service minute ($2/min threshold).",
		Category:   CategoryService,
		eval: aggregateRule(func(env *Env) result {
			ratio := func(r schema.Row) float64 {
				commission := schema.NumOr(r.WrittenPremiumTotal, 0) * schema.NumOr(r.CommissionRatePct, 0) / 100
				minutes := schema.NumOr(r.ServiceTouches12m, 0) * schema.NumOr(r.AvgMinutesPerTouch, 0)
				if minutes < epsMinutes {
					minutes = epsMinutes
				}
				return commission / minutes
			}
			var all []float64
			var idx []int
			for i, r := range env.Rows {
				v := ratio(r)
				all = append(all, v)
				if v < 2 {
					idx = append(idx, i)
				}
			}
			m := stats.Mean(all)
			sev := SeverityGood
			if m < 2 {
				sev = SeverityWarn
			}
			return result{matched: idx, summary: fmt.Sprintf("$%.2f per minute", m), sev: sev}
		}),
	},
	{
		ID: 41, Key: "remarketing_roi", Title: "Remarketing ROI",
		Definition: "Remarket time cost (x1.25) outweighs 1% of written premium.",
		Category:   CategoryService,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.NumOr(r.EstMinutesPerRemarket, 0)*1.25 > schema.NumOr(r.WrittenPremiumTotal, 0)*0.01
		}, countOver(10, SeverityOpportunity, SeverityGood)),
	},
	{
		ID: 42, Key: "discount_leakage", Title: "Discount Leakage",
		Definition: "Eligible bundle or safe-driver discount not applied.",
		Category:   CategoryGrowth,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			return schema.FlagOr(r.BundleDiscountFlag, 0) == 0 || schema.FlagOr(r.SafeDriverFlag, 0) == 0
		}, countOver(10, SeverityOpportunity, SeverityGood)),
	},
	{
		ID: 43, Key: "carrier_mix_concentration", Title: "Carrier Mix Concentration",
		Definition: "Single carrier holding more than 45% of the book.",
		Category:   CategoryService,
		eval: aggregateRule(func(env *Env) result {
			counts := map[string]int{}
			for _, r := range env.Rows {
				if r.PrimaryCarrier != "" {
					counts[r.PrimaryCarrier]++
				}
			}
			var over []string
			for c, n := range counts {
				if pct(n, env.N()) > 45 {
					over = append(over, c)
				}
			}
			hit := make(map[string]bool, len(over))
			for _, c := range over {
				hit[c] = true
			}
			var idx []int
			for i, r := range env.Rows {
				if hit[r.PrimaryCarrier] {
					idx = append(idx, i)
				}
			}
			if len(over) == 0 {
				return result{summary: "none", sev: SeverityGood}
			}
			return result{matched: idx, summary: joinList(over), sev: SeverityWarn}
		}),
	},
	{
		ID: 44, Key: "rate_shock_sensitivity", Title: "Rate Shock Sensitivity",
		Definition: "High rate-change likelihood approaching renewal.",
		Category:   CategoryRetention,
		eval: filterRule(func(env *Env, r schema.Row) bool {
			exposed := schema.NumOr(r.ChurnRiskScore, 0) >= 0.6 || schema.NumOr(r.Remarkets12m, 0) >= 1
			return exposed && env.DaysUntil(r.RenewalDate) < 60
		}, countOver(10, SeverityUrgent, SeverityGood),
			withRowSeverity(func(r schema.Row) Severity {
				if schema.NumOr(r.ChurnRiskScore, 0) >= 0.6 {
					return SeverityUrgent
				}
				return SeverityOpportunity
			}),
			withRowImpact(churnImpact)),
	},
	{
		ID: 45, Key: "producer_depth_delta", Title: "Producer Depth Delta",
		Definition: "Producer bundle depth versus agency average.",
		Category:   CategoryService,
		eval:       placeholderRule("producer column"),
	},
	{
		ID: 46, Key: "producer_tbn_opportunity", Title: "Producer TBN Opportunity",
		Definition: "Hours reclaimable from top-N carrier splits per producer.",
		Category:   CategoryService,
		eval:       placeholderRule("producer column"),
	},
	{
		ID: 47, Key: "office_rl_outlier", Title: "Office RL Outlier",
		Definition: "Office remarketing load above 1.5x the agency mean.",
		Category:   CategoryService,
		eval: groupRule(
			func(r schema.Row) string { return r.OfficeLocation },
			func(r schema.Row) (float64, bool) { return schema.Num(r.Remarkets12m) },
			1.5, SeverityWarn, SeverityGood),
	},
	{
		ID: 48, Key: "win_rate_after_outreach", Title: "Win Rate After Outreach",
		Definition: "Conversion rate following top-N outreach.",
		Category:   CategoryGrowth,
		eval:       placeholderRule("outreach event log"),
	},
	{
		ID: 49, Key: "data_confidence_gap", Title: "Data Confidence Gap",
		Definition: "Confidence below 0.7 or key fields missing.",
		Category:   CategoryDataQuality,
		eval: filterRule(func(_ *Env, r schema.Row) bool {
			if schema.NumOr(r.DataConfidence, 1) < 0.7 {
				return true
			}
			return r.RenewalDate == nil ||
				schema.NumOr(r.LinesCount, 0) == 0 ||
				schema.NumOr(r.AvgMinutesPerTouch, 0) == 0
		}, countOver(5, SeverityWarn, SeverityGood)),
	},
	{
		ID: 50, Key: "template_compliance", Title: "Template Compliance",
		Definition: "Required headers present and typed.",
		Category:   CategoryDataQuality,
		eval: aggregateRule(func(env *Env) result {
			if len(env.Meta.MissingRequired) == 0 {
				return result{summary: "PASS", sev: SeverityGood}
			}
			parts := make([]string, len(env.Meta.MissingRequired))
			for i, f := range env.Meta.MissingRequired {
				parts[i] = string(f)
			}
			return result{summary: "Missing: " + strings.Join(parts, ", "), sev: SeverityUrgent}
		}),
	},
}

// Catalog exposes the rule metadata (id, key, title, definition, category)
// in catalog order for documentation surfaces.
type RuleInfo struct {
	ID         int      `json:"id" yaml:"id"`
	Key        string   `json:"key" yaml:"key"`
	Title      string   `json:"title" yaml:"title"`
	Definition string   `json:"definition" yaml:"definition"`
	Category   Category `json:"category" yaml:"category"`
}

func Catalog() []RuleInfo {
	out := make([]RuleInfo, len(catalog))
	for i, r := range catalog {
		out[i] = RuleInfo{ID: r.ID, Key: r.Key, Title: r.Title, Definition: r.Definition, Category: r.Category}
	}
	return out
}
