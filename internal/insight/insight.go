// Package insight holds the fixed 50-rule catalog and the engine that
// evaluates it against a normalized household table.
package insight

import (
	"time"
)

// Severity is a rule-assigned priority, ordered good < opportunity < warn < urgent.
type Severity string

const (
	SeverityGood        Severity = "good"
	SeverityOpportunity Severity = "opportunity"
	SeverityWarn        Severity = "warn"
	SeverityUrgent      Severity = "urgent"
)

var severityRank = map[Severity]int{
	SeverityGood:        0,
	SeverityOpportunity: 1,
	SeverityWarn:        2,
	SeverityUrgent:      3,
}

// Rank returns the ordering position of a severity; unknown values rank lowest.
func (s Severity) Rank() int { return severityRank[s] }

// Category groups insights thematically for filtering and presentation.
type Category string

const (
	CategoryGrowth      Category = "Growth Opportunities"
	CategoryRetention   Category = "Retention Radar"
	CategoryService     Category = "Service Drain"
	CategoryRisk        Category = "Risk & Claims"
	CategoryDataQuality Category = "Data Quality"
)

// Categories lists the fixed category enum in presentation order.
func Categories() []Category {
	return []Category{CategoryGrowth, CategoryRetention, CategoryService, CategoryRisk, CategoryDataQuality}
}

// Insight is one flagged condition about one household produced by one rule.
type Insight struct {
	RuleID        int       `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	HouseholdID   string    `json:"household_id" yaml:"household_id"`
	DetectionDate time.Time `json:"detection_date" yaml:"detection_date"`
	Category      Category  `json:"category" yaml:"category"`
	Severity      Severity  `json:"severity" yaml:"severity"`
	// Impact is an optional magnitude used as a ranking tie-break;
	// zero means the rule supplies none.
	Impact float64 `json:"impact,omitempty" yaml:"impact,omitempty"`
}
