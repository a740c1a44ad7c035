// Package risk scans calculated metrics for discrete financial risk findings
// and aggregates them into an overall risk profile.
package risk

import (
	"encoding/json"
	"time"
)

// Category classifies a risk finding.
type Category string

const (
	CategoryLiquidity     Category = "liquidity"
	CategoryCredit        Category = "credit"
	CategoryMarket        Category = "market"
	CategoryOperational   Category = "operational"
	CategoryCompliance    Category = "compliance"
	CategoryConcentration Category = "concentration"
	CategoryCashFlow      Category = "cash_flow"
)

// Severity grades how serious a finding is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Factor is one discrete risk finding. Factors are produced fresh on every
// assessment call and are never mutated afterwards.
type Factor struct {
	ID                    string   `json:"id"`
	Category              Category `json:"category"`
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Severity              Severity `json:"severity"`
	Probability           float64  `json:"probability"`
	ImpactScore           float64  `json:"impact_score"`
	Indicators            []string `json:"indicators,omitempty"`
	MitigationSuggestions []string `json:"mitigation_suggestions,omitempty"`
}

// RiskScore is the derived magnitude of the finding. It is computed, never
// stored, so probability and impact stay the single source of truth.
func (f Factor) RiskScore() float64 {
	return f.Probability * f.ImpactScore
}

// MarshalJSON includes the derived risk_score alongside the stored fields.
func (f Factor) MarshalJSON() ([]byte, error) {
	type alias Factor
	return json.Marshal(struct {
		alias
		RiskScore float64 `json:"risk_score"`
	}{alias(f), f.RiskScore()})
}

// Profile summarizes all findings of one assessment.
type Profile struct {
	OverallLevel  Severity `json:"overall_level"`
	OverallScore  float64  `json:"overall_score"`
	CriticalCount int      `json:"critical_count"`
	HighCount     int      `json:"high_count"`
}

// Recommendation is one prioritized mitigation action.
type Recommendation struct {
	Action      string `json:"action"`
	Priority    string `json:"priority"`
	RelatedRisk string `json:"related_risk"`
}

// Assessment is the full output of one risk scan.
type Assessment struct {
	AssessmentDate   time.Time        `json:"assessment_date"`
	OverallRiskLevel Severity         `json:"overall_risk_level"`
	OverallRiskScore float64          `json:"overall_risk_score"`
	Profile          Profile          `json:"risk_profile"`
	Risks            []Factor         `json:"risks"`
	Recommendations  []Recommendation `json:"recommendations"`
}
