package risk

import (
	"fmt"
	"math"
	"sort"
	"time"

	"finsight/pkg/core/metrics"
	"finsight/pkg/core/statement"
)

// =============================================================================
// THRESHOLD TABLES
// =============================================================================

// thresholds is the source of truth for metric risk tiers. For current ratio
// and interest coverage a value below the tier threshold triggers the tier;
// for debt/equity and DSO a value above it does.
var thresholds = map[string]map[Severity]float64{
	"current_ratio":     {SeverityLow: 2.0, SeverityMedium: 1.5, SeverityHigh: 1.0, SeverityCritical: 0.5},
	"debt_to_equity":    {SeverityLow: 0.5, SeverityMedium: 1.0, SeverityHigh: 2.0, SeverityCritical: 3.0},
	"interest_coverage": {SeverityCritical: 1.0, SeverityHigh: 2.0, SeverityMedium: 3.0, SeverityLow: 5.0},
	"dso":               {SeverityLow: 30, SeverityMedium: 45, SeverityHigh: 60, SeverityCritical: 90},
}

// severityOrder is checked most severe first so each metric yields at most
// one finding, at the worst tier it crosses.
var severityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Default probability/impact per tier. A few long-standing findings keep
// their own historical values instead (see the scan functions).
var (
	tierProbability = map[Severity]float64{SeverityCritical: 0.9, SeverityHigh: 0.7, SeverityMedium: 0.5, SeverityLow: 0.3}
	tierImpact      = map[Severity]float64{SeverityCritical: 90, SeverityHigh: 70, SeverityMedium: 50, SeverityLow: 30}
)

// tierBelow returns the worst severity whose threshold the value falls below,
// or "" when the value clears every tier.
func tierBelow(metric string, value float64) Severity {
	table := thresholds[metric]
	for _, sev := range severityOrder {
		if threshold, ok := table[sev]; ok && value < threshold {
			return sev
		}
	}
	return ""
}

// tierAbove is the mirror of tierBelow for metrics where high values are bad.
func tierAbove(metric string, value float64) Severity {
	table := thresholds[metric]
	for _, sev := range severityOrder {
		if threshold, ok := table[sev]; ok && value > threshold {
			return sev
		}
	}
	return ""
}

// =============================================================================
// ASSESSOR
// =============================================================================

// Assessor evaluates financial risks from calculated metrics. It holds no
// per-call state and is safe for concurrent use.
type Assessor struct{}

// NewAssessor creates a risk assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess runs every risk scan against the metric set and aggregates the
// findings. The statement data is available to scans that need raw figures.
func (a *Assessor) Assess(data *statement.FinancialData, m metrics.Set) *Assessment {
	var risks []Factor
	risks = append(risks, a.liquidityRisks(m)...)
	risks = append(risks, a.creditRisks(m)...)
	risks = append(risks, a.cashFlowRisks(m)...)
	risks = append(risks, a.operationalRisks(m)...)

	profile := calculateProfile(risks)

	return &Assessment{
		AssessmentDate:   time.Now().UTC(),
		OverallRiskLevel: profile.OverallLevel,
		OverallRiskScore: profile.OverallScore,
		Profile:          profile,
		Risks:            risks,
		Recommendations:  buildRecommendations(risks),
	}
}

func (a *Assessor) liquidityRisks(m metrics.Set) []Factor {
	currentRatio := m.Find(metrics.CategoryLiquidity, "Current Ratio")
	if currentRatio == nil {
		return nil
	}

	switch tierBelow("current_ratio", *currentRatio) {
	case SeverityCritical:
		return []Factor{{
			ID:          "LIQ001",
			Category:    CategoryLiquidity,
			Name:        "Critical Liquidity Shortage",
			Description: fmt.Sprintf("Current ratio of %.2f indicates severe liquidity issues", *currentRatio),
			Severity:    SeverityCritical,
			Probability: 0.9,
			ImpactScore: 90,
			Indicators:  []string{"Current ratio below 0.5"},
			MitigationSuggestions: []string{
				"Negotiate payment terms",
				"Accelerate collections",
				"Consider emergency financing",
			},
		}}
	case SeverityHigh:
		return []Factor{{
			ID:          "LIQ002",
			Category:    CategoryLiquidity,
			Name:        "Low Liquidity",
			Description: fmt.Sprintf("Current ratio of %.2f leaves little room to cover short-term obligations", *currentRatio),
			Severity:    SeverityHigh,
			Probability: tierProbability[SeverityHigh],
			ImpactScore: tierImpact[SeverityHigh],
			Indicators:  []string{"Current ratio below 1.0"},
			MitigationSuggestions: []string{
				"Build a cash reserve",
				"Review short-term debt structure",
			},
		}}
	case SeverityMedium:
		return []Factor{{
			ID:          "LIQ003",
			Category:    CategoryLiquidity,
			Name:        "Tight Liquidity",
			Description: fmt.Sprintf("Current ratio of %.2f is below the comfortable range", *currentRatio),
			Severity:    SeverityMedium,
			Probability: tierProbability[SeverityMedium],
			ImpactScore: tierImpact[SeverityMedium],
			Indicators:  []string{"Current ratio below 1.5"},
			MitigationSuggestions: []string{
				"Improve working capital cycle",
				"Defer non-essential spending",
			},
		}}
	case SeverityLow:
		return []Factor{{
			ID:          "LIQ004",
			Category:    CategoryLiquidity,
			Name:        "Liquidity Below Target",
			Description: fmt.Sprintf("Current ratio of %.2f trails the 2.0 comfort benchmark", *currentRatio),
			Severity:    SeverityLow,
			Probability: tierProbability[SeverityLow],
			ImpactScore: tierImpact[SeverityLow],
			Indicators:  []string{"Current ratio below 2.0"},
			MitigationSuggestions: []string{
				"Monitor cash position weekly",
			},
		}}
	}
	return nil
}

func (a *Assessor) creditRisks(m metrics.Set) []Factor {
	var risks []Factor

	if debtToEquity := m.Find(metrics.CategorySolvency, "Debt to Equity Ratio"); debtToEquity != nil {
		switch tierAbove("debt_to_equity", *debtToEquity) {
		case SeverityCritical:
			risks = append(risks, Factor{
				ID:          "CRD001",
				Category:    CategoryCredit,
				Name:        "Excessive Leverage",
				Description: fmt.Sprintf("Debt to equity of %.2f indicates high leverage", *debtToEquity),
				Severity:    SeverityCritical,
				Probability: 0.85,
				ImpactScore: 85,
				Indicators:  []string{"D/E ratio above 3.0"},
				MitigationSuggestions: []string{
					"Prioritize debt repayment",
					"Consider equity infusion",
				},
			})
		case SeverityHigh:
			risks = append(risks, Factor{
				ID:          "CRD002",
				Category:    CategoryCredit,
				Name:        "High Leverage",
				Description: fmt.Sprintf("Debt to equity of %.2f is well above prudent levels", *debtToEquity),
				Severity:    SeverityHigh,
				Probability: tierProbability[SeverityHigh],
				ImpactScore: tierImpact[SeverityHigh],
				Indicators:  []string{"D/E ratio above 2.0"},
				MitigationSuggestions: []string{
					"Refinance expensive debt",
					"Slow debt-funded expansion",
				},
			})
		case SeverityMedium:
			risks = append(risks, Factor{
				ID:          "CRD003",
				Category:    CategoryCredit,
				Name:        "Elevated Leverage",
				Description: fmt.Sprintf("Debt to equity of %.2f exceeds the balanced 1.0 level", *debtToEquity),
				Severity:    SeverityMedium,
				Probability: tierProbability[SeverityMedium],
				ImpactScore: tierImpact[SeverityMedium],
				Indicators:  []string{"D/E ratio above 1.0"},
				MitigationSuggestions: []string{
					"Cap new borrowing",
					"Retain earnings to build equity",
				},
			})
		case SeverityLow:
			risks = append(risks, Factor{
				ID:          "CRD004",
				Category:    CategoryCredit,
				Name:        "Above-Target Leverage",
				Description: fmt.Sprintf("Debt to equity of %.2f is above the conservative 0.5 mark", *debtToEquity),
				Severity:    SeverityLow,
				Probability: tierProbability[SeverityLow],
				ImpactScore: tierImpact[SeverityLow],
				Indicators:  []string{"D/E ratio above 0.5"},
				MitigationSuggestions: []string{
					"Track leverage quarterly",
				},
			})
		}
	}

	if coverage := m.Find(metrics.CategorySolvency, "Interest Coverage Ratio"); coverage != nil {
		if sev := tierBelow("interest_coverage", *coverage); sev != "" {
			names := map[Severity]string{
				SeverityCritical: "Interest Coverage Failure",
				SeverityHigh:     "Weak Interest Coverage",
				SeverityMedium:   "Thin Interest Coverage",
				SeverityLow:      "Modest Interest Coverage",
			}
			risks = append(risks, Factor{
				ID:          fmt.Sprintf("ICV%03d", severityIndex(sev)+1),
				Category:    CategoryCredit,
				Name:        names[sev],
				Description: fmt.Sprintf("Operating income covers interest %.2f times", *coverage),
				Severity:    sev,
				Probability: tierProbability[sev],
				ImpactScore: tierImpact[sev],
				Indicators:  []string{fmt.Sprintf("Interest coverage below %.1f", thresholds["interest_coverage"][sev])},
				MitigationSuggestions: []string{
					"Reduce interest-bearing debt",
					"Renegotiate borrowing rates",
				},
			})
		}
	}

	return risks
}

func (a *Assessor) cashFlowRisks(m metrics.Set) []Factor {
	fcf := m.Find(metrics.CategoryCashFlow, "Free Cash Flow")
	if fcf == nil || *fcf >= 0 {
		return nil
	}
	return []Factor{{
		ID:          "CF001",
		Category:    CategoryCashFlow,
		Name:        "Negative Free Cash Flow",
		Description: "Business is burning cash",
		Severity:    SeverityHigh,
		Probability: 0.7,
		ImpactScore: 70,
		Indicators:  []string{"Negative FCF"},
		MitigationSuggestions: []string{
			"Review capex",
			"Improve efficiency",
		},
	}}
}

func (a *Assessor) operationalRisks(m metrics.Set) []Factor {
	var risks []Factor

	if netMargin := m.Find(metrics.CategoryProfitability, "Net Profit Margin"); netMargin != nil && *netMargin < 0 {
		risks = append(risks, Factor{
			ID:          "OPS001",
			Category:    CategoryOperational,
			Name:        "Operating Losses",
			Description: "Business is operating at a loss",
			Severity:    SeverityHigh,
			Probability: 0.8,
			ImpactScore: 75,
			Indicators:  []string{"Negative net margin"},
			MitigationSuggestions: []string{
				"Review costs",
				"Adjust pricing",
			},
		})
	}

	if dso := m.Find(metrics.CategoryEfficiency, "Days Sales Outstanding"); dso != nil {
		if sev := tierAbove("dso", *dso); sev != "" {
			names := map[Severity]string{
				SeverityCritical: "Severely Delayed Collections",
				SeverityHigh:     "Slow Collections",
				SeverityMedium:   "Lagging Collections",
				SeverityLow:      "Collections Slightly Behind",
			}
			risks = append(risks, Factor{
				ID:          fmt.Sprintf("DSO%03d", severityIndex(sev)+1),
				Category:    CategoryOperational,
				Name:        names[sev],
				Description: fmt.Sprintf("Receivables take %.0f days to collect on average", *dso),
				Severity:    sev,
				Probability: tierProbability[sev],
				ImpactScore: tierImpact[sev],
				Indicators:  []string{fmt.Sprintf("DSO above %.0f days", thresholds["dso"][sev])},
				MitigationSuggestions: []string{
					"Tighten credit terms",
					"Automate payment reminders",
				},
			})
		}
	}

	return risks
}

// severityIndex maps a severity to its position in severityOrder (0=critical).
func severityIndex(sev Severity) int {
	for i, s := range severityOrder {
		if s == sev {
			return i
		}
	}
	return len(severityOrder)
}

// =============================================================================
// AGGREGATION
// =============================================================================

// calculateProfile derives the overall level from the findings: any critical
// finding dominates, then any high finding, then the mean risk score.
// No findings at all still yields a small non-zero floor score.
func calculateProfile(risks []Factor) Profile {
	if len(risks) == 0 {
		return Profile{OverallLevel: SeverityLow, OverallScore: 10}
	}

	var critical, high int
	var total float64
	for _, r := range risks {
		switch r.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		}
		total += r.RiskScore()
	}
	avg := total / float64(len(risks))

	level := SeverityLow
	switch {
	case critical > 0:
		level = SeverityCritical
	case high > 0:
		level = SeverityHigh
	case avg > 30:
		level = SeverityMedium
	}

	return Profile{
		OverallLevel:  level,
		OverallScore:  math.Round(avg*10) / 10,
		CriticalCount: critical,
		HighCount:     high,
	}
}

// buildRecommendations flattens the mitigation suggestions of the five
// largest findings, two per finding. Ties keep insertion order.
func buildRecommendations(risks []Factor) []Recommendation {
	ranked := make([]Factor, len(risks))
	copy(ranked, risks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RiskScore() > ranked[j].RiskScore()
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	recommendations := make([]Recommendation, 0, len(ranked)*2)
	for _, r := range ranked {
		suggestions := r.MitigationSuggestions
		if len(suggestions) > 2 {
			suggestions = suggestions[:2]
		}
		for _, s := range suggestions {
			recommendations = append(recommendations, Recommendation{
				Action:      s,
				Priority:    string(r.Severity),
				RelatedRisk: r.Name,
			})
		}
	}
	return recommendations
}
