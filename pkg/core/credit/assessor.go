// Package credit derives a 300-900 credit score for an SME from weighted
// behavioral and financial factors.
package credit

import (
	"strings"

	"finsight/pkg/core/metrics"
	"finsight/pkg/core/statement"
)

// Rating is a letter-grade credit rating.
type Rating string

const (
	RatingAAA Rating = "AAA" // Excellent
	RatingAA  Rating = "AA"  // Very Good
	RatingA   Rating = "A"   // Good
	RatingBBB Rating = "BBB" // Adequate
	RatingBB  Rating = "BB"  // Speculative
	RatingB   Rating = "B"   // Highly Speculative
	RatingCCC Rating = "CCC" // Substantial Risk
	RatingD   Rating = "D"   // Default
)

// Score is the full creditworthiness result.
type Score struct {
	Score           int                `json:"score"`
	Rating          Rating             `json:"rating"`
	Factors         map[string]float64 `json:"factors"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
}

// factorWeights sums the per-factor contributions to the composite score.
// The collateral weight is reserved but no factor feeds it yet, so it only
// ever contributes zero.
// TODO: score collateral from asset coverage once secured-asset data is part
// of the upload schema.
var factorWeights = map[string]float64{
	"payment_history":    0.25,
	"debt_utilization":   0.20,
	"business_stability": 0.15,
	"revenue_trend":      0.15,
	"profitability":      0.10,
	"liquidity":          0.10,
	"collateral":         0.05,
}

// factorOrder fixes the presentation order of factors in strengths and
// weaknesses lists.
var factorOrder = []string{
	"payment_history",
	"debt_utilization",
	"business_stability",
	"revenue_trend",
	"profitability",
	"liquidity",
}

// Assessor computes creditworthiness. Stateless and safe for concurrent use.
type Assessor struct{}

// NewAssessor creates a credit assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess scores the six credit factors and maps their weighted sum onto the
// 300-900 scale. Missing inputs fall back to documented per-factor defaults,
// never errors.
func (a *Assessor) Assess(data *statement.FinancialData, m metrics.Set, info *statement.BusinessInfo) *Score {
	if data == nil {
		data = &statement.FinancialData{}
	}

	factors := map[string]float64{
		"payment_history":    assessPaymentHistory(data),
		"debt_utilization":   assessDebtUtilization(m),
		"business_stability": assessBusinessStability(info),
		"revenue_trend":      assessRevenueTrend(data),
		"profitability":      assessProfitability(m),
		"liquidity":          assessLiquidity(m),
	}

	var weighted float64
	for name, weight := range factorWeights {
		if value, ok := factors[name]; ok {
			weighted += value * weight
		}
	}

	score := int(300 + weighted*6)
	if score < 300 {
		score = 300
	}
	if score > 900 {
		score = 900
	}

	rating := ratingFor(score)
	strengths, weaknesses := splitStrengthsWeaknesses(factors)

	return &Score{
		Score:           score,
		Rating:          rating,
		Factors:         factors,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: buildRecommendations(factors, rating),
	}
}

// -----------------------------------------------------------------------------
// Factor scoring
// -----------------------------------------------------------------------------

// assessPaymentHistory scores the overdue share of payables. Without any
// payables on file it defaults to 70.
func assessPaymentHistory(data *statement.FinancialData) float64 {
	payables := data.BalanceSheet.Get("accounts_payable")
	if payables <= 0 {
		return 70
	}
	overdueRatio := data.OverduePayables / payables
	score := 100 - overdueRatio*200
	if score < 0 {
		score = 0
	}
	return score
}

// assessDebtUtilization bands the debt/equity ratio. Default 50 when the
// ratio is unavailable.
func assessDebtUtilization(m metrics.Set) float64 {
	value := m.Find(metrics.CategorySolvency, "Debt to Equity Ratio")
	if value == nil {
		return 50
	}
	switch {
	case *value < 0.5:
		return 100
	case *value < 1.0:
		return 80
	case *value < 2.0:
		return 60
	case *value < 3.0:
		return 40
	default:
		return 20
	}
}

// assessBusinessStability bands years in business. Default 50 when no
// business info is supplied.
func assessBusinessStability(info *statement.BusinessInfo) float64 {
	if info == nil {
		return 50
	}
	switch years := info.YearsInBusiness; {
	case years >= 10:
		return 100
	case years >= 5:
		return 80
	case years >= 3:
		return 60
	case years >= 1:
		return 40
	default:
		return 20
	}
}

// assessRevenueTrend bands period-over-period revenue growth. Default 50
// without a previous period baseline.
func assessRevenueTrend(data *statement.FinancialData) float64 {
	current := data.CurrentPeriod.Get("revenue")
	previous := data.PreviousPeriod.Get("revenue")
	if previous <= 0 {
		return 50
	}
	switch growth := (current - previous) / previous; {
	case growth > 0.20:
		return 100
	case growth > 0.10:
		return 80
	case growth > 0:
		return 60
	case growth > -0.10:
		return 40
	default:
		return 20
	}
}

// assessProfitability bands the net profit margin. Default 50 when unrated.
func assessProfitability(m metrics.Set) float64 {
	value := m.Find(metrics.CategoryProfitability, "Net Profit Margin")
	if value == nil {
		return 50
	}
	switch {
	case *value > 0.15:
		return 100
	case *value > 0.10:
		return 80
	case *value > 0.05:
		return 60
	case *value > 0:
		return 40
	default:
		return 20
	}
}

// assessLiquidity bands the current ratio. Default 50 when unavailable.
func assessLiquidity(m metrics.Set) float64 {
	value := m.Find(metrics.CategoryLiquidity, "Current Ratio")
	if value == nil {
		return 50
	}
	switch {
	case *value > 2.0:
		return 100
	case *value > 1.5:
		return 80
	case *value > 1.0:
		return 60
	case *value > 0.5:
		return 40
	default:
		return 20
	}
}

// -----------------------------------------------------------------------------
// Rating and narrative
// -----------------------------------------------------------------------------

func ratingFor(score int) Rating {
	switch {
	case score >= 800:
		return RatingAAA
	case score >= 750:
		return RatingAA
	case score >= 700:
		return RatingA
	case score >= 650:
		return RatingBBB
	case score >= 600:
		return RatingBB
	case score >= 500:
		return RatingB
	case score >= 400:
		return RatingCCC
	default:
		return RatingD
	}
}

func splitStrengthsWeaknesses(factors map[string]float64) (strengths, weaknesses []string) {
	for _, name := range factorOrder {
		value, ok := factors[name]
		if !ok {
			continue
		}
		if value >= 70 {
			strengths = append(strengths, displayName(name))
		} else if value < 50 {
			weaknesses = append(weaknesses, displayName(name))
		}
	}
	return strengths, weaknesses
}

// displayName turns a factor key into a title-cased label
// ("payment_history" -> "Payment History").
func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// buildRecommendations appends one fixed recommendation per triggered rule.
// Rules are independent and can compound.
func buildRecommendations(factors map[string]float64, rating Rating) []string {
	var recommendations []string
	if factors["debt_utilization"] < 50 {
		recommendations = append(recommendations, "Reduce debt levels to improve creditworthiness")
	}
	if factors["liquidity"] < 50 {
		recommendations = append(recommendations, "Improve liquidity position")
	}
	if factors["profitability"] < 50 {
		recommendations = append(recommendations, "Focus on improving profitability margins")
	}
	if rating == RatingCCC || rating == RatingD {
		recommendations = append(recommendations, "Seek professional financial advisory")
	}
	return recommendations
}
