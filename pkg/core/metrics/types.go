// Package metrics computes financial ratios and the aggregate health score
// for SME statement data. All calculations are pure: missing inputs read as
// zero and impossible divisions yield nil values, never errors.
package metrics

// Category groups related metrics.
type Category string

const (
	CategoryLiquidity     Category = "liquidity"
	CategoryProfitability Category = "profitability"
	CategorySolvency      Category = "solvency"
	CategoryEfficiency    Category = "efficiency"
	CategoryGrowth        Category = "growth"
	CategoryCashFlow      Category = "cash_flow"
)

// Categories lists all metric categories in canonical order.
var Categories = []Category{
	CategoryLiquidity,
	CategoryProfitability,
	CategorySolvency,
	CategoryEfficiency,
	CategoryGrowth,
	CategoryCashFlow,
}

// Rating grades a metric value against its benchmark.
// The empty string means the metric could not be rated.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
)

// Result is a single calculated metric. Value and Benchmark are nil when the
// underlying figures made the calculation undefined.
type Result struct {
	Name           string   `json:"name"`
	Value          *float64 `json:"value"`
	Category       Category `json:"category"`
	Benchmark      *float64 `json:"benchmark,omitempty"`
	Rating         Rating   `json:"rating,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
	Formula        string   `json:"formula,omitempty"`
}

// Set holds the full calculation output, keyed by category.
// Consumers must look metrics up by name, not by position.
type Set map[Category][]Result

// Find returns the value of the named metric within a category, or nil if the
// metric is absent or has no value.
func (s Set) Find(category Category, name string) *float64 {
	for _, m := range s[category] {
		if m.Name == name {
			return m.Value
		}
	}
	return nil
}

// HealthScore summarizes metric ratings into a 0-100 score.
type HealthScore struct {
	OverallScore   float64              `json:"overall_score"`
	CategoryScores map[Category]float64 `json:"category_scores"`
	Rating         string               `json:"rating"`
	Interpretation string               `json:"interpretation"`
}

// LowerIsBetter marks metrics where a smaller value is the stronger result.
// Both the rating pass and the industry benchmark percentile consult this
// table so the two stay in agreement on direction.
var LowerIsBetter = map[string]bool{
	"Debt to Equity Ratio":       true,
	"Debt Ratio":                 true,
	"Days Inventory Outstanding": true,
	"Days Sales Outstanding":     true,
	"Days Payables Outstanding":  true,
}

func floatPtr(f float64) *float64 { return &f }
