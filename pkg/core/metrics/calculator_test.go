package metrics

import (
	"math"
	"testing"

	"finsight/pkg/core/statement"
)

func findMetric(t *testing.T, set Set, category Category, name string) Result {
	t.Helper()
	for _, m := range set[category] {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("metric %q not found in category %q", name, category)
	return Result{}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLiquidityRatios(t *testing.T) {
	data := &statement.FinancialData{
		BalanceSheet: statement.Section{
			"current_assets":      150000,
			"current_liabilities": 100000,
			"inventory":           30000,
			"cash":                20000,
		},
	}

	set := NewCalculator("manufacturing").CalculateAll(data)

	cr := findMetric(t, set, CategoryLiquidity, "Current Ratio")
	if cr.Value == nil || !almostEqual(*cr.Value, 1.5) {
		t.Errorf("Current Ratio = %v, want 1.5", cr.Value)
	}
	if cr.Rating != RatingGood {
		t.Errorf("Current Ratio rating = %q, want %q", cr.Rating, RatingGood)
	}

	quick := findMetric(t, set, CategoryLiquidity, "Quick Ratio")
	if quick.Value == nil || !almostEqual(*quick.Value, 1.2) {
		t.Errorf("Quick Ratio = %v, want 1.2", quick.Value)
	}

	cash := findMetric(t, set, CategoryLiquidity, "Cash Ratio")
	if cash.Value == nil || !almostEqual(*cash.Value, 0.2) {
		t.Errorf("Cash Ratio = %v, want 0.2", cash.Value)
	}

	wc := findMetric(t, set, CategoryLiquidity, "Working Capital")
	if wc.Value == nil || *wc.Value != 50000 {
		t.Errorf("Working Capital = %v, want 50000", wc.Value)
	}
	if wc.Rating != RatingGood {
		t.Errorf("Working Capital rating = %q, want %q", wc.Rating, RatingGood)
	}
}

func TestZeroDenominatorsLeaveMetricsUnrated(t *testing.T) {
	data := &statement.FinancialData{
		IncomeStatement: statement.Section{
			"revenue":    0,
			"net_income": 5000,
		},
	}

	set := NewCalculator("services").CalculateAll(data)

	nm := findMetric(t, set, CategoryProfitability, "Net Profit Margin")
	if nm.Value != nil {
		t.Errorf("Net Profit Margin = %v, want nil with zero revenue", *nm.Value)
	}
	if nm.Rating != "" {
		t.Errorf("Net Profit Margin rating = %q, want unrated", nm.Rating)
	}
}

func TestGrowthRequiresBothPeriods(t *testing.T) {
	set := NewCalculator("retail").CalculateAll(&statement.FinancialData{
		CurrentPeriod: statement.Section{"revenue": 120000},
	})
	if len(set[CategoryGrowth]) != 0 {
		t.Fatalf("growth metrics = %d, want none without a previous period", len(set[CategoryGrowth]))
	}

	set = NewCalculator("retail").CalculateAll(&statement.FinancialData{
		CurrentPeriod:  statement.Section{"revenue": 120000, "net_income": 12000},
		PreviousPeriod: statement.Section{"revenue": 100000, "net_income": 10000},
	})

	rg := findMetric(t, set, CategoryGrowth, "Revenue Growth Rate")
	if rg.Value == nil || !almostEqual(*rg.Value, 0.2) {
		t.Errorf("Revenue Growth Rate = %v, want 0.2", rg.Value)
	}
}

func TestUnknownIndustryFallsBackToDefault(t *testing.T) {
	c := NewCalculator("Aerospace")
	if c.Industry() != "default" {
		t.Errorf("Industry() = %q, want default", c.Industry())
	}
}

func TestCalculateAllToleratesNilData(t *testing.T) {
	set := NewCalculator("services").CalculateAll(nil)
	if set == nil {
		t.Fatal("CalculateAll(nil) returned nil set")
	}
	cr := findMetric(t, set, CategoryLiquidity, "Current Ratio")
	if cr.Value != nil {
		t.Errorf("Current Ratio = %v, want nil for empty data", *cr.Value)
	}
}

func TestSafeDivide(t *testing.T) {
	if got := safeDivide(floatPtr(10), floatPtr(4)); got == nil || *got != 2.5 {
		t.Errorf("safeDivide(10, 4) = %v, want 2.5", got)
	}
	if got := safeDivide(floatPtr(10), floatPtr(0)); got != nil {
		t.Errorf("safeDivide(10, 0) = %v, want nil", *got)
	}
	if got := safeDivide(nil, floatPtr(4)); got != nil {
		t.Errorf("safeDivide(nil, 4) = %v, want nil", *got)
	}
	if got := safeDivide(floatPtr(10), nil); got != nil {
		t.Errorf("safeDivide(10, nil) = %v, want nil", *got)
	}
}

func TestGrowthRate(t *testing.T) {
	if got := growthRate(100, 120); got == nil || !almostEqual(*got, 0.2) {
		t.Errorf("growthRate(100, 120) = %v, want 0.2", got)
	}
	// A negative base keeps direction meaningful via the absolute value.
	if got := growthRate(-100, -50); got == nil || !almostEqual(*got, 0.5) {
		t.Errorf("growthRate(-100, -50) = %v, want 0.5", got)
	}
	if got := growthRate(0, 50); got != nil {
		t.Errorf("growthRate(0, 50) = %v, want nil", *got)
	}
}

func TestRateMetric(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		benchmark float64
		want      Rating
	}{
		{"Current Ratio", 1.8, 1.5, RatingExcellent},
		{"Current Ratio", 1.5, 1.5, RatingGood},
		{"Current Ratio", 1.0, 1.5, RatingFair},
		{"Current Ratio", 0.5, 1.5, RatingPoor},
		{"Debt to Equity Ratio", 0.4, 1.0, RatingExcellent},
		{"Debt to Equity Ratio", 1.05, 1.0, RatingGood},
		{"Debt to Equity Ratio", 1.4, 1.0, RatingFair},
		{"Debt to Equity Ratio", 2.0, 1.0, RatingPoor},
	}
	for _, tt := range tests {
		if got := rateMetric(tt.name, floatPtr(tt.value), floatPtr(tt.benchmark)); got != tt.want {
			t.Errorf("rateMetric(%q, %v, %v) = %q, want %q", tt.name, tt.value, tt.benchmark, got, tt.want)
		}
	}
}

func TestRateMetricZeroBenchmark(t *testing.T) {
	// A zero benchmark pins the comparison ratio at 1, which rates as good.
	if got := rateMetric("Asset Turnover", floatPtr(2.0), floatPtr(0)); got != RatingGood {
		t.Errorf("rateMetric with zero benchmark = %q, want %q", got, RatingGood)
	}
}

func TestRateMetricNilInputs(t *testing.T) {
	if got := rateMetric("Current Ratio", nil, floatPtr(1.5)); got != "" {
		t.Errorf("rateMetric(nil value) = %q, want unrated", got)
	}
	if got := rateMetric("Current Ratio", floatPtr(1.5), nil); got != "" {
		t.Errorf("rateMetric(nil benchmark) = %q, want unrated", got)
	}
}

func TestInventoryMetricsOnlyForStockCarriers(t *testing.T) {
	set := NewCalculator("services").CalculateAll(&statement.FinancialData{
		BalanceSheet:    statement.Section{"total_assets": 100000},
		IncomeStatement: statement.Section{"revenue": 50000},
	})
	for _, m := range set[CategoryEfficiency] {
		if m.Name == "Inventory Turnover" || m.Name == "Days Inventory Outstanding" {
			t.Errorf("unexpected inventory metric %q for zero-inventory business", m.Name)
		}
	}
}

func TestFreeCashFlow(t *testing.T) {
	set := NewCalculator("services").CalculateAll(&statement.FinancialData{
		CashFlow: statement.Section{
			"operating_cash_flow": 40000,
			"investing_cash_flow": -15000,
		},
	})
	fcf := findMetric(t, set, CategoryCashFlow, "Free Cash Flow")
	if fcf.Value == nil || *fcf.Value != 25000 {
		t.Errorf("Free Cash Flow = %v, want 25000", fcf.Value)
	}
	if fcf.Rating != RatingGood {
		t.Errorf("Free Cash Flow rating = %q, want %q", fcf.Rating, RatingGood)
	}

	// Positive investing cash flow is not capex.
	set = NewCalculator("services").CalculateAll(&statement.FinancialData{
		CashFlow: statement.Section{
			"operating_cash_flow": 40000,
			"investing_cash_flow": 5000,
		},
	})
	fcf = findMetric(t, set, CategoryCashFlow, "Free Cash Flow")
	if fcf.Value == nil || *fcf.Value != 40000 {
		t.Errorf("Free Cash Flow = %v, want 40000 with investing inflow", fcf.Value)
	}
}
