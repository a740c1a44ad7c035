package forecast

import (
	"math"
	"testing"
	"time"

	"finsight/pkg/core/statement"
)

func fixedClock() func() time.Time {
	base := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return base }
}

func TestEmptyDataDegradesPerSeries(t *testing.T) {
	f := NewForecaster()
	result := f.Generate(&statement.FinancialData{}, 12)

	if result.Revenue.Err != "Insufficient data for revenue forecast" {
		t.Errorf("revenue err = %q", result.Revenue.Err)
	}
	if result.Expense.Err != "Insufficient expense data" {
		t.Errorf("expense err = %q", result.Expense.Err)
	}
	if result.CashFlow.Err != "Insufficient data for cash flow forecast" {
		t.Errorf("cash flow err = %q", result.CashFlow.Err)
	}
	if result.WorkingCapital.Err != "Insufficient balance sheet data" {
		t.Errorf("working capital err = %q", result.WorkingCapital.Err)
	}
}

func TestRevenueForecastFromHistory(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	data := &statement.FinancialData{
		HistoricalRevenue: []float64{100000, 110000, 120000},
	}

	result := f.Generate(data, 6)
	rev := result.Revenue
	if rev.Err != "" {
		t.Fatalf("unexpected error: %q", rev.Err)
	}
	if len(rev.BaseCase) != 6 {
		t.Fatalf("base case length = %d, want 6", len(rev.BaseCase))
	}

	// Annualized growth: (120000-100000)/100000 / 3 periods.
	wantGrowth := math.Round(0.2/3*100*10) / 10
	if rev.GrowthRate != wantGrowth {
		t.Errorf("growth rate = %v, want %v", rev.GrowthRate, wantGrowth)
	}

	// First month compounds once from the latest revenue.
	monthly := 0.2 / 3 / 12
	want := math.Round(120000*(1+monthly)*100) / 100
	if rev.BaseCase[0] != want {
		t.Errorf("base[0] = %v, want %v", rev.BaseCase[0], want)
	}

	for i := range rev.BaseCase {
		wantOpt := math.Round(rev.BaseCase[i]*1.15*100) / 100
		wantPes := math.Round(rev.BaseCase[i]*0.85*100) / 100
		if rev.Optimistic[i] != wantOpt || rev.Pessimistic[i] != wantPes {
			t.Errorf("bands[%d] = %v/%v, want %v/%v", i, rev.Optimistic[i], rev.Pessimistic[i], wantOpt, wantPes)
		}
	}
}

func TestRevenueForecastSeedsFromCurrentStatement(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	data := &statement.FinancialData{
		IncomeStatement: statement.Section{"revenue": 60000},
	}

	result := f.Generate(data, 3)
	if result.Revenue.Err != "" {
		t.Fatalf("unexpected error: %q", result.Revenue.Err)
	}
	// The pseudo-history [0.9r, 0.95r, r] implies positive growth.
	if result.Revenue.GrowthRate <= 0 {
		t.Errorf("growth rate = %v, want positive from seeded history", result.Revenue.GrowthRate)
	}
}

func TestExpenseForecastTracksRevenue(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	data := &statement.FinancialData{
		IncomeStatement: statement.Section{
			"revenue":        100000,
			"total_expenses": 80000,
		},
		HistoricalRevenue: []float64{100000},
	}

	result := f.Generate(data, 4)
	exp := result.Expense
	if exp.Err != "" {
		t.Fatalf("unexpected error: %q", exp.Err)
	}
	if exp.ExpenseRatio != 80 {
		t.Errorf("expense ratio = %v, want 80", exp.ExpenseRatio)
	}
	for i := range exp.BaseCase {
		want := math.Round(result.Revenue.BaseCase[i]*0.8*100) / 100
		if exp.BaseCase[i] != want {
			t.Errorf("expense base[%d] = %v, want %v", i, exp.BaseCase[i], want)
		}
	}
}

func TestCashFlowCumulativeIsRunningSum(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	data := &statement.FinancialData{
		IncomeStatement: statement.Section{
			"revenue":        100000,
			"total_expenses": 70000,
		},
		HistoricalRevenue: []float64{90000, 100000},
	}

	result := f.Generate(data, 6)
	cf := result.CashFlow
	if cf.Err != "" {
		t.Fatalf("unexpected error: %q", cf.Err)
	}

	var running float64
	for i := range cf.BaseCase {
		want := math.Round((result.Revenue.BaseCase[i]-result.Expense.BaseCase[i])*100) / 100
		if cf.BaseCase[i] != want {
			t.Errorf("cash flow base[%d] = %v, want %v", i, cf.BaseCase[i], want)
		}
		running += cf.BaseCase[i]
		if got := cf.Cumulative[i]; got != math.Round(running*100)/100 {
			t.Errorf("cumulative[%d] = %v, want %v", i, got, math.Round(running*100)/100)
		}
	}
}

func TestWorkingCapitalForecast(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	data := &statement.FinancialData{
		BalanceSheet: statement.Section{
			"current_assets":      150000,
			"current_liabilities": 100000,
		},
	}

	result := f.Generate(data, 3)
	wc := result.WorkingCapital
	if wc.Err != "" {
		t.Fatalf("unexpected error: %q", wc.Err)
	}
	if wc.CurrentWorkingCapital != 50000 {
		t.Errorf("current working capital = %v, want 50000", wc.CurrentWorkingCapital)
	}
	for i := range wc.BaseCase {
		want := math.Round(50000*math.Pow(1.03, float64(i+1))*100) / 100
		if wc.BaseCase[i] != want {
			t.Errorf("base[%d] = %v, want %v", i, wc.BaseCase[i], want)
		}
	}
}

func TestPeriodLabelsUseThirtyDaySteps(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	data := &statement.FinancialData{
		HistoricalRevenue: []float64{100000},
	}

	// From Jan 15: +30d = Feb 14, +60d = Mar 16, +90d = Apr 15.
	result := f.Generate(data, 3)
	want := []string{"Feb 2025", "Mar 2025", "Apr 2025"}
	for i, label := range result.Revenue.Periods {
		if label != want[i] {
			t.Errorf("period[%d] = %q, want %q", i, label, want[i])
		}
	}
}

func TestDefaultHorizon(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	result := f.Generate(&statement.FinancialData{HistoricalRevenue: []float64{100000}}, 0)
	if result.Periods != DefaultPeriods {
		t.Errorf("periods = %d, want %d", result.Periods, DefaultPeriods)
	}
	if len(result.Revenue.BaseCase) != DefaultPeriods {
		t.Errorf("base case length = %d, want %d", len(result.Revenue.BaseCase), DefaultPeriods)
	}
}

func TestSingleHistoricalPointUsesDefaultGrowth(t *testing.T) {
	f := &Forecaster{Clock: fixedClock()}
	result := f.Generate(&statement.FinancialData{HistoricalRevenue: []float64{100000}}, 3)
	if result.Revenue.GrowthRate != 5.0 {
		t.Errorf("growth rate = %v, want default 5.0", result.Revenue.GrowthRate)
	}
}
