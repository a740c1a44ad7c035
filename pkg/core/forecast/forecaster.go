// Package forecast produces simple trend-based projections of revenue,
// expenses, cash flow and working capital over a configurable horizon.
package forecast

import (
	"fmt"
	"math"
	"time"

	"finsight/pkg/core/statement"
)

// DefaultPeriods is the forecast horizon when the caller does not choose one.
const DefaultPeriods = 12

// RevenueForecast projects monthly revenue with optimistic and pessimistic
// bands. Err is set instead of the series when inputs are insufficient.
type RevenueForecast struct {
	Err         string    `json:"error,omitempty"`
	Periods     []string  `json:"periods,omitempty"`
	BaseCase    []float64 `json:"base_case,omitempty"`
	Optimistic  []float64 `json:"optimistic,omitempty"`
	Pessimistic []float64 `json:"pessimistic,omitempty"`
	GrowthRate  float64   `json:"growth_rate_pct,omitempty"`
	Assumption  string    `json:"assumption,omitempty"`
}

// ExpenseForecast projects monthly expenses tied to the revenue projection.
type ExpenseForecast struct {
	Err          string    `json:"error,omitempty"`
	Periods      []string  `json:"periods,omitempty"`
	BaseCase     []float64 `json:"base_case,omitempty"`
	Optimistic   []float64 `json:"optimistic,omitempty"`
	Pessimistic  []float64 `json:"pessimistic,omitempty"`
	ExpenseRatio float64   `json:"expense_ratio_pct,omitempty"`
	Assumption   string    `json:"assumption,omitempty"`
}

// CashFlowForecast is the net of the revenue and expense projections.
type CashFlowForecast struct {
	Err         string    `json:"error,omitempty"`
	Periods     []string  `json:"periods,omitempty"`
	BaseCase    []float64 `json:"base_case,omitempty"`
	Optimistic  []float64 `json:"optimistic,omitempty"`
	Pessimistic []float64 `json:"pessimistic,omitempty"`
	Cumulative  []float64 `json:"cumulative,omitempty"`
}

// WorkingCapitalForecast projects working capital at a fixed growth rate.
type WorkingCapitalForecast struct {
	Err                   string    `json:"error,omitempty"`
	Periods               []string  `json:"periods,omitempty"`
	BaseCase              []float64 `json:"base_case,omitempty"`
	Optimistic            []float64 `json:"optimistic,omitempty"`
	Pessimistic           []float64 `json:"pessimistic,omitempty"`
	CurrentWorkingCapital float64   `json:"current_working_capital,omitempty"`
}

// Forecast bundles all four projections for one horizon.
type Forecast struct {
	ForecastDate   time.Time               `json:"forecast_date"`
	Periods        int                     `json:"periods"`
	Revenue        *RevenueForecast        `json:"revenue_forecast"`
	Expense        *ExpenseForecast        `json:"expense_forecast"`
	CashFlow       *CashFlowForecast       `json:"cash_flow_forecast"`
	WorkingCapital *WorkingCapitalForecast `json:"working_capital_forecast"`
}

// Forecaster generates projections. Clock is injectable so period labels can
// be pinned in tests; it defaults to time.Now.
type Forecaster struct {
	Clock func() time.Time
}

// NewForecaster creates a forecaster using the wall clock.
func NewForecaster() *Forecaster {
	return &Forecaster{Clock: time.Now}
}

// Generate projects all four series over the given number of monthly periods.
// Each series degrades independently: missing inputs set that series' Err
// while the others still produce numbers.
func (f *Forecaster) Generate(data *statement.FinancialData, periods int) *Forecast {
	if data == nil {
		data = &statement.FinancialData{}
	}
	if periods <= 0 {
		periods = DefaultPeriods
	}

	now := f.now()
	labels := periodLabels(now, periods)

	revenue := f.forecastRevenue(data, labels)
	expense := f.forecastExpenses(data, revenue, labels)
	cashFlow := forecastCashFlow(revenue, expense, labels)
	workingCapital := forecastWorkingCapital(data, labels)

	return &Forecast{
		ForecastDate:   now,
		Periods:        periods,
		Revenue:        revenue,
		Expense:        expense,
		CashFlow:       cashFlow,
		WorkingCapital: workingCapital,
	}
}

func (f *Forecaster) now() time.Time {
	if f.Clock != nil {
		return f.Clock()
	}
	return time.Now()
}

// periodLabels formats the horizon as month labels, one per 30-day step.
func periodLabels(now time.Time, periods int) []string {
	labels := make([]string, periods)
	for i := 0; i < periods; i++ {
		labels[i] = now.Add(time.Duration(i+1) * 30 * 24 * time.Hour).Format("Jan 2006")
	}
	return labels
}

// forecastRevenue compounds the last known revenue at the annualized
// historical growth rate spread across months. With no history, the current
// income statement revenue seeds a flat three-point pseudo-history.
func (f *Forecaster) forecastRevenue(data *statement.FinancialData, labels []string) *RevenueForecast {
	historical := data.HistoricalRevenue
	if len(historical) == 0 {
		if current := data.IncomeStatement.Get("revenue", "total_revenue", "sales"); current > 0 {
			historical = []float64{current * 0.9, current * 0.95, current}
		}
	}
	if len(historical) == 0 {
		return &RevenueForecast{Err: "Insufficient data for revenue forecast"}
	}

	growth := 0.05
	if len(historical) >= 2 && historical[0] != 0 {
		growth = (historical[len(historical)-1] - historical[0]) / historical[0] / float64(len(historical))
	}

	last := historical[len(historical)-1]
	base := make([]float64, len(labels))
	optimistic := make([]float64, len(labels))
	pessimistic := make([]float64, len(labels))
	for i := range labels {
		base[i] = round2(last * math.Pow(1+growth/12, float64(i+1)))
		optimistic[i] = round2(base[i] * 1.15)
		pessimistic[i] = round2(base[i] * 0.85)
	}

	growthPct := round1(growth * 100)
	return &RevenueForecast{
		Periods:     labels,
		BaseCase:    base,
		Optimistic:  optimistic,
		Pessimistic: pessimistic,
		GrowthRate:  growthPct,
		Assumption:  fmt.Sprintf("%.1f%% annual growth rate based on historical trend", growthPct),
	}
}

// forecastExpenses scales the revenue projection by the observed expense
// ratio. When the revenue forecast failed, expenses fall back to a flat
// monthly spread of the current total.
func (f *Forecaster) forecastExpenses(data *statement.FinancialData, revenue *RevenueForecast, labels []string) *ExpenseForecast {
	expenses := data.IncomeStatement.Get("total_expenses", "expenses", "operating_expenses")
	if expenses == 0 {
		return &ExpenseForecast{Err: "Insufficient expense data"}
	}

	ratio := 0.8
	if rev := data.IncomeStatement.Get("revenue", "total_revenue", "sales"); rev > 0 {
		ratio = expenses / rev
	}

	base := make([]float64, len(labels))
	if revenue.Err != "" {
		flat := round2(expenses / 12)
		for i := range base {
			base[i] = flat
		}
	} else {
		for i, rev := range revenue.BaseCase {
			base[i] = round2(rev * ratio)
		}
	}

	optimistic := make([]float64, len(labels))
	pessimistic := make([]float64, len(labels))
	for i, b := range base {
		pessimistic[i] = round2(b * 1.10)
		optimistic[i] = round2(b * 0.95)
	}

	ratioPct := round1(ratio * 100)
	return &ExpenseForecast{
		Periods:      labels,
		BaseCase:     base,
		Optimistic:   optimistic,
		Pessimistic:  pessimistic,
		ExpenseRatio: ratioPct,
		Assumption:   fmt.Sprintf("Expense ratio of %.1f%% maintained", ratioPct),
	}
}

// forecastCashFlow nets the revenue and expense base cases and accumulates
// the running balance.
func forecastCashFlow(revenue *RevenueForecast, expense *ExpenseForecast, labels []string) *CashFlowForecast {
	if revenue.Err != "" || expense.Err != "" {
		return &CashFlowForecast{Err: "Insufficient data for cash flow forecast"}
	}

	base := make([]float64, len(labels))
	optimistic := make([]float64, len(labels))
	pessimistic := make([]float64, len(labels))
	cumulative := make([]float64, len(labels))
	var running float64
	for i := range labels {
		base[i] = round2(revenue.BaseCase[i] - expense.BaseCase[i])
		optimistic[i] = round2(base[i] * 1.3)
		pessimistic[i] = round2(base[i] * 0.7)
		running += base[i]
		cumulative[i] = round2(running)
	}

	return &CashFlowForecast{
		Periods:     labels,
		BaseCase:    base,
		Optimistic:  optimistic,
		Pessimistic: pessimistic,
		Cumulative:  cumulative,
	}
}

// forecastWorkingCapital compounds the current working capital at 3% per
// period.
func forecastWorkingCapital(data *statement.FinancialData, labels []string) *WorkingCapitalForecast {
	currentAssets := data.BalanceSheet.Get("current_assets", "total_current_assets")
	if currentAssets == 0 {
		return &WorkingCapitalForecast{Err: "Insufficient balance sheet data"}
	}
	currentLiabilities := data.BalanceSheet.Get("current_liabilities", "total_current_liabilities")
	workingCapital := currentAssets - currentLiabilities

	base := make([]float64, len(labels))
	optimistic := make([]float64, len(labels))
	pessimistic := make([]float64, len(labels))
	for i := range labels {
		base[i] = round2(workingCapital * math.Pow(1.03, float64(i+1)))
		optimistic[i] = round2(base[i] * 1.1)
		pessimistic[i] = round2(base[i] * 0.9)
	}

	return &WorkingCapitalForecast{
		Periods:               labels,
		BaseCase:              base,
		Optimistic:            optimistic,
		Pessimistic:           pessimistic,
		CurrentWorkingCapital: workingCapital,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
