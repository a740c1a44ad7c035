package metrics

import (
	"math"
	"strings"

	"finsight/pkg/core/statement"
)

// =============================================================================
// METRICS CALCULATOR
// =============================================================================

// Calculator computes the full ratio set for one industry context.
// It is immutable after construction and safe for concurrent use.
type Calculator struct {
	industry   string
	benchmarks benchmarkSet
}

// NewCalculator creates a calculator for the given industry.
// Unknown industries fall back to the default benchmark set.
func NewCalculator(industry string) *Calculator {
	key := strings.ToLower(industry)
	bm, ok := industryBenchmarks[key]
	if !ok {
		key = "default"
		bm = industryBenchmarks["default"]
	}
	return &Calculator{industry: key, benchmarks: bm}
}

// Industry returns the resolved industry key (after fallback).
func (c *Calculator) Industry() string { return c.industry }

// CalculateAll computes every available metric, grouped by category.
// Growth metrics are only produced when both comparison periods are present;
// an empty growth list is normal, not an error.
func (c *Calculator) CalculateAll(data *statement.FinancialData) Set {
	if data == nil {
		data = &statement.FinancialData{}
	}
	return Set{
		CategoryLiquidity:     c.liquidityRatios(data.BalanceSheet),
		CategoryProfitability: c.profitabilityRatios(data.IncomeStatement, data.BalanceSheet),
		CategorySolvency:      c.solvencyRatios(data.BalanceSheet, data.IncomeStatement),
		CategoryEfficiency:    c.efficiencyRatios(data.BalanceSheet, data.IncomeStatement),
		CategoryGrowth:        c.growthMetrics(data),
		CategoryCashFlow:      c.cashFlowMetrics(data.CashFlow, data.IncomeStatement),
	}
}

// -----------------------------------------------------------------------------
// Liquidity
// -----------------------------------------------------------------------------

func (c *Calculator) liquidityRatios(bs statement.Section) []Result {
	currentAssets := bs.Get("current_assets")
	currentLiabilities := bs.Get("current_liabilities")
	inventory := bs.Get("inventory")
	cash := bs.Get("cash")

	currentRatio := safeDivide(floatPtr(currentAssets), floatPtr(currentLiabilities))
	quickRatio := safeDivide(floatPtr(currentAssets-inventory), floatPtr(currentLiabilities))
	cashRatio := safeDivide(floatPtr(cash), floatPtr(currentLiabilities))
	workingCapital := currentAssets - currentLiabilities

	wcRating := RatingPoor
	if workingCapital > 0 {
		wcRating = RatingGood
	}

	return []Result{
		{
			Name:           "Current Ratio",
			Value:          currentRatio,
			Category:       CategoryLiquidity,
			Benchmark:      c.benchmarks.CurrentRatio,
			Rating:         rateMetric("Current Ratio", currentRatio, c.benchmarks.CurrentRatio),
			Interpretation: interpretCurrentRatio(currentRatio),
			Formula:        "Current Assets / Current Liabilities",
		},
		{
			Name:           "Quick Ratio",
			Value:          quickRatio,
			Category:       CategoryLiquidity,
			Benchmark:      c.benchmarks.QuickRatio,
			Rating:         rateMetric("Quick Ratio", quickRatio, c.benchmarks.QuickRatio),
			Interpretation: interpretQuickRatio(quickRatio),
			Formula:        "(Current Assets - Inventory) / Current Liabilities",
		},
		{
			Name:           "Cash Ratio",
			Value:          cashRatio,
			Category:       CategoryLiquidity,
			Benchmark:      floatPtr(0.2),
			Rating:         rateMetric("Cash Ratio", cashRatio, floatPtr(0.2)),
			Interpretation: "Measures ability to pay off short-term debt with cash",
			Formula:        "Cash / Current Liabilities",
		},
		{
			Name:           "Working Capital",
			Value:          floatPtr(workingCapital),
			Category:       CategoryLiquidity,
			Rating:         wcRating,
			Interpretation: "Positive working capital indicates healthy short-term financial position",
			Formula:        "Current Assets - Current Liabilities",
		},
	}
}

// -----------------------------------------------------------------------------
// Profitability
// -----------------------------------------------------------------------------

func (c *Calculator) profitabilityRatios(is, bs statement.Section) []Result {
	revenue := is.Get("revenue", "total_revenue")
	grossProfit := is.Get("gross_profit")
	operatingIncome := is.Get("operating_income")
	netIncome := is.Get("net_income", "net_profit")
	totalAssets := bs.Get("total_assets")
	totalEquity := bs.Get("total_equity", "shareholders_equity")

	grossMargin := safeDivide(floatPtr(grossProfit), floatPtr(revenue))
	operatingMargin := safeDivide(floatPtr(operatingIncome), floatPtr(revenue))
	netMargin := safeDivide(floatPtr(netIncome), floatPtr(revenue))
	roa := safeDivide(floatPtr(netIncome), floatPtr(totalAssets))
	roe := safeDivide(floatPtr(netIncome), floatPtr(totalEquity))

	return []Result{
		{
			Name:           "Gross Profit Margin",
			Value:          grossMargin,
			Category:       CategoryProfitability,
			Benchmark:      c.benchmarks.GrossMargin,
			Rating:         rateMetric("Gross Profit Margin", grossMargin, c.benchmarks.GrossMargin),
			Interpretation: "Percentage of revenue retained after direct costs",
			Formula:        "Gross Profit / Revenue",
		},
		{
			Name:           "Operating Profit Margin",
			Value:          operatingMargin,
			Category:       CategoryProfitability,
			Benchmark:      floatPtr(0.15),
			Rating:         rateMetric("Operating Profit Margin", operatingMargin, floatPtr(0.15)),
			Interpretation: "Operational efficiency indicator",
			Formula:        "Operating Income / Revenue",
		},
		{
			Name:           "Net Profit Margin",
			Value:          netMargin,
			Category:       CategoryProfitability,
			Benchmark:      c.benchmarks.NetMargin,
			Rating:         rateMetric("Net Profit Margin", netMargin, c.benchmarks.NetMargin),
			Interpretation: "Bottom-line profitability as percentage of revenue",
			Formula:        "Net Income / Revenue",
		},
		{
			Name:           "Return on Assets (ROA)",
			Value:          roa,
			Category:       CategoryProfitability,
			Benchmark:      floatPtr(0.05),
			Rating:         rateMetric("Return on Assets (ROA)", roa, floatPtr(0.05)),
			Interpretation: "How efficiently assets generate profit",
			Formula:        "Net Income / Total Assets",
		},
		{
			Name:           "Return on Equity (ROE)",
			Value:          roe,
			Category:       CategoryProfitability,
			Benchmark:      floatPtr(0.15),
			Rating:         rateMetric("Return on Equity (ROE)", roe, floatPtr(0.15)),
			Interpretation: "Return generated for shareholders",
			Formula:        "Net Income / Shareholders' Equity",
		},
	}
}

// -----------------------------------------------------------------------------
// Solvency
// -----------------------------------------------------------------------------

func (c *Calculator) solvencyRatios(bs, is statement.Section) []Result {
	totalDebt := bs.Get("total_debt", "total_liabilities")
	totalEquity := bs.Get("total_equity", "shareholders_equity")
	totalAssets := bs.Get("total_assets")
	operatingIncome := is.Get("operating_income", "ebit")
	interestExpense := is.Get("interest_expense")

	debtToEquity := safeDivide(floatPtr(totalDebt), floatPtr(totalEquity))
	debtRatio := safeDivide(floatPtr(totalDebt), floatPtr(totalAssets))
	interestCoverage := safeDivide(floatPtr(operatingIncome), floatPtr(interestExpense))
	equityRatio := safeDivide(floatPtr(totalEquity), floatPtr(totalAssets))

	return []Result{
		{
			Name:           "Debt to Equity Ratio",
			Value:          debtToEquity,
			Category:       CategorySolvency,
			Benchmark:      c.benchmarks.DebtToEquity,
			Rating:         rateMetric("Debt to Equity Ratio", debtToEquity, c.benchmarks.DebtToEquity),
			Interpretation: "Financial leverage indicator",
			Formula:        "Total Debt / Total Equity",
		},
		{
			Name:           "Debt Ratio",
			Value:          debtRatio,
			Category:       CategorySolvency,
			Benchmark:      floatPtr(0.5),
			Rating:         rateMetric("Debt Ratio", debtRatio, floatPtr(0.5)),
			Interpretation: "Percentage of assets financed by debt",
			Formula:        "Total Debt / Total Assets",
		},
		{
			Name:           "Interest Coverage Ratio",
			Value:          interestCoverage,
			Category:       CategorySolvency,
			Benchmark:      floatPtr(3.0),
			Rating:         rateMetric("Interest Coverage Ratio", interestCoverage, floatPtr(3.0)),
			Interpretation: "Ability to pay interest on debt",
			Formula:        "Operating Income / Interest Expense",
		},
		{
			Name:           "Equity Ratio",
			Value:          equityRatio,
			Category:       CategorySolvency,
			Benchmark:      floatPtr(0.5),
			Rating:         rateMetric("Equity Ratio", equityRatio, floatPtr(0.5)),
			Interpretation: "Portion of assets funded by equity",
			Formula:        "Total Equity / Total Assets",
		},
	}
}

// -----------------------------------------------------------------------------
// Efficiency
// -----------------------------------------------------------------------------

func (c *Calculator) efficiencyRatios(bs, is statement.Section) []Result {
	var results []Result

	revenue := is.Get("revenue", "total_revenue")
	cogs := is.Get("cost_of_goods_sold", "cogs")
	inventory := bs.Get("inventory")
	receivables := bs.Get("accounts_receivable", "receivables")
	payables := bs.Get("accounts_payable", "payables")
	totalAssets := bs.Get("total_assets")

	// Inventory metrics only make sense for stock-carrying businesses.
	if inventory > 0 {
		numerator := cogs
		if numerator == 0 {
			numerator = revenue
		}
		inventoryTurnover := safeDivide(floatPtr(numerator), floatPtr(inventory))
		results = append(results, Result{
			Name:           "Inventory Turnover",
			Value:          inventoryTurnover,
			Category:       CategoryEfficiency,
			Benchmark:      c.benchmarks.InventoryTurnover,
			Rating:         rateMetric("Inventory Turnover", inventoryTurnover, c.benchmarks.InventoryTurnover),
			Interpretation: "Times inventory is sold and replaced per year",
			Formula:        "COGS / Average Inventory",
		})

		if inventoryTurnover != nil && *inventoryTurnover != 0 {
			dio := 365 / *inventoryTurnover
			results = append(results, Result{
				Name:           "Days Inventory Outstanding",
				Value:          floatPtr(dio),
				Category:       CategoryEfficiency,
				Benchmark:      floatPtr(60),
				Rating:         rateMetric("Days Inventory Outstanding", floatPtr(dio), floatPtr(60)),
				Interpretation: "Average days to sell inventory",
				Formula:        "365 / Inventory Turnover",
			})
		}
	}

	receivablesTurnover := safeDivide(floatPtr(revenue), floatPtr(receivables))
	results = append(results, Result{
		Name:           "Receivables Turnover",
		Value:          receivablesTurnover,
		Category:       CategoryEfficiency,
		Benchmark:      c.benchmarks.ReceivablesTurnover,
		Rating:         rateMetric("Receivables Turnover", receivablesTurnover, c.benchmarks.ReceivablesTurnover),
		Interpretation: "Efficiency in collecting receivables",
		Formula:        "Revenue / Accounts Receivable",
	})

	if receivablesTurnover != nil && *receivablesTurnover != 0 {
		dso := 365 / *receivablesTurnover
		results = append(results, Result{
			Name:           "Days Sales Outstanding",
			Value:          floatPtr(dso),
			Category:       CategoryEfficiency,
			Benchmark:      floatPtr(45),
			Rating:         rateMetric("Days Sales Outstanding", floatPtr(dso), floatPtr(45)),
			Interpretation: "Average days to collect payment",
			Formula:        "365 / Receivables Turnover",
		})
	}

	payablesNumerator := cogs
	if payablesNumerator == 0 {
		payablesNumerator = revenue * 0.7 // estimated purchases when COGS is unreported
	}
	payablesTurnover := safeDivide(floatPtr(payablesNumerator), floatPtr(payables))
	if payablesTurnover != nil && *payablesTurnover != 0 {
		results = append(results, Result{
			Name:           "Payables Turnover",
			Value:          payablesTurnover,
			Category:       CategoryEfficiency,
			Benchmark:      floatPtr(8.0),
			Interpretation: "How quickly company pays suppliers",
			Formula:        "COGS / Accounts Payable",
		})

		dpo := 365 / *payablesTurnover
		results = append(results, Result{
			Name:           "Days Payables Outstanding",
			Value:          floatPtr(dpo),
			Category:       CategoryEfficiency,
			Benchmark:      floatPtr(45),
			Interpretation: "Average days to pay suppliers",
			Formula:        "365 / Payables Turnover",
		})
	}

	assetTurnover := safeDivide(floatPtr(revenue), floatPtr(totalAssets))
	results = append(results, Result{
		Name:           "Asset Turnover",
		Value:          assetTurnover,
		Category:       CategoryEfficiency,
		Benchmark:      floatPtr(1.0),
		Rating:         rateMetric("Asset Turnover", assetTurnover, floatPtr(1.0)),
		Interpretation: "Revenue generated per rupee of assets",
		Formula:        "Revenue / Total Assets",
	})

	return results
}

// -----------------------------------------------------------------------------
// Growth
// -----------------------------------------------------------------------------

func (c *Calculator) growthMetrics(data *statement.FinancialData) []Result {
	current := data.CurrentPeriod
	previous := data.PreviousPeriod
	if !current.Has() || !previous.Has() {
		return []Result{}
	}

	revenueGrowth := growthRate(previous.Get("revenue"), current.Get("revenue"))
	profitGrowth := growthRate(previous.Get("net_income"), current.Get("net_income"))

	return []Result{
		{
			Name:           "Revenue Growth Rate",
			Value:          revenueGrowth,
			Category:       CategoryGrowth,
			Benchmark:      floatPtr(0.10),
			Rating:         rateMetric("Revenue Growth Rate", revenueGrowth, floatPtr(0.10)),
			Interpretation: "Year-over-year revenue growth",
			Formula:        "(Current Revenue - Previous Revenue) / Previous Revenue",
		},
		{
			Name:           "Net Profit Growth Rate",
			Value:          profitGrowth,
			Category:       CategoryGrowth,
			Benchmark:      floatPtr(0.10),
			Rating:         rateMetric("Net Profit Growth Rate", profitGrowth, floatPtr(0.10)),
			Interpretation: "Year-over-year profit growth",
			Formula:        "(Current Profit - Previous Profit) / Previous Profit",
		},
	}
}

// -----------------------------------------------------------------------------
// Cash flow
// -----------------------------------------------------------------------------

func (c *Calculator) cashFlowMetrics(cf, is statement.Section) []Result {
	var results []Result

	operatingCashFlow := cf.Get("operating_cash_flow")
	investingCashFlow := cf.Get("investing_cash_flow")
	netIncome := is.Get("net_income")
	revenue := is.Get("revenue")

	if operatingCashFlow != 0 && revenue != 0 {
		ocfRatio := operatingCashFlow / revenue
		results = append(results, Result{
			Name:           "Operating Cash Flow Ratio",
			Value:          floatPtr(ocfRatio),
			Category:       CategoryCashFlow,
			Benchmark:      floatPtr(0.10),
			Rating:         rateMetric("Operating Cash Flow Ratio", floatPtr(ocfRatio), floatPtr(0.10)),
			Interpretation: "Cash generated from operations per rupee of sales",
			Formula:        "Operating Cash Flow / Revenue",
		})
	}

	if operatingCashFlow != 0 && netIncome != 0 {
		cashQuality := operatingCashFlow / netIncome
		if cashQuality != 0 {
			results = append(results, Result{
				Name:           "Cash Flow Quality",
				Value:          floatPtr(cashQuality),
				Category:       CategoryCashFlow,
				Benchmark:      floatPtr(1.0),
				Rating:         rateMetric("Cash Flow Quality", floatPtr(cashQuality), floatPtr(1.0)),
				Interpretation: "Quality of earnings - cash vs accrual profit",
				Formula:        "Operating Cash Flow / Net Income",
			})
		}
	}

	// Investing outflows approximate capex; inflows are treated as zero capex.
	capex := 0.0
	if investingCashFlow < 0 {
		capex = math.Abs(investingCashFlow)
	}
	freeCashFlow := operatingCashFlow - capex
	fcfRating := RatingPoor
	if freeCashFlow > 0 {
		fcfRating = RatingGood
	}
	results = append(results, Result{
		Name:           "Free Cash Flow",
		Value:          floatPtr(freeCashFlow),
		Category:       CategoryCashFlow,
		Rating:         fcfRating,
		Interpretation: "Cash available after capital expenditures",
		Formula:        "Operating Cash Flow - Capital Expenditures",
	})

	return results
}

// =============================================================================
// HELPERS
// =============================================================================

// safeDivide divides two optional values. The result is nil when either input
// is absent or the denominator is zero; it is never NaN or Inf.
func safeDivide(numerator, denominator *float64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}
	v := *numerator / *denominator
	return &v
}

// growthRate returns (new-old)/|old|, or nil when the base period is zero.
func growthRate(oldValue, newValue float64) *float64 {
	if oldValue == 0 {
		return nil
	}
	v := (newValue - oldValue) / math.Abs(oldValue)
	return &v
}

// rateMetric grades a value against its benchmark. Direction comes from the
// shared LowerIsBetter table; unknown metrics are treated as higher-is-better.
func rateMetric(name string, value, benchmark *float64) Rating {
	if value == nil || benchmark == nil {
		return ""
	}

	ratio := 1.0
	if *benchmark != 0 {
		ratio = *value / *benchmark
	}

	if LowerIsBetter[name] {
		switch {
		case ratio <= 0.8:
			return RatingExcellent
		case ratio <= 1.1:
			return RatingGood
		case ratio <= 1.5:
			return RatingFair
		default:
			return RatingPoor
		}
	}
	switch {
	case ratio >= 1.2:
		return RatingExcellent
	case ratio >= 0.9:
		return RatingGood
	case ratio >= 0.6:
		return RatingFair
	default:
		return RatingPoor
	}
}

func interpretCurrentRatio(value *float64) string {
	if value == nil {
		return "Unable to calculate"
	}
	switch {
	case *value >= 2.0:
		return "Excellent liquidity - strong ability to meet short-term obligations"
	case *value >= 1.5:
		return "Good liquidity - comfortable margin for short-term payments"
	case *value >= 1.0:
		return "Adequate liquidity - can meet current obligations"
	default:
		return "Low liquidity - may struggle to meet short-term obligations"
	}
}

func interpretQuickRatio(value *float64) string {
	if value == nil {
		return "Unable to calculate"
	}
	switch {
	case *value >= 1.5:
		return "Strong liquidity without relying on inventory"
	case *value >= 1.0:
		return "Good ability to meet obligations without selling inventory"
	case *value >= 0.5:
		return "Moderate liquidity - some reliance on inventory"
	default:
		return "Low quick liquidity - heavily dependent on inventory sales"
	}
}
