// Package benchmark positions a company's calculated metrics against
// industry-typical values and rolls them up into a percentile ranking.
package benchmark

import (
	"strings"

	"finsight/pkg/core/metrics"
)

// band holds the industry-typical, top-performer and bottom-performer values
// for one metric.
type band struct {
	Average float64
	Best    float64
	Poor    float64
}

// industryBands keys benchmark bands by industry, then by metric key.
// For metrics where lower is better (debt_to_equity) Best < Average < Poor.
var industryBands = map[string]map[string]band{
	"manufacturing": {
		"current_ratio":      {1.5, 2.5, 1.0},
		"gross_margin":       {0.25, 0.40, 0.15},
		"net_margin":         {0.08, 0.15, 0.03},
		"debt_to_equity":     {1.0, 0.5, 2.0},
		"inventory_turnover": {6, 10, 3},
		"roa":                {0.06, 0.12, 0.02},
	},
	"retail": {
		"current_ratio":      {1.2, 2.0, 0.8},
		"gross_margin":       {0.30, 0.45, 0.20},
		"net_margin":         {0.05, 0.10, 0.02},
		"debt_to_equity":     {0.8, 0.4, 1.5},
		"inventory_turnover": {8, 15, 4},
		"roa":                {0.05, 0.10, 0.01},
	},
	"services": {
		"current_ratio":        {1.5, 2.5, 1.0},
		"gross_margin":         {0.40, 0.60, 0.25},
		"net_margin":           {0.15, 0.25, 0.05},
		"debt_to_equity":       {0.5, 0.2, 1.0},
		"receivables_turnover": {10, 15, 6},
		"roa":                  {0.10, 0.20, 0.03},
	},
	"ecommerce": {
		"current_ratio":      {1.3, 2.0, 0.8},
		"gross_margin":       {0.35, 0.50, 0.20},
		"net_margin":         {0.06, 0.12, 0.00},
		"debt_to_equity":     {0.7, 0.3, 1.5},
		"inventory_turnover": {10, 20, 5},
		"roa":                {0.08, 0.15, 0.02},
	},
	"logistics": {
		"current_ratio":  {1.2, 1.8, 0.8},
		"gross_margin":   {0.20, 0.30, 0.10},
		"net_margin":     {0.05, 0.10, 0.02},
		"debt_to_equity": {1.2, 0.6, 2.5},
		"asset_turnover": {1.5, 2.5, 0.8},
		"roa":            {0.04, 0.08, 0.01},
	},
	"agriculture": {
		"current_ratio":      {1.4, 2.0, 0.9},
		"gross_margin":       {0.20, 0.35, 0.10},
		"net_margin":         {0.06, 0.12, 0.02},
		"debt_to_equity":     {0.8, 0.4, 1.5},
		"inventory_turnover": {4, 8, 2},
		"roa":                {0.05, 0.10, 0.02},
	},
}

// comparableMetrics maps calculated metric names to benchmark keys. Metrics
// not listed here are simply skipped during comparison.
var comparableMetrics = []struct {
	Name     string
	Category metrics.Category
	Key      string
}{
	{"Current Ratio", metrics.CategoryLiquidity, "current_ratio"},
	{"Gross Profit Margin", metrics.CategoryProfitability, "gross_margin"},
	{"Net Profit Margin", metrics.CategoryProfitability, "net_margin"},
	{"Debt to Equity Ratio", metrics.CategorySolvency, "debt_to_equity"},
	{"Inventory Turnover", metrics.CategoryEfficiency, "inventory_turnover"},
	{"Return on Assets (ROA)", metrics.CategoryProfitability, "roa"},
	{"Receivables Turnover", metrics.CategoryEfficiency, "receivables_turnover"},
	{"Asset Turnover", metrics.CategoryEfficiency, "asset_turnover"},
}

// Comparison is the positioning of a single metric against its industry band.
type Comparison struct {
	Metric       string  `json:"metric"`
	CompanyValue float64 `json:"company_value"`
	IndustryAvg  float64 `json:"industry_avg"`
	IndustryBest float64 `json:"industry_best"`
	Percentile   int     `json:"percentile"`
	Status       string  `json:"status"`
}

// Summary counts how many comparisons landed above or below the average.
type Summary struct {
	AboveAverage  int `json:"above_average"`
	BelowAverage  int `json:"below_average"`
	TotalCompared int `json:"total_compared"`
}

// Result is the full benchmarking output for one company.
type Result struct {
	Industry       string       `json:"industry"`
	Comparisons    []Comparison `json:"comparisons"`
	Summary        Summary      `json:"summary"`
	OverallRanking string       `json:"overall_ranking"`
}

// Benchmarker compares metric sets against one industry's bands.
type Benchmarker struct {
	industry string
	bands    map[string]band
}

// NewBenchmarker resolves the industry's benchmark table, falling back to
// services when the industry is unknown.
func NewBenchmarker(industry string) *Benchmarker {
	key := strings.ToLower(strings.TrimSpace(industry))
	bands, ok := industryBands[key]
	if !ok {
		key = "services"
		bands = industryBands[key]
	}
	return &Benchmarker{industry: key, bands: bands}
}

// Industry returns the resolved industry key.
func (b *Benchmarker) Industry() string {
	return b.industry
}

// Compare positions every comparable metric in the set against the industry
// bands. Metrics without a value or without a band for this industry are
// skipped.
func (b *Benchmarker) Compare(m metrics.Set) *Result {
	result := &Result{
		Industry:    b.industry,
		Comparisons: []Comparison{},
	}

	for _, cm := range comparableMetrics {
		value := m.Find(cm.Category, cm.Name)
		if value == nil {
			continue
		}
		bd, ok := b.bands[cm.Key]
		if !ok {
			continue
		}

		percentile := percentileFor(*value, bd, metrics.LowerIsBetter[cm.Name])
		result.Comparisons = append(result.Comparisons, Comparison{
			Metric:       cm.Name,
			CompanyValue: *value,
			IndustryAvg:  bd.Average,
			IndustryBest: bd.Best,
			Percentile:   percentile,
			Status:       statusFor(percentile),
		})

		if percentile >= 50 {
			result.Summary.AboveAverage++
		} else {
			result.Summary.BelowAverage++
		}
		result.Summary.TotalCompared++
	}

	result.OverallRanking = rankingFor(result.Comparisons)
	return result
}

// percentileFor interpolates a coarse percentile within the band. The scale
// is piecewise linear between the poor, average and best anchors, truncated
// to whole percentiles.
func percentileFor(value float64, bd band, lowerIsBetter bool) int {
	if lowerIsBetter {
		switch {
		case value <= bd.Best:
			return 90
		case value <= bd.Average:
			return 50 + int(40*(bd.Average-value)/(bd.Average-bd.Best))
		case value <= bd.Poor:
			return 10 + int(40*(bd.Poor-value)/(bd.Poor-bd.Average))
		default:
			return 10
		}
	}
	switch {
	case value >= bd.Best:
		return 90
	case value >= bd.Average:
		return 50 + int(40*(value-bd.Average)/(bd.Best-bd.Average))
	case value >= bd.Poor:
		return 10 + int(40*(value-bd.Poor)/(bd.Average-bd.Poor))
	default:
		return 10
	}
}

func statusFor(percentile int) string {
	switch {
	case percentile >= 70:
		return "above_average"
	case percentile >= 40:
		return "average"
	default:
		return "below_average"
	}
}

// rankingFor classifies the mean percentile across all comparisons.
func rankingFor(comparisons []Comparison) string {
	if len(comparisons) == 0 {
		return "insufficient_data"
	}
	var sum int
	for _, c := range comparisons {
		sum += c.Percentile
	}
	mean := float64(sum) / float64(len(comparisons))
	switch {
	case mean >= 75:
		return "top_quartile"
	case mean >= 50:
		return "above_median"
	case mean >= 25:
		return "below_median"
	default:
		return "bottom_quartile"
	}
}
