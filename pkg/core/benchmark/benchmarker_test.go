package benchmark

import (
	"testing"

	"finsight/pkg/core/metrics"
)

func floatPtr(f float64) *float64 { return &f }

func setWith(category metrics.Category, name string, value float64) metrics.Set {
	return metrics.Set{
		category: []metrics.Result{{Name: name, Category: category, Value: floatPtr(value)}},
	}
}

func TestUnknownIndustryFallsBackToServices(t *testing.T) {
	b := NewBenchmarker("spacetech")
	if b.Industry() != "services" {
		t.Errorf("Industry() = %q, want services", b.Industry())
	}
}

func TestPercentileAnchors(t *testing.T) {
	// Manufacturing current ratio band: avg 1.5, best 2.5, poor 1.0.
	b := NewBenchmarker("manufacturing")

	tests := []struct {
		value float64
		want  int
	}{
		{3.0, 90},  // at or above best
		{2.5, 90},  // exactly best
		{2.0, 70},  // halfway between avg and best
		{1.5, 50},  // exactly average
		{1.25, 30}, // halfway between poor and avg
		{1.0, 10},  // exactly poor
		{0.5, 10},  // below poor
	}
	for _, tt := range tests {
		result := b.Compare(setWith(metrics.CategoryLiquidity, "Current Ratio", tt.value))
		if len(result.Comparisons) != 1 {
			t.Fatalf("value %v: comparisons = %d, want 1", tt.value, len(result.Comparisons))
		}
		if got := result.Comparisons[0].Percentile; got != tt.want {
			t.Errorf("percentile(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestPercentileLowerIsBetter(t *testing.T) {
	// Manufacturing debt/equity band: avg 1.0, best 0.5, poor 2.0.
	b := NewBenchmarker("manufacturing")

	tests := []struct {
		value float64
		want  int
	}{
		{0.3, 90},  // at or below best
		{0.5, 90},  // exactly best
		{0.75, 70}, // halfway between best and avg
		{1.0, 50},  // exactly average
		{1.5, 30},  // halfway between avg and poor
		{2.0, 10},  // exactly poor
		{3.0, 10},  // beyond poor
	}
	for _, tt := range tests {
		result := b.Compare(setWith(metrics.CategorySolvency, "Debt to Equity Ratio", tt.value))
		if len(result.Comparisons) != 1 {
			t.Fatalf("value %v: comparisons = %d, want 1", tt.value, len(result.Comparisons))
		}
		if got := result.Comparisons[0].Percentile; got != tt.want {
			t.Errorf("percentile(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestPercentileTruncatesToWholeNumbers(t *testing.T) {
	// Manufacturing inventory turnover band: avg 6, best 10, poor 3.
	// A value of 6.35 interpolates to 53.5, which truncates to 53.
	b := NewBenchmarker("manufacturing")
	result := b.Compare(setWith(metrics.CategoryEfficiency, "Inventory Turnover", 6.35))
	if got := result.Comparisons[0].Percentile; got != 53 {
		t.Errorf("percentile = %d, want 53", got)
	}
}

func TestStatusBands(t *testing.T) {
	tests := []struct {
		percentile int
		want       string
	}{
		{90, "above_average"},
		{70, "above_average"},
		{69, "average"},
		{40, "average"},
		{39, "below_average"},
		{10, "below_average"},
	}
	for _, tt := range tests {
		if got := statusFor(tt.percentile); got != tt.want {
			t.Errorf("statusFor(%d) = %q, want %q", tt.percentile, got, tt.want)
		}
	}
}

func TestOverallRanking(t *testing.T) {
	tests := []struct {
		percentiles []int
		want        string
	}{
		{[]int{90, 90}, "top_quartile"},
		{[]int{50, 70}, "above_median"},
		{[]int{30, 40}, "below_median"},
		{[]int{10, 10}, "bottom_quartile"},
		{nil, "insufficient_data"},
	}
	for _, tt := range tests {
		var comparisons []Comparison
		for _, p := range tt.percentiles {
			comparisons = append(comparisons, Comparison{Percentile: p})
		}
		if got := rankingFor(comparisons); got != tt.want {
			t.Errorf("rankingFor(%v) = %q, want %q", tt.percentiles, got, tt.want)
		}
	}
}

func TestMetricsWithoutValuesAreSkipped(t *testing.T) {
	m := metrics.Set{
		metrics.CategoryLiquidity: []metrics.Result{
			{Name: "Current Ratio", Value: nil},
		},
	}
	result := NewBenchmarker("retail").Compare(m)
	if len(result.Comparisons) != 0 {
		t.Errorf("comparisons = %d, want 0 for valueless metric", len(result.Comparisons))
	}
	if result.OverallRanking != "insufficient_data" {
		t.Errorf("ranking = %q, want insufficient_data", result.OverallRanking)
	}
}

func TestSummaryCounts(t *testing.T) {
	m := metrics.Set{
		metrics.CategoryLiquidity: []metrics.Result{
			{Name: "Current Ratio", Value: floatPtr(2.5)}, // above average
		},
		metrics.CategorySolvency: []metrics.Result{
			{Name: "Debt to Equity Ratio", Value: floatPtr(3.0)}, // below
		},
	}
	result := NewBenchmarker("manufacturing").Compare(m)
	if result.Summary.TotalCompared != 2 {
		t.Fatalf("total compared = %d, want 2", result.Summary.TotalCompared)
	}
	if result.Summary.AboveAverage != 1 || result.Summary.BelowAverage != 1 {
		t.Errorf("above/below = %d/%d, want 1/1", result.Summary.AboveAverage, result.Summary.BelowAverage)
	}
}
