package report

import (
	"context"
	"testing"

	"finsight/pkg/core/risk"
	"finsight/pkg/core/statement"
)

func sampleData() *statement.FinancialData {
	return &statement.FinancialData{
		BalanceSheet: statement.Section{
			"current_assets":      150000,
			"current_liabilities": 100000,
			"total_assets":        300000,
			"total_liabilities":   120000,
			"total_equity":        180000,
			"inventory":           30000,
			"cash":                20000,
			"accounts_receivable": 40000,
			"accounts_payable":    25000,
		},
		IncomeStatement: statement.Section{
			"revenue":            500000,
			"cost_of_goods_sold": 300000,
			"gross_profit":       200000,
			"operating_income":   60000,
			"net_income":         40000,
			"total_expenses":     440000,
			"interest_expense":   10000,
		},
		CashFlow: statement.Section{
			"operating_cash_flow": 45000,
			"investing_cash_flow": -20000,
		},
		HistoricalRevenue: []float64{400000, 450000, 500000},
	}
}

func TestRunFullAnalysisProducesAllStages(t *testing.T) {
	o := NewOrchestrator(nil, nil)
	rep := o.RunFullAnalysis(context.Background(), sampleData(), Options{Industry: "manufacturing"})

	if rep.AnalysisID == "" {
		t.Error("analysis id is empty")
	}
	if rep.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if rep.HealthScore == nil {
		t.Error("health score missing")
	}
	if len(rep.Metrics) == 0 {
		t.Error("metrics missing")
	}
	if rep.RiskAssessment == nil {
		t.Error("risk assessment missing")
	}
	if rep.Creditworthiness == nil {
		t.Error("creditworthiness missing")
	}
	if rep.IndustryBenchmark == nil {
		t.Error("industry benchmark missing")
	}
	if rep.Forecast == nil {
		t.Error("forecast missing")
	}
	if rep.AIInsights == nil {
		t.Error("insights missing")
	}
	if rep.SummaryHTML == "" {
		t.Error("summary HTML missing")
	}
	if rep.StageErrors != nil {
		t.Errorf("stage errors = %v, want none", rep.StageErrors)
	}
}

func TestRunFullAnalysisDefaults(t *testing.T) {
	rep := NewOrchestrator(nil, nil).RunFullAnalysis(context.Background(), sampleData(), Options{})
	if rep.Industry != "services" {
		t.Errorf("industry = %q, want services default", rep.Industry)
	}
	if rep.Language != "en" {
		t.Errorf("language = %q, want en default", rep.Language)
	}
}

func TestRunFullAnalysisToleratesNilData(t *testing.T) {
	rep := NewOrchestrator(nil, nil).RunFullAnalysis(context.Background(), nil, Options{})

	if rep.StageErrors != nil {
		t.Errorf("stage errors = %v, want none for nil data", rep.StageErrors)
	}
	// Every forecast series degrades individually on empty data.
	if rep.Forecast == nil || rep.Forecast.Revenue.Err == "" {
		t.Error("expected revenue forecast error for nil data")
	}
	// Fallback insights still produce a summary.
	if rep.AIInsights == nil || rep.AIInsights.Summary == "" {
		t.Error("expected fallback insight summary for nil data")
	}
}

func TestRunFullAnalysisRiskFindingsFlowIntoRecommendations(t *testing.T) {
	data := &statement.FinancialData{
		BalanceSheet: statement.Section{
			"current_assets":      30000,
			"current_liabilities": 100000, // current ratio 0.3
		},
	}

	rep := NewOrchestrator(nil, nil).RunFullAnalysis(context.Background(), data, Options{})

	if rep.RiskAssessment.OverallRiskLevel != risk.SeverityCritical {
		t.Errorf("risk level = %q, want critical", rep.RiskAssessment.OverallRiskLevel)
	}
	if len(rep.Recommendations) == 0 {
		t.Fatal("no recommendations despite critical risk")
	}
	if rep.Recommendations[0].Source != "rule_based" {
		t.Errorf("source = %q, want rule_based without a provider", rep.Recommendations[0].Source)
	}
}

type recordingRepo struct {
	saved *Report
}

func (r *recordingRepo) SaveReport(ctx context.Context, rep *Report) error {
	r.saved = rep
	return nil
}

func TestRunFullAnalysisPersistsReport(t *testing.T) {
	repo := &recordingRepo{}
	rep := NewOrchestrator(nil, repo).RunFullAnalysis(context.Background(), sampleData(), Options{})

	if repo.saved == nil {
		t.Fatal("report was not persisted")
	}
	if repo.saved.AnalysisID != rep.AnalysisID {
		t.Errorf("persisted id = %q, want %q", repo.saved.AnalysisID, rep.AnalysisID)
	}
}
