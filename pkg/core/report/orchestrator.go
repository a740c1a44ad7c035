// Package report orchestrates the full analysis pipeline: metrics, risk,
// credit, benchmarking, forecasting, narrative insights, and persistence.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finsight/pkg/core/benchmark"
	"finsight/pkg/core/credit"
	"finsight/pkg/core/forecast"
	"finsight/pkg/core/insight"
	"finsight/pkg/core/metrics"
	"finsight/pkg/core/risk"
	"finsight/pkg/core/statement"
	"finsight/pkg/core/utils"
)

// Repository persists finished reports. Optional: a nil repository skips
// persistence.
type Repository interface {
	SaveReport(ctx context.Context, report *Report) error
}

// Options selects industry context, output language, forecast horizon and
// optional business background for one run.
type Options struct {
	Industry     string
	Language     string
	Periods      int
	BusinessInfo *statement.BusinessInfo
}

// Report is the single payload returned by a full analysis run.
type Report struct {
	AnalysisID        string                   `json:"analysis_id"`
	Timestamp         time.Time                `json:"timestamp"`
	Industry          string                   `json:"industry"`
	Language          string                   `json:"language"`
	ValidationIssues  []statement.Issue        `json:"validation_issues,omitempty"`
	HealthScore       *metrics.HealthScore     `json:"health_score,omitempty"`
	Metrics           metrics.Set              `json:"metrics,omitempty"`
	RiskAssessment    *risk.Assessment         `json:"risk_assessment,omitempty"`
	Creditworthiness  *credit.Score            `json:"creditworthiness,omitempty"`
	IndustryBenchmark *benchmark.Result        `json:"industry_benchmark,omitempty"`
	Forecast          *forecast.Forecast       `json:"forecast,omitempty"`
	AIInsights        *insight.Insights        `json:"ai_insights,omitempty"`
	Recommendations   []insight.Recommendation `json:"recommendations,omitempty"`
	SummaryHTML       string                   `json:"summary_html,omitempty"`
	StageErrors       map[string]string        `json:"stage_errors,omitempty"`
}

// Orchestrator wires the analysis stages together. Stages are isolated: a
// panic in one is recorded in StageErrors and the rest still run.
type Orchestrator struct {
	insights *insight.Engine
	repo     Repository
}

// NewOrchestrator builds an orchestrator. Both arguments may be nil: a nil
// engine runs insights in fallback mode, a nil repository skips persistence.
func NewOrchestrator(insights *insight.Engine, repo Repository) *Orchestrator {
	if insights == nil {
		insights = insight.NewEngine(nil)
	}
	return &Orchestrator{insights: insights, repo: repo}
}

// RunFullAnalysis executes every stage against the supplied statements and
// returns the combined report. It never returns an error: stage failures are
// reported inline so partial results still reach the caller.
func (o *Orchestrator) RunFullAnalysis(ctx context.Context, data *statement.FinancialData, opts Options) *Report {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.Industry == "" {
		opts.Industry = "services"
	}

	report := &Report{
		AnalysisID:  uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Industry:    opts.Industry,
		Language:    opts.Language,
		StageErrors: map[string]string{},
	}

	runStage(report, "validation", func() {
		report.ValidationIssues = statement.Validate(data)
	})

	runStage(report, "metrics", func() {
		calculator := metrics.NewCalculator(opts.Industry)
		report.Metrics = calculator.CalculateAll(data)
		report.HealthScore = metrics.CalculateHealthScore(report.Metrics)
	})

	runStage(report, "risk", func() {
		report.RiskAssessment = risk.NewAssessor().Assess(data, report.Metrics)
	})

	runStage(report, "credit", func() {
		report.Creditworthiness = credit.NewAssessor().Assess(data, report.Metrics, opts.BusinessInfo)
	})

	runStage(report, "benchmark", func() {
		report.IndustryBenchmark = benchmark.NewBenchmarker(opts.Industry).Compare(report.Metrics)
	})

	runStage(report, "forecast", func() {
		report.Forecast = forecast.NewForecaster().Generate(data, opts.Periods)
	})

	runStage(report, "insights", func() {
		report.AIInsights = o.insights.GenerateInsights(ctx, report.Metrics, report.HealthScore, report.RiskAssessment, opts.Language)
		report.Recommendations = o.insights.GenerateRecommendations(ctx, report.RiskAssessment, opts.Industry)
		if report.AIInsights != nil {
			report.SummaryHTML = utils.RenderMarkdown(report.AIInsights.Summary)
		}
	})

	if len(report.StageErrors) == 0 {
		report.StageErrors = nil
	}

	if o.repo != nil {
		if err := o.repo.SaveReport(ctx, report); err != nil {
			fmt.Printf("[REPORT] failed to persist report %s: %v\n", report.AnalysisID, err)
		}
	}

	return report
}

// runStage isolates one stage so a panic cannot take down the whole run.
func runStage(report *Report, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			report.StageErrors[name] = fmt.Sprintf("%s stage failed: %v", name, r)
			fmt.Printf("[REPORT] %s stage panicked: %v\n", name, r)
		}
	}()
	fn()
}
