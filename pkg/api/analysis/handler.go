// Package analysis exposes the financial analysis pipeline over HTTP.
package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"

	"finsight/pkg/core/benchmark"
	"finsight/pkg/core/credit"
	"finsight/pkg/core/forecast"
	"finsight/pkg/core/insight"
	"finsight/pkg/core/metrics"
	"finsight/pkg/core/report"
	"finsight/pkg/core/risk"
	"finsight/pkg/core/statement"
)

var orchestrator *report.Orchestrator

// InitHandler wires the orchestrator used by the full-analysis endpoint.
func InitHandler(o *report.Orchestrator) {
	orchestrator = o
}

// AnalysisRequest is the shared request shape for the analysis endpoints.
// Endpoints ignore the fields they don't need.
type AnalysisRequest struct {
	FinancialData json.RawMessage         `json:"financial_data"`
	Industry      string                  `json:"industry"`
	Language      string                  `json:"language"`
	Periods       int                     `json:"periods"`
	BusinessInfo  *statement.BusinessInfo `json:"business_info"`
}

func applyCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*AnalysisRequest, *statement.FinancialData, bool) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	data := &statement.FinancialData{}
	if len(req.FinancialData) > 0 {
		parsed, err := statement.Parse(req.FinancialData)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid financial data: %v", err), http.StatusBadRequest)
			return nil, nil, false
		}
		data = parsed
	}

	if req.Industry == "" {
		req.Industry = "services"
	}
	return &req, data, true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// HandleFullAnalysis runs every pipeline stage and returns the combined
// report.
func HandleFullAnalysis(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	req, data, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	fmt.Printf("[ANALYSIS] Full analysis request: industry=%s language=%s\n", req.Industry, req.Language)

	rep := orchestrator.RunFullAnalysis(r.Context(), data, report.Options{
		Industry:     req.Industry,
		Language:     req.Language,
		Periods:      req.Periods,
		BusinessInfo: req.BusinessInfo,
	})
	writeJSON(w, rep)
}

// HandleMetrics calculates the metric set and health score only.
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	req, data, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	calculator := metrics.NewCalculator(req.Industry)
	m := calculator.CalculateAll(data)
	writeJSON(w, map[string]interface{}{
		"metrics":      m,
		"health_score": metrics.CalculateHealthScore(m),
	})
}

// HandleRisk runs the risk scan.
func HandleRisk(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	req, data, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	m := metrics.NewCalculator(req.Industry).CalculateAll(data)
	writeJSON(w, risk.NewAssessor().Assess(data, m))
}

// HandleCreditScore scores creditworthiness.
func HandleCreditScore(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	req, data, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	m := metrics.NewCalculator(req.Industry).CalculateAll(data)
	writeJSON(w, credit.NewAssessor().Assess(data, m, req.BusinessInfo))
}

// HandleBenchmark compares the company's metrics against its industry.
func HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	req, data, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	m := metrics.NewCalculator(req.Industry).CalculateAll(data)
	writeJSON(w, benchmark.NewBenchmarker(req.Industry).Compare(m))
}

// HandleForecast generates the projection bundle.
func HandleForecast(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}
	req, data, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, forecast.NewForecaster().Generate(data, req.Periods))
}

// HandleProducts suggests financing products for the business's needs.
func HandleProducts(w http.ResponseWriter, r *http.Request) {
	if applyCORS(w, r) {
		return
	}

	var req struct {
		FinancialData json.RawMessage         `json:"financial_data"`
		Industry      string                  `json:"industry"`
		BusinessInfo  *statement.BusinessInfo `json:"business_info"`
		Needs         insight.FinancialNeeds  `json:"financial_needs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := &statement.FinancialData{}
	if len(req.FinancialData) > 0 {
		parsed, err := statement.Parse(req.FinancialData)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid financial data: %v", err), http.StatusBadRequest)
			return
		}
		data = parsed
	}

	m := metrics.NewCalculator(req.Industry).CalculateAll(data)
	score := credit.NewAssessor().Assess(data, m, req.BusinessInfo)
	engine := insight.NewEngine(nil)
	writeJSON(w, engine.SuggestFinancialProducts(score, req.Needs))
}
