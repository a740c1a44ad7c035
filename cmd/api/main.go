package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finsight/pkg/api/analysis"
	"finsight/pkg/api/config"
	"finsight/pkg/core/agent"
	"finsight/pkg/core/insight"
	"finsight/pkg/core/prompt"
	"finsight/pkg/core/report"
	"finsight/pkg/core/store"
)

func main() {
	godotenv.Load()

	// Initialize agent manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)
	fmt.Printf("[API] Active model provider: %s\n", agentMgr.GetActiveProvider())

	// Prompt library is optional: without it the hardcoded prompts are used.
	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Printf("[WARNING] Prompt library not loaded, using built-in prompts: %v\n", err)
	}

	// Database is optional: without DATABASE_URL reports are not persisted.
	var repo report.Repository
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Database unavailable, reports will not be persisted: %v\n", err)
	} else {
		repo = store.NewReportRepo()
		defer store.Close()
	}

	insightEngine := insight.NewEngine(agentMgr)
	orchestrator := report.NewOrchestrator(insightEngine, repo)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Analysis endpoints
	analysis.InitHandler(orchestrator)
	http.HandleFunc("/api/analysis/full", analysis.HandleFullAnalysis)
	http.HandleFunc("/api/analysis/metrics", analysis.HandleMetrics)
	http.HandleFunc("/api/analysis/risk", analysis.HandleRisk)
	http.HandleFunc("/api/analysis/credit-score", analysis.HandleCreditScore)
	http.HandleFunc("/api/analysis/benchmark", analysis.HandleBenchmark)
	http.HandleFunc("/api/analysis/forecast", analysis.HandleForecast)
	http.HandleFunc("/api/analysis/products", analysis.HandleProducts)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/analysis/full")
	fmt.Println("  - POST /api/analysis/metrics")
	fmt.Println("  - POST /api/analysis/risk")
	fmt.Println("  - POST /api/analysis/credit-score")
	fmt.Println("  - POST /api/analysis/benchmark")
	fmt.Println("  - POST /api/analysis/forecast")
	fmt.Println("  - POST /api/analysis/products")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
