// Command analyze runs the full analysis pipeline against a local statements
// file and prints the report as JSON. Useful for offline runs and debugging
// without the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finsight/pkg/core/agent"
	"finsight/pkg/core/insight"
	"finsight/pkg/core/report"
	"finsight/pkg/core/statement"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	industry := flag.String("industry", "services", "industry for benchmarks and metric context")
	language := flag.String("language", "en", "output language for the narrative summary")
	periods := flag.Int("periods", 12, "forecast horizon in months")
	years := flag.Float64("years", 0, "years in business, used for credit scoring")
	useModel := flag.Bool("ai", false, "generate insights with the configured model provider")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: analyze [flags] <financial_data.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read input file: %v", err)
	}

	data, err := statement.Parse(raw)
	if err != nil {
		log.Fatalf("failed to parse financial data: %v", err)
	}

	// Without -ai the insight engine runs in deterministic fallback mode.
	var mgr *agent.Manager
	if *useModel {
		configData, _ := os.ReadFile("config/models.yaml")
		var agentCfg agent.Config
		yaml.Unmarshal(configData, &agentCfg)
		mgr = agent.NewManager(agentCfg)
		fmt.Printf("[ANALYZE] Using model provider: %s\n", mgr.GetActiveProvider())
	}

	var info *statement.BusinessInfo
	if *years > 0 {
		info = &statement.BusinessInfo{YearsInBusiness: *years}
	}

	orchestrator := report.NewOrchestrator(insight.NewEngine(mgr), nil)
	rep := orchestrator.RunFullAnalysis(context.Background(), data, report.Options{
		Industry:     *industry,
		Language:     *language,
		Periods:      *periods,
		BusinessInfo: info,
	})

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
	fmt.Println(string(out))
}
