// Package insight generates narrative summaries, recommendations and product
// suggestions on top of the numeric analysis. Model output is optional: every
// entry point degrades to a deterministic rule-based fallback, never errors.
package insight

import (
	"context"
	"fmt"
	"strings"

	"finsight/pkg/core/agent"
	"finsight/pkg/core/credit"
	"finsight/pkg/core/metrics"
	"finsight/pkg/core/prompt"
	"finsight/pkg/core/risk"
	"finsight/pkg/core/utils"
)

// Insights is the narrative summary of one analysis run.
type Insights struct {
	Summary   string `json:"summary"`
	Generated bool   `json:"generated"`
	Model     string `json:"model"`
}

// Recommendation is one actionable improvement step.
type Recommendation struct {
	Recommendation string `json:"recommendation"`
	Priority       string `json:"priority,omitempty"`
	Source         string `json:"source"`
}

// Product is a financing product matched to the business's needs.
type Product struct {
	Type          string   `json:"type"`
	ProviderType  string   `json:"provider_type"`
	InterestRange string   `json:"interest_range"`
	Eligibility   string   `json:"eligibility"`
	Features      []string `json:"features"`
}

// FinancialNeeds describes what the business is looking to finance.
type FinancialNeeds struct {
	WorkingCapitalGap float64 `json:"working_capital_gap"`
	Receivables       float64 `json:"receivables"`
	ExpansionPlans    bool    `json:"expansion_plans"`
}

// Engine produces insights through the configured agent manager. A nil
// manager runs everything in fallback mode.
type Engine struct {
	mgr *agent.Manager
}

func NewEngine(mgr *agent.Manager) *Engine {
	return &Engine{mgr: mgr}
}

// GenerateInsights produces an executive summary of the analysis. Falls back
// to a deterministic banded summary when no provider is available or the
// generation fails.
func (e *Engine) GenerateInsights(ctx context.Context, m metrics.Set, health *metrics.HealthScore, assessment *risk.Assessment, language string) *Insights {
	if e.mgr == nil || assessment == nil {
		return fallbackInsights(health, assessment)
	}

	userPrompt := buildInsightsPrompt(m, health, assessment)
	summary, err := e.mgr.ExecutePrompt(ctx, "insight", userPrompt, insightSystemPrompt(language), nil)
	if err != nil {
		fmt.Printf("[INSIGHT] generation failed, using fallback: %v\n", err)
		return fallbackInsights(health, assessment)
	}

	return &Insights{
		Summary:   utils.CleanMarkdown(summary),
		Generated: true,
		Model:     e.mgr.GetActiveProvider(),
	}
}

// GenerateRecommendations produces up to ten actionable recommendations.
// The model is asked for a JSON array; output that fails every parsing
// strategy falls back to rule-based suggestions from the top risks.
func (e *Engine) GenerateRecommendations(ctx context.Context, assessment *risk.Assessment, industry string) []Recommendation {
	if e.mgr == nil || assessment == nil {
		return fallbackRecommendations(assessment)
	}

	userPrompt := buildRecommendationsPrompt(assessment, industry)
	system := prompt.SystemPromptOr(prompt.IDs.Recommendations,
		"You are a financial advisor for SMEs. Provide specific, actionable recommendations.")
	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}

	content, err := e.mgr.ExecutePrompt(ctx, "recommendation", userPrompt, system, options)
	if err != nil {
		fmt.Printf("[INSIGHT] recommendation generation failed, using fallback: %v\n", err)
		return fallbackRecommendations(assessment)
	}

	parsed := parseRecommendations(content)
	if len(parsed) == 0 {
		return fallbackRecommendations(assessment)
	}
	return parsed
}

// SuggestFinancialProducts matches bank and NBFC products to the business's
// financing needs. Rule-based, no model involved.
func (e *Engine) SuggestFinancialProducts(score *credit.Score, needs FinancialNeeds) []Product {
	products := []Product{}
	creditScore := 500
	if score != nil {
		creditScore = score.Score
	}

	if needs.WorkingCapitalGap > 0 {
		if creditScore >= 700 {
			products = append(products, Product{
				Type:          "Working Capital Loan",
				ProviderType:  "Bank",
				InterestRange: "10-12% p.a.",
				Eligibility:   "High",
				Features:      []string{"Competitive rates", "Flexible tenures", "Collateral options"},
			})
		} else {
			products = append(products, Product{
				Type:          "Working Capital Loan",
				ProviderType:  "NBFC",
				InterestRange: "14-18% p.a.",
				Eligibility:   "Moderate",
				Features:      []string{"Faster approval", "Minimal documentation", "No collateral"},
			})
		}
	}

	if needs.Receivables > 0 {
		products = append(products, Product{
			Type:          "Invoice Financing",
			ProviderType:  "Bank/NBFC",
			InterestRange: "12-16% p.a.",
			Eligibility:   "Based on invoice quality",
			Features:      []string{"Immediate liquidity", "Non-recourse options", "Pay only for used limit"},
		})
	}

	if needs.ExpansionPlans {
		eligibility := "Moderate"
		if creditScore >= 650 {
			eligibility = "High"
		}
		products = append(products, Product{
			Type:          "Term Loan",
			ProviderType:  "Bank",
			InterestRange: "11-14% p.a.",
			Eligibility:   eligibility,
			Features:      []string{"Long tenure", "Fixed EMI", "Tax benefits on interest"},
		})
	}

	return products
}

// -----------------------------------------------------------------------------
// Prompts
// -----------------------------------------------------------------------------

// insightSystemPrompt resolves the summary system prompt, preferring a
// registered override from the prompt library.
func insightSystemPrompt(language string) string {
	base := prompt.SystemPromptOr(prompt.IDs.InsightSummary,
		"You are an expert financial analyst for small and medium enterprises (SMEs). "+
			"Analyze the financial data provided and give clear, actionable insights. "+
			"Focus on practical advice that business owners can understand and implement.")
	if language == "hi" {
		base += "\nRespond in Hindi using Devanagari script."
	}
	return base
}

func buildInsightsPrompt(m metrics.Set, health *metrics.HealthScore, assessment *risk.Assessment) string {
	overallScore := "N/A"
	if health != nil {
		overallScore = fmt.Sprintf("%.1f", health.OverallScore)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this SME's financial health:\n\n")
	fmt.Fprintf(&sb, "Health Score: %s/100\n", overallScore)
	fmt.Fprintf(&sb, "Risk Level: %s\n\n", assessment.OverallRiskLevel)
	fmt.Fprintf(&sb, "Key Metrics:\n")
	fmt.Fprintf(&sb, "- Current Ratio: %s\n", metricString(m, metrics.CategoryLiquidity, "Current Ratio"))
	fmt.Fprintf(&sb, "- Net Profit Margin: %s\n", metricString(m, metrics.CategoryProfitability, "Net Profit Margin"))
	fmt.Fprintf(&sb, "- Debt to Equity: %s\n\n", metricString(m, metrics.CategorySolvency, "Debt to Equity Ratio"))
	fmt.Fprintf(&sb, "Key Risks: %s\n\n", riskNames(assessment.Risks, 3))
	sb.WriteString("Provide a concise executive summary (3-4 paragraphs) covering:\n")
	sb.WriteString("1. Overall financial health assessment\n")
	sb.WriteString("2. Key strengths and concerns\n")
	sb.WriteString("3. Priority areas for improvement\n")
	sb.WriteString("4. Outlook and recommendations")
	return sb.String()
}

func buildRecommendationsPrompt(assessment *risk.Assessment, industry string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on this %s business's financial analysis:\n\n", industry)
	fmt.Fprintf(&sb, "Risk Level: %s\n", assessment.OverallRiskLevel)
	fmt.Fprintf(&sb, "Top Risks: %s\n\n", riskNames(assessment.Risks, 5))
	sb.WriteString("Provide 5 specific, actionable recommendations to improve financial health.\n")
	sb.WriteString("Respond with a JSON array of objects, each with fields ")
	sb.WriteString(`"recommendation" and "priority" (high/medium/low).` + "\n")
	sb.WriteString("Focus on practical steps the business can take within 3-6 months.")
	return sb.String()
}

func metricString(m metrics.Set, category metrics.Category, name string) string {
	if value := m.Find(category, name); value != nil {
		return fmt.Sprintf("%.2f", *value)
	}
	return "N/A"
}

func riskNames(risks []risk.Factor, limit int) string {
	names := make([]string, 0, limit)
	for _, r := range risks {
		if len(names) == limit {
			break
		}
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// -----------------------------------------------------------------------------
// Parsing and fallbacks
// -----------------------------------------------------------------------------

// parseRecommendations extracts a recommendation list from model output.
// Tries lenient JSON parsing first, then falls back to scraping list lines.
func parseRecommendations(content string) []Recommendation {
	var items []Recommendation
	if _, err := utils.SmartParse(content, &items); err == nil && len(items) > 0 {
		for i := range items {
			items[i].Source = "ai_generated"
		}
		if len(items) > 10 {
			items = items[:10]
		}
		return items
	}

	var lines []Recommendation
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "-") {
			continue
		}
		lines = append(lines, Recommendation{
			Recommendation: line,
			Source:         "ai_generated",
		})
		if len(lines) == 10 {
			break
		}
	}
	return lines
}

func fallbackInsights(health *metrics.HealthScore, assessment *risk.Assessment) *Insights {
	score := 50.0
	if health != nil {
		score = health.OverallScore
	}
	riskLevel := risk.SeverityMedium
	if assessment != nil {
		riskLevel = assessment.OverallRiskLevel
	}

	var summary string
	switch {
	case score >= 70:
		summary = "The business demonstrates strong financial health with solid fundamentals."
	case score >= 50:
		summary = "The business shows moderate financial stability with areas for improvement."
	default:
		summary = "The business faces financial challenges requiring immediate attention."
	}
	summary += fmt.Sprintf(" Overall risk level is %s.", riskLevel)

	return &Insights{Summary: summary, Generated: false, Model: "fallback"}
}

// fallbackRecommendations lifts the first mitigation suggestion from each of
// the top five risks.
func fallbackRecommendations(assessment *risk.Assessment) []Recommendation {
	recommendations := []Recommendation{}
	if assessment == nil {
		return recommendations
	}
	for i, r := range assessment.Risks {
		if i == 5 {
			break
		}
		if len(r.MitigationSuggestions) == 0 {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Recommendation: r.MitigationSuggestions[0],
			Priority:       string(r.Severity),
			Source:         "rule_based",
		})
	}
	return recommendations
}
