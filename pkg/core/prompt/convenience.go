package prompt

// IDs lists the prompt identifiers the analysis pipeline looks up.
var IDs = struct {
	InsightSummary  string
	Recommendations string
}{
	InsightSummary:  "insight.summary",
	Recommendations: "recommendation.improvements",
}

// SystemPromptOr returns the registered system prompt for id, or fallback
// when the registry has no override for it. This is what lets the insight
// engine work with or without a resources directory.
func SystemPromptOr(id string, fallback string) string {
	if s, err := Get().GetSystemPrompt(id); err == nil && s != "" {
		return s
	}
	return fallback
}
