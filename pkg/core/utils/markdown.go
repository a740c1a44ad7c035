package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// CleanMarkdown strips outer code fences models tend to wrap their answers
// in, leaving pure Markdown.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// RenderMarkdown converts Markdown to HTML for report delivery. On a render
// failure the cleaned source text is returned so the summary is never lost.
func RenderMarkdown(input string) string {
	cleaned := CleanMarkdown(input)
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(cleaned), &buf); err != nil {
		return cleaned
	}
	return buf.String()
}
