// Package prompt is a small library of analyst prompts. Prompts live in JSON
// files under resources/prompts and are loaded at startup, so wording can be
// tuned without a rebuild. Callers that need a prompt before any were loaded
// get their hardcoded default back.
package prompt

// Template is one reusable prompt with metadata.
type Template struct {
	ID             string     `json:"id"`                   // Unique identifier (e.g., "insight.summary")
	Name           string     `json:"name"`                 // Human-readable name
	Category       string     `json:"category"`             // Category (insight, recommendation, ...)
	Description    string     `json:"description"`          // What the prompt is for
	SystemPrompt   string     `json:"system_prompt"`        // The system prompt content
	UserPromptTmpl string     `json:"user_prompt_template"` // Go template for the user prompt
	Variables      []Variable `json:"variables"`            // Variables used in the template
	Version        string     `json:"version"`              // Version for tracking changes
}

// Variable documents one template variable.
type Variable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default"`
}

// Context holds runtime values for template rendering.
type Context struct {
	Variables map[string]interface{}
}

// NewContext creates an empty rendering context.
func NewContext() *Context {
	return &Context{Variables: make(map[string]interface{})}
}

// Set adds a variable and returns the context for chaining.
func (c *Context) Set(key string, value interface{}) *Context {
	c.Variables[key] = value
	return c
}
