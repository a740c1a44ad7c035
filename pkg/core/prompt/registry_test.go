package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	r := Get()
	r.Clear()

	err := r.Register(&Template{
		ID:           "insight.summary",
		Category:     "insight",
		SystemPrompt: "You are an analyst.",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got, err := r.GetSystemPrompt("insight.summary"); err != nil || got != "You are an analyst." {
		t.Errorf("GetSystemPrompt = %q, %v", got, err)
	}
	if _, err := r.GetPrompt("insight.missing"); err == nil {
		t.Error("GetPrompt accepted an unknown ID")
	}
	if got := len(r.ListByCategory("insight")); got != 1 {
		t.Errorf("ListByCategory = %d prompts, want 1", got)
	}
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	if err := Get().Register(&Template{}); err == nil {
		t.Error("Register accepted an empty ID")
	}
}

func TestSystemPromptOr(t *testing.T) {
	r := Get()
	r.Clear()

	if got := SystemPromptOr("insight.summary", "default"); got != "default" {
		t.Errorf("SystemPromptOr = %q, want fallback", got)
	}

	r.Register(&Template{ID: "insight.summary", SystemPrompt: "override"})
	if got := SystemPromptOr("insight.summary", "default"); got != "override" {
		t.Errorf("SystemPromptOr = %q, want override", got)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "prompts", "insight")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"name": "Summary", "system_prompt": "You are an analyst."}`
	if err := os.WriteFile(filepath.Join(dir, "summary.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	Get().Clear()
	if err := LoadFromDirectory(base); err != nil {
		t.Fatalf("LoadFromDirectory failed: %v", err)
	}

	// ID and category come from the file's position in the tree.
	pt, err := Get().GetPrompt("insight.summary")
	if err != nil {
		t.Fatalf("prompt not registered: %v", err)
	}
	if pt.Category != "insight" {
		t.Errorf("category = %q, want insight", pt.Category)
	}
}

func TestRenderUserPrompt(t *testing.T) {
	pt := &Template{
		ID:             "insight.summary",
		UserPromptTmpl: "Health score: {{.Score}}/100",
	}
	got, err := RenderUserPrompt(pt, NewContext().Set("Score", 72))
	if err != nil {
		t.Fatalf("RenderUserPrompt failed: %v", err)
	}
	if got != "Health score: 72/100" {
		t.Errorf("rendered = %q", got)
	}
}
