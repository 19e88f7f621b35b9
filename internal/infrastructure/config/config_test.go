package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))

	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := store.Settings.Providers
	if len(got) != 2 || got[0] != "groq" || got[1] != "gemini" {
		t.Errorf("Expected default providers [groq gemini], got %#v", got)
	}
	if store.Settings.MergePolicy != "inline" {
		t.Errorf("Expected default merge policy 'inline', got %q", store.Settings.MergePolicy)
	}
	if store.Settings.Groq.TimeoutSeconds != 20 {
		t.Errorf("Expected default Groq.TimeoutSeconds 20, got %d", store.Settings.Groq.TimeoutSeconds)
	}
	if store.Settings.Gemini.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("Expected default Gemini.APIKeyEnv, got %q", store.Settings.Gemini.APIKeyEnv)
	}
	if store.Settings.Groq.Heading != "Groq Diet Plan" {
		t.Errorf("Expected default Groq heading, got %q", store.Settings.Groq.Heading)
	}
	if store.Settings.Output.Path != "diet_plan.pdf" {
		t.Errorf("Expected default output path, got %q", store.Settings.Output.Path)
	}
	if store.Settings.KeyMap.Submit != "enter" {
		t.Errorf("Expected default KeyMap.Submit 'enter', got %q", store.Settings.KeyMap.Submit)
	}
	if store.Settings.Server.Addr != ":8501" {
		t.Errorf("Expected default Server.Addr ':8501', got %q", store.Settings.Server.Addr)
	}
	want := filepath.Join(tmpDir, "data", "dietplan", "history.db")
	if store.Settings.HistoryFile != want {
		t.Errorf("Expected default history path %q, got %q", want, store.Settings.HistoryFile)
	}
	if store.Path() != configPath {
		t.Errorf("Path() = %q, want %q", store.Path(), configPath)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file not created")
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `providers:
  - gemini
merge_policy: fail_fast
gemini:
  model: gemini-1.5-pro
  timeout_seconds: 45
output:
  path: /tmp/plans/out.pdf
history_file: ` + filepath.Join(tmpDir, "plans.db") + `
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(store.Settings.Providers) != 1 || store.Settings.Providers[0] != "gemini" {
		t.Fatalf("Providers = %#v", store.Settings.Providers)
	}
	if store.Settings.MergePolicy != "fail_fast" {
		t.Fatalf("MergePolicy = %q", store.Settings.MergePolicy)
	}
	if store.Settings.Gemini.Model != "gemini-1.5-pro" {
		t.Fatalf("Gemini.Model = %q", store.Settings.Gemini.Model)
	}
	if store.Settings.Gemini.TimeoutSeconds != 45 {
		t.Fatalf("Gemini.TimeoutSeconds = %d", store.Settings.Gemini.TimeoutSeconds)
	}
	if store.Settings.Groq.Model != "llama-3.3-70b-versatile" {
		t.Fatalf("unset Groq.Model should keep default, got %q", store.Settings.Groq.Model)
	}
	if store.Settings.Output.Path != "/tmp/plans/out.pdf" {
		t.Fatalf("Output.Path = %q", store.Settings.Output.Path)
	}
	if store.Settings.HistoryFile != filepath.Join(tmpDir, "plans.db") {
		t.Fatalf("HistoryFile = %q", store.Settings.HistoryFile)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	_ = os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600)

	_, err := Load(configPath)
	if err == nil {
		t.Error("Expected error for corrupt config read, got nil")
	}
}

func TestLoad_NormalizesProviders(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `providers:
  - " groq, gemini "
  - |
      anthropic
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"groq", "gemini", "anthropic"}
	if len(store.Settings.Providers) != len(want) {
		t.Fatalf("Expected %d providers, got %#v", len(want), store.Settings.Providers)
	}
	for i, got := range store.Settings.Providers {
		if got != want[i] {
			t.Fatalf("Expected provider %d to be %q, got %q", i, want[i], got)
		}
	}
}

func TestStore_SaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	store.Settings.Providers = []string{"anthropic"}
	store.Settings.Anthropic.Model = "claude-test"
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Settings.Providers) != 1 || reloaded.Settings.Providers[0] != "anthropic" {
		t.Fatalf("Providers not persisted: %#v", reloaded.Settings.Providers)
	}
	if reloaded.Settings.Anthropic.Model != "claude-test" {
		t.Fatalf("Anthropic.Model not persisted: %q", reloaded.Settings.Anthropic.Model)
	}
}
