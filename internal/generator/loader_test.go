package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGeneratorConfigMissingFile(t *testing.T) {
	cfg, err := LoadGeneratorConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}

	if cfg.Generator.Mode != ModeCloud {
		t.Errorf("default mode should be cloud, got %q", cfg.Generator.Mode)
	}
	if cfg.Generator.Cloud.Provider != ProviderOpenAI {
		t.Errorf("default provider should be openai, got %q", cfg.Generator.Cloud.Provider)
	}
	if cfg.Generator.Cloud.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("default api key env mismatch: %q", cfg.Generator.Cloud.APIKeyEnv)
	}
}

func TestLoadGeneratorConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generator.yaml")
	content := `generator:
  mode: local
  local:
    type: ollama
    url: http://10.0.0.5:11434
    model: mistral:7b
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadGeneratorConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Generator.Mode != ModeLocal {
		t.Errorf("expected local mode, got %q", cfg.Generator.Mode)
	}
	if cfg.Generator.Local.URL != "http://10.0.0.5:11434" {
		t.Errorf("url not parsed: %q", cfg.Generator.Local.URL)
	}
	if cfg.Generator.Local.Model != "mistral:7b" {
		t.Errorf("model not parsed: %q", cfg.Generator.Local.Model)
	}
}

func TestLoadGeneratorConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generator.yaml")
	if err := os.WriteFile(path, []byte("generator: [not: valid"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadGeneratorConfig(path); err == nil {
		t.Error("expected parse error for invalid YAML")
	}
}

func TestNewFromConfigSelectsLocalBackend(t *testing.T) {
	gen, err := NewFromConfig(Config{
		Generator: BackendConfig{
			Mode:  ModeLocal,
			Local: LocalConfig{Type: LocalTypeOllama},
		},
	})
	if err != nil {
		t.Fatalf("new from config: %v", err)
	}
	if gen.Mode() != ModeLocal {
		t.Errorf("expected local mode, got %q", gen.Mode())
	}
}

func TestBuildMessages(t *testing.T) {
	msgs := BuildMessages(GenerationInput{
		UserInput: "a heist in venice",
		Blueprint: map[string]any{"genre": "thriller"},
	})

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "creative story writer") {
		t.Errorf("unexpected system message: %+v", msgs[0])
	}
	if !strings.Contains(msgs[1].Content, "a heist in venice") {
		t.Errorf("user input missing from message: %q", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "Blueprint:") {
		t.Errorf("blueprint missing from message: %q", msgs[1].Content)
	}
}

func TestBuildFullPrompt(t *testing.T) {
	prompt := BuildFullPrompt(GenerationInput{
		UserInput:  "a sea voyage",
		Characters: map[string]any{"captain": "Mara"},
		StoryArc:   map[string]any{"acts": 3},
	})

	for _, want := range []string{"User Request: a sea voyage", "Characters:", "Story Arc:", "Generated Story:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	prompt := BuildPrompt(GenerationInput{UserInput: "plain request"})
	if strings.Contains(prompt, "Blueprint:") {
		t.Errorf("empty blueprint should be omitted:\n%s", prompt)
	}
}
