package generator

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is the top-level generator configuration file layout.
type Config struct {
	Generator BackendConfig `yaml:"generator"`
}

// BackendConfig selects and parameterizes the generation backend.
type BackendConfig struct {
	Mode  string      `yaml:"mode"`
	Local LocalConfig `yaml:"local"`
	Cloud CloudConfig `yaml:"cloud"`
}

// LocalConfig configures a local LLM server.
type LocalConfig struct {
	Type  string `yaml:"type"`
	URL   string `yaml:"url"`
	Model string `yaml:"model"`
}

// CloudConfig configures a cloud LLM provider. The API key is read from the
// environment variable named by APIKeyEnv, never from the file itself.
type CloudConfig struct {
	Provider  string `yaml:"provider"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	Endpoint  string `yaml:"endpoint"`
}

// DefaultConfig is used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Generator: BackendConfig{
			Mode: ModeCloud,
			Cloud: CloudConfig{
				Provider:  ProviderOpenAI,
				APIKeyEnv: "OPENAI_API_KEY",
				Model:     "gpt-4o-mini",
			},
		},
	}
}

// LoadGeneratorConfig reads the YAML configuration at path, falling back to
// DefaultConfig when the file does not exist.
func LoadGeneratorConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("generator config not found, using defaults")
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read generator config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse generator config %s: %w", path, err)
	}
	return cfg, nil
}

// NewFromConfig builds the configured backend. Cloud gemini gets its own
// SDK-backed generator, everything else speaks HTTP through LLMGenerator.
func NewFromConfig(cfg Config) (StoryGenerator, error) {
	backend := cfg.Generator

	if backend.Mode == ModeCloud && backend.Cloud.Provider == ProviderGemini {
		return NewGeminiGenerator(backend.Cloud)
	}

	gen, err := NewLLMGenerator(backend)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// Load reads the config at path and builds the backend it names.
func Load(path string) (StoryGenerator, error) {
	cfg, err := LoadGeneratorConfig(path)
	if err != nil {
		return nil, err
	}
	gen, err := NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	info := gen.ModelInfo()
	log.Info().
		Str("mode", gen.Mode()).
		Str("provider", info.Provider).
		Str("model", info.Name).
		Msg("story generator loaded")
	return gen, nil
}
