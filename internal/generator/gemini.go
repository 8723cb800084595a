package generator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator serves story generation through the Gemini SDK.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	available bool
}

// NewGeminiGenerator builds a Gemini-backed generator. Like the HTTP
// generators, a missing API key yields an unavailable generator rather than
// a construction error.
func NewGeminiGenerator(cfg CloudConfig) (*GeminiGenerator, error) {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "GEMINI_API_KEY"
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		log.Warn().Str("env", keyEnv).Msg("API key not found in environment")
		return &GeminiGenerator{model: model}, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Info().Str("provider", ProviderGemini).Str("model", model).Msg("cloud LLM initialized")
	return &GeminiGenerator{
		client:    client,
		model:     model,
		available: true,
	}, nil
}

// Generate produces story content for the input.
func (g *GeminiGenerator) Generate(ctx context.Context, input GenerationInput) (*GenerationResult, error) {
	if !g.available {
		return nil, ErrGeneratorUnavailable
	}

	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(BuildPrompt(input)),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](generationTemperature),
			MaxOutputTokens: generationMaxTokens,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &GenerationResult{
		GeneratedContent: resp.Text(),
		Model:            g.model,
		Mode:             ModeCloud,
		GenerationTime:   time.Since(start).Seconds(),
		Metadata:         map[string]string{"type": ProviderGemini},
	}, nil
}

// Mode returns the generation mode, always cloud for Gemini.
func (g *GeminiGenerator) Mode() string {
	return ModeCloud
}

// ModelInfo describes the backing model.
func (g *GeminiGenerator) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:     g.model,
		Provider: ProviderGemini,
	}
}

// HealthCheck reports whether the client was configured with an API key.
func (g *GeminiGenerator) HealthCheck(_ context.Context) bool {
	return g.available
}
