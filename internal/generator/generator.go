// Package generator implements the story generation backends a miner can
// serve from: local LLM servers (ollama, vLLM) and cloud providers (OpenAI,
// Gemini, Zhipu).
package generator

import (
	"context"
	"errors"
)

const (
	ModeLocal = "local"
	ModeCloud = "cloud"

	LocalTypeOllama = "ollama"
	LocalTypeVLLM   = "vllm"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderZhipu  = "zhipu"
)

var (
	ErrGeneratorUnavailable = errors.New("generator not available")
	ErrGenerationFailed     = errors.New("generation failed")
)

// GenerationInput carries a story generation request.
type GenerationInput struct {
	UserInput  string         `json:"user_input"`
	Blueprint  map[string]any `json:"blueprint,omitempty"`
	Characters map[string]any `json:"characters,omitempty"`
	StoryArc   map[string]any `json:"story_arc,omitempty"`
	ChapterIDs []int          `json:"chapter_ids,omitempty"`
}

// GenerationResult carries generated content plus provenance.
type GenerationResult struct {
	GeneratedContent string            `json:"generated_content"`
	Model            string            `json:"model"`
	Mode             string            `json:"mode"`
	GenerationTime   float64           `json:"generation_time"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// ModelInfo describes the model behind a generator.
type ModelInfo struct {
	Name       string            `json:"name"`
	Version    string            `json:"version,omitempty"`
	Provider   string            `json:"provider,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// StoryGenerator is the backend interface the miner serves requests from.
type StoryGenerator interface {
	Generate(ctx context.Context, input GenerationInput) (*GenerationResult, error)
	Mode() string
	ModelInfo() ModelInfo
	HealthCheck(ctx context.Context) bool
}
