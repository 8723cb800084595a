package generator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultOllamaURL = "http://localhost:11434"
	defaultOpenAIURL = "https://api.openai.com/v1"
	zhipuEndpoint    = "https://open.bigmodel.cn/api/paas/v4/chat/completions"

	defaultLocalModel = "qwen2.5:7b"
	defaultCloudModel = "gpt-4o-mini"

	generationTemperature = 0.8
	generationMaxTokens   = 2048

	localRequestTimeout = 120 * time.Second
	cloudRequestTimeout = 60 * time.Second
)

// LLMGenerator speaks to an LLM over HTTP. Local mode covers ollama's
// native API and OpenAI-compatible servers such as vLLM; cloud mode covers
// OpenAI and Zhipu chat-completion endpoints.
type LLMGenerator struct {
	mode      string
	localType string
	localURL  string
	provider  string
	model     string
	endpoint  string
	apiKey    string
	chatAPI   bool
	available bool

	client *resty.Client
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// NewLLMGenerator builds an HTTP-backed generator from the backend config.
// A cloud backend whose API key environment variable is unset comes back
// unavailable rather than failing construction, so a miner can still start
// and report unhealthy.
func NewLLMGenerator(cfg BackendConfig) (*LLMGenerator, error) {
	g := &LLMGenerator{mode: cfg.Mode}
	if g.mode == "" {
		g.mode = ModeCloud
	}

	if g.mode == ModeLocal {
		g.initLocal(cfg.Local)
	} else {
		g.initCloud(cfg.Cloud)
	}

	timeout := cloudRequestTimeout
	if g.mode == ModeLocal {
		timeout = localRequestTimeout
	}
	g.client = resty.New().
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(timeout)

	return g, nil
}

func (g *LLMGenerator) initLocal(cfg LocalConfig) {
	g.localType = cfg.Type
	if g.localType == "" {
		g.localType = LocalTypeOllama
	}
	g.localURL = cfg.URL
	if g.localURL == "" {
		g.localURL = defaultOllamaURL
	}
	g.model = cfg.Model
	if g.model == "" {
		g.model = defaultLocalModel
	}

	if g.localType == LocalTypeOllama {
		g.endpoint = g.localURL + "/api/generate"
		g.chatAPI = false
	} else {
		g.endpoint = g.localURL + "/v1/chat/completions"
		g.chatAPI = true
	}

	g.available = true
	log.Info().Str("type", g.localType).Str("url", g.localURL).Msg("local LLM initialized")
}

func (g *LLMGenerator) initCloud(cfg CloudConfig) {
	g.provider = cfg.Provider
	if g.provider == "" {
		g.provider = ProviderOpenAI
	}
	g.model = cfg.Model
	if g.model == "" {
		g.model = defaultCloudModel
	}
	g.chatAPI = true

	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	g.apiKey = os.Getenv(keyEnv)
	if g.apiKey == "" {
		log.Warn().Str("env", keyEnv).Msg("API key not found in environment")
		return
	}

	switch g.provider {
	case ProviderZhipu:
		g.endpoint = zhipuEndpoint
	default:
		base := cfg.Endpoint
		if base == "" {
			base = defaultOpenAIURL
		}
		g.endpoint = base + "/chat/completions"
	}

	g.available = true
	log.Info().Str("provider", g.provider).Str("model", g.model).Msg("cloud LLM initialized")
}

// Generate produces story content for the input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerationInput) (*GenerationResult, error) {
	if !g.available {
		return nil, ErrGeneratorUnavailable
	}

	start := time.Now()

	var content string
	var err error
	if g.chatAPI {
		content, err = g.generateChat(ctx, input)
	} else {
		content, err = g.generateOllama(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	backendType := g.provider
	if g.mode == ModeLocal {
		backendType = g.localType
	}

	return &GenerationResult{
		GeneratedContent: content,
		Model:            g.model,
		Mode:             g.mode,
		GenerationTime:   time.Since(start).Seconds(),
		Metadata:         map[string]string{"type": backendType},
	}, nil
}

func (g *LLMGenerator) generateOllama(ctx context.Context, input GenerationInput) (string, error) {
	var result ollamaResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(ollamaRequest{
			Model:  g.model,
			Prompt: BuildPrompt(input),
			Stream: false,
			Options: ollamaOptions{
				Temperature: generationTemperature,
				NumPredict:  generationMaxTokens,
			},
		}).
		SetResult(&result).
		Post(g.endpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.Response, nil
}

func (g *LLMGenerator) generateChat(ctx context.Context, input GenerationInput) (string, error) {
	req := g.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       g.model,
			Messages:    BuildMessages(input),
			Temperature: generationTemperature,
			MaxTokens:   generationMaxTokens,
		})
	if g.apiKey != "" {
		req.SetAuthToken(g.apiKey)
	}

	var result chatResponse
	resp, err := req.SetResult(&result).Post(g.endpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat endpoint returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat endpoint returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// Mode returns the configured generation mode.
func (g *LLMGenerator) Mode() string {
	return g.mode
}

// ModelInfo describes the backing model.
func (g *LLMGenerator) ModelInfo() ModelInfo {
	if g.mode == ModeLocal {
		return ModelInfo{
			Name:       g.model,
			Provider:   g.localType,
			Parameters: map[string]string{"url": g.localURL},
		}
	}
	return ModelInfo{
		Name:     g.model,
		Provider: g.provider,
	}
}

// HealthCheck reports whether the backend is configured and reachable in
// principle. It does not issue a request.
func (g *LLMGenerator) HealthCheck(_ context.Context) bool {
	return g.available
}
