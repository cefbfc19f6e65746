package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/recon/internal/config"
	"github.com/agenthands/recon/internal/logging"
)

// NewClient builds the client for cfg.Provider. An empty provider means no
// LLM is configured and returns (nil, nil).
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)
	log := logging.FromContext(ctx)

	switch provider {
	case "":
		return nil, nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "claude", "anthropic":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama speaks the OpenAI chat API under /v1
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		log.Info().Str("base_url", baseURL).Msg("Using Ollama through its OpenAI-compatible API")
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
