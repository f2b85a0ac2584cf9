package factory

import (
	"fmt"

	"support-rag-be/pkg/llm"
	"support-rag-be/pkg/llm/ollama"
	"support-rag-be/pkg/llm/openrouter"
)

type Config struct {
	Provider  string // "openrouter" or "ollama"
	Model     string
	ApiKey    string // openrouter only
	BaseURL   string // ollama only
	SiteURL   string // openrouter attribution headers
	SiteName  string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openrouter":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("openrouter requires an api key")
		}
		return openrouter.NewOpenRouterProvider(cfg.ApiKey, cfg.Model, cfg.SiteURL, cfg.SiteName), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
