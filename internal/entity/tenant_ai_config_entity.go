package entity

import "time"

// TenantAIConfig holds the per-tenant AI behavior settings. It is
// read-mostly: the query path only reads it, writes happen rarely through
// the admin surface under a single-writer assumption.
type TenantAIConfig struct {
	Tenant              TenantFilter
	Enabled             bool
	RagEnabled          bool
	Model               string // generation model, e.g. "deepseek/deepseek-chat-v3.1:free"
	Temperature         float64
	MaxTokens           int
	SystemPrompt        string // preset name: "support", "sales", "technical", "general", "custom"
	CustomSystemPrompt  string
	EmbeddingProvider   string // "voyage", "openai" or "ollama"
	EmbeddingModel      string
	RerankerEnabled     bool
	ConfidenceThreshold float64
	MaxRetrievalDocs    int
	FallbackToHuman     bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultTenantAIConfig mirrors the dashboard defaults for a tenant that
// has never saved a config.
func DefaultTenantAIConfig(tenant TenantFilter) *TenantAIConfig {
	return &TenantAIConfig{
		Tenant:              tenant,
		Enabled:             true,
		RagEnabled:          true,
		Model:               "deepseek/deepseek-chat-v3.1:free",
		Temperature:         0.7,
		MaxTokens:           500,
		SystemPrompt:        "support",
		EmbeddingProvider:   "voyage",
		EmbeddingModel:      "voyage-3-large",
		RerankerEnabled:     true,
		ConfidenceThreshold: 0.6,
		MaxRetrievalDocs:    5,
		FallbackToHuman:     true,
	}
}
