package mapper

import (
	"support-rag-be/internal/entity"
	"support-rag-be/internal/model"
)

type TenantAiConfigMapper struct{}

func NewTenantAiConfigMapper() *TenantAiConfigMapper {
	return &TenantAiConfigMapper{}
}

func (m *TenantAiConfigMapper) ToEntity(c *model.TenantAiConfig) *entity.TenantAIConfig {
	if c == nil {
		return nil
	}
	return &entity.TenantAIConfig{
		Tenant: entity.TenantFilter{
			BusinessId: c.BusinessId,
			WidgetId:   c.WidgetId,
		},
		Enabled:             c.Enabled,
		RagEnabled:          c.RagEnabled,
		Model:               c.Model,
		Temperature:         c.Temperature,
		MaxTokens:           c.MaxTokens,
		SystemPrompt:        c.SystemPrompt,
		CustomSystemPrompt:  c.CustomSystemPrompt,
		EmbeddingProvider:   c.EmbeddingProvider,
		EmbeddingModel:      c.EmbeddingModel,
		RerankerEnabled:     c.RerankerEnabled,
		ConfidenceThreshold: c.ConfidenceThreshold,
		MaxRetrievalDocs:    c.MaxRetrievalDocs,
		FallbackToHuman:     c.FallbackToHuman,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (m *TenantAiConfigMapper) ToModel(c *entity.TenantAIConfig) *model.TenantAiConfig {
	if c == nil {
		return nil
	}
	return &model.TenantAiConfig{
		BusinessId:          c.Tenant.BusinessId,
		WidgetId:            c.Tenant.WidgetId,
		Enabled:             c.Enabled,
		RagEnabled:          c.RagEnabled,
		Model:               c.Model,
		Temperature:         c.Temperature,
		MaxTokens:           c.MaxTokens,
		SystemPrompt:        c.SystemPrompt,
		CustomSystemPrompt:  c.CustomSystemPrompt,
		EmbeddingProvider:   c.EmbeddingProvider,
		EmbeddingModel:      c.EmbeddingModel,
		RerankerEnabled:     c.RerankerEnabled,
		ConfidenceThreshold: c.ConfidenceThreshold,
		MaxRetrievalDocs:    c.MaxRetrievalDocs,
		FallbackToHuman:     c.FallbackToHuman,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
