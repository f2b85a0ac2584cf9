package dto

import "time"

type GetAiConfigRequest struct {
	BusinessId string `json:"business_id" validate:"required"`
	WidgetId   string `json:"widget_id" validate:"required"`
}

type SaveAiConfigRequest struct {
	BusinessId          string  `json:"business_id" validate:"required"`
	WidgetId            string  `json:"widget_id" validate:"required"`
	Enabled             bool    `json:"enabled"`
	RagEnabled          bool    `json:"rag_enabled"`
	Model               string  `json:"model" validate:"required"`
	Temperature         float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens           int     `json:"max_tokens" validate:"gt=0,lte=4000"`
	SystemPrompt        string  `json:"system_prompt" validate:"omitempty,oneof=support sales technical general custom"`
	CustomSystemPrompt  string  `json:"custom_system_prompt,omitempty"`
	EmbeddingProvider   string  `json:"embedding_provider" validate:"required,oneof=voyage openai ollama"`
	EmbeddingModel      string  `json:"embedding_model" validate:"required"`
	RerankerEnabled     bool    `json:"reranker_enabled"`
	ConfidenceThreshold float64 `json:"confidence_threshold" validate:"gte=0,lte=1"`
	MaxRetrievalDocs    int     `json:"max_retrieval_docs" validate:"gt=0,lte=20"`
	FallbackToHuman     bool    `json:"fallback_to_human"`
}

type AiConfigResponse struct {
	BusinessId          string    `json:"business_id"`
	WidgetId            string    `json:"widget_id"`
	Enabled             bool      `json:"enabled"`
	RagEnabled          bool      `json:"rag_enabled"`
	Model               string    `json:"model"`
	Temperature         float64   `json:"temperature"`
	MaxTokens           int       `json:"max_tokens"`
	SystemPrompt        string    `json:"system_prompt"`
	CustomSystemPrompt  string    `json:"custom_system_prompt,omitempty"`
	EmbeddingProvider   string    `json:"embedding_provider"`
	EmbeddingModel      string    `json:"embedding_model"`
	RerankerEnabled     bool      `json:"reranker_enabled"`
	ConfidenceThreshold float64   `json:"confidence_threshold"`
	MaxRetrievalDocs    int       `json:"max_retrieval_docs"`
	FallbackToHuman     bool      `json:"fallback_to_human"`
	UpdatedAt           time.Time `json:"updated_at"`
}
