package service

import (
	"context"

	"support-rag-be/internal/dto"
	"support-rag-be/internal/entity"
	"support-rag-be/internal/repository/contract"
)

type IAiConfigService interface {
	Get(ctx context.Context, req *dto.GetAiConfigRequest) (*dto.AiConfigResponse, error)
	Save(ctx context.Context, req *dto.SaveAiConfigRequest) (*dto.AiConfigResponse, error)
}

type aiConfigService struct {
	configRepository contract.ITenantConfigRepository
}

func NewAiConfigService(configRepository contract.ITenantConfigRepository) IAiConfigService {
	return &aiConfigService{configRepository: configRepository}
}

func (s *aiConfigService) Get(ctx context.Context, req *dto.GetAiConfigRequest) (*dto.AiConfigResponse, error) {
	tenant := entity.TenantFilter{BusinessId: req.BusinessId, WidgetId: req.WidgetId}
	cfg, err := s.configRepository.Get(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return toAiConfigResponse(cfg), nil
}

func (s *aiConfigService) Save(ctx context.Context, req *dto.SaveAiConfigRequest) (*dto.AiConfigResponse, error) {
	cfg := &entity.TenantAIConfig{
		Tenant:              entity.TenantFilter{BusinessId: req.BusinessId, WidgetId: req.WidgetId},
		Enabled:             req.Enabled,
		RagEnabled:          req.RagEnabled,
		Model:               req.Model,
		Temperature:         req.Temperature,
		MaxTokens:           req.MaxTokens,
		SystemPrompt:        req.SystemPrompt,
		CustomSystemPrompt:  req.CustomSystemPrompt,
		EmbeddingProvider:   req.EmbeddingProvider,
		EmbeddingModel:      req.EmbeddingModel,
		RerankerEnabled:     req.RerankerEnabled,
		ConfidenceThreshold: req.ConfidenceThreshold,
		MaxRetrievalDocs:    req.MaxRetrievalDocs,
		FallbackToHuman:     req.FallbackToHuman,
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = "support"
	}
	if err := s.configRepository.Save(ctx, cfg); err != nil {
		return nil, err
	}
	saved, err := s.configRepository.Get(ctx, cfg.Tenant)
	if err != nil {
		return nil, err
	}
	return toAiConfigResponse(saved), nil
}

func toAiConfigResponse(cfg *entity.TenantAIConfig) *dto.AiConfigResponse {
	return &dto.AiConfigResponse{
		BusinessId:          cfg.Tenant.BusinessId,
		WidgetId:            cfg.Tenant.WidgetId,
		Enabled:             cfg.Enabled,
		RagEnabled:          cfg.RagEnabled,
		Model:               cfg.Model,
		Temperature:         cfg.Temperature,
		MaxTokens:           cfg.MaxTokens,
		SystemPrompt:        cfg.SystemPrompt,
		CustomSystemPrompt:  cfg.CustomSystemPrompt,
		EmbeddingProvider:   cfg.EmbeddingProvider,
		EmbeddingModel:      cfg.EmbeddingModel,
		RerankerEnabled:     cfg.RerankerEnabled,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		MaxRetrievalDocs:    cfg.MaxRetrievalDocs,
		FallbackToHuman:     cfg.FallbackToHuman,
		UpdatedAt:           cfg.UpdatedAt,
	}
}
