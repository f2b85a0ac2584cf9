package service

import (
	"context"
	"encoding/json"

	"support-rag-be/internal/dto"
	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/pkg/ingest"
)

type IKnowledgeService interface {
	// Upsert queues one item for async indexing.
	Upsert(ctx context.Context, req *dto.UpsertKnowledgeItemRequest) (*dto.UpsertKnowledgeItemResponse, error)

	// Delete removes an item's chunks immediately.
	Delete(ctx context.Context, req *dto.DeleteKnowledgeItemRequest) (*dto.DeleteKnowledgeItemResponse, error)

	// Wipe removes all of a business's chunks across every provider
	// collection.
	Wipe(ctx context.Context, req *dto.WipeTenantRequest) (*dto.WipeTenantResponse, error)
}

type knowledgeService struct {
	publisherService IPublisherService
	pipeline         *ingest.Pipeline
	configRepository contract.ITenantConfigRepository
	baseCollection   string
	log              logger.ILogger
}

func NewKnowledgeService(
	publisherService IPublisherService,
	pipeline *ingest.Pipeline,
	configRepository contract.ITenantConfigRepository,
	baseCollection string,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		publisherService: publisherService,
		pipeline:         pipeline,
		configRepository: configRepository,
		baseCollection:   baseCollection,
		log:              log,
	}
}

func (s *knowledgeService) Upsert(ctx context.Context, req *dto.UpsertKnowledgeItemRequest) (*dto.UpsertKnowledgeItemResponse, error) {
	tenant := entity.TenantFilter{BusinessId: req.BusinessId, WidgetId: req.WidgetId}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	msgJson, err := json.Marshal(dto.IngestJobMessage{
		BusinessId: req.BusinessId,
		WidgetId:   req.WidgetId,
		ItemId:     req.ItemId,
		Title:      req.Title,
		Type:       req.Type,
		Content:    req.Content,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	s.log.Info("knowledge", "ingest job queued", map[string]interface{}{
		"item_id":     req.ItemId,
		"business_id": req.BusinessId,
	})
	return &dto.UpsertKnowledgeItemResponse{ItemId: req.ItemId, Queued: true}, nil
}

func (s *knowledgeService) Delete(ctx context.Context, req *dto.DeleteKnowledgeItemRequest) (*dto.DeleteKnowledgeItemResponse, error) {
	tenant := entity.TenantFilter{BusinessId: req.BusinessId, WidgetId: req.WidgetId}
	sctx, err := s.searchContext(ctx, tenant)
	if err != nil {
		return nil, err
	}

	removed, err := s.pipeline.Delete(ctx, sctx, req.ItemId)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteKnowledgeItemResponse{ItemId: req.ItemId, ChunksRemoved: removed}, nil
}

func (s *knowledgeService) Wipe(ctx context.Context, req *dto.WipeTenantRequest) (*dto.WipeTenantResponse, error) {
	if req.BusinessId == "" {
		return nil, entity.ErrMissingTenantFilter
	}

	// Chunks may live in any provider's collection; wipe all of them.
	var total int64
	for _, provider := range []string{"openai", "voyage", "ollama"} {
		collection := entity.NewSearchContext(s.baseCollection, provider, "", entity.TenantFilter{}).Collection
		removed, err := s.pipeline.Wipe(ctx, collection, req.BusinessId, req.WidgetId)
		if err != nil {
			return nil, err
		}
		total += removed
	}
	return &dto.WipeTenantResponse{ChunksRemoved: total}, nil
}

func (s *knowledgeService) searchContext(ctx context.Context, tenant entity.TenantFilter) (entity.SearchContext, error) {
	if err := tenant.Validate(); err != nil {
		return entity.SearchContext{}, err
	}
	cfg, err := s.configRepository.Get(ctx, tenant)
	if err != nil {
		return entity.SearchContext{}, err
	}
	return entity.NewSearchContext(s.baseCollection, cfg.EmbeddingProvider, cfg.EmbeddingModel, tenant), nil
}
