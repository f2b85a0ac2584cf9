package service

import (
	"context"

	"support-rag-be/internal/dto"
	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/pkg/queryprep"
	"support-rag-be/pkg/rerank"
	"support-rag-be/pkg/retrieval"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

// searchService exposes raw hybrid retrieval for dashboard previews and
// debugging: the same engine+gate path the chat flow uses, without the
// LLM on top.
type searchService struct {
	configRepository contract.ITenantConfigRepository
	engine           *retrieval.Engine
	gate             *rerank.Gate
	preprocessor     *queryprep.Preprocessor
	baseCollection   string
	log              logger.ILogger
}

func NewSearchService(
	configRepository contract.ITenantConfigRepository,
	engine *retrieval.Engine,
	gate *rerank.Gate,
	baseCollection string,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		configRepository: configRepository,
		engine:           engine,
		gate:             gate,
		preprocessor:     queryprep.New(),
		baseCollection:   baseCollection,
		log:              log,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	tenant := entity.TenantFilter{BusinessId: req.BusinessId, WidgetId: req.WidgetId}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	cfg, err := s.configRepository.Get(ctx, tenant)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = cfg.MaxRetrievalDocs
	}

	query := s.preprocessor.Process(req.Query)
	complexity := rerank.Classify(req.Query)
	sctx := entity.NewSearchContext(s.baseCollection, cfg.EmbeddingProvider, cfg.EmbeddingModel, tenant)

	candidates, err := s.engine.Search(ctx, sctx, query, limit*complexity.CandidateMultiplier())
	if err != nil {
		return nil, err
	}

	ranked, rerankUsed := s.gate.Apply(ctx, req.Query, candidates, limit, cfg.RerankerEnabled, "")

	results := make([]dto.SearchResult, 0, len(ranked))
	for _, c := range ranked {
		r := dto.SearchResult{
			ChunkId:    c.ChunkId.String(),
			ItemId:     c.Metadata.SourceItemId,
			Title:      c.Metadata.Title,
			Type:       c.Metadata.Type,
			Content:    c.Text,
			Score:      c.RawScore(),
			FusedScore: c.FusedScore,
		}
		if rerankUsed {
			r.RerankScore = c.RelevanceScore
		}
		results = append(results, r)
	}

	return &dto.SearchResponse{
		Results:    results,
		RerankUsed: rerankUsed,
	}, nil
}
