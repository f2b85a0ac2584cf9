package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"support-rag-be/internal/constant"
	"support-rag-be/internal/dto"
	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/pkg/confidence"
	"support-rag-be/pkg/events"
	"support-rag-be/pkg/llm"
	pkgNats "support-rag-be/pkg/nats"
	"support-rag-be/pkg/queryprep"
	"support-rag-be/pkg/rerank"
	"support-rag-be/pkg/retrieval"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	configRepository contract.ITenantConfigRepository
	engine           *retrieval.Engine
	gate             *rerank.Gate
	llmProvider      llm.LLMProvider
	preprocessor     *queryprep.Preprocessor
	eventPublisher   *pkgNats.Publisher
	baseCollection   string
	log              logger.ILogger
}

func NewChatService(
	configRepository contract.ITenantConfigRepository,
	engine *retrieval.Engine,
	gate *rerank.Gate,
	llmProvider llm.LLMProvider,
	eventPublisher *pkgNats.Publisher,
	baseCollection string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		configRepository: configRepository,
		engine:           engine,
		gate:             gate,
		llmProvider:      llmProvider,
		preprocessor:     queryprep.New(),
		eventPublisher:   eventPublisher,
		baseCollection:   baseCollection,
		log:              log,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	tenant := entity.TenantFilter{BusinessId: req.BusinessId, WidgetId: req.WidgetId}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	cfg, err := s.configRepository.Get(ctx, tenant)
	if err != nil {
		return nil, err
	}

	if !cfg.Enabled {
		return &dto.ChatResponse{
			Success:               false,
			Response:              constant.AiDisabledMessage,
			Confidence:            0.0,
			Sources:               []dto.ChatSource{},
			ShouldFallbackToHuman: true,
			Metadata:              dto.ChatMetadata{Mode: "disabled", Model: cfg.Model},
		}, nil
	}

	// Small talk skips retrieval; it saves an embedding round-trip and a
	// vector search that could only produce noise.
	if s.isConversational(req.Message) {
		return s.directReply(ctx, cfg, req.Message, "conversational_direct", 0.95)
	}

	if !cfg.RagEnabled {
		return s.directReply(ctx, cfg, req.Message, "direct_llm", 0.7)
	}

	return s.ragReply(ctx, cfg, tenant, req)
}

func (s *chatService) isConversational(message string) bool {
	if rerank.Classify(message) == rerank.ComplexityGreeting {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(message))
	if len(strings.Fields(message)) > 4 {
		return false
	}
	for _, phrase := range constant.ConversationalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func (s *chatService) directReply(ctx context.Context, cfg *entity.TenantAIConfig, message, mode string, conf float64) (*dto.ChatResponse, error) {
	system := constant.SystemPromptFor(cfg.SystemPrompt, cfg.CustomSystemPrompt)
	if mode == "direct_llm" {
		// No retrieval behind this answer; steer specific questions to a
		// human instead of letting the model improvise.
		system += "\n\nYou currently don't have access to the knowledge base. If the user asks a specific question requiring knowledge, politely say: \"" + constant.MissingContextMessage + "\""
	}
	answer, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: constant.ChatMessageRoleSystem, Content: system},
			{Role: constant.ChatMessageRoleUser, Content: message},
		},
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithMaxTokens(cfg.MaxTokens),
	)
	if err != nil {
		s.log.Error("chat", "direct llm call failed", map[string]interface{}{"error": err.Error()})
		return s.errorResponse(cfg), nil
	}
	return &dto.ChatResponse{
		Success:               true,
		Response:              answer,
		Confidence:            conf,
		Sources:               []dto.ChatSource{},
		ShouldFallbackToHuman: false,
		Metadata:              dto.ChatMetadata{Mode: mode, Model: cfg.Model},
	}, nil
}

func (s *chatService) ragReply(ctx context.Context, cfg *entity.TenantAIConfig, tenant entity.TenantFilter, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query := s.preprocessor.Process(req.Message)
	complexity := rerank.Classify(req.Message)
	sctx := entity.NewSearchContext(s.baseCollection, cfg.EmbeddingProvider, cfg.EmbeddingModel, tenant)

	poolSize := cfg.MaxRetrievalDocs * complexity.CandidateMultiplier()
	candidates, err := s.engine.Search(ctx, sctx, query, poolSize)
	if err != nil {
		s.log.Error("chat", "retrieval failed", map[string]interface{}{
			"collection": sctx.Collection,
			"error":      err.Error(),
		})
		return s.errorResponse(cfg), nil
	}

	reranked, rerankUsed := s.gate.Apply(ctx, req.Message, candidates, cfg.MaxRetrievalDocs, cfg.RerankerEnabled, "")

	var contextText strings.Builder
	sources := make([]dto.ChatSource, 0, len(reranked))
	scoreInputs := make([]confidence.SourceScore, 0, len(reranked))
	for _, cand := range reranked {
		contextText.WriteString(cand.Text)
		contextText.WriteString("\n\n")
		sources = append(sources, dto.ChatSource{
			Title:      cand.Metadata.Title,
			Type:       cand.Metadata.Type,
			Content:    preview(cand.Text, 200),
			Score:      cand.RawScore(),
			ChunkIndex: cand.Metadata.ChunkIndex,
		})
		scoreInputs = append(scoreInputs, confidence.SourceScore{
			Raw:       cand.RawScore(),
			Relevance: cand.RelevanceScore,
		})
	}

	answer, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: constant.ChatMessageRoleSystem, Content: constant.SystemPromptFor(cfg.SystemPrompt, cfg.CustomSystemPrompt)},
			{Role: constant.ChatMessageRoleUser, Content: constant.RAGContextHeader + contextText.String() + "\n=== QUESTION ===\n" + req.Message},
		},
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithMaxTokens(cfg.MaxTokens),
	)
	if err != nil {
		s.log.Error("chat", "rag llm call failed", map[string]interface{}{"error": err.Error()})
		return s.errorResponse(cfg), nil
	}

	if s.isUncertain(req.Message, answer) {
		return s.uncertainResponse(cfg, tenant, req.SessionId, sources, rerankUsed), nil
	}

	decision := confidence.Score(confidence.Input{
		Answer:          answer,
		Sources:         scoreInputs,
		Reranked:        rerankUsed,
		FallbackEnabled: cfg.FallbackToHuman,
		Threshold:       cfg.ConfidenceThreshold,
	})
	if decision.ShouldFallbackToHuman {
		s.emitHandover(tenant, req.SessionId, decision.Confidence)
	}

	return &dto.ChatResponse{
		Success:               true,
		Response:              answer,
		Confidence:            decision.Confidence,
		Sources:               sources,
		ShouldFallbackToHuman: decision.ShouldFallbackToHuman,
		Metadata: dto.ChatMetadata{
			Mode:         "rag",
			Model:        cfg.Model,
			SourcesCount: len(sources),
			RerankUsed:   rerankUsed,
			ReasonCodes:  decision.ReasonCodes,
		},
	}, nil
}

// isUncertain flags answers that admit missing knowledge, but only for
// substantive questions; "thanks" answered with a shrug is fine.
func (s *chatService) isUncertain(question, answer string) bool {
	qLower := strings.ToLower(strings.TrimSpace(question))
	substantive := strings.Contains(question, "?") ||
		len(strings.Fields(question)) > 3
	if !substantive {
		for _, prefix := range []string{"what", "how", "when", "where", "why", "who", "can", "could", "would", "is", "are", "do", "does"} {
			if strings.HasPrefix(qLower, prefix) {
				substantive = true
				break
			}
		}
	}
	if !substantive {
		return false
	}
	aLower := strings.ToLower(answer)
	for _, phrase := range constant.UncertaintyPhrases {
		if strings.Contains(aLower, phrase) {
			return true
		}
	}
	return false
}

func (s *chatService) uncertainResponse(cfg *entity.TenantAIConfig, tenant entity.TenantFilter, sessionId string, sources []dto.ChatSource, rerankUsed bool) *dto.ChatResponse {
	if cfg.FallbackToHuman {
		s.emitHandover(tenant, sessionId, 0.3)
		return &dto.ChatResponse{
			Success:               true,
			Response:              constant.SmartFallbackMessage,
			Confidence:            0.3,
			Sources:               sources,
			ShouldFallbackToHuman: true,
			Metadata: dto.ChatMetadata{
				Mode:         "rag",
				Model:        cfg.Model,
				SourcesCount: len(sources),
				RerankUsed:   rerankUsed,
			},
		}
	}
	return &dto.ChatResponse{
		Success:               true,
		Response:              constant.HonestFallbackMessage,
		Confidence:            0.3,
		Sources:               sources,
		ShouldFallbackToHuman: false,
		Metadata: dto.ChatMetadata{
			Mode:         "rag",
			Model:        cfg.Model,
			SourcesCount: len(sources),
			RerankUsed:   rerankUsed,
		},
	}
}

func (s *chatService) errorResponse(cfg *entity.TenantAIConfig) *dto.ChatResponse {
	return &dto.ChatResponse{
		Success:               false,
		Response:              constant.GenericErrorMessage,
		Confidence:            0.0,
		Sources:               []dto.ChatSource{},
		ShouldFallbackToHuman: true,
		Metadata:              dto.ChatMetadata{Mode: "error", Model: cfg.Model},
	}
}

func (s *chatService) emitHandover(tenant entity.TenantFilter, sessionId string, conf float64) {
	if s.eventPublisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.eventPublisher.Publish(ctx, events.NewHumanHandover(tenant.BusinessId, tenant.WidgetId, sessionId, conf)); err != nil {
			s.log.Warn("chat", "handover event publish failed", map[string]interface{}{"error": err.Error()})
		}
	}()
}

func preview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	// Back up to a rune boundary so the preview stays valid UTF-8.
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
