package bootstrap

import (
	"log"

	"support-rag-be/internal/config"
	"support-rag-be/internal/controller"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/implementation"
	"support-rag-be/internal/service"
	"support-rag-be/pkg/embedding"
	"support-rag-be/pkg/ingest"
	"support-rag-be/pkg/llm/factory"
	"support-rag-be/pkg/rerank"
	"support-rag-be/pkg/retrieval"

	pktNats "support-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	SearchController    controller.ISearchController
	KnowledgeController controller.IKnowledgeController
	AiConfigController  controller.IAiConfigController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus (in-process ingest queue)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding providers. Each one registers under its own name; tenant
	// config picks the active one per request.
	registry := embedding.NewRegistry(
		embedding.NewVoyageProvider(cfg.Keys.Voyage),
		embedding.NewOpenAIProvider(cfg.Keys.OpenAI),
		embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL),
	)

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		ApiKey:   cfg.Keys.OpenRouter,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		SiteURL:  cfg.Ai.OpenRouterSite,
		SiteName: cfg.Ai.OpenRouterTitle,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS (best effort: events are fire-and-forget)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Repositories
	vectorIndex := implementation.NewVectorIndexRepository(db)
	configRepo := implementation.NewCachedTenantConfigRepository(
		implementation.NewTenantConfigRepository(db),
	)

	// Retrieval core
	engine := retrieval.NewEngine(vectorIndex, registry, sysLogger)
	gate := rerank.NewGate(rerank.NewVoyageClient(cfg.Keys.Voyage), rerank.DefaultGateConfig(), sysLogger)

	var eventPublisher ingest.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}
	pipeline := ingest.NewPipeline(vectorIndex, registry, eventPublisher, sysLogger)

	// Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		pipeline,
		configRepo,
		cfg.Ai.BaseCollection,
		sysLogger,
	)

	knowledgeService := service.NewKnowledgeService(
		publisherService,
		pipeline,
		configRepo,
		cfg.Ai.BaseCollection,
		sysLogger,
	)
	chatService := service.NewChatService(
		configRepo,
		engine,
		gate,
		llmProvider,
		natsPub,
		cfg.Ai.BaseCollection,
		sysLogger,
	)
	searchService := service.NewSearchService(
		configRepo,
		engine,
		gate,
		cfg.Ai.BaseCollection,
		sysLogger,
	)
	aiConfigService := service.NewAiConfigService(configRepo)

	return &Container{
		ChatController:      controller.NewChatController(chatService),
		SearchController:    controller.NewSearchController(searchService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		AiConfigController:  controller.NewAiConfigController(aiConfigService),
		ConsumerService:     consumerService,
	}
}
