package service

import (
	"context"
	"encoding/json"

	"support-rag-be/internal/dto"
	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/pkg/ingest"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the ingest queue: each message is one
// knowledge base item to chunk, embed and index.
type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	pipeline         *ingest.Pipeline
	configRepository contract.ITenantConfigRepository
	baseCollection   string
	log              logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	pipeline *ingest.Pipeline,
	configRepository contract.ITenantConfigRepository,
	baseCollection string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		pipeline:         pipeline,
		configRepository: configRepository,
		baseCollection:   baseCollection,
		log:              log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal ingest job", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages would retry forever
		return
	}

	tenant := entity.TenantFilter{BusinessId: payload.BusinessId, WidgetId: payload.WidgetId}
	cfg, err := cs.configRepository.Get(ctx, tenant)
	if err != nil {
		cs.log.Error("consumer", "failed to load tenant config", map[string]interface{}{
			"business_id": payload.BusinessId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	sctx := entity.NewSearchContext(cs.baseCollection, cfg.EmbeddingProvider, cfg.EmbeddingModel, tenant)

	chunks, err := cs.pipeline.Ingest(ctx, sctx, ingest.Item{
		Id:      payload.ItemId,
		Title:   payload.Title,
		Type:    payload.Type,
		Content: payload.Content,
	})
	if err != nil {
		cs.log.Error("consumer", "ingest failed", map[string]interface{}{
			"item_id": payload.ItemId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "ingest job done", map[string]interface{}{
		"item_id": payload.ItemId,
		"chunks":  chunks,
	})
	msg.Ack()
}
