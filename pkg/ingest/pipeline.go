package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/pkg/chunker"
	"support-rag-be/pkg/embedding"
	"support-rag-be/pkg/events"
	"support-rag-be/pkg/sparse"
)

// embedBatchSize stays under every provider's per-request input cap.
const embedBatchSize = 100

// EventPublisher is the slice of the bus the pipeline needs. A nil
// publisher disables events without disabling ingestion.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Item is one knowledge base entry to index.
type Item struct {
	Id      string
	Title   string
	Type    string // "text", "faq", "page", "document", "sheet"
	Content string
}

// Pipeline turns knowledge base items into indexed chunks. Re-ingesting
// an item replaces its chunk set atomically from the reader's point of
// view: old chunks are deleted immediately before the fresh set is
// written, under a per-item lock.
type Pipeline struct {
	index     contract.VectorIndex
	providers *embedding.Registry
	publisher EventPublisher
	log       logger.ILogger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPipeline(index contract.VectorIndex, providers *embedding.Registry, publisher EventPublisher, log logger.ILogger) *Pipeline {
	return &Pipeline{
		index:     index,
		providers: providers,
		publisher: publisher,
		log:       log,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Ingest chunks, embeds and indexes one item, returning the number of
// chunks written. Concurrent Ingest/Delete calls for the same item
// serialize; different items proceed in parallel.
func (p *Pipeline) Ingest(ctx context.Context, sctx entity.SearchContext, item Item) (int, error) {
	if err := sctx.Tenant.Validate(); err != nil {
		return 0, err
	}
	if item.Id == "" {
		return 0, fmt.Errorf("item id is required")
	}

	provider, err := p.providers.Get(sctx.Provider)
	if err != nil {
		return 0, err
	}

	profile := chunker.DocumentProfile()
	if item.Type == "page" {
		profile = chunker.WebProfile()
	}
	texts := chunker.Split(item.Content, profile)
	if len(texts) == 0 {
		// Nothing indexable; still drop stale chunks from a previous version.
		lock := p.itemLock(sctx.Tenant, item.Id)
		lock.Lock()
		defer lock.Unlock()
		if _, err := p.index.DeleteBySourceItem(ctx, sctx.Collection, sctx.Tenant, item.Id); err != nil {
			return 0, fmt.Errorf("delete stale chunks: %w", err)
		}
		return 0, nil
	}

	dense, err := p.embedBatched(ctx, provider, texts, sctx.Model)
	if err != nil {
		return 0, fmt.Errorf("embed documents: %w", err)
	}

	now := time.Now()
	chunks := make([]*entity.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &entity.Chunk{
			Id:           uuid.New(),
			Tenant:       sctx.Tenant,
			SourceItemId: item.Id,
			Title:        item.Title,
			Type:         item.Type,
			Text:         text,
			ChunkIndex:   i,
			TotalChunks:  len(texts),
			Sparse:       sparse.Build(text),
			Dense:        dense[i],
			CreatedAt:    now,
		}
	}

	if err := p.index.EnsureCollection(ctx, sctx.Collection, provider.Dimension(sctx.Model)); err != nil {
		return 0, fmt.Errorf("ensure collection: %w", err)
	}

	lock := p.itemLock(sctx.Tenant, item.Id)
	lock.Lock()
	defer lock.Unlock()

	if _, err := p.index.DeleteBySourceItem(ctx, sctx.Collection, sctx.Tenant, item.Id); err != nil {
		return 0, fmt.Errorf("delete old chunks: %w", err)
	}
	if err := p.index.Upsert(ctx, sctx.Collection, chunks); err != nil {
		return 0, fmt.Errorf("upsert chunks: %w", err)
	}

	p.log.Info("ingest", "item indexed", map[string]interface{}{
		"item_id":    item.Id,
		"collection": sctx.Collection,
		"chunks":     len(chunks),
	})
	p.emit(events.NewKnowledgeIngested(sctx.Tenant.BusinessId, sctx.Tenant.WidgetId, item.Id, len(chunks)))
	return len(chunks), nil
}

// Delete removes every chunk of an item. Deleting an item that has no
// chunks is a no-op, not an error.
func (p *Pipeline) Delete(ctx context.Context, sctx entity.SearchContext, itemId string) (int64, error) {
	if err := sctx.Tenant.Validate(); err != nil {
		return 0, err
	}
	lock := p.itemLock(sctx.Tenant, itemId)
	lock.Lock()
	defer lock.Unlock()

	removed, err := p.index.DeleteBySourceItem(ctx, sctx.Collection, sctx.Tenant, itemId)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		p.emit(events.NewKnowledgeDeleted(sctx.Tenant.BusinessId, sctx.Tenant.WidgetId, itemId, removed))
	}
	return removed, nil
}

// Wipe removes all of a business's chunks from one collection. An empty
// widgetId wipes every widget of the business.
func (p *Pipeline) Wipe(ctx context.Context, collection, businessId, widgetId string) (int64, error) {
	removed, err := p.index.DeleteByTenant(ctx, collection, businessId, widgetId)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		p.log.Info("ingest", "tenant data wiped", map[string]interface{}{
			"business_id": businessId,
			"widget_id":   widgetId,
			"collection":  collection,
			"removed":     removed,
		})
		p.emit(events.NewTenantWiped(businessId, widgetId, removed))
	}
	return removed, nil
}

func (p *Pipeline) embedBatched(ctx context.Context, provider embedding.Provider, texts []string, model string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := provider.EmbedDocuments(ctx, texts[start:end], model)
		if err != nil {
			return nil, err
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("provider returned %d vectors for %d texts", len(vectors), end-start)
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (p *Pipeline) itemLock(tenant entity.TenantFilter, itemId string) *sync.Mutex {
	key := tenant.BusinessId + "/" + tenant.WidgetId + "/" + itemId
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[key] = lock
	}
	return lock
}

// emit publishes without blocking the ingest path; the bus being down
// must not fail an indexing request.
func (p *Pipeline) emit(event events.Event) {
	if p.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.publisher.Publish(ctx, event); err != nil {
			p.log.Warn("ingest", "event publish failed", map[string]interface{}{
				"event": event.EventType(),
				"error": err.Error(),
			})
		}
	}()
}
