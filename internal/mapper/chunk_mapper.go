package mapper

import (
	"support-rag-be/internal/entity"
	"support-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

// ToEntity leaves Sparse empty: term weights live in kb_chunk_terms and
// the query path only needs per-leg scores, never the stored vector.
func (m *ChunkMapper) ToEntity(c *model.KnowledgeChunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id: c.Id,
		Tenant: entity.TenantFilter{
			BusinessId: c.BusinessId,
			WidgetId:   c.WidgetId,
		},
		SourceItemId: c.SourceItemId,
		Title:        c.Title,
		Type:         c.SourceType,
		Text:         c.Content,
		ChunkIndex:   c.ChunkIndex,
		TotalChunks:  c.TotalChunks,
		Dense:        c.Embedding.Slice(),
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(collection string, c *entity.Chunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &model.KnowledgeChunk{
		Id:           c.Id,
		Collection:   collection,
		BusinessId:   c.Tenant.BusinessId,
		WidgetId:     c.Tenant.WidgetId,
		SourceItemId: c.SourceItemId,
		Title:        c.Title,
		SourceType:   c.Type,
		Content:      c.Text,
		ChunkIndex:   c.ChunkIndex,
		TotalChunks:  c.TotalChunks,
		Embedding:    pgvector.NewVector(c.Dense),
		CreatedAt:    c.CreatedAt,
	}
}

// ToTermModels expands a chunk's sparse vector into kb_chunk_terms rows.
func (m *ChunkMapper) ToTermModels(collection string, c *entity.Chunk) []*model.KnowledgeChunkTerm {
	if c == nil || c.Sparse.IsEmpty() {
		return nil
	}
	terms := make([]*model.KnowledgeChunkTerm, len(c.Sparse.Indices))
	for i, idx := range c.Sparse.Indices {
		terms[i] = &model.KnowledgeChunkTerm{
			ChunkId:    c.Id,
			Collection: collection,
			BusinessId: c.Tenant.BusinessId,
			WidgetId:   c.Tenant.WidgetId,
			TermHash:   int64(idx),
			Weight:     c.Sparse.Weights[i],
		}
	}
	return terms
}

func (m *ChunkMapper) ToEntities(chunks []*model.KnowledgeChunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
