package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// KnowledgeChunk rows are immutable: item edits delete the old rows and
// insert fresh ones, so there is no UpdatedAt and no soft delete.
// The vector column is untyped because collections of different
// embedding providers store different dimensions in the same table;
// the expected width per collection lives in kb_collections.
type KnowledgeChunk struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Collection   string          `gorm:"type:varchar(120);not null;index:idx_kb_chunks_scope,priority:1"`
	BusinessId   string          `gorm:"type:varchar(64);not null;index:idx_kb_chunks_scope,priority:2"`
	WidgetId     string          `gorm:"type:varchar(64);not null;index:idx_kb_chunks_scope,priority:3"`
	SourceItemId string          `gorm:"type:varchar(64);not null;index"`
	Title        string          `gorm:"type:varchar(500)"`
	SourceType   string          `gorm:"type:varchar(20);not null"`
	Content      string          `gorm:"type:text;not null"`
	ChunkIndex   int             `gorm:"not null;default:0"`
	TotalChunks  int             `gorm:"not null;default:1"`
	Embedding    pgvector.Vector `gorm:"type:vector"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "kb_chunks"
}
