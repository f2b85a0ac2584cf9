package model

import "github.com/google/uuid"

// KnowledgeChunkTerm is one sparse-vector component of a chunk. Rows are
// written and deleted together with their kb_chunks row. TermHash is a
// 31-bit value and always fits the signed bigint.
type KnowledgeChunkTerm struct {
	Id         uint64    `gorm:"primaryKey;autoIncrement"`
	ChunkId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Collection string    `gorm:"type:varchar(120);not null;index:idx_kb_terms_lookup,priority:1"`
	BusinessId string    `gorm:"type:varchar(64);not null;index:idx_kb_terms_lookup,priority:2"`
	WidgetId   string    `gorm:"type:varchar(64);not null;index:idx_kb_terms_lookup,priority:3"`
	TermHash   int64     `gorm:"not null;index:idx_kb_terms_lookup,priority:4"`
	Weight     float64   `gorm:"not null"`
}

func (KnowledgeChunkTerm) TableName() string {
	return "kb_chunk_terms"
}
