package model

import "time"

// KnowledgeCollection records the dense dimension each logical
// collection was created with, so ingestion can detect provider/model
// switches before writing mismatched vectors.
type KnowledgeCollection struct {
	Name      string    `gorm:"type:varchar(120);primaryKey"`
	DenseDim  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KnowledgeCollection) TableName() string {
	return "kb_collections"
}
