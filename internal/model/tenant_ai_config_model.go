package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantAiConfig stores the per-business AI behavior settings edited
// from the dashboard.
type TenantAiConfig struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessId          string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_tenant_ai_scope"`
	WidgetId            string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_tenant_ai_scope"`
	Enabled             bool           `gorm:"not null;default:true"`
	RagEnabled          bool           `gorm:"not null;default:true"`
	Model               string         `gorm:"type:varchar(200);not null"`
	Temperature         float64        `gorm:"not null;default:0.7"`
	MaxTokens           int            `gorm:"not null;default:500"`
	SystemPrompt        string         `gorm:"type:varchar(20);not null;default:'support'"`
	CustomSystemPrompt  string         `gorm:"type:text"`
	EmbeddingProvider   string         `gorm:"type:varchar(20);not null;default:'voyage'"`
	EmbeddingModel      string         `gorm:"type:varchar(100);not null;default:'voyage-3-large'"`
	RerankerEnabled     bool           `gorm:"not null;default:true"`
	ConfidenceThreshold float64        `gorm:"not null;default:0.6"`
	MaxRetrievalDocs    int            `gorm:"not null;default:5"`
	FallbackToHuman     bool           `gorm:"not null;default:true"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (TenantAiConfig) TableName() string {
	return "tenant_ai_configs"
}
