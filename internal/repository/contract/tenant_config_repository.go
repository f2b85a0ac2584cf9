package contract

import (
	"context"

	"support-rag-be/internal/entity"
)

type ITenantConfigRepository interface {
	// Get returns the AI configuration for a tenant, falling back to
	// entity.DefaultTenantAIConfig when none has been stored.
	Get(ctx context.Context, tenant entity.TenantFilter) (*entity.TenantAIConfig, error)
	Save(ctx context.Context, cfg *entity.TenantAIConfig) error
}
