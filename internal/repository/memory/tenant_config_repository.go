package memory

import (
	"context"
	"sync"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/repository/contract"
)

// MemoryTenantConfigRepository backs tests and local development.
type MemoryTenantConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]*entity.TenantAIConfig
}

func NewMemoryTenantConfigRepository() contract.ITenantConfigRepository {
	return &MemoryTenantConfigRepository{configs: make(map[string]*entity.TenantAIConfig)}
}

func (r *MemoryTenantConfigRepository) key(tenant entity.TenantFilter) string {
	return tenant.BusinessId + "/" + tenant.WidgetId
}

func (r *MemoryTenantConfigRepository) Get(ctx context.Context, tenant entity.TenantFilter) (*entity.TenantAIConfig, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cfg, ok := r.configs[r.key(tenant)]; ok {
		copied := *cfg
		return &copied, nil
	}
	return entity.DefaultTenantAIConfig(tenant), nil
}

func (r *MemoryTenantConfigRepository) Save(ctx context.Context, cfg *entity.TenantAIConfig) error {
	if err := cfg.Tenant.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cfg
	r.configs[r.key(cfg.Tenant)] = &copied
	return nil
}
