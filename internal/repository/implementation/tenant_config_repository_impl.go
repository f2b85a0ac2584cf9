package implementation

import (
	"context"
	"errors"
	"time"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/mapper"
	"support-rag-be/internal/model"
	"support-rag-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TenantConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TenantAiConfigMapper
}

func NewTenantConfigRepository(db *gorm.DB) contract.ITenantConfigRepository {
	return &TenantConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewTenantAiConfigMapper(),
	}
}

func (r *TenantConfigRepositoryImpl) Get(ctx context.Context, tenant entity.TenantFilter) (*entity.TenantAIConfig, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	var row model.TenantAiConfig
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND widget_id = ?", tenant.BusinessId, tenant.WidgetId).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.DefaultTenantAIConfig(tenant), nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&row), nil
}

func (r *TenantConfigRepositoryImpl) Save(ctx context.Context, cfg *entity.TenantAIConfig) error {
	if err := cfg.Tenant.Validate(); err != nil {
		return err
	}
	row := r.mapper.ToModel(cfg)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_id"}, {Name: "widget_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"enabled", "rag_enabled", "model", "temperature", "max_tokens",
				"system_prompt", "custom_system_prompt",
				"embedding_provider", "embedding_model", "reranker_enabled",
				"confidence_threshold", "max_retrieval_docs", "fallback_to_human",
				"updated_at",
			}),
		}).
		Create(row).Error
}

// CachedTenantConfigRepository keeps configs hot for the query path.
// Saves go through to the database and invalidate the cached entry, so
// a dashboard edit is visible on the next chat message.
type CachedTenantConfigRepository struct {
	inner contract.ITenantConfigRepository
	cache *gocache.Cache
}

func NewCachedTenantConfigRepository(inner contract.ITenantConfigRepository) contract.ITenantConfigRepository {
	return &CachedTenantConfigRepository{
		inner: inner,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func cacheKey(tenant entity.TenantFilter) string {
	return tenant.BusinessId + "/" + tenant.WidgetId
}

func (r *CachedTenantConfigRepository) Get(ctx context.Context, tenant entity.TenantFilter) (*entity.TenantAIConfig, error) {
	if cached, ok := r.cache.Get(cacheKey(tenant)); ok {
		return cached.(*entity.TenantAIConfig), nil
	}
	cfg, err := r.inner.Get(ctx, tenant)
	if err != nil {
		return nil, err
	}
	r.cache.Set(cacheKey(tenant), cfg, gocache.DefaultExpiration)
	return cfg, nil
}

func (r *CachedTenantConfigRepository) Save(ctx context.Context, cfg *entity.TenantAIConfig) error {
	if err := r.inner.Save(ctx, cfg); err != nil {
		return err
	}
	r.cache.Delete(cacheKey(cfg.Tenant))
	return nil
}
