package implementation

import (
	"context"
	"errors"
	"fmt"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/mapper"
	"support-rag-be/internal/model"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type VectorIndexRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewVectorIndexRepository(db *gorm.DB) contract.VectorIndex {
	return &VectorIndexRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func applySpecs(db *gorm.DB, specs []specification.Specification) *gorm.DB {
	for _, s := range specs {
		db = s.Apply(db)
	}
	return db
}

func (r *VectorIndexRepositoryImpl) EnsureCollection(ctx context.Context, name string, denseDim int) error {
	var existing model.KnowledgeCollection
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		if existing.DenseDim != denseDim {
			return &entity.DimensionMismatchError{Collection: name, Want: existing.DenseDim, Got: denseDim}
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&model.KnowledgeCollection{
		Name:     name,
		DenseDim: denseDim,
	}).Error
}

func (r *VectorIndexRepositoryImpl) collectionDim(ctx context.Context, name string) (int, error) {
	var col model.KnowledgeCollection
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&col).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("collection %s does not exist", name)
		}
		return 0, err
	}
	return col.DenseDim, nil
}

func (r *VectorIndexRepositoryImpl) Upsert(ctx context.Context, collection string, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	dim, err := r.collectionDim(ctx, collection)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if len(c.Dense) != dim {
			return &entity.DimensionMismatchError{Collection: collection, Want: dim, Got: len(c.Dense)}
		}
	}

	rows := make([]*model.KnowledgeChunk, len(chunks))
	var terms []*model.KnowledgeChunkTerm
	for i, c := range chunks {
		rows[i] = r.mapper.ToModel(collection, c)
		terms = append(terms, r.mapper.ToTermModels(collection, c)...)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return err
		}
		if len(terms) > 0 {
			if err := tx.CreateInBatches(terms, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type scoredChunkRow struct {
	model.KnowledgeChunk
	Score float64 `gorm:"column:score"`
}

func (r *VectorIndexRepositoryImpl) SearchDense(ctx context.Context, collection string, filter entity.TenantFilter, vector []float32, limit int) ([]contract.ScoredChunk, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	dim, err := r.collectionDim(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(vector) != dim {
		return nil, &entity.DimensionMismatchError{Collection: collection, Want: dim, Got: len(vector)}
	}

	var rows []scoredChunkRow
	query := `
		SELECT *, 1 - (embedding <=> ?) AS score
		FROM kb_chunks
		WHERE collection = ? AND business_id = ? AND widget_id = ?
		ORDER BY embedding <=> ?
		LIMIT ?`
	vec := pgvector.NewVector(vector)
	if err := r.db.WithContext(ctx).Raw(query, vec, collection, filter.BusinessId, filter.WidgetId, vec, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	hits := make([]contract.ScoredChunk, len(rows))
	for i, row := range rows {
		hits[i] = contract.ScoredChunk{
			Chunk: r.mapper.ToEntity(&row.KnowledgeChunk),
			Score: row.Score,
		}
	}
	return hits, nil
}

type sparseScoreRow struct {
	ChunkId uuid.UUID `gorm:"column:chunk_id"`
	Score   float64   `gorm:"column:score"`
}

// SearchSparse scores a chunk by the sum of its stored weights over the
// query's terms. Query-side weights are dropped: they rescale every
// chunk identically and the fusion step only consumes ranks.
func (r *VectorIndexRepositoryImpl) SearchSparse(ctx context.Context, collection string, filter entity.TenantFilter, vector entity.SparseVector, limit int) ([]contract.ScoredChunk, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if vector.IsEmpty() {
		return nil, nil
	}

	hashes := make([]int64, len(vector.Indices))
	for i, idx := range vector.Indices {
		hashes[i] = int64(idx)
	}

	var scores []sparseScoreRow
	query := `
		SELECT chunk_id, SUM(weight) AS score
		FROM kb_chunk_terms
		WHERE collection = ? AND business_id = ? AND widget_id = ? AND term_hash IN ?
		GROUP BY chunk_id
		ORDER BY score DESC
		LIMIT ?`
	if err := r.db.WithContext(ctx).Raw(query, collection, filter.BusinessId, filter.WidgetId, hashes, limit).Scan(&scores).Error; err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(scores))
	for i, s := range scores {
		ids[i] = s.ChunkId
	}
	var rows []*model.KnowledgeChunk
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*model.KnowledgeChunk, len(rows))
	for _, row := range rows {
		byId[row.Id] = row
	}

	hits := make([]contract.ScoredChunk, 0, len(scores))
	for _, s := range scores {
		row, ok := byId[s.ChunkId]
		if !ok {
			// Chunk deleted between the two reads; skip the orphan score.
			continue
		}
		hits = append(hits, contract.ScoredChunk{
			Chunk: r.mapper.ToEntity(row),
			Score: s.Score,
		})
	}
	return hits, nil
}

func (r *VectorIndexRepositoryImpl) DeleteBySourceItem(ctx context.Context, collection string, filter entity.TenantFilter, sourceItemId string) (int64, error) {
	if err := filter.Validate(); err != nil {
		return 0, err
	}
	specs := []specification.Specification{
		specification.InCollection{Name: collection},
		specification.ForTenant{BusinessId: filter.BusinessId, WidgetId: filter.WidgetId},
		specification.BySourceItem{ItemId: sourceItemId},
	}
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := applySpecs(tx.Model(&model.KnowledgeChunk{}).Select("id"), specs)
		if err := tx.Where("chunk_id IN (?)", sub).Delete(&model.KnowledgeChunkTerm{}).Error; err != nil {
			return err
		}
		res := applySpecs(tx, specs).Delete(&model.KnowledgeChunk{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func (r *VectorIndexRepositoryImpl) DeleteByTenant(ctx context.Context, collection string, businessId, widgetId string) (int64, error) {
	if businessId == "" {
		return 0, entity.ErrMissingTenantFilter
	}
	specs := []specification.Specification{
		specification.InCollection{Name: collection},
		specification.ForTenant{BusinessId: businessId, WidgetId: widgetId},
	}
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applySpecs(tx, specs).Delete(&model.KnowledgeChunkTerm{}).Error; err != nil {
			return err
		}
		res := applySpecs(tx, specs).Delete(&model.KnowledgeChunk{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}
