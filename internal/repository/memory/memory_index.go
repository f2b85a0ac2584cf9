package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/repository/contract"
)

type memCollection struct {
	denseDim int
	chunks   map[string]*entity.Chunk
}

// MemoryVectorIndex is an in-memory contract.VectorIndex for tests and
// local development. Scoring matches the SQL implementation: cosine
// similarity for the dense leg, summed term weights for the sparse leg.
type MemoryVectorIndex struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

func NewMemoryVectorIndex() *MemoryVectorIndex {
	return &MemoryVectorIndex{collections: make(map[string]*memCollection)}
}

func (m *MemoryVectorIndex) EnsureCollection(ctx context.Context, name string, denseDim int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if col, ok := m.collections[name]; ok {
		if col.denseDim != denseDim {
			return &entity.DimensionMismatchError{Collection: name, Want: col.denseDim, Got: denseDim}
		}
		return nil
	}
	m.collections[name] = &memCollection{denseDim: denseDim, chunks: make(map[string]*entity.Chunk)}
	return nil
}

func (m *MemoryVectorIndex) Upsert(ctx context.Context, collection string, chunks []*entity.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		return fmt.Errorf("collection %s does not exist", collection)
	}
	for _, c := range chunks {
		if len(c.Dense) != col.denseDim {
			return &entity.DimensionMismatchError{Collection: collection, Want: col.denseDim, Got: len(c.Dense)}
		}
	}
	for _, c := range chunks {
		col.chunks[c.Id.String()] = c
	}
	return nil
}

func (m *MemoryVectorIndex) SearchDense(ctx context.Context, collection string, filter entity.TenantFilter, vector []float32, limit int) ([]contract.ScoredChunk, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	col, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %s does not exist", collection)
	}
	if len(vector) != col.denseDim {
		return nil, &entity.DimensionMismatchError{Collection: collection, Want: col.denseDim, Got: len(vector)}
	}
	var hits []contract.ScoredChunk
	for _, c := range col.chunks {
		if !matchesTenant(c, filter) {
			continue
		}
		hits = append(hits, contract.ScoredChunk{Chunk: c, Score: cosineSimilarity(vector, c.Dense)})
	}
	sortAndTrim(&hits, limit)
	return hits, nil
}

func (m *MemoryVectorIndex) SearchSparse(ctx context.Context, collection string, filter entity.TenantFilter, vector entity.SparseVector, limit int) ([]contract.ScoredChunk, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if vector.IsEmpty() {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	col, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("collection %s does not exist", collection)
	}
	queryTerms := make(map[uint32]struct{}, len(vector.Indices))
	for _, idx := range vector.Indices {
		queryTerms[idx] = struct{}{}
	}
	var hits []contract.ScoredChunk
	for _, c := range col.chunks {
		if !matchesTenant(c, filter) {
			continue
		}
		score := 0.0
		for i, idx := range c.Sparse.Indices {
			if _, ok := queryTerms[idx]; ok {
				score += c.Sparse.Weights[i]
			}
		}
		if score > 0 {
			hits = append(hits, contract.ScoredChunk{Chunk: c, Score: score})
		}
	}
	sortAndTrim(&hits, limit)
	return hits, nil
}

func (m *MemoryVectorIndex) DeleteBySourceItem(ctx context.Context, collection string, filter entity.TenantFilter, sourceItemId string) (int64, error) {
	if err := filter.Validate(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	var removed int64
	for id, c := range col.chunks {
		if matchesTenant(c, filter) && c.SourceItemId == sourceItemId {
			delete(col.chunks, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryVectorIndex) DeleteByTenant(ctx context.Context, collection string, businessId, widgetId string) (int64, error) {
	if businessId == "" {
		return 0, entity.ErrMissingTenantFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	var removed int64
	for id, c := range col.chunks {
		if c.Tenant.BusinessId != businessId {
			continue
		}
		if widgetId != "" && c.Tenant.WidgetId != widgetId {
			continue
		}
		delete(col.chunks, id)
		removed++
	}
	return removed, nil
}

// Count reports the number of stored chunks for assertions in tests.
func (m *MemoryVectorIndex) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	col, ok := m.collections[collection]
	if !ok {
		return 0
	}
	return len(col.chunks)
}

func matchesTenant(c *entity.Chunk, filter entity.TenantFilter) bool {
	return c.Tenant.BusinessId == filter.BusinessId && c.Tenant.WidgetId == filter.WidgetId
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func sortAndTrim(hits *[]contract.ScoredChunk, limit int) {
	sort.SliceStable(*hits, func(i, j int) bool {
		return (*hits)[i].Score > (*hits)[j].Score
	})
	if len(*hits) > limit {
		*hits = (*hits)[:limit]
	}
}
