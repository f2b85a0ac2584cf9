package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
	"support-rag-be/internal/repository/contract"
	"support-rag-be/pkg/embedding"
	"support-rag-be/pkg/sparse"
)

// Engine runs the hybrid search: it embeds the query, fires the dense
// and sparse legs concurrently against the index, and fuses the two
// ranked lists with RRF. A single failing leg degrades the search to
// the surviving leg; only the loss of both legs is an error.
type Engine struct {
	index      contract.VectorIndex
	providers  *embedding.Registry
	log        logger.ILogger
	legTimeout time.Duration
}

func NewEngine(index contract.VectorIndex, providers *embedding.Registry, log logger.ILogger) *Engine {
	return &Engine{
		index:      index,
		providers:  providers,
		log:        log,
		legTimeout: 5 * time.Second,
	}
}

// Search returns up to limit fused candidates for the query, scoped to
// the tenant in sctx. A failed query embedding is fatal: without the
// dense vector the search would silently lose its strongest leg.
func (e *Engine) Search(ctx context.Context, sctx entity.SearchContext, query string, limit int) ([]entity.SearchCandidate, error) {
	if err := sctx.Tenant.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("search limit must be positive, got %d", limit)
	}

	provider, err := e.providers.Get(sctx.Provider)
	if err != nil {
		return nil, err
	}
	dense, err := provider.EmbedQuery(ctx, query, sctx.Model)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	sparseVec := sparse.Build(query)

	var (
		denseHits, sparseHits []contract.ScoredChunk
		denseErr, sparseErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		legCtx, cancel := context.WithTimeout(gctx, e.legTimeout)
		defer cancel()
		denseHits, denseErr = e.index.SearchDense(legCtx, sctx.Collection, sctx.Tenant, dense, limit)
		return nil
	})
	g.Go(func() error {
		if sparseVec.IsEmpty() {
			return nil
		}
		legCtx, cancel := context.WithTimeout(gctx, e.legTimeout)
		defer cancel()
		sparseHits, sparseErr = e.index.SearchSparse(legCtx, sctx.Collection, sctx.Tenant, sparseVec, limit)
		return nil
	})
	_ = g.Wait()

	if denseErr != nil && sparseErr != nil {
		return nil, fmt.Errorf("both retrieval legs failed: dense: %v, sparse: %v", denseErr, sparseErr)
	}
	if denseErr != nil {
		e.log.Warn("retrieval", "dense leg failed, degrading to sparse-only", map[string]interface{}{
			"collection": sctx.Collection,
			"error":      denseErr.Error(),
		})
	}
	if sparseErr != nil {
		e.log.Warn("retrieval", "sparse leg failed, degrading to dense-only", map[string]interface{}{
			"collection": sctx.Collection,
			"error":      sparseErr.Error(),
		})
	}

	fused := FuseRRF(denseHits, sparseHits)
	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, nil
}

// IsDimensionMismatch reports whether err came from inserting or
// querying vectors of the wrong width for their collection.
func IsDimensionMismatch(err error) bool {
	var dm *entity.DimensionMismatchError
	return errors.As(err, &dm)
}
