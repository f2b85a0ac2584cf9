package rerank

import (
	"context"
	"sort"
	"time"

	"support-rag-be/internal/entity"
	"support-rag-be/internal/pkg/logger"
)

// DefaultModel is the cross-encoder used when no per-complexity model
// is configured; the lite model's latency wins over the marginal
// quality gap of the full model.
const DefaultModel = "rerank-2.5-lite"

// DefaultSkipThreshold is the raw similarity above which the top fused
// candidate is trusted without a rerank round-trip.
const DefaultSkipThreshold = 0.8

type GateConfig struct {
	SkipThreshold float64
	Timeout       time.Duration
	// Models maps query complexity to the rerank model used for it.
	// Missing entries fall back to DefaultModel.
	Models map[Complexity]string
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		SkipThreshold: DefaultSkipThreshold,
		Timeout:       10 * time.Second,
	}
}

func (c GateConfig) modelFor(complexity Complexity) string {
	if m, ok := c.Models[complexity]; ok && m != "" {
		return m
	}
	return DefaultModel
}

// Gate decides per query whether reranking is worth the latency and
// applies it. Reranking never breaks the query: any backend failure
// falls back to the fused order.
type Gate struct {
	client Client
	cfg    GateConfig
	log    logger.ILogger
}

func NewGate(client Client, cfg GateConfig, log logger.ILogger) *Gate {
	return &Gate{client: client, cfg: cfg, log: log}
}

// Apply returns the top-topK candidates, reranked when the gate decides
// to rerank. The bool reports whether rerank scores determined the
// order; callers use it to pick the confidence formula.
func (g *Gate) Apply(ctx context.Context, query string, candidates []entity.SearchCandidate, topK int, enabled bool, model string) ([]entity.RerankedCandidate, bool) {
	if model == "" {
		model = g.cfg.modelFor(Classify(query))
	}

	if reason := g.skipReason(candidates, enabled); reason != "" {
		g.log.Debug("rerank", "skipping rerank", map[string]interface{}{
			"reason":     reason,
			"candidates": len(candidates),
		})
		return passthrough(candidates, topK), false
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.Text
	}

	rctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()
	results, err := g.client.Rerank(rctx, query, docs, topK, model)
	if err != nil {
		g.log.Warn("rerank", "rerank failed, using fused order", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return passthrough(candidates, topK), false
	}

	reranked := make([]entity.RerankedCandidate, 0, len(results))
	for _, r := range results {
		reranked = append(reranked, entity.RerankedCandidate{
			SearchCandidate: candidates[r.Index],
			RelevanceScore:  r.RelevanceScore,
		})
	}
	// Don't rely on the backend returning results best-first.
	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].RelevanceScore > reranked[j].RelevanceScore
	})
	return reranked, true
}

func (g *Gate) skipReason(candidates []entity.SearchCandidate, enabled bool) string {
	if !enabled {
		return "disabled by tenant config"
	}
	if len(candidates) < 2 {
		return "too few candidates"
	}
	if !g.client.Available() {
		return "backend unavailable"
	}
	if candidates[0].RawScore() >= g.cfg.SkipThreshold {
		return "top score already confident"
	}
	return ""
}

func passthrough(candidates []entity.SearchCandidate, topK int) []entity.RerankedCandidate {
	if topK > len(candidates) {
		topK = len(candidates)
	}
	out := make([]entity.RerankedCandidate, 0, topK)
	for _, c := range candidates[:topK] {
		out = append(out, entity.RerankedCandidate{SearchCandidate: c})
	}
	return out
}
