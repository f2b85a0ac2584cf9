package rerank

import "context"

// Result is one reranked document: Index points back into the input
// document slice, RelevanceScore is the cross-encoder score in [0,1].
type Result struct {
	Index          int
	RelevanceScore float64
}

// Client is the contract over cross-encoder rerank backends.
type Client interface {
	// Rerank scores documents against the query and returns the top-topK
	// by relevance, best first.
	Rerank(ctx context.Context, query string, documents []string, topK int, model string) ([]Result, error)

	// Available reports whether the backend is configured. Unavailable
	// backends make the gate pass candidates through in fused order.
	Available() bool
}
