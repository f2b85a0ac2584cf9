package embedding

import (
	"context"
	"errors"
	"fmt"
)

// ErrProviderUnavailable means the configured embedding backend has no
// usable client (missing credentials, unreachable host). Every dependent
// operation fails fast with this error instead of degrading to empty
// results.
var ErrProviderUnavailable = errors.New("embedding provider unavailable")

// Provider is the uniform contract over dense embedding backends.
// Implementations are interchangeable per tenant; switching providers
// switches the destination collection, since dimensions and semantics
// differ across providers.
type Provider interface {
	// Name identifies the provider ("voyage", "openai", "ollama") and is
	// used for collection namespacing.
	Name() string

	// EmbedQuery embeds a single search query.
	EmbedQuery(ctx context.Context, text string, model string) ([]float32, error)

	// EmbedDocuments embeds a batch of document chunks.
	EmbedDocuments(ctx context.Context, texts []string, model string) ([][]float32, error)

	// Dimension reports the vector size for a model from a static table,
	// without a network call. The ingestion pipeline needs it before the
	// destination collection exists.
	Dimension(model string) int
}

// Registry holds the constructed providers and resolves the active one
// per request from tenant configuration.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", name, ErrProviderUnavailable)
	}
	return p, nil
}
