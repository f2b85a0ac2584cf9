package entity

import (
	"errors"
	"fmt"
)

// ErrMissingTenantFilter is returned when an index operation is attempted
// without a complete tenant scope. This is a programming error on the
// caller side, never an empty-result case.
var ErrMissingTenantFilter = errors.New("tenant filter is required")

// DimensionMismatchError means the active embedding model produces vectors
// of a different size than the destination collection was created with.
// This is a fatal configuration error, not a retriable one.
type DimensionMismatchError struct {
	Collection string
	Want       int
	Got        int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("collection %s expects dimension %d, embedding model produces %d", e.Collection, e.Want, e.Got)
}

// TenantFilter is the mandatory equality predicate isolating one
// business/widget's data inside a shared collection.
type TenantFilter struct {
	BusinessId string
	WidgetId   string
}

func (f TenantFilter) Validate() error {
	if f.BusinessId == "" || f.WidgetId == "" {
		return ErrMissingTenantFilter
	}
	return nil
}

// SearchContext carries the per-request retrieval configuration: which
// embedding provider/model is active and which collection the tenant's
// vectors live in. It is resolved once per request from tenant config and
// passed by value, replacing any shared mutable provider state.
type SearchContext struct {
	Provider   string
	Model      string
	Collection string
	Tenant     TenantFilter
}

// NewSearchContext derives the collection namespace from the base
// collection name and the embedding provider. Vectors from different
// providers differ in dimension and semantics, so each provider gets its
// own collection; "openai" keeps the base name for backward compatibility
// with collections created before provider switching existed.
func NewSearchContext(baseCollection, provider, model string, tenant TenantFilter) SearchContext {
	collection := baseCollection
	if provider != "openai" {
		collection = fmt.Sprintf("%s-%s", baseCollection, provider)
	}
	return SearchContext{
		Provider:   provider,
		Model:      model,
		Collection: collection,
		Tenant:     tenant,
	}
}
