package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "knowledge.ingested").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeKnowledgeIngested = "knowledge.ingested"
	TypeKnowledgeDeleted  = "knowledge.deleted"
	TypeTenantWiped       = "tenant.wiped"
	TypeHumanHandover     = "chat.handover"
)

// NewKnowledgeIngested is emitted after a knowledge base item has been
// chunked, embedded and written to the index.
func NewKnowledgeIngested(businessId, widgetId, itemId string, chunks int) Event {
	return BaseEvent{
		Type: TypeKnowledgeIngested,
		Data: map[string]interface{}{
			"business_id": businessId,
			"widget_id":   widgetId,
			"item_id":     itemId,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
}

// NewKnowledgeDeleted is emitted after an item's chunks were removed.
func NewKnowledgeDeleted(businessId, widgetId, itemId string, removed int64) Event {
	return BaseEvent{
		Type: TypeKnowledgeDeleted,
		Data: map[string]interface{}{
			"business_id": businessId,
			"widget_id":   widgetId,
			"item_id":     itemId,
			"removed":     removed,
		},
		OccurredAt: time.Now(),
	}
}

// NewTenantWiped is emitted after a business's knowledge data was wiped.
func NewTenantWiped(businessId, widgetId string, removed int64) Event {
	return BaseEvent{
		Type: TypeTenantWiped,
		Data: map[string]interface{}{
			"business_id": businessId,
			"widget_id":   widgetId,
			"removed":     removed,
		},
		OccurredAt: time.Now(),
	}
}

// NewHumanHandover is emitted when a chat answer falls back to a human.
func NewHumanHandover(businessId, widgetId, sessionId string, confidence float64) Event {
	return BaseEvent{
		Type: TypeHumanHandover,
		Data: map[string]interface{}{
			"business_id": businessId,
			"widget_id":   widgetId,
			"session_id":  sessionId,
			"confidence":  confidence,
		},
		OccurredAt: time.Now(),
	}
}
