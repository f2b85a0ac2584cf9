package dto

type UpsertKnowledgeItemRequest struct {
	BusinessId string `json:"business_id" validate:"required"`
	WidgetId   string `json:"widget_id" validate:"required"`
	ItemId     string `json:"item_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=500"`
	Type       string `json:"type" validate:"required,oneof=text faq page document sheet"`
	Content    string `json:"content" validate:"required"`
}

type UpsertKnowledgeItemResponse struct {
	ItemId string `json:"item_id"`
	Queued bool   `json:"queued"`
}

type DeleteKnowledgeItemRequest struct {
	BusinessId string `json:"business_id" validate:"required"`
	WidgetId   string `json:"widget_id" validate:"required"`
	ItemId     string `json:"item_id" validate:"required"`
}

type DeleteKnowledgeItemResponse struct {
	ItemId        string `json:"item_id"`
	ChunksRemoved int64  `json:"chunks_removed"`
}

type WipeTenantRequest struct {
	BusinessId string `json:"business_id" validate:"required"`
	WidgetId   string `json:"widget_id,omitempty"` // empty wipes every widget
}

type WipeTenantResponse struct {
	ChunksRemoved int64 `json:"chunks_removed"`
}

// IngestJobMessage is the queue payload carrying one indexing job from
// the API to the consumer.
type IngestJobMessage struct {
	BusinessId string `json:"business_id"`
	WidgetId   string `json:"widget_id"`
	ItemId     string `json:"item_id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Content    string `json:"content"`
}
