package dto

type SearchRequest struct {
	BusinessId string `json:"business_id" validate:"required"`
	WidgetId   string `json:"widget_id" validate:"required"`
	Query      string `json:"query" validate:"required"`
	Limit      int    `json:"limit" validate:"omitempty,gt=0,lte=50"`
}

type SearchResult struct {
	ChunkId      string  `json:"chunk_id"`
	ItemId       string  `json:"item_id"`
	Title        string  `json:"title"`
	Type         string  `json:"type"`
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	RerankScore  float64 `json:"rerank_score,omitempty"`
	FusedScore   float64 `json:"fused_score"`
}

type SearchResponse struct {
	Results    []SearchResult `json:"results"`
	RerankUsed bool           `json:"rerank_used"`
}
