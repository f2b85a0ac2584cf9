package dto

type ChatRequest struct {
	BusinessId string `json:"business_id" validate:"required"`
	WidgetId   string `json:"widget_id" validate:"required"`
	SessionId  string `json:"session_id,omitempty"`
	Message    string `json:"message" validate:"required,min=1,max=4000"`
}

type ChatSource struct {
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Content    string  `json:"content"` // truncated preview
	Score      float64 `json:"score"`
	ChunkIndex int     `json:"chunk_index"`
}

type ChatResponse struct {
	Success               bool         `json:"success"`
	Response              string       `json:"response"`
	Confidence            float64      `json:"confidence"`
	Sources               []ChatSource `json:"sources"`
	ShouldFallbackToHuman bool         `json:"should_fallback_to_human"`
	Metadata              ChatMetadata `json:"metadata"`
}

type ChatMetadata struct {
	Mode         string   `json:"mode"` // "conversational_direct", "direct_llm", "rag"
	Model        string   `json:"model"`
	SourcesCount int      `json:"sources_count"`
	RerankUsed   bool     `json:"rerank_used"`
	ReasonCodes  []string `json:"reason_codes,omitempty"`
}
