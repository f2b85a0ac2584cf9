package entity

// ConfidenceDecision is the terminal verdict for one answered query.
// It is derived, never stored, and recomputed per answer.
type ConfidenceDecision struct {
	Confidence            float64 // always in [0, 1]
	ShouldFallbackToHuman bool
	ReasonCodes           []string
}

// Reason codes attached to ConfidenceDecision.
const (
	ReasonNoSources        = "no_sources"
	ReasonRerankedScores   = "reranked_scores"
	ReasonExtraSources     = "extra_sources"
	ReasonWeakMatches      = "weak_matches"
	ReasonLongAnswer       = "comprehensive_answer"
	ReasonHedgingPhrase    = "hedging_phrase"
	ReasonHandoverMessage  = "handover_message"
	ReasonBelowThreshold   = "below_threshold"
	ReasonFallbackDisabled = "fallback_disabled"
)
