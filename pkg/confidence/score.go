package confidence

import (
	"strings"

	"support-rag-be/internal/entity"
)

// Phrases that mark an answer as a non-answer. Matching any one of them
// costs a flat penalty, applied at most once.
var hedgingPhrases = []string{
	"i don't know",
	"i cannot answer",
	"i'm unable to help",
	"no information available",
	"not provided in the context",
	"i don't have access to",
	"cannot find",
}

// HandoverMarker identifies the canned human-handover message. An answer
// containing it never counts as a confident answer.
const HandoverMarker = "let me connect you with"

// SourceScore carries the two per-source signals the scorer reads.
type SourceScore struct {
	// Raw is the best vector/keyword similarity for the source.
	Raw float64
	// Relevance is the cross-encoder score; only meaningful when the
	// answer was produced from reranked sources.
	Relevance float64
}

type Input struct {
	Answer          string
	Sources         []SourceScore
	Reranked        bool
	FallbackEnabled bool
	Threshold       float64
}

// Score turns the answer and its retrieval evidence into a confidence
// in [0,1] plus the human-fallback decision. It is a pure function; the
// reason codes exist so the decision can be explained in logs and
// responses without re-deriving it.
func Score(in Input) entity.ConfidenceDecision {
	d := entity.ConfidenceDecision{}
	answer := strings.ToLower(in.Answer)

	if strings.Contains(answer, HandoverMarker) {
		d.Confidence = 0.0
		d.ReasonCodes = append(d.ReasonCodes, entity.ReasonHandoverMessage)
		d.ShouldFallbackToHuman = in.FallbackEnabled
		return d
	}

	conf := 0.3
	if len(in.Sources) > 0 {
		conf = 0.7
	} else {
		d.ReasonCodes = append(d.ReasonCodes, entity.ReasonNoSources)
	}

	if in.Reranked && len(in.Sources) > 0 {
		// Cross-encoder scores are the strongest signal: they replace the
		// base entirely.
		var sum float64
		for _, s := range in.Sources {
			sum += s.Relevance
		}
		avg := sum / float64(len(in.Sources))
		switch {
		case avg > 0.8:
			conf = 0.95
		case avg > 0.6:
			conf = 0.85
		case avg > 0.4:
			conf = 0.75
		default:
			conf = 0.60
		}
		d.ReasonCodes = append(d.ReasonCodes, entity.ReasonRerankedScores)
	} else if len(in.Sources) > 0 {
		if len(in.Sources) > 1 {
			boost := float64(len(in.Sources)-1) * 0.1
			if boost > 0.2 {
				boost = 0.2
			}
			conf += boost
			d.ReasonCodes = append(d.ReasonCodes, entity.ReasonExtraSources)
		}
		var sum float64
		for _, s := range in.Sources {
			sum += s.Raw
		}
		if sum/float64(len(in.Sources)) < 0.1 {
			conf = 0.60
			d.ReasonCodes = append(d.ReasonCodes, entity.ReasonWeakMatches)
		}
	}

	if len(in.Answer) > 100 {
		conf += 0.05
		d.ReasonCodes = append(d.ReasonCodes, entity.ReasonLongAnswer)
	}

	for _, phrase := range hedgingPhrases {
		if strings.Contains(answer, phrase) {
			conf -= 0.4
			d.ReasonCodes = append(d.ReasonCodes, entity.ReasonHedgingPhrase)
			break
		}
	}

	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	d.Confidence = conf

	if !in.FallbackEnabled {
		d.ReasonCodes = append(d.ReasonCodes, entity.ReasonFallbackDisabled)
		return d
	}
	if conf < in.Threshold || len(in.Sources) == 0 {
		d.ShouldFallbackToHuman = true
		if conf < in.Threshold {
			d.ReasonCodes = append(d.ReasonCodes, entity.ReasonBelowThreshold)
		}
	}
	return d
}
