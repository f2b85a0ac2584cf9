package confidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"support-rag-be/internal/entity"
)

func sources(raws ...float64) []SourceScore {
	out := make([]SourceScore, len(raws))
	for i, r := range raws {
		out[i] = SourceScore{Raw: r}
	}
	return out
}

func rerankedSources(relevances ...float64) []SourceScore {
	out := make([]SourceScore, len(relevances))
	for i, r := range relevances {
		out[i] = SourceScore{Raw: 0.5, Relevance: r}
	}
	return out
}

func TestScoreBounds(t *testing.T) {
	// No sources, hedging answer: 0.3 - 0.4 would go negative.
	d := Score(Input{Answer: "i don't know", FallbackEnabled: true, Threshold: 0.6})
	assert.Equal(t, 0.0, d.Confidence)
	assert.True(t, d.ShouldFallbackToHuman)

	// Reranked excellent + long answer: 0.95 + 0.05 caps at 1.
	long := strings.Repeat("the answer is detailed and complete. ", 5)
	d = Score(Input{Answer: long, Sources: rerankedSources(0.9, 0.9), Reranked: true, FallbackEnabled: true, Threshold: 0.6})
	assert.LessOrEqual(t, d.Confidence, 1.0)
	assert.Equal(t, 1.0, d.Confidence)
	assert.False(t, d.ShouldFallbackToHuman)
}

func TestScoreHandoverMessageIsZero(t *testing.T) {
	d := Score(Input{
		Answer:          "I'm not fully confident about this one. Let me connect you with a member of our team.",
		Sources:         sources(0.9, 0.9, 0.9),
		FallbackEnabled: true,
		Threshold:       0.6,
	})
	assert.Equal(t, 0.0, d.Confidence, "handover message overrides every other signal")
	assert.True(t, d.ShouldFallbackToHuman)
	assert.Contains(t, d.ReasonCodes, entity.ReasonHandoverMessage)
}

func TestScoreRerankBands(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want float64
	}{
		{"excellent", 0.85, 0.95},
		{"good", 0.7, 0.85},
		{"decent", 0.5, 0.75},
		{"poor", 0.2, 0.60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Score(Input{
				Answer:          "short answer",
				Sources:         rerankedSources(tc.avg),
				Reranked:        true,
				FallbackEnabled: true,
				Threshold:       0.6,
			})
			assert.InDelta(t, tc.want, d.Confidence, 1e-9)
			assert.Contains(t, d.ReasonCodes, entity.ReasonRerankedScores)
		})
	}
}

func TestScoreExtraSourceBoostCapped(t *testing.T) {
	// 2 sources: 0.7 + 0.1
	d := Score(Input{Answer: "ok", Sources: sources(0.5, 0.5), FallbackEnabled: true, Threshold: 0.6})
	assert.InDelta(t, 0.8, d.Confidence, 1e-9)

	// 5 sources: boost caps at +0.2
	d = Score(Input{Answer: "ok", Sources: sources(0.5, 0.5, 0.5, 0.5, 0.5), FallbackEnabled: true, Threshold: 0.6})
	assert.InDelta(t, 0.9, d.Confidence, 1e-9)
}

func TestScoreWeakMatchesOverrideBoost(t *testing.T) {
	d := Score(Input{Answer: "ok", Sources: sources(0.05, 0.04, 0.03), FallbackEnabled: true, Threshold: 0.6})
	assert.InDelta(t, 0.60, d.Confidence, 1e-9)
	assert.Contains(t, d.ReasonCodes, entity.ReasonWeakMatches)
}

func TestScoreLongAnswerBoost(t *testing.T) {
	long := strings.Repeat("a clear and complete explanation. ", 4)
	d := Score(Input{Answer: long, Sources: sources(0.5), FallbackEnabled: true, Threshold: 0.6})
	assert.InDelta(t, 0.75, d.Confidence, 1e-9)
	assert.Contains(t, d.ReasonCodes, entity.ReasonLongAnswer)
}

func TestScoreHedgingPenaltyAppliedOnce(t *testing.T) {
	// Two hedging phrases, single -0.4.
	d := Score(Input{
		Answer:          "i don't know, i cannot answer that",
		Sources:         sources(0.5, 0.5),
		FallbackEnabled: true,
		Threshold:       0.6,
	})
	assert.InDelta(t, 0.4, d.Confidence, 1e-9)
	assert.True(t, d.ShouldFallbackToHuman)
	assert.Contains(t, d.ReasonCodes, entity.ReasonBelowThreshold)
}

func TestScoreNoSourcesAlwaysFallsBack(t *testing.T) {
	long := strings.Repeat("plausible sounding text without any grounding. ", 3)
	d := Score(Input{Answer: long, FallbackEnabled: true, Threshold: 0.3})
	// 0.3 + 0.05 clears the threshold, but zero sources still hands over.
	assert.Greater(t, d.Confidence, 0.3)
	assert.True(t, d.ShouldFallbackToHuman)
	assert.Contains(t, d.ReasonCodes, entity.ReasonNoSources)
}

func TestScoreFallbackDisabled(t *testing.T) {
	d := Score(Input{Answer: "i don't know", FallbackEnabled: false, Threshold: 0.6})
	assert.False(t, d.ShouldFallbackToHuman)
	assert.Contains(t, d.ReasonCodes, entity.ReasonFallbackDisabled)
}
