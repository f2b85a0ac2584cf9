package sparse

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercase and stopword removal",
			text: "The quick Brown fox and the lazy dog",
			want: []string{"quick", "brown", "fox", "lazy", "dog"},
		},
		{
			name: "keeps emails and dotted tokens",
			text: "Contact support@example.com please!",
			want: []string{"contact", "support@example.com", "please"},
		},
		{
			name: "drops single characters",
			text: "a b c xy",
			want: []string{"xy"},
		},
		{
			name: "stopword-only text",
			text: "the and of to",
			want: []string{},
		},
		{
			name: "strips special characters",
			text: "price: $49/month (billed yearly)",
			want: []string{"price", "49", "month", "billed", "yearly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildEmptyForStopwordOnlyText(t *testing.T) {
	vec := Build("the and of")
	if !vec.IsEmpty() {
		t.Errorf("expected empty vector, got %d terms", len(vec.Indices))
	}
}

func TestBuildWeightsSumToOne(t *testing.T) {
	vec := Build("business hours business schedule pricing")
	if len(vec.Indices) != len(vec.Weights) {
		t.Fatalf("indices/weights length mismatch: %d vs %d", len(vec.Indices), len(vec.Weights))
	}

	var sum float64
	for _, w := range vec.Weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("weights sum = %f, want 1.0", sum)
	}
}

func TestBuildDeterministic(t *testing.T) {
	text := "refund policy and shipping times for international orders"
	a := Build(text)
	b := Build(text)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic for identical input")
	}
}

func TestTermHashIs31Bit(t *testing.T) {
	for _, token := range []string{"business", "hours", "support@example.com", "x2"} {
		if h := TermHash(token); h > 0x7fffffff {
			t.Errorf("TermHash(%q) = %d exceeds 31 bits", token, h)
		}
	}
}

func TestBuildRepeatedTermWeight(t *testing.T) {
	// "hours" appears twice out of four surviving tokens.
	vec := Build("hours hours business pricing")
	target := TermHash("hours")
	found := false
	for i, idx := range vec.Indices {
		if idx == target {
			found = true
			if math.Abs(vec.Weights[i]-0.5) > 1e-9 {
				t.Errorf("weight for repeated term = %f, want 0.5", vec.Weights[i])
			}
		}
	}
	if !found {
		t.Error("repeated term not present in vector")
	}
}
