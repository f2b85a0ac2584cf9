package queryprep

import "testing"

func TestProcess(t *testing.T) {
	p := New()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "passthrough lowercasing",
			query: "What Are Your Refund Terms",
			want:  "what are your refund terms",
		},
		{
			name:  "typo correction",
			query: "what are your buisness hrs",
			want:  "what are your business hours",
		},
		{
			name:  "typo correction preserves punctuation",
			query: "whats the prce?",
			want:  "whats the price?",
		},
		{
			name:  "semantic expansion replaces query",
			query: "tell me your business time",
			want:  "business hours working hours schedule",
		},
		{
			name:  "only first expansion fires",
			query: "business time and price",
			want:  "business hours working hours schedule",
		},
		{
			name:  "expansion then corrections",
			query: "whats the cost",
			want:  "pricing cost price fees",
		},
		{
			name:  "price expansion wins over contact",
			query: "price for contact info",
			want:  "pricing cost price fees",
		},
		{
			name:  "leading punctuation still matches corrections",
			query: "open ,hrs. today",
			want:  "open ,hours. today",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Process(tt.query)
			if got != tt.want {
				t.Errorf("Process(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestProcessDeterministic(t *testing.T) {
	p := New()
	query := "whre is yur office locaton"
	first := p.Process(query)
	for i := 0; i < 10; i++ {
		if got := p.Process(query); got != first {
			t.Fatalf("Process not deterministic: %q vs %q", got, first)
		}
	}
}

func TestProcessCustomTables(t *testing.T) {
	p := NewWithTables(
		map[string]string{"shpping": "shipping"},
		[]Expansion{{"delivery", "shipping delivery tracking"}},
	)

	if got := p.Process("shpping status"); got != "shipping status" {
		t.Errorf("custom correction: got %q", got)
	}
	if got := p.Process("where is my delivery"); got != "shipping delivery tracking" {
		t.Errorf("custom expansion: got %q", got)
	}
}
