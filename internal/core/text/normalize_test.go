package text

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Olive Oil", "olive oil"},
		{"punctuation to spaces", "tomatoes (ripe), diced", "tomatoes ripe diced"},
		{"collapse whitespace", "  black   beans  ", "black bean"},
		{"singular es", "tomatoes", "tomato"},
		{"singular s", "eggs", "egg"},
		{"double s kept", "swiss", "swiss"},
		{"trailing es kept when unstable", "cheese", "cheese"},
		{"empty", "", ""},
		{"only punctuation", "(),;:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Olive Oil", "tomatoes (ripe), diced", "black beans",
		"cheese", "glasses", "swiss", "eggs", "molasses",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("black beans, canned")
	want := []string{"black", "bean", "canned"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize returned %d tokens, want %d: %v", len(got), len(want), got)
	}
	for _, w := range want {
		if _, ok := got[w]; !ok {
			t.Errorf("Tokenize missing token %q in %v", w, got)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize("   "); len(got) != 0 {
		t.Errorf("Tokenize of blank input = %v, want empty set", got)
	}
}
