package text

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "abcd", "abcd", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "abc", "", 0.0},
		{"partial overlap", "abcd", "bcde", 0.75},
		{"no overlap", "abc", "xyz", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SequenceRatio(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("SequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatioSymmetric(t *testing.T) {
	a, b := "chicken breast", "chicken thigh"
	if r1, r2 := SequenceRatio(a, b), SequenceRatio(b, a); !almostEqual(r1, r2) {
		t.Errorf("SequenceRatio not symmetric: %v vs %v", r1, r2)
	}
}

func TestJaccard(t *testing.T) {
	if got := Jaccard("olive oil", "oil"); !almostEqual(got, 0.5) {
		t.Errorf("Jaccard = %v, want 0.5", got)
	}
	if got := Jaccard("", "oil"); got != 0 {
		t.Errorf("Jaccard with empty side = %v, want 0", got)
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("chicken breast", "chicken breast"); !almostEqual(got, 1.0) {
		t.Errorf("identical names similarity = %v, want 1", got)
	}
	// 複數與大小寫差異仍應視為同名
	if got := Similarity("Tomatoes", "tomato"); got < DefaultMatchThreshold {
		t.Errorf("Tomatoes vs tomato similarity = %v, below threshold", got)
	}
	if got := Similarity("rice", "zucchini"); got >= DefaultMatchThreshold {
		t.Errorf("unrelated names similarity = %v, above threshold", got)
	}
}

func TestBestMatch(t *testing.T) {
	names := []string{"chicken breast", "rice", "olive oil"}

	idx, score, ok := BestMatch(names, "rice", DefaultMatchThreshold)
	if !ok || idx != 1 || !almostEqual(score, 1.0) {
		t.Fatalf("BestMatch(rice) = (%d, %v, %v), want (1, 1, true)", idx, score, ok)
	}

	idx, _, ok = BestMatch(names, "chicken breasts", DefaultMatchThreshold)
	if !ok || idx != 0 {
		t.Fatalf("BestMatch(chicken breasts) = (%d, ok=%v), want index 0", idx, ok)
	}

	if _, _, ok := BestMatch(names, "dragonfruit", DefaultMatchThreshold); ok {
		t.Error("BestMatch(dragonfruit) matched, want no match")
	}

	if _, _, ok := BestMatch(nil, "rice", DefaultMatchThreshold); ok {
		t.Error("BestMatch on empty names matched, want no match")
	}
}
