package text

import (
	"math"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantQty  float64
		wantUnit string
		wantName string
	}{
		{"qty unit name", "2 cups rice", 2, "cup", "rice"},
		{"decimal qty", "1.5 kg chicken", 1.5, "kg", "chicken"},
		{"fraction token", "1/2 cup milk", 0.5, "cup", "milk"},
		{"spaced fraction", "1 / 2 cup milk", 0.5, "cup", "milk"},
		{"mixed number", "1 1/2 cups flour", 1.5, "cup", "flour"},
		{"unit synonym", "3 tablespoons olive oil", 3, "tbsp", "olive oil"},
		{"no qty", "olive oil", 1, "", "olive oil"},
		{"qty without unit keeps whole line", "2 large carrots", 2, "", "2 large carrot"},
		{"empty line", "", 1, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			if math.Abs(got.Qty-tt.wantQty) > 1e-9 {
				t.Errorf("ParseLine(%q).Qty = %v, want %v", tt.line, got.Qty, tt.wantQty)
			}
			if got.Unit != tt.wantUnit {
				t.Errorf("ParseLine(%q).Unit = %q, want %q", tt.line, got.Unit, tt.wantUnit)
			}
			if got.Name != tt.wantName {
				t.Errorf("ParseLine(%q).Name = %q, want %q", tt.line, got.Name, tt.wantName)
			}
		})
	}
}

func TestCanonicalUnit(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"cups", "cup", true},
		{"Tablespoon", "tbsp", true},
		{"lbs", "lb", true},
		{"litres", "l", true},
		{"bunch", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalUnit(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CanonicalUnit(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
