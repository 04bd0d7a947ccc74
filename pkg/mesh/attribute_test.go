package mesh

import (
	"testing"

	"github.com/chazu/resound/pkg/geom"
)

func TestAttributeDefaults(t *testing.T) {
	if got := Solid(); got != (Attribute{Absorption: 1}) {
		t.Errorf("Solid() = %v, want (0,0,1)", got)
	}
	if got := Air(); got != (Attribute{Transmission: 1}) {
		t.Errorf("Air() = %v, want (0,1,0)", got)
	}
}

func TestAttributeNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Attribute
		want Attribute
	}{
		{"all zero becomes solid", Attribute{}, Solid()},
		{"already normal", Attribute{Reflection: 1}, Attribute{Reflection: 1}},
		{"single channel", Attribute{Absorption: 4}, Attribute{Absorption: 1}},
		{"even split", Attribute{Reflection: 2, Transmission: 2}, Attribute{Reflection: 0.5, Transmission: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttributeNormalizedSumsToOne(t *testing.T) {
	inputs := []Attribute{
		{Reflection: 0.3, Transmission: 0.3, Absorption: 0.3},
		{Reflection: 1, Transmission: 2, Absorption: 3},
		{Reflection: 1e-9, Transmission: 7, Absorption: 0.01},
	}
	for _, in := range inputs {
		n := in.Normalized()
		sum := n.Reflection + n.Transmission + n.Absorption
		if diff := sum - 1; diff > 4*geom.Eps || diff < -4*geom.Eps {
			t.Errorf("Normalized(%v) sums to %v, want 1 within 4·eps", in, sum)
		}
	}
}

func TestAttributeEqualIsExact(t *testing.T) {
	a := Attribute{Reflection: 0.1, Transmission: 0.2, Absorption: 0.7}
	if !a.Equal(a) {
		t.Error("attribute should equal itself")
	}
	b := a
	b.Absorption += geom.Eps
	if a.Equal(b) {
		t.Error("an Eps difference (two ulps at 0.7) must not compare equal")
	}
}
