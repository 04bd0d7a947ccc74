package geom

import "testing"

func TestVec3Ops(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, 5, 6)

	if got := a.Add(b); got != V(5, 7, 9) {
		t.Errorf("Add = %v, want (5,7,9)", got)
	}
	if got := b.Sub(a); got != V(3, 3, 3) {
		t.Errorf("Sub = %v, want (3,3,3)", got)
	}
	if got := a.Scale(2); got != V(2, 4, 6) {
		t.Errorf("Scale = %v, want (2,4,6)", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := V(1, 0, 0).Cross(V(0, 1, 0)); got != V(0, 0, 1) {
		t.Errorf("Cross = %v, want (0,0,1)", got)
	}
	if got := V(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := V(3, 4, 0).LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %v, want 25", got)
	}
}

func TestVec3Indexing(t *testing.T) {
	v := V(7, 8, 9)
	for i, want := range []Real{7, 8, 9} {
		if got := v.At(i); got != want {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}
	v.SetAt(1, 42)
	if v.Y != 42 {
		t.Errorf("SetAt(1, 42): Y = %v, want 42", v.Y)
	}
}

func TestHashVec3(t *testing.T) {
	a := V(1, 2, 3)
	b := V(1, 2, 3)
	c := V(1, 2, 3.0000001)

	if HashVec3(a) != HashVec3(b) {
		t.Error("equal vectors should hash equal")
	}
	if HashVec3(a) == HashVec3(c) {
		t.Error("distinct vectors should hash differently")
	}
	// Signed zero differs in bits from positive zero.
	if HashVec3(V(0, 0, 0)) == HashVec3(V(0, 0, Real(negZero()))) {
		t.Error("hash should distinguish -0 from +0")
	}
}

func negZero() float64 {
	z := 0.0
	return -z
}
