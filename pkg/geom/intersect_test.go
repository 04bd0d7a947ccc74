package geom

import "testing"

func TestAABBAABBOverlap(t *testing.T) {
	base := NewAABB(0, 0, 0, 1, 1, 1)

	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"identical", NewAABB(0, 0, 0, 1, 1, 1), true},
		{"contained", NewAABB(0.25, 0.25, 0.25, 0.75, 0.75, 0.75), true},
		{"partial overlap", NewAABB(0.5, 0.5, 0.5, 2, 2, 2), true},
		{"shared face", NewAABB(1, 0, 0, 2, 1, 1), true},
		{"shared edge", NewAABB(1, 1, 0, 2, 2, 1), true},
		{"shared corner", NewAABB(1, 1, 1, 2, 2, 2), true},
		{"disjoint x", NewAABB(1.5, 0, 0, 2, 1, 1), false},
		{"disjoint y", NewAABB(0, -2, 0, 1, -1.5, 1), false},
		{"disjoint z", NewAABB(0, 0, 5, 1, 1, 6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TestAABBAABB(base, tt.b); got != tt.want {
				t.Errorf("TestAABBAABB = %v, want %v", got, tt.want)
			}
			if got := TestAABBAABB(tt.b, base); got != tt.want {
				t.Errorf("TestAABBAABB (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriangleAABBCases(t *testing.T) {
	box := NewAABB(0, 0, 0, 1, 1, 1)

	tests := []struct {
		name       string
		v0, v1, v2 Vec3
		want       bool
	}{
		{"triangle inside", V(0.25, 0.25, 0.25), V(0.75, 0.25, 0.25), V(0.5, 0.75, 0.25), true},
		{"triangle enclosing box face", V(-1, -1, 0.5), V(3, -1, 0.5), V(0.5, 3, 0.5), true},
		{"triangle far away", V(5, 5, 5), V(6, 5, 5), V(5, 6, 5), false},
		{"vertex touching corner", V(1, 1, 1), V(2, 1, 1), V(1, 2, 1), true},
		{"edge crossing box", V(-1, 0.5, 0.5), V(2, 0.5, 0.5), V(0.5, 0.5, 5), true},
		// A triangle whose plane grazes the box's z=1 face.
		{"grazing plane", V(0.25, 0.25, 1), V(0.75, 0.25, 1), V(0.5, 0.75, 1), true},
		{"plane just above", V(0.25, 0.25, 1.001), V(0.75, 0.25, 1.001), V(0.5, 0.75, 1.001), false},
		{"degenerate zero area", V(0.5, 0.5, 0.5), V(0.5, 0.5, 0.5), V(0.5, 0.5, 0.5), false},
		{"degenerate collinear", V(0, 0.5, 0.5), V(0.5, 0.5, 0.5), V(1, 0.5, 0.5), false},
		// The triangle's AABB overlaps the box and neither the box
		// normals nor the triangle plane separate; only a cross-product
		// axis does.
		{"cross axis separation", V(2.5, 0, 0.5), V(0, 2.5, 0.5), V(2.5, 2.5, 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TestTriangleAABB(tt.v0, tt.v1, tt.v2, box); got != tt.want {
				t.Errorf("TestTriangleAABB = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectFaceAABB(t *testing.T) {
	box := NewAABB(0, 0, 0, 1, 1, 1)

	t.Run("triangle fully inside", func(t *testing.T) {
		r := IntersectFaceAABB(V(0.2, 0.2, 0.5), V(0.8, 0.2, 0.5), V(0.5, 0.8, 0.5), box)
		if r.Count != 3 {
			t.Errorf("Count = %d, want 3", r.Count)
		}
	})

	t.Run("triangle fully outside", func(t *testing.T) {
		r := IntersectFaceAABB(V(5, 5, 5), V(6, 5, 5), V(5, 6, 5), box)
		if r.Count != 0 {
			t.Errorf("Count = %d, want 0", r.Count)
		}
	})

	t.Run("clipped corner", func(t *testing.T) {
		// A large triangle in the z=0.5 plane; clipping it to the box
		// yields the box's cross-section boundary region.
		r := IntersectFaceAABB(V(-2, -2, 0.5), V(4, -2, 0.5), V(-2, 4, 0.5), box)
		if r.Count < 3 {
			t.Fatalf("Count = %d, want >= 3", r.Count)
		}
		for i := 0; i < r.Count; i++ {
			if !box.ContainsPoint(r.Points[i]) {
				t.Errorf("point %v outside box", r.Points[i])
			}
		}
	})
}

func TestIntersectSegmentAABB(t *testing.T) {
	box := NewAABB(0, 0, 0, 1, 1, 1)

	t.Run("through the middle", func(t *testing.T) {
		hit, ok := IntersectSegmentAABB(V(-1, 0.5, 0.5), V(2, 0.5, 0.5), box)
		if !ok {
			t.Fatal("expected hit")
		}
		if absReal(hit.TMin-1.0/3) > 16*Eps || absReal(hit.TMax-2.0/3) > 16*Eps {
			t.Errorf("hit = (%v, %v), want (1/3, 2/3)", hit.TMin, hit.TMax)
		}
	})

	t.Run("miss", func(t *testing.T) {
		if _, ok := IntersectSegmentAABB(V(-1, 2, 0.5), V(2, 2, 0.5), box); ok {
			t.Error("expected miss")
		}
	})

	t.Run("parallel inside slab", func(t *testing.T) {
		if _, ok := IntersectSegmentAABB(V(0.5, 0.5, -1), V(0.5, 0.5, 2), box); !ok {
			t.Error("expected hit for axis-parallel segment through the box")
		}
	})

	t.Run("segment ends before box", func(t *testing.T) {
		if _, ok := IntersectSegmentAABB(V(-3, 0.5, 0.5), V(-2, 0.5, 0.5), box); ok {
			t.Error("expected miss for a segment that stops short")
		}
	})
}

func TestBarycentric(t *testing.T) {
	a, b, c := V(0, 0, 0), V(1, 0, 0), V(0, 1, 0)

	tests := []struct {
		name string
		p    Vec3
		want Vec3
	}{
		{"vertex a", a, V(1, 0, 0)},
		{"vertex b", b, V(0, 1, 0)},
		{"vertex c", c, V(0, 0, 1)},
		{"centroid", V(1.0 / 3, 1.0 / 3, 0), V(1.0 / 3, 1.0 / 3, 1.0 / 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Barycentric(tt.p, a, b, c)
			for i := 0; i < 3; i++ {
				if absReal(got.At(i)-tt.want.At(i)) > 16*Eps {
					t.Errorf("Barycentric(%v) = %v, want %v", tt.p, got, tt.want)
				}
			}
		})
	}
}
