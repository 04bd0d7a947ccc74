package geom

import "math"

// AABB is an axis-aligned bounding box described by its minimum and
// maximum corners. Min.i <= Max.i holds on every axis for any box that
// has been assigned at least one point; degenerate (zero-volume) boxes
// are permitted.
type AABB struct {
	Min, Max Vec3
}

// NewAABB constructs a box from the six corner coordinates.
func NewAABB(ax, ay, az, bx, by, bz Real) AABB {
	return AABB{Min: V(ax, ay, az), Max: V(bx, by, bz)}
}

// ResetAABB returns the neutral element for componentwise expansion:
// Min at +Inf and Max at −Inf. Expanding it by any point yields a
// degenerate box at that point.
func ResetAABB() AABB {
	inf := Real(math.Inf(1))
	return AABB{Min: V(inf, inf, inf), Max: V(-inf, -inf, -inf)}
}

// AABBFromPoints returns the bounding box of the three points.
func AABBFromPoints(a, b, c Vec3) AABB {
	box := ResetAABB()
	box.ExpandPoint(a)
	box.ExpandPoint(b)
	box.ExpandPoint(c)
	return box
}

// Dims returns Max − Min.
func (b AABB) Dims() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// ExpandPoint grows the box to include the point p.
func (b *AABB) ExpandPoint(p Vec3) {
	for i := 0; i < 3; i++ {
		if p.At(i) < b.Min.At(i) {
			b.Min.SetAt(i, p.At(i))
		}
		if p.At(i) > b.Max.At(i) {
			b.Max.SetAt(i, p.At(i))
		}
	}
}

// ExpandAABB grows the box to include the box o.
func (b *AABB) ExpandAABB(o AABB) {
	b.ExpandPoint(o.Min)
	b.ExpandPoint(o.Max)
}

// ContainsPoint reports whether p lies inside the box. Boundaries are
// inclusive.
func (b AABB) ContainsPoint(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p.At(i) < b.Min.At(i) || p.At(i) > b.Max.At(i) {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether o lies entirely inside the box.
// Boundaries are inclusive.
func (b AABB) ContainsAABB(o AABB) bool {
	return b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
}

// IsValid reports whether Min.i <= Max.i holds on every axis. A box
// fresh from ResetAABB is not valid until expanded.
func (b AABB) IsValid() bool {
	for i := 0; i < 3; i++ {
		if b.Min.At(i) > b.Max.At(i) {
			return false
		}
	}
	return true
}
