// Package geom provides the numeric base of the library: the Real
// scalar, 3-vectors, axis-aligned bounding boxes, vector hashing and
// the intersection kernels the spatial index and decomposer depend on.
package geom

import "math"

// Vec3 is an ordered triple of Real. Components are addressable both
// by name and by axis index (0=x, 1=y, 2=z).
type Vec3 struct {
	X, Y, Z Real
}

// V constructs a Vec3 from its three components.
func V(x, y, z Real) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// At returns the component on the given axis.
func (v Vec3) At(axis int) Real {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetAt assigns the component on the given axis.
func (v *Vec3) SetAt(axis int, r Real) {
	switch axis {
	case 0:
		v.X = r
	case 1:
		v.Y = r
	default:
		v.Z = r
	}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v − o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s Real) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) Real {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared euclidean length of v.
func (v Vec3) LengthSquared() Real {
	return v.Dot(v)
}

// Length returns the euclidean length of v.
func (v Vec3) Length() Real {
	return Real(math.Sqrt(float64(v.LengthSquared())))
}
