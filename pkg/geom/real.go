//go:build !realfloat32

package geom

// Real is the scalar type all geometric math is carried out in.
// The default build uses 64-bit floats; build with -tags realfloat32
// to select the 32-bit variant.
type Real = float64

// Eps is the machine epsilon of Real.
const Eps Real = 2.220446049250313e-16
