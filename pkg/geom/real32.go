//go:build realfloat32

package geom

// Real is the scalar type all geometric math is carried out in.
type Real = float32

// Eps is the machine epsilon of Real.
const Eps Real = 1.1920929e-07
