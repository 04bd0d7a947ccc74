// Package mesh models triangular surface meshes whose vertices carry
// acoustic attributes. Vertex and index buffers are typed: the element
// width is selected by a tag and dispatched on at every read, so a
// mesh can borrow caller buffers of any supported width without
// conversion.
package mesh

import "github.com/chazu/resound/pkg/geom"

// Attribute is the acoustic property triple carried by every vertex.
// All three channels are non-negative and sum to 1 after normalization.
type Attribute struct {
	Reflection   geom.Real
	Transmission geom.Real
	Absorption   geom.Real
}

// Solid is the attribute of a fully absorbing cell.
func Solid() Attribute {
	return Attribute{Absorption: 1}
}

// Air is the attribute of a fully transmitting cell.
func Air() Attribute {
	return Attribute{Transmission: 1}
}

// IsZero reports whether all three channels are zero.
func (a Attribute) IsZero() bool {
	return a.Reflection == 0 && a.Transmission == 0 && a.Absorption == 0
}

// Equal reports exact bit equality. The decomposer grows regions on
// this predicate; no tolerance is applied.
func (a Attribute) Equal(b Attribute) bool {
	return a.Reflection == b.Reflection &&
		a.Transmission == b.Transmission &&
		a.Absorption == b.Absorption
}

func absChannel(x geom.Real) geom.Real {
	if x < 0 {
		return -x
	}
	return x
}

// Normalized scales the triple so its channels sum to 1. An all-zero
// input yields Solid. Channels are divided rather than multiplied by a
// reciprocal so that single-channel triples normalize to exact values.
func (a Attribute) Normalized() Attribute {
	if a.IsZero() {
		return Solid()
	}
	r := absChannel(a.Reflection)
	t := absChannel(a.Transmission)
	ab := absChannel(a.Absorption)
	sum := r + t + ab
	return Attribute{
		Reflection:   r / sum,
		Transmission: t / sum,
		Absorption:   ab / sum,
	}
}
