package medium

import (
	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/mesh"
	"github.com/chazu/resound/pkg/octree"
)

// EvaluateCell computes the interpolated acoustic attribute of an
// axis-aligned cell. The octree supplies candidate faces; candidates
// are filtered with an exact triangle test, and the vertices of the
// surviving triangles are blended with inverse-distance-squared
// weights toward the cell center (Shepard interpolation, p=2).
//
// A cell center sitting exactly on a vertex adopts that vertex's
// attribute verbatim. A cell no face intersects is air: holes in the
// mesh stay navigable.
func EvaluateCell(oct *octree.Octree, cell geom.AABB) mesh.Attribute {
	m := oct.Mesh()
	candidates := oct.QueryPotentialFaces(cell)
	center := cell.Center()

	var sum mesh.Attribute
	var weightSum geom.Real
	for i := 0; i+2 < candidates.Len(); i += 3 {
		i0 := candidates.At(i)
		i1 := candidates.At(i + 1)
		i2 := candidates.At(i + 2)
		p0 := m.VertexPosition(i0)
		p1 := m.VertexPosition(i1)
		p2 := m.VertexPosition(i2)

		// The octree result is a superset; test precisely.
		if !geom.TestTriangleAABB(p0, p1, p2, cell) {
			continue
		}

		for _, vi := range [3]int{i0, i1, i2} {
			d := m.VertexPosition(vi).Sub(center).LengthSquared()
			if d == 0 {
				return m.AttributeAt(vi)
			}
			w := 1 / d
			a := m.AttributeAt(vi)
			sum.Reflection += a.Reflection * w
			sum.Transmission += a.Transmission * w
			sum.Absorption += a.Absorption * w
			weightSum += w
		}
	}

	if weightSum == 0 {
		return mesh.Air()
	}

	sum.Reflection /= weightSum
	sum.Transmission /= weightSum
	sum.Absorption /= weightSum
	return sum.Normalized()
}
