package mesh

import "github.com/chazu/resound/pkg/geom"

// Vertex pairs a position with its acoustic attribute.
type Vertex struct {
	Position geom.Vec3
	Attr     Attribute
}

// Face is a triangle of three vertices.
type Face struct {
	V [3]Vertex
}

// AABB returns the bounding box of the face.
func (f Face) AABB() geom.AABB {
	return geom.AABBFromPoints(f.V[0].Position, f.V[1].Position, f.V[2].Position)
}

// AttributeAt interpolates the vertex attributes barycentrically at p.
// The decomposer does not use this; it weights vertices by inverse
// distance to the cell center instead.
func (f Face) AttributeAt(p geom.Vec3) Attribute {
	w := geom.Barycentric(p, f.V[0].Position, f.V[1].Position, f.V[2].Position)
	var a Attribute
	for i := 0; i < 3; i++ {
		a.Reflection += f.V[i].Attr.Reflection * w.At(i)
		a.Transmission += f.V[i].Attr.Transmission * w.At(i)
		a.Absorption += f.V[i].Attr.Absorption * w.At(i)
	}
	return a.Normalized()
}
