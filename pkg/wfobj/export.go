package wfobj

import (
	"fmt"

	"github.com/chazu/resound/pkg/medium"
	"github.com/chazu/resound/pkg/mesh"
	"github.com/chazu/resound/pkg/octree"
)

// ExportMesh writes the mesh's triangles: one `v` record per vertex
// and one three-index `f` record per face.
func ExportMesh(path string, m *mesh.Mesh) error {
	e, err := NewExporter(path)
	if err != nil {
		return err
	}
	defer e.Close()

	for i := 0; i < m.VertexCount(); i++ {
		p := m.VertexPosition(i)
		if _, err := fmt.Fprintf(e.w, "v %.6g %.6g %.6g\n", float64(p.X), float64(p.Y), float64(p.Z)); err != nil {
			return err
		}
	}
	for f := 0; f < m.FaceCount(); f++ {
		if _, err := fmt.Fprintf(e.w, "f %d %d %d\n",
			m.IndexAt(f*3)+1, m.IndexAt(f*3+1)+1, m.IndexAt(f*3+2)+1); err != nil {
			return err
		}
	}
	return nil
}

// ExportOctree writes every node of the octree as an AABB wireframe,
// root and descendants.
func ExportOctree(path string, o *octree.Octree) error {
	e, err := NewExporter(path)
	if err != nil {
		return err
	}
	defer e.Close()

	var werr error
	o.Walk(func(n *octree.Node) {
		if werr == nil {
			werr = e.WriteAABBVertices(n.Bounds())
		}
	})
	if werr != nil {
		return werr
	}
	o.Walk(func(n *octree.Node) {
		if werr == nil {
			werr = e.WriteAABBEdges(n.Bounds())
		}
	})
	return werr
}

// ExportMedium writes every partition of the medium as an AABB
// wireframe.
func ExportMedium(path string, m *medium.Medium) error {
	e, err := NewExporter(path)
	if err != nil {
		return err
	}
	defer e.Close()

	for i := range m.Partitions {
		if err := e.WriteAABBVertices(m.Partitions[i].Bounds); err != nil {
			return err
		}
	}
	for i := range m.Partitions {
		if err := e.WriteAABBEdges(m.Partitions[i].Bounds); err != nil {
			return err
		}
	}
	return nil
}
