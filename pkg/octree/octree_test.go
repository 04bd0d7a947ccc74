package octree

import (
	"testing"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/mesh"
)

// cubeMesh builds an axis-aligned cube between min and min+size:
// 8 vertices, 12 triangles.
func cubeMesh(t *testing.T, min geom.Vec3, size geom.Real) *mesh.Mesh {
	t.Helper()
	x, y, z := float64(min.X), float64(min.Y), float64(min.Z)
	s := float64(size)
	verts := []float64{
		x, y, z,
		x + s, y, z,
		x + s, y + s, z,
		x, y + s, z,
		x, y, z + s,
		x + s, y, z + s,
		x + s, y + s, z + s,
		x, y + s, z + s,
	}
	indices := []uint16{
		0, 1, 2, 0, 2, 3, // bottom
		4, 6, 5, 4, 7, 6, // top
		0, 5, 1, 0, 4, 5, // front
		2, 6, 7, 2, 7, 3, // back
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
	}
	m := mesh.New()
	if err := m.CopyFromBuffers(verts, indices, 8, 36, mesh.VertexF64, mesh.IndexU16); err != nil {
		t.Fatalf("CopyFromBuffers: %v", err)
	}
	return m
}

func TestBuildRootMirrorsMesh(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(0.25, 0.25, 0.25))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	root := o.Root()
	if got := root.Bounds(); got != m.AABB() {
		t.Errorf("root bounds = %v, want mesh AABB %v", got, m.AABB())
	}
	if root.IndexBuffer() != m.Indices() {
		t.Error("root index buffer should alias the mesh index buffer")
	}
	if got := root.FaceCount(); got != 12 {
		t.Errorf("root face count = %d, want 12", got)
	}
}

func TestBuildOctants(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(0.5, 0.5, 0.5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	root := o.Root()
	if root.IsLeaf() {
		t.Fatal("root of a 12-face mesh should subdivide")
	}
	children := root.Children()
	if len(children) != 8 {
		t.Fatalf("child count = %d, want 8", len(children))
	}

	// Octant layout: bit 2 = +x, bit 1 = +y, bit 0 = +z.
	for i := range children {
		want := geom.V(0, 0, 0)
		if i&4 != 0 {
			want.X = 0.5
		}
		if i&2 != 0 {
			want.Y = 0.5
		}
		if i&1 != 0 {
			want.Z = 0.5
		}
		b := children[i].Bounds()
		if b.Min != want {
			t.Errorf("child %d min = %v, want %v", i, b.Min, want)
		}
		if b.Dims() != geom.V(0.5, 0.5, 0.5) {
			t.Errorf("child %d dims = %v, want equal octants", i, b.Dims())
		}
	}
}

// faceAABB returns the bounding box of face f.
func faceAABB(m *mesh.Mesh, f int) geom.AABB {
	return geom.AABBFromPoints(
		m.VertexPosition(m.IndexAt(f*3)),
		m.VertexPosition(m.IndexAt(f*3+1)),
		m.VertexPosition(m.IndexAt(f*3+2)),
	)
}

func TestQueryIsSuperset(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(0.25, 0.25, 0.25))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	boxes := []geom.AABB{
		geom.NewAABB(0, 0, 0, 0.5, 0.5, 0.5),
		geom.NewAABB(0.25, 0.25, 0.25, 0.75, 0.75, 0.75),
		geom.NewAABB(0.9, 0.9, 0.9, 1.1, 1.1, 1.1),
		geom.NewAABB(0, 0, 0.999, 1, 1, 1.001),
	}
	for _, box := range boxes {
		result := o.QueryPotentialFaces(box)
		got := make(map[[3]int]bool)
		for i := 0; i+2 < result.Len(); i += 3 {
			got[[3]int{result.At(i), result.At(i + 1), result.At(i + 2)}] = true
		}
		for f := 0; f < m.FaceCount(); f++ {
			if !geom.TestAABBAABB(faceAABB(m, f), box) {
				continue
			}
			key := [3]int{m.IndexAt(f * 3), m.IndexAt(f*3 + 1), m.IndexAt(f*3 + 2)}
			if !got[key] {
				t.Errorf("box %v: face %d (AABB overlap) missing from query result", box, f)
			}
		}
	}
}

func TestQueryDisjointBoxIsEmpty(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(0.25, 0.25, 0.25))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	result := o.QueryPotentialFaces(geom.NewAABB(5, 5, 5, 6, 6, 6))
	if result.Len() != 0 {
		t.Errorf("query of disjoint box returned %d indices, want 0", result.Len())
	}
}

func TestQueryPreservesIndexWidth(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(0.25, 0.25, 0.25))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	result := o.QueryPotentialFaces(geom.NewAABB(0, 0, 0, 1, 1, 1))
	if got := result.Type(); got != mesh.IndexU16 {
		t.Errorf("result index type = %s, want u16", got)
	}
}

func TestBuildEmptyMesh(t *testing.T) {
	m := mesh.New()
	o, err := Build(m, geom.V(0.5, 0.5, 0.5))
	if err != nil {
		t.Fatalf("Build on empty mesh: %v", err)
	}
	if !o.Root().IsLeaf() {
		t.Error("empty mesh should produce a single leaf root")
	}
	if o.Root().FaceCount() != 0 {
		t.Error("empty mesh root should hold no faces")
	}
	if got := o.QueryPotentialFaces(geom.NewAABB(0, 0, 0, 1, 1, 1)).Len(); got != 0 {
		t.Errorf("query on empty octree returned %d indices, want 0", got)
	}
}

func TestBuildSizeFloorStopsSubdivision(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(2, 2, 2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !o.Root().IsLeaf() {
		t.Error("smallest cell larger than the mesh should keep the root a leaf")
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	m := cubeMesh(t, geom.V(0, 0, 0), 1)
	o, err := Build(m, geom.V(0.5, 0.5, 0.5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	count := 0
	o.Walk(func(n *Node) { count++ })
	// Root plus its eight children at minimum.
	if count < 9 {
		t.Errorf("Walk visited %d nodes, want >= 9", count)
	}
}
