// Package meshbuild generates primitive triangle meshes through SDF
// modeling with the github.com/deadsy/sdfx library. Callers that need
// demo or test geometry get a ready Mesh without importing a file.
package meshbuild

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/mesh"
)

// DefaultCells is the marching-cubes resolution used when callers pass
// a non-positive cell count.
const DefaultCells = 64

// Box generates a box mesh with the given dimensions, minimum corner
// at the origin.
func Box(x, y, z geom.Real, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}, 0)
	if err != nil {
		return nil, fmt.Errorf("meshbuild: box: %w", err)
	}
	// sdf.Box3D centers the box at the origin; shift to min-corner.
	m := sdf.Translate3d(v3.Vec{X: float64(x) / 2, Y: float64(y) / 2, Z: float64(z) / 2})
	return toMesh(sdf.Transform3D(s, m), cells)
}

// Cylinder generates a cylinder mesh with the given height and radius,
// centered at the origin.
func Cylinder(height, radius geom.Real, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(float64(height), float64(radius), 0)
	if err != nil {
		return nil, fmt.Errorf("meshbuild: cylinder: %w", err)
	}
	return toMesh(s, cells)
}

// toMesh tessellates an SDF with marching cubes and packs the triangle
// soup into a mesh that owns its buffers.
func toMesh(s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("meshbuild: tessellation produced no triangles")
	}

	vertices := make([]float64, 0, len(triangles)*9)
	indices := make([]uint32, 0, len(triangles)*3)
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, v.X, v.Y, v.Z)
			indices = append(indices, uint32(i*3+j))
		}
	}

	m := mesh.New()
	if err := m.CopyFromBuffers(vertices, indices, len(triangles)*3, len(indices), mesh.VertexF64, mesh.IndexU32); err != nil {
		return nil, err
	}
	return m, nil
}
