// Package medium decomposes the volume enclosing a mesh into
// axis-aligned partitions of uniform acoustic attribute, linked by a
// directed adjacency graph. The partition list and graph are the
// inputs a downstream wave solver consumes.
package medium

import (
	"fmt"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/logging"
	"github.com/chazu/resound/pkg/mesh"
	"github.com/chazu/resound/pkg/octree"
)

// DefaultSoundSpeed is assigned to partitions at creation.
const DefaultSoundSpeed geom.Real = 1

// Partition is one axis-aligned region of uniform acoustic attribute.
// Adjacent lists the indices of the partitions spawned from this one,
// in construction order (directed parent→child, never self).
type Partition struct {
	Bounds     geom.AABB
	SoundSpeed geom.Real
	Adjacent   []int32
}

// DecomposeFunc is a decomposition strategy. Strategies populate m's
// partition list from the octree; def carries caller-supplied medium
// parameters and may be nil.
type DecomposeFunc func(m *Medium, oct *octree.Octree, def *Medium) error

// Medium is a decomposed volume: a boundary, the grid resolution the
// decomposition ran at, and the resulting partitions.
type Medium struct {
	Boundary   geom.AABB
	GridSize   geom.Vec3
	Partitions []Partition

	decompose DecomposeFunc
}

// New returns a medium using the systematic decomposition strategy.
func New() *Medium {
	return &Medium{
		Boundary:  geom.ResetAABB(),
		decompose: DecomposeSystematic,
	}
}

// SetDecomposition selects the strategy used by BuildFromMesh.
func (m *Medium) SetDecomposition(f DecomposeFunc) {
	m.decompose = f
}

// Clear drops all partitions.
func (m *Medium) Clear() {
	m.Partitions = m.Partitions[:0]
}

// AddPartition appends a partition with the given bounds and returns
// its index.
func (m *Medium) AddPartition(bounds geom.AABB, soundSpeed geom.Real) int {
	m.Partitions = append(m.Partitions, Partition{
		Bounds:     bounds,
		SoundSpeed: soundSpeed,
	})
	return len(m.Partitions) - 1
}

// overlapsInterior reports whether the boxes share volume. Unlike the
// inclusive intersection kernel, shared-face contact does not count:
// partitions legally touch on faces, and candidate seeds always touch
// the partition that discovered them.
func overlapsInterior(a, b geom.AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min.At(i) >= b.Max.At(i) || a.Max.At(i) <= b.Min.At(i) {
			return false
		}
	}
	return true
}

// occupied reports whether box leaves the medium boundary or shares
// volume with any existing partition.
func (m *Medium) occupied(box geom.AABB) bool {
	for i := 0; i < 3; i++ {
		if box.Min.At(i) < m.Boundary.Min.At(i) || box.Max.At(i) > m.Boundary.Max.At(i) {
			return true
		}
	}
	for i := range m.Partitions {
		if overlapsInterior(m.Partitions[i].Bounds, box) {
			return true
		}
	}
	return false
}

// BuildFromMesh decomposes the volume around msh at the given grid
// resolution. The boundary comes from def; a nil def falls back to the
// mesh's own AABB. The octree is built and discarded inside this call;
// the medium borrows nothing once it returns.
func (m *Medium) BuildFromMesh(def *Medium, msh *mesh.Mesh, gridSize geom.Vec3) error {
	if gridSize.X <= 0 || gridSize.Y <= 0 || gridSize.Z <= 0 {
		return fmt.Errorf("medium: grid size %v must be positive on every axis", gridSize)
	}

	m.Clear()
	m.GridSize = gridSize

	if def == nil {
		if msh.VertexCount() == 0 {
			logging.Warnf("no medium definition and an empty mesh; nothing to decompose")
			m.Boundary = geom.ResetAABB()
			return nil
		}
		logging.Warnf("no medium definition was provided; falling back to mesh AABB and default parameters")
		m.Boundary = msh.AABB()
	} else {
		m.Boundary = def.Boundary
	}

	oct, err := octree.Build(msh, gridSize)
	if err != nil {
		return err
	}

	if err := m.decompose(m, oct, def); err != nil {
		m.Clear()
		return err
	}

	logging.Infof("decomposed mesh into %d partitions", len(m.Partitions))
	return nil
}

// Verify checks that every grid cell inside the boundary is contained
// in some partition. Decomposition strategies are expected to keep
// this invariant; a failure indicates a strategy bug and is logged per
// missing cell.
func (m *Medium) Verify() bool {
	logging.Infof("integrity check...")
	ok := true
	it := newCellIter(m.Boundary, m.GridSize)
	for {
		cell, more := it.next()
		if !more {
			break
		}
		covered := false
		for i := range m.Partitions {
			if m.Partitions[i].Bounds.ContainsAABB(cell) {
				covered = true
				break
			}
		}
		if !covered {
			ok = false
			logging.Warnf("integrity failure, missing partition at (%v, %v)", cell.Min, cell.Max)
		}
	}
	if ok {
		logging.Infof("integrity check successful")
	}
	return ok
}
