package medium

import (
	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/logging"
	"github.com/chazu/resound/pkg/octree"
)

// direction flags a growth direction of the region grower. Up/Down run
// along ±y, Right/Left along ±x, Back/Front along ±z.
type direction uint8

const (
	dirUp direction = 1 << iota
	dirDown
	dirLeft
	dirRight
	dirFront
	dirBack

	dirIterEnd    direction = 1 << 6
	allDirections           = dirUp | dirDown | dirLeft | dirRight | dirFront | dirBack
)

// adjacentSlice returns the one-grid-layer-thick box adjoining seed in
// the given direction. The other two axes keep the seed's full extent.
func (m *Medium) adjacentSlice(seed geom.AABB, d direction) geom.AABB {
	slice := seed
	switch d {
	case dirUp:
		slice.Min.Y = seed.Max.Y
		slice.Max.Y = seed.Max.Y + m.GridSize.Y
	case dirDown:
		slice.Min.Y = seed.Min.Y - m.GridSize.Y
		slice.Max.Y = seed.Min.Y
	case dirLeft:
		slice.Min.X = seed.Min.X - m.GridSize.X
		slice.Max.X = seed.Min.X
	case dirRight:
		slice.Min.X = seed.Max.X
		slice.Max.X = seed.Max.X + m.GridSize.X
	case dirFront:
		slice.Min.Z = seed.Min.Z - m.GridSize.Z
		slice.Max.Z = seed.Min.Z
	case dirBack:
		slice.Min.Z = seed.Max.Z
		slice.Max.Z = seed.Max.Z + m.GridSize.Z
	}
	return slice
}

// DecomposeSystematic grows partitions from the cell at the boundary's
// bottom-left-front corner, recursing into every cell whose attribute
// differs from the region it was discovered from.
func DecomposeSystematic(m *Medium, oct *octree.Octree, def *Medium) error {
	seed := geom.AABB{
		Min: m.Boundary.Min,
		Max: m.Boundary.Min.Add(m.GridSize),
	}
	return m.growSystematic(-1, oct, def, seed)
}

// growSystematic expands one seed to a maximal partition, commits it,
// then recurses into the differing cells recorded during expansion.
func (m *Medium) growSystematic(parentIdx int, oct *octree.Octree, def *Medium, seed geom.AABB) error {
	seedAttr := EvaluateCell(oct, seed)

	// Expand evenly in all six directions until every direction is
	// blocked: by the boundary, by an existing partition, or by a cell
	// of a different attribute. Each pass re-tests all directions; the
	// fixed point is a pass in which nothing merges.
	var newSeeds []geom.AABB
	for {
		var blocked direction
		for d := direction(1); d != dirIterEnd; d <<= 1 {
			slice := m.adjacentSlice(seed, d)
			if m.occupied(slice) {
				blocked |= d
				continue
			}

			// Every cell of the slice must match the seed for the
			// slice to merge. Differing cells seed new partitions.
			same := true
			it := newCellIter(slice, m.GridSize)
			for {
				cell, more := it.next()
				if !more {
					break
				}
				if !EvaluateCell(oct, cell).Equal(seedAttr) {
					newSeeds = append(newSeeds, cell)
					same = false
				}
			}
			if !same {
				blocked |= d
				continue
			}

			seed.ExpandAABB(slice)
		}
		if blocked == allDirections {
			break
		}
	}

	thisIdx := m.AddPartition(seed, DefaultSoundSpeed)
	logging.Debugf("adding partition #%d (%v, %v)", thisIdx, seed.Min, seed.Max)

	if parentIdx >= 0 {
		parent := &m.Partitions[parentIdx]
		parent.Adjacent = append(parent.Adjacent, int32(thisIdx))
	}

	// Cells recorded during expansion are potential new seeds, unless
	// a partition committed in the meantime already covers them.
	for _, ns := range newSeeds {
		if m.occupied(ns) {
			continue
		}
		if err := m.growSystematic(thisIdx, oct, def, ns); err != nil {
			return err
		}
	}
	return nil
}

// DecomposeGreedyRandom is reserved for a future strategy. It
// currently succeeds without producing partitions.
func DecomposeGreedyRandom(m *Medium, oct *octree.Octree, def *Medium) error {
	return nil
}
