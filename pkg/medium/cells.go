package medium

import "github.com/chazu/resound/pkg/geom"

// cellIter subdivides an enclosing box into grid cells and walks them
// in raster order: z innermost, then y, then x. Cells advance by their
// own box, and a cell is emitted while its far face does not pass the
// far face of the extents. That comparison applies no tolerance: when
// rounding carries the last cell on an axis just past the extents, the
// cell is not emitted.
type cellIter struct {
	extents geom.AABB
	cell    geom.AABB
	started bool
}

func newCellIter(extents geom.AABB, cellSize geom.Vec3) *cellIter {
	return &cellIter{
		extents: extents,
		cell:    geom.AABB{Min: extents.Min, Max: extents.Min.Add(cellSize)},
	}
}

// next returns the next cell. The first cell is always emitted, even
// when the extents are smaller than one cell.
func (it *cellIter) next() (geom.AABB, bool) {
	if !it.started {
		it.started = true
		return it.cell, true
	}

	// Advance on the z axis.
	zSize := it.cell.Max.Z - it.cell.Min.Z
	it.cell.Min.Z = it.cell.Max.Z
	it.cell.Max.Z += zSize

	if it.cell.Max.Z > it.extents.Max.Z {
		// Reset z, advance on the y axis.
		ySize := it.cell.Max.Y - it.cell.Min.Y
		it.cell.Min.Y = it.cell.Max.Y
		it.cell.Max.Y += ySize
		it.cell.Min.Z = it.extents.Min.Z
		it.cell.Max.Z = it.extents.Min.Z + zSize

		if it.cell.Max.Y > it.extents.Max.Y {
			// Reset y, advance on the x axis.
			xSize := it.cell.Max.X - it.cell.Min.X
			it.cell.Min.X = it.cell.Max.X
			it.cell.Max.X += xSize
			it.cell.Min.Y = it.extents.Min.Y
			it.cell.Max.Y = it.extents.Min.Y + ySize

			if it.cell.Max.X > it.extents.Max.X {
				return geom.AABB{}, false
			}
		}
	}

	return it.cell, true
}
