// Package wfobj reads and writes Wavefront OBJ files. Meshes import
// from and export to triangle soup; octrees and media export as AABB
// wireframes (one `f a b` edge record per box edge) for inspection in
// ordinary mesh viewers.
package wfobj

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/status"
)

// Exporter writes OBJ records to a file, deduplicating vertices by
// their component bits so shared box corners are emitted once. OBJ
// indices start at 1.
type Exporter struct {
	f            *os.File
	w            *bufio.Writer
	indexCounter int
	viMap        map[uint64]int
}

// NewExporter opens path for writing.
func NewExporter(path string) (*Exporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, status.Wrap(status.FopenFailed, err)
	}
	return &Exporter{
		f:            f,
		w:            bufio.NewWriter(f),
		indexCounter: 1,
		viMap:        make(map[uint64]int),
	}, nil
}

// Close flushes and closes the file.
func (e *Exporter) Close() error {
	if err := e.w.Flush(); err != nil {
		e.f.Close()
		return err
	}
	return e.f.Close()
}

// WriteVertex emits a `v` record for the vertex unless an identical
// vertex was already written.
func (e *Exporter) WriteVertex(v geom.Vec3) error {
	key := geom.HashVec3(v)
	if _, seen := e.viMap[key]; seen {
		return nil
	}
	if _, err := fmt.Fprintf(e.w, "v %.6g %.6g %.6g\n", float64(v.X), float64(v.Y), float64(v.Z)); err != nil {
		return err
	}
	e.viMap[key] = e.indexCounter
	e.indexCounter++
	return nil
}

// aabbCorners returns the eight corners of a box, low corner first.
func aabbCorners(box geom.AABB) [8]geom.Vec3 {
	a, b := box.Min, box.Max
	return [8]geom.Vec3{
		{X: a.X, Y: a.Y, Z: a.Z},
		{X: a.X, Y: a.Y, Z: b.Z},
		{X: a.X, Y: b.Y, Z: a.Z},
		{X: a.X, Y: b.Y, Z: b.Z},
		{X: b.X, Y: a.Y, Z: a.Z},
		{X: b.X, Y: a.Y, Z: b.Z},
		{X: b.X, Y: b.Y, Z: a.Z},
		{X: b.X, Y: b.Y, Z: b.Z},
	}
}

// aabbEdges pairs corner indices into the twelve box edges.
var aabbEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 4},
	{1, 3}, {1, 5},
	{2, 3}, {2, 6},
	{4, 5}, {4, 6},
	{3, 7}, {5, 7}, {6, 7},
}

// WriteAABBVertices emits the eight corner vertices of a box.
func (e *Exporter) WriteAABBVertices(box geom.AABB) error {
	for _, c := range aabbCorners(box) {
		if err := e.WriteVertex(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteAABBEdges emits the twelve edges of a box as two-index `f`
// records. The box's corners must already have been written.
func (e *Exporter) WriteAABBEdges(box geom.AABB) error {
	corners := aabbCorners(box)
	for _, edge := range aabbEdges {
		i1, ok1 := e.viMap[geom.HashVec3(corners[edge[0]])]
		i2, ok2 := e.viMap[geom.HashVec3(corners[edge[1]])]
		if !ok1 || !ok2 {
			return status.Errorf(status.VertexIndexNotFound, "edge corner of box (%v, %v) was never written", box.Min, box.Max)
		}
		if _, err := fmt.Fprintf(e.w, "f %d %d\n", i1, i2); err != nil {
			return err
		}
	}
	return nil
}
