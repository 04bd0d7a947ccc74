package mesh

import (
	"fmt"

	"github.com/chazu/resound/pkg/geom"
)

// VertexType tags the element width of a vertex buffer.
type VertexType int

const (
	VertexF32 VertexType = iota
	VertexF64
)

// Size returns the width of one buffer element in bytes.
func (t VertexType) Size() int {
	if t == VertexF32 {
		return 4
	}
	return 8
}

func (t VertexType) String() string {
	if t == VertexF32 {
		return "f32"
	}
	return "f64"
}

// IndexType tags the element width of an index buffer.
type IndexType int

const (
	IndexI8 IndexType = iota
	IndexU8
	IndexI16
	IndexU16
	IndexI32
	IndexU32
	IndexI64
	IndexU64
)

// Size returns the width of one buffer element in bytes.
func (t IndexType) Size() int {
	return 1 << (int(t) / 2)
}

// Valid reports whether the tag may be used in this build. The 64-bit
// tags require the ib64 build tag.
func (t IndexType) Valid() bool {
	if t < IndexI8 || t > IndexU64 {
		return false
	}
	if t == IndexI64 || t == IndexU64 {
		return index64Enabled
	}
	return true
}

func (t IndexType) String() string {
	switch t {
	case IndexI8:
		return "i8"
	case IndexU8:
		return "u8"
	case IndexI16:
		return "i16"
	case IndexU16:
		return "u16"
	case IndexI32:
		return "i32"
	case IndexU32:
		return "u32"
	case IndexI64:
		return "i64"
	case IndexU64:
		return "u64"
	}
	return "invalid"
}

// VertexBuffer is a typed buffer of vertex position triples. The
// concrete slice type is selected by the tag and dispatched on at
// every read.
type VertexBuffer struct {
	typ  VertexType
	data interface{} // []float32 or []float64, length 3·vertexCount
}

// NewVertexBuffer wraps an existing slice without copying. The dynamic
// type of data must match the tag.
func NewVertexBuffer(data interface{}, typ VertexType) (*VertexBuffer, error) {
	switch typ {
	case VertexF32:
		if _, ok := data.([]float32); !ok {
			return nil, fmt.Errorf("mesh: vertex buffer tagged %s but holds %T", typ, data)
		}
	case VertexF64:
		if _, ok := data.([]float64); !ok {
			return nil, fmt.Errorf("mesh: vertex buffer tagged %s but holds %T", typ, data)
		}
	default:
		return nil, fmt.Errorf("mesh: invalid vertex type %d", typ)
	}
	return &VertexBuffer{typ: typ, data: data}, nil
}

// Type returns the element tag.
func (b *VertexBuffer) Type() VertexType { return b.typ }

// Len returns the number of vertices (component count divided by 3).
func (b *VertexBuffer) Len() int {
	switch d := b.data.(type) {
	case []float32:
		return len(d) / 3
	case []float64:
		return len(d) / 3
	}
	return 0
}

// Position returns the position triple of vertex i, widened to Real.
func (b *VertexBuffer) Position(i int) geom.Vec3 {
	j := i * 3
	switch d := b.data.(type) {
	case []float32:
		return geom.V(geom.Real(d[j]), geom.Real(d[j+1]), geom.Real(d[j+2]))
	case []float64:
		return geom.V(geom.Real(d[j]), geom.Real(d[j+1]), geom.Real(d[j+2]))
	}
	return geom.Vec3{}
}

// clone returns a deep copy of the buffer.
func (b *VertexBuffer) clone() *VertexBuffer {
	switch d := b.data.(type) {
	case []float32:
		cp := make([]float32, len(d))
		copy(cp, d)
		return &VertexBuffer{typ: b.typ, data: cp}
	case []float64:
		cp := make([]float64, len(d))
		copy(cp, d)
		return &VertexBuffer{typ: b.typ, data: cp}
	}
	return &VertexBuffer{typ: b.typ}
}

// IndexBuffer is a typed buffer of vertex indices. Indices are stored
// at their tagged width and widened to int on read, so query results
// preserve the width of the mesh they came from.
type IndexBuffer struct {
	typ  IndexType
	data interface{}
}

// NewIndexBuffer returns an empty buffer of the given element width.
func NewIndexBuffer(typ IndexType) *IndexBuffer {
	b := &IndexBuffer{typ: typ}
	switch typ {
	case IndexI8:
		b.data = []int8(nil)
	case IndexU8:
		b.data = []uint8(nil)
	case IndexI16:
		b.data = []int16(nil)
	case IndexU16:
		b.data = []uint16(nil)
	case IndexI32:
		b.data = []int32(nil)
	case IndexU32:
		b.data = []uint32(nil)
	case IndexI64:
		b.data = []int64(nil)
	case IndexU64:
		b.data = []uint64(nil)
	}
	return b
}

// IndexBufferFrom wraps an existing slice without copying. The dynamic
// type of data must match the tag, and the tag must be valid in this
// build.
func IndexBufferFrom(data interface{}, typ IndexType) (*IndexBuffer, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("mesh: index type %s not available in this build", typ)
	}
	ok := false
	switch typ {
	case IndexI8:
		_, ok = data.([]int8)
	case IndexU8:
		_, ok = data.([]uint8)
	case IndexI16:
		_, ok = data.([]int16)
	case IndexU16:
		_, ok = data.([]uint16)
	case IndexI32:
		_, ok = data.([]int32)
	case IndexU32:
		_, ok = data.([]uint32)
	case IndexI64:
		_, ok = data.([]int64)
	case IndexU64:
		_, ok = data.([]uint64)
	}
	if !ok {
		return nil, fmt.Errorf("mesh: index buffer tagged %s but holds %T", typ, data)
	}
	return &IndexBuffer{typ: typ, data: data}, nil
}

// Type returns the element tag.
func (b *IndexBuffer) Type() IndexType { return b.typ }

// Len returns the number of indices in the buffer.
func (b *IndexBuffer) Len() int {
	switch d := b.data.(type) {
	case []int8:
		return len(d)
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	}
	return 0
}

// At returns the index at position i widened to int.
func (b *IndexBuffer) At(i int) int {
	switch d := b.data.(type) {
	case []int8:
		return int(d[i])
	case []uint8:
		return int(d[i])
	case []int16:
		return int(d[i])
	case []uint16:
		return int(d[i])
	case []int32:
		return int(d[i])
	case []uint32:
		return int(d[i])
	case []int64:
		return int(d[i])
	case []uint64:
		return int(d[i])
	}
	return -1
}

// Append narrows v to the buffer's element width and appends it.
func (b *IndexBuffer) Append(v int) {
	switch d := b.data.(type) {
	case []int8:
		b.data = append(d, int8(v))
	case []uint8:
		b.data = append(d, uint8(v))
	case []int16:
		b.data = append(d, int16(v))
	case []uint16:
		b.data = append(d, uint16(v))
	case []int32:
		b.data = append(d, int32(v))
	case []uint32:
		b.data = append(d, uint32(v))
	case []int64:
		b.data = append(d, int64(v))
	case []uint64:
		b.data = append(d, uint64(v))
	}
}

// AppendBuffer appends every index of src. Widths may differ; values
// are narrowed to the receiver's width.
func (b *IndexBuffer) AppendBuffer(src *IndexBuffer) {
	n := src.Len()
	for i := 0; i < n; i++ {
		b.Append(src.At(i))
	}
}

// clone returns a deep copy of the buffer.
func (b *IndexBuffer) clone() *IndexBuffer {
	cp := NewIndexBuffer(b.typ)
	cp.AppendBuffer(b)
	return cp
}
