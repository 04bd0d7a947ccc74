package mesh

import (
	"fmt"

	"github.com/chazu/resound/pkg/geom"
)

// Mesh couples a typed vertex buffer, a typed index buffer and a
// parallel per-vertex attribute buffer. Every three consecutive
// indices form one triangle.
//
// A mesh either owns its buffers (CopyFromBuffers) or borrows them
// from the caller (AssignBuffers); the flag is fixed at construction.
// Borrowed buffers must not be mutated while an octree or medium build
// is using the mesh.
type Mesh struct {
	vb    *VertexBuffer
	ib    *IndexBuffer
	attrs []Attribute
	aabb  geom.AABB
	owns  bool
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{aabb: geom.ResetAABB()}
}

// AssignBuffers points the mesh at caller-owned buffers. The dynamic
// slice types must match the given tags. The attribute buffer is
// freshly allocated and defaults every vertex to Solid.
func (m *Mesh) AssignBuffers(vertexBuffer, indexBuffer interface{},
	vertexCount, indexCount int, vt VertexType, it IndexType) error {

	vb, err := NewVertexBuffer(vertexBuffer, vt)
	if err != nil {
		return err
	}
	ib, err := IndexBufferFrom(indexBuffer, it)
	if err != nil {
		return err
	}
	if err := validateCounts(vb, ib, vertexCount, indexCount); err != nil {
		return err
	}

	m.vb = vb
	m.ib = ib
	m.owns = false
	m.initAttributes(vertexCount)
	m.calculateAABB()
	return nil
}

// CopyFromBuffers copies the given buffers into mesh-owned storage.
func (m *Mesh) CopyFromBuffers(vertexBuffer, indexBuffer interface{},
	vertexCount, indexCount int, vt VertexType, it IndexType) error {

	if err := m.AssignBuffers(vertexBuffer, indexBuffer, vertexCount, indexCount, vt, it); err != nil {
		return err
	}
	m.vb = m.vb.clone()
	m.ib = m.ib.clone()
	m.owns = true
	return nil
}

func validateCounts(vb *VertexBuffer, ib *IndexBuffer, vertexCount, indexCount int) error {
	if vb.Len() < vertexCount {
		return fmt.Errorf("mesh: vertex buffer holds %d vertices, %d declared", vb.Len(), vertexCount)
	}
	if ib.Len() < indexCount {
		return fmt.Errorf("mesh: index buffer holds %d indices, %d declared", ib.Len(), indexCount)
	}
	if indexCount%3 != 0 {
		return fmt.Errorf("mesh: index count %d not divisible by 3", indexCount)
	}
	for i := 0; i < indexCount; i++ {
		if idx := ib.At(i); idx < 0 || idx >= vertexCount {
			return fmt.Errorf("mesh: index %d out of range at position %d (vertex count %d)", idx, i, vertexCount)
		}
	}
	return nil
}

func (m *Mesh) initAttributes(vertexCount int) {
	m.attrs = make([]Attribute, vertexCount)
	for i := range m.attrs {
		m.attrs[i] = Solid()
	}
}

func (m *Mesh) calculateAABB() {
	m.aabb = geom.ResetAABB()
	for i := 0; i < m.VertexCount(); i++ {
		m.aabb.ExpandPoint(m.vb.Position(i))
	}
}

// Clear drops the mesh's buffers and resets its bounding box.
func (m *Mesh) Clear() {
	m.vb = nil
	m.ib = nil
	m.attrs = nil
	m.owns = false
	m.aabb = geom.ResetAABB()
}

// OwnsBuffers reports whether the buffers are mesh-owned copies.
func (m *Mesh) OwnsBuffers() bool { return m.owns }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m.vb == nil {
		return 0
	}
	return len(m.attrs)
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	if m.ib == nil {
		return 0
	}
	return m.ib.Len()
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int { return m.IndexCount() / 3 }

// AABB returns the bounding box over all vertex positions.
func (m *Mesh) AABB() geom.AABB { return m.aabb }

// VertexType returns the vertex buffer's element tag.
func (m *Mesh) VertexType() VertexType {
	if m.vb == nil {
		return VertexF64
	}
	return m.vb.Type()
}

// IndexType returns the index buffer's element tag.
func (m *Mesh) IndexType() IndexType {
	if m.ib == nil {
		return IndexU32
	}
	return m.ib.Type()
}

// Indices exposes the mesh's index buffer. The octree's root node
// aliases this buffer directly.
func (m *Mesh) Indices() *IndexBuffer { return m.ib }

// VertexPosition returns the position of vertex i.
func (m *Mesh) VertexPosition(i int) geom.Vec3 {
	return m.vb.Position(i)
}

// IndexAt returns the vertex index at position i of the index buffer.
func (m *Mesh) IndexAt(i int) int {
	return m.ib.At(i)
}

// AttributeAt returns the attribute of vertex i.
func (m *Mesh) AttributeAt(i int) Attribute {
	return m.attrs[i]
}

// SetAttribute assigns the attribute of vertex i.
func (m *Mesh) SetAttribute(i int, a Attribute) {
	m.attrs[i] = a
}

// SetAllAttributes assigns the same attribute to every vertex.
func (m *Mesh) SetAllAttributes(a Attribute) {
	for i := range m.attrs {
		m.attrs[i] = a
	}
}

// FaceAt assembles the triangle at face index f from the buffers.
func (m *Mesh) FaceAt(f int) Face {
	var face Face
	for v := 0; v < 3; v++ {
		idx := m.ib.At(f*3 + v)
		face.V[v] = Vertex{
			Position: m.vb.Position(idx),
			Attr:     m.attrs[idx],
		}
	}
	return face
}
