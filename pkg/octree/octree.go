// Package octree builds a spatial index over a mesh's faces. Each node
// holds the indices of the triangles whose bounding boxes touch it, so
// the decomposer can ask "which faces might intersect this cell?"
// without scanning the whole mesh.
package octree

import (
	"fmt"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/mesh"
)

// Node is one region of the octree. A node either has no children or
// exactly eight, one per octant of its bounds.
type Node struct {
	bounds   geom.AABB
	children []Node
	ib       *mesh.IndexBuffer
}

// Bounds returns the node's region.
func (n *Node) Bounds() geom.AABB { return n.bounds }

// Children returns the node's child nodes (nil for a leaf).
func (n *Node) Children() []Node { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// IndexBuffer returns the triangle indices that may intersect the
// node. For the root this aliases the mesh's own index buffer.
func (n *Node) IndexBuffer() *mesh.IndexBuffer { return n.ib }

// FaceCount returns the number of candidate triangles in the node.
func (n *Node) FaceCount() int { return n.ib.Len() / 3 }

// Octree indexes the faces of a single mesh. It borrows the mesh for
// its own lifetime and never mutates it.
type Octree struct {
	mesh *mesh.Mesh
	root *Node
}

// Mesh returns the indexed mesh.
func (o *Octree) Mesh() *mesh.Mesh { return o.mesh }

// Root returns the root node. Its bounds equal the mesh's AABB.
func (o *Octree) Root() *Node { return o.root }

// Walk visits every node in preorder.
func (o *Octree) Walk(fn func(*Node)) {
	walkNode(o.root, fn)
}

func walkNode(n *Node, fn func(*Node)) {
	fn(n)
	for i := range n.children {
		walkNode(&n.children[i], fn)
	}
}

// Build constructs an octree over the mesh's faces. Subdivision stops
// once a node holds at most one triangle or once any axis of the node
// itself is strictly smaller than the corresponding smallestCell
// component, so leaves can be down to half the floor on an axis; the
// size floor guarantees termination.
//
// The root's index buffer aliases the mesh's index buffer; an empty
// mesh yields a tree of a single empty root.
func Build(m *mesh.Mesh, smallestCell geom.Vec3) (*Octree, error) {
	if m == nil {
		return nil, fmt.Errorf("octree: nil mesh")
	}
	if smallestCell.X <= 0 || smallestCell.Y <= 0 || smallestCell.Z <= 0 {
		return nil, fmt.Errorf("octree: smallest cell %v must be positive on every axis", smallestCell)
	}

	root := &Node{bounds: m.AABB()}
	if ib := m.Indices(); ib != nil {
		root.ib = ib
	} else {
		root.ib = mesh.NewIndexBuffer(m.IndexType())
	}
	o := &Octree{mesh: m, root: root}

	if m.FaceCount() == 0 {
		return o, nil
	}

	o.buildNode(root, smallestCell)
	return o, nil
}

// buildNode subdivides node and narrows each child's candidate set
// from the node's own index buffer.
func (o *Octree) buildNode(node *Node, smallestCell geom.Vec3) {
	// One triangle left: nothing to gain from splitting further.
	if node.ib.Len() <= 3 {
		return
	}

	// Size floor.
	dims := node.bounds.Dims()
	for i := 0; i < 3; i++ {
		if dims.At(i) < smallestCell.At(i) {
			return
		}
	}

	node.children = make([]Node, 8)
	half := dims.Scale(0.5)
	for i := 0; i < 8; i++ {
		child := &node.children[i]

		// Octant selection: bit 2 = +x, bit 1 = +y, bit 0 = +z.
		min := node.bounds.Min
		if i&4 != 0 {
			min.X += half.X
		}
		if i&2 != 0 {
			min.Y += half.Y
		}
		if i&1 != 0 {
			min.Z += half.Z
		}
		child.bounds = geom.AABB{Min: min, Max: min.Add(half)}
		child.ib = mesh.NewIndexBuffer(o.mesh.IndexType())

		// Narrow from the parent: a face belongs to the child iff the
		// face's AABB touches the child's AABB.
		for t := 0; t+2 < node.ib.Len(); t += 3 {
			i0 := node.ib.At(t)
			i1 := node.ib.At(t + 1)
			i2 := node.ib.At(t + 2)
			faceBB := geom.AABBFromPoints(
				o.mesh.VertexPosition(i0),
				o.mesh.VertexPosition(i1),
				o.mesh.VertexPosition(i2),
			)
			if geom.TestAABBAABB(child.bounds, faceBB) {
				child.ib.Append(i0)
				child.ib.Append(i1)
				child.ib.Append(i2)
			}
		}

		o.buildNode(child, smallestCell)
	}
}

// QueryPotentialFaces collects the triangle indices of every leaf
// whose bounds overlap box. The result is a superset of the triangles
// actually meeting box; callers must intersect precisely. The returned
// buffer has the same element width as the mesh's index buffer.
func (o *Octree) QueryPotentialFaces(box geom.AABB) *mesh.IndexBuffer {
	out := mesh.NewIndexBuffer(o.mesh.IndexType())
	o.queryNode(o.root, box, out)
	return out
}

func (o *Octree) queryNode(n *Node, box geom.AABB, out *mesh.IndexBuffer) {
	if !geom.TestAABBAABB(n.bounds, box) {
		return
	}
	if n.IsLeaf() {
		out.AppendBuffer(n.ib)
		return
	}
	for i := range n.children {
		o.queryNode(&n.children[i], box, out)
	}
}
