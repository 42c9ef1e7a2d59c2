// Package scene provides a small scene graph: nodes with Euler transforms,
// materials, lights and a perspective camera.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gotham-story/internal/engine/mesh"
)

// Node is a transform in the scene graph, optionally carrying a mesh.
type Node struct {
	Name string

	Position mgl32.Vec3
	// Rotation holds Euler angles in radians, applied in X, Y, Z order.
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	Mesh     *mesh.Mesh
	Material *Material

	// Shadow participation, used when a scene light casts shadows.
	CastShadow    bool
	ReceiveShadow bool

	Parent   *Node
	Children []*Node
}

// NewNode creates an empty, visible group node.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// NewMeshNode creates a visible node drawing m with mat.
func NewMeshNode(name string, m *mesh.Mesh, mat *Material) *Node {
	n := NewNode(name)
	n.Mesh = m
	n.Material = mat
	return n
}

// Add attaches children to n.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// LocalMatrix returns T * Rx * Ry * Rz * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl32.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices of n and all its ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits n and its visible descendants depth-first with their world
// matrices. Invisible nodes hide their whole subtree.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4)) {
	var parent mgl32.Mat4
	if n.Parent != nil {
		parent = n.Parent.WorldMatrix()
	} else {
		parent = mgl32.Ident4()
	}
	n.walk(parent, fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.Children {
		c.walk(world, fn)
	}
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
