// Package mesh builds procedural triangle meshes ready for GPU upload.
package mesh

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds indexed triangle data.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// builder accumulates vertices and indices for a mesh.
type builder struct {
	name     string
	vertices []Vertex
	indices  []uint32
}

func newBuilder(name string, vertexHint int) *builder {
	return &builder{
		name:     name,
		vertices: make([]Vertex, 0, vertexHint),
		indices:  make([]uint32, 0, vertexHint*2),
	}
}

func (b *builder) vertex(pos, normal [3]float32, uv [2]float32) uint32 {
	b.vertices = append(b.vertices, Vertex{Position: pos, Normal: normal, TexCoord: uv})
	return uint32(len(b.vertices) - 1)
}

func (b *builder) triangle(a, c, d uint32) {
	b.indices = append(b.indices, a, c, d)
}

func (b *builder) build() *Mesh {
	return &Mesh{
		Name:     b.name,
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   computeBounds(b.vertices),
	}
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	bounds := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < bounds.Min[i] {
				bounds.Min[i] = v.Position[i]
			}
			if v.Position[i] > bounds.Max[i] {
				bounds.Max[i] = v.Position[i]
			}
		}
	}
	return bounds
}
