package mesh

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("%s: index count %d not a multiple of 3", m.Name, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("%s: index %d out of range (%d vertices)", m.Name, idx, len(m.Vertices))
		}
	}
}

func checkUnitNormals(t *testing.T, m *Mesh) {
	t.Helper()
	for i, v := range m.Vertices {
		n := v.Normal
		l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		if !near(l, 1) {
			t.Fatalf("%s: vertex %d normal length %f", m.Name, i, l)
		}
	}
}

func TestBox(t *testing.T) {
	m := Box(2, 4, 6)
	checkIndices(t, m)
	checkUnitNormals(t, m)

	if len(m.Vertices) != 24 {
		t.Errorf("expected 24 vertices, got %d", len(m.Vertices))
	}
	if m.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.TriangleCount())
	}
	size := m.Bounds.Size()
	if !near(size[0], 2) || !near(size[1], 4) || !near(size[2], 6) {
		t.Errorf("unexpected bounds size %v", size)
	}
}

func TestPlane(t *testing.T) {
	m := Plane(100, 100)
	checkIndices(t, m)
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}
	if m.Bounds.Min[2] != 0 || m.Bounds.Max[2] != 0 {
		t.Errorf("plane should be flat in Z, bounds %v", m.Bounds)
	}
}

func TestHalfSphere(t *testing.T) {
	m := Sphere(1, 32, 32, SphereOptions{PhiLength: 2 * math.Pi, ThetaLength: math.Pi / 2})
	checkIndices(t, m)
	checkUnitNormals(t, m)

	if m.Bounds.Min[1] < -1e-4 {
		t.Errorf("upper hemisphere should not go below y=0, min y %f", m.Bounds.Min[1])
	}
	if !near(m.Bounds.Max[1], 1) {
		t.Errorf("expected top at y=1, got %f", m.Bounds.Max[1])
	}
}

func TestConeAndCylinder(t *testing.T) {
	cone := Cone(0.5, 2, 4)
	checkIndices(t, cone)
	checkUnitNormals(t, cone)
	if !near(cone.Bounds.Max[1], 1) || !near(cone.Bounds.Min[1], -1) {
		t.Errorf("cone height bounds %v", cone.Bounds)
	}

	cyl := Cylinder(0.05, 0.1, 0.8, 8)
	checkIndices(t, cyl)
	checkUnitNormals(t, cyl)
	if !near(cyl.Bounds.Max[0], 0.1) {
		t.Errorf("cylinder widest radius should be 0.1, got %f", cyl.Bounds.Max[0])
	}
	if cyl.TriangleCount() <= cone.TriangleCount() {
		t.Error("cylinder has a top cap, expected more triangles than the cone")
	}
}

func TestCapsule(t *testing.T) {
	m := Capsule(0.3, 0.8, 4, 8)
	checkIndices(t, m)
	checkUnitNormals(t, m)

	// Total height is length plus both hemispheres.
	size := m.Bounds.Size()
	if !near(size[1], 1.4) {
		t.Errorf("capsule height = %f, want 1.4", size[1])
	}
	if !near(size[0], 0.6) {
		t.Errorf("capsule width = %f, want 0.6", size[0])
	}
}

var emblem = Shape{{0, 0}, {0.3, 0.5}, {0.1, 0.4}, {0, 0.6}, {-0.1, 0.4}, {-0.3, 0.5}, {0, 0}}

func TestTriangulateConcave(t *testing.T) {
	pts := emblem.points()
	if len(pts) != 6 {
		t.Fatalf("closing point should be dropped, got %d points", len(pts))
	}

	tris, err := Triangulate(pts)
	if err != nil {
		t.Fatalf("triangulate: %v", err)
	}
	if len(tris)/3 != len(pts)-2 {
		t.Errorf("expected %d triangles, got %d", len(pts)-2, len(tris)/3)
	}

	var area float32
	for i := 0; i < len(tris); i += 3 {
		area += cross(pts[tris[i]], pts[tris[i+1]], pts[tris[i+2]]) / 2
	}
	if !near(area, emblem.Area()) {
		t.Errorf("triangle area %f != outline area %f", area, emblem.Area())
	}
}

func TestTriangulateClockwiseInput(t *testing.T) {
	cw := Shape{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	m, err := Flat(cw)
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	if _, err := Triangulate([]Point2{{0, 0}, {1, 1}}); err != ErrDegenerateShape {
		t.Errorf("expected ErrDegenerateShape, got %v", err)
	}
}

func TestExtrude(t *testing.T) {
	cape := Shape{{0, 0}, {-1.5, -2}, {0, -1.5}, {1.5, -2}, {0, 0}}
	m, err := Extrude(cape, 0.1)
	if err != nil {
		t.Fatalf("extrude: %v", err)
	}
	checkIndices(t, m)
	checkUnitNormals(t, m)

	// Two caps of n-2 triangles plus two per side.
	want := 2*(4-2) + 2*4
	if m.TriangleCount() != want {
		t.Errorf("expected %d triangles, got %d", want, m.TriangleCount())
	}
	if !near(m.Bounds.Max[2], 0.1) || m.Bounds.Min[2] != 0 {
		t.Errorf("unexpected depth bounds %v", m.Bounds)
	}
}
