package mesh

import "errors"

// ErrDegenerateShape is returned for outlines that cannot be triangulated.
var ErrDegenerateShape = errors.New("mesh: degenerate shape")

// Point2 is a point of a 2D outline.
type Point2 [2]float32

// Shape is a closed 2D outline. A trailing point equal to the first is ignored.
type Shape []Point2

// points returns the outline without the closing duplicate, counter-clockwise.
func (s Shape) points() []Point2 {
	pts := []Point2(s)
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	out := append([]Point2(nil), pts...)
	if signedArea(out) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Area returns the unsigned area enclosed by the outline.
func (s Shape) Area() float32 {
	a := signedArea(s.points())
	if a < 0 {
		return -a
	}
	return a
}

func signedArea(pts []Point2) float32 {
	var sum float32
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return sum / 2
}

// Triangulate splits a simple counter-clockwise polygon into triangles by ear
// clipping. Returned indices refer to pts.
func Triangulate(pts []Point2) ([]uint32, error) {
	n := len(pts)
	if n < 3 {
		return nil, ErrDegenerateShape
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	var indices []uint32
	for len(remaining) > 3 {
		clipped := false
		for i := range remaining {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			curr := remaining[i]
			next := remaining[(i+1)%len(remaining)]

			if !isEar(pts, remaining, prev, curr, next) {
				continue
			}
			indices = append(indices, uint32(prev), uint32(curr), uint32(next))
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, ErrDegenerateShape
		}
	}
	indices = append(indices, uint32(remaining[0]), uint32(remaining[1]), uint32(remaining[2]))
	return indices, nil
}

func isEar(pts []Point2, remaining []int, prev, curr, next int) bool {
	a, b, c := pts[prev], pts[curr], pts[next]
	if cross(a, b, c) <= 0 {
		return false // reflex or collinear
	}
	for _, idx := range remaining {
		if idx == prev || idx == curr || idx == next {
			continue
		}
		if pointInTriangle(pts[idx], a, b, c) {
			return false
		}
	}
	return true
}

func cross(a, b, c Point2) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func pointInTriangle(p, a, b, c Point2) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

// Flat creates a single-sided mesh of the outline in the XY plane facing +Z.
func Flat(shape Shape) (*Mesh, error) {
	pts := shape.points()
	tris, err := Triangulate(pts)
	if err != nil {
		return nil, err
	}

	b := newBuilder("shape", len(pts))
	n := [3]float32{0, 0, 1}
	for _, p := range pts {
		b.vertex([3]float32{p[0], p[1], 0}, n, [2]float32{p[0], p[1]})
	}
	b.indices = append(b.indices, tris...)
	return b.build(), nil
}

// Extrude sweeps the outline from z=0 to z=depth, producing front and back
// caps plus side walls with outward normals.
func Extrude(shape Shape, depth float32) (*Mesh, error) {
	pts := shape.points()
	tris, err := Triangulate(pts)
	if err != nil {
		return nil, err
	}

	b := newBuilder("extrude", len(pts)*6)

	// Front cap at z=depth.
	front := uint32(len(b.vertices))
	for _, p := range pts {
		b.vertex([3]float32{p[0], p[1], depth}, [3]float32{0, 0, 1}, [2]float32{p[0], p[1]})
	}
	for i := 0; i < len(tris); i += 3 {
		b.triangle(front+tris[i], front+tris[i+1], front+tris[i+2])
	}

	// Back cap at z=0 with reversed winding.
	back := uint32(len(b.vertices))
	for _, p := range pts {
		b.vertex([3]float32{p[0], p[1], 0}, [3]float32{0, 0, -1}, [2]float32{p[0], p[1]})
	}
	for i := 0; i < len(tris); i += 3 {
		b.triangle(back+tris[i], back+tris[i+2], back+tris[i+1])
	}

	// Side walls, one flat-shaded quad per edge.
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		edge := normalize([3]float64{float64(q[0] - p[0]), float64(q[1] - p[1]), 0})
		// Outward normal of a counter-clockwise outline points right of the edge.
		n := [3]float32{float32(edge[1]), float32(-edge[0]), 0}

		base := uint32(len(b.vertices))
		b.vertex([3]float32{p[0], p[1], 0}, n, [2]float32{0, 0})
		b.vertex([3]float32{q[0], q[1], 0}, n, [2]float32{1, 0})
		b.vertex([3]float32{q[0], q[1], depth}, n, [2]float32{1, 1})
		b.vertex([3]float32{p[0], p[1], depth}, n, [2]float32{0, 1})
		b.triangle(base, base+1, base+2)
		b.triangle(base, base+2, base+3)
	}

	return b.build(), nil
}
