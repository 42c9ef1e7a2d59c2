package mesh

import "math"

// Box creates a box centered at the origin.
func Box(width, height, depth float32) *Mesh {
	b := newBuilder("box", 24)
	hw, hh, hd := width/2, height/2, depth/2

	// Each face: normal plus its four corners in counter-clockwise order.
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, f := range faces {
		base := uint32(len(b.vertices))
		for i, c := range f.corners {
			b.vertex(c, f.normal, uvs[i])
		}
		b.triangle(base, base+1, base+2)
		b.triangle(base, base+2, base+3)
	}
	return b.build()
}

// Plane creates a quad in the XY plane facing +Z.
func Plane(width, height float32) *Mesh {
	b := newBuilder("plane", 4)
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	b.vertex([3]float32{-hw, -hh, 0}, n, [2]float32{0, 0})
	b.vertex([3]float32{hw, -hh, 0}, n, [2]float32{1, 0})
	b.vertex([3]float32{hw, hh, 0}, n, [2]float32{1, 1})
	b.vertex([3]float32{-hw, hh, 0}, n, [2]float32{0, 1})
	b.triangle(0, 1, 2)
	b.triangle(0, 2, 3)
	return b.build()
}

// SphereOptions limits a sphere to a partial range of angles (radians).
// Phi sweeps around the Y axis, theta sweeps down from the +Y pole.
type SphereOptions struct {
	PhiStart, PhiLength     float64
	ThetaStart, ThetaLength float64
}

// FullSphere covers the whole sphere.
var FullSphere = SphereOptions{PhiLength: 2 * math.Pi, ThetaLength: math.Pi}

// Sphere creates a (possibly partial) UV sphere.
func Sphere(radius float32, widthSegments, heightSegments int, opts SphereOptions) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	b := newBuilder("sphere", (widthSegments+1)*(heightSegments+1))
	r := float64(radius)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := opts.ThetaStart + v*opts.ThetaLength
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := opts.PhiStart + u*opts.PhiLength

			nx := -math.Cos(phi) * math.Sin(theta)
			ny := math.Cos(theta)
			nz := math.Sin(phi) * math.Sin(theta)

			b.vertex(
				[3]float32{float32(nx * r), float32(ny * r), float32(nz * r)},
				[3]float32{float32(nx), float32(ny), float32(nz)},
				[2]float32{float32(u), float32(1 - v)},
			)
		}
	}

	stride := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			c := uint32(iy)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix)
			e := uint32(iy+1)*stride + uint32(ix) + 1
			b.triangle(a, c, e)
			b.triangle(c, d, e)
		}
	}
	return b.build()
}

// Cylinder creates a capped cylinder along the Y axis centered at the origin.
// A zero top radius yields a cone.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}

	b := newBuilder("cylinder", (radialSegments+1)*4+2)
	hh := height / 2
	slope := float64((radiusBottom - radiusTop) / height)

	// Side wall: two rings sharing angle-dependent normals.
	for ring := 0; ring < 2; ring++ {
		y, radius := hh, radiusTop
		if ring == 1 {
			y, radius = -hh, radiusBottom
		}
		for i := 0; i <= radialSegments; i++ {
			u := float64(i) / float64(radialSegments)
			theta := u * 2 * math.Pi
			sin, cos := math.Sin(theta), math.Cos(theta)

			n := normalize([3]float64{sin, slope, cos})
			b.vertex(
				[3]float32{radius * float32(sin), y, radius * float32(cos)},
				[3]float32{float32(n[0]), float32(n[1]), float32(n[2])},
				[2]float32{float32(u), float32(1 - ring)},
			)
		}
	}
	stride := uint32(radialSegments + 1)
	for i := uint32(0); i < uint32(radialSegments); i++ {
		top, bottom := i, stride+i
		b.triangle(top, bottom, bottom+1)
		b.triangle(top, bottom+1, top+1)
	}

	if radiusTop > 0 {
		disc(b, hh, radiusTop, radialSegments, 1)
	}
	if radiusBottom > 0 {
		disc(b, -hh, radiusBottom, radialSegments, -1)
	}
	return b.build()
}

// Cone creates a cone with its apex on +Y.
func Cone(radius, height float32, radialSegments int) *Mesh {
	m := Cylinder(0, radius, height, radialSegments)
	m.Name = "cone"
	return m
}

func disc(b *builder, y, radius float32, segments int, sign float32) {
	n := [3]float32{0, sign, 0}
	center := b.vertex([3]float32{0, y, 0}, n, [2]float32{0.5, 0.5})
	first := uint32(len(b.vertices))
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))
		b.vertex([3]float32{radius * sin, y, radius * cos}, n, [2]float32{cos*0.5 + 0.5, sin*0.5*sign + 0.5})
	}
	for i := uint32(0); i < uint32(segments); i++ {
		if sign > 0 {
			b.triangle(center, first+i, first+i+1)
		} else {
			b.triangle(center, first+i+1, first+i)
		}
	}
}

// Capsule creates a cylinder of the given length capped by two hemispheres.
func Capsule(radius, length float32, capSegments, radialSegments int) *Mesh {
	if capSegments < 1 {
		capSegments = 1
	}
	if radialSegments < 3 {
		radialSegments = 3
	}

	half := float64(length) / 2
	r := float64(radius)

	// Profile rings from the bottom pole to the top pole. Each entry is the
	// latitude angle and the Y offset of its hemisphere center.
	type ring struct {
		lat     float64
		centerY float64
	}
	var rings []ring
	for i := 0; i <= capSegments; i++ {
		rings = append(rings, ring{-math.Pi/2 + float64(i)/float64(capSegments)*math.Pi/2, -half})
	}
	for i := 0; i <= capSegments; i++ {
		rings = append(rings, ring{float64(i) / float64(capSegments) * math.Pi / 2, half})
	}

	b := newBuilder("capsule", len(rings)*(radialSegments+1))
	total := float64(length) + 2*r
	for _, rg := range rings {
		cosLat, sinLat := math.Cos(rg.lat), math.Sin(rg.lat)
		y := rg.centerY + r*sinLat
		for i := 0; i <= radialSegments; i++ {
			u := float64(i) / float64(radialSegments)
			theta := u * 2 * math.Pi
			nx := cosLat * math.Sin(theta)
			nz := cosLat * math.Cos(theta)
			b.vertex(
				[3]float32{float32(nx * r), float32(y), float32(nz * r)},
				[3]float32{float32(nx), float32(sinLat), float32(nz)},
				[2]float32{float32(u), float32((y + total/2) / total)},
			)
		}
	}

	stride := uint32(radialSegments + 1)
	for j := uint32(0); j+1 < uint32(len(rings)); j++ {
		for i := uint32(0); i < uint32(radialSegments); i++ {
			lower := j*stride + i
			upper := (j+1)*stride + i
			b.triangle(lower, lower+1, upper+1)
			b.triangle(lower, upper+1, upper)
		}
	}
	return b.build()
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}
