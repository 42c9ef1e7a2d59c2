package story

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gotham-story/internal/engine/mesh"
	"github.com/Faultbox/gotham-story/internal/scene"
)

const (
	regularBuildings  = 30
	landmarkBuildings = 3
	criminalCount     = 5

	// windowOccupancy is the chance that a candidate window slot is lit.
	windowOccupancy = 0.7
	groundLevel     = -2
)

// EmblemShape is the bat outline used on the chest and on the widget cube.
var EmblemShape = mesh.Shape{{0, 0}, {0.3, 0.5}, {0.1, 0.4}, {0, 0.6}, {-0.1, 0.4}, {-0.3, 0.5}, {0, 0}}

var capeShape = mesh.Shape{{0, 0}, {-1.5, -2}, {0, -1.5}, {1.5, -2}, {0, 0}}

// Building is one generated background structure.
type Building struct {
	Node     *scene.Node
	Width    float32
	Height   float32
	Depth    float32
	Windows  int
	Landmark bool
}

// City is the generated skyline.
type City struct {
	Root      *scene.Node
	Buildings []*Building
}

// Criminal is a secondary actor circling its anchor.
type Criminal struct {
	Node   *scene.Node
	Anchor mgl32.Vec3
	Speed  float32
	Phase  float32
}

// BuildEmblem creates the main actor: body, wings, ears, chest symbol and cape.
func BuildEmblem() *scene.Node {
	armor := func() *scene.Material {
		m := scene.Standard(0x000000, 0.9, 0.1)
		m.Emissive = scene.Hex(0x111111)
		return m
	}

	root := scene.NewNode("emblem")

	body := scene.NewMeshNode("body",
		mesh.Sphere(1, 32, 32, mesh.SphereOptions{PhiLength: 2 * math.Pi, ThetaLength: math.Pi / 2}),
		armor())
	body.Scale = mgl32.Vec3{1, 0.5, 0.2}
	shadowed(body)
	root.Add(body)

	wing := mesh.Cone(0.5, 2, 4)
	wingMat := armor()
	for _, side := range []float32{-1, 1} {
		name := "wing_left"
		if side > 0 {
			name = "wing_right"
		}
		n := scene.NewMeshNode(name, wing, wingMat)
		n.Position = mgl32.Vec3{1.2 * side, 0.5, 0}
		n.Rotation = mgl32.Vec3{0, 0, -side * math.Pi / 4}
		shadowed(n)
		root.Add(n)
	}

	ear := mesh.Cylinder(0.05, 0.1, 0.8, 8)
	earMat := armor()
	for _, side := range []float32{-1, 1} {
		name := "ear_left"
		if side > 0 {
			name = "ear_right"
		}
		n := scene.NewMeshNode(name, ear, earMat)
		n.Position = mgl32.Vec3{0.3 * side, 1.2, 0}
		n.Rotation = mgl32.Vec3{0, 0, -side * math.Pi / 8}
		shadowed(n)
		root.Add(n)
	}

	// The outlines are fixed and valid, so extrusion cannot fail.
	symbolMesh, _ := mesh.Extrude(EmblemShape, 0.1)
	symbol := scene.NewMeshNode("symbol", symbolMesh, scene.Standard(0xffcc00, 0.8, 0.2))
	symbol.Position = mgl32.Vec3{-0.2, 0.1, 0.11}
	symbol.Scale = mgl32.Vec3{1.5, 1.5, 1.5}
	root.Add(symbol)

	capeMesh, _ := mesh.Extrude(capeShape, 0.1)
	capeMat := scene.Standard(0x000000, 0.7, 0.3)
	capeMat.DoubleSided = true
	cape := scene.NewMeshNode("cape", capeMesh, capeMat)
	cape.Position = mgl32.Vec3{0, -0.5, -0.1}
	cape.Rotation = mgl32.Vec3{math.Pi / 2, 0, 0}
	root.Add(cape)

	return root
}

// BuildCity creates the ground plane, 30 regular buildings with windows and
// 3 taller landmarks. Sizes and placement come from rng.
func BuildCity(rng *rand.Rand) *City {
	city := &City{Root: scene.NewNode("city")}

	ground := scene.NewMeshNode("ground", mesh.Plane(100, 100), scene.Standard(0x111111, 0.2, 0.8))
	ground.Rotation = mgl32.Vec3{-math.Pi / 2, 0, 0}
	ground.Position = mgl32.Vec3{0, groundLevel, 0}
	ground.ReceiveShadow = true
	city.Root.Add(ground)

	// Buildings share a unit box scaled per instance.
	unitBox := mesh.Box(1, 1, 1)
	window := mesh.Plane(0.1, 0.15)
	windowMat := scene.Basic(0x336699)
	windowMat.DoubleSided = true

	for i := 0; i < regularBuildings; i++ {
		height := rng.Float32()*5 + 1
		width := rng.Float32()*1 + 0.5
		depth := rng.Float32()*1 + 0.5

		group := scene.NewNode("building")
		block := scene.NewMeshNode("block", unitBox, scene.Standard(0x222222, 0.1, 0.8))
		block.Scale = mgl32.Vec3{width, height, depth}
		block.Position = mgl32.Vec3{0, height/2 + groundLevel, 0}
		shadowed(block)
		group.Add(block)

		b := &Building{Node: group, Width: width, Height: height, Depth: depth}

		floors := int(math.Floor(float64(height)))
		for floor := 0; floor < floors; floor++ {
			for slot := 0; slot < 4; slot++ {
				if rng.Float64() >= windowOccupancy {
					continue
				}
				w := scene.NewMeshNode("window", window, windowMat)
				placeWindow(w, slot, float32(floor)+1+groundLevel, width, depth)
				group.Add(w)
				b.Windows++
			}
		}

		group.Position = mgl32.Vec3{
			(rng.Float32() - 0.5) * 8,
			0,
			(rng.Float32()-0.5)*8 - 3,
		}
		city.Root.Add(group)
		city.Buildings = append(city.Buildings, b)
	}

	for i := 0; i < landmarkBuildings; i++ {
		height := rng.Float32()*10 + 5
		width := rng.Float32()*2 + 1
		depth := rng.Float32()*2 + 1

		n := scene.NewMeshNode("landmark", unitBox, scene.Standard(0x333333, 0.2, 0.7))
		n.Scale = mgl32.Vec3{width, height, depth}
		n.Position = mgl32.Vec3{
			(rng.Float32() - 0.5) * 40,
			height/2 + groundLevel,
			(rng.Float32()-0.5)*40 - 15,
		}
		shadowed(n)
		city.Root.Add(n)
		city.Buildings = append(city.Buildings, &Building{
			Node: n, Width: width, Height: height, Depth: depth, Landmark: true,
		})
	}

	return city
}

// placeWindow puts a window quad just outside one of the four walls.
// Slots 0 and 1 are the +X and -X walls, slots 2 and 3 the +Z and -Z walls.
func placeWindow(w *scene.Node, slot int, y, width, depth float32) {
	const inset = 0.01
	dir := float32(1)
	if slot%2 == 1 {
		dir = -1
	}
	if slot < 2 {
		w.Position = mgl32.Vec3{dir * (width/2 + inset), y, 0}
		w.Rotation = mgl32.Vec3{0, dir * math.Pi / 2, 0}
		return
	}
	w.Position = mgl32.Vec3{0, y, dir * (depth/2 + inset)}
	if dir < 0 {
		w.Rotation = mgl32.Vec3{0, math.Pi, 0}
	}
}

func shadowed(nodes ...*scene.Node) {
	for _, n := range nodes {
		n.CastShadow = true
		n.ReceiveShadow = true
	}
}

// BuildCriminals creates the secondary actors at random anchors.
func BuildCriminals(rng *rand.Rand) []*Criminal {
	body := mesh.Capsule(0.3, 0.8, 4, 8)
	head := mesh.Sphere(0.3, 16, 16, mesh.FullSphere)
	hood := mesh.Cone(0.35, 0.4, 8)

	bodyMat := scene.Standard(0x553333, 0.1, 0.7)
	headMat := scene.Standard(0x886666, 0.1, 0.7)
	hoodMat := scene.Standard(0x333333, 0.1, 0.8)

	criminals := make([]*Criminal, 0, criminalCount)
	for i := 0; i < criminalCount; i++ {
		root := scene.NewNode("criminal")
		b := scene.NewMeshNode("body", body, bodyMat)

		h := scene.NewMeshNode("head", head, headMat)
		h.Position = mgl32.Vec3{0, 0.8, 0}

		hat := scene.NewMeshNode("hood", hood, hoodMat)
		hat.Position = mgl32.Vec3{0, 1.0, 0}
		hat.Rotation = mgl32.Vec3{math.Pi, 0, 0}

		shadowed(b, h, hat)
		root.Add(b, h, hat)

		anchor := mgl32.Vec3{
			(rng.Float32() - 0.5) * 8,
			-1.5,
			(rng.Float32()-0.5)*8 - 3,
		}
		root.Position = anchor

		criminals = append(criminals, &Criminal{
			Node:   root,
			Anchor: anchor,
			Speed:  rng.Float32()*0.02 + 0.01,
			Phase:  rng.Float32() * 2 * math.Pi,
		})
	}
	return criminals
}
