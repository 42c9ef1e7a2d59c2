package scene

import "github.com/go-gl/mathgl/mgl32"

// Material describes how a mesh is shaded.
type Material struct {
	Color     mgl32.Vec3
	Emissive  mgl32.Vec3
	Metalness float32
	Roughness float32

	// Unlit materials ignore lighting and draw their flat color.
	Unlit bool
	// DoubleSided materials are lit from both faces.
	DoubleSided bool
}

// Standard creates a lit material.
func Standard(color uint32, metalness, roughness float32) *Material {
	return &Material{
		Color:     Hex(color),
		Metalness: metalness,
		Roughness: roughness,
	}
}

// Basic creates an unlit material.
func Basic(color uint32) *Material {
	return &Material{
		Color:     Hex(color),
		Unlit:     true,
		Roughness: 1,
	}
}

// Hex converts a 0xRRGGBB value to RGB components in [0, 1].
func Hex(c uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}
