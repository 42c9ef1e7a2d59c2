package shadow

import "github.com/go-gl/mathgl/mgl32"

// Ortho is an orthographic shadow volume in light view space.
type Ortho struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
}

// LightMatrix computes the light view-projection for a directional light
// placed at lightPos and aimed at target.
func LightMatrix(lightPos, target mgl32.Vec3, o Ortho) mgl32.Mat4 {
	dir := lightPos.Sub(target)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 1, 0}
	}

	// Avoid an up vector parallel to the light direction.
	up := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Normalize().Y()) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	view := mgl32.LookAtV(lightPos, target, up)
	proj := mgl32.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
	return proj.Mul4(view)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
