// Package camera provides orbit controls for perspective cameras.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gotham-story/internal/scene"
)

const (
	// Pitch stays this far away from the poles to keep LookAt well defined.
	poleEpsilon = 1e-3
	// Auto-rotation speed 1.0 completes an orbit in 60 seconds at 60 fps.
	autoRotateBase = 2 * gomath.Pi / 60 / 60
)

// OrbitControls orbits a camera around Target.
//
// Rotation, pan and zoom requests accumulate as deltas that Update applies. With
// damping enabled the deltas decay over several frames instead of applying
// at once.
type OrbitControls struct {
	Target mgl32.Vec3

	EnableDamping   bool
	DampingFactor   float32
	EnableZoom      bool
	EnablePan       bool
	AutoRotate      bool
	AutoRotateSpeed float32

	MinDistance float32
	MaxDistance float32

	// Radians per pixel of drag.
	RotateSensitivity float32
	// Fractional distance change per wheel step.
	ZoomSensitivity float32

	thetaDelta float32
	phiDelta   float32
	scale      float32
	// Pan request as fractions of the viewport height.
	panX, panY float32
	panOffset  mgl32.Vec3
}

// NewOrbitControls creates controls with the same defaults as the page's
// orbit controls.
func NewOrbitControls() *OrbitControls {
	return &OrbitControls{
		EnableDamping:     true,
		DampingFactor:     0.05,
		EnableZoom:        true,
		MinDistance:       0,
		MaxDistance:       gomath.MaxFloat32,
		RotateSensitivity: 2 * gomath.Pi / 720,
		ZoomSensitivity:   0.05,
		scale:             1,
	}
}

// HandleDrag queues a rotation from a mouse drag delta in pixels.
func (c *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	c.thetaDelta -= deltaX * c.RotateSensitivity
	c.phiDelta -= deltaY * c.RotateSensitivity
}

// HandlePan queues a truck of the target and camera from a drag delta in
// pixels. viewportHeight is the height of the view being dragged; a drag
// across its full height moves the target by the visible extent at the
// target's distance.
func (c *OrbitControls) HandlePan(deltaX, deltaY, viewportHeight float32) {
	if !c.EnablePan || viewportHeight <= 0 {
		return
	}
	c.panX += deltaX / viewportHeight
	c.panY += deltaY / viewportHeight
}

// HandleZoom queues a dolly from a wheel delta; positive zooms in.
func (c *OrbitControls) HandleZoom(delta float32) {
	if !c.EnableZoom || delta == 0 {
		return
	}
	factor := float32(gomath.Pow(float64(1-c.ZoomSensitivity), float64(delta)))
	c.scale *= factor
}

// Update moves cam around the target by the pending deltas and points it at
// the target.
func (c *OrbitControls) Update(cam *scene.Camera) {
	offset := cam.Position.Sub(c.Target)
	radius, theta, phi := toSpherical(offset)
	c.queuePan(cam, offset, radius)

	if c.AutoRotate {
		c.thetaDelta -= float32(autoRotateBase) * c.AutoRotateSpeed
	}

	if c.EnableDamping {
		theta += c.thetaDelta * c.DampingFactor
		phi += c.phiDelta * c.DampingFactor
	} else {
		theta += c.thetaDelta
		phi += c.phiDelta
	}
	phi = clamp(phi, poleEpsilon, gomath.Pi-poleEpsilon)

	radius = clamp(radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	cam.Position = c.Target.Add(fromSpherical(radius, theta, phi))
	cam.Target = c.Target

	if c.EnableDamping {
		c.thetaDelta *= 1 - c.DampingFactor
		c.phiDelta *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.thetaDelta = 0
		c.phiDelta = 0
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1
}

// Reset drops any pending motion, e.g. after the camera was placed explicitly.
func (c *OrbitControls) Reset() {
	c.thetaDelta = 0
	c.phiDelta = 0
	c.scale = 1
	c.panX, c.panY = 0, 0
	c.panOffset = mgl32.Vec3{}
}

// queuePan turns the pending screen-space pan into a world offset along the
// camera's right and up axes.
func (c *OrbitControls) queuePan(cam *scene.Camera, offset mgl32.Vec3, radius float32) {
	if c.panX == 0 && c.panY == 0 {
		return
	}
	defer func() { c.panX, c.panY = 0, 0 }()
	if radius == 0 {
		return
	}
	forward := offset.Mul(-1 / radius)
	up := cam.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	right := forward.Cross(up)
	if right.Len() < 1e-6 {
		return
	}
	right = right.Normalize()
	camUp := right.Cross(forward)

	extent := 2 * radius * float32(gomath.Tan(float64(mgl32.DegToRad(cam.FovY))/2))
	c.panOffset = c.panOffset.
		Add(right.Mul(-c.panX * extent)).
		Add(camUp.Mul(c.panY * extent))
}

// toSpherical converts an offset to radius, azimuth around +Y (from +Z) and
// polar angle from +Y.
func toSpherical(v mgl32.Vec3) (radius, theta, phi float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, gomath.Pi / 2
	}
	theta = float32(gomath.Atan2(float64(v.X()), float64(v.Z())))
	phi = float32(gomath.Acos(float64(clamp(v.Y()/radius, -1, 1))))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float32) mgl32.Vec3 {
	sinPhi := float32(gomath.Sin(float64(phi)))
	return mgl32.Vec3{
		radius * sinPhi * float32(gomath.Sin(float64(theta))),
		radius * float32(gomath.Cos(float64(phi))),
		radius * sinPhi * float32(gomath.Cos(float64(theta))),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
