package scene

import "github.com/go-gl/mathgl/mgl32"

// AmbientLight lights everything uniformly.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3

	// Shadow is nil for lights that cast no shadows.
	Shadow *ShadowCamera
}

// ShadowCamera is the orthographic volume, in light view space, that a
// directional light renders its shadow map from.
type ShadowCamera struct {
	MapSize                  int32
	Left, Right, Bottom, Top float32
	Near, Far                float32
}

// Direction returns the unit vector pointing from the scene towards the light.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}

// HemisphereLight blends between a sky and ground color by surface normal.
type HemisphereLight struct {
	Sky       mgl32.Vec3
	Ground    mgl32.Vec3
	Intensity float32
}

// Fog fades geometry linearly into Color between Near and Far.
type Fog struct {
	Enabled bool
	Color   mgl32.Vec3
	Near    float32
	Far     float32
}

// Scene is a renderable graph with its lighting environment.
type Scene struct {
	Root       *Node
	Background mgl32.Vec3
	// Transparent scenes do not clear their viewport to Background.
	Transparent bool
	Fog         Fog

	Ambient     AmbientLight
	Directional []*DirectionalLight
	Hemisphere  *HemisphereLight
}

// New creates an empty scene with a black background.
func New(name string) *Scene {
	return &Scene{
		Root: NewNode(name),
	}
}

// ShadowCaster returns the first directional light that casts shadows.
func (s *Scene) ShadowCaster() *DirectionalLight {
	for _, l := range s.Directional {
		if l.Shadow != nil {
			return l
		}
	}
	return nil
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}
