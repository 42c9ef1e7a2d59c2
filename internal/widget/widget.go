// Package widget implements the interactive cube shown in the page panel.
package widget

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/engine/camera"
	"github.com/Faultbox/gotham-story/internal/engine/mesh"
	"github.com/Faultbox/gotham-story/internal/logger"
	"github.com/Faultbox/gotham-story/internal/scene"
	"github.com/Faultbox/gotham-story/internal/story"
	"github.com/Faultbox/gotham-story/internal/tween"
)

// Button labels for the glow toggle.
const (
	GlowLabel = "Glow Cube"
	HideLabel = "Hide Glow"
)

// Tween keys for the animated cube properties.
const (
	EmissiveKey = "cube.emissive"
	LogoKey     = "logo.color"
	ScaleKey    = "cube.scale"
)

const (
	fadeDuration = 500 * time.Millisecond
	pulseScale   = 1.1
)

var (
	glowEmissive = mgl32.Vec3{1, 0.8, 0}
	glowLogo     = mgl32.Vec3{1, 1, 0}
	restEmissive = mgl32.Vec3{0, 0, 0}
	restLogo     = scene.Hex(0xffcc00)
)

// Widget is a cube with the emblem on its front face, rendered in its own
// scene with its own camera and controls.
type Widget struct {
	Scene    *scene.Scene
	Camera   *scene.Camera
	Controls *camera.OrbitControls

	Cube *scene.Node
	Logo *scene.Node

	glowing bool
	tweens  *tween.Registry
	log     *zap.Logger
}

// New builds the widget scene. Animations run on tweens.
func New(tweens *tween.Registry) (*Widget, error) {
	if tweens == nil {
		tweens = tween.NewRegistry()
	}

	logoMesh, err := mesh.Flat(story.EmblemShape)
	if err != nil {
		return nil, fmt.Errorf("building logo: %w", err)
	}

	w := &Widget{
		tweens: tweens,
		log:    logger.Named("widget"),
	}

	w.Scene = scene.New("cube")
	w.Scene.Background = scene.Hex(0x000000)
	w.Scene.Transparent = true
	w.Scene.Ambient = scene.AmbientLight{Color: scene.Hex(0x404040), Intensity: 1}
	w.Scene.Directional = []*scene.DirectionalLight{
		{Color: scene.Hex(0xffcc00), Intensity: 1, Position: mgl32.Vec3{5, 5, 5}},
	}

	w.Camera = scene.NewCamera(75, 1, 0.1, 1000)
	w.Camera.Position = mgl32.Vec3{0, 0, 5}

	w.Controls = camera.NewOrbitControls()

	cubeMat := scene.Standard(0x000000, 0.7, 0.3)
	cubeMat.Emissive = restEmissive
	w.Cube = scene.NewMeshNode("cube", mesh.Box(2, 2, 2), cubeMat)

	logoMat := scene.Basic(0xffcc00)
	logoMat.DoubleSided = true
	w.Logo = scene.NewMeshNode("logo", logoMesh, logoMat)
	w.Logo.Position = mgl32.Vec3{0, 0, 1.01}
	w.Logo.Scale = mgl32.Vec3{2, 2, 2}

	w.Cube.Add(w.Logo)
	w.Scene.Add(w.Cube)

	return w, nil
}

// Glowing reports whether the glow is on.
func (w *Widget) Glowing() bool {
	return w.glowing
}

// Label returns the text for the toggle control.
func (w *Widget) Label() string {
	if w.glowing {
		return HideLabel
	}
	return GlowLabel
}

// Toggle fades the glow in or out. Turning it on also starts an endless
// pulse; turning it off stops the pulse and eases the scale back to 1.
// Every fade starts from the current values, so toggling mid-fade reverses
// smoothly.
func (w *Widget) Toggle() {
	if !w.glowing {
		w.fadeEmissive(glowEmissive)
		w.fadeLogo(glowLogo)
		w.tweens.Start(ScaleKey, &tween.Tween{
			From:     []float32{w.Cube.Scale.X()},
			To:       []float32{pulseScale},
			Duration: fadeDuration,
			Ease:     tween.SineInOut,
			Yoyo:     true,
			Repeat:   tween.Forever,
			Apply:    w.setScale,
		})
	} else {
		w.fadeEmissive(restEmissive)
		w.fadeLogo(restLogo)
		w.tweens.Cancel(ScaleKey)
		w.tweens.Start(ScaleKey, &tween.Tween{
			From:     []float32{w.Cube.Scale.X()},
			To:       []float32{1},
			Duration: fadeDuration,
			Ease:     tween.Power2Out,
			Apply:    w.setScale,
		})
	}

	w.glowing = !w.glowing
	w.log.Debug("glow toggled", zap.Bool("glowing", w.glowing))
}

func (w *Widget) fadeEmissive(to mgl32.Vec3) {
	mat := w.Cube.Material
	w.tweens.Start(EmissiveKey, fadeVec3(mat.Emissive, to, func(v mgl32.Vec3) {
		mat.Emissive = v
	}))
}

func (w *Widget) fadeLogo(to mgl32.Vec3) {
	mat := w.Logo.Material
	w.tweens.Start(LogoKey, fadeVec3(mat.Color, to, func(v mgl32.Vec3) {
		mat.Color = v
	}))
}

func (w *Widget) setScale(v []float32) {
	w.Cube.Scale = mgl32.Vec3{v[0], v[0], v[0]}
}

func fadeVec3(from, to mgl32.Vec3, set func(mgl32.Vec3)) *tween.Tween {
	return &tween.Tween{
		From:     from[:],
		To:       to[:],
		Duration: fadeDuration,
		Ease:     tween.Power2Out,
		Apply: func(v []float32) {
			set(mgl32.Vec3{v[0], v[1], v[2]})
		},
	}
}

// Update advances the widget's orbit controls.
func (w *Widget) Update() {
	w.Controls.Update(w.Camera)
}

// Resize updates the widget camera for a panel of the given size.
func (w *Widget) Resize(width, height int) {
	w.Camera.SetAspect(width, height)
}
