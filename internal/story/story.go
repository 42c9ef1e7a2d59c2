// Package story drives the scroll-driven main scene: it builds the scene,
// maps page sections to camera, light and actor configurations, and animates
// the actors every frame.
package story

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/engine/camera"
	"github.com/Faultbox/gotham-story/internal/logger"
	"github.com/Faultbox/gotham-story/internal/scene"
	"github.com/Faultbox/gotham-story/internal/tween"
)

const (
	// PoseTweenKey identifies the actor pose tween in the registry.
	PoseTweenKey = "actor.pose"

	jumpDuration   = 1000 * time.Millisecond
	signalDuration = 5 * time.Second
)

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

// Options configures a Story.
type Options struct {
	Sections []SectionConfig
	Rand     *rand.Rand
	Clock    Clock
	Tweens   *tween.Registry
	Drift    DriftMode

	// OnSectionChange runs after a section has been applied.
	OnSectionChange func(index int, section SectionConfig)
	// OnSignal runs when the signal is activated.
	OnSignal func()
}

// Story owns the main scene and all state mutated by transitions and frames.
type Story struct {
	Scene    *scene.Scene
	Camera   *scene.Camera
	Controls *camera.OrbitControls

	Actor     *scene.Node
	Cape      *scene.Node
	City      *City
	Criminals []*Criminal

	Primary *scene.DirectionalLight
	Fill    *scene.DirectionalLight

	sections []SectionConfig
	current  int
	fighting bool

	fightStart  time.Time
	lastFight   float64
	lastElapsed float64
	signalUntil time.Time

	clock  Clock
	tweens *tween.Registry
	drift  DriftMode
	log    *zap.Logger

	onSectionChange func(int, SectionConfig)
	onSignal        func()
}

// New builds the scene and applies the first section.
func New(opts Options) (*Story, error) {
	if opts.Sections == nil {
		opts.Sections = DefaultSections()
	}
	if err := ValidateSections(opts.Sections); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Tweens == nil {
		opts.Tweens = tween.NewRegistry()
	}
	if opts.Drift == "" {
		opts.Drift = DriftBaseline
	}
	if _, err := ParseDriftMode(string(opts.Drift)); err != nil {
		return nil, err
	}

	s := &Story{
		sections:        opts.Sections,
		clock:           opts.Clock,
		tweens:          opts.Tweens,
		drift:           opts.Drift,
		log:             logger.Named("story"),
		onSectionChange: opts.OnSectionChange,
		onSignal:        opts.OnSignal,
	}

	s.setupScene()
	s.setupCamera()

	s.Actor = BuildEmblem()
	s.Cape = s.Actor.Find("cape")
	s.City = BuildCity(opts.Rand)
	s.Criminals = BuildCriminals(opts.Rand)

	s.Scene.Add(s.Actor, s.City.Root)
	for _, c := range s.Criminals {
		s.Scene.Add(c.Node)
	}

	s.log.Info("scene built",
		zap.Int("buildings", len(s.City.Buildings)),
		zap.Int("criminals", len(s.Criminals)),
		zap.Int("nodes", s.Scene.Root.Count()),
		zap.String("drift", string(s.drift)),
	)

	s.ApplySection(0)
	return s, nil
}

func (s *Story) setupScene() {
	s.Scene = scene.New("gotham")
	s.Scene.Background = scene.Hex(0x000000)
	s.Scene.Fog = scene.Fog{Enabled: true, Color: scene.Hex(0x000000), Near: 10, Far: 20}
	s.Scene.Ambient = scene.AmbientLight{Color: scene.Hex(0x404040), Intensity: 0.7}

	s.Primary = &scene.DirectionalLight{Color: scene.Hex(0xffcc00), Intensity: 1.3, Position: mgl32.Vec3{5, 10, 7}}
	s.Primary.Shadow = &scene.ShadowCamera{
		MapSize: 2048,
		Left:    -10, Right: 10, Bottom: -10, Top: 10,
		Near: 0.5, Far: 50,
	}
	s.Fill = &scene.DirectionalLight{Color: scene.Hex(0xffffff), Intensity: 0.3, Position: mgl32.Vec3{-5, 3, -5}}
	s.Scene.Directional = []*scene.DirectionalLight{s.Primary, s.Fill}
	s.Scene.Hemisphere = &scene.HemisphereLight{Sky: scene.Hex(0xffcc00), Ground: scene.Hex(0x000000), Intensity: 0.2}
}

func (s *Story) setupCamera() {
	s.Camera = scene.NewCamera(75, 1, 0.1, 1000)
	s.Camera.Position = mgl32.Vec3{0, 3, 8}

	s.Controls = camera.NewOrbitControls()
	s.Controls.MinDistance = 3
	s.Controls.MaxDistance = 20
	s.Controls.EnablePan = true
	s.Controls.AutoRotate = true
	s.Controls.AutoRotateSpeed = 0.8
}

// Sections returns the section table.
func (s *Story) Sections() []SectionConfig {
	return s.sections
}

// Current returns the index of the active section.
func (s *Story) Current() int {
	return s.current
}

// CurrentSection returns the active section configuration.
func (s *Story) CurrentSection() SectionConfig {
	return s.sections[s.current]
}

// Fighting reports whether the active section is in fighting mode.
func (s *Story) Fighting() bool {
	return s.fighting
}

// SetSection applies index only if it differs from the active section.
// Reports whether a transition happened.
func (s *Story) SetSection(index int) bool {
	index = s.clampIndex(index)
	if index == s.current {
		return false
	}
	s.ApplySection(index)
	return true
}

// ApplySection writes the section's actor pose, camera, lights, controls,
// criminal visibility and fighting flag onto the live scene.
func (s *Story) ApplySection(index int) {
	index = s.clampIndex(index)
	cfg := s.sections[index]

	s.Actor.Position = cfg.ActorPosition
	s.Actor.Rotation = cfg.ActorRotation

	s.Camera.Position = cfg.CameraPosition
	s.Camera.Target = cfg.CameraLookAt
	s.Controls.Target = cfg.CameraLookAt
	s.Controls.AutoRotate = cfg.AutoRotate
	s.Controls.AutoRotateSpeed = cfg.AutoRotateSpeed
	s.Controls.Reset()

	s.Primary.Color = scene.Hex(uint32(cfg.LightColor))
	s.Primary.Intensity = cfg.LightIntensity
	s.Scene.Ambient.Intensity = cfg.AmbientIntensity

	for _, c := range s.Criminals {
		c.Node.Visible = cfg.ShowCriminals
	}

	s.fighting = cfg.Fighting
	if s.fighting {
		s.fightStart = s.clock.Now()
		s.lastFight = 0
	}

	s.current = index
	s.log.Debug("section applied",
		zap.Int("index", index),
		zap.String("name", cfg.Name),
		zap.Bool("fighting", cfg.Fighting),
	)

	if s.onSectionChange != nil {
		s.onSectionChange(index, cfg)
	}
}

func (s *Story) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index >= len(s.sections) {
		return len(s.sections) - 1
	}
	return index
}

// ActivateSignal lights the signal beacon, tweens the actor into the fight
// pose and switches to the last section immediately.
func (s *Story) ActivateSignal() {
	now := s.clock.Now()
	s.signalUntil = now.Add(signalDuration)
	if s.onSignal != nil {
		s.onSignal()
	}

	startPos := s.Actor.Position
	startRot := s.Actor.Rotation
	targetRot := mgl32.Vec3{0, math.Pi, 0}

	s.tweens.Start(PoseTweenKey, &tween.Tween{
		From:     []float32{startPos[0], startPos[1], startPos[2], startRot[0], startRot[1], startRot[2]},
		To:       []float32{0, 0, 0, targetRot[0], targetRot[1], targetRot[2]},
		Duration: jumpDuration,
		Ease:     tween.CubicInOut,
		Apply: func(v []float32) {
			s.Actor.Position = mgl32.Vec3{v[0], v[1], v[2]}
			s.Actor.Rotation = mgl32.Vec3{v[3], v[4], v[5]}
		},
	})

	s.log.Info("signal activated")
	s.ApplySection(len(s.sections) - 1)
}

// SignalActive reports whether the signal beacon is lit.
func (s *Story) SignalActive() bool {
	return s.clock.Now().Before(s.signalUntil)
}

// Resize updates the main camera for a viewport of the given size.
func (s *Story) Resize(width, height int) {
	s.Camera.SetAspect(width, height)
}

// String describes the active section for logs and window titles.
func (s *Story) String() string {
	return fmt.Sprintf("%d/%d %s", s.current+1, len(s.sections), s.sections[s.current].Name)
}
