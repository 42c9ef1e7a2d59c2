// Package app wires the main story scene, the cube widget and the page
// column into one window and drives them from the frame loop.
package app

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/engine/input"
	"github.com/Faultbox/gotham-story/internal/engine/loop"
	"github.com/Faultbox/gotham-story/internal/logger"
	"github.com/Faultbox/gotham-story/internal/page"
	"github.com/Faultbox/gotham-story/internal/scene"
	"github.com/Faultbox/gotham-story/internal/story"
	"github.com/Faultbox/gotham-story/internal/tween"
	"github.com/Faultbox/gotham-story/internal/widget"
)

// Title is the window title prefix.
const Title = "Gotham Story"

// ErrQuit is returned from Frame when the user asked to close the window.
var ErrQuit = errors.New("quit requested")

// Window is the platform surface the app draws into.
type Window interface {
	// Poll replaces in's events with the pending ones and reports a close request.
	Poll(in *input.Input) bool
	SwapBuffers()
	DrawableSize() (int, int)
	SetTitle(title string)
}

// SceneRenderer draws scene graphs into parts of the drawable.
type SceneRenderer interface {
	BeginFrame(width, height int, color mgl32.Vec3)
	RenderScene(sc *scene.Scene, cam *scene.Camera, area image.Rectangle)
}

// OverlayRenderer batches 2D page draws between Begin and End.
type OverlayRenderer interface {
	page.Overlay
	Begin(width, height int)
	End()
}

// Siren plays the signal cue and can be muted.
type Siren interface {
	PlaySiren() error
	SetMuted(muted bool)
	Muted() bool
}

// Screenshotter saves the current frame.
type Screenshotter interface {
	Capture(width, height int) (string, error)
}

// Options configures an App. Window, Scenes and Overlay are required.
type Options struct {
	Window  Window
	Scenes  SceneRenderer
	Overlay OverlayRenderer

	// Optional collaborators.
	Siren       Siren
	Screenshots Screenshotter

	Sections []story.SectionConfig
	Rand     *rand.Rand
	Clock    story.Clock
	Drift    story.DriftMode

	QuietPeriod time.Duration
	WheelStep   float64
	Controls    page.Controls
}

// App is the running page.
type App struct {
	Story  *story.Story
	Widget *widget.Widget
	Mapper *story.ScrollMapper
	Tweens *tween.Registry

	window      Window
	scenes      SceneRenderer
	overlay     OverlayRenderer
	siren       Siren
	screenshots Screenshotter

	clock    story.Clock
	input    *input.Input
	layout   page.Layout
	controls page.Controls
	painter  *page.Painter

	drag      page.Region
	pan       page.Region
	pressed   page.ButtonID
	quit      bool
	wantShot  bool
	lastTitle string

	log *zap.Logger
}

// New builds both scenes and lays them out for the window's current size.
func New(opts Options) (*App, error) {
	if opts.Window == nil || opts.Scenes == nil || opts.Overlay == nil {
		return nil, errors.New("app: window and renderers are required")
	}
	if opts.Clock == nil {
		opts.Clock = story.SystemClock
	}
	if opts.QuietPeriod == 0 {
		opts.QuietPeriod = story.DefaultQuietPeriod
	}

	a := &App{
		Tweens:      tween.NewRegistry(),
		window:      opts.Window,
		scenes:      opts.Scenes,
		overlay:     opts.Overlay,
		siren:       opts.Siren,
		screenshots: opts.Screenshots,
		clock:       opts.Clock,
		input:       input.New(),
		controls:    opts.Controls,
		painter:     page.NewPainter(),
		log:         logger.Named("app"),
	}

	var err error
	a.Story, err = story.New(story.Options{
		Sections:        opts.Sections,
		Rand:            opts.Rand,
		Clock:           opts.Clock,
		Tweens:          a.Tweens,
		Drift:           opts.Drift,
		OnSectionChange: a.sectionChanged,
	})
	if err != nil {
		return nil, fmt.Errorf("building story: %w", err)
	}

	a.Widget, err = widget.New(a.Tweens)
	if err != nil {
		return nil, fmt.Errorf("building widget: %w", err)
	}

	w, h := a.window.DrawableSize()
	pg := story.NewPage(len(a.Story.Sections()), float64(h))
	if opts.WheelStep > 0 {
		pg.WheelStep = opts.WheelStep
	}
	a.Mapper = story.NewScrollMapper(pg, opts.QuietPeriod)
	a.Resize(w, h)

	return a, nil
}

// Layout returns the current page layout.
func (a *App) Layout() page.Layout {
	return a.layout
}

// Frame processes input, advances every animation and draws one frame.
func (a *App) Frame(f loop.Frame) error {
	if a.window.Poll(a.input) {
		a.quit = true
	}
	for _, e := range a.input.Events() {
		a.HandleEvent(e)
	}
	if a.quit {
		return ErrQuit
	}

	a.Update(f)
	a.Render()

	if a.wantShot {
		a.wantShot = false
		a.captureScreenshot()
	}
	a.window.SwapBuffers()
	return nil
}

// Update advances the scenes by one frame: idle motion and controls first,
// then tweens, then any settled scroll.
func (a *App) Update(f loop.Frame) {
	a.Story.Update(f.Elapsed)
	a.Widget.Update()
	a.Tweens.Tick(f.Delta)

	if idx, ok := a.Mapper.Poll(a.clock.Now()); ok {
		a.Story.SetSection(idx)
	}
}

// Render draws the main scene, the page column and the widget on top of it.
func (a *App) Render() {
	size := a.layout.Size
	a.scenes.BeginFrame(size.X, size.Y, mgl32.Vec3{})
	a.scenes.RenderScene(a.Story.Scene, a.Story.Camera, a.layout.Main)

	a.overlay.Begin(size.X, size.Y)
	a.painter.Draw(a.overlay, a.layout, a.view())
	a.overlay.End()

	a.scenes.RenderScene(a.Widget.Scene, a.Widget.Camera, a.layout.Widget)
}

func (a *App) view() page.View {
	sec := a.Story.CurrentSection()
	pg := a.Mapper.Page
	scroll := 0.0
	if m := pg.MaxOffset(); m > 0 {
		scroll = pg.Offset / m
	}
	mx, my := a.input.Mouse()
	return page.View{
		Section:      a.Story.Current(),
		Sections:     len(a.Story.Sections()),
		SectionName:  sec.Name,
		Scroll:       scroll,
		SignalActive: a.Story.SignalActive(),
		GlowLabel:    a.Widget.Label(),
		Hover:        a.layout.ButtonAt(image.Pt(mx, my)),
	}
}

// Resize lays the page out for a drawable of width x height and updates
// both cameras and the page's viewport height.
func (a *App) Resize(width, height int) {
	a.layout = page.NewLayout(width, height, a.controls)
	a.Story.Resize(a.layout.Main.Dx(), a.layout.Main.Dy())
	a.Widget.Resize(a.layout.Widget.Dx(), a.layout.Widget.Dy())
	if height > 0 {
		a.Mapper.Page.Resize(float64(height))
	}
	a.log.Debug("layout",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("main", a.layout.Main),
		zap.Stringer("widget", a.layout.Widget),
	)
}

// ToggleGlow flips the widget glow if the control is enabled.
func (a *App) ToggleGlow() {
	if !a.controls.Glow {
		return
	}
	a.Widget.Toggle()
}

// Signal fires the signal if the control is enabled: beacon, siren, jump to
// the last section.
func (a *App) Signal() {
	if !a.controls.Signal {
		return
	}
	a.Story.ActivateSignal()
	a.log.Info("signal", zap.Stringer("story", a.Story))
	if a.siren != nil {
		if err := a.siren.PlaySiren(); err != nil {
			a.log.Warn("siren failed", zap.Error(err))
		}
	}
}

// ToggleMute flips the siren between muted and audible.
func (a *App) ToggleMute() {
	if a.siren == nil {
		return
	}
	muted := !a.siren.Muted()
	a.siren.SetMuted(muted)
	a.log.Info("mute", zap.Bool("muted", muted))
}

func (a *App) sectionChanged(index int, sec story.SectionConfig) {
	title := fmt.Sprintf("%s — %s", Title, sec.Name)
	if title == a.lastTitle {
		return
	}
	a.lastTitle = title
	a.window.SetTitle(title)
	a.log.Info("section", zap.Int("index", index), zap.String("name", sec.Name))
}

func (a *App) captureScreenshot() {
	if a.screenshots == nil {
		return
	}
	size := a.layout.Size
	path, err := a.screenshots.Capture(size.X, size.Y)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}
