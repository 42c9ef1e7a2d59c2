package app

import (
	"image"

	"github.com/Faultbox/gotham-story/internal/engine/camera"
	"github.com/Faultbox/gotham-story/internal/engine/input"
	"github.com/Faultbox/gotham-story/internal/page"
)

// HandleEvent routes one input event.
func (a *App) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.quit = true
	case input.EventWindowResize:
		a.Resize(e.Width, e.Height)
	case input.EventKeyDown:
		a.handleKey(e.Key)
	case input.EventMouseWheel:
		a.handleWheel(e)
	case input.EventMouseDown:
		a.handleMouseDown(e)
	case input.EventMouseUp:
		a.handleMouseUp(e)
	case input.EventMouseMove:
		a.handleMouseMove(e)
	}
}

func (a *App) handleMouseMove(e input.Event) {
	if c := a.controlsFor(a.drag); c != nil {
		c.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
	}
	if c := a.controlsFor(a.pan); c != nil {
		c.HandlePan(float32(e.DeltaX), float32(e.DeltaY), float32(a.viewFor(a.pan).Dy()))
	}
}

func (a *App) handleKey(k input.Key) {
	pg := a.Mapper.Page
	var moved bool
	switch k {
	case input.KeyEscape:
		a.quit = true
	case input.KeyS:
		a.Signal()
	case input.KeyG:
		a.ToggleGlow()
	case input.KeyM:
		a.ToggleMute()
	case input.KeyF12:
		a.wantShot = true
	case input.KeyPageDown:
		moved = pg.PageDown()
	case input.KeyPageUp:
		moved = pg.PageUp()
	case input.KeyHome:
		moved = pg.Home()
	case input.KeyEnd:
		moved = pg.End()
	case input.KeyDown:
		moved = pg.Wheel(-1)
	case input.KeyUp:
		moved = pg.Wheel(1)
	}
	if moved {
		a.Mapper.Scrolled(a.clock.Now())
	}
}

func (a *App) handleWheel(e input.Event) {
	switch region := a.layout.Region(image.Pt(e.MouseX, e.MouseY)); region {
	case page.RegionPage:
		if a.Mapper.Page.Wheel(float64(e.Wheel)) {
			a.Mapper.Scrolled(a.clock.Now())
		}
	case page.RegionMain, page.RegionWidget:
		a.controlsFor(region).HandleZoom(e.Wheel)
	}
}

func (a *App) handleMouseDown(e input.Event) {
	p := image.Pt(e.MouseX, e.MouseY)
	if e.Button == input.ButtonRight {
		switch region := a.layout.Region(p); region {
		case page.RegionMain, page.RegionWidget:
			a.pan = region
		}
		return
	}
	if e.Button != input.ButtonLeft {
		return
	}
	if id := a.layout.ButtonAt(p); id != page.ButtonNone {
		a.pressed = id
		return
	}
	switch region := a.layout.Region(p); region {
	case page.RegionMain, page.RegionWidget:
		a.drag = region
	}
}

// handleMouseUp ends a drag, or clicks a button when pressed and released
// on the same one.
func (a *App) handleMouseUp(e input.Event) {
	if e.Button == input.ButtonRight {
		a.pan = page.RegionNone
		return
	}
	if e.Button != input.ButtonLeft {
		return
	}
	a.drag = page.RegionNone

	pressed := a.pressed
	a.pressed = page.ButtonNone
	if pressed == page.ButtonNone || a.layout.ButtonAt(image.Pt(e.MouseX, e.MouseY)) != pressed {
		return
	}
	switch pressed {
	case page.ButtonGlow:
		a.ToggleGlow()
	case page.ButtonSignal:
		a.Signal()
	}
}

func (a *App) controlsFor(r page.Region) *camera.OrbitControls {
	switch r {
	case page.RegionMain:
		return a.Story.Controls
	case page.RegionWidget:
		return a.Widget.Controls
	}
	return nil
}

func (a *App) viewFor(r page.Region) image.Rectangle {
	if r == page.RegionWidget {
		return a.layout.Widget
	}
	return a.layout.Main
}
