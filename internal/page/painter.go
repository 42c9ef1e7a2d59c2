package page

import (
	"fmt"
	"image"

	"github.com/Faultbox/gotham-story/internal/engine/label"
	"github.com/Faultbox/gotham-story/internal/engine/ui2d"
)

// Overlay receives the page's 2D draw calls.
type Overlay interface {
	DrawRect(rect image.Rectangle, c ui2d.Color)
	DrawPanel(rect image.Rectangle, bg, border ui2d.Color)
	DrawImageAt(p image.Point, img *image.RGBA, tint ui2d.Color)
}

// View is the page state to draw for one frame.
type View struct {
	Section      int
	Sections     int
	SectionName  string
	Scroll       float64 // 0 at the top, 1 at the bottom
	SignalActive bool
	GlowLabel    string
	Hover        ButtonID
}

// Painter draws the page column. Labels are rasterized once and reused.
type Painter struct {
	labels *label.Cache
}

// NewPainter creates a painter with an empty label cache.
func NewPainter() *Painter {
	return &Painter{labels: label.NewCache()}
}

// Draw queues the page for v onto ov.
func (p *Painter) Draw(ov Overlay, l Layout, v View) {
	ov.DrawRect(l.Page, ui2d.ColorPageBg)

	title := fmt.Sprintf("%d/%d  %s", v.Section+1, v.Sections, v.SectionName)
	p.text(ov, l.Title, title, ui2d.ColorAccent, 2, alignLeft)

	ov.DrawRect(l.Progress, ui2d.ColorButtonNormal)
	if f := clampUnit(v.Scroll); f > 0 {
		filled := l.Progress
		filled.Max.X = filled.Min.X + int(float64(filled.Dx())*f)
		ov.DrawRect(filled, ui2d.ColorAccent)
	}

	beacon := ui2d.ColorButtonNormal
	if v.SignalActive {
		beacon = ui2d.ColorAccent
	}
	ov.DrawPanel(l.Beacon, beacon, ui2d.ColorPanelBorder)

	if !l.Widget.Empty() {
		ov.DrawPanel(l.Widget.Inset(-1), ui2d.ColorTransparent, ui2d.ColorPanelBorder)
	}

	for _, b := range l.Buttons {
		bg := ui2d.ColorButtonNormal
		if b.ID == v.Hover {
			bg = ui2d.ColorButtonHover
		}
		ov.DrawPanel(b.Rect, bg, ui2d.ColorPanelBorder)
		p.text(ov, b.Rect, buttonText(b.ID, v), ui2d.ColorText, 2, alignCenter)
	}
}

func buttonText(id ButtonID, v View) string {
	switch id {
	case ButtonGlow:
		return v.GlowLabel
	case ButtonSignal:
		return "Signal"
	}
	return ""
}

type align int

const (
	alignLeft align = iota
	alignCenter
)

// text draws s vertically centered in r. Text too wide for r at scale is
// drawn at scale 1.
func (p *Painter) text(ov Overlay, r image.Rectangle, s string, c ui2d.Color, scale int, a align) {
	img := p.labels.Get(s, c.RGBA8(), scale)
	if img.Bounds().Dx() > r.Dx() && scale > 1 {
		img = p.labels.Get(s, c.RGBA8(), 1)
	}
	size := img.Bounds().Size()
	at := image.Pt(r.Min.X, r.Min.Y+(r.Dy()-size.Y)/2)
	if a == alignCenter {
		at.X += (r.Dx() - size.X) / 2
	}
	ov.DrawImageAt(at, img, ui2d.ColorWhite)
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
