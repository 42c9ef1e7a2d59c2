package page

import (
	"image"
	"testing"

	"github.com/Faultbox/gotham-story/internal/engine/ui2d"
)

var allControls = Controls{Glow: true, Signal: true}

func TestLayoutSplitsWindow(t *testing.T) {
	l := NewLayout(1280, 720, allControls)

	if l.Main != image.Rect(0, 0, 640, 720) {
		t.Errorf("main = %v", l.Main)
	}
	if l.Page != image.Rect(640, 0, 1280, 720) {
		t.Errorf("page = %v", l.Page)
	}
	if l.Widget.Dx() != l.Widget.Dy() || l.Widget.Empty() {
		t.Errorf("widget should be a non-empty square, got %v", l.Widget)
	}

	for name, r := range map[string]image.Rectangle{
		"title": l.Title, "beacon": l.Beacon, "progress": l.Progress, "widget": l.Widget,
	} {
		if !r.In(l.Page) {
			t.Errorf("%s %v outside page %v", name, r, l.Page)
		}
	}
	for _, b := range l.Buttons {
		if !b.Rect.In(l.Page) || b.Rect.Overlaps(l.Widget) {
			t.Errorf("button %d at %v misplaced", b.ID, b.Rect)
		}
	}
}

func TestRegion(t *testing.T) {
	l := NewLayout(1000, 600, allControls)
	center := l.Widget.Min.Add(l.Widget.Size().Div(2))

	tests := []struct {
		p    image.Point
		want Region
	}{
		{image.Pt(10, 10), RegionMain},
		{image.Pt(499, 599), RegionMain},
		{image.Pt(500, 0), RegionPage},
		{center, RegionWidget},
		{image.Pt(-1, 10), RegionNone},
		{image.Pt(1000, 10), RegionNone},
	}
	for _, tt := range tests {
		if got := l.Region(tt.p); got != tt.want {
			t.Errorf("Region(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestButtonHit(t *testing.T) {
	l := NewLayout(1000, 600, allControls)
	glow, ok := l.Button(ButtonGlow)
	if !ok {
		t.Fatal("glow button missing")
	}
	signal, ok := l.Button(ButtonSignal)
	if !ok {
		t.Fatal("signal button missing")
	}
	if glow.Overlaps(signal) {
		t.Error("buttons overlap")
	}

	if got := l.ButtonAt(glow.Min.Add(image.Pt(2, 2))); got != ButtonGlow {
		t.Errorf("hit glow = %v", got)
	}
	if got := l.ButtonAt(signal.Max.Sub(image.Pt(1, 1))); got != ButtonSignal {
		t.Errorf("hit signal = %v", got)
	}
	if got := l.ButtonAt(image.Pt(5, 5)); got != ButtonNone {
		t.Errorf("hit outside = %v", got)
	}
}

func TestDisabledControlsHaveNoButton(t *testing.T) {
	l := NewLayout(1000, 600, Controls{Glow: true})
	if _, ok := l.Button(ButtonSignal); ok {
		t.Error("disabled signal control should be absent")
	}
	glow, _ := l.Button(ButtonGlow)
	if glow.Dx() != l.Progress.Dx() {
		t.Errorf("single button should span the column: %d vs %d", glow.Dx(), l.Progress.Dx())
	}

	none := NewLayout(1000, 600, Controls{})
	if len(none.Buttons) != 0 {
		t.Errorf("got %d buttons, want none", len(none.Buttons))
	}
	if none.Widget.Dy() <= l.Widget.Dy() && none.Widget.Dx() < l.Widget.Dx() {
		t.Error("widget should grow when there are no buttons")
	}
}

func TestTinyWindow(t *testing.T) {
	l := NewLayout(40, 30, allControls)
	if !l.Widget.Empty() {
		t.Errorf("widget should collapse in a tiny window, got %v", l.Widget)
	}
	if got := l.Region(image.Pt(5, 5)); got != RegionMain {
		t.Errorf("region = %v", got)
	}
}

type recorder struct {
	rects  []image.Rectangle
	panels []image.Rectangle
	images []*image.RGBA
}

func (r *recorder) DrawRect(rect image.Rectangle, c ui2d.Color) { r.rects = append(r.rects, rect) }

func (r *recorder) DrawPanel(rect image.Rectangle, bg, border ui2d.Color) {
	r.panels = append(r.panels, rect)
}

func (r *recorder) DrawImageAt(p image.Point, img *image.RGBA, tint ui2d.Color) {
	r.images = append(r.images, img)
}

func TestPainterDraw(t *testing.T) {
	l := NewLayout(1280, 720, allControls)
	p := NewPainter()
	rec := &recorder{}

	v := View{Section: 1, Sections: 4, SectionName: "What We Do", Scroll: 0.5, GlowLabel: "Glow Cube"}
	p.Draw(rec, l, v)

	// Title plus one label per button.
	if len(rec.images) != 3 {
		t.Errorf("drew %d labels, want 3", len(rec.images))
	}
	// Beacon, widget frame and two buttons.
	if len(rec.panels) != 4 {
		t.Errorf("drew %d panels, want 4", len(rec.panels))
	}
	// Page background, progress track and progress fill.
	if len(rec.rects) != 3 {
		t.Fatalf("drew %d rects, want 3", len(rec.rects))
	}
	if fill := rec.rects[2]; fill.Dx() != l.Progress.Dx()/2 {
		t.Errorf("progress fill = %d, want %d", fill.Dx(), l.Progress.Dx()/2)
	}

	// Drawing again reuses the rasterized labels.
	first := rec.images[0]
	rec.images = nil
	p.Draw(rec, l, v)
	if rec.images[0] != first {
		t.Error("labels should be cached between frames")
	}
}

func TestPainterSkipsEmptyProgress(t *testing.T) {
	l := NewLayout(1280, 720, Controls{})
	rec := &recorder{}
	NewPainter().Draw(rec, l, View{Sections: 4, SectionName: "Who We Are"})
	if len(rec.rects) != 2 {
		t.Errorf("drew %d rects, want 2", len(rec.rects))
	}
}
