// Package page lays out the desktop page: the main canvas on the left and
// the scrolling page column with the widget panel and controls on the right.
package page

import "image"

// Region identifies the part of the window under a point.
type Region int

const (
	RegionNone Region = iota
	RegionMain
	RegionWidget
	RegionPage
)

func (r Region) String() string {
	switch r {
	case RegionMain:
		return "main"
	case RegionWidget:
		return "widget"
	case RegionPage:
		return "page"
	}
	return "none"
}

// ButtonID identifies a page control.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonGlow
	ButtonSignal
)

// Button is a clickable control.
type Button struct {
	ID   ButtonID
	Rect image.Rectangle
}

// Controls selects which optional controls exist on the page.
type Controls struct {
	Glow   bool
	Signal bool
}

const (
	titleHeight    = 48
	progressHeight = 4
	buttonHeight   = 44
	buttonGap      = 12
)

// Layout holds the rectangles of every page element in drawable pixels with
// a top-left origin.
type Layout struct {
	Size image.Point

	Main     image.Rectangle
	Page     image.Rectangle
	Title    image.Rectangle
	Beacon   image.Rectangle
	Progress image.Rectangle
	Widget   image.Rectangle

	Buttons []Button
}

// NewLayout computes the layout for a drawable of width x height. Controls
// that are disabled get no button.
func NewLayout(width, height int, controls Controls) Layout {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	half := width / 2
	l := Layout{
		Size: image.Pt(width, height),
		Main: image.Rect(0, 0, half, height),
		Page: image.Rect(half, 0, width, height),
	}

	m := clamp(l.Page.Dx()/20, 8, 32)
	left, right := l.Page.Min.X+m, l.Page.Max.X-m

	l.Beacon = image.Rect(right-titleHeight, m, right, m+titleHeight)
	l.Title = image.Rect(left, m, l.Beacon.Min.X-buttonGap, m+titleHeight)
	l.Progress = image.Rect(left, l.Title.Max.Y+buttonGap/2, right, l.Title.Max.Y+buttonGap/2+progressHeight)

	var ids []ButtonID
	if controls.Glow {
		ids = append(ids, ButtonGlow)
	}
	if controls.Signal {
		ids = append(ids, ButtonSignal)
	}
	bottom := height - m
	if w := (right - left - buttonGap*(len(ids)-1)) / max(len(ids), 1); len(ids) > 0 && w > 0 {
		top := bottom - buttonHeight
		for i, id := range ids {
			x := left + i*(w+buttonGap)
			l.Buttons = append(l.Buttons, Button{ID: id, Rect: image.Rect(x, top, x+w, bottom)})
		}
		bottom = top - m
	}

	top := l.Progress.Max.Y + m
	side := min(right-left, bottom-top)
	if side > 0 {
		x := left + (right-left-side)/2
		y := top + (bottom-top-side)/2
		l.Widget = image.Rect(x, y, x+side, y+side)
	}

	return l
}

// Region returns the area containing p.
func (l Layout) Region(p image.Point) Region {
	switch {
	case p.In(l.Widget):
		return RegionWidget
	case p.In(l.Main):
		return RegionMain
	case p.In(l.Page):
		return RegionPage
	}
	return RegionNone
}

// ButtonAt returns the button containing p, or ButtonNone.
func (l Layout) ButtonAt(p image.Point) ButtonID {
	for _, b := range l.Buttons {
		if p.In(b.Rect) {
			return b.ID
		}
	}
	return ButtonNone
}

// Button returns the rectangle of id and whether the button exists.
func (l Layout) Button(id ButtonID) (image.Rectangle, bool) {
	for _, b := range l.Buttons {
		if b.ID == id {
			return b.Rect, true
		}
	}
	return image.Rectangle{}, false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
