package story

import (
	"math"
	"time"
)

// DefaultQuietPeriod is how long scrolling must pause before the section is
// recomputed.
const DefaultQuietPeriod = 100 * time.Millisecond

// SectionIndex maps a scroll offset to a section: floor(offset/height)
// clamped to [0, sections-1]. A non-positive height maps to section 0.
func SectionIndex(offset, viewportHeight float64, sections int) int {
	if sections <= 0 || viewportHeight <= 0 || offset <= 0 {
		return 0
	}
	// Clamp before converting: huge ratios overflow int.
	q := math.Floor(offset / viewportHeight)
	if math.IsNaN(q) {
		return 0
	}
	if q >= float64(sections-1) {
		return sections - 1
	}
	return int(q)
}

// Debouncer reports a settled burst of events once no event has arrived for
// the quiet period. It is polled from the frame loop rather than timer driven.
type Debouncer struct {
	Quiet time.Duration

	last    time.Time
	pending bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{Quiet: quiet}
}

// Touch records an event at now, restarting the quiet period.
func (d *Debouncer) Touch(now time.Time) {
	d.last = now
	d.pending = true
}

// Pending reports whether an unsettled burst exists.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Settled returns true exactly once per burst, at the first poll made after
// the quiet period has elapsed.
func (d *Debouncer) Settled(now time.Time) bool {
	if !d.pending || now.Sub(d.last) < d.Quiet {
		return false
	}
	d.pending = false
	return true
}

// Page is a virtual vertical page made of equally tall sections, each one
// viewport high.
type Page struct {
	Offset         float64
	ViewportHeight float64
	Sections       int
	// WheelStep is the scroll distance of one wheel notch.
	WheelStep float64
}

// NewPage creates a page scrolled to the top.
func NewPage(sections int, viewportHeight float64) *Page {
	return &Page{
		ViewportHeight: viewportHeight,
		Sections:       sections,
		WheelStep:      100,
	}
}

// MaxOffset is the largest reachable offset: the last section's top.
func (p *Page) MaxOffset() float64 {
	if p.Sections <= 1 || p.ViewportHeight <= 0 {
		return 0
	}
	return float64(p.Sections-1) * p.ViewportHeight
}

// ScrollTo moves to offset, clamped to the page. Reports whether it moved.
func (p *Page) ScrollTo(offset float64) bool {
	offset = math.Max(0, math.Min(offset, p.MaxOffset()))
	if offset == p.Offset {
		return false
	}
	p.Offset = offset
	return true
}

// ScrollBy moves the page by delta pixels.
func (p *Page) ScrollBy(delta float64) bool {
	return p.ScrollTo(p.Offset + delta)
}

// Wheel scrolls by wheel notches; positive notches scroll up as SDL reports them.
func (p *Page) Wheel(notches float64) bool {
	return p.ScrollBy(-notches * p.WheelStep)
}

// PageDown scrolls one viewport down.
func (p *Page) PageDown() bool { return p.ScrollBy(p.ViewportHeight) }

// PageUp scrolls one viewport up.
func (p *Page) PageUp() bool { return p.ScrollBy(-p.ViewportHeight) }

// Home scrolls to the top.
func (p *Page) Home() bool { return p.ScrollTo(0) }

// End scrolls to the last section.
func (p *Page) End() bool { return p.ScrollTo(p.MaxOffset()) }

// Resize changes the viewport height and re-clamps the offset.
func (p *Page) Resize(viewportHeight float64) {
	p.ViewportHeight = viewportHeight
	p.ScrollTo(p.Offset)
}

// Section returns the section under the current offset.
func (p *Page) Section() int {
	return SectionIndex(p.Offset, p.ViewportHeight, p.Sections)
}

// ScrollMapper turns raw scroll activity into debounced section indices.
type ScrollMapper struct {
	Page     *Page
	debounce *Debouncer
}

// NewScrollMapper creates a mapper over page with the given quiet period.
func NewScrollMapper(page *Page, quiet time.Duration) *ScrollMapper {
	return &ScrollMapper{
		Page:     page,
		debounce: NewDebouncer(quiet),
	}
}

// Scrolled records that the page moved at now.
func (m *ScrollMapper) Scrolled(now time.Time) {
	m.debounce.Touch(now)
}

// Poll returns the section index once scrolling has settled.
func (m *ScrollMapper) Poll(now time.Time) (int, bool) {
	if !m.debounce.Settled(now) {
		return 0, false
	}
	return m.Page.Section(), true
}
