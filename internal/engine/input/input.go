// Package input defines window-system independent input events and tracks
// pointer state across them.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a physical key the application reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyS
	KeyG
	KeyM
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyF12
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota + 1
	ButtonMiddle
	ButtonRight
)

// Event is a processed input event. Positions are drawable pixels with a
// top-left origin.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	// Motion since the previous mouse event.
	DeltaX int
	DeltaY int
	Button MouseButton
	// Wheel is positive when scrolling up, in notches.
	Wheel float32
}

// Input collects the events of one frame and tracks the pointer.
type Input struct {
	events []Event

	mouseX, mouseY int
	down           [4]bool
}

// New creates an empty input queue.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Reset clears the events of the previous frame.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// Push records e. Mouse events get their deltas and, for wheel events, the
// last known pointer position filled in.
func (i *Input) Push(e Event) {
	switch e.Type {
	case EventMouseMove:
		e.DeltaX, e.DeltaY = e.MouseX-i.mouseX, e.MouseY-i.mouseY
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
	case EventMouseDown, EventMouseUp:
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
		if int(e.Button) < len(i.down) {
			i.down[e.Button] = e.Type == EventMouseDown
		}
	case EventMouseWheel:
		e.MouseX, e.MouseY = i.mouseX, i.mouseY
	}
	i.events = append(i.events, e)
}

// Events returns the events since the last Reset.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(k Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// IsDown reports whether b is currently held.
func (i *Input) IsDown(b MouseButton) bool {
	return int(b) < len(i.down) && i.down[b]
}

// Mouse returns the last known pointer position.
func (i *Input) Mouse() (x, y int) {
	return i.mouseX, i.mouseY
}
