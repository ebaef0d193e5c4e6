package input

import (
	"radial-menu/src/geometry"
)

// State is the lifecycle of a single pointer/keyboard gesture.
type State int

const (
	// Released means no button is held and no gesture is in progress.
	Released State = iota
	// Clicked means a button went down and the pointer has not yet moved
	// beyond the drag threshold.
	Clicked
	// Dragging means the pointer is in a continuous selection gesture,
	// either physically (button held, moved) or via turbo mode.
	Dragging
)

func (s State) String() string {
	switch s {
	case Clicked:
		return "clicked"
	case Dragging:
		return "dragging"
	default:
		return "released"
	}
}

// DragThreshold is the displacement from the click origin, in pixels, beyond
// which a click becomes a drag.
const DragThreshold = 5.0

// motionIgnoreCount compensates for the spurious motion samples some window
// systems deliver right after window creation.
const motionIgnoreCount = 2

// Snapshot is the geometric relation between the pointer and the active
// item, recomputed on every accepted motion event. It is only valid for the
// event it was computed on.
type Snapshot struct {
	// Absolute is the pointer position in screen space.
	Absolute geometry.Vec2
	// Relative is the pointer position relative to the active item.
	Relative geometry.Vec2
	// Distance is the length of Relative.
	Distance float64
	// Angle is the direction of Relative in degrees (0° = up, clockwise).
	Angle float64
}

// MotionFunc observes accepted motion events. It is invoked synchronously
// before the motion handler returns.
type MotionFunc func(absolute geometry.Vec2, dragging bool)

// Tracker classifies raw pointer and keyboard events into a selection
// gesture. It is single-threaded: all methods must be called from the event
// loop goroutine.
type Tracker struct {
	state         State
	turbo         bool
	deferredTurbo bool

	center       geometry.Vec2
	clickOrigin  geometry.Vec2
	ignoreMotion int
	snapshot     Snapshot

	observers []MotionFunc
}

// NewTracker returns a tracker in the Released state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Subscribe registers an observer for accepted motion events.
func (t *Tracker) Subscribe(fn MotionFunc) {
	t.observers = append(t.observers, fn)
}

// State returns the current gesture state.
func (t *Tracker) State() State { return t.state }

// TurboMode reports whether keyboard-held gesture mode is active.
func (t *Tracker) TurboMode() bool { return t.turbo }

// Snapshot returns the last computed interaction snapshot.
func (t *Tracker) Snapshot() Snapshot { return t.snapshot }

// SetActiveItemPosition sets the screen position that Relative, Distance and
// Angle are computed against. The session updates it whenever the active
// item changes.
func (t *Tracker) SetActiveItemPosition(pos geometry.Vec2) {
	t.center = pos
}

// SetDeferredTurboMode controls whether turbo activation waits for a key
// press observed after this call. Deferring avoids entering gesture mode
// just because the shortcut that opened the menu still holds a modifier.
func (t *Tracker) SetDeferredTurboMode(v bool) {
	t.deferredTurbo = v
}

// ResetMotionIgnore arms the tracker to discard the next two motion events.
func (t *Tracker) ResetMotionIgnore() {
	t.ignoreMotion = motionIgnoreCount
}

// Reset returns the tracker to a fresh Released state for a new session.
// Observers and the deferred-turbo setting are kept.
func (t *Tracker) Reset() {
	t.state = Released
	t.turbo = false
	t.clickOrigin = geometry.Vec2{}
	t.snapshot = Snapshot{}
	t.ignoreMotion = 0
}

// OnPointerDown records the click origin, enters Clicked and runs the motion
// update with the same position.
func (t *Tracker) OnPointerDown(pos geometry.Vec2, anyModifier, anyButton bool) {
	t.clickOrigin = pos
	t.state = Clicked
	t.OnMotion(pos, anyModifier, anyButton)
}

// OnPointerUp ends the physical button press. Turbo mode is unaffected: a
// held modifier keeps the gesture alive.
func (t *Tracker) OnPointerUp() {
	t.state = Released
}

// OnKeyDown activates turbo mode unless activation is deferred.
func (t *Tracker) OnKeyDown() {
	if !t.deferredTurbo {
		t.turbo = true
	}
}

// OnKeyUp clears turbo mode once no modifier remains held.
func (t *Tracker) OnKeyUp(anyModifierHeld bool) {
	if !anyModifierHeld {
		t.deferredTurbo = false
		t.turbo = false
	}
}

// OnMotion processes a pointer motion sample. anyModifier and anyButton
// reflect the modifier-key and pointer-button state carried by the event.
func (t *Tracker) OnMotion(pos geometry.Vec2, anyModifier, anyButton bool) {
	if t.ignoreMotion > 0 {
		t.ignoreMotion--
		return
	}

	rel := pos.Sub(t.center)
	t.snapshot = Snapshot{
		Absolute: pos,
		Relative: rel,
		Distance: rel.Len(),
		Angle:    rel.Angle(),
	}

	if t.state == Clicked && pos.Sub(t.clickOrigin).Len() > DragThreshold {
		t.state = Dragging
	}

	// OR-latch: once a modifier was seen held, turbo stays on for the
	// gesture; only OnKeyUp clears it.
	if !t.deferredTurbo {
		t.turbo = t.turbo || anyModifier
	}

	if t.turbo {
		t.state = Dragging
	} else if t.state == Dragging && !anyButton {
		t.state = Released
	}

	dragging := t.state == Dragging
	for _, fn := range t.observers {
		fn(pos, dragging)
	}
}
