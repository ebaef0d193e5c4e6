package session

import (
	"log"

	"radial-menu/src/geometry"
	"radial-menu/src/input"
	"radial-menu/src/menu"
)

// Phase is the lifecycle of one menu session.
type Phase int

const (
	// Idle means no menu is open yet.
	Idle Phase = iota
	// Open means the menu is shown and input drives the selection.
	Open
	// Closed is terminal; late input events are ignored, not errors, since
	// event delivery can race with window teardown on some platforms.
	Closed
)

func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "idle"
	}
}

const (
	// defaultDeadZoneRadius is the central area, in pixels, where no child
	// is hovered and releasing means "go back".
	defaultDeadZoneRadius = 50.0
	// defaultChildRadius is the distance from a submenu's center to its
	// children, used as the local origin when a submenu opens.
	defaultChildRadius = 110.0
)

// Listener receives the decisions a session produces. All calls happen
// synchronously inside the input handler that caused them.
type Listener interface {
	// OnMotion forwards every accepted motion event for rendering.
	OnMotion(absolute geometry.Vec2, dragging bool)
	// OnHoverChanged reports the new hover target. hovered is nil when the
	// pointer is in the central dead zone (parent implicitly active).
	OnHoverChanged(path []*menu.Item, hovered *menu.Item)
	// OnSubmenuOpened reports a change of the active submenu level.
	OnSubmenuOpened(path []*menu.Item, center geometry.Vec2)
	// OnSelect reports a terminal leaf selection.
	OnSelect(item *menu.Item, path []*menu.Item)
	// OnClosed reports the end of the session.
	OnClosed(cancelled bool)
}

// Options tune a session. Zero values pick the defaults.
type Options struct {
	// DeadZoneRadius overrides the central dead zone, in pixels.
	DeadZoneRadius float64
	// ChildRadius overrides the submenu ring radius, in pixels.
	ChildRadius float64
	// DeferTurbo postpones turbo activation until a key press observed
	// after the menu opened (set when the opening shortcut holds a
	// modifier).
	DeferTurbo bool
}

// Session walks one open menu from root to a terminal selection. It owns the
// input tracker and the resolved-angle side table for the active submenu;
// both are discarded when the session closes.
type Session struct {
	tracker  *input.Tracker
	listener Listener

	deadZone    float64
	childRadius float64

	phase    Phase
	root     *menu.Menu
	anchored bool
	path     []*menu.Item
	centers  []geometry.Vec2
	angles   []float64
	hovered  int // index into active children, -1 = none
}

// New creates an idle session. Open must be called before any input is fed.
func New(listener Listener, opts Options) *Session {
	s := &Session{
		tracker:     input.NewTracker(),
		listener:    listener,
		deadZone:    opts.DeadZoneRadius,
		childRadius: opts.ChildRadius,
		hovered:     -1,
	}
	if s.deadZone <= 0 {
		s.deadZone = defaultDeadZoneRadius
	}
	if s.childRadius <= 0 {
		s.childRadius = defaultChildRadius
	}
	if opts.DeferTurbo {
		s.tracker.SetDeferredTurboMode(true)
	}
	s.tracker.Subscribe(func(abs geometry.Vec2, dragging bool) {
		if s.listener != nil {
			s.listener.OnMotion(abs, dragging)
		}
	})
	return s
}

// Phase returns the session lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Tracker exposes the session's input tracker.
func (s *Session) Tracker() *input.Tracker { return s.tracker }

// Path returns a copy of the active item path, root first.
func (s *Session) Path() []*menu.Item {
	out := make([]*menu.Item, len(s.path))
	copy(out, s.path)
	return out
}

// HoveredItem returns the currently hovered child, or nil.
func (s *Session) HoveredItem() *menu.Item {
	if s.hovered < 0 {
		return nil
	}
	return s.activeChildren()[s.hovered]
}

// Open starts the session with a resolved menu at the given screen point.
// The motion-ignore counter is armed to drop the spurious samples some
// window systems emit right after the menu window appears.
func (s *Session) Open(m *menu.Menu, at geometry.Vec2) {
	if s.phase != Idle {
		return
	}
	s.phase = Open
	s.root = m
	s.anchored = m.Anchored
	s.path = []*menu.Item{m.Root}
	s.centers = []geometry.Vec2{at}
	s.angles = menu.ResolveAngles(m.Root.Children)
	s.hovered = -1

	s.tracker.Reset()
	s.tracker.ResetMotionIgnore()
	s.tracker.SetActiveItemPosition(at)
	log.Printf("session: opened menu %q at (%v,%v)", m.Name(), at.X, at.Y)
}

// HandleMotion feeds a pointer motion event and recomputes the hover target.
func (s *Session) HandleMotion(pos geometry.Vec2, anyModifier, anyButton bool) {
	if s.phase != Open {
		return
	}
	s.tracker.OnMotion(pos, anyModifier, anyButton)
	s.updateHover()
}

// HandlePointerDown feeds a button press.
func (s *Session) HandlePointerDown(pos geometry.Vec2, anyModifier bool) {
	if s.phase != Open {
		return
	}
	s.tracker.OnPointerDown(pos, anyModifier, true)
	s.updateHover()
}

// HandlePointerUp feeds a button release. A completing click or an ending
// drag gesture selects the hovered item. In turbo mode the physical release
// is ignored; the gesture ends with the modifiers instead.
func (s *Session) HandlePointerUp() {
	if s.phase != Open {
		return
	}
	settled := s.tracker.State() == input.Clicked || s.tracker.State() == input.Dragging
	s.tracker.OnPointerUp()
	if settled && !s.tracker.TurboMode() {
		s.selectHovered()
	}
}

// HandleKeyDown feeds a modifier key press (turbo activation).
func (s *Session) HandleKeyDown() {
	if s.phase != Open {
		return
	}
	s.tracker.OnKeyDown()
}

// HandleKeyUp feeds a modifier key release. Leaving turbo mode while
// dragging ends the gesture and selects the hovered item.
func (s *Session) HandleKeyUp(anyModifierHeld bool) {
	if s.phase != Open {
		return
	}
	wasTurbo := s.tracker.TurboMode()
	dragging := s.tracker.State() == input.Dragging
	s.tracker.OnKeyUp(anyModifierHeld)
	if wasTurbo && !s.tracker.TurboMode() && dragging {
		s.selectHovered()
	}
}

// GoBack pops one level off the active path, or closes when at the root.
func (s *Session) GoBack() {
	if s.phase != Open {
		return
	}
	if len(s.path) == 1 {
		s.close(true)
		return
	}
	s.path = s.path[:len(s.path)-1]
	s.centers = s.centers[:len(s.centers)-1]
	parent := s.path[len(s.path)-1]
	center := s.centers[len(s.centers)-1]
	s.angles = menu.ResolveAngles(parent.Children)
	s.hovered = -1
	s.tracker.SetActiveItemPosition(center)
	if s.listener != nil {
		s.listener.OnSubmenuOpened(s.Path(), center)
		s.listener.OnHoverChanged(s.Path(), nil)
	}
}

// Cancel closes the session without a selection.
func (s *Session) Cancel() {
	if s.phase != Open {
		return
	}
	s.close(true)
}

func (s *Session) activeChildren() []*menu.Item {
	return s.path[len(s.path)-1].Children
}

// updateHover picks the angularly nearest child of the active submenu, or
// none inside the central dead zone.
func (s *Session) updateHover() {
	snap := s.tracker.Snapshot()
	next := -1
	if snap.Distance >= s.deadZone {
		children := s.activeChildren()
		bestDist := 360.0
		for i := range children {
			d := geometry.AngularDistance(snap.Angle, s.angles[i])
			if d < bestDist {
				bestDist = d
				next = i
			}
		}
	}
	if next == s.hovered {
		return
	}
	s.hovered = next
	if s.listener != nil {
		s.listener.OnHoverChanged(s.Path(), s.HoveredItem())
	}
}

// selectHovered resolves a completed click or gesture: the dead zone goes
// back one level, a submenu opens, a leaf finalizes the session.
func (s *Session) selectHovered() {
	if s.hovered < 0 {
		s.GoBack()
		return
	}
	item := s.activeChildren()[s.hovered]
	if item.IsSubmenu() {
		s.openSubmenu(item)
		return
	}
	log.Printf("session: selected %q (%s)", item.Name, item.Type)
	if s.listener != nil {
		s.listener.OnSelect(item, append(s.Path(), item))
	}
	s.close(false)
}

// openSubmenu pushes the item onto the path. The item's screen position
// becomes the new local origin for relative-angle computation; anchored
// menus keep every level at the original center instead.
func (s *Session) openSubmenu(item *menu.Item) {
	parentCenter := s.centers[len(s.centers)-1]
	center := parentCenter
	if !s.anchored {
		center = parentCenter.Add(geometry.DirectionAt(s.angles[s.hovered], s.childRadius))
	}

	s.path = append(s.path, item)
	s.centers = append(s.centers, center)
	s.angles = menu.ResolveAngles(item.Children)
	s.hovered = -1
	s.tracker.SetActiveItemPosition(center)
	if s.listener != nil {
		s.listener.OnSubmenuOpened(s.Path(), center)
		s.listener.OnHoverChanged(s.Path(), nil)
	}
}

func (s *Session) close(cancelled bool) {
	s.phase = Closed
	s.angles = nil
	s.hovered = -1
	if s.listener != nil {
		s.listener.OnClosed(cancelled)
	}
}
