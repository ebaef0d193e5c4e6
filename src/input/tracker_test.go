package input

import (
	"testing"

	"radial-menu/src/geometry"
)

func TestDragThresholdBoundary(t *testing.T) {
	tr := NewTracker()
	tr.OnPointerDown(geometry.Vec2{X: 0, Y: 0}, false, true)
	if tr.State() != Clicked {
		t.Fatalf("Expected Clicked after pointer down, got %v", tr.State())
	}

	// Distance exactly 5: still a click.
	tr.OnMotion(geometry.Vec2{X: 3, Y: 4}, false, true)
	if tr.State() != Clicked {
		t.Fatalf("Expected Clicked at distance 5, got %v", tr.State())
	}

	// Distance 10: now a drag.
	tr.OnMotion(geometry.Vec2{X: 6, Y: 8}, false, true)
	if tr.State() != Dragging {
		t.Fatalf("Expected Dragging at distance 10, got %v", tr.State())
	}
}

func TestDragEndsWhenButtonsReleased(t *testing.T) {
	tr := NewTracker()
	tr.OnPointerDown(geometry.Vec2{}, false, true)
	tr.OnMotion(geometry.Vec2{X: 20, Y: 0}, false, true)
	if tr.State() != Dragging {
		t.Fatalf("Expected Dragging, got %v", tr.State())
	}

	// Motion with no buttons held falls back to Released.
	tr.OnMotion(geometry.Vec2{X: 25, Y: 0}, false, false)
	if tr.State() != Released {
		t.Fatalf("Expected Released without buttons, got %v", tr.State())
	}
}

func TestPointerUpReleases(t *testing.T) {
	tr := NewTracker()
	tr.OnPointerDown(geometry.Vec2{}, false, true)
	tr.OnPointerUp()
	if tr.State() != Released {
		t.Fatalf("Expected Released after pointer up, got %v", tr.State())
	}
}

func TestTurboModeLatch(t *testing.T) {
	tr := NewTracker()

	// Modifier held during motion activates turbo and forces Dragging even
	// though no button is down.
	tr.OnMotion(geometry.Vec2{X: 10, Y: 10}, true, false)
	if !tr.TurboMode() {
		t.Fatal("Expected turbo mode after modifier-held motion")
	}
	if tr.State() != Dragging {
		t.Fatalf("Expected Dragging in turbo mode, got %v", tr.State())
	}

	// Later motions without the modifier flag must not clear the latch.
	tr.OnMotion(geometry.Vec2{X: 12, Y: 10}, false, false)
	if !tr.TurboMode() {
		t.Fatal("Expected turbo mode to stay latched across motion events")
	}
	if tr.State() != Dragging {
		t.Fatalf("Expected Dragging to persist, got %v", tr.State())
	}

	// Key up with another modifier still held keeps turbo.
	tr.OnKeyUp(true)
	if !tr.TurboMode() {
		t.Fatal("Expected turbo mode while a modifier is still held")
	}

	// Final key up clears it.
	tr.OnKeyUp(false)
	if tr.TurboMode() {
		t.Fatal("Expected turbo mode cleared after all modifiers released")
	}
}

func TestDeferredTurboMode(t *testing.T) {
	tr := NewTracker()
	tr.SetDeferredTurboMode(true)

	// A modifier already held at menu-open time must not activate turbo.
	tr.OnMotion(geometry.Vec2{X: 1, Y: 1}, true, false)
	if tr.TurboMode() {
		t.Fatal("Expected deferred turbo to ignore pre-held modifiers")
	}
	tr.OnKeyDown()
	if tr.TurboMode() {
		t.Fatal("Expected key down to be ignored while deferral is armed")
	}

	// Releasing all modifiers disarms the deferral; the next key down
	// activates turbo.
	tr.OnKeyUp(false)
	tr.OnKeyDown()
	if !tr.TurboMode() {
		t.Fatal("Expected turbo mode after deferral was lifted")
	}
}

func TestKeyDownActivatesTurboWithoutPointer(t *testing.T) {
	tr := NewTracker()
	tr.OnKeyDown()
	if !tr.TurboMode() {
		t.Fatal("Expected turbo mode from key down alone")
	}
	tr.OnMotion(geometry.Vec2{X: 5, Y: 5}, false, false)
	if tr.State() != Dragging {
		t.Fatalf("Expected Dragging via keyboard-only gesture, got %v", tr.State())
	}
}

func TestMotionIgnoreCounter(t *testing.T) {
	tr := NewTracker()
	tr.ResetMotionIgnore()

	var got []geometry.Vec2
	tr.Subscribe(func(p geometry.Vec2, dragging bool) {
		got = append(got, p)
	})

	tr.OnMotion(geometry.Vec2{X: 1}, false, false)
	tr.OnMotion(geometry.Vec2{X: 2}, false, false)
	tr.OnMotion(geometry.Vec2{X: 3}, false, false)

	if len(got) != 1 {
		t.Fatalf("Expected exactly 1 accepted motion, got %d", len(got))
	}
	if got[0].X != 3 {
		t.Fatalf("Expected the third event to be processed, got X=%v", got[0].X)
	}
}

func TestSnapshotGeometry(t *testing.T) {
	tr := NewTracker()
	tr.SetActiveItemPosition(geometry.Vec2{X: 100, Y: 100})
	tr.OnMotion(geometry.Vec2{X: 100, Y: 50}, false, false)

	snap := tr.Snapshot()
	if snap.Absolute != (geometry.Vec2{X: 100, Y: 50}) {
		t.Fatalf("Expected absolute (100,50), got %+v", snap.Absolute)
	}
	if snap.Relative != (geometry.Vec2{X: 0, Y: -50}) {
		t.Fatalf("Expected relative (0,-50), got %+v", snap.Relative)
	}
	if snap.Distance != 50 {
		t.Fatalf("Expected distance 50, got %v", snap.Distance)
	}
	if snap.Angle != 0 {
		t.Fatalf("Expected angle 0 (straight up), got %v", snap.Angle)
	}
}

func TestMotionObserverDraggingFlag(t *testing.T) {
	tr := NewTracker()

	var lastDragging bool
	var calls int
	tr.Subscribe(func(p geometry.Vec2, dragging bool) {
		lastDragging = dragging
		calls++
	})

	tr.OnMotion(geometry.Vec2{X: 1}, false, false)
	if calls != 1 || lastDragging {
		t.Fatalf("Expected non-dragging notification, calls=%d dragging=%v", calls, lastDragging)
	}

	tr.OnPointerDown(geometry.Vec2{X: 1}, false, true)
	tr.OnMotion(geometry.Vec2{X: 30}, false, true)
	if !lastDragging {
		t.Fatal("Expected dragging notification after threshold crossed")
	}
}

func TestResetClearsGestureState(t *testing.T) {
	tr := NewTracker()
	tr.OnKeyDown()
	tr.OnPointerDown(geometry.Vec2{X: 9}, true, true)
	tr.Reset()

	if tr.State() != Released {
		t.Fatalf("Expected Released after reset, got %v", tr.State())
	}
	if tr.TurboMode() {
		t.Fatal("Expected turbo cleared after reset")
	}
}
