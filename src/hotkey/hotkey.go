package hotkey

import (
	"log"

	gohook "github.com/robotn/gohook"
)

// Binding associates a shortcut combo with the menu it should open. ID is
// opaque to this package; the event loop resolves it.
type Binding struct {
	ID    string
	Combo string
}

// Events receives everything the global hook produces. Callbacks run on the
// hook goroutine; implementations must hand off to their own loop instead of
// doing work inline.
type Events interface {
	// OnShortcut fires when a bound combo is fully pressed.
	OnShortcut(id string)
	// OnPointerMove fires for every pointer motion or drag sample.
	OnPointerMove(x, y float64, anyModifier, anyButton bool)
	// OnPointerDown fires on a button press.
	OnPointerDown(x, y float64, anyModifier bool)
	// OnPointerUp fires on a button release.
	OnPointerUp()
	// OnModifierDown fires when a modifier key goes down.
	OnModifierDown()
	// OnModifierUp fires when a modifier key goes up; anyHeld reports
	// whether other modifiers remain pressed.
	OnModifierUp(anyHeld bool)
	// OnEscape fires on the Escape key (menu cancel).
	OnEscape()
}

// binding is the compiled per-shortcut press state, one entry per key.
type binding struct {
	id       string
	combo    string
	rawcodes [][]uint16
	pressed  []bool
}

func (b *binding) allPressed() bool {
	for _, p := range b.pressed {
		if !p {
			return false
		}
	}
	return len(b.pressed) > 0
}

func (b *binding) reset() {
	for i := range b.pressed {
		b.pressed[i] = false
	}
}

// Listen starts the global input hook and dispatches events until the hook
// channel closes. It spawns its own goroutine and returns immediately.
// The hook library supports only one Start per process, so Listen must be
// called exactly once.
func Listen(bindings []Binding, ev Events) {
	var compiled []*binding
	for _, b := range bindings {
		cb := compileBinding(b)
		if cb == nil {
			continue
		}
		compiled = append(compiled, cb)
		log.Printf("hotkey: bound %q -> %s", b.Combo, b.ID)
	}
	if len(compiled) == 0 {
		log.Printf("hotkey: no valid bindings configured")
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("hotkey: panic in hook goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("hotkey: hook start returned nil channel")
			return
		}

		heldModifiers := make(map[uint16]bool)
		heldButtons := make(map[uint16]bool)

		for e := range evChan {
			switch e.Kind {
			case gohook.KeyDown, gohook.KeyHold:
				if e.Kind == gohook.KeyDown && e.Rawcode == EscapeRawcode {
					ev.OnEscape()
				}
				if isModifierRawcode(e.Rawcode) && !heldModifiers[e.Rawcode] {
					heldModifiers[e.Rawcode] = true
					ev.OnModifierDown()
				}
				if e.Kind == gohook.KeyDown {
					for _, b := range compiled {
						if b.press(e.Rawcode) && b.allPressed() {
							log.Printf("hotkey: combo %q detected", b.combo)
							b.reset()
							ev.OnShortcut(b.id)
						}
					}
				}
			case gohook.KeyUp:
				if isModifierRawcode(e.Rawcode) && heldModifiers[e.Rawcode] {
					delete(heldModifiers, e.Rawcode)
					ev.OnModifierUp(len(heldModifiers) > 0)
				}
				for _, b := range compiled {
					b.release(e.Rawcode)
				}
			case gohook.MouseDown:
				heldButtons[e.Button] = true
				ev.OnPointerDown(float64(e.X), float64(e.Y), len(heldModifiers) > 0)
			case gohook.MouseUp:
				delete(heldButtons, e.Button)
				ev.OnPointerUp()
			case gohook.MouseMove, gohook.MouseDrag:
				ev.OnPointerMove(float64(e.X), float64(e.Y),
					len(heldModifiers) > 0, len(heldButtons) > 0)
			}
		}
		log.Printf("hotkey: event channel closed")
	}()
}

// Stop ends the global hook. After Stop, Listen cannot be called again.
func Stop() {
	gohook.End()
}

func compileBinding(b Binding) *binding {
	keys := parseHotkey(b.Combo)
	if len(keys) == 0 {
		log.Printf("hotkey: empty combo for %s", b.ID)
		return nil
	}
	cb := &binding{id: b.ID, combo: b.Combo}
	for _, key := range keys {
		codes := keyNameToRawcodes(key)
		if len(codes) == 0 {
			log.Printf("hotkey: cannot map key %q in combo %q", key, b.Combo)
			return nil
		}
		cb.rawcodes = append(cb.rawcodes, codes)
		cb.pressed = append(cb.pressed, false)
	}
	return cb
}

// press marks a matching key as held and reports whether the rawcode belongs
// to this binding.
func (b *binding) press(rc uint16) bool {
	matched := false
	for i, variants := range b.rawcodes {
		for _, c := range variants {
			if c == rc {
				b.pressed[i] = true
				matched = true
				break
			}
		}
	}
	return matched
}

func (b *binding) release(rc uint16) {
	for i, variants := range b.rawcodes {
		for _, c := range variants {
			if c == rc {
				b.pressed[i] = false
				break
			}
		}
	}
}
