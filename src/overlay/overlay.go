package overlay

import (
	"log"

	"radial-menu/src/geometry"
	"radial-menu/src/menu"
)

// Renderer is the contract with the rendering collaborator. The event loop
// calls it synchronously from its single goroutine; implementations that
// draw must hand off to their own UI thread.
type Renderer interface {
	// OnOpen shows the menu window for a new session.
	OnOpen(menuName string, center geometry.Vec2)
	// OnMotion forwards an accepted pointer sample.
	OnMotion(absolute geometry.Vec2, dragging bool)
	// OnHoverChanged highlights the hovered item; nil means the center.
	OnHoverChanged(path []*menu.Item, hovered *menu.Item)
	// OnSubmenuOpened re-centers rendering on a new submenu level.
	OnSubmenuOpened(path []*menu.Item, center geometry.Vec2)
	// OnSelect plays the selection feedback for the chosen leaf.
	OnSelect(item *menu.Item, path []*menu.Item)
	// OnClosed hides the menu window.
	OnClosed(cancelled bool)
}

// logRenderer is the headless fallback used by tests and the CLI: it only
// logs decisions. The session still runs fully without any window.
type logRenderer struct{}

// NewLogRenderer returns the headless renderer.
func NewLogRenderer() Renderer { return logRenderer{} }

func (logRenderer) OnOpen(menuName string, center geometry.Vec2) {
	log.Printf("overlay: open %q at (%v,%v)", menuName, center.X, center.Y)
}

func (logRenderer) OnMotion(absolute geometry.Vec2, dragging bool) {}

func (logRenderer) OnHoverChanged(path []*menu.Item, hovered *menu.Item) {
	if hovered == nil {
		log.Printf("overlay: hover center")
		return
	}
	log.Printf("overlay: hover %q", hovered.Name)
}

func (logRenderer) OnSubmenuOpened(path []*menu.Item, center geometry.Vec2) {
	log.Printf("overlay: submenu level %d at (%v,%v)", len(path), center.X, center.Y)
}

func (logRenderer) OnSelect(item *menu.Item, path []*menu.Item) {
	log.Printf("overlay: selected %q", item.Name)
}

func (logRenderer) OnClosed(cancelled bool) {
	log.Printf("overlay: closed (cancelled=%v)", cancelled)
}
