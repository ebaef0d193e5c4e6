package messages

import (
	"radial-menu/src/geometry"
	"radial-menu/src/menu"
)

// Message is the base interface for event-loop messages.
type Message interface {
	Type() string
}

const (
	TypeShowMenuRequested = "ShowMenuRequested"
	TypeMenuOpened        = "MenuOpened"
	TypeHoverChanged      = "HoverChanged"
	TypeSelectionMade     = "SelectionMade"
	TypeMenuClosed        = "MenuClosed"
	TypeConfigChanged     = "ConfigChanged"
	TypeActionComplete    = "ActionComplete"
	TypeQuitRequested     = "QuitRequested"
)

// ShowMenuRequested - a shortcut press or IPC request asks for a menu.
type ShowMenuRequested struct {
	// Name selects a menu by name (IPC requests).
	Name string
	// Trigger selects by shortcut or shortcut ID (hotkey presses).
	Trigger string
	// ModifierHeld marks requests whose opening shortcut holds a modifier,
	// so the session defers turbo mode until a fresh key press.
	ModifierHeld bool
	// Reply, when non-nil, receives the outcome once the loop has resolved
	// the request. Senders that need the result, such as the tray, set it;
	// fire-and-forget senders leave it nil. IPC requests respond on their
	// own connection instead.
	Reply chan error
}

func (m ShowMenuRequested) Type() string { return TypeShowMenuRequested }

// MenuOpened - a session started for the resolved menu.
type MenuOpened struct {
	MenuName string
	Center   geometry.Vec2
}

func (m MenuOpened) Type() string { return TypeMenuOpened }

// HoverChanged - the active hover target moved.
type HoverChanged struct {
	Path    []*menu.Item
	Hovered *menu.Item // nil when the center is active
}

func (m HoverChanged) Type() string { return TypeHoverChanged }

// SelectionMade - a leaf item was selected; its payload goes to the executor.
type SelectionMade struct {
	Item *menu.Item
	Path []*menu.Item
}

func (m SelectionMade) Type() string { return TypeSelectionMade }

// MenuClosed - the session ended, with or without a selection.
type MenuClosed struct {
	Cancelled bool
}

func (m MenuClosed) Type() string { return TypeMenuClosed }

// ConfigChanged - a watched configuration file changed on disk.
type ConfigChanged struct {
	Path string
}

func (m ConfigChanged) Type() string { return TypeConfigChanged }

// ActionComplete - the worker pool finished executing a selection.
type ActionComplete struct {
	ItemName string
	Err      error
}

func (m ActionComplete) Type() string { return TypeActionComplete }

// QuitRequested - tray or signal asked the application to exit.
type QuitRequested struct{}

func (m QuitRequested) Type() string { return TypeQuitRequested }
