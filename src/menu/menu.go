package menu

import (
	"fmt"

	"radial-menu/src/geometry"
)

// ItemType discriminates what selecting an item does. The core never
// interprets the payload of action types; it only routes them.
type ItemType string

const (
	TypeSubmenu ItemType = "submenu"
	TypeCommand ItemType = "command"
	TypeURI     ItemType = "uri"
	TypeHotkey  ItemType = "hotkey"
	TypeMacro   ItemType = "macro"
	TypeText    ItemType = "text"
)

// ItemData is the per-type payload of a leaf item. Only the fields matching
// the item's Type are meaningful; Validate enforces the shape early so the
// executor never sees a malformed payload.
type ItemData struct {
	// Command is a shell command line (TypeCommand).
	Command string `json:"command,omitempty"`
	// Detached runs the command without waiting for it (TypeCommand).
	Detached bool `json:"detached,omitempty"`
	// URI is opened with the platform handler (TypeURI).
	URI string `json:"uri,omitempty"`
	// Hotkey is a key combination to inject, e.g. "Ctrl+C" (TypeHotkey).
	Hotkey string `json:"hotkey,omitempty"`
	// Text is copied to the clipboard (TypeText).
	Text string `json:"text,omitempty"`
	// Macro is an ordered list of key events to inject (TypeMacro).
	Macro []MacroEvent `json:"macro,omitempty"`
}

// MacroEvent is one step of a macro payload.
type MacroEvent struct {
	Type  string `json:"type"` // "keyDown" or "keyUp"
	Key   string `json:"key"`
	Delay int    `json:"delay,omitempty"` // milliseconds before the event
}

// Item is a node of the menu tree. An item with children acts as a submenu
// regardless of its Type tag; leaves carry an action payload.
type Item struct {
	Type      ItemType `json:"type"`
	Data      ItemData `json:"data,omitempty"`
	Name      string   `json:"name"`
	Icon      string   `json:"icon,omitempty"`
	IconTheme string   `json:"iconTheme,omitempty"`
	Children  []*Item  `json:"children,omitempty"`
	// Angle, when set, pins the item at that angle in degrees (0° = up,
	// clockwise). Items without it are distributed by ResolveAngles.
	Angle *float64 `json:"angle,omitempty"`
}

// IsSubmenu reports whether the item is navigable as a submenu.
func (it *Item) IsSubmenu() bool {
	return len(it.Children) > 0
}

// Validate checks the structural invariants of the item subtree.
func (it *Item) Validate() error {
	if it.Name == "" {
		return fmt.Errorf("menu item without a name")
	}
	if it.Type == TypeSubmenu && len(it.Children) == 0 {
		return fmt.Errorf("submenu %q has no children", it.Name)
	}
	if it.Type != TypeSubmenu && len(it.Children) > 0 {
		return fmt.Errorf("%s item %q must not have children", it.Type, it.Name)
	}
	if it.Angle != nil && (*it.Angle < 0 || *it.Angle >= 360) {
		return fmt.Errorf("item %q: angle %v outside [0,360)", it.Name, *it.Angle)
	}
	switch it.Type {
	case TypeSubmenu:
	case TypeCommand:
		if it.Data.Command == "" {
			return fmt.Errorf("command item %q has no command", it.Name)
		}
	case TypeURI:
		if it.Data.URI == "" {
			return fmt.Errorf("uri item %q has no uri", it.Name)
		}
	case TypeHotkey:
		if it.Data.Hotkey == "" {
			return fmt.Errorf("hotkey item %q has no hotkey", it.Name)
		}
	case TypeText:
		if it.Data.Text == "" {
			return fmt.Errorf("text item %q has no text", it.Name)
		}
	case TypeMacro:
		if len(it.Data.Macro) == 0 {
			return fmt.Errorf("macro item %q has no events", it.Name)
		}
	default:
		return fmt.Errorf("item %q has unknown type %q", it.Name, it.Type)
	}
	for _, c := range it.Children {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ScreenArea is an axis-aligned rectangle with optionally unbounded edges.
type ScreenArea struct {
	XMin *float64 `json:"xMin,omitempty"`
	XMax *float64 `json:"xMax,omitempty"`
	YMin *float64 `json:"yMin,omitempty"`
	YMax *float64 `json:"yMax,omitempty"`
}

// Contains reports whether p falls inside the (possibly half-open) area.
func (a *ScreenArea) Contains(p geometry.Vec2) bool {
	if a.XMin != nil && p.X < *a.XMin {
		return false
	}
	if a.XMax != nil && p.X > *a.XMax {
		return false
	}
	if a.YMin != nil && p.Y < *a.YMin {
		return false
	}
	if a.YMax != nil && p.Y > *a.YMax {
		return false
	}
	return true
}

// Conditions restrict when a menu is eligible for a show request. All fields
// are optional; present fields must all be satisfied.
type Conditions struct {
	// AppName matches the focused application's name, either as a
	// case-insensitive substring or as /regex/ when delimited with slashes.
	AppName string `json:"appName,omitempty"`
	// WindowName matches the focused window title, same semantics as AppName.
	WindowName string `json:"windowName,omitempty"`
	// ScreenArea must contain the cursor position.
	ScreenArea *ScreenArea `json:"screenArea,omitempty"`
}

// Menu is one configured radial menu.
type Menu struct {
	Root       *Item       `json:"root"`
	Shortcut   string      `json:"shortcut,omitempty"`
	ShortcutID string      `json:"shortcutID,omitempty"`
	Centered   bool        `json:"centered,omitempty"`
	Anchored   bool        `json:"anchored,omitempty"`
	Conditions *Conditions `json:"conditions,omitempty"`
}

// Name returns the menu's display name (the root item's name).
func (m *Menu) Name() string {
	if m.Root == nil {
		return ""
	}
	return m.Root.Name
}

// Validate checks the menu's structural invariants.
func (m *Menu) Validate() error {
	if m.Root == nil {
		return fmt.Errorf("menu without a root item")
	}
	if !m.Root.IsSubmenu() {
		return fmt.Errorf("menu %q root has no children", m.Root.Name)
	}
	return m.Root.Validate()
}
