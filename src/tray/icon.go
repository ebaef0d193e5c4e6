package tray

import (
	_ "embed"
)

// Embedded SVG icon data
//
//go:embed icon.svg
var IconSVG string

// iconBytes returns the tray icon in a format systray accepts. Most
// implementations take PNG/ICO; SVG works on Linux trays and is what we
// ship, other platforms fall back to a title-only entry.
func iconBytes() []byte {
	return []byte(IconSVG)
}
