package focus

import "radial-menu/src/geometry"

// Info describes the invocation context of a show request: which app and
// window are focused and where the cursor is.
type Info struct {
	AppName    string
	WindowName string
	Cursor     geometry.Vec2
	// CursorKnown is false when the platform cannot report the pointer;
	// the caller then falls back to the display center.
	CursorKnown bool
}

// Provider queries the current invocation context.
type Provider interface {
	Current() Info
}

// NewProvider returns the platform implementation.
func NewProvider() Provider {
	return newPlatformProvider()
}
