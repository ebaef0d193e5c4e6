package display

import (
	"image"
	"log"

	"github.com/kbinani/screenshot"

	"radial-menu/src/geometry"
)

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, bool) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		log.Printf("display: no active displays found")
		return image.Rectangle{}, false
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, true
}

// At returns the bounds of the display containing p, falling back to the
// primary display when p is outside every display.
func At(p geometry.Vec2) (image.Rectangle, bool) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, false
	}
	pt := image.Pt(int(p.X), int(p.Y))
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if pt.In(b) {
			return b, true
		}
	}
	return screenshot.GetDisplayBounds(0), true
}

// PlaceMenu decides where a menu session opens. Centered menus ignore the
// cursor and use the middle of the cursor's display; others open at the
// cursor, clamped so a ring of the given radius stays on screen.
func PlaceMenu(cursor geometry.Vec2, centered bool, radius float64) geometry.Vec2 {
	bounds, ok := At(cursor)
	if !ok {
		return cursor
	}
	if centered {
		return geometry.Vec2{
			X: float64(bounds.Min.X+bounds.Max.X) / 2,
			Y: float64(bounds.Min.Y+bounds.Max.Y) / 2,
		}
	}
	return ClampInto(bounds, cursor, radius)
}

// ClampInto moves p the minimal distance needed to keep a ring of the given
// radius around it inside bounds. Rings larger than the bounds settle on the
// center of the exceeded axis.
func ClampInto(bounds image.Rectangle, p geometry.Vec2, radius float64) geometry.Vec2 {
	clampAxis := func(v, min, max float64) float64 {
		if max-min < 2*radius {
			return (min + max) / 2
		}
		if v < min+radius {
			return min + radius
		}
		if v > max-radius {
			return max - radius
		}
		return v
	}
	return geometry.Vec2{
		X: clampAxis(p.X, float64(bounds.Min.X), float64(bounds.Max.X)),
		Y: clampAxis(p.Y, float64(bounds.Min.Y), float64(bounds.Max.Y)),
	}
}
