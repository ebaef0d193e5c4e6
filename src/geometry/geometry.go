package geometry

import "math"

// Vec2 is a point or displacement in screen space. Y grows downwards,
// matching window-system coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in degrees in [0, 360), with 0° pointing
// up and angles growing clockwise (90° = right). The zero vector maps to 0°.
func (v Vec2) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	// Screen Y points down, so "up" is -Y.
	deg := math.Atan2(v.X, -v.Y) * 180 / math.Pi
	return NormalizeAngle(deg)
}

// NormalizeAngle maps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngularDistance returns the minimal cyclic distance between two angles in
// degrees, always in [0, 180].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DirectionAt returns the unit displacement for an angle in degrees
// (0° = up, clockwise) scaled by length.
func DirectionAt(deg, length float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{X: math.Sin(rad) * length, Y: -math.Cos(rad) * length}
}
