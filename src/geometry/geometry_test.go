package geometry

import (
	"math"
	"testing"
)

func TestVec2Angle(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want float64
	}{
		{name: "Up is zero degrees", v: Vec2{X: 0, Y: -1}, want: 0},
		{name: "Right is ninety", v: Vec2{X: 1, Y: 0}, want: 90},
		{name: "Down is one-eighty", v: Vec2{X: 0, Y: 1}, want: 180},
		{name: "Left is two-seventy", v: Vec2{X: -1, Y: 0}, want: 270},
		{name: "Upper right diagonal", v: Vec2{X: 1, Y: -1}, want: 45},
		{name: "Lower left diagonal", v: Vec2{X: -1, Y: 1}, want: 225},
		{name: "Zero vector maps to zero", v: Vec2{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Angle()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Expected angle %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVec2SubLen(t *testing.T) {
	a := Vec2{X: 100, Y: 100}
	b := Vec2{X: 103, Y: 104}
	d := b.Sub(a)
	if d.X != 3 || d.Y != 4 {
		t.Fatalf("Expected (3,4), got (%v,%v)", d.X, d.Y)
	}
	if d.Len() != 5 {
		t.Fatalf("Expected length 5, got %v", d.Len())
	}
}

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{name: "Same angle", a: 90, b: 90, want: 0},
		{name: "Quarter turn", a: 0, b: 90, want: 90},
		{name: "Wraps across zero", a: 350, b: 10, want: 20},
		{name: "Never exceeds half turn", a: 0, b: 270, want: 90},
		{name: "Unnormalized inputs", a: -10, b: 370, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Expected distance %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDirectionAtRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		v := DirectionAt(deg, 50)
		if math.Abs(v.Len()-50) > 1e-9 {
			t.Fatalf("Expected length 50 at %v°, got %v", deg, v.Len())
		}
		if math.Abs(v.Angle()-deg) > 1e-9 {
			t.Fatalf("Expected angle %v, got %v", deg, v.Angle())
		}
	}
}
