package menu

import (
	"math"
	"testing"
)

func anglePtr(v float64) *float64 { return &v }

func freeItems(n int) []*Item {
	items := make([]*Item, n)
	for i := range items {
		items[i] = &Item{Type: TypeCommand, Name: "item", Data: ItemData{Command: "true"}}
	}
	return items
}

func assertAngles(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d angles, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("Expected angle[%d]=%v, got %v (all: %v)", i, want[i], got[i], got)
		}
	}
}

func TestResolveAnglesAllFree(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []float64
	}{
		{name: "Single item points up", n: 1, want: []float64{0}},
		{name: "Two items split the circle", n: 2, want: []float64{0, 180}},
		{name: "Four items on the cardinals", n: 4, want: []float64{0, 90, 180, 270}},
		{name: "Three items evenly", n: 3, want: []float64{0, 120, 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAngles(t, ResolveAngles(freeItems(tt.n)), tt.want)
		})
	}
}

func TestResolveAnglesKeepsFixed(t *testing.T) {
	items := freeItems(4)
	items[1].Angle = anglePtr(90)
	items[3].Angle = anglePtr(270)

	got := ResolveAngles(items)
	if got[1] != 90 || got[3] != 270 {
		t.Fatalf("Expected fixed angles untouched, got %v", got)
	}
	// One free item in each half: centered in its gap.
	assertAngles(t, got, []float64{0, 90, 180, 270})
}

func TestResolveAnglesSingleFixed(t *testing.T) {
	items := freeItems(4)
	items[0].Angle = anglePtr(90)

	// Remaining three spread over the full circle after 90°.
	assertAngles(t, ResolveAngles(items), []float64{90, 180, 270, 0})
}

func TestResolveAnglesUnevenRuns(t *testing.T) {
	items := freeItems(5)
	items[0].Angle = anglePtr(0)
	items[3].Angle = anglePtr(180)

	// Two free items in the first gap, one in the second.
	assertAngles(t, ResolveAngles(items), []float64{0, 60, 120, 180, 270})
}

func TestResolveAnglesDeterministic(t *testing.T) {
	items := freeItems(6)
	items[2].Angle = anglePtr(45)

	first := ResolveAngles(items)
	second := ResolveAngles(items)
	assertAngles(t, second, first)
}

func TestResolveAnglesDoesNotMutateItems(t *testing.T) {
	items := freeItems(3)
	items[1].Angle = anglePtr(120)

	_ = ResolveAngles(items)
	if items[0].Angle != nil || items[2].Angle != nil {
		t.Fatal("Expected free items to stay without an angle")
	}
	if *items[1].Angle != 120 {
		t.Fatalf("Expected fixed angle preserved, got %v", *items[1].Angle)
	}
}

func TestResolveAnglesEmpty(t *testing.T) {
	if got := ResolveAngles(nil); got != nil {
		t.Fatalf("Expected nil for empty input, got %v", got)
	}
}
