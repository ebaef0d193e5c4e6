package menu

import (
	"encoding/json"
	"testing"

	"radial-menu/src/geometry"
)

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    *Item
		wantErr bool
	}{
		{
			name: "Valid command leaf",
			item: &Item{Type: TypeCommand, Name: "Terminal", Data: ItemData{Command: "xterm"}},
		},
		{
			name:    "Command without payload",
			item:    &Item{Type: TypeCommand, Name: "Broken"},
			wantErr: true,
		},
		{
			name:    "Leaf with children",
			item:    &Item{Type: TypeURI, Name: "Web", Data: ItemData{URI: "https://example.com"}, Children: []*Item{{Type: TypeText, Name: "x", Data: ItemData{Text: "y"}}}},
			wantErr: true,
		},
		{
			name:    "Submenu without children",
			item:    &Item{Type: TypeSubmenu, Name: "Empty"},
			wantErr: true,
		},
		{
			name:    "Angle out of range",
			item:    &Item{Type: TypeText, Name: "T", Data: ItemData{Text: "t"}, Angle: anglePtr(360)},
			wantErr: true,
		},
		{
			name: "Nested submenu",
			item: &Item{Type: TypeSubmenu, Name: "Apps", Children: []*Item{
				{Type: TypeCommand, Name: "Editor", Data: ItemData{Command: "code"}},
			}},
		},
		{
			name:    "Invalid nested child",
			item:    &Item{Type: TypeSubmenu, Name: "Apps", Children: []*Item{{Type: TypeMacro, Name: "M"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected valid item, got %v", err)
			}
		})
	}
}

func TestScreenAreaContains(t *testing.T) {
	xMin, xMax := 100.0, 200.0
	tests := []struct {
		name string
		area ScreenArea
		p    geometry.Vec2
		want bool
	}{
		{name: "Unbounded matches everything", area: ScreenArea{}, p: geometry.Vec2{X: -5000, Y: 9000}, want: true},
		{name: "Inside closed X range", area: ScreenArea{XMin: &xMin, XMax: &xMax}, p: geometry.Vec2{X: 150}, want: true},
		{name: "Left of range", area: ScreenArea{XMin: &xMin}, p: geometry.Vec2{X: 99}, want: false},
		{name: "Boundary is inclusive", area: ScreenArea{XMax: &xMax}, p: geometry.Vec2{X: 200}, want: true},
		{name: "Half open Y", area: ScreenArea{YMin: &xMin}, p: geometry.Vec2{Y: 50}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.area.Contains(tt.p); got != tt.want {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMenuJSONRoundTripKeepsAngles(t *testing.T) {
	raw := `{
		"root": {
			"type": "submenu",
			"name": "Main",
			"children": [
				{"type": "command", "name": "Top", "angle": 0, "data": {"command": "true"}},
				{"type": "uri", "name": "Docs", "data": {"uri": "https://example.com"}}
			]
		},
		"shortcut": "Ctrl+Space",
		"centered": true
	}`

	var m Menu
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if m.Name() != "Main" {
		t.Fatalf("Expected name Main, got %q", m.Name())
	}
	if m.Root.Children[0].Angle == nil || *m.Root.Children[0].Angle != 0 {
		t.Fatal("Expected explicit zero angle to survive decoding")
	}
	if m.Root.Children[1].Angle != nil {
		t.Fatal("Expected absent angle to stay nil")
	}
}
