package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"radial-menu/src/menu"
)

func TestLoad(t *testing.T) {
	os.Setenv("HOTKEY", "Ctrl+Shift+M")
	os.Setenv("ENABLE_FILE_LOGGING", "true")
	os.Setenv("DEAD_ZONE_RADIUS", "75")
	defer func() {
		os.Unsetenv("HOTKEY")
		os.Unsetenv("ENABLE_FILE_LOGGING")
		os.Unsetenv("DEAD_ZONE_RADIUS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Hotkey != "Ctrl+Shift+M" {
		t.Errorf("Expected Hotkey 'Ctrl+Shift+M', got '%s'", cfg.Hotkey)
	}
	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true, got %v", cfg.EnableFileLogging)
	}
	if cfg.DeadZoneRadius != 75 {
		t.Errorf("Expected DeadZoneRadius 75, got %v", cfg.DeadZoneRadius)
	}
	if cfg.ChildRadius != DefaultChildRadius {
		t.Errorf("Expected default ChildRadius, got %v", cfg.ChildRadius)
	}
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("HOTKEY")
	os.Unsetenv("ENABLE_FILE_LOGGING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Hotkey != DefaultHotkey {
		t.Errorf("Expected default hotkey, got '%s'", cfg.Hotkey)
	}
	if cfg.EnableFileLogging {
		t.Error("Expected file logging disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{HotkeyOverride: "Super+Space", MenuFileOverride: "/tmp/menus.json"})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Hotkey != "Super+Space" {
		t.Errorf("Expected override hotkey, got '%s'", cfg.Hotkey)
	}
	if cfg.MenuFile != "/tmp/menus.json" {
		t.Errorf("Expected override menu file, got '%s'", cfg.MenuFile)
	}
}

func TestLoadMenusMissingFileFallsBack(t *testing.T) {
	doc, err := LoadMenus(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected default document, got error %v", err)
	}
	if len(doc.Menus) == 0 {
		t.Fatal("Expected at least one default menu")
	}
	if err := ValidateDocument(doc); err != nil {
		t.Fatalf("Default document must validate: %v", err)
	}
}

func TestLoadMenusRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMenus(path); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestLoadMenusFromFile(t *testing.T) {
	raw := `{
		"menus": [{
			"shortcut": "Ctrl+Space",
			"root": {
				"type": "submenu",
				"name": "Test",
				"children": [
					{"type": "command", "name": "A", "data": {"command": "true"}},
					{"type": "command", "name": "B", "angle": 90, "data": {"command": "false"}}
				]
			}
		}]
	}`
	path := filepath.Join(t.TempDir(), "menus.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadMenus(path)
	if err != nil {
		t.Fatalf("LoadMenus failed: %v", err)
	}
	if len(doc.Menus) != 1 || doc.Menus[0].Name() != "Test" {
		t.Fatalf("Expected one menu named Test, got %+v", doc.Menus)
	}
}

func TestValidateFixedAngleOrdering(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "Ascending fixed angles",
			raw:  `[{"type":"command","name":"a","angle":10,"data":{"command":"x"}},{"type":"command","name":"b","angle":200,"data":{"command":"x"}}]`,
		},
		{
			name: "Single wrap is cyclic",
			raw:  `[{"type":"command","name":"a","angle":300,"data":{"command":"x"}},{"type":"command","name":"b","angle":10,"data":{"command":"x"}}]`,
		},
		{
			name:    "Duplicate fixed angles",
			raw:     `[{"type":"command","name":"a","angle":90,"data":{"command":"x"}},{"type":"command","name":"b","angle":90,"data":{"command":"x"}}]`,
			wantErr: true,
		},
		{
			name:    "Two descents are not cyclic",
			raw:     `[{"type":"command","name":"a","angle":200,"data":{"command":"x"}},{"type":"command","name":"b","angle":100,"data":{"command":"x"}},{"type":"command","name":"c","angle":50,"data":{"command":"x"}}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := docWithChildren(tt.raw)
			if err != nil {
				t.Fatalf("fixture: %v", err)
			}
			err = ValidateDocument(doc)
			if tt.wantErr && err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected valid document, got %v", err)
			}
		})
	}
}

func docWithChildren(childrenJSON string) (*MenuDocument, error) {
	raw := `{"menus":[{"root":{"type":"submenu","name":"M","children":` + childrenJSON + `}}]}`
	var doc MenuDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func TestValidateConditionRegex(t *testing.T) {
	doc := DefaultMenuDocument()

	doc.Menus[0].Conditions = &menu.Conditions{AppName: "/^Fire.*$/"}
	if err := ValidateDocument(doc); err != nil {
		t.Fatalf("Expected valid regex condition, got %v", err)
	}

	doc.Menus[0].Conditions = &menu.Conditions{AppName: "/[/"}
	if err := ValidateDocument(doc); err == nil {
		t.Fatal("Expected error for uncompilable regex")
	}
}
