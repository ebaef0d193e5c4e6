package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"radial-menu/src/menu"
)

// MenuDocument is the on-disk menu configuration: the configured menus plus
// reusable template items. Templates are parsed and exposed verbatim; only
// the editor collaborator interprets them.
type MenuDocument struct {
	Menus     []*menu.Menu `json:"menus"`
	Templates []*menu.Item `json:"templates,omitempty"`
}

// LoadMenus reads and validates the menu document. A missing file yields the
// built-in default document; a malformed one is an error so the caller can
// keep the previous good configuration.
func LoadMenus(path string) (*MenuDocument, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("config: %s not found, using default menu", path)
		return DefaultMenuDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read menu config: %w", err)
	}

	var doc MenuDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu config: %w", err)
	}
	if err := ValidateDocument(&doc); err != nil {
		return nil, fmt.Errorf("invalid menu config: %w", err)
	}
	return &doc, nil
}

// ValidateDocument checks everything the interaction core assumes: item
// trees are well-formed, fixed sibling angles are distinct and in cyclic
// order, and regex conditions compile.
func ValidateDocument(doc *MenuDocument) error {
	if len(doc.Menus) == 0 {
		return fmt.Errorf("no menus configured")
	}
	for _, m := range doc.Menus {
		if err := m.Validate(); err != nil {
			return err
		}
		if err := validateFixedAngles(m.Root); err != nil {
			return fmt.Errorf("menu %q: %w", m.Name(), err)
		}
		if err := validateConditions(m.Conditions); err != nil {
			return fmt.Errorf("menu %q: %w", m.Name(), err)
		}
	}
	for _, t := range doc.Templates {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("template: %w", err)
		}
	}
	return nil
}

// validateFixedAngles rejects duplicate fixed angles among siblings and
// fixed angles that are not ascending after the first one, modulo 360. The
// layout resolver relies on both.
func validateFixedAngles(item *menu.Item) error {
	var fixed []float64
	for _, c := range item.Children {
		if c.Angle != nil {
			fixed = append(fixed, *c.Angle)
		}
	}
	for i := 1; i < len(fixed); i++ {
		if fixed[i] == fixed[i-1] {
			return fmt.Errorf("duplicate fixed angle %v under %q", fixed[i], item.Name)
		}
	}
	// Cyclic order: at most one descent when walking the list once.
	descents := 0
	for i := 1; i < len(fixed); i++ {
		if fixed[i] < fixed[i-1] {
			descents++
		}
	}
	if descents > 1 {
		return fmt.Errorf("fixed angles under %q are not in cyclic order", item.Name)
	}
	for _, c := range item.Children {
		if err := validateFixedAngles(c); err != nil {
			return err
		}
	}
	return nil
}

func validateConditions(c *menu.Conditions) error {
	if c == nil {
		return nil
	}
	for _, pattern := range []string{c.AppName, c.WindowName} {
		if len(pattern) > 1 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
			if _, err := regexp.Compile(pattern[1 : len(pattern)-1]); err != nil {
				return fmt.Errorf("condition regex %q: %w", pattern, err)
			}
		}
	}
	if a := c.ScreenArea; a != nil {
		if a.XMin != nil && a.XMax != nil && *a.XMax < *a.XMin {
			return fmt.Errorf("screen area has xMax < xMin")
		}
		if a.YMin != nil && a.YMax != nil && *a.YMax < *a.YMin {
			return fmt.Errorf("screen area has yMax < yMin")
		}
	}
	return nil
}

// DefaultMenuDocument is the fallback used when no menus.json exists yet.
func DefaultMenuDocument() *MenuDocument {
	return &MenuDocument{
		Menus: []*menu.Menu{
			{
				Shortcut: DefaultHotkey,
				Centered: false,
				Root: &menu.Item{
					Type: menu.TypeSubmenu,
					Name: "Example Menu",
					Children: []*menu.Item{
						{Type: menu.TypeURI, Name: "Web Browser", Icon: "globe",
							Data: menu.ItemData{URI: "https://example.com"}},
						{Type: menu.TypeCommand, Name: "Terminal", Icon: "terminal",
							Data: menu.ItemData{Command: "xterm"}},
						{Type: menu.TypeText, Name: "Greeting", Icon: "text",
							Data: menu.ItemData{Text: "Hello from the radial menu!"}},
						{Type: menu.TypeHotkey, Name: "Copy", Icon: "copy",
							Data: menu.ItemData{Hotkey: "Ctrl+C"}},
					},
				},
			},
		},
	}
}
