package hotkey

import (
	"log"
	"strings"
)

// Rawcode tables for Windows virtual-key codes, the common denominator the
// hook library reports. Modifiers list both left and right variants.
var modifierRawcodes = map[string][]uint16{
	"ctrl":  {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":   {164, 165}, // VK_LMENU, VK_RMENU
	"shift": {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":   {91, 92},   // VK_LWIN, VK_RWIN
}

var specialRawcodes = map[string][]uint16{
	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

// EscapeRawcode is VK_ESCAPE, used to cancel an open menu.
const EscapeRawcode uint16 = 27

// ComboHasModifier reports whether a combo includes a modifier key. Shortcuts
// with modifiers defer turbo mode, since those modifiers are still held when
// the menu opens.
func ComboHasModifier(combo string) bool {
	for _, key := range parseHotkey(combo) {
		if _, ok := modifierRawcodes[key]; ok {
			return true
		}
	}
	return false
}

// parseHotkey converts a combo like "Ctrl+Alt+q" to normalized key names.
func parseHotkey(combo string) []string {
	parts := strings.Split(strings.ToLower(combo), "+")
	var keys []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

// keyNameToRawcodes maps a normalized key name to its rawcode variants.
// Unknown names map to nil.
func keyNameToRawcodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))

	if codes, ok := modifierRawcodes[keyName]; ok {
		return codes
	}
	if codes, ok := specialRawcodes[keyName]; ok {
		return codes
	}

	// Letters a-z: VK 65-90.
	if len(keyName) == 1 && keyName[0] >= 'a' && keyName[0] <= 'z' {
		return []uint16{uint16(keyName[0] - 'a' + 65)}
	}
	// Digits 0-9: VK 48-57.
	if len(keyName) == 1 && keyName[0] >= '0' && keyName[0] <= '9' {
		return []uint16{uint16(keyName[0] - '0' + 48)}
	}
	// Function keys f1-f24: VK 112-135.
	if strings.HasPrefix(keyName, "f") {
		n := 0
		for _, r := range keyName[1:] {
			if r < '0' || r > '9' {
				n = 0
				break
			}
			n = n*10 + int(r-'0')
		}
		if n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)}
		}
	}

	log.Printf("hotkey: unknown key name %q, cannot map to rawcode", keyName)
	return nil
}

// isModifierRawcode reports whether the rawcode is a modifier key variant.
func isModifierRawcode(rc uint16) bool {
	for _, codes := range modifierRawcodes {
		for _, c := range codes {
			if c == rc {
				return true
			}
		}
	}
	return false
}
