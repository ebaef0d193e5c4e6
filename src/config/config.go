package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvPathVar points at an alternative .env file when no .env sits next
	// to the executable.
	EnvPathVar = "RADIAL_MENU_ENV"

	DefaultHotkey         = "Ctrl+Alt+Space"
	DefaultMenuFileName   = "menus.json"
	DefaultDeadZoneRadius = 50.0
	DefaultChildRadius    = 110.0
)

// LoadOptions allow the entry points to override settings from flags.
type LoadOptions struct {
	MenuFileOverride string
	HotkeyOverride   string
}

// Config holds the general settings document. Menu definitions live in a
// separate JSON document (see LoadMenus) so the two can be hot-reloaded
// independently.
type Config struct {
	// Hotkey is the global shortcut that opens the default menu.
	Hotkey string
	// MenuFile is the path of the menu-configuration document.
	MenuFile string
	// EnableFileLogging routes logs to a rotating file instead of discard.
	EnableFileLogging bool
	// DeadZoneRadius is the central no-selection radius in pixels.
	DeadZoneRadius float64
	// ChildRadius is the submenu ring radius in pixels.
	ChildRadius float64
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions reads settings from sources in priority order:
// 1) .env in the executable's directory
// 2) the file named by RADIAL_MENU_ENV
// 3) process environment
// Flag overrides win over everything.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		MenuFile:          resolveMenuFile(),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		DeadZoneRadius:    getEnvFloat("DEAD_ZONE_RADIUS", DefaultDeadZoneRadius),
		ChildRadius:       getEnvFloat("CHILD_RADIUS", DefaultChildRadius),
	}

	if v := strings.TrimSpace(opts.HotkeyOverride); v != "" {
		cfg.Hotkey = v
	}
	if v := strings.TrimSpace(opts.MenuFileOverride); v != "" {
		cfg.MenuFile = v
	}
	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}
	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

func resolveMenuFile() string {
	if v := os.Getenv("MENU_FILE"); v != "" {
		return v
	}
	execPath, err := os.Executable()
	if err != nil {
		return DefaultMenuFileName
	}
	return filepath.Join(filepath.Dir(execPath), DefaultMenuFileName)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}
