// Package prefs persists vista user preferences in
// ~/.config/vista/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/vista/internal/config"
	"github.com/five82/vista/internal/style"
)

// Prefs holds user preferences. An empty Language defers to the config.
type Prefs struct {
	Palette  string `toml:"palette"`
	Language string `toml:"language,omitempty"`
}

const defaultPrefsPath = "~/.config/vista/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, falling back to defaults when the file
// is missing or unreadable.
func Load(path string) Prefs {
	prefs := Prefs{Palette: style.DefaultPalette}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return prefs
	}
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Palette: style.DefaultPalette}
	}

	prefs.Palette = strings.TrimSpace(prefs.Palette)
	if prefs.Palette == "" {
		prefs.Palette = style.DefaultPalette
	}
	prefs.Language = strings.TrimSpace(prefs.Language)
	return prefs
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
