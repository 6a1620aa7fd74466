// Package prefs persists pantry user preferences in
// $XDG_CONFIG_HOME/pantry/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

// DefaultTheme is used until the user picks another one.
const DefaultTheme = "Dracula"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "pantry", "prefs.toml")
}

// Load reads preferences from path. Unreadable or malformed files yield the
// defaults.
func Load(path string) Prefs {
	p := Prefs{Theme: DefaultTheme}

	bytes, err := os.ReadFile(resolvePath(path))
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Prefs{Theme: DefaultTheme}
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = DefaultTheme
	}
	return p
}

// Save writes preferences to path through a temp file and rename.
func Save(path string, p Prefs) error {
	resolved := resolvePath(path)
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultPath()
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
