// Package settings persists the client's only local state: the display
// theme. It is purely visual and has no effect on any request the client
// makes.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	appDir = "cvmatch"
	// fileName is the fixed key under which the preference survives sessions.
	fileName = "settings.json"
)

type Settings struct {
	Theme string `json:"theme"`

	path string
}

// Load reads settings from dir, or from the user config directory when dir
// is empty. A missing file yields the defaults.
func Load(dir string) (*Settings, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		dir = filepath.Join(base, appDir)
	}

	s := &Settings{
		Theme: ThemeDark,
		path:  filepath.Join(dir, fileName),
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		s.Theme = ThemeDark
	}

	return s, nil
}

// ToggleTheme flips the theme and writes it through immediately.
func (s *Settings) ToggleTheme() (string, error) {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}

	return s.Theme, s.save()
}

// Dark reports whether the dark theme is active.
func (s *Settings) Dark() bool {
	return s.Theme != ThemeLight
}

func (s *Settings) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}
