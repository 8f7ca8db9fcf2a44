package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Theme != ThemeDark {
		t.Fatalf("expected dark default, got %q", s.Theme)
	}
	if !s.Dark() {
		t.Fatalf("expected Dark() true by default")
	}
}

func TestToggleWritesThrough(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	theme, err := s.ToggleTheme()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if theme != ThemeLight {
		t.Fatalf("expected light after toggle, got %q", theme)
	}

	// A fresh load must observe the persisted preference.
	reloaded, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Theme != ThemeLight {
		t.Fatalf("expected persisted light theme, got %q", reloaded.Theme)
	}

	if theme, err = reloaded.ToggleTheme(); err != nil || theme != ThemeDark {
		t.Fatalf("expected dark after second toggle, got %q (%v)", theme, err)
	}
}

func TestLoadNormalizesUnknownTheme(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"theme": "solarized"}`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Theme != ThemeDark {
		t.Fatalf("expected unknown theme normalized to dark, got %q", s.Theme)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for malformed settings file")
	}
}
