package config

import (
	"os"
	"path/filepath"
	"testing"
)

// useTempConfig points the package at a temporary settings file for the
// duration of the test
func useTempConfig(t *testing.T) string {
	t.Helper()
	origDir, origFile := ConfigDir, ConfigFile
	dir := t.TempDir()
	ConfigDir = dir
	ConfigFile = filepath.Join(dir, "settings.json")
	t.Cleanup(func() {
		ConfigDir, ConfigFile = origDir, origFile
	})
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Display.Theme != "forest" {
		t.Errorf("Theme = %q, want forest", cfg.Display.Theme)
	}
	if cfg.Map.CenterLat != -8.5 || cfg.Map.CenterLng != -55.0 {
		t.Errorf("Map center = %v,%v, want -8.5,-55.0", cfg.Map.CenterLat, cfg.Map.CenterLng)
	}
	if cfg.Map.Zoom != 4 {
		t.Errorf("Zoom = %d, want 4", cfg.Map.Zoom)
	}
	if cfg.Feed.Enabled {
		t.Error("Live feed should be disabled by default")
	}
	if cfg.Feed.ReconnectDelay != 2 {
		t.Errorf("ReconnectDelay = %d, want 2", cfg.Feed.ReconnectDelay)
	}
	if cfg.Data.TerritoriesURL == "" || cfg.Data.AlertsURL == "" {
		t.Error("Default data URLs should be set")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.Theme != "forest" {
		t.Errorf("Theme = %q, want forest defaults", cfg.Display.Theme)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	useTempConfig(t)

	cfg := DefaultConfig()
	cfg.Display.Theme = "satellite"
	cfg.Display.ShowGrid = false
	cfg.Feed.Enabled = true
	cfg.Feed.Host = "alerts.example.org"
	cfg.Feed.Port = 443
	cfg.Export.Directory = "/tmp/exports"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Display.Theme != "satellite" {
		t.Errorf("Theme = %q, want satellite", loaded.Display.Theme)
	}
	if loaded.Display.ShowGrid {
		t.Error("ShowGrid should round-trip as false")
	}
	if !loaded.Feed.Enabled || loaded.Feed.Host != "alerts.example.org" || loaded.Feed.Port != 443 {
		t.Errorf("Feed = %+v", loaded.Feed)
	}
	if loaded.Export.Directory != "/tmp/exports" {
		t.Errorf("Export dir = %q", loaded.Export.Directory)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	useTempConfig(t)

	if err := os.WriteFile(ConfigFile, []byte("{ nope"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.Theme != "forest" {
		t.Errorf("Corrupt settings should fall back to defaults, got theme %q", cfg.Display.Theme)
	}
}
