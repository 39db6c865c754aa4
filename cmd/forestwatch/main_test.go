package main

import (
	"strings"
	"testing"

	"github.com/forestwatch/forestwatch-go/internal/config"
	"github.com/forestwatch/forestwatch-go/internal/theme"
)

func TestRootCommandFlags(t *testing.T) {
	flags := []string{
		"territories-url", "alerts-url", "theme", "export-dir",
		"list-themes", "live", "feed-host", "feed-port", "no-grid",
	}
	for _, name := range flags {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("Root command is missing the --%s flag", name)
		}
	}
}

func TestConfigureSubcommandRegistered(t *testing.T) {
	for _, sub := range rootCmd.Commands() {
		if sub.Use == "configure" {
			return
		}
	}
	t.Error("configure subcommand is not registered")
}

func TestWizardSectionsCoverConfig(t *testing.T) {
	m := newWizardModel(config.DefaultConfig())

	if len(m.fields) != 6 {
		t.Fatalf("Wizard has %d sections, want 6", len(m.fields))
	}
	if len(m.fields[sectionData]) != 2 {
		t.Errorf("Data section has %d fields, want 2", len(m.fields[sectionData]))
	}
	if len(m.fields[sectionDisplay]) != 4 {
		t.Errorf("Display section has %d fields, want 4", len(m.fields[sectionDisplay]))
	}
	if len(m.fields[sectionFeed]) != 4 {
		t.Errorf("Feed section has %d fields, want 4", len(m.fields[sectionFeed]))
	}
	if len(m.fields[sectionMap]) != 3 {
		t.Errorf("Map section has %d fields, want 3", len(m.fields[sectionMap]))
	}
}

func TestWizardApplyFields(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newWizardModel(cfg)

	// Data
	m.fields[sectionData][0].textInput.SetValue("https://example.org/t.geojson")
	m.fields[sectionData][1].textInput.SetValue("https://example.org/a.geojson")

	// Display: pick the last theme, flip the grid
	last := len(m.fields[sectionDisplay][0].options) - 1
	m.fields[sectionDisplay][0].selectIndex = last
	m.fields[sectionDisplay][1].boolValue = false

	// Feed
	m.fields[sectionFeed][0].boolValue = true
	m.fields[sectionFeed][1].textInput.SetValue("alerts.example.org")
	m.fields[sectionFeed][2].textInput.SetValue("443")
	m.fields[sectionFeed][3].textInput.SetValue("5")

	// Map
	m.fields[sectionMap][0].textInput.SetValue("-4.25")
	m.fields[sectionMap][1].textInput.SetValue("-56.5")
	m.fields[sectionMap][2].textInput.SetValue("8")

	m.applyFields()

	if cfg.Data.TerritoriesURL != "https://example.org/t.geojson" {
		t.Errorf("TerritoriesURL = %q", cfg.Data.TerritoriesURL)
	}
	if cfg.Data.AlertsURL != "https://example.org/a.geojson" {
		t.Errorf("AlertsURL = %q", cfg.Data.AlertsURL)
	}
	wantTheme := theme.List()[last]
	if cfg.Display.Theme != wantTheme {
		t.Errorf("Theme = %q, want %q", cfg.Display.Theme, wantTheme)
	}
	if cfg.Display.ShowGrid {
		t.Error("ShowGrid should apply as false")
	}
	if !cfg.Feed.Enabled || cfg.Feed.Host != "alerts.example.org" || cfg.Feed.Port != 443 || cfg.Feed.ReconnectDelay != 5 {
		t.Errorf("Feed = %+v", cfg.Feed)
	}
	if cfg.Map.CenterLat != -4.25 || cfg.Map.CenterLng != -56.5 || cfg.Map.Zoom != 8 {
		t.Errorf("Map = %+v", cfg.Map)
	}
}

func TestWizardApplyIgnoresBadNumbers(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newWizardModel(cfg)

	m.fields[sectionFeed][2].textInput.SetValue("not-a-port")
	m.applyFields()

	if cfg.Feed.Port != 80 {
		t.Errorf("Port = %d, want the default 80 when input is unparseable", cfg.Feed.Port)
	}
}

func TestWizardViewShowsProgress(t *testing.T) {
	m := newWizardModel(config.DefaultConfig())

	out := m.View()
	if !strings.Contains(out, "FORESTWATCH CONFIGURATION WIZARD") {
		t.Error("Wizard view should render the title")
	}
	for _, name := range m.sectionNames {
		if !strings.Contains(out, name) {
			t.Errorf("Wizard view should list the %s section", name)
		}
	}
}
