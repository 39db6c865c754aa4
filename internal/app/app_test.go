package app

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forestwatch/forestwatch-go/internal/config"
	"github.com/forestwatch/forestwatch-go/internal/feed"
	"github.com/forestwatch/forestwatch-go/internal/geom"
	"github.com/forestwatch/forestwatch-go/internal/mapview"
	"github.com/forestwatch/forestwatch-go/internal/nav"
	"github.com/forestwatch/forestwatch-go/internal/survey"
	"github.com/forestwatch/forestwatch-go/internal/testutil"
)

// testModel builds a model with config writes redirected to a temp dir
func testModel(t *testing.T) *Model {
	t.Helper()
	origDir, origFile := config.ConfigDir, config.ConfigFile
	dir := t.TempDir()
	config.ConfigDir = dir
	config.ConfigFile = filepath.Join(dir, "settings.json")
	t.Cleanup(func() {
		config.ConfigDir, config.ConfigFile = origDir, origFile
	})

	cfg := config.DefaultConfig()
	cfg.Export.Directory = dir
	return NewModel(cfg)
}

func squareBoundary(lat, lng, half float64) []geom.GeoPoint {
	return []geom.GeoPoint{
		{Lat: lat - half, Lng: lng - half},
		{Lat: lat - half, Lng: lng + half},
		{Lat: lat + half, Lng: lng + half},
		{Lat: lat + half, Lng: lng - half},
	}
}

// loadedModel builds a model with two territories and two alerts already
// delivered. The first territory covers the default viewport center so map
// clicks at the screen center hit it.
func loadedModel(t *testing.T) *Model {
	t.Helper()
	m := testModel(t)

	m.Update(territoriesLoadedMsg([]survey.Territory{
		{Name: "Tapajós", AreaHa: 98000, Boundary: squareBoundary(geom.DefaultCenterLat, geom.DefaultCenterLng, 2.0)},
		{Name: "Kayapó", AreaHa: 32000, Boundary: squareBoundary(-7.5, -52.0, 1.0)},
	}))
	m.Update(alertsLoadedMsg([]survey.Alert{
		{ID: "ALT-0001", AreaHa: 12.5, Detected: "2023-07-14", Boundary: squareBoundary(-4.2, -56.3, 0.05)},
		{ID: "ALT-0002", AreaHa: 3.0, Detected: "2023-08-01", Boundary: squareBoundary(-7.6, -52.1, 0.05)},
	}))
	return m
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLoadMessagesPopulateData(t *testing.T) {
	m := loadedModel(t)

	if len(m.Territories()) != 2 {
		t.Errorf("Territories = %d, want 2", len(m.Territories()))
	}
	if len(m.Alerts()) != 2 {
		t.Errorf("Alerts = %d, want 2", len(m.Alerts()))
	}
	if !m.territoriesLoaded || !m.alertsLoaded {
		t.Error("Load flags should be set")
	}
}

func TestLoadFailureIsIsolated(t *testing.T) {
	m := testModel(t)

	m.Update(loadFailedMsg{source: "territories", err: &survey.LoadFailure{Source: "territories", Err: errors.New("boom")}})
	m.Update(alertsLoadedMsg([]survey.Alert{{ID: "ALT-0001"}}))

	if m.territoriesErr == nil {
		t.Error("Territories error should be recorded")
	}
	if m.alertsErr != nil {
		t.Error("Alerts load should be unaffected")
	}
	if m.Machine().Mode() != nav.ModeTerritories {
		t.Error("A failed load must not touch navigation state")
	}
}

func TestKeyboardDrillDown(t *testing.T) {
	m := loadedModel(t)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))

	if m.Machine().Mode() != nav.ModeAlerts {
		t.Fatalf("Mode = %v, want alerts", m.Machine().Mode())
	}
	if m.Machine().SelectedTerritory().Name != "Kayapó" {
		t.Errorf("Selected = %q, want Kayapó", m.Machine().SelectedTerritory().Name)
	}

	m.Update(key(tea.KeyEnter))
	if m.Machine().Mode() != nav.ModeAlertDetails {
		t.Fatalf("Mode = %v, want alert-details", m.Machine().Mode())
	}
	if m.Machine().SelectedAlert().ID != "ALT-0001" {
		t.Errorf("Selected alert = %q, want ALT-0001", m.Machine().SelectedAlert().ID)
	}

	m.Update(key(tea.KeyEsc))
	if m.Machine().Mode() != nav.ModeAlerts {
		t.Errorf("Mode after esc = %v, want alerts", m.Machine().Mode())
	}
	m.Update(key(tea.KeyEsc))
	if m.Machine().Mode() != nav.ModeTerritories {
		t.Errorf("Mode after second esc = %v, want territories", m.Machine().Mode())
	}
}

func TestMapClickSelectsTerritory(t *testing.T) {
	m := loadedModel(t)

	// The screen center maps to the default viewport center, inside the
	// first territory's boundary
	m.Update(tea.MouseMsg{
		X:      mapOriginX + mapview.MapCenterX,
		Y:      mapOriginY + mapview.MapCenterY,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	if m.Machine().Mode() != nav.ModeAlerts {
		t.Fatalf("Mode = %v, want alerts after map click", m.Machine().Mode())
	}
	if m.Machine().SelectedTerritory().Name != "Tapajós" {
		t.Errorf("Selected = %q, want Tapajós", m.Machine().SelectedTerritory().Name)
	}
}

func TestMapClickOutsideEveryPolygon(t *testing.T) {
	m := loadedModel(t)

	m.Update(tea.MouseMsg{
		X:      mapOriginX,
		Y:      mapOriginY,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	if m.Machine().Mode() != nav.ModeTerritories {
		t.Errorf("Mode = %v, want territories (miss should not navigate)", m.Machine().Mode())
	}
}

func TestCompareDrag(t *testing.T) {
	m := loadedModel(t)
	m.Update(key(tea.KeyEnter)) // territory
	m.Update(key(tea.KeyEnter)) // alert
	if m.Machine().Mode() != nav.ModeAlertDetails {
		t.Fatal("setup: expected detail view")
	}

	// Press at the panel's left edge drives the split to 0
	m.Update(tea.MouseMsg{X: compareOriginX, Y: compareOriginY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.SliderPosition() != 0 {
		t.Errorf("Position = %v, want 0", m.SliderPosition())
	}

	// Motion a fifth of the way in, then way past the right edge (clamped)
	m.Update(tea.MouseMsg{X: compareOriginX + compareWidth/5, Y: compareOriginY + 2, Action: tea.MouseActionMotion})
	if m.SliderPosition() != 0.2 {
		t.Errorf("Position = %v, want 0.2", m.SliderPosition())
	}
	m.Update(tea.MouseMsg{X: compareOriginX + 1000, Y: compareOriginY + 2, Action: tea.MouseActionMotion})
	if m.SliderPosition() != 1 {
		t.Errorf("Position = %v, want 1 (clamped)", m.SliderPosition())
	}

	// Release ends the session; further motion is inert
	m.Update(tea.MouseMsg{X: compareOriginX, Y: compareOriginY, Action: tea.MouseActionRelease})
	m.Update(tea.MouseMsg{X: compareOriginX, Y: compareOriginY, Action: tea.MouseActionMotion})
	if m.SliderPosition() != 1 {
		t.Errorf("Position = %v, want 1 after release", m.SliderPosition())
	}
}

func TestCompareDragPositionSurvivesNavigation(t *testing.T) {
	m := loadedModel(t)
	m.Update(key(tea.KeyEnter))
	m.Update(key(tea.KeyEnter))

	m.Update(tea.MouseMsg{X: compareOriginX, Y: compareOriginY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: compareOriginX, Y: compareOriginY, Action: tea.MouseActionRelease})

	m.Update(key(tea.KeyEsc))
	m.Update(key(tea.KeyEnter))
	if m.SliderPosition() != 0 {
		t.Errorf("Position = %v, want 0 retained across views", m.SliderPosition())
	}
}

func TestPressOutsideComparePanelIgnored(t *testing.T) {
	m := loadedModel(t)
	m.Update(key(tea.KeyEnter))
	m.Update(key(tea.KeyEnter))

	m.Update(tea.MouseMsg{X: compareOriginX + 5, Y: compareOriginY + compareHeight + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.dragSession.Active() {
		t.Error("Press outside the panel should not start a session")
	}
	if m.SliderPosition() != 0.5 {
		t.Errorf("Position = %v, want untouched 0.5", m.SliderPosition())
	}
}

func TestSearchFiltersAlertList(t *testing.T) {
	m := loadedModel(t)
	m.Update(key(tea.KeyEnter)) // into alerts view

	m.Update(runeKey('/'))
	if !m.searching {
		t.Fatal("Slash should open the search prompt")
	}
	for _, r := range "0002" {
		m.Update(runeKey(r))
	}
	m.Update(key(tea.KeyEnter))

	visible := m.visibleAlerts()
	if len(visible) != 1 || visible[0].ID != "ALT-0002" {
		t.Errorf("Visible = %v, want just ALT-0002", visible)
	}

	// Backing out to the overview clears the filter
	m.Update(key(tea.KeyEsc))
	if m.searchFilter != nil {
		t.Error("Filter should clear on return to the overview")
	}
}

func TestFeedMessageAppendsAlert(t *testing.T) {
	m := loadedModel(t)

	payload, _ := json.Marshal(testutil.AlertFeature("ALT-9001", 7.5, "2023-11-20", -5.0, -54.0))
	m.Update(feedMsg(feed.Message{Type: string(feed.AlertNew), Data: payload}))

	if len(m.Alerts()) != 3 {
		t.Fatalf("Alerts = %d, want 3 after feed message", len(m.Alerts()))
	}

	// The same alert pushed again is deduplicated
	m.Update(feedMsg(feed.Message{Type: string(feed.AlertNew), Data: payload}))
	if len(m.Alerts()) != 3 {
		t.Errorf("Alerts = %d, want 3 (duplicate dropped)", len(m.Alerts()))
	}
}

func TestFeedSnapshotReplacesAlerts(t *testing.T) {
	m := loadedModel(t)

	payload, _ := json.Marshal([]map[string]interface{}{
		testutil.AlertFeature("ALT-9001", 7.5, "2023-11-20", -5.0, -54.0),
		testutil.AlertFeature("ALT-9002", 2.0, "2023-11-21", -5.1, -54.1),
		testutil.AlertFeature("ALT-9003", 4.4, "2023-11-22", -5.2, -54.2),
	})
	m.Update(feedMsg(feed.Message{Type: string(feed.AlertSnapshot), Data: payload}))

	alerts := m.Alerts()
	if len(alerts) != 3 {
		t.Fatalf("Alerts = %d, want the snapshot's 3", len(alerts))
	}
	if alerts[0].ID != "ALT-9001" {
		t.Errorf("First alert = %q, want ALT-9001 (list replaced, not merged)", alerts[0].ID)
	}
}

func TestFeedSnapshotIgnoresBadPayload(t *testing.T) {
	m := loadedModel(t)

	m.Update(feedMsg(feed.Message{Type: string(feed.AlertSnapshot), Data: []byte("{ nope")}))

	if len(m.Alerts()) != 2 {
		t.Errorf("Alerts = %d, want the original 2 kept on a bad snapshot", len(m.Alerts()))
	}
}

func TestEvidenceCaptureInDetailView(t *testing.T) {
	m := loadedModel(t)
	m.Update(key(tea.KeyEnter))
	m.Update(key(tea.KeyEnter))

	m.Update(runeKey('p'))
	m.Update(runeKey('v'))

	rec := m.evidenceStore.ForAlert("ALT-0001", "")
	if len(rec.Photos) != 1 {
		t.Errorf("Photos = %d, want 1", len(rec.Photos))
	}
	if len(rec.VoiceNotes) != 1 {
		t.Errorf("VoiceNotes = %d, want 1", len(rec.VoiceNotes))
	}
}

func TestExportFromTerritoriesView(t *testing.T) {
	m := loadedModel(t)

	m.Update(runeKey('e'))
	if !strings.HasPrefix(m.notification, "CSV: ") {
		t.Errorf("Notification = %q, want a CSV confirmation", m.notification)
	}

	exports := testutil.FindExports(t, m.config.Export.Directory, "forestwatch_alerts")
	if len(exports) == 0 {
		t.Error("Export file should exist in the export directory")
	}
}

func TestViewRendersEachMode(t *testing.T) {
	m := loadedModel(t)

	if out := m.View(); !strings.Contains(out, "Territories") {
		t.Error("Overview should render the territories header")
	}

	m.Update(key(tea.KeyEnter))
	if out := m.View(); !strings.Contains(out, "ALERTS") {
		t.Error("Alerts view should render the alert list header")
	}

	m.Update(key(tea.KeyEnter))
	out := m.View()
	if !strings.Contains(out, "ALT-0001") {
		t.Error("Detail view should name the selected alert")
	}
	if !strings.Contains(out, "BEFORE") || !strings.Contains(out, "AFTER") {
		t.Error("Detail view should render the comparison panel")
	}
}

func TestViewRendersLoadFailure(t *testing.T) {
	m := testModel(t)
	m.Update(loadFailedMsg{source: "territories", err: &survey.LoadFailure{Source: "territories", Err: errors.New("status 500")}})

	out := m.View()
	if !strings.Contains(out, "DATA LOAD FAILED") {
		t.Error("Failed load should render the error view")
	}
	if !strings.Contains(out, "failed to load territories") {
		t.Errorf("Error view should carry the failure detail, got %q", out)
	}
}

func TestTerritoryLabelsFollowSetting(t *testing.T) {
	m := loadedModel(t)

	m.config.Display.ShowLabels = false
	if out := m.buildOverviewCanvas().Render(); strings.Contains(out, "Tapajós") {
		t.Error("Labels off: the map should not carry territory names")
	}

	m.config.Display.ShowLabels = true
	out := m.buildOverviewCanvas().Render()
	if !strings.Contains(out, "Tapajós") {
		t.Error("Labels on: the first territory's name should appear on the map")
	}
	if !strings.Contains(out, "Kayapó") {
		t.Error("Labels on: the second territory's name should appear on the map")
	}
}

func TestStartupViewportFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Map.CenterLat = -4.25
	cfg.Map.CenterLng = -56.5
	cfg.Map.Zoom = 8

	m := NewModel(cfg)

	vp := m.Machine().Viewport()
	if vp.Center.Lat != -4.25 || vp.Center.Lng != -56.5 || vp.Zoom != 8 {
		t.Errorf("Startup viewport = %+v, want the configured map settings", vp)
	}
}

func TestGridToggle(t *testing.T) {
	m := loadedModel(t)

	initial := m.config.Display.ShowGrid
	m.Update(runeKey('g'))
	if m.config.Display.ShowGrid == initial {
		t.Error("g should toggle the grid")
	}
}

func TestNotificationExpires(t *testing.T) {
	m := loadedModel(t)
	m.notify("hello")

	for i := 0; i < 25; i++ {
		m.Update(tickMsg{})
	}
	if m.notification != "" {
		t.Errorf("Notification = %q, want expired", m.notification)
	}
}
