// Package app provides the Bubble Tea application model for the ForestWatch
// survey viewer
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/forestwatch/forestwatch-go/internal/config"
	"github.com/forestwatch/forestwatch-go/internal/evidence"
	"github.com/forestwatch/forestwatch-go/internal/export"
	"github.com/forestwatch/forestwatch-go/internal/feed"
	"github.com/forestwatch/forestwatch-go/internal/geom"
	"github.com/forestwatch/forestwatch-go/internal/mapview"
	"github.com/forestwatch/forestwatch-go/internal/nav"
	"github.com/forestwatch/forestwatch-go/internal/search"
	"github.com/forestwatch/forestwatch-go/internal/slider"
	"github.com/forestwatch/forestwatch-go/internal/survey"
	"github.com/forestwatch/forestwatch-go/internal/theme"
)

// Screen layout for mouse hit testing. The map is the leftmost panel in the
// overview and alert-list views; the comparison panel sits in the same spot
// in the detail view. Row 0 is the title line, row 1 the panel's top border.
const (
	mapOriginX = 1
	mapOriginY = 2

	compareOriginX = 1
	compareOriginY = 4
	compareWidth   = mapview.MapWidth
	compareHeight  = 10
)

// Model is the main application model
type Model struct {
	// Data
	territories []survey.Territory
	alerts      []survey.Alert

	// Load state; each source loads independently and either may land first
	territoriesLoaded bool
	alertsLoaded      bool
	territoriesErr    error
	alertsErr         error

	// Navigation and interaction
	machine     *nav.Machine
	compare     *slider.Slider
	dragSession *slider.DragSession

	// Evidence
	evidenceStore *evidence.Store
	camera        evidence.Camera
	recorder      evidence.Recorder

	// List state
	territoryCursor int
	alertCursor     int

	// Search state
	searching    bool
	searchQuery  string
	searchFilter *search.Filter

	// UI state
	spin             spinner.Model
	notification     string
	notificationTime float64
	width, height    int

	// Configuration
	config *config.Config
	theme  *theme.Theme

	// Feed client, nil when the live feed is disabled
	feedClient *feed.Client

	fetcher *survey.Fetcher
}

// NewModel creates a new application model
func NewModel(cfg *config.Config) *Model {
	t := theme.Get(cfg.Display.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = t.PrimaryStyle()

	var feedClient *feed.Client
	if cfg.Feed.Enabled {
		feedClient = feed.NewClient(cfg.Feed.Host, cfg.Feed.Port, cfg.Feed.ReconnectDelay)
	}

	home := geom.Viewport{
		Center: geom.GeoPoint{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng},
		Zoom:   cfg.Map.Zoom,
	}

	return &Model{
		machine:       nav.NewMachine(home),
		compare:       slider.New(),
		evidenceStore: evidence.NewStore("https://imagery.forestwatch.example"),
		camera:        &evidence.StubCamera{},
		recorder:      &evidence.StubRecorder{},
		spin:          sp,
		config:        cfg,
		theme:         t,
		feedClient:    feedClient,
		fetcher:       survey.NewFetcher(cfg.Data.TerritoriesURL, cfg.Data.AlertsURL),
	}
}

// SetFetcher replaces the document fetcher, used by tests to point at a mock
// data server
func (m *Model) SetFetcher(f *survey.Fetcher) {
	m.fetcher = f
}

// Machine exposes the navigation machine for inspection
func (m *Model) Machine() *nav.Machine {
	return m.machine
}

// SliderPosition returns the current comparison split position
func (m *Model) SliderPosition() float64 {
	return m.compare.Position()
}

// Territories returns the loaded territory collection
func (m *Model) Territories() []survey.Territory {
	return m.territories
}

// Alerts returns the loaded alert collection
func (m *Model) Alerts() []survey.Alert {
	return m.alerts
}

// Messages

type tickMsg time.Time

type territoriesLoadedMsg []survey.Territory

type alertsLoadedMsg []survey.Alert

type loadFailedMsg struct {
	source string
	err    error
}

type feedMsg feed.Message

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadTerritoriesCmd(f *survey.Fetcher) tea.Cmd {
	return func() tea.Msg {
		territories, err := f.FetchTerritories(context.Background())
		if err != nil {
			return loadFailedMsg{source: "territories", err: err}
		}
		return territoriesLoadedMsg(territories)
	}
}

func loadAlertsCmd(f *survey.Fetcher) tea.Cmd {
	return func() tea.Msg {
		alerts, err := f.FetchAlerts(context.Background())
		if err != nil {
			return loadFailedMsg{source: "alerts", err: err}
		}
		return alertsLoadedMsg(alerts)
	}
}

func feedCmd(client *feed.Client) tea.Cmd {
	return func() tea.Msg {
		return feedMsg(<-client.Messages())
	}
}

// Init starts the two independent document loads and, when configured, the
// live feed
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		tickCmd(),
		loadTerritoriesCmd(m.fetcher),
		loadAlertsCmd(m.fetcher),
	}
	if m.feedClient != nil {
		m.feedClient.Start()
		cmds = append(cmds, feedCmd(m.feedClient))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates state
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tickMsg:
		if m.notificationTime > 0 {
			m.notificationTime -= 0.15
			if m.notificationTime <= 0 {
				m.notification = ""
			}
		}
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case territoriesLoadedMsg:
		m.territories = []survey.Territory(msg)
		m.territoriesLoaded = true
		return m, nil

	case alertsLoadedMsg:
		m.alerts = []survey.Alert(msg)
		m.alertsLoaded = true
		return m, nil

	case loadFailedMsg:
		// A failed load halts only that view's readiness; navigation state
		// is untouched and there is no automatic retry.
		if msg.source == "territories" {
			m.territoriesErr = msg.err
		} else {
			m.alertsErr = msg.err
		}
		return m, nil

	case feedMsg:
		m.handleFeedMsg(feed.Message(msg))
		if m.feedClient == nil {
			return m, nil
		}
		return m, feedCmd(m.feedClient)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if key == "q" || key == "Q" || key == "ctrl+c" {
		if m.feedClient != nil {
			m.feedClient.Stop()
		}
		_ = config.Save(m.config)
		return m, tea.Quit
	}

	switch m.machine.Mode() {
	case nav.ModeAlerts:
		return m.handleAlertsKey(key)
	case nav.ModeAlertDetails:
		return m.handleDetailKey(key)
	default:
		return m.handleTerritoriesKey(key)
	}
}

func (m *Model) handleTerritoriesKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.territoryCursor > 0 {
			m.territoryCursor--
		}
	case "down", "j":
		if m.territoryCursor < len(m.territories)-1 {
			m.territoryCursor++
		}
	case "enter", " ":
		m.selectTerritoryAt(m.territoryCursor)
	case "g", "G":
		m.config.Display.ShowGrid = !m.config.Display.ShowGrid
		if m.config.Display.ShowGrid {
			m.notify("Grid: ON")
		} else {
			m.notify("Grid: OFF")
		}
	case "t", "T":
		m.cycleTheme()
	case "e", "E":
		m.exportAlertsCSV()
	case "ctrl+e":
		m.exportAlertsJSON()
	}
	return m, nil
}

func (m *Model) handleAlertsKey(key string) (tea.Model, tea.Cmd) {
	visible := m.visibleAlerts()

	switch key {
	case "up", "k":
		if m.alertCursor > 0 {
			m.alertCursor--
		}
	case "down", "j":
		if m.alertCursor < len(visible)-1 {
			m.alertCursor++
		}
	case "enter", " ":
		if m.alertCursor < len(visible) {
			m.selectAlert(&visible[m.alertCursor])
		}
	case "esc", "backspace":
		m.goBack()
	case "/":
		m.searching = true
		m.searchQuery = ""
	case "e", "E":
		m.exportAlertsCSV()
	case "ctrl+e":
		m.exportAlertsJSON()
	}
	return m, nil
}

func (m *Model) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "backspace":
		m.goBack()
	case "p", "P":
		alert := m.machine.SelectedAlert()
		if alert != nil {
			if photo, err := m.evidenceStore.AddPhoto(alert.ID, m.camera); err == nil {
				m.notify("Photo: " + photo.ID)
			} else {
				m.notify("Photo failed: " + err.Error())
			}
		}
	case "v", "V":
		alert := m.machine.SelectedAlert()
		if alert != nil {
			if note, err := m.evidenceStore.AddVoiceNote(alert.ID, m.recorder); err == nil {
				m.notify("Voice note: " + note.ID)
			} else {
				m.notify("Recording failed: " + err.Error())
			}
		}
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.searching = false
		m.searchQuery = ""
		m.searchFilter = nil
		m.alertCursor = 0
	case "enter":
		m.searching = false
		if m.searchQuery == "" {
			m.searchFilter = nil
		} else {
			m.searchFilter = search.ParseQuery(m.searchQuery)
		}
		m.alertCursor = 0
	case "backspace":
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
		}
	default:
		if len(key) == 1 {
			r := rune(key[0])
			if r >= 32 && r < 127 {
				m.searchQuery += key
			}
		} else if key == "space" {
			m.searchQuery += " "
		}
	}
	return m, nil
}

// handleMouse routes pointer events. Clicking a polygon on the map is the
// same event as selecting its list row; drags inside the comparison panel
// feed the slider.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch m.machine.Mode() {
	case nav.ModeAlertDetails:
		m.handleCompareMouse(msg)
	default:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			m.handleMapClick(msg.X, msg.Y)
		}
	}
}

func (m *Model) handleMapClick(x, y int) {
	cellX := x - mapOriginX
	cellY := y - mapOriginY
	if cellX < 0 || cellX >= mapview.MapWidth || cellY < 0 || cellY >= mapview.MapHeight {
		return
	}

	canvas := mapview.NewCanvas(m.theme, m.machine.Viewport(), false)
	p := canvas.CellToGeo(cellX, cellY)

	if m.machine.Mode() == nav.ModeTerritories {
		for i := range m.territories {
			if geom.Contains(m.territories[i].Boundary, p.Lat, p.Lng) {
				m.territoryCursor = i
				m.selectTerritoryAt(i)
				return
			}
		}
		// Alert polygons on the overview map are selectable directly
		for i := range m.alerts {
			if geom.Contains(m.alerts[i].Boundary, p.Lat, p.Lng) {
				m.selectAlert(&m.alerts[i])
				return
			}
		}
		return
	}

	visible := m.visibleAlerts()
	for i := range visible {
		if geom.Contains(visible[i].Boundary, p.Lat, p.Lng) {
			m.alertCursor = i
			m.selectAlert(&visible[i])
			return
		}
	}
}

// handleCompareMouse runs the drag session protocol: pointer-down inside the
// panel starts (or restarts) a session against the panel measured at that
// moment, every move recomputes the position, pointer-up anywhere ends the
// session. The position survives between sessions.
func (m *Model) handleCompareMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if msg.Y >= compareOriginY && msg.Y < compareOriginY+compareHeight &&
			msg.X >= compareOriginX && msg.X < compareOriginX+compareWidth {
			m.dragSession = m.compare.StartDrag(float64(compareOriginX), float64(compareWidth))
			if m.dragSession.Active() {
				m.dragSession.Move(float64(msg.X))
			}
		}
	case msg.Action == tea.MouseActionMotion:
		if m.dragSession.Active() {
			m.dragSession.Move(float64(msg.X))
		}
	case msg.Action == tea.MouseActionRelease:
		if m.dragSession.Active() {
			m.dragSession.End()
		}
		m.dragSession = nil
	}
}

func (m *Model) handleFeedMsg(msg feed.Message) {
	switch msg.Type {
	case string(feed.AlertNew):
		alert, err := survey.DecodeAlertFeature(msg.Data)
		if err != nil || alert.ID == "" {
			return
		}
		for i := range m.alerts {
			if m.alerts[i].ID == alert.ID {
				return
			}
		}
		m.alerts = append(m.alerts, alert)
		m.notify("New alert: " + alert.ID)

	case string(feed.AlertSnapshot):
		alerts, err := survey.DecodeAlertFeatureList(msg.Data)
		if err != nil {
			return
		}
		m.alerts = alerts
		m.alertsLoaded = true
		if m.alertCursor >= len(alerts) {
			m.alertCursor = 0
		}
		m.notify(fmt.Sprintf("Feed snapshot: %d alerts", len(alerts)))
	}
}

func (m *Model) selectTerritoryAt(idx int) {
	if idx < 0 || idx >= len(m.territories) {
		return
	}
	m.machine.SelectTerritory(&m.territories[idx])
	m.alertCursor = 0
}

func (m *Model) selectAlert(a *survey.Alert) {
	m.machine.SelectAlert(a)
	if a != nil {
		m.evidenceStore.ForAlert(a.ID, a.Detected)
	}
}

func (m *Model) goBack() {
	if m.dragSession.Active() {
		// View teardown releases any live drag session
		m.dragSession.End()
	}
	m.dragSession = nil
	m.machine.Back()
	if m.machine.Mode() == nav.ModeTerritories {
		m.searchFilter = nil
		m.searchQuery = ""
		m.alertCursor = 0
	}
}

// visibleAlerts returns the alert list for the current view with any active
// search filter applied
func (m *Model) visibleAlerts() []survey.Alert {
	return search.FilterAlerts(m.alerts, m.searchFilter)
}

func (m *Model) cycleTheme() {
	names := theme.List()
	for i, name := range names {
		if name == m.config.Display.Theme {
			next := names[(i+1)%len(names)]
			m.config.Display.Theme = next
			m.theme = theme.Get(next)
			m.spin.Style = m.theme.PrimaryStyle()
			_ = config.Save(m.config)
			m.notify("Theme: " + m.theme.Name)
			return
		}
	}
	m.config.Display.Theme = names[0]
	m.theme = theme.Get(names[0])
}

func (m *Model) notify(message string) {
	m.notification = message
	m.notificationTime = 3.0
}

func (m *Model) exportAlertsCSV() {
	if len(m.alerts) == 0 {
		m.notify("No alerts to export")
		return
	}
	filename, err := export.ExportAlerts(m.visibleAlerts(), m.config.Export.Directory)
	if err != nil {
		m.notify("Export failed: " + err.Error())
		return
	}
	m.notify("CSV: " + filename)
}

func (m *Model) exportAlertsJSON() {
	if len(m.alerts) == 0 {
		m.notify("No alerts to export")
		return
	}
	filename, err := export.ExportAlertsJSON(m.visibleAlerts(), m.config.Export.Directory)
	if err != nil {
		m.notify("Export failed: " + err.Error())
		return
	}
	m.notify("JSON: " + filename)
}

// IsConnected reports whether the live feed is connected
func (m *Model) IsConnected() bool {
	return m.feedClient != nil && m.feedClient.IsConnected()
}
