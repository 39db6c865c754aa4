// Package nav owns the drill-down view state for the survey session: which
// view is showing, which territory and alert are selected, and the map
// viewport tied to the selection
package nav

import (
	"github.com/forestwatch/forestwatch-go/internal/geom"
	"github.com/forestwatch/forestwatch-go/internal/survey"
)

// Mode represents the current view
type Mode int

const (
	ModeTerritories Mode = iota
	ModeAlerts
	ModeAlertDetails
)

// String returns the view name
func (m Mode) String() string {
	switch m {
	case ModeAlerts:
		return "alerts"
	case ModeAlertDetails:
		return "alert-details"
	default:
		return "territories"
	}
}

// Machine tracks the drill-down context. Transitions are synchronous and run
// to completion before the next input is handled; there is no locking because
// all mutation happens inside the single-threaded event loop.
//
// Selecting a polygon on the map and selecting the corresponding list row are
// the same event. Each selection retargets the viewport from the selected
// boundary; a boundary that validated to empty leaves the viewport unchanged.
type Machine struct {
	mode      Mode
	territory *survey.Territory
	alert     *survey.Alert
	viewport  geom.Viewport
	home      geom.Viewport
}

// NewMachine creates a machine at the territories overview. home is the
// startup viewport, restored whenever the session resets to the overview.
func NewMachine(home geom.Viewport) *Machine {
	return &Machine{
		mode:     ModeTerritories,
		viewport: home,
		home:     home,
	}
}

// Mode returns the current view mode
func (m *Machine) Mode() Mode {
	return m.mode
}

// SelectedTerritory returns the selected territory, or nil
func (m *Machine) SelectedTerritory() *survey.Territory {
	return m.territory
}

// SelectedAlert returns the selected alert, or nil
func (m *Machine) SelectedAlert() *survey.Alert {
	return m.alert
}

// Viewport returns the current map viewport
func (m *Machine) Viewport() geom.Viewport {
	return m.viewport
}

// SelectTerritory drills from the overview into a territory's alert list.
// Valid only from the territories view; elsewhere it is ignored.
func (m *Machine) SelectTerritory(t *survey.Territory) {
	if m.mode != ModeTerritories || t == nil {
		return
	}
	m.territory = t
	m.alert = nil
	m.mode = ModeAlerts
	m.retarget(t.Boundary)
}

// SelectAlert opens an alert's detail view. Reachable from the alert list,
// or straight from the overview map by clicking an alert polygon (the
// territory selection stays as it was).
func (m *Machine) SelectAlert(a *survey.Alert) {
	if a == nil {
		return
	}
	if m.mode != ModeAlerts && m.mode != ModeTerritories {
		return
	}
	m.alert = a
	m.mode = ModeAlertDetails
	m.retarget(a.Boundary)
}

// Back steps one level up. Detail returns to the alert list when a territory
// is selected; a detail view entered straight from the overview returns to
// the overview, so the alert list never shows without a territory. Backing
// out of the alert list resets the session to startup defaults, viewport
// included.
func (m *Machine) Back() {
	switch m.mode {
	case ModeAlertDetails:
		m.alert = nil
		if m.territory != nil {
			m.mode = ModeAlerts
		} else {
			m.reset()
		}
	case ModeAlerts:
		m.reset()
	}
}

func (m *Machine) reset() {
	m.mode = ModeTerritories
	m.territory = nil
	m.alert = nil
	m.viewport = m.home
}

func (m *Machine) retarget(boundary []geom.GeoPoint) {
	if vp, ok := geom.ComputeViewport(boundary); ok {
		m.viewport = vp
	}
}
