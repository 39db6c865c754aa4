package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/forestwatch/forestwatch-go/internal/geom"
	"github.com/forestwatch/forestwatch-go/internal/mapview"
	"github.com/forestwatch/forestwatch-go/internal/nav"
	"github.com/forestwatch/forestwatch-go/internal/survey"
)

// View renders the current view
func (m *Model) View() string {
	switch m.machine.Mode() {
	case nav.ModeAlerts:
		return m.renderAlertsView()
	case nav.ModeAlertDetails:
		return m.renderDetailView()
	default:
		return m.renderTerritoriesView()
	}
}

func (m *Model) renderTerritoriesView() string {
	if m.territoriesErr != nil {
		return m.renderLoadError("territories", m.territoriesErr)
	}

	title := m.theme.PrimaryStyle().Bold(true).Render("FORESTWATCH · Territories")
	if !m.territoriesLoaded {
		title += "  " + m.spin.View() + m.theme.TextDimStyle().Render(" loading territories...")
	}
	if !m.alertsLoaded && m.alertsErr == nil {
		title += "  " + m.theme.TextDimStyle().Render("(alerts loading)")
	}

	canvas := m.buildOverviewCanvas()
	list := m.renderTerritoryList()

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas.Render(), "  ", list)

	help := m.theme.TextDimStyle().Render("↑/↓ select · enter open · click polygon · g grid · t theme · e export · q quit")

	return strings.Join([]string{title, body, m.renderStatusLine(), help}, "\n")
}

func (m *Model) renderAlertsView() string {
	if m.alertsErr != nil {
		return m.renderLoadError("alerts", m.alertsErr)
	}

	territory := m.machine.SelectedTerritory()
	name := ""
	if territory != nil {
		name = territory.Name
	}

	title := m.theme.PrimaryStyle().Bold(true).Render("FORESTWATCH · Alerts · " + name)
	if !m.alertsLoaded {
		title += "  " + m.spin.View() + m.theme.TextDimStyle().Render(" loading alerts...")
	}

	canvas := m.buildAlertsCanvas()
	list := m.renderAlertList()

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas.Render(), "  ", list)

	var searchLine string
	if m.searching {
		searchLine = m.theme.WarningStyle().Render("search: "+m.searchQuery) +
			m.theme.TextDimStyle().Render("  (enter apply · esc cancel)")
	} else if m.searchFilter.IsActive() {
		searchLine = m.theme.WarningStyle().Render("filter: " + m.searchFilter.Query)
	}

	help := m.theme.TextDimStyle().Render("↑/↓ select · enter details · / filter · esc back · e export · q quit")

	lines := []string{title, body, m.renderStatusLine()}
	if searchLine != "" {
		lines = append(lines, searchLine)
	}
	lines = append(lines, help)
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetailView() string {
	alert := m.machine.SelectedAlert()
	if alert == nil {
		// Unreachable by construction; render something sane anyway
		return m.theme.ErrorStyle().Render("no alert selected")
	}

	title := m.theme.PrimaryStyle().Bold(true).Render("FORESTWATCH · Alert " + alert.ID)
	info := fmt.Sprintf("area %.2f ha · detected %s · %d boundary points",
		alert.AreaHa, alert.Detected, len(alert.Boundary))

	panel := m.renderComparePanel()

	pos := m.compare.Position()
	sliderLine := fmt.Sprintf("before %3.0f%% %s after %3.0f%%",
		pos*100,
		m.theme.TextDimStyle().Render("(drag to compare)"),
		m.compare.ClipInset())

	rec := m.evidenceStore.ForAlert(alert.ID, alert.Detected)
	var evidenceLines []string
	evidenceLines = append(evidenceLines,
		m.theme.TextDimStyle().Render(fmt.Sprintf("snapshots: %d · photos: %d · voice notes: %d",
			len(rec.Snapshots), len(rec.Photos), len(rec.VoiceNotes))))
	for _, snap := range rec.Snapshots {
		evidenceLines = append(evidenceLines, m.theme.TextDimStyle().Render("  ▪ "+snap.Date))
	}

	help := m.theme.TextDimStyle().Render("drag slider · p photo · v voice note · esc back · q quit")

	lines := []string{
		title,
		m.theme.TextStyle().Render(info),
		"",
		panel,
		sliderLine,
	}
	lines = append(lines, evidenceLines...)
	lines = append(lines, m.renderStatusLine(), help)
	return strings.Join(lines, "\n")
}

// renderComparePanel draws the before/after reveal. The "before" overlay is
// clipped from the right by the slider's inset, so position 0 shows all of
// "after" and position 1 all of "before".
func (m *Model) renderComparePanel() string {
	split := int(m.compare.Position() * float64(compareWidth))
	if split < 0 {
		split = 0
	}
	if split > compareWidth {
		split = compareWidth
	}

	beforeStyle := lipgloss.NewStyle().Foreground(m.theme.ImageBefore)
	afterStyle := lipgloss.NewStyle().Foreground(m.theme.ImageAfter)
	handleStyle := lipgloss.NewStyle().Foreground(m.theme.Selected)
	borderStyle := m.theme.BorderStyle()

	var sb strings.Builder

	beforeLabel := " BEFORE "
	afterLabel := " AFTER "
	pad := compareWidth - len(beforeLabel) - len(afterLabel)
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(borderStyle.Render("╔"))
	sb.WriteString(beforeStyle.Render(beforeLabel))
	sb.WriteString(borderStyle.Render(strings.Repeat("═", pad)))
	sb.WriteString(afterStyle.Render(afterLabel))
	sb.WriteString(borderStyle.Render("╗"))
	sb.WriteString("\n")

	for y := 0; y < compareHeight; y++ {
		sb.WriteString(borderStyle.Render("║"))
		for x := 0; x < compareWidth; x++ {
			switch {
			case x == split && split > 0 && split < compareWidth:
				sb.WriteString(handleStyle.Render("║"))
			case x < split:
				sb.WriteString(beforeStyle.Render("█"))
			default:
				sb.WriteString(afterStyle.Render("░"))
			}
		}
		sb.WriteString(borderStyle.Render("║"))
		sb.WriteString("\n")
	}

	sb.WriteString(borderStyle.Render("╚"))
	sb.WriteString(borderStyle.Render(strings.Repeat("═", compareWidth)))
	sb.WriteString(borderStyle.Render("╝"))

	return sb.String()
}

func (m *Model) buildOverviewCanvas() *mapview.Canvas {
	canvas := mapview.NewCanvas(m.theme, m.machine.Viewport(), m.config.Display.ShowGrid)
	canvas.DrawGraticule()

	territoryStyle := mapview.Style{Char: '█', Color: m.theme.Territory}
	selectedStyle := mapview.Style{Char: '█', Color: m.theme.Selected}
	alertStyle := mapview.Style{Char: '▒', Color: m.theme.Alert}

	// Alerts first so territory outlines stay visible on top
	for i := range m.alerts {
		canvas.RenderPolygon(m.alerts[i].Boundary, alertStyle)
	}
	for i := range m.territories {
		style := territoryStyle
		if i == m.territoryCursor {
			style = selectedStyle
		}
		canvas.RenderPolygon(m.territories[i].Boundary, style)
	}

	if m.config.Display.ShowLabels {
		for i := range m.territories {
			t := &m.territories[i]
			if vp, ok := geom.ComputeViewport(t.Boundary); ok {
				canvas.PlotMarker(vp.Center, t.Name, mapview.Style{Char: '◈', Color: m.theme.MapMarker})
			}
		}
	}
	return canvas
}

func (m *Model) buildAlertsCanvas() *mapview.Canvas {
	canvas := mapview.NewCanvas(m.theme, m.machine.Viewport(), m.config.Display.ShowGrid)
	canvas.DrawGraticule()

	if t := m.machine.SelectedTerritory(); t != nil {
		canvas.RenderPolygon(t.Boundary, mapview.Style{Char: '█', Color: m.theme.Territory})
	}

	visible := m.visibleAlerts()
	for i := range visible {
		style := mapview.Style{Char: '▒', Color: m.theme.Alert}
		if i == m.alertCursor {
			style = mapview.Style{Char: '█', Color: m.theme.Selected}
		}
		canvas.RenderPolygon(visible[i].Boundary, style)
	}
	return canvas
}

func (m *Model) renderTerritoryList() string {
	var sb strings.Builder
	sb.WriteString(m.theme.PrimaryStyle().Render("TERRITORIES"))
	sb.WriteString("\n")

	if len(m.territories) == 0 {
		sb.WriteString(m.theme.TextDimStyle().Render("  (none loaded)"))
		return sb.String()
	}

	for i := range m.territories {
		t := &m.territories[i]
		line := fmt.Sprintf("  %s", t.Name)
		if m.config.Display.ShowAreas {
			line = fmt.Sprintf("%s · %.0f ha", line, t.AreaHa)
		}
		if !t.HasBoundary() {
			line += " ◦"
		}
		if i == m.territoryCursor {
			sb.WriteString(lipgloss.NewStyle().Foreground(m.theme.Selected).Render("▸" + line[1:]))
		} else {
			sb.WriteString(m.theme.TextStyle().Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderAlertList() string {
	var sb strings.Builder
	visible := m.visibleAlerts()

	sb.WriteString(m.theme.PrimaryStyle().Render(fmt.Sprintf("ALERTS (%d)", len(visible))))
	sb.WriteString("\n")

	if len(visible) == 0 {
		sb.WriteString(m.theme.TextDimStyle().Render("  (no alerts)"))
		return sb.String()
	}

	for i := range visible {
		a := &visible[i]
		line := fmt.Sprintf("  %s · %.1f ha · %s", a.ID, a.AreaHa, a.Detected)
		if !a.HasBoundary() {
			line += " ◦"
		}
		if i == m.alertCursor {
			sb.WriteString(lipgloss.NewStyle().Foreground(m.theme.Selected).Render("▸" + line[1:]))
		} else {
			sb.WriteString(m.theme.TextStyle().Render(line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderStatusLine() string {
	var parts []string
	if m.notification != "" {
		parts = append(parts, m.theme.WarningStyle().Render(m.notification))
	}
	if m.feedClient != nil {
		if m.feedClient.IsConnected() {
			parts = append(parts, m.theme.TextDimStyle().Render("feed: live"))
		} else {
			parts = append(parts, m.theme.TextDimStyle().Render("feed: offline"))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderLoadError(source string, err error) string {
	var fail *survey.LoadFailure
	message := err.Error()
	if errors.As(err, &fail) {
		message = fail.Error()
	}

	title := m.theme.ErrorStyle().Bold(true).Render("DATA LOAD FAILED")
	body := m.theme.TextStyle().Render(fmt.Sprintf("The %s data source could not be loaded.", source))
	detail := m.theme.TextDimStyle().Render(message)
	hint := m.theme.TextDimStyle().Render("Restart the viewer to retry. · q quit")

	return strings.Join([]string{"", title, "", body, detail, "", hint}, "\n")
}
