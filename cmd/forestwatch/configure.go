package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forestwatch/forestwatch-go/internal/config"
	"github.com/forestwatch/forestwatch-go/internal/theme"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive configuration wizard",
	Long: `Launch an interactive wizard to configure ForestWatch settings.

The wizard guides you through configuring:
  - Data sources (territories and alerts document URLs)
  - Display settings (theme, grid, labels)
  - Live feed settings (host, port, reconnect delay)
  - Map settings (default center and zoom)

Settings are saved to ~/.config/forestwatch/settings.json

Examples:
  forestwatch configure`,
	RunE: runConfigure,
}

// Wizard sections
const (
	sectionWelcome = iota
	sectionData
	sectionDisplay
	sectionFeed
	sectionMap
	sectionSummary
)

// Field types
const (
	fieldText = iota
	fieldNumber
	fieldFloat
	fieldBool
	fieldSelect
)

type wizardField struct {
	name        string
	label       string
	help        string
	fieldType   int
	options     []string // for select fields
	optionKeys  []string // keys corresponding to options
	textInput   textinput.Model
	boolValue   bool
	selectIndex int
}

type wizardModel struct {
	cfg          *config.Config
	section      int
	fieldIndex   int
	fields       [][]wizardField
	sectionNames []string
	width        int
	height       int
	quitting     bool
	saved        bool
	err          error

	// Styles
	titleStyle    lipgloss.Style
	sectionStyle  lipgloss.Style
	labelStyle    lipgloss.Style
	valueStyle    lipgloss.Style
	helpStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	dimStyle      lipgloss.Style
	successStyle  lipgloss.Style
	errorStyle    lipgloss.Style
}

func newWizardModel(cfg *config.Config) wizardModel {
	m := wizardModel{
		cfg:     cfg,
		section: sectionWelcome,
		sectionNames: []string{
			"Welcome",
			"Data",
			"Display",
			"Feed",
			"Map",
			"Summary",
		},
		width:  80,
		height: 24,
	}

	m.titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("34")).
		MarginBottom(1)

	m.sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("43"))

	m.labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	m.valueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("34"))

	m.helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)

	m.selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("226"))

	m.dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	m.successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("34"))

	m.errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Initialize fields for each section
	m.fields = make([][]wizardField, 6)

	// Welcome section (no fields)
	m.fields[sectionWelcome] = []wizardField{}

	// Data section
	m.fields[sectionData] = []wizardField{
		m.createTextField("territories_url", "Territories URL", "GeoJSON document with territory boundaries", cfg.Data.TerritoriesURL),
		m.createTextField("alerts_url", "Alerts URL", "GeoJSON document with deforestation alerts", cfg.Data.AlertsURL),
	}

	// Display section - theme selection
	themeOptions := []string{}
	themeKeys := []string{}
	for _, t := range theme.GetInfo() {
		themeOptions = append(themeOptions, fmt.Sprintf("%s - %s", t.Name, t.Description))
		themeKeys = append(themeKeys, t.Key)
	}
	themeIndex := 0
	for i, key := range themeKeys {
		if key == cfg.Display.Theme {
			themeIndex = i
			break
		}
	}

	m.fields[sectionDisplay] = []wizardField{
		m.createSelectField("theme", "Color Theme", "Visual theme for the map display", themeOptions, themeKeys, themeIndex),
		m.createBoolField("show_grid", "Show Grid", "Display the coordinate grid on the map", cfg.Display.ShowGrid),
		m.createBoolField("show_labels", "Show Labels", "Display territory name labels", cfg.Display.ShowLabels),
		m.createBoolField("show_areas", "Show Areas", "Display territory areas in hectares", cfg.Display.ShowAreas),
	}

	// Feed section
	m.fields[sectionFeed] = []wizardField{
		m.createBoolField("enabled", "Enable Live Feed", "Connect to the live alert feed on startup", cfg.Feed.Enabled),
		m.createTextField("host", "Feed Host", "Hostname of the alert feed server", cfg.Feed.Host),
		m.createNumberField("port", "Feed Port", "Port number (typically 80 or 443)", cfg.Feed.Port),
		m.createNumberField("reconnect_delay", "Reconnect Delay (s)", "Seconds to wait before reconnecting", cfg.Feed.ReconnectDelay),
	}

	// Map section
	m.fields[sectionMap] = []wizardField{
		m.createFloatField("center_lat", "Center Latitude", "Default map center latitude (-90 to 90)", cfg.Map.CenterLat),
		m.createFloatField("center_lng", "Center Longitude", "Default map center longitude (-180 to 180)", cfg.Map.CenterLng),
		m.createNumberField("zoom", "Zoom Level", "Default map zoom level (1-16)", cfg.Map.Zoom),
	}

	// Summary section (no fields)
	m.fields[sectionSummary] = []wizardField{}

	return m
}

func (m wizardModel) createTextField(name, label, help, value string) wizardField {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CharLimit = 256
	ti.Width = 50
	return wizardField{
		name:      name,
		label:     label,
		help:      help,
		fieldType: fieldText,
		textInput: ti,
	}
}

func (m wizardModel) createNumberField(name, label, help string, value int) wizardField {
	ti := textinput.New()
	ti.SetValue(strconv.Itoa(value))
	ti.CharLimit = 10
	ti.Width = 20
	return wizardField{
		name:      name,
		label:     label,
		help:      help,
		fieldType: fieldNumber,
		textInput: ti,
	}
}

func (m wizardModel) createFloatField(name, label, help string, value float64) wizardField {
	ti := textinput.New()
	ti.SetValue(fmt.Sprintf("%.6f", value))
	ti.CharLimit = 20
	ti.Width = 25
	return wizardField{
		name:      name,
		label:     label,
		help:      help,
		fieldType: fieldFloat,
		textInput: ti,
	}
}

func (m wizardModel) createBoolField(name, label, help string, value bool) wizardField {
	return wizardField{
		name:      name,
		label:     label,
		help:      help,
		fieldType: fieldBool,
		boolValue: value,
	}
}

func (m wizardModel) createSelectField(name, label, help string, options, keys []string, selected int) wizardField {
	return wizardField{
		name:        name,
		label:       label,
		help:        help,
		fieldType:   fieldSelect,
		options:     options,
		optionKeys:  keys,
		selectIndex: selected,
	}
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.section == sectionWelcome || m.section == sectionSummary {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			// Go back
			if m.section > sectionWelcome {
				m.section--
				m.fieldIndex = 0
				if len(m.fields[m.section]) > 0 && m.fields[m.section][0].fieldType <= fieldFloat {
					m.fields[m.section][0].textInput.Focus()
				}
			}
			return m, nil
		case "enter":
			return m.handleEnter()
		case "tab", "down":
			return m.handleNext()
		case "shift+tab", "up":
			return m.handlePrev()
		case "left":
			if m.section > sectionWelcome && m.section < sectionSummary {
				f := &m.fields[m.section][m.fieldIndex]
				if f.fieldType == fieldBool {
					f.boolValue = !f.boolValue
				} else if f.fieldType == fieldSelect && f.selectIndex > 0 {
					f.selectIndex--
				}
			}
			return m, nil
		case "right":
			if m.section > sectionWelcome && m.section < sectionSummary {
				f := &m.fields[m.section][m.fieldIndex]
				if f.fieldType == fieldBool {
					f.boolValue = !f.boolValue
				} else if f.fieldType == fieldSelect && f.selectIndex < len(f.options)-1 {
					f.selectIndex++
				}
			}
			return m, nil
		case " ":
			// Toggle for bool fields
			if m.section > sectionWelcome && m.section < sectionSummary {
				f := &m.fields[m.section][m.fieldIndex]
				if f.fieldType == fieldBool {
					f.boolValue = !f.boolValue
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	// Update text input if active
	if m.section > sectionWelcome && m.section < sectionSummary {
		if len(m.fields[m.section]) > 0 {
			f := &m.fields[m.section][m.fieldIndex]
			if f.fieldType <= fieldFloat {
				var cmd tea.Cmd
				f.textInput, cmd = f.textInput.Update(msg)
				return m, cmd
			}
		}
	}

	return m, nil
}

func (m wizardModel) handleEnter() (tea.Model, tea.Cmd) {
	if m.section == sectionWelcome {
		m.section = sectionData
		m.fieldIndex = 0
		if len(m.fields[m.section]) > 0 && m.fields[m.section][0].fieldType <= fieldFloat {
			m.fields[m.section][0].textInput.Focus()
		}
		return m, nil
	}

	if m.section == sectionSummary {
		// Save and quit
		m.applyFields()
		if err := config.Save(m.cfg); err != nil {
			m.err = err
		} else {
			m.saved = true
		}
		m.quitting = true
		return m, tea.Quit
	}

	// Move to next field or section
	return m.handleNext()
}

func (m wizardModel) handleNext() (tea.Model, tea.Cmd) {
	if m.section == sectionWelcome {
		m.section = sectionData
		m.fieldIndex = 0
		if len(m.fields[m.section]) > 0 && m.fields[m.section][0].fieldType <= fieldFloat {
			m.fields[m.section][0].textInput.Focus()
		}
		return m, nil
	}

	if m.section == sectionSummary {
		return m, nil
	}

	// Unfocus current
	if len(m.fields[m.section]) > 0 && m.fieldIndex < len(m.fields[m.section]) {
		m.fields[m.section][m.fieldIndex].textInput.Blur()
	}

	m.fieldIndex++
	if m.fieldIndex >= len(m.fields[m.section]) {
		// Move to next section
		m.section++
		m.fieldIndex = 0
	}

	// Focus new field
	if m.section < sectionSummary && len(m.fields[m.section]) > 0 {
		f := &m.fields[m.section][m.fieldIndex]
		if f.fieldType <= fieldFloat {
			f.textInput.Focus()
		}
	}

	return m, nil
}

func (m wizardModel) handlePrev() (tea.Model, tea.Cmd) {
	if m.section == sectionWelcome {
		return m, nil
	}

	// Unfocus current
	if m.section < sectionSummary && len(m.fields[m.section]) > 0 && m.fieldIndex < len(m.fields[m.section]) {
		m.fields[m.section][m.fieldIndex].textInput.Blur()
	}

	m.fieldIndex--
	if m.fieldIndex < 0 {
		// Move to previous section
		if m.section > sectionData {
			m.section--
			m.fieldIndex = len(m.fields[m.section]) - 1
		} else {
			m.fieldIndex = 0
		}
	}

	// Focus new field
	if m.section < sectionSummary && len(m.fields[m.section]) > 0 {
		f := &m.fields[m.section][m.fieldIndex]
		if f.fieldType <= fieldFloat {
			f.textInput.Focus()
		}
	}

	return m, nil
}

func (m *wizardModel) applyFields() {
	// Data
	for _, f := range m.fields[sectionData] {
		switch f.name {
		case "territories_url":
			m.cfg.Data.TerritoriesURL = f.textInput.Value()
		case "alerts_url":
			m.cfg.Data.AlertsURL = f.textInput.Value()
		}
	}

	// Display
	for _, f := range m.fields[sectionDisplay] {
		switch f.name {
		case "theme":
			if f.selectIndex < len(f.optionKeys) {
				m.cfg.Display.Theme = f.optionKeys[f.selectIndex]
			}
		case "show_grid":
			m.cfg.Display.ShowGrid = f.boolValue
		case "show_labels":
			m.cfg.Display.ShowLabels = f.boolValue
		case "show_areas":
			m.cfg.Display.ShowAreas = f.boolValue
		}
	}

	// Feed
	for _, f := range m.fields[sectionFeed] {
		switch f.name {
		case "enabled":
			m.cfg.Feed.Enabled = f.boolValue
		case "host":
			m.cfg.Feed.Host = f.textInput.Value()
		case "port":
			if v, err := strconv.Atoi(f.textInput.Value()); err == nil {
				m.cfg.Feed.Port = v
			}
		case "reconnect_delay":
			if v, err := strconv.Atoi(f.textInput.Value()); err == nil {
				m.cfg.Feed.ReconnectDelay = v
			}
		}
	}

	// Map
	for _, f := range m.fields[sectionMap] {
		switch f.name {
		case "center_lat":
			if v, err := strconv.ParseFloat(f.textInput.Value(), 64); err == nil {
				m.cfg.Map.CenterLat = v
			}
		case "center_lng":
			if v, err := strconv.ParseFloat(f.textInput.Value(), 64); err == nil {
				m.cfg.Map.CenterLng = v
			}
		case "zoom":
			if v, err := strconv.Atoi(f.textInput.Value()); err == nil {
				m.cfg.Map.Zoom = v
			}
		}
	}
}

func (m wizardModel) View() string {
	if m.quitting {
		if m.err != nil {
			return m.errorStyle.Render(fmt.Sprintf("\n  Error saving configuration: %v\n\n", m.err))
		}
		if m.saved {
			return m.successStyle.Render("\n  Configuration saved to ~/.config/forestwatch/settings.json\n\n")
		}
		return "\n  Configuration wizard cancelled.\n\n"
	}

	var b strings.Builder

	// Header
	b.WriteString("\n")
	b.WriteString(m.titleStyle.Render("  FORESTWATCH CONFIGURATION WIZARD"))
	b.WriteString("\n\n")

	// Progress indicator
	b.WriteString("  ")
	for i, name := range m.sectionNames {
		if i == m.section {
			b.WriteString(m.selectedStyle.Render(fmt.Sprintf("[%s]", name)))
		} else if i < m.section {
			b.WriteString(m.successStyle.Render(fmt.Sprintf("[%s]", name)))
		} else {
			b.WriteString(m.dimStyle.Render(fmt.Sprintf("[%s]", name)))
		}
		if i < len(m.sectionNames)-1 {
			b.WriteString(m.dimStyle.Render(" > "))
		}
	}
	b.WriteString("\n\n")

	// Section content
	switch m.section {
	case sectionWelcome:
		b.WriteString(m.renderWelcome())
	case sectionSummary:
		b.WriteString(m.renderSummary())
	default:
		b.WriteString(m.renderFields())
	}

	// Navigation help
	b.WriteString("\n")
	if m.section == sectionWelcome {
		b.WriteString(m.helpStyle.Render("  Press Enter to start, q to quit"))
	} else if m.section == sectionSummary {
		b.WriteString(m.helpStyle.Render("  Press Enter to save, Esc to go back, q to quit without saving"))
	} else {
		b.WriteString(m.helpStyle.Render("  Tab/Down: next  Shift+Tab/Up: previous  Space: toggle  Esc: back"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m wizardModel) renderWelcome() string {
	var b strings.Builder

	welcome := `  Welcome to the ForestWatch Configuration Wizard!

  This wizard will help you configure:

    1. Data     - Territories and alerts document URLs
    2. Display  - Theme, grid, and label options
    3. Feed     - Live alert feed connection
    4. Map      - Default viewport center and zoom

  Your settings will be saved to:
    ~/.config/forestwatch/settings.json

  You can also edit this file directly or use command-line flags
  to override individual settings.`

	b.WriteString(m.labelStyle.Render(welcome))
	b.WriteString("\n")

	return b.String()
}

func (m wizardModel) renderFields() string {
	var b strings.Builder

	sectionName := m.sectionNames[m.section]
	b.WriteString(m.sectionStyle.Render(fmt.Sprintf("  %s Settings", sectionName)))
	b.WriteString("\n\n")

	for i, f := range m.fields[m.section] {
		isSelected := i == m.fieldIndex

		// Label
		label := f.label
		if isSelected {
			b.WriteString(m.selectedStyle.Render(fmt.Sprintf("  > %s: ", label)))
		} else {
			b.WriteString(m.labelStyle.Render(fmt.Sprintf("    %s: ", label)))
		}

		// Value
		switch f.fieldType {
		case fieldText, fieldNumber, fieldFloat:
			if isSelected {
				b.WriteString(f.textInput.View())
			} else {
				b.WriteString(m.valueStyle.Render(f.textInput.Value()))
			}
		case fieldBool:
			if f.boolValue {
				b.WriteString(m.successStyle.Render("[ON] "))
				b.WriteString(m.dimStyle.Render("OFF"))
			} else {
				b.WriteString(m.dimStyle.Render("ON "))
				b.WriteString(m.errorStyle.Render("[OFF]"))
			}
		case fieldSelect:
			if isSelected {
				// Show current option with arrows
				b.WriteString(m.dimStyle.Render("< "))
				b.WriteString(m.valueStyle.Render(f.options[f.selectIndex]))
				b.WriteString(m.dimStyle.Render(" >"))
			} else {
				b.WriteString(m.valueStyle.Render(f.options[f.selectIndex]))
			}
		}

		b.WriteString("\n")

		// Help text for selected field
		if isSelected && f.help != "" {
			b.WriteString(m.helpStyle.Render(fmt.Sprintf("      %s", f.help)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m wizardModel) renderSummary() string {
	var b strings.Builder

	b.WriteString(m.sectionStyle.Render("  Configuration Summary"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		index int
	}{
		{"Data", sectionData},
		{"Display", sectionDisplay},
		{"Feed", sectionFeed},
		{"Map", sectionMap},
	}

	for _, s := range sections {
		b.WriteString(m.labelStyle.Render(fmt.Sprintf("  %s:\n", s.title)))
		for _, f := range m.fields[s.index] {
			value := ""
			switch f.fieldType {
			case fieldText, fieldNumber, fieldFloat:
				value = f.textInput.Value()
			case fieldBool:
				if f.boolValue {
					value = "ON"
				} else {
					value = "OFF"
				}
			case fieldSelect:
				value = f.optionKeys[f.selectIndex]
			}
			b.WriteString(fmt.Sprintf("    %s: %s\n", m.dimStyle.Render(f.label), m.valueStyle.Render(value)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func runConfigure(cmd *cobra.Command, args []string) error {
	// Load existing configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Create and run the wizard
	model := newWizardModel(cfg)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
