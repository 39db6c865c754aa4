// Package theme provides color schemes for the ForestWatch survey display
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines a color scheme for the survey display
type Theme struct {
	Name        string
	Description string

	// Primary colors
	Primary       lipgloss.Color
	PrimaryBright lipgloss.Color
	PrimaryDim    lipgloss.Color

	// Secondary colors
	Secondary       lipgloss.Color
	SecondaryBright lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Special highlights
	Territory lipgloss.Color
	Alert     lipgloss.Color
	Selected  lipgloss.Color

	// UI elements
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	Background lipgloss.Color

	// Map specific
	MapGrid     lipgloss.Color
	MapMarker   lipgloss.Color
	ImageBefore lipgloss.Color
	ImageAfter  lipgloss.Color
}

// themes contains all available theme definitions
var themes = map[string]*Theme{
	"forest": {
		Name:            "Forest",
		Description:     "Green canopy tones, the default survey palette",
		Primary:         lipgloss.Color("28"),  // green
		PrimaryBright:   lipgloss.Color("46"),  // bright_green
		PrimaryDim:      lipgloss.Color("22"),  // dark_green
		Secondary:       lipgloss.Color("37"),  // cyan
		SecondaryBright: lipgloss.Color("51"),  // bright_cyan
		Success:         lipgloss.Color("46"),  // bright_green
		Warning:         lipgloss.Color("226"), // bright_yellow
		Error:           lipgloss.Color("196"), // bright_red
		Info:            lipgloss.Color("51"),  // bright_cyan
		Territory:       lipgloss.Color("46"),  // bright_green
		Alert:           lipgloss.Color("202"), // orange_red
		Selected:        lipgloss.Color("226"), // bright_yellow
		Border:          lipgloss.Color("28"),  // green
		BorderDim:       lipgloss.Color("22"),  // dark_green
		Text:            lipgloss.Color("28"),  // green
		TextDim:         lipgloss.Color("22"),  // dark_green
		Background:      lipgloss.Color("0"),   // black
		MapGrid:         lipgloss.Color("22"),  // dark_green
		MapMarker:       lipgloss.Color("51"),  // bright_cyan
		ImageBefore:     lipgloss.Color("34"),  // forest before clearing
		ImageAfter:      lipgloss.Color("130"), // exposed soil after
	},
	"amber": {
		Name:            "Amber",
		Description:     "Vintage amber monochrome display",
		Primary:         lipgloss.Color("178"), // yellow
		PrimaryBright:   lipgloss.Color("226"), // bright_yellow
		PrimaryDim:      lipgloss.Color("130"), // dark_orange
		Secondary:       lipgloss.Color("226"), // bright_yellow
		SecondaryBright: lipgloss.Color("231"), // bright_white
		Success:         lipgloss.Color("226"), // bright_yellow
		Warning:         lipgloss.Color("231"), // bright_white
		Error:           lipgloss.Color("196"), // bright_red
		Info:            lipgloss.Color("226"), // bright_yellow
		Territory:       lipgloss.Color("178"), // yellow
		Alert:           lipgloss.Color("196"), // bright_red
		Selected:        lipgloss.Color("231"), // bright_white
		Border:          lipgloss.Color("178"), // yellow
		BorderDim:       lipgloss.Color("130"), // dark_orange
		Text:            lipgloss.Color("178"), // yellow
		TextDim:         lipgloss.Color("130"), // dark_orange
		Background:      lipgloss.Color("0"),   // black
		MapGrid:         lipgloss.Color("130"), // dark_orange
		MapMarker:       lipgloss.Color("226"), // bright_yellow
		ImageBefore:     lipgloss.Color("178"),
		ImageAfter:      lipgloss.Color("130"),
	},
	"satellite": {
		Name:            "Satellite",
		Description:     "Muted imagery tones over dark ground",
		Primary:         lipgloss.Color("#4e9a06"),
		PrimaryBright:   lipgloss.Color("#8ae234"),
		PrimaryDim:      lipgloss.Color("#2e5c06"),
		Secondary:       lipgloss.Color("#729fcf"),
		SecondaryBright: lipgloss.Color("#adc8e6"),
		Success:         lipgloss.Color("#8ae234"),
		Warning:         lipgloss.Color("#fce94f"),
		Error:           lipgloss.Color("#ef2929"),
		Info:            lipgloss.Color("#729fcf"),
		Territory:       lipgloss.Color("#8ae234"),
		Alert:           lipgloss.Color("#f57900"),
		Selected:        lipgloss.Color("#fce94f"),
		Border:          lipgloss.Color("#4e9a06"),
		BorderDim:       lipgloss.Color("#2e5c06"),
		Text:            lipgloss.Color("#d3d7cf"),
		TextDim:         lipgloss.Color("#555753"),
		Background:      lipgloss.Color("0"),
		MapGrid:         lipgloss.Color("#2e5c06"),
		MapMarker:       lipgloss.Color("#729fcf"),
		ImageBefore:     lipgloss.Color("#4e9a06"),
		ImageAfter:      lipgloss.Color("#8f5902"),
	},
	"high_contrast": {
		Name:            "High Contrast",
		Description:     "Maximum visibility for bright field conditions",
		Primary:         lipgloss.Color("231"), // bright_white
		PrimaryBright:   lipgloss.Color("231"), // bright_white
		PrimaryDim:      lipgloss.Color("250"), // white
		Secondary:       lipgloss.Color("51"),  // bright_cyan
		SecondaryBright: lipgloss.Color("51"),  // bright_cyan
		Success:         lipgloss.Color("46"),  // bright_green
		Warning:         lipgloss.Color("226"), // bright_yellow
		Error:           lipgloss.Color("196"), // bright_red
		Info:            lipgloss.Color("51"),  // bright_cyan
		Territory:       lipgloss.Color("46"),  // bright_green
		Alert:           lipgloss.Color("196"), // bright_red
		Selected:        lipgloss.Color("226"), // bright_yellow
		Border:          lipgloss.Color("231"), // bright_white
		BorderDim:       lipgloss.Color("250"), // white
		Text:            lipgloss.Color("231"), // bright_white
		TextDim:         lipgloss.Color("250"), // white
		Background:      lipgloss.Color("0"),   // black
		MapGrid:         lipgloss.Color("250"), // white
		MapMarker:       lipgloss.Color("51"),  // bright_cyan
		ImageBefore:     lipgloss.Color("46"),
		ImageAfter:      lipgloss.Color("196"),
	},
}

// Get returns a theme by name, defaults to forest if not found
func Get(name string) *Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["forest"]
}

// List returns all available theme names
func List() []string {
	names := make([]string, 0, len(themes))
	// Return in a consistent order
	order := []string{"forest", "amber", "satellite", "high_contrast"}
	for _, name := range order {
		if _, ok := themes[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// ThemeInfo contains theme metadata for display
type ThemeInfo struct {
	Key         string
	Name        string
	Description string
}

// GetInfo returns metadata for all themes in display order
func GetInfo() []ThemeInfo {
	info := make([]ThemeInfo, 0, len(themes))
	for _, key := range List() {
		t := themes[key]
		info = append(info, ThemeInfo{
			Key:         key,
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return info
}

// Style helper methods

// PrimaryStyle returns a style with the primary color
func (t *Theme) PrimaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Primary)
}

// BorderStyle returns a style with the border color
func (t *Theme) BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Border)
}

// TextStyle returns a style with the text color
func (t *Theme) TextStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text)
}

// TextDimStyle returns a style with the dim text color
func (t *Theme) TextDimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.TextDim)
}

// ErrorStyle returns a style with the error color
func (t *Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error)
}

// WarningStyle returns a style with the warning color
func (t *Theme) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}
