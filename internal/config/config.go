// Package config handles configuration loading, saving, and defaults for the
// ForestWatch CLI
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config directories and files
var (
	ConfigDir  string
	ConfigFile string
)

func init() {
	homeDir, _ := os.UserHomeDir()
	ConfigDir = filepath.Join(homeDir, ".config", "forestwatch")
	ConfigFile = filepath.Join(ConfigDir, "settings.json")
}

// DisplaySettings contains UI display options
type DisplaySettings struct {
	Theme      string `json:"theme"`
	ShowGrid   bool   `json:"show_grid"`
	ShowLabels bool   `json:"show_labels"`
	ShowAreas  bool   `json:"show_areas"`
}

// DataSettings contains the survey data source locations
type DataSettings struct {
	TerritoriesURL string `json:"territories_url"`
	AlertsURL      string `json:"alerts_url"`
}

// FeedSettings contains live alert feed options
type FeedSettings struct {
	Enabled        bool   `json:"enabled"`
	Host           string `json:"host"`
	Port           int    `json:"port"`
	ReconnectDelay int    `json:"reconnect_delay"`
}

// MapSettings contains map viewport options
type MapSettings struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom"`
}

// ExportSettings contains export options
type ExportSettings struct {
	Directory string `json:"directory"`
}

// Config is the main configuration container
type Config struct {
	Display DisplaySettings `json:"display"`
	Data    DataSettings    `json:"data"`
	Feed    FeedSettings    `json:"feed"`
	Map     MapSettings     `json:"map"`
	Export  ExportSettings  `json:"export"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Display: DisplaySettings{
			Theme:      "forest",
			ShowGrid:   true,
			ShowLabels: true,
			ShowAreas:  true,
		},
		Data: DataSettings{
			TerritoriesURL: "https://data.forestwatch.example/territories.geojson",
			AlertsURL:      "https://data.forestwatch.example/alerts.geojson",
		},
		Feed: FeedSettings{
			Enabled:        false,
			Host:           "localhost",
			Port:           80,
			ReconnectDelay: 2,
		},
		Map: MapSettings{
			CenterLat: -8.5,
			CenterLng: -55.0,
			Zoom:      4,
		},
		Export: ExportSettings{
			Directory: "",
		},
	}
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir, 0755)
}

// Load loads configuration from file or returns defaults
func Load() (*Config, error) {
	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		return DefaultConfig(), nil
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig(), nil
	}

	return config, nil
}

// Save saves configuration to file
func Save(config *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigFile, data, 0644)
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return ConfigFile
}
