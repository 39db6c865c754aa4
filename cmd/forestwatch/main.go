// Package main provides the entry point for the ForestWatch CLI application
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forestwatch/forestwatch-go/internal/app"
	"github.com/forestwatch/forestwatch-go/internal/config"
	"github.com/forestwatch/forestwatch-go/internal/theme"
	"github.com/spf13/cobra"
)

var (
	territoriesURL string
	alertsURL      string
	themeName      string
	exportDir      string
	listThemes     bool
	liveFeed       bool
	feedHost       string
	feedPort       int
	noGrid         bool
)

var rootCmd = &cobra.Command{
	Use:   "forestwatch",
	Short: "ForestWatch - Deforestation Alert Survey Viewer",
	Long: `ForestWatch - Deforestation Alert Survey Viewer

Interactive terminal viewer for indigenous territories and deforestation
alerts, with before/after imagery comparison and field evidence capture.
Settings saved to ~/.config/forestwatch/settings.json

Navigation:
  Territories view               Browse territories, click or enter to open
  Alerts view                    Browse a territory's alerts, / to filter
  Alert details                  Drag the slider to compare before/after

Export:
  [E] Export alerts to CSV       Export current alert data
  [Ctrl+E] Export to JSON        Export current alerts as JSON

Examples:
  forestwatch --theme satellite
  forestwatch --territories-url https://example.org/territories.geojson
  forestwatch --live --feed-host alerts.example.org --feed-port 443
  forestwatch --export-dir ~/exports`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&territoriesURL, "territories-url", "", "Territories GeoJSON document URL")
	rootCmd.Flags().StringVar(&alertsURL, "alerts-url", "", "Alerts GeoJSON document URL")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for export files (default: current directory)")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "List available themes")
	rootCmd.Flags().BoolVar(&liveFeed, "live", false, "Connect to the live alert feed")
	rootCmd.Flags().StringVar(&feedHost, "feed-host", "", "Live feed hostname")
	rootCmd.Flags().IntVar(&feedPort, "feed-port", 0, "Live feed port")
	rootCmd.Flags().BoolVar(&noGrid, "no-grid", false, "Disable the coordinate grid")

	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if listThemes {
		fmt.Println("\nAvailable Themes:")
		for _, t := range theme.GetInfo() {
			fmt.Printf("  %-15s %-15s - %s\n", t.Key, t.Name, t.Description)
		}
		fmt.Println()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Apply command line overrides
	if territoriesURL != "" {
		cfg.Data.TerritoriesURL = territoriesURL
	}
	if alertsURL != "" {
		cfg.Data.AlertsURL = alertsURL
	}
	if themeName != "" {
		cfg.Display.Theme = themeName
	}
	if exportDir != "" {
		absPath, err := filepath.Abs(exportDir)
		if err == nil {
			cfg.Export.Directory = absPath
		} else {
			cfg.Export.Directory = exportDir
		}
	}
	if liveFeed {
		cfg.Feed.Enabled = true
	}
	if feedHost != "" {
		cfg.Feed.Host = feedHost
	}
	if feedPort != 0 {
		cfg.Feed.Port = feedPort
	}
	if noGrid {
		cfg.Display.ShowGrid = false
	}

	// Show startup banner
	t := theme.Get(cfg.Display.Theme)
	fmt.Println(t.PrimaryStyle().Render("  ╔══════════════════════════════════════════╗"))
	fmt.Println(t.PrimaryStyle().Render("  ║     FORESTWATCH - LOADING SURVEY DATA    ║"))
	fmt.Println(t.PrimaryStyle().Render("  ╚══════════════════════════════════════════╝"))
	fmt.Printf("  Theme: %s\n", t.Name)
	fmt.Printf("  Territories: %s\n", cfg.Data.TerritoriesURL)
	fmt.Printf("  Alerts: %s\n\n", cfg.Data.AlertsURL)

	model := app.NewModel(cfg)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if _, err := p.Run(); err != nil {
		return err
	}

	_ = config.Save(cfg)
	fmt.Printf("\n  Settings saved. Keep the forest standing!\n\n")

	return nil
}
