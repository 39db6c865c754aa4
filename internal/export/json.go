package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forestwatch/forestwatch-go/internal/survey"
)

// AlertExport represents one alert for JSON export
type AlertExport struct {
	Code           string  `json:"code"`
	AreaHa         float64 `json:"area_ha"`
	Detected       string  `json:"detected,omitempty"`
	BoundaryPoints int     `json:"boundary_points"`
}

// AlertExportData represents the full JSON export structure
type AlertExportData struct {
	Timestamp     string        `json:"timestamp"`
	ExportVersion string        `json:"export_version"`
	TotalAlerts   int           `json:"total_alerts"`
	Alerts        []AlertExport `json:"alerts"`
}

// ExportAlertsJSON exports the alert list to pretty-printed JSON
func ExportAlertsJSON(alerts []survey.Alert, directory string) (string, error) {
	filename := GenerateFilename("forestwatch_alerts", "json", directory)

	data := AlertExportData{
		Timestamp:     time.Now().Format(time.RFC3339),
		ExportVersion: "1.0",
		TotalAlerts:   len(alerts),
		Alerts:        make([]AlertExport, 0, len(alerts)),
	}

	for _, a := range alerts {
		data.Alerts = append(data.Alerts, AlertExport{
			Code:           a.ID,
			AreaHa:         a.AreaHa,
			Detected:       a.Detected,
			BoundaryPoints: len(a.Boundary),
		})
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.WriteFile(filename, payload, 0644); err != nil {
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(filename, payload, 0644); err != nil {
			return "", fmt.Errorf("failed to write file: %w", err)
		}
	}

	return filename, nil
}
