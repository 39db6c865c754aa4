// Package export provides export functionality for the ForestWatch CLI
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/forestwatch/forestwatch-go/internal/survey"
)

// ExportAlerts exports the alert list to CSV format
func ExportAlerts(alerts []survey.Alert, directory string) (string, error) {
	filename := GenerateFilename("forestwatch_alerts", "csv", directory)
	if err := ExportAlertsToFile(alerts, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// ExportAlertsToFile exports the alert list to a specific file
func ExportAlertsToFile(alerts []survey.Alert, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		file, err = os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"code",
		"area_ha",
		"detected",
		"boundary_points",
		"exported_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	exportedAt := time.Now().Format(time.RFC3339)

	for _, a := range alerts {
		row := []string{
			a.ID,
			strconv.FormatFloat(a.AreaHa, 'f', 2, 64),
			a.Detected,
			strconv.Itoa(len(a.Boundary)),
			exportedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

// GenerateFilename generates a timestamped filename in the given directory
func GenerateFilename(prefix, extension, directory string) string {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", prefix, timestamp, extension)
	if directory != "" {
		return filepath.Join(directory, filename)
	}
	return filename
}
