package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/forestwatch/forestwatch-go/internal/geom"
	"github.com/forestwatch/forestwatch-go/internal/survey"
	"github.com/forestwatch/forestwatch-go/internal/testutil"
)

func exportAlerts() []survey.Alert {
	return []survey.Alert{
		{
			ID:       "ALT-0001",
			AreaHa:   12.5,
			Detected: "2023-07-14",
			Boundary: []geom.GeoPoint{{Lat: -4, Lng: -56}, {Lat: -4, Lng: -55}, {Lat: -3, Lng: -55}},
		},
		{ID: "ALT-0002", AreaHa: 3.25, Detected: "2023-08-01"},
	}
}

func TestExportAlertsCSV(t *testing.T) {
	dir := testutil.TempExportDir(t)

	filename, err := ExportAlerts(exportAlerts(), dir)
	if err != nil {
		t.Fatalf("ExportAlerts failed: %v", err)
	}
	if !testutil.FileExists(filename) {
		t.Fatalf("Export file %s does not exist", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Export has %d rows, want header + 2", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "code,area_ha,detected,boundary_points,exported_at" {
		t.Errorf("Header = %q", header)
	}
	if rows[1][0] != "ALT-0001" || rows[1][1] != "12.50" || rows[1][3] != "3" {
		t.Errorf("First row = %v", rows[1])
	}
	if rows[2][3] != "0" {
		t.Errorf("Boundary-less alert should export 0 points, got %q", rows[2][3])
	}
}

func TestExportAlertsJSON(t *testing.T) {
	dir := testutil.TempExportDir(t)

	filename, err := ExportAlertsJSON(exportAlerts(), dir)
	if err != nil {
		t.Fatalf("ExportAlertsJSON failed: %v", err)
	}

	payload, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var data AlertExportData
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if data.ExportVersion != "1.0" {
		t.Errorf("ExportVersion = %q, want 1.0", data.ExportVersion)
	}
	if data.TotalAlerts != 2 || len(data.Alerts) != 2 {
		t.Errorf("TotalAlerts = %d, Alerts = %d, want 2 each", data.TotalAlerts, len(data.Alerts))
	}
	if data.Alerts[0].Code != "ALT-0001" || data.Alerts[0].BoundaryPoints != 3 {
		t.Errorf("First alert = %+v", data.Alerts[0])
	}
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename("forestwatch_alerts", "csv", "")
	if !strings.HasPrefix(name, "forestwatch_alerts_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("Filename = %q", name)
	}

	name = GenerateFilename("forestwatch_alerts", "json", "/tmp/exports")
	if !strings.HasPrefix(name, "/tmp/exports/") {
		t.Errorf("Filename = %q, want /tmp/exports prefix", name)
	}
}

func TestExportEmptyAlertList(t *testing.T) {
	dir := testutil.TempExportDir(t)

	filename, err := ExportAlerts(nil, dir)
	if err != nil {
		t.Fatalf("Exporting an empty list should still write a header: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Empty export has %d rows, want header only", len(rows))
	}
}
