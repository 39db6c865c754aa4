// Package survey holds the territory and alert collections derived from the
// monitoring backend's feature payloads
package survey

import (
	"fmt"

	"github.com/forestwatch/forestwatch-go/internal/geom"
)

// Territory is a protected territory under survey. Created once at load time
// and immutable thereafter.
type Territory struct {
	Name     string
	AreaHa   float64
	Boundary []geom.GeoPoint
}

// Alert is a deforestation alert detected inside the survey region. One alert
// may geometrically fall inside zero or more territories; the system does not
// compute containment between the two collections.
type Alert struct {
	ID       string
	AreaHa   float64
	Detected string
	Boundary []geom.GeoPoint
}

// HasBoundary reports whether the territory has renderable geometry
func (t *Territory) HasBoundary() bool {
	return len(t.Boundary) > 0
}

// HasBoundary reports whether the alert has renderable geometry
func (a *Alert) HasBoundary() bool {
	return len(a.Boundary) > 0
}

// LoadFailure signals that a data source could not be fetched or parsed.
// It halts readiness of the affected view only; navigation state is never
// touched by a failed load.
type LoadFailure struct {
	Source string
	Err    error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadFailure) Unwrap() error {
	return e.Err
}
