// Package geom provides coordinate validation and viewport math for the
// ForestWatch map display
package geom

import (
	"encoding/json"
	"math"
)

// GeoPoint represents a geographic coordinate
type GeoPoint struct {
	Lat float64
	Lng float64
}

// RawCoordinate is a single coordinate entry as it appears in a feature
// payload: nominally a [lng, lat] pair, but any JSON value may show up in
// source data and must be tolerated.
type RawCoordinate []interface{}

// Validate filters a raw coordinate sequence down to well-formed points.
// A coordinate is kept iff it is a pair of finite numbers; everything else
// is dropped silently. Order of surviving points is preserved and the
// result may be empty. Input uses GeoJSON [lng, lat] ordering.
func Validate(raw []RawCoordinate) []GeoPoint {
	points := make([]GeoPoint, 0, len(raw))
	for _, coord := range raw {
		if len(coord) != 2 {
			continue
		}
		lng, ok := toFloat(coord[0])
		if !ok {
			continue
		}
		lat, ok := toFloat(coord[1])
		if !ok {
			continue
		}
		points = append(points, GeoPoint{Lat: lat, Lng: lng})
	}
	return points
}

// toFloat extracts a finite float from a decoded JSON value
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Contains reports whether a point lies inside the polygon described by
// boundary. Uses ray casting; boundaries with fewer than 3 points contain
// nothing.
func Contains(boundary []GeoPoint, lat, lng float64) bool {
	if len(boundary) < 3 {
		return false
	}

	n := len(boundary)
	inside := false

	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := boundary[i].Lat, boundary[i].Lng
		xj, yj := boundary[j].Lat, boundary[j].Lng

		if ((yi > lng) != (yj > lng)) &&
			(lat < (xj-xi)*(lng-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}
