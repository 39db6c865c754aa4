package geom

import "github.com/paulmach/orb"

// Default viewport covering the survey region (Amazon basin overview)
const (
	DefaultCenterLat = -8.5
	DefaultCenterLng = -55.0
	DefaultZoom      = 4
)

// TerritoryDetailZoom is applied whenever a selection drives a viewport
// recompute. The zoom is a single tuned constant rather than a fit-to-bounds
// value derived from envelope size; a size-adaptive zoom is a possible
// future enhancement.
const TerritoryDetailZoom = 12

// Viewport is the map's current center point and zoom level
type Viewport struct {
	Center GeoPoint
	Zoom   int
}

// DefaultViewport returns the startup viewport
func DefaultViewport() Viewport {
	return Viewport{
		Center: GeoPoint{Lat: DefaultCenterLat, Lng: DefaultCenterLng},
		Zoom:   DefaultZoom,
	}
}

// ComputeViewport computes a viewport centered on the envelope of the given
// points at the detail zoom. Returns false for an empty point set, in which
// case the caller keeps its prior viewport.
func ComputeViewport(points []GeoPoint) (Viewport, bool) {
	if len(points) == 0 {
		return Viewport{}, false
	}

	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = orb.Point{p.Lng, p.Lat}
	}

	center := mp.Bound().Center()
	return Viewport{
		Center: GeoPoint{Lat: center.Y(), Lng: center.X()},
		Zoom:   TerritoryDetailZoom,
	}, true
}
