package survey

import (
	"encoding/json"
	"fmt"

	"github.com/forestwatch/forestwatch-go/internal/geom"
)

// feature mirrors the wire shape of a single record in either payload.
// Properties and coordinates are decoded lazily: the two collections carry
// different property sets, and coordinates may contain arbitrary junk that
// the validator filters.
type feature struct {
	Properties json.RawMessage `json:"properties"`
	Geometry   struct {
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type territoryProperties struct {
	Name string  `json:"name"`
	Area float64 `json:"area"`
}

type alertProperties struct {
	Code     string  `json:"CODEALERTA"`
	AreaHa   float64 `json:"AREAHA"`
	Detected string  `json:"DATADETEC"`
}

// DecodeTerritories maps a territories feature-collection document to the
// typed collection. A feature whose outer ring is absent or entirely invalid
// yields a Territory with an empty boundary, not an error; only a document
// that cannot be parsed at all fails.
func DecodeTerritories(payload []byte) ([]Territory, error) {
	var fc featureCollection
	if err := json.Unmarshal(payload, &fc); err != nil {
		return nil, &LoadFailure{Source: "territories", Err: err}
	}

	territories := make([]Territory, 0, len(fc.Features))
	for _, f := range fc.Features {
		var props territoryProperties
		if len(f.Properties) > 0 {
			if err := json.Unmarshal(f.Properties, &props); err != nil {
				return nil, &LoadFailure{Source: "territories", Err: fmt.Errorf("feature properties: %w", err)}
			}
		}
		territories = append(territories, Territory{
			Name:     props.Name,
			AreaHa:   props.Area,
			Boundary: geom.Validate(outerRing(f.Geometry.Coordinates)),
		})
	}
	return territories, nil
}

// DecodeAlerts maps an alerts feature-collection document to the typed
// collection, with the same tolerance rules as DecodeTerritories.
func DecodeAlerts(payload []byte) ([]Alert, error) {
	var fc featureCollection
	if err := json.Unmarshal(payload, &fc); err != nil {
		return nil, &LoadFailure{Source: "alerts", Err: err}
	}

	alerts := make([]Alert, 0, len(fc.Features))
	for _, f := range fc.Features {
		alert, err := decodeAlertFeature(f)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// DecodeAlertFeatureList decodes a bare JSON array of alert features, as
// delivered by a feed snapshot.
func DecodeAlertFeatureList(payload []byte) ([]Alert, error) {
	var features []feature
	if err := json.Unmarshal(payload, &features); err != nil {
		return nil, &LoadFailure{Source: "alerts", Err: err}
	}

	alerts := make([]Alert, 0, len(features))
	for _, f := range features {
		alert, err := decodeAlertFeature(f)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// DecodeAlertFeature decodes a single alert feature, as delivered by the
// live feed.
func DecodeAlertFeature(payload []byte) (Alert, error) {
	var f feature
	if err := json.Unmarshal(payload, &f); err != nil {
		return Alert{}, &LoadFailure{Source: "alerts", Err: err}
	}
	return decodeAlertFeature(f)
}

func decodeAlertFeature(f feature) (Alert, error) {
	var props alertProperties
	if len(f.Properties) > 0 {
		if err := json.Unmarshal(f.Properties, &props); err != nil {
			return Alert{}, &LoadFailure{Source: "alerts", Err: fmt.Errorf("feature properties: %w", err)}
		}
	}
	return Alert{
		ID:       props.Code,
		AreaHa:   props.AreaHa,
		Detected: props.Detected,
		Boundary: geom.Validate(outerRing(f.Geometry.Coordinates)),
	}, nil
}

// outerRing extracts geometry.coordinates[0] as raw coordinate entries.
// Anything that does not decode to a ring list comes back empty; malformed
// entries inside the ring are passed through for the validator to drop.
func outerRing(coords json.RawMessage) []geom.RawCoordinate {
	if len(coords) == 0 {
		return nil
	}

	var rings []json.RawMessage
	if err := json.Unmarshal(coords, &rings); err != nil || len(rings) == 0 {
		return nil
	}

	var entries []interface{}
	if err := json.Unmarshal(rings[0], &entries); err != nil {
		return nil
	}

	raw := make([]geom.RawCoordinate, 0, len(entries))
	for _, entry := range entries {
		if pair, ok := entry.([]interface{}); ok {
			raw = append(raw, geom.RawCoordinate(pair))
		} else {
			// Not a pair at all; keep a stub so the validator rejects it
			raw = append(raw, geom.RawCoordinate{entry})
		}
	}
	return raw
}
