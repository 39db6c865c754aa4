// Package testutil provides testing utilities for ForestWatch E2E tests
package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Territory names seen in the survey region
var territoryNames = []string{
	"Tapajós", "Kayapó", "Munduruku", "Baú", "Menkragnoti",
	"Panará", "Capoto/Jarina", "Badjônkôre",
}

// TerritoryFeature builds one territory feature with a rectangular ring
// around the given center
func TerritoryFeature(name string, area, lat, lng float64) map[string]interface{} {
	return map[string]interface{}{
		"type": "Feature",
		"properties": map[string]interface{}{
			"name": name,
			"area": area,
		},
		"geometry": map[string]interface{}{
			"type":        "Polygon",
			"coordinates": []interface{}{rectangleRing(lat, lng, 0.5)},
		},
	}
}

// AlertFeature builds one alert feature with a rectangular ring around the
// given center
func AlertFeature(code string, areaHa float64, detected string, lat, lng float64) map[string]interface{} {
	return map[string]interface{}{
		"type": "Feature",
		"properties": map[string]interface{}{
			"CODEALERTA": code,
			"AREAHA":     areaHa,
			"DATADETEC":  detected,
		},
		"geometry": map[string]interface{}{
			"type":        "Polygon",
			"coordinates": []interface{}{rectangleRing(lat, lng, 0.05)},
		},
	}
}

// FeatureCollection wraps features into a collection document
func FeatureCollection(features ...map[string]interface{}) []byte {
	doc := map[string]interface{}{
		"type":     "FeatureCollection",
		"features": features,
	}
	payload, _ := json.Marshal(doc)
	return payload
}

// rectangleRing returns a closed [lng, lat] ring around the center
func rectangleRing(lat, lng, half float64) []interface{} {
	return []interface{}{
		[]interface{}{lng - half, lat - half},
		[]interface{}{lng + half, lat - half},
		[]interface{}{lng + half, lat + half},
		[]interface{}{lng - half, lat + half},
		[]interface{}{lng - half, lat - half},
	}
}

// GenerateTerritoriesDoc builds a territories document with count features
// scattered over the default survey region
func GenerateTerritoriesDoc(count int) []byte {
	features := make([]map[string]interface{}, count)
	for i := 0; i < count; i++ {
		name := territoryNames[i%len(territoryNames)]
		if i >= len(territoryNames) {
			name = fmt.Sprintf("%s %d", name, i/len(territoryNames)+1)
		}
		features[i] = TerritoryFeature(
			name,
			float64(1000+rand.Intn(90000)),
			-9.0+rand.Float64()*4,
			-57.0+rand.Float64()*6,
		)
	}
	return FeatureCollection(features...)
}

// GenerateAlertsDoc builds an alerts document with count features
func GenerateAlertsDoc(count int) []byte {
	features := make([]map[string]interface{}, count)
	for i := 0; i < count; i++ {
		features[i] = AlertFeature(
			fmt.Sprintf("ALT-%04d", i+1),
			1+rand.Float64()*40,
			fmt.Sprintf("2023-%02d-%02d", 1+rand.Intn(12), 1+rand.Intn(28)),
			-9.0+rand.Float64()*4,
			-57.0+rand.Float64()*6,
		)
	}
	return FeatureCollection(features...)
}
