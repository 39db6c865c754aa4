// Package search provides search and filter functionality for the alert list
package search

import (
	"strconv"
	"strings"

	"github.com/forestwatch/forestwatch-go/internal/survey"
)

// Filter represents search/filter criteria for alerts
type Filter struct {
	Query      string
	MinAreaHa  float64
	MaxAreaHa  float64
	DatePrefix string
	textQuery  string // Plain text portion of query for alert code matching
}

// ParseQuery parses a search query string into a Filter
// Supported syntax:
//   - Plain text: matches the alert code
//   - "area:>10": minimum area filter (hectares)
//   - "area:<50": maximum area filter
//   - "area:10-50": area range
//   - "date:2023" or "date:2023-07": detection date prefix
func ParseQuery(query string) *Filter {
	f := &Filter{
		Query: query,
	}

	if query == "" {
		return f
	}

	tokens := strings.Fields(query)
	var textParts []string

	for _, token := range tokens {
		tokenLower := strings.ToLower(token)

		if strings.HasPrefix(tokenLower, "area:") {
			parseAreaToken(f, token[5:])
			continue
		}

		if strings.HasPrefix(tokenLower, "date:") {
			f.DatePrefix = token[5:]
			continue
		}

		textParts = append(textParts, token)
	}

	f.textQuery = strings.ToLower(strings.Join(textParts, " "))
	return f
}

func parseAreaToken(f *Filter, spec string) {
	switch {
	case strings.HasPrefix(spec, ">"):
		if v, err := strconv.ParseFloat(spec[1:], 64); err == nil {
			f.MinAreaHa = v
		}
	case strings.HasPrefix(spec, "<"):
		if v, err := strconv.ParseFloat(spec[1:], 64); err == nil {
			f.MaxAreaHa = v
		}
	case strings.Contains(spec, "-"):
		parts := strings.SplitN(spec, "-", 2)
		if lo, err := strconv.ParseFloat(parts[0], 64); err == nil {
			f.MinAreaHa = lo
		}
		if hi, err := strconv.ParseFloat(parts[1], 64); err == nil {
			f.MaxAreaHa = hi
		}
	default:
		if v, err := strconv.ParseFloat(spec, 64); err == nil {
			f.MinAreaHa = v
		}
	}
}

// IsActive returns true if the filter excludes anything
func (f *Filter) IsActive() bool {
	return f != nil && (f.textQuery != "" || f.MinAreaHa > 0 || f.MaxAreaHa > 0 || f.DatePrefix != "")
}

// Matches tests one alert against the filter
func (f *Filter) Matches(a *survey.Alert) bool {
	if f == nil {
		return true
	}
	if f.MinAreaHa > 0 && a.AreaHa < f.MinAreaHa {
		return false
	}
	if f.MaxAreaHa > 0 && a.AreaHa > f.MaxAreaHa {
		return false
	}
	if f.DatePrefix != "" && !strings.HasPrefix(a.Detected, f.DatePrefix) {
		return false
	}
	if f.textQuery != "" && !strings.Contains(strings.ToLower(a.ID), f.textQuery) {
		return false
	}
	return true
}

// FilterAlerts returns the alerts matching the filter, order preserved
func FilterAlerts(alerts []survey.Alert, f *Filter) []survey.Alert {
	if !f.IsActive() {
		return alerts
	}
	var result []survey.Alert
	for i := range alerts {
		if f.Matches(&alerts[i]) {
			result = append(result, alerts[i])
		}
	}
	return result
}
