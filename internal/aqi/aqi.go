// Package aqi converts PM2.5 concentrations to a US-AQI-like index and
// classifies them into severity bands.
package aqi

import "math"

// FromPM25 maps a PM2.5 concentration (µg/m³) to an AQI value using a
// piecewise-linear breakpoint function, rounded to the nearest integer.
func FromPM25(pm float64) int {
	var v float64
	switch {
	case pm <= 12:
		v = (50.0 / 12.0) * pm
	case pm <= 35.4:
		v = 50 + (49.0/23.3)*(pm-12)
	default:
		v = 100 + (49.0/20.0)*(pm-35.5)
	}
	return int(math.Round(v))
}

// Category is a severity band with a label and descriptive text.
type Category struct {
	Label       string
	Description string
}

// CategoryForPM25 classifies a PM2.5 concentration into one of six ordered
// severity bands. Total over the real line: any input lands in a band.
func CategoryForPM25(pm float64) Category {
	switch {
	case pm <= 30:
		return Category{"Good", "Minimal health impact."}
	case pm <= 60:
		return Category{"Satisfactory", "Minor breathing discomfort to sensitive people."}
	case pm <= 90:
		return Category{"Moderate", "Breathing discomfort to people with lung or heart disease."}
	case pm <= 120:
		return Category{"Poor", "Breathing discomfort to most people on prolonged exposure."}
	case pm <= 250:
		return Category{"Very Poor", "Respiratory illness on prolonged exposure."}
	default:
		return Category{"Severe", "Affects healthy people and seriously impacts those with existing disease."}
	}
}
