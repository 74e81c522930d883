// Package stats computes correlation and regression summaries over daily
// record series. Degenerate input (empty, mismatched lengths, zero
// variance) yields zero-valued results rather than errors: these routines
// sit under a UI that must never fail.
package stats

import (
	"math"

	"github.com/aeropulse/aeropulse/internal/synth"
)

// Pearson returns the Pearson correlation coefficient of two equal-length
// series. Returns 0 for empty or mismatched input and 0 when either series
// has zero variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// Regression holds a simple OLS fit of symptom severity on AQI.
type Regression struct {
	Slope       float64
	Intercept   float64
	RSquared    float64
	Correlation float64
}

// RegressionAnalysis fits symptom severity against AQI across the full
// dataset. Returns the zero value for an empty dataset.
func RegressionAnalysis(records []synth.Record) Regression {
	if len(records) == 0 {
		return Regression{}
	}

	n := len(records)
	x := make([]float64, n)
	y := make([]float64, n)
	for i, rec := range records {
		x[i] = float64(rec.AQI)
		y[i] = rec.Severity
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}

	var slope, intercept float64
	if sxx != 0 {
		slope = sxy / sxx
		intercept = meanY - slope*meanX
	} else {
		intercept = meanY
	}

	r := Pearson(x, y)
	return Regression{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    r * r,
		Correlation: r,
	}
}
