package stats

import "github.com/aeropulse/aeropulse/internal/synth"

// LagCorrelation is the correlation between a pollutant series and the
// symptom-severity series offset by Lag days.
type LagCorrelation struct {
	Field       string
	Lag         int
	Correlation float64
}

// PollutantLagCorrelations computes, for every (field, lag) pair with
// lag < len(records), the Pearson correlation between the pollutant series
// truncated at the tail and the severity series truncated at the head by
// lag entries. Pairs where lag >= len(records) are omitted, not
// zero-filled. Negative lags are likewise skipped.
func PollutantLagCorrelations(records []synth.Record, fields []string, lags []int) []LagCorrelation {
	n := len(records)

	severity := make([]float64, n)
	for i, rec := range records {
		severity[i] = rec.Severity
	}

	var results []LagCorrelation
	for _, field := range fields {
		series := make([]float64, n)
		for i, rec := range records {
			series[i] = fieldValue(rec, field)
		}

		for _, lag := range lags {
			if lag < 0 || lag >= n {
				continue
			}
			// Align pollutant[0:n-lag] against severity[lag:n] with
			// explicit index arithmetic; the aligned length is n-lag.
			m := n - lag
			xs := make([]float64, m)
			ys := make([]float64, m)
			for i := 0; i < m; i++ {
				xs[i] = series[i]
				ys[i] = severity[i+lag]
			}
			results = append(results, LagCorrelation{
				Field:       field,
				Lag:         lag,
				Correlation: Pearson(xs, ys),
			})
		}
	}
	return results
}

// fieldValue extracts a named pollutant (or the AQI) from a record.
// Unknown field names yield a constant-zero series, which Pearson reports
// as 0 correlation.
func fieldValue(r synth.Record, field string) float64 {
	switch field {
	case "pm25":
		return r.PM25
	case "pm10":
		return r.PM10
	case "no2":
		return r.NO2
	case "so2":
		return r.SO2
	case "co":
		return r.CO
	case "o3":
		return r.O3
	case "aqi":
		return float64(r.AQI)
	default:
		return 0
	}
}
