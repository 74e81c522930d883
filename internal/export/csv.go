// Package export serializes daily record series for external consumers:
// comma-separated files for spreadsheets and markdown reports for the
// dashboard.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aeropulse/aeropulse/internal/synth"
)

// csvHeader is the fixed export column list. Consumers depend on this
// order; do not reorder.
var csvHeader = []string{
	"city", "date",
	"pm25", "pm10", "no2", "so2", "co", "o3",
	"temperature", "humidity", "air_density",
	"admissions", "asthma", "copd", "bronchitis",
}

// WriteCSV writes records as CSV with a header row, in the order given.
func WriteCSV(w io.Writer, records []synth.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.City,
			r.Date,
			formatFloat(r.PM25),
			formatFloat(r.PM10),
			formatFloat(r.NO2),
			formatFloat(r.SO2),
			formatFloat(r.CO),
			formatFloat(r.O3),
			formatFloat(r.Temperature),
			formatFloat(r.Humidity),
			formatFloat(r.AirDensity),
			strconv.Itoa(r.Admissions),
			strconv.Itoa(r.Asthma),
			strconv.Itoa(r.COPD),
			strconv.Itoa(r.Bronchitis),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
