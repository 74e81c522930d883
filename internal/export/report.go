package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/aeropulse/aeropulse/internal/aqi"
	"github.com/aeropulse/aeropulse/internal/stats"
	"github.com/aeropulse/aeropulse/internal/synth"
)

// PeriodDisplay returns the human-readable form of the generated date
// range, e.g. "Jan 01, 2019 - Dec 31, 2024".
func PeriodDisplay() string {
	start, _ := time.Parse("2006-01-02", synth.StartDate)
	end, _ := time.Parse("2006-01-02", synth.EndDate)
	return fmt.Sprintf("%s - %s", start.Format("Jan 02, 2006"), end.Format("Jan 02, 2006"))
}

// ComposeReport builds the markdown analysis report for a city from its
// record series and computed statistics.
func ComposeReport(city string, records []synth.Record, reg stats.Regression, lags []stats.LagCorrelation) string {
	var sections []string

	sections = append(sections, fmt.Sprintf(
		"# Air Quality & Health Analysis: %s\n\n**Period:** %s\n**Daily records:** %d",
		city, PeriodDisplay(), len(records),
	))

	sections = append(sections, regressionSection(reg))

	if len(lags) > 0 {
		sections = append(sections, lagSection(lags))
	}

	if len(records) > 0 {
		sections = append(sections, categorySection(records))
	}

	return strings.Join(sections, "\n\n---\n\n")
}

func regressionSection(reg stats.Regression) string {
	var b strings.Builder
	b.WriteString("## Severity vs. AQI Regression\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Slope | %.4f |\n", reg.Slope)
	fmt.Fprintf(&b, "| Intercept | %.4f |\n", reg.Intercept)
	fmt.Fprintf(&b, "| R² | %.4f |\n", reg.RSquared)
	fmt.Fprintf(&b, "| Correlation | %.4f |\n", reg.Correlation)
	return strings.TrimRight(b.String(), "\n")
}

func lagSection(lags []stats.LagCorrelation) string {
	// Group rows by field, preserving input order.
	byField := make(map[string][]stats.LagCorrelation)
	var fieldOrder []string
	for _, lc := range lags {
		if _, seen := byField[lc.Field]; !seen {
			fieldOrder = append(fieldOrder, lc.Field)
		}
		byField[lc.Field] = append(byField[lc.Field], lc)
	}

	var b strings.Builder
	b.WriteString("## Lagged Correlations with Symptom Severity\n\n")
	b.WriteString("| Pollutant | Lag (days) | Correlation |\n|---|---|---|\n")
	for _, field := range fieldOrder {
		for _, lc := range byField[field] {
			fmt.Fprintf(&b, "| %s | %d | %.4f |\n", strings.ToUpper(lc.Field), lc.Lag, lc.Correlation)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func categorySection(records []synth.Record) string {
	counts := make(map[string]int)
	for _, r := range records {
		counts[aqi.CategoryForPM25(r.PM25).Label]++
	}

	labels := []string{"Good", "Satisfactory", "Moderate", "Poor", "Very Poor", "Severe"}
	var b strings.Builder
	b.WriteString("## PM2.5 Category Distribution\n\n")
	b.WriteString("| Category | Days | Share |\n|---|---|---|\n")
	for _, label := range labels {
		n := counts[label]
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", label, n, 100*float64(n)/float64(len(records)))
	}
	return strings.TrimRight(b.String(), "\n")
}
