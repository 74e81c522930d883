package stats

import (
	"math"
	"testing"

	"github.com/aeropulse/aeropulse/internal/synth"
)

func TestLagExclusion(t *testing.T) {
	records := make([]synth.Record, 5)
	for i := range records {
		records[i].PM25 = float64(10 + i)
		records[i].Severity = float64(i)
	}

	results := PollutantLagCorrelations(records, []string{"pm25"}, []int{0, 1, 3, 7, 14})

	if len(results) != 3 {
		t.Fatalf("expected 3 results (lags 0,1,3), got %d", len(results))
	}
	wantLags := []int{0, 1, 3}
	for i, res := range results {
		if res.Lag != wantLags[i] {
			t.Errorf("result %d has lag %d, want %d", i, res.Lag, wantLags[i])
		}
	}
}

func TestLagBoundary(t *testing.T) {
	// Lag == len(records) must be excluded; len-1 kept (though degenerate,
	// a single aligned pair has zero variance and correlates to 0).
	records := make([]synth.Record, 4)
	for i := range records {
		records[i].PM25 = float64(i * i)
		records[i].Severity = float64(i)
	}

	results := PollutantLagCorrelations(records, []string{"pm25"}, []int{3, 4})
	if len(results) != 1 {
		t.Fatalf("expected only lag 3 to survive, got %d results", len(results))
	}
	if results[0].Lag != 3 {
		t.Errorf("got lag %d, want 3", results[0].Lag)
	}
	if results[0].Correlation != 0 {
		t.Errorf("single-pair alignment should give 0, got %v", results[0].Correlation)
	}
}

func TestLagAlignment(t *testing.T) {
	// Severity is an exact 2-day-delayed copy of PM2.5, so the lag-2
	// correlation must be exactly 1 and lag 0 noticeably weaker.
	pm := []float64{3, 9, 4, 12, 6, 15, 7, 18, 8, 21}
	records := make([]synth.Record, len(pm))
	for i := range records {
		records[i].PM25 = pm[i]
		if i >= 2 {
			records[i].Severity = pm[i-2]
		} else {
			records[i].Severity = pm[0]
		}
	}

	results := PollutantLagCorrelations(records, []string{"pm25"}, []int{0, 2})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	var lag0, lag2 float64
	for _, res := range results {
		switch res.Lag {
		case 0:
			lag0 = res.Correlation
		case 2:
			lag2 = res.Correlation
		}
	}

	if math.Abs(lag2-1) > 1e-10 {
		t.Errorf("lag-2 correlation = %v, want 1", lag2)
	}
	if lag0 >= lag2 {
		t.Errorf("lag-0 correlation %v should be below lag-2 correlation %v", lag0, lag2)
	}
}

func TestLagMultipleFields(t *testing.T) {
	records := make([]synth.Record, 10)
	for i := range records {
		records[i].PM25 = float64(i)
		records[i].NO2 = float64(10 - i)
		records[i].AQI = i * 2
		records[i].Severity = float64(i)
	}

	results := PollutantLagCorrelations(records, []string{"pm25", "no2", "aqi"}, []int{0, 1})
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	// Field grouping preserves input order.
	if results[0].Field != "pm25" || results[2].Field != "no2" || results[4].Field != "aqi" {
		t.Errorf("unexpected field order: %+v", results)
	}
}

func TestLagUnknownField(t *testing.T) {
	records := make([]synth.Record, 5)
	for i := range records {
		records[i].Severity = float64(i)
	}
	results := PollutantLagCorrelations(records, []string{"xyz"}, []int{0})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Correlation != 0 {
		t.Errorf("unknown field should correlate to 0, got %v", results[0].Correlation)
	}
}

func TestLagEmptyDataset(t *testing.T) {
	results := PollutantLagCorrelations(nil, []string{"pm25"}, []int{0, 1})
	if len(results) != 0 {
		t.Errorf("empty dataset should yield no results, got %d", len(results))
	}
}
