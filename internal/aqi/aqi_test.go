package aqi

import "testing"

func TestFromPM25Breakpoints(t *testing.T) {
	if got := FromPM25(0); got != 0 {
		t.Errorf("FromPM25(0) = %d, want 0", got)
	}
	// Segment boundary at 12 must land exactly on 50.
	if got := FromPM25(12); got != 50 {
		t.Errorf("FromPM25(12) = %d, want 50", got)
	}
	// Segment boundary at 35.4 must land on ~100 (within rounding).
	if got := FromPM25(35.4); got < 99 || got > 100 {
		t.Errorf("FromPM25(35.4) = %d, want ~100", got)
	}
}

func TestFromPM25Monotonic(t *testing.T) {
	prev := FromPM25(0)
	for pm := 0.5; pm <= 300; pm += 0.5 {
		v := FromPM25(pm)
		if v < prev {
			t.Fatalf("AQI decreased at pm=%v: %d < %d", pm, v, prev)
		}
		prev = v
	}
}

func TestCategoryBoundaries(t *testing.T) {
	cases := []struct {
		pm   float64
		want string
	}{
		{0, "Good"},
		{30, "Good"},
		{31, "Satisfactory"},
		{60, "Satisfactory"},
		{61, "Moderate"},
		{90, "Moderate"},
		{91, "Poor"},
		{120, "Poor"},
		{121, "Very Poor"},
		{250, "Very Poor"},
		{251, "Severe"},
		{300, "Severe"},
	}
	for _, tc := range cases {
		if got := CategoryForPM25(tc.pm).Label; got != tc.want {
			t.Errorf("CategoryForPM25(%v) = %q, want %q", tc.pm, got, tc.want)
		}
	}
}

func TestCategoryHasDescription(t *testing.T) {
	for _, pm := range []float64{10, 45, 75, 100, 200, 400} {
		if CategoryForPM25(pm).Description == "" {
			t.Errorf("CategoryForPM25(%v) has empty description", pm)
		}
	}
}
