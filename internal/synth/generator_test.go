package synth

import (
	"reflect"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	records := Generate("Delhi")
	if len(records) != DayCount {
		t.Fatalf("expected %d records, got %d", DayCount, len(records))
	}
	if records[0].Date != StartDate {
		t.Errorf("first date = %s, want %s", records[0].Date, StartDate)
	}
	if records[len(records)-1].Date != EndDate {
		t.Errorf("last date = %s, want %s", records[len(records)-1].Date, EndDate)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	a := Generate("Delhi")
	b := Generate("Delhi")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs for the same city produced different records")
	}
}

func TestGenerateCitiesDiffer(t *testing.T) {
	a := Generate("Delhi")
	b := Generate("Mumbai")
	if a[0].PM25 == b[0].PM25 && a[1].PM25 == b[1].PM25 {
		t.Error("different cities should produce different series")
	}
}

func TestGenerateBounds(t *testing.T) {
	for _, r := range Generate("Kolkata") {
		if r.Humidity < 10 || r.Humidity > 100 {
			t.Fatalf("%s: humidity %v out of [10,100]", r.Date, r.Humidity)
		}
		if r.PM25 < pm25Floor || r.PM10 < pm10Floor || r.NO2 < no2Floor ||
			r.SO2 < so2Floor || r.CO < coFloor || r.O3 < o3Floor {
			t.Fatalf("%s: concentration below floor: %+v", r.Date, r)
		}
		if r.AirDensity < 0.9 || r.AirDensity > 1.5 {
			t.Fatalf("%s: air density %v out of range", r.Date, r.AirDensity)
		}
		if r.Admissions < 0 {
			t.Fatalf("%s: negative admissions %d", r.Date, r.Admissions)
		}
		if r.Asthma < 0 || r.COPD < 0 || r.Bronchitis < 0 {
			t.Fatalf("%s: negative sub-count: %+v", r.Date, r)
		}
		if r.Asthma+r.COPD+r.Bronchitis != r.Admissions {
			t.Fatalf("%s: sub-counts %d+%d+%d != admissions %d",
				r.Date, r.Asthma, r.COPD, r.Bronchitis, r.Admissions)
		}
		if r.Severity < 0 || r.Severity > 10 {
			t.Fatalf("%s: severity %v out of [0,10]", r.Date, r.Severity)
		}
	}
}

func TestGenerateUnknownCityFallsBack(t *testing.T) {
	records := Generate("Atlantis")
	if len(records) != DayCount {
		t.Fatalf("expected %d records for unknown city, got %d", DayCount, len(records))
	}
	if records[0].City != "Atlantis" {
		t.Errorf("record city = %q, want the requested name", records[0].City)
	}
	// Deterministic for the unknown name too.
	if !reflect.DeepEqual(records, Generate("Atlantis")) {
		t.Error("unknown-city generation should still be deterministic")
	}
}

func TestGenerateAll(t *testing.T) {
	all := GenerateAll()
	cities := Cities()
	if len(all) != len(cities)*DayCount {
		t.Fatalf("expected %d records, got %d", len(cities)*DayCount, len(all))
	}
	// Concatenated in city-list order.
	for i, city := range cities {
		if all[i*DayCount].City != city {
			t.Errorf("block %d starts with %q, want %q", i, all[i*DayCount].City, city)
		}
	}
}
