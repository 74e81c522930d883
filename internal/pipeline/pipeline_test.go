package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/aeropulse/aeropulse/internal/config"
	"github.com/aeropulse/aeropulse/internal/database"
	"github.com/aeropulse/aeropulse/internal/synth"
)

func testPipeline(t *testing.T) (*Pipeline, *database.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Analysis: config.Analysis{
			Lags:       []int{0, 1, 3},
			Pollutants: []string{"pm25", "aqi"},
		},
	}
	return New(cfg, db), db
}

func TestRunCity(t *testing.T) {
	pipe, db := testPipeline(t)

	result := pipe.RunCity("Delhi")
	if len(result.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(result.Steps))
	}
	for _, step := range result.Steps {
		if step.Err != nil {
			t.Fatalf("step %s failed: %v", step.Name, step.Err)
		}
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}

	d, err := db.GetDataset("Delhi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.RecordCount != synth.DayCount {
		t.Fatalf("expected stored dataset with %d records, got %+v", synth.DayCount, d)
	}

	rep, err := db.GetReport("Delhi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep == nil {
		t.Fatal("expected a stored report")
	}
	if rep.RunID != result.RunID {
		t.Errorf("report run ID %q does not match result %q", rep.RunID, result.RunID)
	}
	if rep.Correlation <= 0 {
		t.Errorf("expected positive AQI/severity correlation, got %v", rep.Correlation)
	}
	if rep.BodyMarkdown == "" {
		t.Error("expected a composed report body")
	}
}

func TestRunCityRerunReplaces(t *testing.T) {
	pipe, db := testPipeline(t)

	first := pipe.RunCity("Mumbai")
	second := pipe.RunCity("Mumbai")
	if first.RunID == second.RunID {
		t.Error("expected distinct run IDs")
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Datasets != 1 || stats.Reports != 1 {
		t.Errorf("rerun should replace, not accumulate: %+v", stats)
	}
	if stats.Records != synth.DayCount {
		t.Errorf("expected %d records after rerun, got %d", synth.DayCount, stats.Records)
	}
}

func TestAnalyzeStoredRecords(t *testing.T) {
	pipe, db := testPipeline(t)

	records := synth.Generate("Pune")
	if _, err := db.ReplaceDataset("Pune", synth.SeedForCity("Pune"), records); err != nil {
		t.Fatalf("seeding dataset: %v", err)
	}

	result := pipe.Analyze("Pune", records)
	if len(result.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(result.Steps))
	}
	for _, step := range result.Steps {
		if step.Err != nil {
			t.Fatalf("step %s failed: %v", step.Name, step.Err)
		}
	}

	rep, err := db.GetReport("Pune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep == nil || rep.RunID != result.RunID {
		t.Fatalf("expected report from analyze run, got %+v", rep)
	}
}
