// Package pipeline orchestrates the generate -> store -> analyze -> report
// sequence per city.
package pipeline

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/aeropulse/aeropulse/internal/config"
	"github.com/aeropulse/aeropulse/internal/database"
	"github.com/aeropulse/aeropulse/internal/export"
	"github.com/aeropulse/aeropulse/internal/stats"
	"github.com/aeropulse/aeropulse/internal/synth"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run for one city.
type Result struct {
	City  string
	RunID string
	Steps []StepResult
}

// Pipeline runs the four-step dataset pipeline.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// RunCity executes the full pipeline for one city.
func (p *Pipeline) RunCity(city string) *Result {
	return p.run(city, synth.Generate(city))
}

// RunAll executes the pipeline for every city. Generation is pure and each
// invocation owns its PRNG, so the series are produced concurrently;
// storage and analysis then proceed in city-list order.
func (p *Pipeline) RunAll() []*Result {
	cities := synth.Cities()
	recordSets := make([][]synth.Record, len(cities))

	var wg sync.WaitGroup
	for i, city := range cities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()
			recordSets[i] = synth.Generate(city)
		}(i, city)
	}
	wg.Wait()

	results := make([]*Result, len(cities))
	for i, city := range cities {
		results[i] = p.run(city, recordSets[i])
	}
	return results
}

// Analyze recomputes statistics and the report for an existing record
// series without regenerating or restoring it.
func (p *Pipeline) Analyze(city string, records []synth.Record) *Result {
	r := &Result{City: city, RunID: uuid.NewString()}

	reg, lags, step := p.analyze(records)
	r.Steps = append(r.Steps, step)

	r.Steps = append(r.Steps, p.report(r.RunID, city, records, reg, lags))
	return r
}

func (p *Pipeline) run(city string, records []synth.Record) *Result {
	r := &Result{City: city, RunID: uuid.NewString()}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Generate",
		Summary: fmt.Sprintf("Generated %d daily records for %s", len(records), city),
	})

	step := p.store(city, records)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	reg, lags, step := p.analyze(records)
	r.Steps = append(r.Steps, step)

	r.Steps = append(r.Steps, p.report(r.RunID, city, records, reg, lags))
	return r
}

func (p *Pipeline) store(city string, records []synth.Record) StepResult {
	log.Printf("storing dataset for %s", city)
	if _, err := p.db.ReplaceDataset(city, synth.SeedForCity(city), records); err != nil {
		return StepResult{Name: "Store", Err: err}
	}
	return StepResult{
		Name:    "Store",
		Summary: fmt.Sprintf("Stored %d records", len(records)),
	}
}

func (p *Pipeline) analyze(records []synth.Record) (stats.Regression, []stats.LagCorrelation, StepResult) {
	reg := stats.RegressionAnalysis(records)
	lags := stats.PollutantLagCorrelations(records, p.cfg.Analysis.Pollutants, p.cfg.Analysis.Lags)
	return reg, lags, StepResult{
		Name: "Analyze",
		Summary: fmt.Sprintf("Regression r=%.3f, %d lag correlations",
			reg.Correlation, len(lags)),
	}
}

func (p *Pipeline) report(runID, city string, records []synth.Record, reg stats.Regression, lags []stats.LagCorrelation) StepResult {
	body := export.ComposeReport(city, records, reg, lags)
	err := p.db.ReplaceReport(database.AnalysisReport{
		RunID:        runID,
		City:         city,
		Period:       export.PeriodDisplay(),
		Slope:        reg.Slope,
		Intercept:    reg.Intercept,
		RSquared:     reg.RSquared,
		Correlation:  reg.Correlation,
		BodyMarkdown: body,
	})
	if err != nil {
		return StepResult{Name: "Report", Err: err}
	}
	return StepResult{
		Name:    "Report",
		Summary: fmt.Sprintf("Report composed for %s", city),
	}
}
