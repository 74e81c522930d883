package database

// Dataset describes one stored generation run for a city.
type Dataset struct {
	ID          int64
	City        string
	Seed        int64
	RecordCount int
	GeneratedAt *string
}

// AnalysisReport is the stored regression summary and composed markdown
// report for a city.
type AnalysisReport struct {
	ID           int64
	RunID        string
	City         string
	Period       string
	Slope        float64
	Intercept    float64
	RSquared     float64
	Correlation  float64
	BodyMarkdown string
	GeneratedAt  *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	Datasets int
	Records  int
	Reports  int
}
