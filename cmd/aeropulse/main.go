package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aeropulse/aeropulse/internal/config"
	"github.com/aeropulse/aeropulse/internal/database"
	"github.com/aeropulse/aeropulse/internal/export"
	"github.com/aeropulse/aeropulse/internal/pipeline"
	"github.com/aeropulse/aeropulse/internal/server"
	"github.com/aeropulse/aeropulse/internal/stats"
	"github.com/aeropulse/aeropulse/internal/synth"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "aeropulse",
	Short:   "Synthetic air-quality and health datasets",
	Long:    "AeroPulse generates deterministic six-year air-quality datasets per city, analyzes pollutant/health correlations, and serves a local dashboard.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("aeropulse", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/aeropulse/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to adjust lag offsets, pollutant fields, and the data directory.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		dbStats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Period: %s\n\n", export.PeriodDisplay())
		fmt.Println("Datasets:")
		fmt.Printf("  Cities with data: %d of %d\n", dbStats.Datasets, len(synth.Cities()))
		fmt.Printf("  Daily records: %d\n", dbStats.Records)
		fmt.Printf("  Analysis reports: %d\n", dbStats.Reports)
		return nil
	},
}

// --- generate command ---

var generateAll bool

var generateCmd = &cobra.Command{
	Use:   "generate [city]",
	Short: "Generate and store a city's synthetic dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cities, err := resolveCities(args, generateAll)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		for _, city := range cities {
			records := synth.Generate(city)
			if _, err := db.ReplaceDataset(city, synth.SeedForCity(city), records); err != nil {
				return fmt.Errorf("storing %s: %w", city, err)
			}
			fmt.Printf("%s: %d records (%s .. %s)\n", city, len(records), records[0].Date, records[len(records)-1].Date)
		}
		return nil
	},
}

// --- analyze command ---

var analyzeAll bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [city]",
	Short: "Compute regression and lag correlations for stored datasets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cities, err := resolveCities(args, analyzeAll)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)
		for _, city := range cities {
			records, err := db.GetRecords(city)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no dataset for %s; run 'aeropulse generate %s' first", city, city)
			}

			reg := stats.RegressionAnalysis(records)
			fmt.Printf("%s: slope=%.4f intercept=%.4f r²=%.4f r=%.4f\n",
				city, reg.Slope, reg.Intercept, reg.RSquared, reg.Correlation)

			result := pipe.Analyze(city, records)
			for _, step := range result.Steps {
				if step.Err != nil {
					return fmt.Errorf("%s %s: %w", city, step.Name, step.Err)
				}
			}
		}
		return nil
	},
}

// --- run command ---

var runAll bool

var runCmd = &cobra.Command{
	Use:   "run [city]",
	Short: "Run the full pipeline: generate -> store -> analyze -> report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)

		var results []*pipeline.Result
		if runAll {
			results = pipe.RunAll()
		} else {
			cities, err := resolveCities(args, false)
			if err != nil {
				return err
			}
			results = append(results, pipe.RunCity(cities[0]))
		}

		for _, result := range results {
			fmt.Printf("\n%s (run %s)\n", result.City, result.RunID)
			for i, step := range result.Steps {
				fmt.Printf("  Step %d/4: %s\n", i+1, step.Name)
				if step.Err != nil {
					fmt.Printf("    Error: %v\n", step.Err)
				} else {
					fmt.Printf("    %s\n", step.Summary)
				}
			}
		}

		fmt.Println("\nPipeline complete! Run 'aeropulse serve' to view the dashboard.")
		return nil
	},
}

// --- export command ---

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [city]",
	Short: "Export a city's dataset as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		city := args[0]

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.GetRecords(city)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			// Generation is deterministic, so exporting without a stored
			// dataset just synthesizes the same series on the fly.
			records = synth.Generate(city)
		}

		out := exportOutput
		if out == "" {
			out = city + ".csv"
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()

		if err := export.WriteCSV(f, records); err != nil {
			return err
		}
		fmt.Printf("Wrote %d records to %s\n", len(records), out)
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, port)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "Generate every city")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Analyze every city")
	runCmd.Flags().BoolVar(&runAll, "all", false, "Run the pipeline for every city")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default <city>.csv)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// resolveCities turns command arguments into a city list. Unknown names are
// accepted: the generator falls back to the default base profile.
func resolveCities(args []string, all bool) ([]string, error) {
	if all {
		return synth.Cities(), nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("specify a city or pass --all (known cities: %v)", synth.Cities())
	}
	return []string{args[0]}, nil
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "aeropulse.db")
	return database.Open(dbPath)
}
