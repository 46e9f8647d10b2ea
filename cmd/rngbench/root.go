package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rngbench/internal/benchmark"
	"rngbench/internal/charts"
	"rngbench/internal/config"
	"rngbench/internal/db"
	"rngbench/internal/metrics"
	"rngbench/internal/report"
	"rngbench/internal/telemetry"
)

var exit = os.Exit

// configErr holds a failure from initConfig until the command runs.
var configErr error

var rootCmd = &cobra.Command{
	Use:   "rngbench",
	Short: "Analyze random number generator benchmark reports",
	Long: `rngbench reads the text reports written by the RNG benchmark harness,
merges every run into one table and writes a summary CSV, console tables and
comparison charts.

Settings come from rngbench.yaml, .env or RNGBENCH_* environment variables.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		cfg, err := config.Current()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runAnalysis(cmd, cfg)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads the config file named by RNGBENCH_CONFIG, or rngbench.yaml
// in the working directory, and the environment.
func initConfig() {
	configErr = config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
}

func runAnalysis(cmd *cobra.Command, cfg config.Config) error {
	start := time.Now()

	closeLog := telemetry.InitLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat, cfg.LogFile)
	defer closeLog()
	runID := telemetry.WithRunID()
	slog.Info("Starting RNG benchmark analysis", "input_dir", cfg.InputDir, "output_dir", cfg.OutputDir)

	m := metrics.NewMetrics()

	sources, err := benchmark.Discover(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("failed to discover benchmark files: %w", err)
	}
	if len(sources) == 0 {
		slog.Warn("No benchmark files found, using built-in sample data", "sample", benchmark.SampleName)
		sources = benchmark.DefaultSources()
	}

	table, err := benchmark.NewLoader(m).Load(sources)
	if errors.Is(err, benchmark.ErrEmptyDataset) {
		slog.Warn("No data to analyze")
		report.PrintNoData(cmd.OutOrStdout())
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Found implementations", "implementations", strings.Join(table.Implementations(), ", "))
	telemetry.LogInfof("Loaded %d data points across %d bit widths", len(table), len(table.BitWidths()))

	analysis := benchmark.Analyze(table)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	csvPath, err := report.WriteSummaryCSV(cfg.OutputDir, analysis.Summary)
	if err != nil {
		return err
	}
	slog.Info("Saved summary statistics", "path", csvPath)

	report.PrintSummary(cmd.OutOrStdout(), analysis)

	if cfg.Charts.Enabled {
		r := charts.NewRenderer(cfg.OutputDir, cfg.Charts.WidthIn, cfg.Charts.HeightIn, m)
		written := r.RenderAll(analysis)
		slog.Info("Charts rendered", "count", len(written))
	}

	if cfg.Export.XLSX {
		if path, err := report.WriteXLSX(cfg.OutputDir, analysis); err != nil {
			slog.Error("Failed to write workbook", "error", err)
		} else {
			slog.Info("Saved workbook", "path", path)
		}
	}

	if cfg.Export.Database != "" {
		if err := saveRun(cfg.Export.Database, runID, analysis); err != nil {
			slog.Error("Failed to save results database", "path", cfg.Export.Database, "error", err)
		} else {
			slog.Info("Saved results database", "path", cfg.Export.Database)
		}
	}

	m.RunDuration.Set(time.Since(start).Seconds())
	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			slog.Error("Failed to write metrics", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	slog.Info("Analysis complete", "output_dir", cfg.OutputDir, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func saveRun(path, runID string, a benchmark.Analysis) error {
	store, err := db.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveRun(runID, a.Table, a.Summary)
}
