package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rngbench/internal/charts"
	"rngbench/internal/db"
	"rngbench/internal/report"
)

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	lipgloss.SetColorProfile(termenv.Ascii)

	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// workspace isolates a run in fresh input and output directories.
func workspace(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	t.Chdir(root)
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(in, 0755))
	t.Setenv("RNGBENCH_INPUT_DIR", in)
	t.Setenv("RNGBENCH_OUTPUT_DIR", out)
	return in, out
}

func csvLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRoot_SampleFallback(t *testing.T) {
	_, out := workspace(t)
	t.Setenv("RNGBENCH_CHARTS_WIDTH_IN", "6")
	t.Setenv("RNGBENCH_CHARTS_HEIGHT_IN", "4")

	stdout, stderr, err := executeCommand(t)
	require.NoError(t, err)

	lines := csvLines(t, filepath.Join(out, report.SummaryCSVName))
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "Bit Width,Implementation,Mode"))
	for _, line := range lines[1:] {
		assert.True(t, strings.HasSuffix(line, ",1"), "sample count of %q", line)
	}

	assert.Contains(t, stdout, "RNG Benchmark Summary")
	assert.Contains(t, stdout, "16-bit")
	assert.Contains(t, stderr, "using built-in sample data")
	assert.Contains(t, stderr, "run_id=")

	for _, name := range []string{
		charts.PerformanceByBitWidthName,
		charts.SpeedupName,
		charts.ImplementationPerformanceName(16),
		charts.RelativeName,
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, charts.ComprehensiveName))
	assert.NoFileExists(t, filepath.Join(out, report.SummaryXLSXName))
}

func TestRoot_NoData(t *testing.T) {
	in, out := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(in, "results.txt"), []byte("nothing useful here\n"), 0644))

	stdout, _, err := executeCommand(t)
	require.NoError(t, err)

	assert.Contains(t, stdout, "No benchmark data found")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no outputs are written")
}

func TestRoot_ReportsFromDisk(t *testing.T) {
	in, out := workspace(t)
	t.Setenv("RNGBENCH_CHARTS_ENABLED", "false")

	report16 := "Benchmark Results for 16-bit\n" +
		"Implementation  Mode  Time (s)  Speed (M/s)\n" +
		"------------------------------------------\n" +
		"std::mt19937_64 Single 0.50 100.00\n" +
		"PCG32 Single 0.25 200.00\n" +
		"PCG32 Batch 0.06 800.00\n"
	report32 := "benchmarks with 1000000 iterations for 32-bit\n" +
		"mt19937_64 Single 0.60 90.00\n" +
		"PCG32 Single 0.30 180.00\n"
	require.NoError(t, os.WriteFile(filepath.Join(in, "rng_16bit.txt"), []byte(report16), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "rng_32bit_2.txt"), []byte(report32), 0644))

	stdout, _, err := executeCommand(t)
	require.NoError(t, err)

	lines := csvLines(t, filepath.Join(out, report.SummaryCSVName))
	require.Len(t, lines, 6)
	assert.Equal(t, "16,PCG32,Batch,800.00,0.00,800.00,800.00,1", lines[1])
	assert.Contains(t, stdout, "32-bit")
	assert.Contains(t, stdout, "4.00x")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "charts disabled leaves only the csv")
}

func TestRoot_OptionalExports(t *testing.T) {
	_, out := workspace(t)
	dbPath := filepath.Join(out, "results.db")
	promPath := filepath.Join(out, "rngbench.prom")
	t.Setenv("RNGBENCH_CHARTS_ENABLED", "false")
	t.Setenv("RNGBENCH_EXPORT_XLSX", "true")
	t.Setenv("RNGBENCH_EXPORT_DATABASE", dbPath)
	t.Setenv("RNGBENCH_METRICS_TEXTFILE", promPath)

	_, _, err := executeCommand(t)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, report.SummaryXLSXName))

	store, err := db.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()
	records, err := store.LoadRecords()
	require.NoError(t, err)
	assert.Len(t, records, 8)
	id, err := store.RunID()
	require.NoError(t, err)
	assert.Len(t, id, 8)

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "rngbench_files_processed_total 1")
	assert.Contains(t, string(prom), `rngbench_records_extracted_total{strategy="strict"} 8`)
}

func TestRoot_InvalidConfig(t *testing.T) {
	workspace(t)
	t.Setenv("RNGBENCH_LOG_FORMAT", "xml")

	_, _, err := executeCommand(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}

func TestRoot_RejectsArgs(t *testing.T) {
	workspace(t)
	_, _, err := executeCommand(t, "extra")
	assert.Error(t, err)
}

func TestExecute_ExitsOnError(t *testing.T) {
	workspace(t)
	viper.Reset()
	t.Setenv("RNGBENCH_LOG_FORMAT", "xml")

	oldExit := exit
	var code int
	exit = func(c int) { code = c }
	defer func() { exit = oldExit }()

	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(new(bytes.Buffer))
	Execute()
	rootCmd.SetOut(nil)

	assert.Equal(t, 1, code)
}

func TestVersion(t *testing.T) {
	workspace(t)
	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rngbench version "+version)
	assert.Contains(t, stdout, "Go Version:")
}
