package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"rngbench/internal/benchmark"
)

// Output file names.
const (
	SummaryCSVName  = "rng_benchmark_summary.csv"
	SummaryXLSXName = "rng_benchmark_summary.xlsx"
)

// SummaryHeader is the column layout of the summary CSV and the Summary sheet.
var SummaryHeader = []string{
	"Bit Width", "Implementation", "Mode", "Mean Speed (M/s)",
	"Std Dev", "Min Speed", "Max Speed", "Sample Count",
}

func round2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func summaryRecord(r benchmark.SummaryRow) []string {
	return []string{
		strconv.Itoa(r.BitWidth),
		r.Implementation,
		string(r.Mode),
		round2(r.Mean),
		round2(r.StdDev),
		round2(r.Min),
		round2(r.Max),
		strconv.Itoa(r.Count),
	}
}

// WriteSummaryCSV writes the summary rows to dir/rng_benchmark_summary.csv and
// returns the path written.
func WriteSummaryCSV(dir string, rows []benchmark.SummaryRow) (string, error) {
	path := filepath.Join(dir, SummaryCSVName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(SummaryHeader); err != nil {
		return "", err
	}
	for _, r := range rows {
		if err := w.Write(summaryRecord(r)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write summary csv: %w", err)
	}
	return path, f.Close()
}
