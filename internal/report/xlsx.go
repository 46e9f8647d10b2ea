package report

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rngbench/internal/benchmark"
)

const (
	sheetSummary  = "Summary"
	sheetSpeedup  = "Speedup"
	sheetRelative = "Relative"
)

// WriteXLSX writes the summary, speedup and relative-performance views as
// sheets of dir/rng_benchmark_summary.xlsx.
func WriteXLSX(dir string, a benchmark.Analysis) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return "", err
	}
	for _, name := range []string{sheetSpeedup, sheetRelative} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}

	summary := make([][]any, 0, len(a.Summary))
	for _, r := range a.Summary {
		summary = append(summary, []any{
			r.BitWidth, r.Implementation, string(r.Mode),
			round(r.Mean), round(r.StdDev), round(r.Min), round(r.Max), r.Count,
		})
	}
	if err := writeSheet(f, sheetSummary, bold, toAny(SummaryHeader), summary); err != nil {
		return "", err
	}

	speedups := make([][]any, 0, len(a.Speedups))
	for _, s := range a.Speedups {
		speedups = append(speedups, []any{s.BitWidth, s.Implementation, round(s.Speedup)})
	}
	header := []any{"Bit Width", "Implementation", "Speedup"}
	if err := writeSheet(f, sheetSpeedup, bold, header, speedups); err != nil {
		return "", err
	}

	relatives := make([][]any, 0, len(a.Relatives))
	for _, r := range a.Relatives {
		relatives = append(relatives, []any{r.BitWidth, string(r.Mode), r.Implementation, round(r.Relative)})
	}
	header = []any{"Bit Width", "Mode", "Implementation", "Relative Performance"}
	if err := writeSheet(f, sheetRelative, bold, header, relatives); err != nil {
		return "", err
	}

	path := filepath.Join(dir, SummaryXLSXName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
