package benchmark

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryRow holds speed statistics for one (bit width, implementation, mode) group.
type SummaryRow struct {
	BitWidth       int
	Implementation string
	Mode           Mode
	Mean           float64
	StdDev         float64
	Min            float64
	Max            float64
	Count          int
}

type groupKey struct {
	bitWidth       int
	implementation string
	mode           Mode
}

// Summarize groups the table and computes count, mean, sample standard
// deviation, min and max of speed. Rows are sorted by bit width ascending, then
// mean speed descending.
func Summarize(t Table) []SummaryRow {
	groups := make(map[groupKey][]float64)
	var keys []groupKey
	for _, r := range t {
		k := groupKey{r.BitWidth, r.Implementation, r.Mode}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r.Speed)
	}

	rows := make([]SummaryRow, 0, len(keys))
	for _, k := range keys {
		speeds := finite(groups[k])
		row := SummaryRow{
			BitWidth:       k.bitWidth,
			Implementation: k.implementation,
			Mode:           k.mode,
			Count:          len(groups[k]),
		}
		if len(speeds) > 0 {
			row.Mean, row.StdDev = stat.MeanStdDev(speeds, nil)
			row.Min = floats.Min(speeds)
			row.Max = floats.Max(speeds)
		}
		if len(speeds) < 2 || math.IsNaN(row.StdDev) {
			row.StdDev = 0
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.BitWidth != b.BitWidth {
			return a.BitWidth < b.BitWidth
		}
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		if a.Implementation != b.Implementation {
			return a.Implementation < b.Implementation
		}
		return a.Mode < b.Mode
	})
	return rows
}

// SummaryFor returns the rows of a single bit width, preserving order.
func SummaryFor(rows []SummaryRow, bitWidth int) []SummaryRow {
	var out []SummaryRow
	for _, r := range rows {
		if r.BitWidth == bitWidth {
			out = append(out, r)
		}
	}
	return out
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
