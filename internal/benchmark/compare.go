package benchmark

import (
	"gonum.org/v1/gonum/stat"
)

// Speedup is the Batch/Single throughput ratio of one implementation at one bit width.
type Speedup struct {
	BitWidth       int
	Implementation string
	Speedup        float64
}

// Relative is the throughput of an implementation divided by the baseline's,
// within one bit width and mode.
type Relative struct {
	BitWidth       int
	Mode           Mode
	Implementation string
	Relative       float64
}

// MeanSpeed returns the mean speed of the records, or 0 for an empty table.
func MeanSpeed(t Table) float64 {
	if len(t) == 0 {
		return 0
	}
	return stat.Mean(t.Speeds(), nil)
}

// Speedups computes Batch/Single ratios for every (bit width, implementation)
// pair that has samples in both modes.
func Speedups(t Table) []Speedup {
	var out []Speedup
	for _, width := range t.BitWidths() {
		byWidth := t.Filter(func(r Record) bool { return r.BitWidth == width })
		for _, impl := range t.Implementations() {
			group := byWidth.Filter(func(r Record) bool { return r.Implementation == impl })
			single := group.Filter(func(r Record) bool { return r.Mode == ModeSingle })
			batch := group.Filter(func(r Record) bool { return r.Mode == ModeBatch })
			if len(single) == 0 || len(batch) == 0 {
				continue
			}
			avgSingle := MeanSpeed(single)
			if avgSingle <= 0 {
				continue
			}
			out = append(out, Speedup{
				BitWidth:       width,
				Implementation: impl,
				Speedup:        MeanSpeed(batch) / avgSingle,
			})
		}
	}
	return out
}

// Relatives compares every implementation against the baseline within each
// (bit width, mode) group. Groups without a baseline sample produce nothing.
func Relatives(t Table, baseline string) []Relative {
	var out []Relative
	for _, width := range t.BitWidths() {
		for _, mode := range Modes {
			group := t.Filter(func(r Record) bool { return r.BitWidth == width && r.Mode == mode })
			base := group.Filter(func(r Record) bool { return r.Implementation == baseline })
			if len(base) == 0 {
				continue
			}
			baseSpeed := MeanSpeed(base)
			if baseSpeed <= 0 {
				continue
			}
			for _, impl := range group.Implementations() {
				if impl == baseline {
					continue
				}
				samples := group.Filter(func(r Record) bool { return r.Implementation == impl })
				out = append(out, Relative{
					BitWidth:       width,
					Mode:           mode,
					Implementation: impl,
					Relative:       MeanSpeed(samples) / baseSpeed,
				})
			}
		}
	}
	return out
}

// Analysis bundles the derived views of a table.
type Analysis struct {
	Table     Table
	Summary   []SummaryRow
	Speedups  []Speedup
	Relatives []Relative
}

// Analyze computes every derived metric of the table against the baseline label.
func Analyze(t Table) Analysis {
	return Analysis{
		Table:     t,
		Summary:   Summarize(t),
		Speedups:  Speedups(t),
		Relatives: Relatives(t, BaselineLabel),
	}
}
