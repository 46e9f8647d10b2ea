package benchmark

import (
	"errors"
	"fmt"
	"slices"
)

// BaselineLabel is the canonical name of the reference generator.
const BaselineLabel = "std::mt19937_64"

var (
	// ErrNoBitWidth is returned when neither the content nor the file name carries a bit width.
	ErrNoBitWidth = errors.New("no bit width found")

	// ErrNoResults is returned when no extraction strategy matched anything.
	ErrNoResults = errors.New("no benchmark results found")

	// ErrNoValidRecords is returned when every matched tuple failed numeric conversion.
	ErrNoValidRecords = errors.New("no valid data points extracted")

	// ErrEmptyDataset is returned when no source contributed a single record.
	ErrEmptyDataset = errors.New("no valid benchmark data found in any files")
)

// Mode is the execution style of a benchmark run.
type Mode string

const (
	ModeSingle Mode = "Single"
	ModeBatch  Mode = "Batch"
)

// Modes lists the execution modes in reporting order.
var Modes = []Mode{ModeSingle, ModeBatch}

// ParseMode converts the literal mode column into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeBatch:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// RawResult is an unconverted (implementation, mode, time, speed) tuple as matched in a report.
type RawResult struct {
	Implementation string
	Mode           string
	Time           string
	Speed          string
}

// Record represents a single benchmark measurement.
type Record struct {
	BitWidth       int     `json:"bit_width"`
	Implementation string  `json:"implementation"`
	Mode           Mode    `json:"mode"`
	TimeSeconds    float64 `json:"time_sec"`
	Speed          float64 `json:"speed_ms"` // million operations per second
	Run            int     `json:"run"`
	Source         string  `json:"filename"`
}

// Table is an ordered collection of records. Repeated runs are kept as separate samples.
type Table []Record

// BitWidths returns the distinct bit widths in ascending order.
func (t Table) BitWidths() []int {
	seen := make(map[int]bool)
	var widths []int
	for _, r := range t {
		if !seen[r.BitWidth] {
			seen[r.BitWidth] = true
			widths = append(widths, r.BitWidth)
		}
	}
	slices.Sort(widths)
	return widths
}

// Implementations returns the distinct implementation names in order of first appearance.
func (t Table) Implementations() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range t {
		if !seen[r.Implementation] {
			seen[r.Implementation] = true
			names = append(names, r.Implementation)
		}
	}
	return names
}

// Filter returns the records for which keep reports true.
func (t Table) Filter(keep func(Record) bool) Table {
	var out Table
	for _, r := range t {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Speeds returns the speed column.
func (t Table) Speeds() []float64 {
	speeds := make([]float64, 0, len(t))
	for _, r := range t {
		speeds = append(speeds, r.Speed)
	}
	return speeds
}
