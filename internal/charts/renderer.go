package charts

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"rngbench/internal/benchmark"
)

// Chart file names.
const (
	PerformanceByBitWidthName = "rng_performance_by_bitwidth.png"
	SpeedupName               = "batch_vs_single_speedup.png"
	RelativeName              = "relative_performance.png"
	ComprehensiveName         = "comprehensive_performance.png"
)

// ImplementationPerformanceName returns the per-bit-width comparison file name.
func ImplementationPerformanceName(bitWidth int) string {
	return fmt.Sprintf("implementation_performance_%dbit.png", bitWidth)
}

// RelativeModeName returns the single-mode relative chart used when the
// two-panel chart cannot be drawn.
func RelativeModeName(mode benchmark.Mode) string {
	return fmt.Sprintf("relative_performance_%s.png", mode)
}

// Observer is notified of every chart outcome.
type Observer interface {
	ChartWritten()
	ChartFailed(chart string)
}

type nopObserver struct{}

func (nopObserver) ChartWritten()      {}
func (nopObserver) ChartFailed(string) {}

// Renderer draws the analysis charts as PNG files into Dir.
type Renderer struct {
	Dir      string
	Width    vg.Length
	Height   vg.Length
	Observer Observer

	savePanels func(plots []*plot.Plot, w, h vg.Length, path string) error
}

// NewRenderer returns a renderer writing widthIn x heightIn inch charts.
func NewRenderer(dir string, widthIn, heightIn float64, obs Observer) *Renderer {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Renderer{
		Dir:        dir,
		Width:      vg.Length(widthIn) * vg.Inch,
		Height:     vg.Length(heightIn) * vg.Inch,
		Observer:   obs,
		savePanels: savePanels,
	}
}

// RenderAll draws every chart the analysis supports and returns the files
// written. A failing chart is logged and counted; the others still render.
func (r *Renderer) RenderAll(a benchmark.Analysis) []string {
	var written []string
	run := func(chart string, fn func() ([]string, error)) {
		paths, err := r.guard(fn)
		if err != nil {
			r.Observer.ChartFailed(chart)
			slog.Error("Failed to create chart", "chart", chart, "error", err)
		}
		for _, p := range paths {
			r.Observer.ChartWritten()
			slog.Info("Saved chart", "path", p)
		}
		written = append(written, paths...)
	}

	if len(a.Table) == 0 {
		return nil
	}

	run("performance_by_bitwidth", func() ([]string, error) {
		return one(r.PerformanceByBitWidth(a.Table))
	})

	if len(a.Speedups) > 0 {
		run("speedup", func() ([]string, error) {
			return one(r.Speedup(a.Speedups))
		})
	} else {
		slog.Info("No data for batch vs single comparison")
	}

	for _, width := range a.Table.BitWidths() {
		run(fmt.Sprintf("implementation_performance_%dbit", width), func() ([]string, error) {
			return one(r.ImplementationPerformance(a.Table, width))
		})
	}

	if len(a.Relatives) > 0 {
		run("relative_performance", func() ([]string, error) {
			return r.RelativePerformance(a.Relatives)
		})
	} else {
		slog.Info("No data for relative performance comparison")
	}

	if len(a.Table.BitWidths()) > 1 {
		run("comprehensive_performance", func() ([]string, error) {
			return one(r.Comprehensive(a.Table))
		})
	}

	return written
}

// guard turns a panic inside gonum/plot into an error for the chart at hand.
func (r *Renderer) guard(fn func() ([]string, error)) (paths []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("chart panicked: %v", rec)
		}
	}()
	return fn()
}

func one(path string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (r *Renderer) path(name string) string {
	return filepath.Join(r.Dir, name)
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	path := r.path(name)
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	return path, nil
}
