package charts

import (
	"cmp"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"rngbench/internal/benchmark"
)

const speedLabel = "Speed (M ops/s)"

func group(t benchmark.Table, width int, impl string, mode benchmark.Mode) benchmark.Table {
	return t.Filter(func(r benchmark.Record) bool {
		return r.BitWidth == width && r.Implementation == impl && r.Mode == mode
	})
}

func widthTicks(widths []int) []plot.Tick {
	ticks := make([]plot.Tick, len(widths))
	for i, w := range widths {
		ticks[i] = plot.Tick{Value: float64(w), Label: fmt.Sprintf("%d", w)}
	}
	return ticks
}

// PerformanceByBitWidth draws mean speed against bit width, one line per
// implementation and mode. Both axes are logarithmic when more than one bit
// width is present.
func (r *Renderer) PerformanceByBitWidth(t benchmark.Table) (string, error) {
	widths := t.BitWidths()
	logScale := len(widths) > 1

	p := newPlot("RNG Performance by Bit Width", "Bit Width", speedLabel)

	var lines []any
	for _, impl := range t.Implementations() {
		for _, mode := range benchmark.Modes {
			var xys plotter.XYs
			for _, w := range widths {
				g := group(t, w, impl, mode)
				if len(g) == 0 {
					continue
				}
				avg := benchmark.MeanSpeed(g)
				if logScale && avg <= 0 {
					continue
				}
				xys = append(xys, plotter.XY{X: float64(w), Y: avg})
			}
			if len(xys) > 0 {
				lines = append(lines, fmt.Sprintf("%s (%s)", impl, mode), xys)
			}
		}
	}
	if len(lines) == 0 {
		return "", errors.New("no positive speeds to plot")
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return "", err
	}

	if logScale {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.X.Tick.Marker = plot.ConstantTicks(widthTicks(widths))

	return r.save(p, PerformanceByBitWidthName)
}

// Speedup draws Batch/Single ratios grouped by bit width with one bar per
// implementation and a reference line at 1.
func (r *Renderer) Speedup(speedups []benchmark.Speedup) (string, error) {
	if len(speedups) == 0 {
		return "", errors.New("no speedup data")
	}

	categories, impls, values := speedupBars(speedups)
	p := newPlot("Batch vs Single Mode Speedup", "Bit Width", "Speedup Factor (Batch/Single)")
	if err := groupedBars(p, categories, impls, values, seriesColors(len(impls))); err != nil {
		return "", err
	}
	addReferenceLine(p, 1)

	return r.save(p, SpeedupName)
}

// speedupBars lays out speedups as bit width categories with one series per
// implementation.
func speedupBars(speedups []benchmark.Speedup) (categories, impls []string, values [][]float64) {
	var widths []int
	for _, s := range speedups {
		if !slices.Contains(impls, s.Implementation) {
			impls = append(impls, s.Implementation)
		}
		if !slices.Contains(widths, s.BitWidth) {
			widths = append(widths, s.BitWidth)
		}
	}
	slices.Sort(widths)

	categories = make([]string, len(widths))
	for i, w := range widths {
		categories[i] = fmt.Sprintf("%d-bit", w)
	}
	values = make([][]float64, len(impls))
	for i := range impls {
		values[i] = make([]float64, len(widths))
	}
	for _, s := range speedups {
		values[slices.Index(impls, s.Implementation)][slices.Index(widths, s.BitWidth)] = s.Speedup
	}
	return categories, impls, values
}

// ImplementationPerformance compares Single and Batch mean speed of every
// implementation at one bit width. A missing mode is drawn as a zero bar.
func (r *Renderer) ImplementationPerformance(t benchmark.Table, width int) (string, error) {
	byWidth := t.Filter(func(rec benchmark.Record) bool { return rec.BitWidth == width })
	impls := byWidth.Implementations()
	if len(impls) == 0 {
		return "", fmt.Errorf("no records for %d-bit", width)
	}

	series := make([]string, len(benchmark.Modes))
	values := make([][]float64, len(benchmark.Modes))
	for i, mode := range benchmark.Modes {
		series[i] = string(mode)
		values[i] = make([]float64, len(impls))
		for j, impl := range impls {
			if g := group(byWidth, width, impl, mode); len(g) > 0 {
				values[i][j] = benchmark.MeanSpeed(g)
			}
		}
	}

	p := newPlot(fmt.Sprintf("RNG Performance Comparison - %d-bit", width), "Implementation", speedLabel)
	if err := groupedBars(p, impls, series, values, []color.Color{skyBlue, lightGreen}); err != nil {
		return "", err
	}

	return r.save(p, ImplementationPerformanceName(width))
}

func relativePlot(rel []benchmark.Relative, mode benchmark.Mode) (*plot.Plot, error) {
	var impls []string
	var widths []int
	for _, x := range rel {
		if !slices.Contains(impls, x.Implementation) {
			impls = append(impls, x.Implementation)
		}
		if !slices.Contains(widths, x.BitWidth) {
			widths = append(widths, x.BitWidth)
		}
	}
	slices.Sort(widths)

	series := make([]string, len(widths))
	values := make([][]float64, len(widths))
	for i, w := range widths {
		series[i] = fmt.Sprintf("%d-bit", w)
		values[i] = make([]float64, len(impls))
	}
	for _, x := range rel {
		if x.Mode == mode {
			values[slices.Index(widths, x.BitWidth)][slices.Index(impls, x.Implementation)] = x.Relative
		}
	}

	p := newPlot(fmt.Sprintf("%s Mode", mode), "Implementation",
		fmt.Sprintf("Relative Performance (vs %s)", benchmark.BaselineLabel))
	if err := groupedBars(p, impls, series, values, seriesColors(len(series))); err != nil {
		return nil, err
	}
	addReferenceLine(p, 1)
	return p, nil
}

func relativeModes(rel []benchmark.Relative) []benchmark.Mode {
	var modes []benchmark.Mode
	for _, mode := range benchmark.Modes {
		if slices.ContainsFunc(rel, func(x benchmark.Relative) bool { return x.Mode == mode }) {
			modes = append(modes, mode)
		}
	}
	return modes
}

// RelativePerformance draws performance relative to the baseline with one
// panel per mode. If the panels cannot be drawn, one chart per mode is written
// instead.
func (r *Renderer) RelativePerformance(rel []benchmark.Relative) ([]string, error) {
	modes := relativeModes(rel)
	if len(modes) == 0 {
		return nil, errors.New("no relative performance data")
	}

	err := func() error {
		plots := make([]*plot.Plot, 0, len(modes))
		for _, mode := range modes {
			p, err := relativePlot(rel, mode)
			if err != nil {
				return err
			}
			plots = append(plots, p)
		}
		return r.savePanels(plots, r.Width, r.Height, r.path(RelativeName))
	}()
	if err == nil {
		return []string{r.path(RelativeName)}, nil
	}
	slog.Warn("Error creating relative performance chart, falling back to per-mode charts", "error", err)

	var written []string
	var errs []error
	for _, mode := range modes {
		p, err := relativePlot(rel, mode)
		if err == nil {
			var path string
			path, err = r.save(p, RelativeModeName(mode))
			if err == nil {
				written = append(written, path)
				continue
			}
		}
		slog.Error("Fallback relative performance chart failed", "mode", mode, "error", err)
		errs = append(errs, err)
	}
	return written, errors.Join(errs...)
}

// heatRow is one implementation and mode of the comprehensive chart.
type heatRow struct {
	label string
	means []float64
	avg   float64
}

// heatRows builds one row per implementation and mode with any records,
// sorted by average speed, fastest first.
func heatRows(t benchmark.Table, widths []int) []heatRow {
	var rows []heatRow
	for _, impl := range t.Implementations() {
		for _, mode := range benchmark.Modes {
			row := heatRow{label: fmt.Sprintf("%s (%s)", impl, mode), means: make([]float64, len(widths))}
			var present []float64
			for i, w := range widths {
				g := group(t, w, impl, mode)
				if len(g) == 0 {
					row.means[i] = nan
					continue
				}
				row.means[i] = benchmark.MeanSpeed(g)
				present = append(present, row.means[i])
			}
			if len(present) == 0 {
				continue
			}
			row.avg = mean(present)
			rows = append(rows, row)
		}
	}
	slices.SortStableFunc(rows, func(a, b heatRow) int { return cmp.Compare(b.avg, a.avg) })
	return rows
}

// Comprehensive draws a heatmap of mean speed by implementation, mode and bit
// width, fastest rows on top.
func (r *Renderer) Comprehensive(t benchmark.Table) (string, error) {
	widths := t.BitWidths()
	if len(widths) < 2 {
		return "", errors.New("comprehensive chart needs at least two bit widths")
	}

	rows := heatRows(t, widths)
	grid := newSpeedGrid(rows)
	pal, err := heatPalette()
	if err != nil {
		return "", err
	}
	hm := plotter.NewHeatMap(grid, pal)
	hm.Min, hm.Max = grid.Min(), grid.Max()
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	hm.NaN = color.White

	labels, err := grid.labels()
	if err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = "Comprehensive RNG Performance Comparison (M ops/s)"
	p.X.Label.Text = "Bit Width"
	p.Y.Label.Text = "Implementation (Mode)"
	p.Add(hm, labels)

	xTicks := make([]plot.Tick, len(widths))
	for i, w := range widths {
		xTicks[i] = plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d-bit", w)}
	}
	yTicks := make([]plot.Tick, len(rows))
	for i := range rows {
		yTicks[i] = plot.Tick{Value: float64(i), Label: grid.rowLabel(i)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	return r.save(p, ComprehensiveName)
}
