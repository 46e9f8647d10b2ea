package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
)

var nan = math.NaN()

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func heatPalette() (palette.Palette, error) {
	return brewer.GetPalette(brewer.TypeSequential, "YlGnBu", 9)
}

// speedGrid adapts heat rows to plotter.GridXYZ. Grid row 0 is drawn at the
// bottom, so rows are stored in reverse to keep the fastest on top.
type speedGrid struct {
	rows []heatRow
}

func newSpeedGrid(sorted []heatRow) *speedGrid {
	rows := make([]heatRow, len(sorted))
	for i, r := range sorted {
		rows[len(sorted)-1-i] = r
	}
	return &speedGrid{rows: rows}
}

func (g *speedGrid) Dims() (c, r int) {
	if len(g.rows) == 0 {
		return 0, 0
	}
	return len(g.rows[0].means), len(g.rows)
}

func (g *speedGrid) Z(c, r int) float64 { return g.rows[r].means[c] }
func (g *speedGrid) X(c int) float64    { return float64(c) }
func (g *speedGrid) Y(r int) float64    { return float64(r) }

func (g *speedGrid) rowLabel(r int) string { return g.rows[r].label }

func (g *speedGrid) Min() float64 {
	m := math.Inf(1)
	for _, row := range g.rows {
		for _, v := range row.means {
			if !math.IsNaN(v) {
				m = math.Min(m, v)
			}
		}
	}
	return m
}

func (g *speedGrid) Max() float64 {
	m := math.Inf(-1)
	for _, row := range g.rows {
		for _, v := range row.means {
			if !math.IsNaN(v) {
				m = math.Max(m, v)
			}
		}
	}
	return m
}

// labels annotates every populated cell with its value.
func (g *speedGrid) labels() (*plotter.Labels, error) {
	var xys plotter.XYs
	var texts []string
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: g.X(c), Y: g.Y(r)})
			texts = append(texts, fmt.Sprintf("%.1f", v))
		}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YCenter
	}
	return l, nil
}
