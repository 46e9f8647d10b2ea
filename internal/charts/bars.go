package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	skyBlue    = color.RGBA{135, 206, 235, 255}
	lightGreen = color.RGBA{144, 238, 144, 255}
	refGray    = color.Gray{96}
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// seriesColors picks n distinguishable colors, falling back to the plotutil
// cycle when the brewer palette is too small.
func seriesColors(n int) []color.Color {
	if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set2", max(n, 3)); err == nil {
		return pal.Colors()[:n]
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = plotutil.Color(i)
	}
	return out
}

// groupedBars adds one bar series per entry of values, placed side by side
// around the nominal x positions 0..len(categories)-1.
func groupedBars(p *plot.Plot, categories, series []string, values [][]float64, colors []color.Color) error {
	n := len(series)
	barWidth := vg.Points(math.Max(4, math.Min(20, 48/float64(n))))
	spacing := vg.Points(1)
	groupWidth := (barWidth + spacing) * vg.Length(n-1)

	for i, label := range series {
		bc, err := plotter.NewBarChart(plotter.Values(values[i]), barWidth)
		if err != nil {
			return fmt.Errorf("bars for %s: %w", label, err)
		}
		bc.Offset = (barWidth+spacing)*vg.Length(i) - groupWidth/2
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.Legend.Add(label, bc)
	}

	p.NominalX(categories...)
	if len(categories) > 3 {
		p.X.Tick.Label.Rotation = math.Pi / 6
		p.X.Tick.Label.XAlign = text.XRight
	}
	return nil
}

// addReferenceLine draws a dashed horizontal line at y.
func addReferenceLine(p *plot.Plot, y float64) {
	fn := plotter.NewFunction(func(float64) float64 { return y })
	fn.Color = refGray
	fn.Width = vg.Points(1)
	fn.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(fn)
}

// savePanels lays plots out side by side on one PNG canvas.
func savePanels(plots []*plot.Plot, w, h vg.Length, path string) error {
	img := vgimg.New(w, h)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
