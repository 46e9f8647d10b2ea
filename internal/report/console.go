package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"rngbench/internal/benchmark"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// PrintSummary writes one table per bit width with the fastest groups first.
func PrintSummary(w io.Writer, a benchmark.Analysis) {
	fmt.Fprintln(w, bannerStyle.Render("RNG Benchmark Summary"))

	for _, width := range a.Table.BitWidths() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("%d-bit", width)))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "IMPLEMENTATION\tMODE\tMEAN (M/s)\tSTD DEV\tMIN\tMAX\tSAMPLES")
		for _, r := range benchmark.SummaryFor(a.Summary, width) {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\n",
				r.Implementation, r.Mode, r.Mean, r.StdDev, r.Min, r.Max, r.Count)
		}
		tw.Flush()
	}

	if len(a.Speedups) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Batch vs Single speedup"))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BIT WIDTH\tIMPLEMENTATION\tSPEEDUP")
		for _, s := range a.Speedups {
			fmt.Fprintf(tw, "%d\t%s\t%.2fx\n", s.BitWidth, s.Implementation, s.Speedup)
		}
		tw.Flush()
	}
}

// PrintNoData tells the user that nothing could be analyzed.
func PrintNoData(w io.Writer) {
	fmt.Fprintln(w, emptyStyle.Render("No benchmark data found. Please check your benchmark result files."))
}
