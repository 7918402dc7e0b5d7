// Package stats summarizes a precursor table and plots its length
// distribution.
package stats

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Summary describes a precursor table.
type Summary struct {
	Precursors int
	Peptides   int // distinct sequences
	Targets    int
	Decoys     int
	Modified   int // precursors with at least one modification

	LengthMean, LengthStdDev float64
	MZMean, MZStdDev         float64
	MZMin, MZMax             float64

	Charges  map[int]int
	Channels map[string]int
}

// Summarize computes the summary of rows.
func Summarize(rows []core.Precursor) Summary {
	s := Summary{
		Precursors: len(rows),
		Charges:    make(map[int]int),
		Channels:   make(map[string]int),
	}
	if len(rows) == 0 {
		return s
	}

	seqs := make(map[string]bool)
	lengths := make([]float64, len(rows))
	mzs := make([]float64, len(rows))
	for i := range rows {
		r := &rows[i]
		seqs[r.Sequence] = true
		if r.Decoy {
			s.Decoys++
		} else {
			s.Targets++
		}
		if r.Mods != "" {
			s.Modified++
		}
		s.Charges[r.Charge]++
		if r.LabelChannel != "" {
			s.Channels[r.LabelChannel]++
		}
		lengths[i] = float64(r.NAA)
		mzs[i] = r.PrecursorMZ
	}
	s.Peptides = len(seqs)

	s.LengthMean, s.LengthStdDev = stat.MeanStdDev(lengths, nil)
	s.MZMean, s.MZStdDev = stat.MeanStdDev(mzs, nil)
	if len(rows) == 1 {
		s.LengthStdDev, s.MZStdDev = 0, 0
	}
	s.MZMin, s.MZMax = floats.Min(mzs), floats.Max(mzs)

	return s
}

// Print writes the summary in a human readable form.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Precursors: %d\n", s.Precursors)
	fmt.Fprintf(w, "Peptides: %d\n", s.Peptides)
	fmt.Fprintf(w, "Targets: %d\n", s.Targets)
	fmt.Fprintf(w, "Decoys: %d\n", s.Decoys)
	fmt.Fprintf(w, "Modified: %d\n", s.Modified)
	if s.Precursors == 0 {
		return
	}
	fmt.Fprintf(w, "Length: %.2f +/- %.2f\n", s.LengthMean, s.LengthStdDev)
	fmt.Fprintf(w, "Precursor m/z: %.4f +/- %.4f (%.4f - %.4f)\n", s.MZMean, s.MZStdDev, s.MZMin, s.MZMax)

	charges := make([]int, 0, len(s.Charges))
	for z := range s.Charges {
		charges = append(charges, z)
	}
	sort.Ints(charges)
	for _, z := range charges {
		fmt.Fprintf(w, "Charge %d: %d\n", z, s.Charges[z])
	}

	channels := make([]string, 0, len(s.Channels))
	for c := range s.Channels {
		channels = append(channels, c)
	}
	sort.Strings(channels)
	for _, c := range channels {
		fmt.Fprintf(w, "Channel %s: %d\n", c, s.Channels[c])
	}
}

// LengthHistogram counts distinct peptides by length. Index i is length i.
func LengthHistogram(rows []core.Precursor) []float64 {
	maxLen := 0
	seen := make(map[string]bool)
	for i := range rows {
		maxLen = max(maxLen, len(rows[i].Sequence))
	}
	counts := make([]float64, maxLen+1)
	for i := range rows {
		seq := rows[i].Sequence
		if seen[seq] {
			continue
		}
		seen[seq] = true
		counts[len(seq)]++
	}
	return counts
}

type integerTicks struct{}

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	step := int(math.Max(1, math.Ceil((max-min)/20)))
	var ticks []plot.Tick
	for i := int(math.Ceil(min)); i <= int(math.Floor(max)); i += step {
		ticks = append(ticks, plot.Tick{
			Value: float64(i),
			Label: fmt.Sprintf("%d", i),
		})
	}
	return ticks
}

// PlotLengths writes a bar chart of the peptide length distribution. format
// is any format supported by gonum/plot, e.g. "png" or "svg".
func PlotLengths(w io.Writer, rows []core.Precursor, format string) error {
	counts := LengthHistogram(rows)
	if len(counts) < 2 {
		return fmt.Errorf("no peptides to plot")
	}

	p := plot.New()
	p.Title.Text = "Peptide Length Distribution"
	p.X.Label.Text = "Peptide Length"
	p.Y.Label.Text = "Peptide Count"
	p.X.Tick.Marker = integerTicks{}

	points := make(plotter.XYs, 0, len(counts))
	for length, n := range counts {
		if length == 0 {
			continue
		}
		points = append(points, plotter.XY{X: float64(length), Y: n})
	}

	hist, err := plotter.NewHistogram(points, len(points))
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	hist.FillColor = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
