package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/oscifit/internal/band"
	"github.com/san-kum/oscifit/internal/dynamo"
	"github.com/san-kum/oscifit/internal/inference"
)

// PlotTrajectory renders one projected component of a trajectory.
func PlotTrajectory(tr *dynamo.Trajectory, project func(dynamo.State) float64, caption string) string {
	data := tr.Project(project)
	if len(data) < 2 {
		return "(trajectory too short to plot)"
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PlotBand overlays the credible envelope with its mean curve. The lower
// and upper series bracket the mean so the band reads as a corridor.
func PlotBand(b *band.Band, caption string) string {
	if len(b.Times) < 2 {
		return "(band too short to plot)"
	}
	graph := asciigraph.PlotMany([][]float64{b.Lower, b.Mean, b.Upper},
		asciigraph.Height(14),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Silver, asciigraph.Blue, asciigraph.Silver),
	)

	var s strings.Builder
	s.WriteString(graph)
	s.WriteString("\n\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("mean band width %.4g over [%g, %g]",
		meanWidth(b), b.Times[0], b.Times[len(b.Times)-1])))
	return s.String()
}

// PlotBandWithData renders the band plus the observations it was fit to,
// marking each observation against its nearest band value.
func PlotBandWithData(b *band.Band, ds *inference.Dataset, caption string) string {
	s := PlotBand(b, caption)
	if ds == nil || len(ds.Times) == 0 {
		return s
	}

	inside := 0
	for i, t := range ds.Times {
		j := nearestIndex(b.Times, t)
		if ds.Values[i] >= b.Lower[j] && ds.Values[i] <= b.Upper[j] {
			inside++
		}
	}
	coverage := float64(inside) / float64(len(ds.Times))
	return s + "\n" + Subtle.Render(fmt.Sprintf("observations inside band: %d/%d (%.0f%%)",
		inside, len(ds.Times), 100*coverage))
}

// PlotTrace renders one parameter's chain history, one panel per chain.
func PlotTrace(res *inference.Result, param string) string {
	var s strings.Builder
	for ci, chain := range res.Chains {
		col := chain.Column(indexOf(res.Names, param))
		if len(col) < 2 {
			continue
		}
		graph := asciigraph.Plot(col,
			asciigraph.Height(6),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("%s, chain %d (accept %.2f)", param, ci, chain.AcceptRate)),
		)
		s.WriteString(graph)
		s.WriteString("\n\n")
	}
	if s.Len() == 0 {
		return "(no draws to plot)"
	}
	return strings.TrimRight(s.String(), "\n")
}

// PlotSpectrum renders the low-frequency half of a power spectrum.
func PlotSpectrum(power []float64, caption string) string {
	n := len(power) / 4
	if n < 2 {
		n = len(power)
	}
	if n < 2 {
		return "(spectrum too short to plot)"
	}
	return asciigraph.Plot(power[:n],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func meanWidth(b *band.Band) float64 {
	w := b.Width()
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if len(w) == 0 {
		return math.NaN()
	}
	return sum / float64(len(w))
}

func nearestIndex(times []float64, t float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, ti := range times {
		if d := math.Abs(ti - t); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}
