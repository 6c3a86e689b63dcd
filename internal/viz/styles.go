package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/oscifit/internal/inference"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginBottom(1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingRight(2)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			PaddingRight(2)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// SummaryTable renders per-parameter posterior summaries, annotated with
// convergence diagnostics when they are available for the same names.
func SummaryTable(summaries []inference.ParamSummary, diags []inference.Diagnostic) string {
	byName := make(map[string]inference.Diagnostic, len(diags))
	for _, d := range diags {
		byName[d.Name] = d
	}

	rows := make([]string, 0, len(summaries)+1)
	header := fmt.Sprintf("%-10s %12s %12s %12s %12s %12s", "param", "mean", "sd", "2.5%", "median", "97.5%")
	if len(diags) > 0 {
		header += fmt.Sprintf(" %8s %8s", "rhat", "ess")
	}
	rows = append(rows, cellStyle.Render(header))

	for _, ps := range summaries {
		row := nameStyle.Render(fmt.Sprintf("%-10s", ps.Name)) +
			cellStyle.Render(fmt.Sprintf("%12.4g %12.4g %12.4g %12.4g %12.4g",
				ps.Mean, ps.StdDev, ps.Q025, ps.Median, ps.Q975))
		if d, ok := byName[ps.Name]; ok {
			rhat := fmt.Sprintf("%8.3f", d.RHat)
			if d.RHat > 1.1 {
				rhat = warnStyle.Render(rhat)
			}
			row += rhat + cellStyle.Render(fmt.Sprintf(" %8.0f", d.ESS))
		}
		rows = append(rows, row)
	}

	return tableStyle.Render(strings.Join(rows, "\n"))
}

// DiagnosticsNote returns a one-line verdict on chain convergence.
func DiagnosticsNote(diags []inference.Diagnostic) string {
	worst := 0.0
	for _, d := range diags {
		if d.RHat > worst {
			worst = d.RHat
		}
	}
	if worst > 1.1 {
		return warnStyle.Render(fmt.Sprintf("warning: max rhat %.3f > 1.1, chains have not mixed; run longer", worst))
	}
	return Subtle.Render(fmt.Sprintf("max rhat %.3f, chains look mixed", worst))
}

// ProgressBar renders a fixed-width bar for sampler progress.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
