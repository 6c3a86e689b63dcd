// Package viz renders terminal output for calibration runs: ascii band
// and trace plots, styled posterior summary tables, and a live sampler
// monitor built on bubbletea.
package viz
