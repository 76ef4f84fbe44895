// Package exporter writes the artifacts of an exploration run.
//
// RenderDiagnostics draws the 2×2 diagnostic figure (price and log return
// over time, price and log-return histograms) with gonum/plot and saves it
// as a PNG. WriteWorkbook stores the same run as an XLSX workbook with
// Summary, Returns and Events sheets.
//
// Example usage:
//
//	opts := exporter.PlotOptions{Width: 15, Height: 10, DPI: 300, Bins: 50}
//	if err := exporter.RenderDiagnostics("initial_analysis.png", prices, returns, opts); err != nil {
//	    return err
//	}
package exporter
