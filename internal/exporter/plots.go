package exporter

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"brentstats/internal/files"
	"brentstats/pkg/contracts/domain"
)

// Diagnostic panel titles
const (
	TitlePriceSeries  = "Brent Oil Prices Over Time"
	TitleReturnSeries = "Log Returns Over Time"
	TitlePriceHist    = "Price Distribution"
	TitleReturnHist   = "Log Returns Distribution"
)

// PlotOptions sets the figure size in inches, its resolution and the histogram bin count
type PlotOptions struct {
	Width  float64
	Height float64
	DPI    int
	Bins   int
}

var lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 178}

// RenderDiagnostics draws the four diagnostic panels into a single PNG at path
func RenderDiagnostics(path string, prices []domain.PricePoint, returns []domain.ReturnObservation, opts PlotOptions) error {
	if len(prices) == 0 || len(returns) == 0 {
		return fmt.Errorf("diagnostics need at least two prices, got %d", len(prices))
	}

	priceLine, err := timeSeriesPlot(TitlePriceSeries, "Price (USD/barrel)", priceXYs(prices))
	if err != nil {
		return err
	}
	returnLine, err := timeSeriesPlot(TitleReturnSeries, "Log Returns", returnXYs(returns))
	if err != nil {
		return err
	}

	priceValues := make(plotter.Values, len(prices))
	for i, p := range prices {
		priceValues[i] = p.Price
	}
	priceHist, err := histogramPlot(TitlePriceHist, "Price (USD/barrel)", priceValues, opts.Bins)
	if err != nil {
		return err
	}

	returnValues := make(plotter.Values, len(returns))
	for i, r := range returns {
		returnValues[i] = r.LogReturn
	}
	returnHist, err := histogramPlot(TitleReturnHist, "Log Returns", returnValues, opts.Bins)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{
		{priceLine, returnLine},
		{priceHist, returnHist},
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	return files.WriteAtomic(path, func(w io.Writer) error {
		if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
		return nil
	})
}

func timeSeriesPlot(title, yLabel string, xys plotter.XYs) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006"}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	line.LineStyle.Width = vg.Points(0.5)
	line.LineStyle.Color = lineColor

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}

	p.Add(grid, line)
	return p, nil
}

func histogramPlot(title, xLabel string, values plotter.Values, bins int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	h.FillColor = lineColor
	h.LineStyle.Color = color.Black

	p.Add(h)
	return p, nil
}

func priceXYs(prices []domain.PricePoint) plotter.XYs {
	xys := make(plotter.XYs, len(prices))
	for i, p := range prices {
		xys[i].X = float64(p.Date.Unix())
		xys[i].Y = p.Price
	}
	return xys
}

func returnXYs(returns []domain.ReturnObservation) plotter.XYs {
	xys := make(plotter.XYs, len(returns))
	for i, r := range returns {
		xys[i].X = float64(r.Date.Unix())
		xys[i].Y = r.LogReturn
	}
	return xys
}
