package exporter

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"brentstats/pkg/contracts/domain"
)

func samplePrices(n int) []domain.PricePoint {
	start := time.Date(1987, 5, 20, 0, 0, 0, 0, time.UTC)
	out := make([]domain.PricePoint, n)
	for i := range out {
		out[i] = domain.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Price: 18 + 2*math.Sin(float64(i)/5),
		}
	}
	return out
}

func sampleReturns(prices []domain.PricePoint) []domain.ReturnObservation {
	out := make([]domain.ReturnObservation, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, domain.ReturnObservation{
			Date:      prices[i].Date,
			LogReturn: math.Log(prices[i].Price / prices[i-1].Price),
		})
	}
	return out
}

func TestRenderDiagnostics(t *testing.T) {
	prices := samplePrices(120)
	path := filepath.Join(t.TempDir(), "plots", "initial_analysis.png")

	err := RenderDiagnostics(path, prices, sampleReturns(prices), PlotOptions{Width: 6, Height: 4, DPI: 50, Bins: 10})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestRenderDiagnosticsNeedsReturns(t *testing.T) {
	prices := samplePrices(1)
	err := RenderDiagnostics(filepath.Join(t.TempDir(), "x.png"), prices, nil, PlotOptions{Width: 6, Height: 4, DPI: 50, Bins: 10})
	assert.Error(t, err)
}

func TestWriteWorkbook(t *testing.T) {
	prices := samplePrices(5)
	returns := sampleReturns(prices)
	events := []domain.Event{
		{Date: time.Date(1990, 8, 2, 0, 0, 0, 0, time.UTC), Description: "Iraq invades Kuwait"},
	}
	path := filepath.Join(t.TempDir(), "analysis.xlsx")

	err := WriteWorkbook(path, WorkbookData{
		Source:      "BrentOilPrices.csv",
		DroppedRows: 1,
		Prices:      domain.PriceDescription{Count: 5, Start: prices[0].Date, End: prices[4].Date, Mean: 18.5},
		Returns:     domain.ReturnDescription{Count: 4},
		Series:      returns,
		Events:      events,
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetReturns, SheetEvents}, f.GetSheetList())

	rows, err := f.GetRows(SheetReturns)
	require.NoError(t, err)
	require.Len(t, rows, len(returns)+1)
	assert.Equal(t, []string{"Date", "Log_Returns"}, rows[0])
	assert.Equal(t, "1987-05-21", rows[1][0])

	rows, err = f.GetRows(SheetEvents)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1990-08-02", "Iraq invades Kuwait"}, rows[1])

	start, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "1987-05-20", start)
}
