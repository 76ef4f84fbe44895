package dataprocessing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "brentstats/internal/errors"
	"brentstats/internal/exporter"
	"brentstats/internal/shared/testutil"
)

func writePriceFixture(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Price\n")
	start := day(1987, 5, 20)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s,%.2f\n", start.AddDate(0, 0, i).Format("02-Jan-06"), 18+3*math.Sin(float64(i)/4))
	}
	b.WriteString("bad-row,12.00\n")
	return testutil.WriteFile(t, "BrentOilPrices.csv", b.String())
}

func testOptions(t *testing.T, prices, events string) Options {
	dir := t.TempDir()
	return Options{
		PricesFile: prices,
		EventsFile: events,
		PlotFile:   filepath.Join(dir, "initial_analysis.png"),
		Plot:       exporter.PlotOptions{Width: 4, Height: 3, DPI: 40, Bins: 10},
	}
}

func TestExplorerRun(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	events := testutil.WriteFile(t, "events.csv", "Date,Event_Description\n1990-08-02,Iraq invades Kuwait\n")
	opts := testOptions(t, writePriceFixture(t, 40), events)

	var out bytes.Buffer
	report := NewExplorer(opts, &out, logger).Run(context.Background())

	require.False(t, report.Halted)
	require.NoError(t, report.StepError())
	assert.Len(t, report.Returns, 39)
	assert.Equal(t, 1, report.Prices.Dropped)
	assert.Equal(t, "standard", report.Events.Strategy)

	console := out.String()
	for _, want := range []string{
		"=== Brent Oil Price Analysis - Data Exploration ===",
		"✓ Data loaded successfully: 41 records",
		"✓ Date range: 1987-05-20 to 1987-06-28",
		"✓ Dropped malformed rows: 1",
		"=== Time Series Properties Analysis ===",
		"Log returns mean:",
		"✓ Visualizations saved as",
		"✓ Events dataset loaded: 1 events",
		"  1990-08-02: Iraq invades Kuwait",
		"=== Analysis Summary ===",
		"✓ Events dataset prepared",
		"4. Develop interactive dashboard",
	} {
		assert.Contains(t, console, want)
	}
	assert.NotContains(t, console, "Trying alternative parsing method")

	_, err := os.Stat(opts.PlotFile)
	assert.NoError(t, err)
	assert.True(t, logs.ContainsAttr("step", StepVisualize))
}

func TestExplorerHaltsWhenPricesMissing(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	opts := testOptions(t, filepath.Join(t.TempDir(), "missing.csv"), "unused.csv")

	var out bytes.Buffer
	report := NewExplorer(opts, &out, logger).Run(context.Background())

	require.True(t, report.Halted)
	assert.Contains(t, out.String(), "✗ Error loading data:")
	assert.NotContains(t, out.String(), "=== Time Series Properties Analysis ===")
	assert.NotContains(t, out.String(), "Next steps:")

	load, ok := report.Step(StepLoadPrices)
	require.True(t, ok)
	assert.Equal(t, StepStatusFailed, load.Status)
	var appErr *apierrors.AppError
	require.True(t, errors.As(load.Err, &appErr))
	assert.Equal(t, apierrors.ErrTypeNotFound, appErr.Type)
	assert.ErrorIs(t, load.Err, fs.ErrNotExist)
	assert.Error(t, report.StepError())

	for _, id := range []string{StepProperties, StepVisualize, StepEvents} {
		res, ok := report.Step(id)
		require.True(t, ok)
		assert.Equal(t, StepStatusSkipped, res.Status, id)
	}

	_, err := os.Stat(opts.PlotFile)
	assert.True(t, os.IsNotExist(err))
}

func TestExplorerHaltsOnUnreadablePrices(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	prices := testutil.WriteFile(t, "prices.csv", "Date,Price\nnot-a-date,abc\n")
	opts := testOptions(t, prices, "unused.csv")

	var out bytes.Buffer
	report := NewExplorer(opts, &out, logger).Run(context.Background())

	require.True(t, report.Halted)
	load, ok := report.Step(StepLoadPrices)
	require.True(t, ok)
	var appErr *apierrors.AppError
	require.True(t, errors.As(load.Err, &appErr))
	assert.Equal(t, apierrors.ErrTypeParsing, appErr.Type)
	assert.ErrorIs(t, load.Err, ErrNoValidRows)
}

func TestExplorerEventsFallback(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	events := testutil.WriteFile(t, "events.csv", "Date,Event_Description\n"+
		"2014-11-27,OPEC declines to cut output, prices slide\n")
	opts := testOptions(t, writePriceFixture(t, 10), events)

	var out bytes.Buffer
	report := NewExplorer(opts, &out, logger).Run(context.Background())

	console := out.String()
	assert.Contains(t, console, "✗ Error loading events data:")
	assert.Equal(t, 1, strings.Count(console, "Trying alternative parsing method..."))
	assert.Contains(t, console, "  2014-11-27: OPEC declines to cut output, prices slide")
	assert.Equal(t, "permissive", report.Events.Strategy)
}

func TestExplorerContinuesWithoutEvents(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	opts := testOptions(t, writePriceFixture(t, 10), filepath.Join(t.TempDir(), "missing.csv"))

	var out bytes.Buffer
	report := NewExplorer(opts, &out, logger).Run(context.Background())

	console := out.String()
	assert.Contains(t, console, "✗ Alternative method also failed:")
	assert.Contains(t, console, "=== Analysis Summary ===")
	assert.Nil(t, report.Events.Events)
	assert.False(t, report.Halted)
}

func TestExplorerWritesWorkbook(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	events := testutil.WriteFile(t, "events.csv", "Date,Event_Description\n1990-08-02,Iraq invades Kuwait\n")
	opts := testOptions(t, writePriceFixture(t, 10), events)
	opts.ReportFile = filepath.Join(t.TempDir(), "analysis.xlsx")

	var out bytes.Buffer
	report := NewExplorer(opts, &out, logger).Run(context.Background())

	res, ok := report.Step(StepReport)
	require.True(t, ok)
	assert.Equal(t, StepStatusCompleted, res.Status)
	assert.Contains(t, out.String(), "Analysis workbook saved as")

	_, err := os.Stat(opts.ReportFile)
	assert.NoError(t, err)
}
