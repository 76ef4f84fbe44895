package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brentstats/internal/config"
	apierrors "brentstats/internal/errors"
	"brentstats/internal/shared/testutil"
)

const pricesCSV = `Date,Price
20-May-87,18.63
21-May-87,18.45
22-May-87,18.55
25-May-87,18.60
26-May-87,18.63
`

const eventsCSV = `Date,Event_Description
1990-08-02,Iraq invades Kuwait
2008-09-15,Lehman Brothers collapse
`

func writeConfig(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, "config.yaml", `
logging:
  level: error
  output: stderr
telemetry:
  trace_exporter: none
  metric_exporter: none
`)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestExplorerRun(t *testing.T) {
	prices := testutil.WriteFile(t, "prices.csv", pricesCSV)
	events := testutil.WriteFile(t, "events.csv", eventsCSV)
	plot := filepath.Join(t.TempDir(), "analysis.png")

	out, err := execute(t,
		"--config", writeConfig(t),
		"--prices", prices,
		"--events", events,
		"--plot", plot,
		"--dpi", "50",
		"--bins", "5",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "=== Brent Oil Price Analysis - Data Exploration ===")
	assert.Contains(t, out, "✓ Data loaded successfully: 5 records")
	assert.Contains(t, out, "✓ Date range: 1987-05-20 to 1987-05-26")
	assert.Contains(t, out, "✓ Events dataset loaded: 2 events")
	assert.Contains(t, out, "  1990-08-02: Iraq invades Kuwait")
	assert.Contains(t, out, "Next steps:")

	info, err := os.Stat(plot)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExplorerMissingPricesIsNotFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	out, err := execute(t,
		"--config", writeConfig(t),
		"--prices", missing,
		"--plot", filepath.Join(t.TempDir(), "analysis.png"),
	)
	require.NoError(t, err)

	assert.Contains(t, out, "✗ Error loading data:")
	assert.NotContains(t, out, "=== Analysis Summary ===")
}

func TestExplorerBadConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
}

func TestExplorerRejectsInvalidDPI(t *testing.T) {
	_, err := execute(t, "--config", writeConfig(t), "--dpi", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeValidation, appErr.Type)
}

func TestApplyFlagsOnlyOverridesChangedFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--bins", "12", "--report", "out.xlsx"}))

	f := flags{bins: 12, report: "out.xlsx"}
	cfg := config.Default().Explorer
	applyFlags(cmd, f, &cfg)

	assert.Equal(t, 12, cfg.HistogramBins)
	assert.Equal(t, "out.xlsx", cfg.ReportFile)
	assert.Equal(t, config.DefaultPricesFile, cfg.PricesFile)
	assert.Equal(t, config.DefaultPlotDPI, cfg.PlotDPI)
}
