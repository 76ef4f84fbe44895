package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"brentstats/internal/config"
	"brentstats/internal/dataprocessing"
	apierrors "brentstats/internal/errors"
	"brentstats/internal/exporter"
	"brentstats/internal/infrastructure"
	"brentstats/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configFile string
	prices     string
	events     string
	plot       string
	report     string
	dpi        int
	bins       int
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "explorer",
		Short: "Explore the Brent oil price series",
		Long: `Load the Brent price table, derive log returns, render the diagnostic
plots and print the events dataset.

A price table that cannot be loaded is reported and ends the run without a
failing exit status.

Examples:
  explorer
  explorer --prices data/BrentOilPrices.csv --events events_dataset.csv
  explorer --plot out/analysis.png --dpi 150 --report out/analysis.xlsx`,
		Version:      contracts.GetVersionString(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplorer(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.configFile, "config", "", "Configuration file (default: "+config.EnvConfigFile+" or config.yaml)")
	cmd.Flags().StringVar(&f.prices, "prices", "", "Price table, CSV or XLSX")
	cmd.Flags().StringVar(&f.events, "events", "", "Events table (Date, Event_Description)")
	cmd.Flags().StringVar(&f.plot, "plot", "", "Output PNG for the diagnostic plots")
	cmd.Flags().StringVar(&f.report, "report", "", "Optional XLSX analysis workbook")
	cmd.Flags().IntVar(&f.dpi, "dpi", 0, "Plot resolution in dots per inch")
	cmd.Flags().IntVar(&f.bins, "bins", 0, "Histogram bin count")

	return cmd
}

func runExplorer(cmd *cobra.Command, f flags) error {
	var (
		cfg *config.Config
		err error
	)
	if f.configFile != "" {
		cfg, err = config.LoadFrom(f.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return apierrors.NewConfigError("failed to load configuration", err)
	}

	applyFlags(cmd, f, &cfg.Explorer)
	if err := cfg.Validate(); err != nil {
		return apierrors.NewValidationError("invalid configuration", err)
	}

	// stdout carries the console report; logs go to stderr
	logger := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())

	otelCfg := infrastructure.OTelConfigFrom(cfg.Telemetry, "brent-explorer")
	// nothing scrapes a one-shot run
	otelCfg.MetricExporter = "none"
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer providers.Shutdown(context.WithoutCancel(cmd.Context()))

	opts := dataprocessing.Options{
		PricesFile: cfg.Explorer.PricesFile,
		EventsFile: cfg.Explorer.EventsFile,
		PlotFile:   cfg.Explorer.PlotFile,
		ReportFile: cfg.Explorer.ReportFile,
		Plot: exporter.PlotOptions{
			Width:  cfg.Explorer.PlotWidth,
			Height: cfg.Explorer.PlotHeight,
			DPI:    cfg.Explorer.PlotDPI,
			Bins:   cfg.Explorer.HistogramBins,
		},
	}

	explorer := dataprocessing.NewExplorer(opts, cmd.OutOrStdout(), logger,
		dataprocessing.WithTracer(providers.Tracer))
	report := explorer.Run(cmd.Context())
	if err := report.StepError(); err != nil {
		infrastructure.WithError(logger, err).Warn("exploration finished with failed steps",
			slog.Bool("halted", report.Halted))
	}
	return nil
}

// applyFlags overrides explorer settings with the flags set on the command line
func applyFlags(cmd *cobra.Command, f flags, cfg *config.ExplorerConfig) {
	if cmd.Flags().Changed("prices") {
		cfg.PricesFile = f.prices
	}
	if cmd.Flags().Changed("events") {
		cfg.EventsFile = f.events
	}
	if cmd.Flags().Changed("plot") {
		cfg.PlotFile = f.plot
	}
	if cmd.Flags().Changed("report") {
		cfg.ReportFile = f.report
	}
	if cmd.Flags().Changed("dpi") {
		cfg.PlotDPI = f.dpi
	}
	if cmd.Flags().Changed("bins") {
		cfg.HistogramBins = f.bins
	}
}
