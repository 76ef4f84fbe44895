package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apierrors "brentstats/internal/errors"
	"brentstats/internal/exporter"
	"brentstats/internal/infrastructure"
	"brentstats/pkg/contracts/domain"
)

// StepStatus is the outcome of one exploration step
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// Step IDs in execution order
const (
	StepLoadPrices = "load_prices"
	StepProperties = "properties"
	StepVisualize  = "visualize"
	StepEvents     = "events"
	StepReport     = "report"
)

// NextSteps is the static list printed at the end of every run
var NextSteps = []string{
	"Implement Bayesian change point detection",
	"Identify structural breaks in the price series",
	"Correlate change points with historical events",
	"Develop interactive dashboard",
}

// Options configures an exploration run
type Options struct {
	PricesFile string
	EventsFile string
	PlotFile   string
	ReportFile string // optional XLSX workbook, skipped when empty
	Plot       exporter.PlotOptions
}

// StepResult records one executed step
type StepResult struct {
	ID       string
	Name     string
	Status   StepStatus
	Duration time.Duration
	Err      error
}

// Report is the in-memory result of a run. Halted is set when the price
// series could not be loaded and the remaining steps were skipped.
type Report struct {
	Prices      *PriceSeries
	PriceStats  domain.PriceDescription
	Returns     []domain.ReturnObservation
	ReturnStats domain.ReturnDescription
	Events      *EventsResult
	Steps       []StepResult
	Halted      bool
}

// Step returns the result of the step with id, if it ran
func (r *Report) Step(id string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return StepResult{}, false
}

// Explorer runs the price exploration pipeline and writes its console report to out
type Explorer struct {
	opts       Options
	out        io.Writer
	logger     *slog.Logger
	tracer     trace.Tracer
	strategies []EventStrategy
}

// ExplorerOption configures an Explorer
type ExplorerOption func(*Explorer)

// WithEventStrategies replaces the default events strategies
func WithEventStrategies(s []EventStrategy) ExplorerOption {
	return func(e *Explorer) { e.strategies = s }
}

// WithTracer overrides the global tracer
func WithTracer(t trace.Tracer) ExplorerOption {
	return func(e *Explorer) { e.tracer = t }
}

// NewExplorer creates an explorer
func NewExplorer(opts Options, out io.Writer, logger *slog.Logger, options ...ExplorerOption) *Explorer {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Explorer{
		opts:       opts,
		out:        out,
		logger:     infrastructure.WithComponent(logger, "explorer"),
		tracer:     otel.Tracer(infrastructure.MeterName),
		strategies: DefaultEventStrategies(),
	}
	for _, o := range options {
		o(e)
	}
	return e
}

type step struct {
	id    string
	name  string
	fatal bool
	run   func(ctx context.Context, r *Report) error
}

// Run executes the five steps in order. A price load failure is reported
// and halts the run; every other failure is reported and the run goes on.
// The returned report is never nil.
func (e *Explorer) Run(ctx context.Context) *Report {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := e.tracer.Start(ctx, "explorer.run")
	defer span.End()

	e.printf("Brent Oil Price Analysis\n")
	e.printf("%s\n", "==================================================")

	steps := []step{
		{id: StepLoadPrices, name: "Data exploration", fatal: true, run: e.loadPrices},
		{id: StepProperties, name: "Time series properties", run: e.analyzeProperties},
		{id: StepVisualize, name: "Initial visualizations", run: e.visualize},
		{id: StepEvents, name: "Events dataset", run: e.loadEvents},
	}
	if e.opts.ReportFile != "" {
		steps = append(steps, step{id: StepReport, name: "Analysis workbook", run: e.writeReport})
	}

	report := &Report{}
	for _, s := range steps {
		if report.Halted {
			report.Steps = append(report.Steps, StepResult{ID: s.id, Name: s.name, Status: StepStatusSkipped})
			continue
		}

		result := e.execute(ctx, s, report)
		report.Steps = append(report.Steps, result)
		if result.Err != nil && s.fatal {
			report.Halted = true
			span.SetStatus(codes.Error, result.Err.Error())
		}
	}

	if report.Halted {
		e.logger.WarnContext(ctx, "exploration halted", slog.String("step", StepLoadPrices))
		return report
	}

	e.printSummary(report)
	return report
}

func (e *Explorer) execute(ctx context.Context, s step, report *Report) StepResult {
	ctx, span := e.tracer.Start(ctx, "explorer."+s.id)
	defer span.End()

	start := time.Now()
	err := s.run(ctx, report)
	result := StepResult{ID: s.id, Name: s.name, Status: StepStatusCompleted, Duration: time.Since(start), Err: err}

	if err != nil {
		result.Status = StepStatusFailed
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(e.logger, err).ErrorContext(ctx, "step failed",
			slog.String("step", s.id),
			slog.Duration("duration", result.Duration))
		return result
	}

	e.logger.InfoContext(ctx, "step completed",
		slog.String("step", s.id),
		slog.Duration("duration", result.Duration))
	return result
}

func (e *Explorer) loadPrices(ctx context.Context, r *Report) error {
	e.printf("=== Brent Oil Price Analysis - Data Exploration ===\n")

	prices, err := LoadPrices(e.opts.PricesFile)
	if err != nil {
		appErr := apierrors.NewParsingError("failed to load price series", err)
		if errors.Is(err, fs.ErrNotExist) {
			appErr = apierrors.NewNotFoundError("price series file", err)
		}
		appErr.WithContext("file", e.opts.PricesFile)
		e.printf("✗ Error loading data: %v\n", err)
		return appErr
	}

	r.Prices = prices
	r.PriceStats = DescribePrices(prices)

	infrastructure.AddSpanEvent(ctx, "prices.loaded",
		attribute.Int("rows", prices.Rows),
		attribute.Int("dropped", prices.Dropped))

	e.printf("✓ Data loaded successfully: %d records\n", prices.Rows)
	e.printf("✓ Date range: %s to %s\n", isoDay(r.PriceStats.Start), isoDay(r.PriceStats.End))
	e.printf("✓ Price range: $%.2f to $%.2f\n", r.PriceStats.Min, r.PriceStats.Max)
	if prices.Dropped > 0 {
		e.printf("✓ Dropped malformed rows: %d\n", prices.Dropped)
	}
	return nil
}

func (e *Explorer) analyzeProperties(ctx context.Context, r *Report) error {
	e.printf("\n=== Time Series Properties Analysis ===\n")
	e.printf("Mean price: $%.2f\n", r.PriceStats.Mean)
	e.printf("Standard deviation: $%.2f\n", r.PriceStats.Std)
	e.printf("Coefficient of variation: %.2f\n", r.PriceStats.CoefficientOfVariation)

	r.Returns = LogReturns(r.Prices.Points)
	r.ReturnStats = DescribeReturns(r.Returns)

	e.printf("Log returns mean: %.4f\n", r.ReturnStats.Mean)
	e.printf("Log returns std: %.4f\n", r.ReturnStats.Std)
	return nil
}

func (e *Explorer) visualize(ctx context.Context, r *Report) error {
	e.printf("\n=== Creating Initial Visualizations ===\n")

	if err := exporter.RenderDiagnostics(e.opts.PlotFile, r.Prices.Points, r.Returns, e.opts.Plot); err != nil {
		e.printf("✗ Error creating visualizations: %v\n", err)
		return apierrors.NewRenderError("failed to render diagnostics", err).
			WithContext("file", e.opts.PlotFile)
	}

	e.printf("✓ Visualizations saved as '%s'\n", e.opts.PlotFile)
	return nil
}

func (e *Explorer) loadEvents(ctx context.Context, r *Report) error {
	e.printf("\n=== Loading Events Dataset ===\n")

	result, err := LoadEvents(e.opts.EventsFile, e.strategies)
	r.Events = result

	for i, attempt := range result.Attempts {
		if attempt.Err == nil {
			break
		}
		if i == 0 {
			e.printf("✗ Error loading events data: %v\n", attempt.Err)
		} else {
			e.printf("✗ Alternative method also failed: %v\n", attempt.Err)
		}
		if i+1 < len(result.Attempts) {
			e.printf("Trying alternative parsing method...\n")
		}
	}

	if err != nil {
		// absent events are a valid outcome for the run
		e.logger.WarnContext(ctx, "continuing without events", slog.String("error", err.Error()))
		return nil
	}

	infrastructure.AddSpanEvent(ctx, "events.loaded",
		attribute.String("strategy", result.Strategy),
		attribute.Int("events", len(result.Events)))

	e.printf("✓ Events dataset loaded: %d events\n", len(result.Events))
	e.printf("\nKey Events Summary:\n")
	for _, ev := range result.Events {
		e.printf("  %s: %s\n", isoDay(ev.Date), ev.Description)
	}
	return nil
}

func (e *Explorer) writeReport(ctx context.Context, r *Report) error {
	data := exporter.WorkbookData{
		Source:      filepath.Base(e.opts.PricesFile),
		DroppedRows: r.Prices.Dropped,
		Prices:      r.PriceStats,
		Returns:     r.ReturnStats,
		Series:      r.Returns,
	}
	if r.Events != nil {
		data.Events = r.Events.Events
	}

	if err := exporter.WriteWorkbook(e.opts.ReportFile, data); err != nil {
		return apierrors.NewStorageError("failed to write analysis workbook", err).
			WithContext("file", e.opts.ReportFile)
	}
	return nil
}

func (e *Explorer) printSummary(r *Report) {
	e.printf("\n=== Analysis Summary ===\n")

	lines := []struct{ id, text string }{
		{StepLoadPrices, "Data exploration completed"},
		{StepProperties, "Time series properties analyzed"},
		{StepVisualize, "Initial visualizations created"},
		{StepEvents, "Events dataset prepared"},
	}
	if e.opts.ReportFile != "" {
		lines = append(lines, struct{ id, text string }{StepReport, fmt.Sprintf("Analysis workbook saved as '%s'", e.opts.ReportFile)})
	}

	for _, l := range lines {
		mark := "✓"
		if res, ok := r.Step(l.id); ok && res.Status != StepStatusCompleted {
			mark = "✗"
		}
		e.printf("%s %s\n", mark, l.text)
	}

	e.printf("\nNext steps:\n")
	for i, s := range NextSteps {
		e.printf("%d. %s\n", i+1, s)
	}
}

func (e *Explorer) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func isoDay(t time.Time) string { return t.Format("2006-01-02") }

// StepError joins the errors of every failed step; nil when all succeeded
func (r *Report) StepError() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.ID, s.Err))
		}
	}
	return errors.Join(errs...)
}
