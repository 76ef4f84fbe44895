package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"brentstats/internal/dataset"
	"brentstats/internal/infrastructure"
	"brentstats/internal/stats"
	"brentstats/pkg/contracts/domain"
)

// StatsService answers read-only queries about a loaded return series and
// its change-point split. It is safe for concurrent use.
type StatsService struct {
	snapshot *dataset.Snapshot
	metrics  *infrastructure.ServiceMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// StatsOption configures a StatsService
type StatsOption func(*StatsService)

// WithMetrics records summary computations on m
func WithMetrics(m *infrastructure.ServiceMetrics) StatsOption {
	return func(s *StatsService) { s.metrics = m }
}

// WithTracer overrides the global tracer
func WithTracer(t trace.Tracer) StatsOption {
	return func(s *StatsService) { s.tracer = t }
}

// NewStatsService creates a stats service over snapshot
func NewStatsService(snapshot *dataset.Snapshot, logger *slog.Logger, opts ...StatsOption) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &StatsService{
		snapshot: snapshot,
		tracer:   otel.Tracer(infrastructure.MeterName),
		logger:   logger.With(slog.String("service", "stats")),
	}
	for _, opt := range opts {
		opt(s)
	}

	if snapshot != nil {
		s.logger.Info("StatsService initialized",
			slog.Int("observations", snapshot.Len()),
			slog.Int("change_point", snapshot.ChangePoint()))
	}
	return s
}

// GetReturns returns every observation in index order
func (s *StatsService) GetReturns(ctx context.Context) ([]domain.ReturnPoint, error) {
	if s.snapshot == nil {
		return nil, ErrServiceUnavailable
	}

	values := s.snapshot.Values()
	points := make([]domain.ReturnPoint, len(values))
	for i, v := range values {
		points[i] = domain.ReturnPoint{LogReturn: v}
	}

	s.logger.DebugContext(ctx, "Returned full series", slog.Int("count", len(points)))
	return points, nil
}

// GetChangePoint returns the configured split index
func (s *StatsService) GetChangePoint(ctx context.Context) (domain.ChangePoint, error) {
	if s.snapshot == nil {
		return domain.ChangePoint{}, ErrServiceUnavailable
	}
	return domain.ChangePoint{Index: s.snapshot.ChangePoint()}, nil
}

// GetSummaryStats computes mean, std, skewness and kurtosis of both segments.
// A segment shorter than stats.MinSegmentLength yields a *SegmentError.
func (s *StatsService) GetSummaryStats(ctx context.Context) (domain.SummaryStats, error) {
	if s.snapshot == nil {
		return domain.SummaryStats{}, ErrServiceUnavailable
	}

	ctx, span := s.tracer.Start(ctx, "stats.summary",
		trace.WithAttributes(
			attribute.Int("series.length", s.snapshot.Len()),
			attribute.Int("series.change_point", s.snapshot.ChangePoint()),
		))
	defer span.End()

	start := time.Now()
	summary, err := s.summarize(ctx)
	s.metrics.RecordSummary(ctx, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.WarnContext(ctx, "Summary statistics unavailable", slog.String("error", err.Error()))
		return domain.SummaryStats{}, err
	}

	return summary, nil
}

func (s *StatsService) summarize(ctx context.Context) (domain.SummaryStats, error) {
	before, err := s.segment(ctx, domain.SegmentBefore, s.snapshot.Before())
	if err != nil {
		return domain.SummaryStats{}, err
	}
	after, err := s.segment(ctx, domain.SegmentAfter, s.snapshot.After())
	if err != nil {
		return domain.SummaryStats{}, err
	}
	return domain.SummaryStats{Before: before, After: after}, nil
}

func (s *StatsService) segment(ctx context.Context, name string, xs []float64) (domain.SegmentStats, error) {
	out, err := stats.Summarize(xs)
	if err != nil {
		s.metrics.RecordDegenerateSegment(ctx, name)
		return domain.SegmentStats{}, &SegmentError{
			Segment: name,
			Length:  len(xs),
			Min:     stats.MinSegmentLength,
			Err:     err,
		}
	}
	return out, nil
}

// CheckHealth reports whether the loaded series can serve every operation
func (s *StatsService) CheckHealth(ctx context.Context) ServiceHealth {
	if s.snapshot == nil {
		return ServiceHealth{Status: StatusNotReady, Message: "no dataset loaded"}
	}

	before, after := s.snapshot.ChangePoint(), s.snapshot.Len()-s.snapshot.ChangePoint()
	if before < stats.MinSegmentLength || after < stats.MinSegmentLength {
		return ServiceHealth{
			Status: StatusDegraded,
			Message: fmt.Sprintf("segments of %d and %d observations, summary statistics need %d each",
				before, after, stats.MinSegmentLength),
		}
	}

	return ServiceHealth{
		Status:  StatusReady,
		Message: fmt.Sprintf("%d observations split at %d", s.snapshot.Len(), s.snapshot.ChangePoint()),
	}
}
