// Package services implements the business logic between the HTTP handlers
// and the loaded dataset.
//
// StatsService answers the three read operations over an immutable
// dataset.Snapshot: the full series, the change point and the two-segment
// summary statistics. HealthService aggregates readiness checks registered
// by the other services.
//
// Services take their dependencies through constructors and log through an
// injected *slog.Logger; errors are returned as sentinels or typed errors
// (SegmentError) for the transport layer to map onto HTTP problems.
package services
