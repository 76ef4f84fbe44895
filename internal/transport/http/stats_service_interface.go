package http

import (
	"context"

	"brentstats/pkg/contracts/domain"
)

// StatsServiceInterface defines the read operations served by StatsHandler
type StatsServiceInterface interface {
	GetReturns(ctx context.Context) ([]domain.ReturnPoint, error)
	GetChangePoint(ctx context.Context) (domain.ChangePoint, error)
	GetSummaryStats(ctx context.Context) (domain.SummaryStats, error)
}
