package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "brentstats/internal/errors"
	"brentstats/internal/services"
)

// HomeMessage is the plaintext body served at the root path
const HomeMessage = "Statistics backend is running. Visit /api/data, /api/change_point, or /api/summary_stats."

// StatsHandler serves the return series, the change point and the segment statistics
type StatsHandler struct {
	service      StatsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service StatsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *StatsHandler {
	return &StatsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "stats_handler")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes mounts the statistics endpoints on an /api router
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/data", h.GetData)
		r.Get("/change_point", h.GetChangePoint)
		r.Get("/summary_stats", h.GetSummaryStats)
	})
}

// Home handles GET /
func (h *StatsHandler) Home(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, HomeMessage)
}

// GetData handles GET /api/data
func (h *StatsHandler) GetData(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.GetReturns(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "failed to get return series", err)
		return
	}

	render.JSON(w, r, points)
}

// GetChangePoint handles GET /api/change_point
func (h *StatsHandler) GetChangePoint(w http.ResponseWriter, r *http.Request) {
	cp, err := h.service.GetChangePoint(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "failed to get change point", err)
		return
	}

	render.JSON(w, r, cp)
}

// GetSummaryStats handles GET /api/summary_stats
func (h *StatsHandler) GetSummaryStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummaryStats(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "failed to compute summary statistics", err)
		return
	}

	h.logger.DebugContext(r.Context(), "summary statistics served",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Float64("before_mean", summary.Before.Mean),
		slog.Float64("after_mean", summary.After.Mean),
	)

	render.JSON(w, r, summary)
}

// handleServiceError maps service errors to API errors
func (h *StatsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var segErr *services.SegmentError
	switch {
	case errors.As(err, &segErr):
		h.errorHandler.HandleError(w, r, apierrors.InsufficientSegmentData(segErr.Segment, segErr.Length, segErr.Min))
	case errors.Is(err, services.ErrServiceUnavailable):
		h.errorHandler.HandleError(w, r, apierrors.ErrServiceUnavailable)
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
