package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brentstats/internal/config"
	"brentstats/internal/dataset"
	apierrors "brentstats/internal/errors"
	"brentstats/internal/shared/testutil"
	"brentstats/pkg/contracts/domain"
)

func newTestApp(t *testing.T, values []float64, tau int) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Dataset.ReturnsFile = testutil.WriteNPY(t, values)
	cfg.Dataset.ChangePoint = tau
	cfg.Security.RateLimit.Enabled = false

	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplicationWithConfig(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.OTelProviders.Shutdown(context.Background()) })
	return app
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestEndToEndSummary(t *testing.T) {
	app := newTestApp(t, []float64{0.01, -0.02, 0.03, 0.04, -0.01, 0.02}, 3)

	rec := get(t, app.Router, "/api/summary_stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var summary domain.SummaryStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))

	assert.InDelta(t, 0.0066667, summary.Before.Mean, 1e-6)
	assert.InDelta(t, 0.0251661, summary.Before.Std, 1e-6)
	assert.InDelta(t, 0.0166667, summary.After.Mean, 1e-6)
	assert.InDelta(t, 0.0251661, summary.After.Std, 1e-6)
	assert.InDelta(t, -1.5, summary.Before.Kurtosis, 1e-9)

	second := get(t, app.Router, "/api/summary_stats")
	assert.Equal(t, rec.Body.String(), second.Body.String())
}

func TestDataAndChangePoint(t *testing.T) {
	values := []float64{0.1, 0.2, 0.30000000000000004, -0.7, 1e-17}
	app := newTestApp(t, values, 2)

	rec := get(t, app.Router, "/api/data")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []domain.ReturnPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, len(values))
	for i, v := range values {
		assert.Equal(t, v, points[i].LogReturn)
	}

	rec = get(t, app.Router, "/api/change_point")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"change_point": 2}`, rec.Body.String())
}

func TestConstantSeries(t *testing.T) {
	app := newTestApp(t, []float64{5, 5, 5, 5, 5}, 2)

	rec := get(t, app.Router, "/api/summary_stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.SummaryStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	for _, seg := range []domain.SegmentStats{summary.Before, summary.After} {
		assert.Equal(t, 5.0, seg.Mean)
		assert.Zero(t, seg.Std)
		assert.Zero(t, seg.Skewness)
		assert.Zero(t, seg.Kurtosis)
	}
}

func TestUndersizedSegment(t *testing.T) {
	app := newTestApp(t, []float64{0.01, 0.02, 0.03}, 3)

	rec := get(t, app.Router, "/api/summary_stats")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeInsufficientData, problem["type"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), problem["trace_id"])
	details := problem["details"].(map[string]interface{})
	assert.Equal(t, "after", details["segment"])
	assert.EqualValues(t, 0, details["length"])

	// the series itself is still served
	assert.Equal(t, http.StatusOK, get(t, app.Router, "/api/data").Code)

	ready := get(t, app.Router, "/api/health/ready")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), "degraded")
}

func TestRouterExtras(t *testing.T) {
	app := newTestApp(t, []float64{0.01, -0.02, 0.03, 0.04}, 2)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		contains   string
	}{
		{"home", http.MethodGet, "/", http.StatusOK, "/api/summary_stats"},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, apierrors.TypeNotFound},
		{"wrong method", http.MethodPost, "/api/data", http.StatusMethodNotAllowed, apierrors.TypeMethodNotAllowed},
		{"health", http.MethodGet, "/api/health", http.StatusOK, `"status":"ok"`},
		{"ready", http.MethodGet, "/api/health/ready", http.StatusOK, `"status":"ready"`},
		{"version", http.MethodGet, "/api/version", http.StatusOK, `"api_version":"v1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	app := newTestApp(t, []float64{0.01, -0.02, 0.03, 0.04}, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/change_point", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, []float64{0.01, -0.02, 0.03, 0.04}, 2)

	get(t, app.Router, "/api/summary_stats")
	rec := get(t, app.Router, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "summary_computations_total")
}

func TestNewApplicationWithConfigErrors(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	t.Run("missing file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Dataset.ReturnsFile = t.TempDir() + "/missing.npy"

		_, err := NewApplicationWithConfig(cfg, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load dataset")
	})

	t.Run("change point out of range", func(t *testing.T) {
		cfg := config.Default()
		cfg.Dataset.ReturnsFile = testutil.WriteNPY(t, []float64{0.1, 0.2})
		cfg.Dataset.ChangePoint = 3

		_, err := NewApplicationWithConfig(cfg, logger)
		require.ErrorIs(t, err, dataset.ErrChangePointOutOfRange)
	})
}

func TestServeAndStop(t *testing.T) {
	app := newTestApp(t, []float64{0.01, -0.02, 0.03, 0.04}, 2)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/change_point")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"change_point": 2}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
