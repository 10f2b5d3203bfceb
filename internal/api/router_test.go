package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tearsheet/backend/internal/api/handlers"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
	"github.com/wonny/tearsheet/backend/pkg/redis"
)

func testRouter() http.Handler {
	cfg := &config.Config{
		Port: "8090",
		Env:  "development",
		Analytics: config.AnalyticsConfig{
			InitialCapital:     100_000.0,
			RiskFreeRate:       0.02,
			TradingDaysPerYear: 261,
		},
		Generator: config.GeneratorConfig{
			NumDays:      50,
			DailyMeanPct: 0.5,
			DailyStdPct:  4.0,
			StartDate:    "2015-01-01",
			Seed:         43,
		},
		LogLevel:  "error",
		LogFormat: "json",
	}
	log := logger.New(cfg)

	client, _ := redis.New(cfg)
	cache := redis.NewCache(client, "tearsheet")

	return NewRouter(
		handlers.NewSummaryHandler(cfg, log),
		handlers.NewFeedHandler(cfg, log),
		handlers.NewReportHandler(cache, cfg, log, "synthetic", true),
		log,
	)
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSummaryRouting(t *testing.T) {
	router := testRouter()

	body := `{"series": [{"date": "2024-01-01", "value": 0.01}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong method is rejected by the router
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReportRouting(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backtest_period"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report/periodic", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"periods"`)
}

func TestRateLimiting(t *testing.T) {
	router := testRouter()

	limited := 0
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/series/random?days=1&seed=1", nil))
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Positive(t, limited, "burst beyond the bucket must be throttled")
}
