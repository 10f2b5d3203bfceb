package handlers

import (
	"net/http"
	"time"

	"github.com/wonny/tearsheet/backend/internal/analytics"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
	"github.com/wonny/tearsheet/backend/pkg/redis"
)

// ReportHandler serves the standing daily tearsheet out of the cache.
// The daily report job is the producer; this is the read side.
// ⭐ SSOT: 캐시된 일일 리포트 조회는 이 핸들러에서만
type ReportHandler struct {
	cache      *redis.Cache
	config     *config.Config
	logger     *logger.Logger
	seriesName string
	synthetic  bool // no ledger source: compute on demand from the generator
}

// NewReportHandler creates a new report handler. synthetic selects the
// on-demand generator fallback for cache misses; with a ledger source
// the job is the only producer and a miss means "not computed yet".
func NewReportHandler(cache *redis.Cache, cfg *config.Config, log *logger.Logger, seriesName string, synthetic bool) *ReportHandler {
	return &ReportHandler{
		cache:      cache,
		config:     cfg,
		logger:     log,
		seriesName: seriesName,
		synthetic:  synthetic,
	}
}

// GetReport returns the latest cached aggregate summary
// GET /api/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := redis.SummaryKey(h.seriesName)

	var summary analytics.Summary

	if h.synthetic {
		err := h.cache.GetOrSet(ctx, key, &summary, redis.TTLShort, func() (interface{}, error) {
			series, err := h.generateSeries()
			if err != nil {
				return nil, err
			}
			return analytics.Compute(series, h.params())
		})
		if err != nil {
			h.logger.WithError(err).Error("On-demand report failed")
			respondError(w, http.StatusInternalServerError, "Report computation failed")
			return
		}
		respondJSON(w, http.StatusOK, summary)
		return
	}

	found, err := h.cache.Get(ctx, key, &summary)
	if err != nil {
		h.logger.WithError(err).Error("Report cache read failed")
		respondError(w, http.StatusInternalServerError, "Report cache read failed")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "Daily report not computed yet")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetPeriodicReport returns the latest cached per-year summary
// GET /api/report/periodic
func (h *ReportHandler) GetPeriodicReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := redis.PeriodicKey(h.seriesName, string(analytics.ResampleYearly))

	var periodic analytics.PeriodicSummary

	if h.synthetic {
		err := h.cache.GetOrSet(ctx, key, &periodic, redis.TTLShort, func() (interface{}, error) {
			series, err := h.generateSeries()
			if err != nil {
				return nil, err
			}
			return analytics.ComputePeriodic(series, h.params(), analytics.ResampleYearly)
		})
		if err != nil {
			h.logger.WithError(err).Error("On-demand periodic report failed")
			respondError(w, http.StatusInternalServerError, "Report computation failed")
			return
		}
		respondJSON(w, http.StatusOK, periodic)
		return
	}

	found, err := h.cache.Get(ctx, key, &periodic)
	if err != nil {
		h.logger.WithError(err).Error("Report cache read failed")
		respondError(w, http.StatusInternalServerError, "Report cache read failed")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "Daily report not computed yet")
		return
	}

	respondJSON(w, http.StatusOK, periodic)
}

func (h *ReportHandler) params() analytics.Params {
	return analytics.Params{
		InitialCapital:     h.config.Analytics.InitialCapital,
		RiskFreeRate:       h.config.Analytics.RiskFreeRate,
		TradingDaysPerYear: h.config.Analytics.TradingDaysPerYear,
		Convention:         pnl.Additive,
	}
}

func (h *ReportHandler) generateSeries() (pnl.Series, error) {
	startDate, err := time.Parse("2006-01-02", h.config.Generator.StartDate)
	if err != nil {
		return nil, err
	}

	return pnl.GenerateRandom(pnl.GeneratorConfig{
		NumDays:      h.config.Generator.NumDays,
		DailyMeanPct: h.config.Generator.DailyMeanPct,
		DailyStdPct:  h.config.Generator.DailyStdPct,
		StartDate:    startDate,
		Seed:         h.config.Generator.Seed,
	})
}
