package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/tearsheet/backend/internal/analytics"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
)

// SummaryHandler handles performance summary API endpoints
// ⭐ SSOT: 성과 요약 API 핸들러는 이 구조체에서만
type SummaryHandler struct {
	config *config.Config
	logger *logger.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(cfg *config.Config, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{
		config: cfg,
		logger: log,
	}
}

// SummaryRequest represents a summary computation request. Omitted
// parameters fall back to the configured defaults; risk_free_rate uses a
// pointer so an explicit 0 survives decoding.
type SummaryRequest struct {
	Series             pnl.Series `json:"series"`
	InitialCapital     *float64   `json:"initial_capital,omitempty"`
	RiskFreeRate       *float64   `json:"risk_free_rate,omitempty"`
	TradingDaysPerYear *int       `json:"trading_days_per_year,omitempty"`
	Convention         string     `json:"convention,omitempty"`
	ResamplePeriod     string     `json:"resample_period,omitempty"`
}

// params merges request overrides onto the configured defaults
func (req *SummaryRequest) params(cfg *config.Config) analytics.Params {
	p := analytics.Params{
		InitialCapital:     cfg.Analytics.InitialCapital,
		RiskFreeRate:       cfg.Analytics.RiskFreeRate,
		TradingDaysPerYear: cfg.Analytics.TradingDaysPerYear,
		Convention:         pnl.Additive,
	}

	if req.InitialCapital != nil {
		p.InitialCapital = *req.InitialCapital
	}
	if req.RiskFreeRate != nil {
		p.RiskFreeRate = *req.RiskFreeRate
	}
	if req.TradingDaysPerYear != nil {
		p.TradingDaysPerYear = *req.TradingDaysPerYear
	}
	if req.Convention != "" {
		p.Convention = pnl.ReturnConvention(req.Convention)
	}

	return p
}

// ComputeSummary computes the aggregate summary for a posted series
// POST /api/summary
func (h *SummaryHandler) ComputeSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := analytics.Compute(req.Series, req.params(h.config))
	if err != nil {
		h.respondComputeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// ComputePeriodic computes per-period summaries for a posted series
// POST /api/summary/periodic
func (h *SummaryHandler) ComputePeriodic(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := analytics.ComputePeriodic(
		req.Series,
		req.params(h.config),
		analytics.ResamplePeriod(req.ResamplePeriod),
	)
	if err != nil {
		h.respondComputeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// RandomSeries generates a synthetic cumulative PnL series
// GET /api/series/random?days=&mean=&std=&seed=&start=
func (h *SummaryHandler) RandomSeries(w http.ResponseWriter, r *http.Request) {
	genCfg := pnl.GeneratorConfig{
		NumDays:      h.config.Generator.NumDays,
		DailyMeanPct: h.config.Generator.DailyMeanPct,
		DailyStdPct:  h.config.Generator.DailyStdPct,
		Seed:         h.config.Generator.Seed,
	}

	startDate, err := time.Parse("2006-01-02", h.config.Generator.StartDate)
	if err != nil {
		h.logger.WithError(err).Error("Invalid configured generator start date")
		respondError(w, http.StatusInternalServerError, "Invalid generator configuration")
		return
	}
	genCfg.StartDate = startDate

	q := r.URL.Query()
	if v := q.Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'days' parameter")
			return
		}
		genCfg.NumDays = days
	}
	if v := q.Get("mean"); v != "" {
		mean, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'mean' parameter")
			return
		}
		genCfg.DailyMeanPct = mean
	}
	if v := q.Get("std"); v != "" {
		std, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'std' parameter")
			return
		}
		genCfg.DailyStdPct = std
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'seed' parameter")
			return
		}
		genCfg.Seed = seed
	}
	if v := q.Get("start"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'start' date (expected YYYY-MM-DD)")
			return
		}
		genCfg.StartDate = start
	}

	series, err := pnl.GenerateRandom(genCfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(series),
		"series": series,
	})
}

// respondComputeError maps engine errors to HTTP statuses: invalid input
// is the caller's fault, everything else is ours
func (h *SummaryHandler) respondComputeError(w http.ResponseWriter, err error) {
	if errors.Is(err, pnl.ErrEmptySeries) || errors.Is(err, pnl.ErrUnsortedSeries) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.WithError(err).Error("Summary computation failed")
	respondError(w, http.StatusUnprocessableEntity, err.Error())
}

// Helper functions

// respondJSON marshals before writing so an encoding failure can still
// report a 500 instead of a success status with a truncated body
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"response encoding failed"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
