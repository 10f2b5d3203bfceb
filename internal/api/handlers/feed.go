package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/tearsheet/backend/internal/analytics"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
)

const (
	// minFeedWindow is the number of points consumed before the first
	// push, so early summaries have enough samples for shape statistics
	minFeedWindow = 30

	feedWriteWait       = 10 * time.Second
	defaultFeedInterval = time.Second
	maxFeedInterval     = time.Minute
)

// FeedHandler streams a rolling summary over WebSocket: it walks a
// generated series forward one observation per tick and pushes the
// recomputed aggregate summary for the expanding window.
// ⭐ SSOT: 실시간 요약 피드는 이 핸들러에서만
type FeedHandler struct {
	config   *config.Config
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(cfg *config.Config, log *logger.Logger) *FeedHandler {
	return &FeedHandler{
		config: cfg,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Demo feed: no origin restrictions
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// FeedMessage is one pushed frame of the rolling feed
type FeedMessage struct {
	Sequence int                `json:"sequence"`
	AsOf     string             `json:"as_of"`
	Summary  *analytics.Summary `json:"summary"`
}

// Stream serves the rolling summary WebSocket
// GET /ws/summary?interval_ms=&days=&seed=
func (h *FeedHandler) Stream(w http.ResponseWriter, r *http.Request) {
	interval := defaultFeedInterval
	if v := r.URL.Query().Get("interval_ms"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 || time.Duration(ms)*time.Millisecond > maxFeedInterval {
			respondError(w, http.StatusBadRequest, "Invalid 'interval_ms' parameter")
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}

	genCfg := pnl.GeneratorConfig{
		NumDays:      h.config.Generator.NumDays,
		DailyMeanPct: h.config.Generator.DailyMeanPct,
		DailyStdPct:  h.config.Generator.DailyStdPct,
		Seed:         h.config.Generator.Seed,
	}
	if v := r.URL.Query().Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'days' parameter")
			return
		}
		genCfg.NumDays = days
	}
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'seed' parameter")
			return
		}
		genCfg.Seed = seed
	}

	startDate, err := time.Parse("2006-01-02", h.config.Generator.StartDate)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Invalid generator configuration")
		return
	}
	genCfg.StartDate = startDate

	series, err := pnl.GenerateRandom(genCfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithFields(map[string]interface{}{
		"remote":   r.RemoteAddr,
		"days":     len(series),
		"interval": interval,
	}).Info("Summary feed client connected")

	// Drain client frames so close messages are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	params := analytics.Params{
		InitialCapital:     h.config.Analytics.InitialCapital,
		RiskFreeRate:       h.config.Analytics.RiskFreeRate,
		TradingDaysPerYear: h.config.Analytics.TradingDaysPerYear,
		Convention:         pnl.Additive,
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	window := minFeedWindow
	if window > len(series) {
		window = 1
	}

	for seq := 0; window <= len(series); seq++ {
		summary, err := analytics.Compute(series[:window], params)
		if err != nil {
			h.logger.WithError(err).Error("Rolling summary computation failed")
			return
		}

		msg := FeedMessage{
			Sequence: seq,
			AsOf:     series[window-1].Date.Format("2006-01-02"),
			Summary:  summary,
		}

		conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.WithError(err).Debug("Summary feed client disconnected")
			return
		}

		window++
		if window > len(series) {
			break
		}

		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "series exhausted"))
}
