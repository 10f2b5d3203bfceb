package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tearsheet/backend/internal/analytics"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/logger"
	"github.com/wonny/tearsheet/backend/pkg/redis"
)

// SeriesSource loads a named cumulative PnL series
type SeriesSource interface {
	GetSeries(ctx context.Context, name string, from, to time.Time) (pnl.Series, error)
}

// ReportJob recomputes the standing tearsheet once a day: the aggregate
// summary plus the per-year breakdown for the configured series, cached
// for the API to serve without recomputation.
// ⭐ SSOT: 일일 리포트 生成은 이 잡에서만
type ReportJob struct {
	source     SeriesSource // nil: fall back to the synthetic generator
	cache      *redis.Cache
	config     *config.Config
	logger     *logger.Logger
	seriesName string
}

// NewReportJob creates a new daily report job
func NewReportJob(source SeriesSource, cache *redis.Cache, cfg *config.Config, log *logger.Logger, seriesName string) *ReportJob {
	return &ReportJob{
		source:     source,
		cache:      cache,
		config:     cfg,
		logger:     log,
		seriesName: seriesName,
	}
}

// Name returns the job name
func (j *ReportJob) Name() string {
	return "daily_report"
}

// Schedule runs after the trading day, 17:30 daily
func (j *ReportJob) Schedule() string {
	return "0 30 17 * * *"
}

// Run loads the series, computes both summaries, and caches them
func (j *ReportJob) Run(ctx context.Context) error {
	series, err := j.loadSeries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load series: %w", err)
	}

	params := analytics.Params{
		InitialCapital:     j.config.Analytics.InitialCapital,
		RiskFreeRate:       j.config.Analytics.RiskFreeRate,
		TradingDaysPerYear: j.config.Analytics.TradingDaysPerYear,
		Convention:         pnl.Additive,
	}

	summary, err := analytics.Compute(series, params)
	if err != nil {
		return fmt.Errorf("aggregate summary failed: %w", err)
	}

	periodic, err := analytics.ComputePeriodic(series, params, analytics.ResampleYearly)
	if err != nil {
		return fmt.Errorf("periodic summary failed: %w", err)
	}

	if err := j.cache.Set(ctx, redis.SummaryKey(j.seriesName), summary, redis.TTLDaily); err != nil {
		j.logger.WithError(err).Warn("Failed to cache aggregate summary")
	}
	if err := j.cache.Set(ctx, redis.PeriodicKey(j.seriesName, string(analytics.ResampleYearly)), periodic, redis.TTLDaily); err != nil {
		j.logger.WithError(err).Warn("Failed to cache periodic summary")
	}

	j.logger.WithFields(map[string]interface{}{
		"series":       j.seriesName,
		"trading_days": summary.BacktestPeriod.TradingDays,
		"total_return": summary.Capital.TotalReturnPct,
		"sharpe":       summary.Performance.SharpeRatio,
		"max_drawdown": summary.Risk.MaxDrawdownPct,
		"years":        len(periodic.Periods),
	}).Info("Daily report computed")

	return nil
}

func (j *ReportJob) loadSeries(ctx context.Context) (pnl.Series, error) {
	if j.source != nil {
		return j.source.GetSeries(ctx, j.seriesName, time.Time{}, time.Time{})
	}

	startDate, err := time.Parse("2006-01-02", j.config.Generator.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid generator start date: %w", err)
	}

	return pnl.GenerateRandom(pnl.GeneratorConfig{
		NumDays:      j.config.Generator.NumDays,
		DailyMeanPct: j.config.Generator.DailyMeanPct,
		DailyStdPct:  j.config.Generator.DailyStdPct,
		StartDate:    startDate,
		Seed:         j.config.Generator.Seed,
	})
}
