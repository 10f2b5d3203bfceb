package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/backend/internal/data/repos"
	"github.com/wonny/tearsheet/backend/internal/pnl"
	"github.com/wonny/tearsheet/backend/pkg/config"
	"github.com/wonny/tearsheet/backend/pkg/database"
	"github.com/wonny/tearsheet/backend/pkg/logger"
)

// seriesFlags holds the flags shared by the commands that need an input
// series: synthetic generator knobs plus the optional ledger source
type seriesFlags struct {
	days   int
	mean   float64
	std    float64
	seed   int64
	start  string
	series string
	from   string
	to     string
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.days, "days", 0, "생성할 거래일 수 (default: GEN_NUM_DAYS)")
	cmd.Flags().Float64Var(&f.mean, "mean", 0, "일별 수익률 평균 %% (default: GEN_DAILY_MEAN_PCT)")
	cmd.Flags().Float64Var(&f.std, "std", 0, "일별 수익률 표준편차 %% (default: GEN_DAILY_STD_PCT)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "난수 시드 (default: GEN_SEED)")
	cmd.Flags().StringVar(&f.start, "start", "", "시작일 YYYY-MM-DD (default: GEN_START_DATE)")
	cmd.Flags().StringVar(&f.series, "series", "", "원장 시리즈 이름 (설정 시 DB에서 로드)")
	cmd.Flags().StringVar(&f.from, "from", "", "원장 조회 시작일 YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "원장 조회 종료일 YYYY-MM-DD")
}

// generatorConfig merges flag overrides onto the configured defaults
func (f *seriesFlags) generatorConfig(cmd *cobra.Command, cfg *config.Config) (pnl.GeneratorConfig, error) {
	genCfg := pnl.GeneratorConfig{
		NumDays:      cfg.Generator.NumDays,
		DailyMeanPct: cfg.Generator.DailyMeanPct,
		DailyStdPct:  cfg.Generator.DailyStdPct,
		Seed:         cfg.Generator.Seed,
	}

	startStr := cfg.Generator.StartDate
	if cmd.Flags().Changed("days") {
		genCfg.NumDays = f.days
	}
	if cmd.Flags().Changed("mean") {
		genCfg.DailyMeanPct = f.mean
	}
	if cmd.Flags().Changed("std") {
		genCfg.DailyStdPct = f.std
	}
	if cmd.Flags().Changed("seed") {
		genCfg.Seed = f.seed
	}
	if f.start != "" {
		startStr = f.start
	}

	startDate, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return pnl.GeneratorConfig{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}
	genCfg.StartDate = startDate

	return genCfg, nil
}

// resolve produces the input series: from the ledger database when
// --series is set, from the synthetic generator otherwise. The returned
// cleanup must be called when the series is no longer needed.
func (f *seriesFlags) resolve(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (pnl.Series, func(), error) {
	noop := func() {}

	if f.series == "" {
		genCfg, err := f.generatorConfig(cmd, cfg)
		if err != nil {
			return nil, noop, err
		}

		series, err := pnl.GenerateRandom(genCfg)
		if err != nil {
			return nil, noop, err
		}

		return series, noop, nil
	}

	var from, to time.Time
	var err error
	if f.from != "" {
		from, err = time.Parse("2006-01-02", f.from)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if f.to != "" {
		to, err = time.Parse("2006-01-02", f.to)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid --to date: %w", err)
		}
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("connect to database: %w", err)
	}

	repo := repos.NewSeriesRepository(db.Pool)
	series, err := repo.GetSeries(ctx, f.series, from, to)
	if err != nil {
		db.Close()
		return nil, noop, err
	}

	log.WithFields(map[string]interface{}{
		"series": f.series,
		"points": len(series),
	}).Info("Loaded series from ledger")

	return series, func() { db.Close() }, nil
}
