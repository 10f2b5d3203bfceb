package pnl

import (
	"fmt"
	"math/rand"
	"time"
)

// GeneratorConfig configures the synthetic cumulative PnL generator
type GeneratorConfig struct {
	NumDays      int
	DailyMeanPct float64 // daily return mean, in percent (0.5 => +0.5%/day)
	DailyStdPct  float64 // daily return stddev, in percent
	StartDate    time.Time
	Seed         int64 // 0 = time-based seed (non-deterministic)
}

// GenerateRandom produces a random cumulative PnL series: normally
// distributed daily percentage returns, cumulative-summed over a
// business-day (Mon-Fri) index. Deterministic for a fixed non-zero seed.
func GenerateRandom(cfg GeneratorConfig) (Series, error) {
	if cfg.NumDays <= 0 {
		return nil, fmt.Errorf("generator: NumDays must be positive, got %d", cfg.NumDays)
	}
	if cfg.DailyStdPct < 0 {
		return nil, fmt.Errorf("generator: DailyStdPct must not be negative, got %f", cfg.DailyStdPct)
	}
	if cfg.StartDate.IsZero() {
		return nil, fmt.Errorf("generator: StartDate is required")
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	series := make(Series, 0, cfg.NumDays)
	date := rollToBusinessDay(cfg.StartDate)
	cumulative := 0.0

	for i := 0; i < cfg.NumDays; i++ {
		// Daily percentage return, converted to a fraction
		daily := (cfg.DailyMeanPct + cfg.DailyStdPct*rng.NormFloat64()) / 100.0
		cumulative += daily

		series = append(series, Point{Date: date, Value: cumulative})
		date = nextBusinessDay(date)
	}

	return series, nil
}

// rollToBusinessDay moves a weekend date forward to the next Monday
func rollToBusinessDay(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// nextBusinessDay returns the next weekday after t
func nextBusinessDay(t time.Time) time.Time {
	t = t.AddDate(0, 0, 1)
	return rollToBusinessDay(t)
}
