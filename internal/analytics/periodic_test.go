package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tearsheet/backend/internal/pnl"
)

func twoYearSeries() pnl.Series {
	return pnl.Series{
		{Date: day(2023, 12, 27), Value: 0.01},
		{Date: day(2023, 12, 28), Value: 0.02},
		{Date: day(2023, 12, 29), Value: 0.015},
		{Date: day(2024, 1, 2), Value: 0.03},
		{Date: day(2024, 1, 3), Value: 0.025},
	}
}

func TestComputePeriodic_YearlyBuckets(t *testing.T) {
	params := DefaultParams()
	params.RiskFreeRate = 0

	result, err := ComputePeriodic(twoYearSeries(), params, ResampleYearly)
	require.NoError(t, err)

	assert.Equal(t, ResampleYearly, result.ResamplePeriod)
	require.Len(t, result.Periods, 2)

	first, second := result.Periods[0], result.Periods[1]

	assert.Equal(t, "2023", first.Period)
	assert.Equal(t, 3, first.BacktestPeriod.TradingDays)
	assert.InDelta(t, 1.5, first.Capital.TotalReturnPct, 1e-9)
	assert.Equal(t, "2023-12-27", first.BacktestPeriod.StartDate)
	assert.Equal(t, "2023-12-29", first.BacktestPeriod.EndDate)

	// 2024 is rebased against the 2023 close (0.015): cumulative values
	// become [0.015, 0.01]
	assert.Equal(t, "2024", second.Period)
	assert.Equal(t, 2, second.BacktestPeriod.TradingDays)
	assert.InDelta(t, 1.0, second.Capital.TotalReturnPct, 1e-9)
	assert.InDelta(t, 1.5, second.DailyPnL.BestDayPct, 1e-9)
	assert.InDelta(t, -0.5, second.DailyPnL.WorstDayPct, 1e-9)
	assert.InDelta(t, 50.0, second.Risk.WinRatePct, 1e-9)
}

func TestComputePeriodic_DayCountPartition(t *testing.T) {
	series, err := pnl.GenerateRandom(pnl.GeneratorConfig{
		NumDays:      600,
		DailyMeanPct: 0.5,
		DailyStdPct:  4.0,
		StartDate:    day(2015, 1, 1),
		Seed:         43,
	})
	require.NoError(t, err)

	aggregate, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	periodic, err := ComputePeriodic(series, DefaultParams(), ResampleYearly)
	require.NoError(t, err)

	total := 0
	prev := ""
	for _, p := range periodic.Periods {
		total += p.BacktestPeriod.TradingDays
		assert.Greater(t, p.Period, prev, "periods must be chronological")
		prev = p.Period
	}

	assert.Equal(t, aggregate.BacktestPeriod.TradingDays, total)
}

func TestComputePeriodic_SingleSampleBucket(t *testing.T) {
	series := pnl.Series{
		{Date: day(2023, 12, 29), Value: 0.01},
		{Date: day(2024, 1, 2), Value: 0.02},
	}

	result, err := ComputePeriodic(series, DefaultParams(), ResampleYearly)
	require.NoError(t, err)
	require.Len(t, result.Periods, 2)

	for _, p := range result.Periods {
		assert.Equal(t, 1, p.BacktestPeriod.TradingDays)
		assert.Zero(t, p.Distribution.Skewness)
		assert.Zero(t, p.Distribution.Kurtosis)
		assert.Zero(t, p.Performance.SharpeRatio)
	}
}

func TestComputePeriodic_CompoundingRebase(t *testing.T) {
	params := DefaultParams()
	params.Convention = pnl.Compounding

	series := pnl.Series{
		{Date: day(2023, 6, 1), Value: 0.10},
		{Date: day(2024, 6, 1), Value: 0.21},
	}

	result, err := ComputePeriodic(series, params, ResampleYearly)
	require.NoError(t, err)
	require.Len(t, result.Periods, 2)

	// (1.21 / 1.10) - 1 = 10%
	assert.InDelta(t, 10.0, result.Periods[0].Capital.TotalReturnPct, 1e-9)
	assert.InDelta(t, 10.0, result.Periods[1].Capital.TotalReturnPct, 1e-9)
}

func TestComputePeriodic_DefaultsToYearly(t *testing.T) {
	result, err := ComputePeriodic(twoYearSeries(), DefaultParams(), "")
	require.NoError(t, err)
	assert.Equal(t, ResampleYearly, result.ResamplePeriod)
}

func TestComputePeriodic_Errors(t *testing.T) {
	_, err := ComputePeriodic(pnl.Series{}, DefaultParams(), ResampleYearly)
	assert.ErrorIs(t, err, pnl.ErrEmptySeries)

	_, err = ComputePeriodic(twoYearSeries(), DefaultParams(), "monthly")
	assert.Error(t, err)
}
