package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tearsheet/backend/internal/pnl"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seriesFromValues builds a weekday-agnostic daily series starting at the
// given date, one point per cumulative value
func seriesFromValues(start time.Time, values ...float64) pnl.Series {
	series := make(pnl.Series, len(values))
	for i, v := range values {
		series[i] = pnl.Point{Date: start.AddDate(0, 0, i), Value: v}
	}
	return series
}

func TestCompute_FiveStepScenario(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.02, 0.015, 0.03, 0.025)

	params := DefaultParams()
	params.RiskFreeRate = 0

	summary, err := Compute(series, params)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.BacktestPeriod.TradingDays)
	assert.InDelta(t, 0.02, summary.BacktestPeriod.Years, 1e-9) // 5/261 rounded
	assert.Equal(t, "2024-01-01", summary.BacktestPeriod.StartDate)
	assert.Equal(t, "2024-01-05", summary.BacktestPeriod.EndDate)

	assert.InDelta(t, 2.5, summary.Capital.TotalReturnPct, 1e-9)
	assert.InDelta(t, 100_000.0, summary.Capital.InitialCapital, 1e-9)
	assert.InDelta(t, 102_500.0, summary.Capital.FinalValue, 1e-9)
	assert.InDelta(t, 2_500.0, summary.Capital.TotalPnLAmount, 1e-9)

	// total / years = 0.025 * 261 / 5 = 1.305
	assert.InDelta(t, 130.5, summary.Performance.AnnualizedReturnPct, 1e-9)
	// sample stddev of steps = 0.009354..., * sqrt(261) * 100
	assert.InDelta(t, 15.11, summary.Performance.AnnualizedVolatilityPct, 0.01)
	// mean/stddev * sqrt(261) with rf=0
	assert.InDelta(t, 8.6355, summary.Performance.SharpeRatio, 0.001)

	assert.InDelta(t, -0.5, summary.Risk.MaxDrawdownPct, 1e-9)
	assert.InDelta(t, 60.0, summary.Risk.WinRatePct, 1e-9)

	assert.InDelta(t, 1.5, summary.DailyPnL.BestDayPct, 1e-9)
	assert.InDelta(t, -0.5, summary.DailyPnL.WorstDayPct, 1e-9)

	assert.InDelta(t, -0.3818, summary.Distribution.Skewness, 0.001)
	assert.InDelta(t, -2.898, summary.Distribution.Kurtosis, 0.001)
}

func TestCompute_TradingDaysEqualsLength(t *testing.T) {
	for _, n := range []int{1, 2, 7, 50} {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i) * 0.001
		}
		series := seriesFromValues(day(2024, 1, 1), values...)

		summary, err := Compute(series, DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, n, summary.BacktestPeriod.TradingDays)
	}
}

func TestCompute_AllZeroSeries(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0, 0, 0, 0, 0)

	summary, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	assert.Zero(t, summary.Capital.TotalReturnPct)
	assert.Zero(t, summary.Performance.AnnualizedVolatilityPct)
	assert.Zero(t, summary.Performance.SharpeRatio)
	assert.Zero(t, summary.Risk.MaxDrawdownPct)
	assert.Zero(t, summary.Risk.WinRatePct)
	assert.Zero(t, summary.Distribution.Skewness)
	assert.Zero(t, summary.Distribution.Kurtosis)
	assert.InDelta(t, 100_000.0, summary.Capital.FinalValue, 1e-9)
}

func TestCompute_MaxDrawdownZeroWhenNonDecreasing(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.01, 0.02, 0.05)

	summary, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	assert.Zero(t, summary.Risk.MaxDrawdownPct)
}

func TestCompute_WinRateHundredWhenAllStepsPositive(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.02, 0.03, 0.04)

	summary, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	assert.InDelta(t, 100.0, summary.Risk.WinRatePct, 1e-9)
}

func TestCompute_SinglePointDefaults(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01)

	summary, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.BacktestPeriod.TradingDays)
	assert.Zero(t, summary.Performance.AnnualizedVolatilityPct)
	assert.Zero(t, summary.Performance.SharpeRatio)
	assert.Zero(t, summary.Distribution.Skewness)
	assert.Zero(t, summary.Distribution.Kurtosis)
	assert.InDelta(t, 1.0, summary.DailyPnL.BestDayPct, 1e-9)
	assert.InDelta(t, 1.0, summary.DailyPnL.WorstDayPct, 1e-9)
}

func TestCompute_ConstantRiskFreeReturnSharpeDefault(t *testing.T) {
	params := DefaultParams()
	daily := params.RiskFreeRate / float64(params.TradingDaysPerYear)

	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i+1) * daily
	}
	series := seriesFromValues(day(2024, 1, 1), values...)

	summary, err := Compute(series, params)
	require.NoError(t, err)

	// excess returns are identically zero: zero-variance default, no panic
	assert.Zero(t, summary.Performance.SharpeRatio)
}

func TestCompute_Idempotent(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.02, 0.015, 0.03, 0.025)

	first, err := Compute(series, DefaultParams())
	require.NoError(t, err)
	second, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompute_CompoundingConvention(t *testing.T) {
	params := DefaultParams()
	params.Convention = pnl.Compounding
	params.RiskFreeRate = 0

	series := seriesFromValues(day(2024, 1, 1), 0.10, -0.01)

	summary, err := Compute(series, params)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, summary.Capital.TotalReturnPct, 1e-9)
	// wealth 1.10 -> 0.99 against peak 1.10: 0.99/1.10 - 1 = -10%
	assert.InDelta(t, -10.0, summary.Risk.MaxDrawdownPct, 1e-9)
	// first step is the first cumulative value
	assert.InDelta(t, 10.0, summary.DailyPnL.BestDayPct, 1e-9)
	// (0.99/1.10 - 1) * 100 = -10
	assert.InDelta(t, -10.0, summary.DailyPnL.WorstDayPct, 1e-9)
}

func TestCompute_InvalidInput(t *testing.T) {
	_, err := Compute(pnl.Series{}, DefaultParams())
	assert.ErrorIs(t, err, pnl.ErrEmptySeries)

	unsorted := pnl.Series{
		{Date: day(2024, 1, 2), Value: 0.01},
		{Date: day(2024, 1, 1), Value: 0.02},
	}
	_, err = Compute(unsorted, DefaultParams())
	assert.ErrorIs(t, err, pnl.ErrUnsortedSeries)

	params := DefaultParams()
	params.Convention = "geometric-ish"
	_, err = Compute(seriesFromValues(day(2024, 1, 1), 0.01), params)
	assert.Error(t, err)
}

func TestCompute_NegativeTradingDaysRejected(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.02, 0.015)

	// math.Sqrt of a negative calendar would poison volatility with NaN
	// and make the summary unmarshalable, so it must be rejected upfront
	params := DefaultParams()
	params.TradingDaysPerYear = -5
	summary, err := Compute(series, params)
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), "trading days per year")

	_, err = ComputePeriodic(series, params, ResampleYearly)
	assert.Error(t, err)
}

func TestCompute_CapitalValidation(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.02)

	// Zero means unset and falls back, negative is an error
	params := DefaultParams()
	params.InitialCapital = 0
	summary, err := Compute(series, params)
	require.NoError(t, err)
	assert.Equal(t, DefaultInitialCapital, summary.Capital.InitialCapital)

	params.InitialCapital = -100
	_, err = Compute(series, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial capital")
}

func TestCompute_JSONShape(t *testing.T) {
	series := seriesFromValues(day(2024, 1, 1), 0.01, 0.02)

	summary, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, group := range []string{
		"backtest_period", "capital", "performance",
		"risk", "daily_pnl", "distribution",
	} {
		assert.Contains(t, decoded, group)
	}
}
