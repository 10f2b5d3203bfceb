package analytics

import (
	"fmt"
	"math"

	"github.com/wonny/tearsheet/backend/internal/pnl"
)

// Summary is the aggregate performance report for one PnL series.
// ⭐ SSOT: 요약 결과 스키마는 여기서만 정의
// Immutable after construction; all fields pre-rounded for presentation
// (percent and money 2dp, ratio/shape 4dp).
type Summary struct {
	BacktestPeriod BacktestPeriod `json:"backtest_period"`
	Capital        Capital        `json:"capital"`
	Performance    Performance    `json:"performance"`
	Risk           Risk           `json:"risk"`
	DailyPnL       DailyPnL       `json:"daily_pnl"`
	Distribution   Distribution   `json:"distribution"`
}

// BacktestPeriod describes the span of the series
type BacktestPeriod struct {
	TradingDays int     `json:"trading_days"`
	Years       float64 `json:"years"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// Capital maps the percentage return onto a money amount
type Capital struct {
	InitialCapital float64 `json:"initial_capital"`
	FinalValue     float64 `json:"final_value"`
	TotalPnLAmount float64 `json:"total_pnl_amount"`
	TotalReturnPct float64 `json:"total_return_pct"`
}

// Performance holds the annualized return/risk figures
type Performance struct {
	AnnualizedReturnPct     float64 `json:"annualized_return_pct"`
	AnnualizedVolatilityPct float64 `json:"annualized_volatility_pct"`
	SharpeRatio             float64 `json:"sharpe_ratio"`
}

// Risk holds drawdown and hit-rate figures
type Risk struct {
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	WinRatePct     float64 `json:"win_rate_pct"`
}

// DailyPnL holds the single-step extremes
type DailyPnL struct {
	BestDayPct  float64 `json:"best_day_pct"`
	WorstDayPct float64 `json:"worst_day_pct"`
}

// Distribution holds the shape statistics of the step-return distribution
type Distribution struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess (Fisher) convention
}

// Compute builds the aggregate summary for a cumulative PnL series.
// Pure: no side effects, no shared state; safe to call concurrently.
// Degenerate statistics (zero variance, too few samples) report 0
// instead of failing.
func Compute(series pnl.Series, params Params) (*Summary, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	params = params.withDefaults()
	if !params.Convention.Valid() {
		return nil, fmt.Errorf("invalid return convention %q", params.Convention)
	}
	// Negative values survive withDefaults (only 0 means unset) and
	// would turn math.Sqrt and the money columns into NaN garbage.
	if params.TradingDaysPerYear <= 0 {
		return nil, fmt.Errorf("trading days per year must be positive, got %d", params.TradingDaysPerYear)
	}
	if params.InitialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %v", params.InitialCapital)
	}

	steps := series.StepReturns(params.Convention)
	days, years := series.Span(params.TradingDaysPerYear)
	sqrtDays := math.Sqrt(float64(params.TradingDaysPerYear))

	// Total return is the last cumulative value: the series starts from
	// a zero baseline under both conventions.
	totalReturn := series[len(series)-1].Value

	annualized := annualizedReturn(totalReturn, years, params.Convention)

	volatility := sampleStdDev(steps) * sqrtDays

	dailyRF := params.RiskFreeRate / float64(params.TradingDaysPerYear)
	excess := make([]float64, len(steps))
	for i, r := range steps {
		excess[i] = r - dailyRF
	}
	sharpe := 0.0
	if sd := sampleStdDev(excess); sd > 0 {
		sharpe = mean(excess) / sd * sqrtDays
	}

	wins := 0
	best, worst := steps[0], steps[0]
	for _, r := range steps {
		if r > 0 {
			wins++
		}
		if r > best {
			best = r
		}
		if r < worst {
			worst = r
		}
	}

	finalValue := params.InitialCapital * (1 + totalReturn)

	return &Summary{
		BacktestPeriod: BacktestPeriod{
			TradingDays: days,
			Years:       round2(years),
			StartDate:   series.Start().Format("2006-01-02"),
			EndDate:     series.End().Format("2006-01-02"),
		},
		Capital: Capital{
			InitialCapital: params.InitialCapital,
			FinalValue:     round2(finalValue),
			TotalPnLAmount: round2(finalValue - params.InitialCapital),
			TotalReturnPct: round2(totalReturn * 100),
		},
		Performance: Performance{
			AnnualizedReturnPct:     round2(annualized * 100),
			AnnualizedVolatilityPct: round2(volatility * 100),
			SharpeRatio:             round4(sharpe),
		},
		Risk: Risk{
			MaxDrawdownPct: round2(maxDrawdown(series, params.Convention) * 100),
			WinRatePct:     round2(float64(wins) / float64(days) * 100),
		},
		DailyPnL: DailyPnL{
			BestDayPct:  round2(best * 100),
			WorstDayPct: round2(worst * 100),
		},
		Distribution: Distribution{
			Skewness: round4(skewness(steps)),
			Kurtosis: round4(exKurtosis(steps)),
		},
	}, nil
}

// annualizedReturn scales the total return to a yearly figure: simple
// division for additive percentage points, geometric for compounding.
func annualizedReturn(total, years float64, conv pnl.ReturnConvention) float64 {
	if years <= 0 {
		return 0
	}

	if conv == pnl.Compounding {
		if 1+total <= 0 {
			// total loss and beyond: geometric annualization is undefined
			return -1
		}
		return math.Pow(1+total, 1/years) - 1
	}

	return total / years
}
