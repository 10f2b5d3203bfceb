package analytics

import (
	"github.com/wonny/tearsheet/backend/internal/pnl"
)

// Canonical defaults. Trading-days-per-year follows the 261 business-day
// calendar the generator produces.
const (
	DefaultInitialCapital     = 100_000.0
	DefaultRiskFreeRate       = 0.02
	DefaultTradingDaysPerYear = 261
)

// ResamplePeriod identifies the bucket granularity for periodic summaries
type ResamplePeriod string

const (
	// ResampleYearly partitions the series into calendar-year buckets
	ResampleYearly ResamplePeriod = "yearly"
)

// Valid reports whether the resample period is supported
func (p ResamplePeriod) Valid() bool {
	return p == ResampleYearly
}

// Params holds the scalar inputs of a summary computation.
// ⭐ SSOT: 계산 정책은 전부 여기서 주입. No module-level mutable state,
// so different conventions can coexist side by side.
type Params struct {
	InitialCapital     float64 // 0 selects the default; zero capital itself is not a supported input
	RiskFreeRate       float64 // annual, as a fraction (0.02 == 2%)
	TradingDaysPerYear int
	Convention         pnl.ReturnConvention
}

// DefaultParams returns the canonical parameter set
func DefaultParams() Params {
	return Params{
		InitialCapital:     DefaultInitialCapital,
		RiskFreeRate:       DefaultRiskFreeRate,
		TradingDaysPerYear: DefaultTradingDaysPerYear,
		Convention:         pnl.Additive,
	}
}

// withDefaults fills unset fields. Zero InitialCapital and zero
// TradingDaysPerYear mean "use the default"; negative values pass
// through and fail validation in Compute. RiskFreeRate is left alone:
// zero is a legitimate rate, not an unset marker.
func (p Params) withDefaults() Params {
	if p.InitialCapital == 0 {
		p.InitialCapital = DefaultInitialCapital
	}
	if p.TradingDaysPerYear == 0 {
		p.TradingDaysPerYear = DefaultTradingDaysPerYear
	}
	if p.Convention == "" {
		p.Convention = pnl.Additive
	}
	return p
}
