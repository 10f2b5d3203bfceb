package pnl

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Input validation errors (fatal, no partial results)
var (
	ErrEmptySeries    = errors.New("pnl series is empty")
	ErrUnsortedSeries = errors.New("pnl series timestamps must be unique and strictly increasing")
)

// ReturnConvention selects how per-step returns are derived from the
// cumulative series. The two flavors that exist in the wild diverge on
// annualization math, so the choice is an explicit parameter instead of
// a buried constant.
type ReturnConvention string

const (
	// Additive differences cumulative values directly (percentage-point
	// differencing). Canonical default.
	Additive ReturnConvention = "additive"

	// Compounding derives ratio returns: (1+v[i])/(1+v[i-1]) - 1.
	Compounding ReturnConvention = "compounding"
)

// Valid reports whether the convention is one of the supported values
func (c ReturnConvention) Valid() bool {
	return c == Additive || c == Compounding
}

// Point is one observation of the cumulative PnL series.
// Value is the cumulative return since inception as a decimal fraction
// (0.025 == +2.5%).
type Point struct {
	Date  time.Time
	Value float64
}

type pointJSON struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MarshalJSON renders the date as YYYY-MM-DD
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{
		Date:  p.Date.Format("2006-01-02"),
		Value: p.Value,
	})
}

// UnmarshalJSON accepts YYYY-MM-DD dates
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw pointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", raw.Date)
	if err != nil {
		return fmt.Errorf("invalid point date %q: %w", raw.Date, err)
	}

	p.Date = date
	p.Value = raw.Value
	return nil
}

// Series is a time-ordered cumulative PnL series.
// 읽기 전용 입력: 엔진은 절대 변경하지 않음
type Series []Point

// Validate checks the series invariants: non-empty, timestamps unique
// and strictly increasing
func (s Series) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}

	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(s[i-1].Date) {
			return fmt.Errorf("%w: %s followed by %s",
				ErrUnsortedSeries,
				s[i-1].Date.Format("2006-01-02"),
				s[i].Date.Format("2006-01-02"))
		}
	}

	return nil
}

// StepReturns derives the per-step return series. Index 0 is the first
// cumulative value itself (the series starts from a zero baseline); for
// i>0 the step follows the selected convention.
func (s Series) StepReturns(conv ReturnConvention) []float64 {
	steps := make([]float64, len(s))
	for i, p := range s {
		if i == 0 {
			steps[i] = p.Value
			continue
		}

		prev := s[i-1].Value
		switch conv {
		case Compounding:
			steps[i] = (1+p.Value)/(1+prev) - 1
		default:
			steps[i] = p.Value - prev
		}
	}
	return steps
}

// Span returns the series length in trading days and in fractional years
func (s Series) Span(tradingDaysPerYear int) (days int, years float64) {
	days = len(s)
	if tradingDaysPerYear > 0 {
		years = float64(days) / float64(tradingDaysPerYear)
	}
	return days, years
}

// Start returns the first observation date
func (s Series) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// End returns the last observation date
func (s Series) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}
