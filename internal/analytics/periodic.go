package analytics

import (
	"fmt"
	"strconv"

	"github.com/wonny/tearsheet/backend/internal/pnl"
)

// PeriodSummary is one bucket's report, shaped like the aggregate output
type PeriodSummary struct {
	Period string `json:"period"` // e.g. "2017"
	Summary
}

// PeriodicSummary is the ordered, fully materialized sequence of
// per-bucket reports
type PeriodicSummary struct {
	ResamplePeriod ResamplePeriod  `json:"resample_period"`
	Periods        []PeriodSummary `json:"periods"`
}

// ComputePeriodic partitions the series into calendar buckets and applies
// the aggregate computation independently to each. Every bucket is a full
// re-derivation from its own statistics: its cumulative values are rebased
// to a zero baseline at the bucket start, so no running max, mean, or
// variance carries over from earlier buckets. Buckets with zero samples
// cannot occur: partitioning a validated series only yields non-empty runs.
func ComputePeriodic(series pnl.Series, params Params, resample ResamplePeriod) (*PeriodicSummary, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	if resample == "" {
		resample = ResampleYearly
	}
	if !resample.Valid() {
		return nil, fmt.Errorf("unsupported resample period %q", resample)
	}

	params = params.withDefaults()

	out := &PeriodicSummary{
		ResamplePeriod: resample,
		Periods:        make([]PeriodSummary, 0),
	}

	start := 0
	for i := 1; i <= len(series); i++ {
		if i < len(series) && series[i].Date.Year() == series[start].Date.Year() {
			continue
		}

		bucket := rebase(series[start:i], start, series, params.Convention)
		summary, err := Compute(bucket, params)
		if err != nil {
			return nil, err
		}

		out.Periods = append(out.Periods, PeriodSummary{
			Period:  strconv.Itoa(series[start].Date.Year()),
			Summary: *summary,
		})
		start = i
	}

	return out, nil
}

// rebase shifts a bucket's cumulative values to a zero baseline at the
// bucket start. The first bucket already starts from zero; later buckets
// subtract (or divide out, for compounding) the last value before them.
func rebase(bucket pnl.Series, start int, series pnl.Series, conv pnl.ReturnConvention) pnl.Series {
	if start == 0 {
		return bucket
	}

	prior := series[start-1].Value
	out := make(pnl.Series, len(bucket))
	for i, p := range bucket {
		v := p.Value - prior
		if conv == pnl.Compounding {
			v = (1+p.Value)/(1+prior) - 1
		}
		out[i] = pnl.Point{Date: p.Date, Value: v}
	}
	return out
}
