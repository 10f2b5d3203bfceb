package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/tearsheet/backend/internal/pnl"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// sampleStdDev is the N-1 standard deviation; 0 below two samples
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// skewness is the bias-corrected sample skewness (pandas convention):
//
//	n / ((n-1)(n-2)) * Σ((x-mean)/s)³
//
// Defaults to 0 below three samples or at zero variance.
func skewness(xs []float64) float64 {
	if len(xs) < 3 {
		return 0
	}

	m := stat.Mean(xs, nil)
	s := stat.StdDev(xs, nil)
	if s == 0 {
		return 0
	}

	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		z := (x - m) / s
		sum += z * z * z
	}

	return n / ((n - 1) * (n - 2)) * sum
}

// exKurtosis is the bias-corrected excess kurtosis (pandas convention,
// normal distribution => 0):
//
//	n(n+1) / ((n-1)(n-2)(n-3)) * Σ((x-mean)/s)⁴  −  3(n-1)² / ((n-2)(n-3))
//
// Defaults to 0 below four samples or at zero variance.
func exKurtosis(xs []float64) float64 {
	if len(xs) < 4 {
		return 0
	}

	m := stat.Mean(xs, nil)
	s := stat.StdDev(xs, nil)
	if s == 0 {
		return 0
	}

	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		z := (x - m) / s
		sum += z * z * z * z
	}

	return n*(n+1)/((n-1)*(n-2)*(n-3))*sum - 3*(n-1)*(n-1)/((n-2)*(n-3))
}

// maxDrawdown is the most negative decline from the running peak of the
// cumulative series, as a fraction; always <= 0 and exactly 0 when the
// series is non-decreasing. The running peak starts at the first
// observation, not the implicit zero baseline.
func maxDrawdown(series pnl.Series, conv pnl.ReturnConvention) float64 {
	if len(series) == 0 {
		return 0
	}

	worst := 0.0

	switch conv {
	case pnl.Compounding:
		peak := 1 + series[0].Value
		for _, p := range series {
			wealth := 1 + p.Value
			if wealth > peak {
				peak = wealth
			}
			if dd := wealth/peak - 1; dd < worst {
				worst = dd
			}
		}
	default:
		peak := series[0].Value
		for _, p := range series {
			if p.Value > peak {
				peak = p.Value
			}
			if dd := p.Value - peak; dd < worst {
				worst = dd
			}
		}
	}

	return worst
}

// Rounding happens only at the presentation boundary; internal math stays
// full precision.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
