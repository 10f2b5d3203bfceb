package pnl

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeries_Validate(t *testing.T) {
	tests := []struct {
		name    string
		series  Series
		wantErr error
	}{
		{
			name:    "empty series",
			series:  Series{},
			wantErr: ErrEmptySeries,
		},
		{
			name:    "nil series",
			series:  nil,
			wantErr: ErrEmptySeries,
		},
		{
			name: "single point",
			series: Series{
				{Date: day(2024, 1, 2), Value: 0.01},
			},
			wantErr: nil,
		},
		{
			name: "strictly increasing",
			series: Series{
				{Date: day(2024, 1, 2), Value: 0.01},
				{Date: day(2024, 1, 3), Value: 0.02},
				{Date: day(2024, 1, 4), Value: 0.015},
			},
			wantErr: nil,
		},
		{
			name: "duplicate timestamp",
			series: Series{
				{Date: day(2024, 1, 2), Value: 0.01},
				{Date: day(2024, 1, 2), Value: 0.02},
			},
			wantErr: ErrUnsortedSeries,
		},
		{
			name: "out of order",
			series: Series{
				{Date: day(2024, 1, 3), Value: 0.01},
				{Date: day(2024, 1, 2), Value: 0.02},
			},
			wantErr: ErrUnsortedSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSeries_StepReturns_Additive(t *testing.T) {
	series := Series{
		{Date: day(2024, 1, 2), Value: 0.01},
		{Date: day(2024, 1, 3), Value: 0.02},
		{Date: day(2024, 1, 4), Value: 0.015},
		{Date: day(2024, 1, 5), Value: 0.03},
		{Date: day(2024, 1, 8), Value: 0.025},
	}

	steps := series.StepReturns(Additive)

	require.Len(t, steps, len(series))

	// Index 0 is the first cumulative value itself (zero baseline)
	assert.InDelta(t, 0.01, steps[0], 1e-12)
	assert.InDelta(t, 0.01, steps[1], 1e-12)
	assert.InDelta(t, -0.005, steps[2], 1e-12)
	assert.InDelta(t, 0.015, steps[3], 1e-12)
	assert.InDelta(t, -0.005, steps[4], 1e-12)
}

func TestSeries_StepReturns_Compounding(t *testing.T) {
	series := Series{
		{Date: day(2024, 1, 2), Value: 0.10},
		{Date: day(2024, 1, 3), Value: 0.21},
	}

	steps := series.StepReturns(Compounding)

	require.Len(t, steps, 2)
	assert.InDelta(t, 0.10, steps[0], 1e-12)
	// (1.21 / 1.10) - 1 = 0.1
	assert.InDelta(t, 0.10, steps[1], 1e-12)
}

func TestSeries_StepReturns_ProductRecoversCumulative(t *testing.T) {
	series := Series{
		{Date: day(2024, 1, 2), Value: 0.02},
		{Date: day(2024, 1, 3), Value: -0.01},
		{Date: day(2024, 1, 4), Value: 0.05},
	}

	steps := series.StepReturns(Compounding)

	product := 1.0
	for _, r := range steps {
		product *= 1 + r
	}

	assert.InDelta(t, 1+series[len(series)-1].Value, product, 1e-12)
}

func TestSeries_Span(t *testing.T) {
	series := Series{
		{Date: day(2024, 1, 2), Value: 0.01},
		{Date: day(2024, 1, 3), Value: 0.02},
		{Date: day(2024, 1, 4), Value: 0.03},
		{Date: day(2024, 1, 5), Value: 0.04},
		{Date: day(2024, 1, 8), Value: 0.05},
	}

	days, years := series.Span(261)

	assert.Equal(t, 5, days)
	assert.InDelta(t, 5.0/261.0, years, 1e-12)
}

func TestSeries_StartEnd(t *testing.T) {
	series := Series{
		{Date: day(2024, 1, 2), Value: 0.01},
		{Date: day(2024, 3, 4), Value: 0.02},
	}

	assert.Equal(t, day(2024, 1, 2), series.Start())
	assert.Equal(t, day(2024, 3, 4), series.End())

	var empty Series
	assert.True(t, empty.Start().IsZero())
	assert.True(t, empty.End().IsZero())
}

func TestPoint_JSON(t *testing.T) {
	p := Point{Date: day(2024, 1, 2), Value: 0.0125}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-02","value":0.0125}`, string(data))

	var decoded Point
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Date.Equal(p.Date))
	assert.Equal(t, p.Value, decoded.Value)
}

func TestPoint_UnmarshalRejectsBadDate(t *testing.T) {
	var p Point
	err := json.Unmarshal([]byte(`{"date":"01/02/2024","value":0.01}`), &p)
	assert.Error(t, err)
}
