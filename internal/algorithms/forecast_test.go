package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearForecast_IncreasingSeries(t *testing.T) {
	series := []float64{10, 20, 30, 40, 50, 60}

	result := LinearForecast(series, 3)

	require.Len(t, result.MonthlyData, 3)
	assert.Equal(t, "increasing", result.Trend)
	assert.InDelta(t, 70.0, result.MonthlyData[0].PredictedValue, 0.01)
	assert.InDelta(t, 90.0, result.MonthlyData[2].PredictedValue, 0.01)
	assert.Equal(t, result.MonthlyData[2].PredictedValue, result.PredictedValue)
	assert.Equal(t, 0.8, result.Confidence)

	first := result.MonthlyData[0]
	assert.InDelta(t, first.PredictedValue*0.9, first.LowerBound, 0.01)
	assert.InDelta(t, first.PredictedValue*1.1, first.UpperBound, 0.01)
}

func TestLinearForecast_DecreasingSeries(t *testing.T) {
	result := LinearForecast([]float64{9.5, 9.0, 8.5, 8.0}, 2)

	assert.Equal(t, "decreasing", result.Trend)
	assert.InDelta(t, 7.5, result.MonthlyData[0].PredictedValue, 0.01)
	assert.Equal(t, 0.7, result.Confidence)
}

func TestLinearForecast_FlatAndDegenerateSeries(t *testing.T) {
	flat := LinearForecast([]float64{5, 5, 5, 5}, 3)
	assert.Equal(t, "stable", flat.Trend)
	assert.InDelta(t, 5.0, flat.PredictedValue, 0.01)

	single := LinearForecast([]float64{42}, 2)
	assert.Equal(t, "stable", single.Trend)
	assert.InDelta(t, 42.0, single.PredictedValue, 0.01)
	assert.Equal(t, 0.5, single.Confidence)

	empty := LinearForecast(nil, 2)
	require.Len(t, empty.MonthlyData, 2)
	assert.InDelta(t, 0.0, empty.PredictedValue, 0.01)
}

func TestLinearForecast_ClampsHorizon(t *testing.T) {
	result := LinearForecast([]float64{1, 2, 3}, 0)
	assert.Len(t, result.MonthlyData, 1)
}

func TestConfidenceGrowsWithHistory(t *testing.T) {
	long := make([]float64, 12)
	for i := range long {
		long[i] = float64(i)
	}
	assert.Equal(t, 0.9, LinearForecast(long, 1).Confidence)
}
