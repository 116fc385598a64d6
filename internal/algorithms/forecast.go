package algorithms

// ForecastPoint is one projected month.
type ForecastPoint struct {
	Month          int     `json:"month"`
	PredictedValue float64 `json:"predicted_value"`
	LowerBound     float64 `json:"lower_bound"`
	UpperBound     float64 `json:"upper_bound"`
}

// ForecastResult is the projection over the requested horizon.
type ForecastResult struct {
	PredictedValue float64         `json:"predicted_value"`
	Confidence     float64         `json:"confidence"`
	MonthlyData    []ForecastPoint `json:"monthly_data"`
	Trend          string          `json:"trend"`
}

// LinearForecast fits a least-squares line to the historical series and
// projects it forward. Confidence degrades with shorter histories. With
// fewer than two points the series is treated as flat.
func LinearForecast(historical []float64, months int) ForecastResult {
	if months < 1 {
		months = 1
	}

	slope, intercept := fitLine(historical)
	n := len(historical)

	baseValue := intercept
	if n > 0 {
		baseValue = historical[n-1]
	}

	monthly := make([]ForecastPoint, 0, months)
	for i := 1; i <= months; i++ {
		x := float64(n - 1 + i)
		predicted := round2(intercept + slope*x)
		monthly = append(monthly, ForecastPoint{
			Month:          i,
			PredictedValue: predicted,
			LowerBound:     round2(predicted * 0.9),
			UpperBound:     round2(predicted * 1.1),
		})
	}

	trend := "stable"
	last := monthly[len(monthly)-1].PredictedValue
	switch {
	case last > baseValue:
		trend = "increasing"
	case last < baseValue:
		trend = "decreasing"
	}

	return ForecastResult{
		PredictedValue: last,
		Confidence:     confidenceFor(n),
		MonthlyData:    monthly,
		Trend:          trend,
	}
}

func fitLine(series []float64) (slope, intercept float64) {
	n := len(series)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return 0, series[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / fn
	}

	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept
}

func confidenceFor(points int) float64 {
	switch {
	case points >= 12:
		return 0.9
	case points >= 6:
		return 0.8
	case points >= 3:
		return 0.7
	default:
		return 0.5
	}
}
