package indicators

// Bollinger calculates Bollinger Bands over closing values using the
// population standard deviation of each trailing window. %B uses a
// zero-width band guard resolving to 0. Nil when the series is shorter
// than the period.
func Bollinger(values []float64, period int, stdDevMul float64) []BollingerPoint {
	if period <= 0 || stdDevMul <= 0 || len(values) < period {
		return nil
	}

	points := make([]BollingerPoint, 0, len(values)-period+1)

	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		middle := mean(window)
		sd := stdDevPop(window)

		upper := middle + stdDevMul*sd
		lower := middle - stdDevMul*sd

		var percentB float64
		if width := upper - lower; width != 0 {
			percentB = (values[i] - lower) / width
		}

		points = append(points, BollingerPoint{
			UpperBand:  upper,
			MiddleBand: middle,
			LowerBand:  lower,
			PercentB:   percentB,
		})
	}

	return points
}
