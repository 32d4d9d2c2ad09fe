package indicators

// RSI calculates the Relative Strength Index over closing values using
// Wilder smoothing. Values are in [0, 100]; a zero average loss maps to
// 100. Nil when the series is shorter than the period.
func RSI(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	n := len(values)
	gains := make([]float64, n-1)
	losses := make([]float64, n-1)

	for i := 1; i < n; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	// Seed with the mean of the first window of changes. At exactly
	// `period` bars only period-1 changes exist; the seed uses them all.
	seedLen := period
	if seedLen > len(gains) {
		seedLen = len(gains)
	}
	avgGain := mean(gains[:seedLen])
	avgLoss := mean(losses[:seedLen])

	result := make([]float64, 0, len(gains)-seedLen+1)
	result = append(result, rsiValue(avgGain, avgLoss))

	for i := seedLen; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		result = append(result, rsiValue(avgGain, avgLoss))
	}

	return result
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
