package indicators

import (
	"math"

	"stock-analyzer/internal/models"
)

// SMA calculates the simple moving average of values. The result has
// len(values)-period+1 entries, one per trailing window; nil when the
// series is shorter than the period.
func SMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	result := make([]float64, 0, len(values)-period+1)
	windowSum := sum(values[:period])
	result = append(result, windowSum/float64(period))

	for i := period; i < len(values); i++ {
		windowSum += values[i] - values[i-period]
		result = append(result, windowSum/float64(period))
	}

	return result
}

// EMA calculates the exponential moving average of values, seeded with
// the SMA of the first window. The result has len(values)-period+1
// entries; nil when the series is shorter than the period.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	result := make([]float64, 0, len(values)-period+1)
	multiplier := 2.0 / float64(period+1)

	ema := mean(values[:period])
	result = append(result, ema)

	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		result = append(result, ema)
	}

	return result
}

// MACD calculates the Moving Average Convergence Divergence over
// closing values. One point is emitted per slow-EMA point; the signal
// line and histogram stay 0 until enough MACD-line points exist to
// seed the signal EMA. Nil when the series is shorter than the slow
// period.
func MACD(values []float64, fast, slow, signal int) []MACDPoint {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return nil
	}
	if len(values) < slow {
		return nil
	}

	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	// Align the fast EMA with the slow EMA's first point.
	offset := slow - fast
	line := make([]float64, len(slowEMA))
	for i := range slowEMA {
		line[i] = fastEMA[i+offset] - slowEMA[i]
	}

	signalEMA := EMA(line, signal)

	points := make([]MACDPoint, len(line))
	for i, v := range line {
		points[i] = MACDPoint{MACDLine: v}
		if signalEMA != nil && i >= signal-1 {
			s := signalEMA[i-signal+1]
			points[i].SignalLine = s
			points[i].Histogram = v - s
		}
	}

	return points
}

// ADX calculates the Average Directional Index. True range and
// directional movement are computed bar over bar, then each is smoothed
// with a trailing SMA of the period (not Wilder smoothing); DX is
// smoothed the same way to produce ADX. A zero DI sum resolves to a DX
// of 0 rather than NaN. Nil when the chain yields no values.
func ADX(bars []models.PriceBar, period int) []float64 {
	if period <= 0 || len(bars) < period {
		return nil
	}

	n := len(bars)
	tr := make([]float64, n-1)
	plusDM := make([]float64, n-1)
	minusDM := make([]float64, n-1)

	for i := 1; i < n; i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low

		if upMove > downMove && upMove > 0 {
			plusDM[i-1] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i-1] = downMove
		}
		tr[i-1] = trueRange(bars[i], bars[i-1])
	}

	smoothTR := SMA(tr, period)
	smoothPlus := SMA(plusDM, period)
	smoothMinus := SMA(minusDM, period)
	if smoothTR == nil {
		return nil
	}

	dx := make([]float64, len(smoothTR))
	for i := range smoothTR {
		var plusDI, minusDI float64
		if smoothTR[i] != 0 {
			plusDI = 100 * smoothPlus[i] / smoothTR[i]
			minusDI = 100 * smoothMinus[i] / smoothTR[i]
		}
		diSum := plusDI + minusDI
		if diSum != 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / diSum
		}
	}

	return SMA(dx, period)
}
