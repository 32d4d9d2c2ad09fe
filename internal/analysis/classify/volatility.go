package classify

import (
	"math"

	"stock-analyzer/internal/models"
)

// VolatilityLevel is the discrete volatility tier.
type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityMedium VolatilityLevel = "medium"
	VolatilityHigh   VolatilityLevel = "high"
)

// VolatilityState is the volatility classification result.
type VolatilityState struct {
	StandardDeviation    float64         `json:"standardDeviation"`
	AnnualizedVolatility float64         `json:"annualizedVolatility"`
	CurrentLevel         VolatilityLevel `json:"currentLevel"`
}

// tradingDaysPerYear is the conventional annualization base for daily
// returns.
const tradingDaysPerYear = 252

const (
	volatilityHighThreshold   = 0.25
	volatilityMediumThreshold = 0.15
)

// Volatility classifies recent volatility from the log returns of the
// min(period, length) most recent closes: sample standard deviation,
// annualized by the square root of 252 trading days. Fewer than 2 bars
// yields zeroed low-tier defaults.
func Volatility(bars []models.PriceBar, period int) *VolatilityState {
	if len(bars) < 2 {
		return &VolatilityState{CurrentLevel: VolatilityLow}
	}

	closes := models.Closes(bars)
	if period > 0 && len(closes) > period {
		closes = closes[len(closes)-period:]
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] > 0 && closes[i] > 0 {
			returns = append(returns, math.Log(closes[i]/closes[i-1]))
		}
	}

	sd := sampleStdDev(returns)
	annualized := sd * math.Sqrt(tradingDaysPerYear)

	level := VolatilityLow
	switch {
	case annualized > volatilityHighThreshold:
		level = VolatilityHigh
	case annualized > volatilityMediumThreshold:
		level = VolatilityMedium
	}

	return &VolatilityState{
		StandardDeviation:    sd,
		AnnualizedVolatility: annualized,
		CurrentLevel:         level,
	}
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var m float64
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
