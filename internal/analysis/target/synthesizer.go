// Package target synthesizes a price target from indicator, level and
// trend context.
package target

import (
	"stock-analyzer/internal/analysis/classify"
	"stock-analyzer/internal/analysis/indicators"
)

// Method labels for the synthesized target.
const (
	MethodWeightedAverage = "weighted_average"
	MethodCurrentPrice    = "current_price"
)

// Component is one weighted candidate that contributed to the target.
type Component struct {
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
	Source string  `json:"source"`
}

// PriceTarget is the synthesized price estimate with its range and the
// candidate breakdown.
type PriceTarget struct {
	Price     float64     `json:"price"`
	Method    string      `json:"method"`
	RangeLow  float64     `json:"rangeLow"`
	RangeHigh float64     `json:"rangeHigh"`
	Breakdown []Component `json:"breakdown"`
}

// Weights holds the candidate weights and adjustment factors of the
// synthesizer.
type Weights struct {
	BollingerUpper  float64
	BollingerMiddle float64
	FibonacciLevel  float64
	NearestLevel    float64
	MediumSMA       float64

	// SMAUpFactor and SMADownFactor scale the medium SMA candidate in
	// up and down trends respectively.
	SMAUpFactor   float64
	SMADownFactor float64

	// RangeVolFactor scales annualized volatility into the target
	// range; RangeFallback is the fraction used when volatility is
	// unavailable.
	RangeVolFactor float64
	RangeFallback  float64
}

// DefaultWeights returns the standard synthesizer weights.
func DefaultWeights() Weights {
	return Weights{
		BollingerUpper:  0.15,
		BollingerMiddle: 0.10,
		FibonacciLevel:  0.20,
		NearestLevel:    0.15,
		MediumSMA:       0.15,
		SMAUpFactor:     1.05,
		SMADownFactor:   0.95,
		RangeVolFactor:  0.5,
		RangeFallback:   0.1,
	}
}

// Synthesize combines the available signals into one weighted price
// target with default weights.
func Synthesize(
	ind *indicators.Set,
	fib *indicators.FibonacciLevels,
	sr *indicators.SupportResistance,
	trend *classify.TrendState,
	vol *classify.VolatilityState,
	currentPrice float64,
) *PriceTarget {
	return SynthesizeWithWeights(ind, fib, sr, trend, vol, currentPrice, DefaultWeights())
}

// SynthesizeWithWeights combines the available signals with custom
// weights. With no candidates the target degenerates to the current
// price.
func SynthesizeWithWeights(
	ind *indicators.Set,
	fib *indicators.FibonacciLevels,
	sr *indicators.SupportResistance,
	trend *classify.TrendState,
	vol *classify.VolatilityState,
	currentPrice float64,
	w Weights,
) *PriceTarget {
	var label classify.TrendLabel = classify.TrendNeutral
	if trend != nil {
		label = trend.Trend
	}

	var candidates []Component

	if bb, ok := ind.LastBollinger(); ok {
		candidates = append(candidates,
			Component{Price: bb.UpperBand, Weight: w.BollingerUpper, Source: "bollinger_upper"},
			Component{Price: bb.MiddleBand, Weight: w.BollingerMiddle, Source: "bollinger_middle"},
		)
	}

	if label.IsUptrend() {
		if price, ok := fib.Level("61.8%"); ok {
			candidates = append(candidates, Component{Price: price, Weight: w.FibonacciLevel, Source: "fibonacci_61.8%"})
		}
	} else if label.IsDowntrend() {
		if price, ok := fib.Level("38.2%"); ok {
			candidates = append(candidates, Component{Price: price, Weight: w.FibonacciLevel, Source: "fibonacci_38.2%"})
		}
	}

	if sr != nil {
		if label.IsUptrend() {
			if level, ok := indicators.Nearest(sr.Resistance, currentPrice); ok {
				candidates = append(candidates, Component{Price: level.Price, Weight: w.NearestLevel, Source: "resistance"})
			}
		} else if label.IsDowntrend() {
			if level, ok := indicators.Nearest(sr.Support, currentPrice); ok {
				candidates = append(candidates, Component{Price: level.Price, Weight: w.NearestLevel, Source: "support"})
			}
		}
	}

	if trend != nil && trend.MovingAverages != nil {
		if label.IsUptrend() {
			candidates = append(candidates, Component{
				Price:  trend.MovingAverages.Medium * w.SMAUpFactor,
				Weight: w.MediumSMA,
				Source: "sma_medium",
			})
		} else if label.IsDowntrend() {
			candidates = append(candidates, Component{
				Price:  trend.MovingAverages.Medium * w.SMADownFactor,
				Weight: w.MediumSMA,
				Source: "sma_medium",
			})
		}
	}

	if len(candidates) == 0 {
		spread := rangeSpread(currentPrice, vol, w)
		return &PriceTarget{
			Price:     currentPrice,
			Method:    MethodCurrentPrice,
			RangeLow:  currentPrice - spread,
			RangeHigh: currentPrice + spread,
			Breakdown: []Component{},
		}
	}

	var weightedSum, totalWeight float64
	for _, c := range candidates {
		weightedSum += c.Price * c.Weight
		totalWeight += c.Weight
	}
	price := weightedSum / totalWeight

	spread := rangeSpread(price, vol, w)
	return &PriceTarget{
		Price:     price,
		Method:    MethodWeightedAverage,
		RangeLow:  price - spread,
		RangeHigh: price + spread,
		Breakdown: candidates,
	}
}

// rangeSpread derives the half-width of the target range: annualized
// volatility scaled by the range factor when available, a flat
// fallback fraction otherwise.
func rangeSpread(price float64, vol *classify.VolatilityState, w Weights) float64 {
	if vol != nil {
		return vol.AnnualizedVolatility * price * w.RangeVolFactor
	}
	return price * w.RangeFallback
}
