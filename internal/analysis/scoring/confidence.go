// Package scoring provides the confidence scorer and the
// recommendation engine.
package scoring

import (
	"stock-analyzer/internal/analysis/classify"
	"stock-analyzer/internal/analysis/indicators"
)

// ConfidenceLevel is the discrete confidence tier.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ConfidenceScore is a heuristic 0-100 measure of how much
// corroborating signal backs a price target.
type ConfidenceScore struct {
	Score float64         `json:"score"`
	Level ConfidenceLevel `json:"level"`
}

const (
	confidenceBase = 50

	rsiNeutralBonus   = 10
	rsiMissingPenalty = 10

	trendClarityBonus  = 15
	trendUnclearPenaly = 15

	volLowBonus        = 10
	volMediumBonus     = 5
	volMissingPenalty  = 10
	levelsBonus        = 10
	levelsPenalty      = 10
	largeSampleBonus   = 15
	mediumSampleBonus  = 5
	smallSamplePenalty = 20
)

// ScoreConfidence derives a confidence score from indicator coverage,
// trend clarity, the volatility tier, detected levels and the sample
// size. Adjustments are independent and additive from a base of 50; a
// zero sample forces the score to exactly 0. The result is clamped to
// [0, 100].
func ScoreConfidence(
	ind *indicators.Set,
	trend *classify.TrendState,
	vol *classify.VolatilityState,
	sr *indicators.SupportResistance,
	sampleSize int,
) ConfidenceScore {
	if sampleSize == 0 {
		return ConfidenceScore{Score: 0, Level: ConfidenceLow}
	}

	score := float64(confidenceBase)

	if rsi, ok := ind.LastRSI(); ok {
		if rsi >= 30 && rsi <= 70 {
			score += rsiNeutralBonus
		}
	} else {
		score -= rsiMissingPenalty
	}

	if trend != nil && trend.Trend != classify.TrendNeutral {
		score += trendClarityBonus
	} else {
		score -= trendUnclearPenaly
	}

	switch {
	case vol == nil:
		score -= volMissingPenalty
	case vol.CurrentLevel == classify.VolatilityLow:
		score += volLowBonus
	case vol.CurrentLevel == classify.VolatilityMedium:
		score += volMediumBonus
	}

	if sr != nil && (len(sr.Support) >= 2 || len(sr.Resistance) >= 2) {
		score += levelsBonus
	} else {
		score -= levelsPenalty
	}

	switch {
	case sampleSize >= 200:
		score += largeSampleBonus
	case sampleSize >= 100:
		score += mediumSampleBonus
	case sampleSize >= 50:
		// No adjustment for a merely adequate sample.
	default:
		score -= smallSamplePenalty
	}

	score = clamp(score, 0, 100)
	return ConfidenceScore{Score: score, Level: confidenceLevel(score)}
}

func confidenceLevel(score float64) ConfidenceLevel {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
