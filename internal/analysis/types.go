// Package analysis assembles the full analysis record for a symbol:
// indicators, levels, trend and volatility classification, a
// synthesized price target with confidence, and a recommendation.
package analysis

import (
	"time"

	"stock-analyzer/internal/analysis/classify"
	"stock-analyzer/internal/analysis/indicators"
	"stock-analyzer/internal/analysis/scoring"
	"stock-analyzer/internal/analysis/target"
	"stock-analyzer/internal/models"
)

// AnalysisRecord is the engine's sole output: one immutable snapshot of
// everything derived from the input series. Nil sections mean the
// series was too short for that stage.
type AnalysisRecord struct {
	Symbol             string    `json:"symbol"`
	AnalysisDate       time.Time `json:"analysisDate"`
	CurrentPrice       float64   `json:"currentPrice"`
	PriceChange        float64   `json:"priceChange"`
	PriceChangePercent float64   `json:"priceChangePercent"`
	Volume             int64     `json:"volume"`

	TargetPrice     float64            `json:"targetPrice"`
	TargetMethod    string             `json:"targetMethod"`
	TargetRangeLow  float64            `json:"targetRangeLow"`
	TargetRangeHigh float64            `json:"targetRangeHigh"`
	TargetBreakdown []target.Component `json:"targetBreakdown"`

	ConfidenceScore float64                 `json:"confidenceScore"`
	ConfidenceLevel scoring.ConfidenceLevel `json:"confidenceLevel"`

	Indicators        *indicators.Set               `json:"indicators"`
	Trend             *classify.TrendState          `json:"trend"`
	Volatility        *classify.VolatilityState     `json:"volatility"`
	Fibonacci         *indicators.FibonacciLevels   `json:"fibonacci"`
	SupportResistance *indicators.SupportResistance `json:"supportResistance"`

	Recommendation scoring.Recommendation `json:"recommendation"`

	// Consensus is caller-supplied analyst data, merged in verbatim
	// without validation.
	Consensus *models.AnalystConsensus `json:"analystConsensus,omitempty"`
}
