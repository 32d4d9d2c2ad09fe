// Package models provides domain models for the analysis engine.
package models

import (
	"time"
)

// PriceBar represents one day's OHLCV data for an instrument.
// A series of bars is ordered oldest to newest with unique dates.
type PriceBar struct {
	Date   time.Time `json:"date" csv:"date"`
	Open   float64   `json:"open" csv:"open"`
	High   float64   `json:"high" csv:"high"`
	Low    float64   `json:"low" csv:"low"`
	Close  float64   `json:"close" csv:"close"`
	Volume int64     `json:"volume" csv:"volume"`
}

// QuoteSnapshot represents the latest quote for an instrument.
// When absent, the engine falls back to the last bar of the series.
type QuoteSnapshot struct {
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previousClose"`
	Volume        int64   `json:"volume"`
}

// AnalystConsensus holds externally sourced analyst estimates.
// All fields are optional and merged into the record verbatim,
// without validation.
type AnalystConsensus struct {
	TargetMeanPrice    *float64 `json:"targetMeanPrice,omitempty"`
	TargetMedianPrice  *float64 `json:"targetMedianPrice,omitempty"`
	TargetHighPrice    *float64 `json:"targetHighPrice,omitempty"`
	TargetLowPrice     *float64 `json:"targetLowPrice,omitempty"`
	RecommendationKey  *string  `json:"recommendationKey,omitempty"`
	RecommendationMean *float64 `json:"recommendationMean,omitempty"`
	NumberOfOpinions   *int     `json:"numberOfAnalystOpinions,omitempty"`
}

// Closes extracts the close column from a bar series.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high column from a bar series.
func Highs(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column from a bar series.
func Lows(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}
