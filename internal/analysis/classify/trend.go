// Package classify derives discrete trend and volatility states from a
// bar series.
package classify

import (
	"strings"

	"stock-analyzer/internal/analysis/indicators"
	"stock-analyzer/internal/models"
)

// TrendLabel is the discrete trend classification.
type TrendLabel string

const (
	TrendStrongUptrend   TrendLabel = "strong_uptrend"
	TrendUptrend         TrendLabel = "uptrend"
	TrendNeutral         TrendLabel = "neutral"
	TrendDowntrend       TrendLabel = "downtrend"
	TrendStrongDowntrend TrendLabel = "strong_downtrend"
)

// IsUptrend reports whether the label is any flavor of uptrend.
func (t TrendLabel) IsUptrend() bool {
	return strings.Contains(string(t), "uptrend")
}

// IsDowntrend reports whether the label is any flavor of downtrend.
func (t TrendLabel) IsDowntrend() bool {
	return strings.Contains(string(t), "downtrend")
}

// MovingAverages holds the latest short/medium/long SMA values used for
// trend classification.
type MovingAverages struct {
	Short  float64 `json:"short"`
	Medium float64 `json:"medium"`
	Long   float64 `json:"long"`
}

// TrendState is the trend classification result. MovingAverages is nil
// when the series was too short to classify.
type TrendState struct {
	Trend          TrendLabel      `json:"trend"`
	MovingAverages *MovingAverages `json:"movingAverages"`
}

// TrendParams holds the SMA periods and minimum sample size for trend
// classification.
type TrendParams struct {
	Short   int
	Medium  int
	Long    int
	MinBars int
}

// DefaultTrendParams returns the standard 20/50/200 configuration.
func DefaultTrendParams() TrendParams {
	return TrendParams{Short: 20, Medium: 50, Long: 200, MinBars: 200}
}

// Trend classifies the series using strict ordering of the current
// price against the short, medium and long SMAs. Fewer than 200 bars
// yields a neutral state with nil moving averages.
func Trend(bars []models.PriceBar) *TrendState {
	return TrendWithParams(bars, DefaultTrendParams())
}

// TrendWithParams classifies the series with custom periods.
func TrendWithParams(bars []models.PriceBar, p TrendParams) *TrendState {
	if len(bars) < p.MinBars {
		return &TrendState{Trend: TrendNeutral}
	}

	closes := models.Closes(bars)
	short := indicators.SMA(closes, p.Short)
	medium := indicators.SMA(closes, p.Medium)
	long := indicators.SMA(closes, p.Long)
	if short == nil || medium == nil || long == nil {
		return &TrendState{Trend: TrendNeutral}
	}

	ma := &MovingAverages{
		Short:  short[len(short)-1],
		Medium: medium[len(medium)-1],
		Long:   long[len(long)-1],
	}
	price := closes[len(closes)-1]

	label := TrendNeutral
	switch {
	case price > ma.Short && ma.Short > ma.Medium && ma.Medium > ma.Long:
		label = TrendStrongUptrend
	case price > ma.Short && ma.Short > ma.Medium:
		label = TrendUptrend
	case price < ma.Short && ma.Short < ma.Medium && ma.Medium < ma.Long:
		label = TrendStrongDowntrend
	case price < ma.Short && ma.Short < ma.Medium:
		label = TrendDowntrend
	}

	return &TrendState{Trend: label, MovingAverages: ma}
}
