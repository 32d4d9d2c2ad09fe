// Package indicators provides technical indicator calculations over an
// OHLCV bar series. All calculations are stateless pure functions; each
// indicator independently returns nil when its own minimum sample size
// is unmet.
package indicators

import (
	"stock-analyzer/internal/models"
)

// Params holds the periods used when computing a full indicator set.
type Params struct {
	SMAShort  int
	SMAMedium int
	SMALong   int

	EMAFast int
	EMASlow int

	RSIPeriod int

	MACDFast   int
	MACDSlow   int
	MACDSignal int

	BollingerPeriod int
	BollingerStdDev float64

	ADXPeriod int
}

// DefaultParams returns the standard indicator periods.
func DefaultParams() Params {
	return Params{
		SMAShort:        20,
		SMAMedium:       50,
		SMALong:         200,
		EMAFast:         12,
		EMASlow:         26,
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerStdDev: 2.0,
		ADXPeriod:       14,
	}
}

// MACDPoint holds one point of the MACD indicator.
type MACDPoint struct {
	MACDLine   float64 `json:"macdLine"`
	SignalLine float64 `json:"signalLine"`
	Histogram  float64 `json:"histogram"`
}

// BollingerPoint holds one point of the Bollinger Bands indicator.
type BollingerPoint struct {
	UpperBand  float64 `json:"upperBand"`
	MiddleBand float64 `json:"middleBand"`
	LowerBand  float64 `json:"lowerBand"`
	PercentB   float64 `json:"percentB"`
}

// Set holds every indicator computed for a series. A field is nil when
// the series was too short for that indicator.
type Set struct {
	SMA20     []float64        `json:"sma20,omitempty"`
	SMA50     []float64        `json:"sma50,omitempty"`
	SMA200    []float64        `json:"sma200,omitempty"`
	EMA12     []float64        `json:"ema12,omitempty"`
	EMA26     []float64        `json:"ema26,omitempty"`
	RSI       []float64        `json:"rsi,omitempty"`
	MACD      []MACDPoint      `json:"macd,omitempty"`
	Bollinger []BollingerPoint `json:"bollinger,omitempty"`
	ADX       []float64        `json:"adx,omitempty"`
}

// Compute calculates the full indicator set with default periods.
func Compute(bars []models.PriceBar) *Set {
	return ComputeWithParams(bars, DefaultParams())
}

// ComputeWithParams calculates the full indicator set. The returned set
// is non-nil for any non-empty series; fields are gated per indicator,
// not per call.
func ComputeWithParams(bars []models.PriceBar, p Params) *Set {
	if len(bars) == 0 {
		return nil
	}

	closes := models.Closes(bars)

	return &Set{
		SMA20:     SMA(closes, p.SMAShort),
		SMA50:     SMA(closes, p.SMAMedium),
		SMA200:    SMA(closes, p.SMALong),
		EMA12:     EMA(closes, p.EMAFast),
		EMA26:     EMA(closes, p.EMASlow),
		RSI:       RSI(closes, p.RSIPeriod),
		MACD:      MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal),
		Bollinger: Bollinger(closes, p.BollingerPeriod, p.BollingerStdDev),
		ADX:       ADX(bars, p.ADXPeriod),
	}
}

// LastRSI returns the most recent RSI value, or false when RSI is
// unavailable.
func (s *Set) LastRSI() (float64, bool) {
	if s == nil || len(s.RSI) == 0 {
		return 0, false
	}
	return s.RSI[len(s.RSI)-1], true
}

// LastBollinger returns the most recent Bollinger point, or false when
// the bands are unavailable.
func (s *Set) LastBollinger() (BollingerPoint, bool) {
	if s == nil || len(s.Bollinger) == 0 {
		return BollingerPoint{}, false
	}
	return s.Bollinger[len(s.Bollinger)-1], true
}
