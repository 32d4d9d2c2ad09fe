package analysis

import (
	"time"

	"github.com/rs/zerolog"

	"stock-analyzer/internal/analysis/classify"
	"stock-analyzer/internal/analysis/indicators"
	"stock-analyzer/internal/analysis/scoring"
	"stock-analyzer/internal/analysis/target"
	apperrors "stock-analyzer/internal/errors"
	"stock-analyzer/internal/models"
)

// Gates holds the minimum sample sizes the orchestrator applies before
// running each stage. The trend classifier carries its own 200-bar
// gate.
type Gates struct {
	Indicators int
	Levels     int
	Volatility int
}

// DefaultGates returns the standard stage gates.
func DefaultGates() Gates {
	return Gates{Indicators: 50, Levels: 50, Volatility: 20}
}

// Options bundles every tunable parameter of the analyzer.
type Options struct {
	Indicators       indicators.Params
	Trend            classify.TrendParams
	VolatilityPeriod int
	Weights          target.Weights
	Thresholds       scoring.Thresholds
	Gates            Gates
}

// DefaultOptions returns the standard analyzer configuration.
func DefaultOptions() Options {
	return Options{
		Indicators:       indicators.DefaultParams(),
		Trend:            classify.DefaultTrendParams(),
		VolatilityPeriod: 20,
		Weights:          target.DefaultWeights(),
		Thresholds:       scoring.DefaultThresholds(),
		Gates:            DefaultGates(),
	}
}

// Analyzer sequences the analysis stages over a bar series. It holds
// no state between calls; the same input yields the same record apart
// from the analysis date.
type Analyzer struct {
	opts   Options
	logger zerolog.Logger
	now    func() time.Time
}

// NewAnalyzer creates an analyzer with default options.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return NewAnalyzerWithOptions(logger, DefaultOptions())
}

// NewAnalyzerWithOptions creates an analyzer with custom options.
func NewAnalyzerWithOptions(logger zerolog.Logger, opts Options) *Analyzer {
	return &Analyzer{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Analyze runs the full pipeline over an ascending bar series. The
// quote snapshot and analyst consensus are optional; with no snapshot
// the last bar supplies price and volume. An empty series fails fast.
func (a *Analyzer) Analyze(
	symbol string,
	bars []models.PriceBar,
	quote *models.QuoteSnapshot,
	consensus *models.AnalystConsensus,
) (*AnalysisRecord, error) {
	if len(bars) == 0 {
		return nil, apperrors.NewAnalysisError(symbol, "load", apperrors.ErrNoDataAvailable)
	}

	logger := a.logger.With().Str("symbol", symbol).Int("bars", len(bars)).Logger()

	currentPrice, previousClose, volume := resolveQuote(bars, quote)

	var ind *indicators.Set
	if len(bars) >= a.opts.Gates.Indicators {
		ind = indicators.ComputeWithParams(bars, a.opts.Indicators)
	}

	var fib *indicators.FibonacciLevels
	var sr *indicators.SupportResistance
	if len(bars) >= a.opts.Gates.Levels {
		fib = indicators.Fibonacci(bars)
		sr = indicators.FindSupportResistance(bars)
	}

	trend := classify.TrendWithParams(bars, a.opts.Trend)

	var vol *classify.VolatilityState
	if len(bars) >= a.opts.Gates.Volatility {
		vol = classify.Volatility(bars, a.opts.VolatilityPeriod)
	}

	logger.Debug().
		Bool("indicators", ind != nil).
		Bool("levels", fib != nil).
		Bool("volatility", vol != nil).
		Str("trend", string(trend.Trend)).
		Msg("Analysis stages computed")

	priceTarget := target.SynthesizeWithWeights(ind, fib, sr, trend, vol, currentPrice, a.opts.Weights)
	confidence := scoring.ScoreConfidence(ind, trend, vol, sr, len(bars))
	recommendation := scoring.RecommendWithThresholds(priceTarget.Price, currentPrice, confidence.Score, a.opts.Thresholds)

	priceChange := currentPrice - previousClose
	var priceChangePercent float64
	if previousClose != 0 {
		priceChangePercent = priceChange / previousClose * 100
	}

	record := &AnalysisRecord{
		Symbol:             symbol,
		AnalysisDate:       a.now(),
		CurrentPrice:       currentPrice,
		PriceChange:        priceChange,
		PriceChangePercent: priceChangePercent,
		Volume:             volume,
		TargetPrice:        priceTarget.Price,
		TargetMethod:       priceTarget.Method,
		TargetRangeLow:     priceTarget.RangeLow,
		TargetRangeHigh:    priceTarget.RangeHigh,
		TargetBreakdown:    priceTarget.Breakdown,
		ConfidenceScore:    confidence.Score,
		ConfidenceLevel:    confidence.Level,
		Indicators:         ind,
		Trend:              trend,
		Volatility:         vol,
		Fibonacci:          fib,
		SupportResistance:  sr,
		Recommendation:     recommendation,
		Consensus:          consensus,
	}

	logger.Info().
		Float64("price", currentPrice).
		Float64("target", record.TargetPrice).
		Float64("confidence", record.ConfidenceScore).
		Str("action", string(recommendation.Action)).
		Msg("Analysis complete")

	return record, nil
}

// resolveQuote derives price, previous close and volume from the
// snapshot when present, falling back to the series.
func resolveQuote(bars []models.PriceBar, quote *models.QuoteSnapshot) (price, previousClose float64, volume int64) {
	last := bars[len(bars)-1]

	price = last.Close
	previousClose = last.Close
	if len(bars) >= 2 {
		previousClose = bars[len(bars)-2].Close
	}
	volume = last.Volume

	if quote != nil {
		if quote.Price != 0 {
			price = quote.Price
		}
		if quote.PreviousClose != 0 {
			previousClose = quote.PreviousClose
		}
		if quote.Volume != 0 {
			volume = quote.Volume
		}
	}

	return price, previousClose, volume
}
