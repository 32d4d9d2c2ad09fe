// Package config provides configuration management for the analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"stock-analyzer/internal/analysis"
	"stock-analyzer/internal/analysis/classify"
	"stock-analyzer/internal/analysis/indicators"
	"stock-analyzer/internal/analysis/scoring"
	"stock-analyzer/internal/analysis/target"
)

// Config holds all application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig holds the tunable parameters of the analysis engine.
// Overriding a default changes analysis semantics for every caller.
type EngineConfig struct {
	Gates          GatesConfig          `mapstructure:"gates"`
	Indicators     IndicatorConfig      `mapstructure:"indicators"`
	Target         TargetConfig         `mapstructure:"target"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
}

// GatesConfig holds the minimum sample sizes per pipeline stage.
type GatesConfig struct {
	Indicators int `mapstructure:"indicators"`
	Levels     int `mapstructure:"levels"`
	Volatility int `mapstructure:"volatility"`
	Trend      int `mapstructure:"trend"`
}

// IndicatorConfig holds indicator periods.
type IndicatorConfig struct {
	SMAShort         int     `mapstructure:"sma_short"`
	SMAMedium        int     `mapstructure:"sma_medium"`
	SMALong          int     `mapstructure:"sma_long"`
	EMAFast          int     `mapstructure:"ema_fast"`
	EMASlow          int     `mapstructure:"ema_slow"`
	RSIPeriod        int     `mapstructure:"rsi_period"`
	MACDSignal       int     `mapstructure:"macd_signal"`
	BollingerPeriod  int     `mapstructure:"bollinger_period"`
	BollingerStdDev  float64 `mapstructure:"bollinger_std_dev"`
	ADXPeriod        int     `mapstructure:"adx_period"`
	VolatilityPeriod int     `mapstructure:"volatility_period"`
}

// TargetConfig holds the synthesizer weights.
type TargetConfig struct {
	BollingerUpperWeight  float64 `mapstructure:"bollinger_upper_weight"`
	BollingerMiddleWeight float64 `mapstructure:"bollinger_middle_weight"`
	FibonacciWeight       float64 `mapstructure:"fibonacci_weight"`
	NearestLevelWeight    float64 `mapstructure:"nearest_level_weight"`
	MediumSMAWeight       float64 `mapstructure:"medium_sma_weight"`
}

// RecommendationConfig holds the recommendation cutoffs.
type RecommendationConfig struct {
	Delta            float64 `mapstructure:"delta"`
	StrongDelta      float64 `mapstructure:"strong_delta"`
	Confidence       float64 `mapstructure:"confidence"`
	StrongConfidence float64 `mapstructure:"strong_confidence"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`    // megabytes
	MaxBackups int    `mapstructure:"max_backups"` // files
	MaxAge     int    `mapstructure:"max_age"`     // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stock-analyzer")
}

// Load reads configuration from the given directory (or the default
// one) with layered defaults. A missing file is not an error; the
// defaults alone are a complete configuration.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("analyzer")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Unmarshal of pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.gates.indicators", 50)
	v.SetDefault("engine.gates.levels", 50)
	v.SetDefault("engine.gates.volatility", 20)
	v.SetDefault("engine.gates.trend", 200)

	v.SetDefault("engine.indicators.sma_short", 20)
	v.SetDefault("engine.indicators.sma_medium", 50)
	v.SetDefault("engine.indicators.sma_long", 200)
	v.SetDefault("engine.indicators.ema_fast", 12)
	v.SetDefault("engine.indicators.ema_slow", 26)
	v.SetDefault("engine.indicators.rsi_period", 14)
	v.SetDefault("engine.indicators.macd_signal", 9)
	v.SetDefault("engine.indicators.bollinger_period", 20)
	v.SetDefault("engine.indicators.bollinger_std_dev", 2.0)
	v.SetDefault("engine.indicators.adx_period", 14)
	v.SetDefault("engine.indicators.volatility_period", 20)

	v.SetDefault("engine.target.bollinger_upper_weight", 0.15)
	v.SetDefault("engine.target.bollinger_middle_weight", 0.10)
	v.SetDefault("engine.target.fibonacci_weight", 0.20)
	v.SetDefault("engine.target.nearest_level_weight", 0.15)
	v.SetDefault("engine.target.medium_sma_weight", 0.15)

	v.SetDefault("engine.recommendation.delta", 10.0)
	v.SetDefault("engine.recommendation.strong_delta", 20.0)
	v.SetDefault("engine.recommendation.confidence", 60.0)
	v.SetDefault("engine.recommendation.strong_confidence", 40.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(DefaultConfigDir(), "logs", "analyzer.log"))
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)
}

// AnalyzerOptions translates the engine configuration into analyzer
// options.
func (c *Config) AnalyzerOptions() analysis.Options {
	opts := analysis.DefaultOptions()

	opts.Gates = analysis.Gates{
		Indicators: c.Engine.Gates.Indicators,
		Levels:     c.Engine.Gates.Levels,
		Volatility: c.Engine.Gates.Volatility,
	}

	opts.Indicators = indicators.Params{
		SMAShort:        c.Engine.Indicators.SMAShort,
		SMAMedium:       c.Engine.Indicators.SMAMedium,
		SMALong:         c.Engine.Indicators.SMALong,
		EMAFast:         c.Engine.Indicators.EMAFast,
		EMASlow:         c.Engine.Indicators.EMASlow,
		RSIPeriod:       c.Engine.Indicators.RSIPeriod,
		MACDFast:        c.Engine.Indicators.EMAFast,
		MACDSlow:        c.Engine.Indicators.EMASlow,
		MACDSignal:      c.Engine.Indicators.MACDSignal,
		BollingerPeriod: c.Engine.Indicators.BollingerPeriod,
		BollingerStdDev: c.Engine.Indicators.BollingerStdDev,
		ADXPeriod:       c.Engine.Indicators.ADXPeriod,
	}
	opts.VolatilityPeriod = c.Engine.Indicators.VolatilityPeriod

	opts.Trend = classify.TrendParams{
		Short:   c.Engine.Indicators.SMAShort,
		Medium:  c.Engine.Indicators.SMAMedium,
		Long:    c.Engine.Indicators.SMALong,
		MinBars: c.Engine.Gates.Trend,
	}

	weights := target.DefaultWeights()
	weights.BollingerUpper = c.Engine.Target.BollingerUpperWeight
	weights.BollingerMiddle = c.Engine.Target.BollingerMiddleWeight
	weights.FibonacciLevel = c.Engine.Target.FibonacciWeight
	weights.NearestLevel = c.Engine.Target.NearestLevelWeight
	weights.MediumSMA = c.Engine.Target.MediumSMAWeight
	opts.Weights = weights

	opts.Thresholds = scoring.Thresholds{
		Delta:            c.Engine.Recommendation.Delta,
		StrongDelta:      c.Engine.Recommendation.StrongDelta,
		Confidence:       c.Engine.Recommendation.Confidence,
		StrongConfidence: c.Engine.Recommendation.StrongConfidence,
	}

	return opts
}
