package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stock-analyzer/internal/analysis"
	"stock-analyzer/internal/analysis/scoring"
	"stock-analyzer/internal/models"
	"stock-analyzer/pkg/utils"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Full technical analysis for a symbol",
		Long: `Run the full analysis pipeline over a daily OHLCV series:
- Indicators (SMA, EMA, RSI, MACD, Bollinger Bands, ADX)
- Fibonacci retracement and support/resistance levels
- Trend and volatility classification
- Synthesized price target with confidence score
- Recommendation

Bars are read from a CSV file with columns date,open,high,low,close,volume,
ordered oldest to newest. A live quote can be supplied via flags; when
absent, the last bar of the series is used.`,
		Example: `  analyzer analyze AAPL --file bars.csv
  analyzer analyze MSFT --file bars.csv --price 430.25 --prev-close 428.10
  analyzer analyze NVDA --file bars.csv --consensus consensus.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			symbol := strings.ToUpper(args[0])
			file, _ := cmd.Flags().GetString("file")
			price, _ := cmd.Flags().GetFloat64("price")
			prevClose, _ := cmd.Flags().GetFloat64("prev-close")
			volume, _ := cmd.Flags().GetInt64("volume")
			consensusFile, _ := cmd.Flags().GetString("consensus")
			detailed, _ := cmd.Flags().GetBool("detailed")

			bars, err := loadBars(file)
			if err != nil {
				output.Error("Failed to load bars: %v", err)
				return err
			}

			var quote *models.QuoteSnapshot
			if price > 0 || prevClose > 0 || volume > 0 {
				quote = &models.QuoteSnapshot{
					Price:         price,
					PreviousClose: prevClose,
					Volume:        volume,
				}
			}

			var consensus *models.AnalystConsensus
			if consensusFile != "" {
				consensus, err = loadConsensus(consensusFile)
				if err != nil {
					output.Error("Failed to load consensus: %v", err)
					return err
				}
			}

			record, err := app.Analyzer.Analyze(symbol, bars, quote, consensus)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(record)
			}

			return displayRecord(output, record, detailed)
		},
	}

	cmd.Flags().StringP("file", "f", "", "CSV file with daily bars (required)")
	cmd.Flags().Float64("price", 0, "current price override")
	cmd.Flags().Float64("prev-close", 0, "previous close override")
	cmd.Flags().Int64("volume", 0, "current volume override")
	cmd.Flags().String("consensus", "", "JSON file with analyst consensus data")
	cmd.Flags().Bool("detailed", false, "show target breakdown and all levels")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func displayRecord(output *Output, r *analysis.AnalysisRecord, detailed bool) error {
	output.Bold("%s Analysis — %s", r.Symbol, r.AnalysisDate.Format("2006-01-02"))
	output.Printf("  Price: %s  %s (%s)  Volume: %s\n",
		output.BoldText(utils.FormatPrice(r.CurrentPrice)),
		output.DeltaColored(r.PriceChange, utils.FormatPrice(r.PriceChange)),
		output.DeltaColored(r.PriceChangePercent, utils.FormatPercent(r.PriceChangePercent)),
		utils.FormatQuantity(r.Volume))
	output.Println()

	displayTrend(output, r)
	displayIndicators(output, r)
	displayLevels(output, r, detailed)
	displayTarget(output, r, detailed)

	output.Bold("Recommendation")
	output.Printf("  %s  (expected return %s)\n",
		output.Recommendation(r.Recommendation.Action),
		utils.FormatPercent(r.Recommendation.ExpectedReturn))
	output.Printf("  %s\n", output.DimText(r.Recommendation.Reasoning))

	if r.Consensus != nil {
		output.Println()
		displayConsensus(output, r.Consensus)
	}

	return nil
}

func displayTrend(output *Output, r *analysis.AnalysisRecord) {
	output.Bold("Trend & Volatility")
	if r.Trend != nil {
		label := string(r.Trend.Trend)
		colored := output.Yellow(label)
		if r.Trend.Trend.IsUptrend() {
			colored = output.Green(label)
		} else if r.Trend.Trend.IsDowntrend() {
			colored = output.Red(label)
		}
		output.Printf("  Trend: %s", colored)
		if ma := r.Trend.MovingAverages; ma != nil {
			output.Printf("  (SMA20 %.2f / SMA50 %.2f / SMA200 %.2f)", ma.Short, ma.Medium, ma.Long)
		}
		output.Println()
	} else {
		output.Printf("  Trend: %s\n", output.DimText("not enough history"))
	}
	if r.Volatility != nil {
		output.Printf("  Volatility: %s (annualized %.1f%%)\n",
			string(r.Volatility.CurrentLevel),
			r.Volatility.AnnualizedVolatility*100)
	} else {
		output.Printf("  Volatility: %s\n", output.DimText("not enough history"))
	}
	output.Println()
}

func displayIndicators(output *Output, r *analysis.AnalysisRecord) {
	if r.Indicators == nil {
		return
	}
	output.Bold("Indicators")
	if rsi, ok := r.Indicators.LastRSI(); ok {
		signal := "neutral"
		colored := output.Yellow(fmt.Sprintf("%.1f", rsi))
		if rsi > 70 {
			signal = "overbought"
			colored = output.Red(fmt.Sprintf("%.1f", rsi))
		} else if rsi < 30 {
			signal = "oversold"
			colored = output.Green(fmt.Sprintf("%.1f", rsi))
		}
		output.Printf("  RSI(14): %s (%s)\n", colored, signal)
	}
	if n := len(r.Indicators.MACD); n > 0 {
		last := r.Indicators.MACD[n-1]
		output.Printf("  MACD: %.2f  Signal: %.2f  Histogram: %s\n",
			last.MACDLine, last.SignalLine,
			output.DeltaColored(last.Histogram, fmt.Sprintf("%.2f", last.Histogram)))
	}
	if bb, ok := r.Indicators.LastBollinger(); ok {
		output.Printf("  Bollinger: %.2f / %.2f / %.2f  %%B: %.2f\n",
			bb.LowerBand, bb.MiddleBand, bb.UpperBand, bb.PercentB)
	}
	if n := len(r.Indicators.ADX); n > 0 {
		output.Printf("  ADX(14): %.1f\n", r.Indicators.ADX[n-1])
	}
	output.Println()
}

func displayLevels(output *Output, r *analysis.AnalysisRecord, detailed bool) {
	output.Bold("Key Levels")
	if sr := r.SupportResistance; sr != nil {
		if len(sr.Support) > 0 {
			output.Printf("  Support:    %s (%d touches)\n",
				output.Green(utils.FormatPrice(sr.Support[0].Price)), sr.Support[0].TouchCount)
		}
		if len(sr.Resistance) > 0 {
			output.Printf("  Resistance: %s (%d touches)\n",
				output.Red(utils.FormatPrice(sr.Resistance[0].Price)), sr.Resistance[0].TouchCount)
		}
	}
	if fib := r.Fibonacci; fib != nil && !fib.IsZero() {
		if detailed {
			for _, label := range []string{"0%", "23.6%", "38.2%", "50%", "61.8%", "100%"} {
				if v, ok := fib.Level(label); ok {
					output.Printf("  Fib %-6s %s\n", label, utils.FormatPrice(v))
				}
			}
		} else if v, ok := fib.Level("61.8%"); ok {
			output.Printf("  Fib 61.8%%: %s\n", utils.FormatPrice(v))
		}
	}
	output.Println()
}

func displayTarget(output *Output, r *analysis.AnalysisRecord, detailed bool) {
	output.Bold("Price Target")
	confColor := output.Yellow
	switch r.ConfidenceLevel {
	case scoring.ConfidenceHigh:
		confColor = output.Green
	case scoring.ConfidenceLow:
		confColor = output.Red
	}
	output.Printf("  Target: %s  Range: %s – %s\n",
		output.BoldText(utils.FormatPrice(r.TargetPrice)),
		utils.FormatPrice(r.TargetRangeLow),
		utils.FormatPrice(r.TargetRangeHigh))
	output.Printf("  Confidence: %s (%s)  Method: %s\n",
		confColor(fmt.Sprintf("%.0f", r.ConfidenceScore)),
		string(r.ConfidenceLevel),
		r.TargetMethod)
	if detailed && len(r.TargetBreakdown) > 0 {
		table := NewTable(output, "Source", "Price", "Weight")
		for _, c := range r.TargetBreakdown {
			table.AddRow(c.Source, utils.FormatPrice(c.Price), fmt.Sprintf("%.2f", c.Weight))
		}
		table.Render()
	}
	output.Println()
}

func displayConsensus(output *Output, c *models.AnalystConsensus) {
	output.Bold("Analyst Consensus")
	if c.TargetMeanPrice != nil {
		output.Printf("  Mean Target:   %s\n", utils.FormatPrice(*c.TargetMeanPrice))
	}
	if c.TargetHighPrice != nil && c.TargetLowPrice != nil {
		output.Printf("  Target Range:  %s – %s\n",
			utils.FormatPrice(*c.TargetLowPrice), utils.FormatPrice(*c.TargetHighPrice))
	}
	if c.RecommendationKey != nil {
		output.Printf("  Rating:        %s\n", *c.RecommendationKey)
	}
	if c.NumberOfOpinions != nil {
		output.Printf("  Analysts:      %d\n", *c.NumberOfOpinions)
	}
}
