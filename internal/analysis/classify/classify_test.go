package classify

import (
	"math"
	"testing"
	"time"

	"stock-analyzer/internal/models"
)

func barsFromCloses(closes []float64) []models.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestTrend(t *testing.T) {
	t.Run("short series is neutral with nil averages", func(t *testing.T) {
		closes := make([]float64, 199)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		state := Trend(barsFromCloses(closes))
		if state.Trend != TrendNeutral {
			t.Errorf("Trend() = %v, want neutral below the minimum sample", state.Trend)
		}
		if state.MovingAverages != nil {
			t.Errorf("MovingAverages = %+v, want nil", state.MovingAverages)
		}
	})

	t.Run("steady climb is a strong uptrend", func(t *testing.T) {
		closes := make([]float64, 250)
		for i := range closes {
			closes[i] = 100 + float64(i)*0.5
		}
		state := Trend(barsFromCloses(closes))
		if state.Trend != TrendStrongUptrend {
			t.Errorf("Trend() = %v, want strong_uptrend", state.Trend)
		}
		ma := state.MovingAverages
		if ma == nil {
			t.Fatal("MovingAverages = nil, want values")
		}
		if !(ma.Short > ma.Medium && ma.Medium > ma.Long) {
			t.Errorf("averages not strictly ordered: %+v", ma)
		}
	})

	t.Run("steady slide is a strong downtrend", func(t *testing.T) {
		closes := make([]float64, 250)
		for i := range closes {
			closes[i] = 300 - float64(i)*0.5
		}
		state := Trend(barsFromCloses(closes))
		if state.Trend != TrendStrongDowntrend {
			t.Errorf("Trend() = %v, want strong_downtrend", state.Trend)
		}
	})

	t.Run("flat series is neutral", func(t *testing.T) {
		closes := make([]float64, 220)
		for i := range closes {
			closes[i] = 150
		}
		state := Trend(barsFromCloses(closes))
		if state.Trend != TrendNeutral {
			t.Errorf("Trend() = %v, want neutral for a flat series", state.Trend)
		}
		if state.MovingAverages == nil {
			t.Error("MovingAverages = nil, want values for a long series")
		}
	})

	t.Run("weak uptrend without long alignment", func(t *testing.T) {
		p := TrendParams{Short: 2, Medium: 3, Long: 4, MinBars: 4}
		state := TrendWithParams(barsFromCloses([]float64{10, 1, 2, 9}), p)
		if state.Trend != TrendUptrend {
			t.Errorf("TrendWithParams() = %v, want uptrend", state.Trend)
		}
	})

	t.Run("weak downtrend without long alignment", func(t *testing.T) {
		p := TrendParams{Short: 2, Medium: 3, Long: 4, MinBars: 4}
		state := TrendWithParams(barsFromCloses([]float64{1, 10, 9, 2}), p)
		if state.Trend != TrendDowntrend {
			t.Errorf("TrendWithParams() = %v, want downtrend", state.Trend)
		}
	})
}

func TestTrendLabelDirections(t *testing.T) {
	if !TrendStrongUptrend.IsUptrend() || !TrendUptrend.IsUptrend() {
		t.Error("uptrend labels not recognized")
	}
	if !TrendStrongDowntrend.IsDowntrend() || !TrendDowntrend.IsDowntrend() {
		t.Error("downtrend labels not recognized")
	}
	if TrendNeutral.IsUptrend() || TrendNeutral.IsDowntrend() {
		t.Error("neutral label misclassified as directional")
	}
}

func TestVolatility(t *testing.T) {
	t.Run("below two bars is zeroed low", func(t *testing.T) {
		state := Volatility(barsFromCloses([]float64{100}), 20)
		if state.CurrentLevel != VolatilityLow || state.StandardDeviation != 0 || state.AnnualizedVolatility != 0 {
			t.Errorf("Volatility() = %+v, want zeroed low tier", state)
		}
	})

	t.Run("constant growth has zero deviation", func(t *testing.T) {
		closes := make([]float64, 30)
		closes[0] = 100
		for i := 1; i < len(closes); i++ {
			closes[i] = closes[i-1] * 1.001
		}
		state := Volatility(barsFromCloses(closes), 20)
		if math.Abs(state.StandardDeviation) > 1e-9 {
			t.Errorf("StandardDeviation = %v, want 0 for constant log returns", state.StandardDeviation)
		}
		if state.CurrentLevel != VolatilityLow {
			t.Errorf("CurrentLevel = %v, want low", state.CurrentLevel)
		}
	})

	t.Run("whipsaw is high", func(t *testing.T) {
		closes := make([]float64, 21)
		for i := range closes {
			if i%2 == 0 {
				closes[i] = 100
			} else {
				closes[i] = 120
			}
		}
		state := Volatility(barsFromCloses(closes), 20)
		if state.CurrentLevel != VolatilityHigh {
			t.Errorf("CurrentLevel = %v (annualized %v), want high", state.CurrentLevel, state.AnnualizedVolatility)
		}
	})

	t.Run("only the trailing window counts", func(t *testing.T) {
		closes := []float64{100, 300, 20, 400, 5, 100, 100, 100, 100, 100}
		state := Volatility(barsFromCloses(closes), 5)
		if state.CurrentLevel != VolatilityLow {
			t.Errorf("CurrentLevel = %v, want low from the flat trailing window", state.CurrentLevel)
		}
		if state.AnnualizedVolatility != 0 {
			t.Errorf("AnnualizedVolatility = %v, want 0", state.AnnualizedVolatility)
		}
	})

	t.Run("annualization scales by root 252", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			if i%2 == 0 {
				closes[i] = 100
			} else {
				closes[i] = 101
			}
		}
		state := Volatility(barsFromCloses(closes), 0)
		want := state.StandardDeviation * math.Sqrt(252)
		if math.Abs(state.AnnualizedVolatility-want) > 1e-9 {
			t.Errorf("AnnualizedVolatility = %v, want sd*sqrt(252) = %v", state.AnnualizedVolatility, want)
		}
	})
}
