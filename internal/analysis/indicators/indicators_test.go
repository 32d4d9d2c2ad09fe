package indicators

import (
	"math"
	"testing"
	"time"

	"stock-analyzer/internal/models"
)

// barsFromCloses builds a daily series where each bar brackets its
// close by one point.
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

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		period int
		want   []float64
	}{
		{"three point window", []float64{1, 2, 3, 4, 5}, 3, []float64{2, 3, 4}},
		{"window equals length", []float64{2, 4, 6}, 3, []float64{4}},
		{"series too short", []float64{1, 2}, 3, nil},
		{"zero period", []float64{1, 2, 3}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.values, tt.period)
			if len(got) != len(tt.want) {
				t.Fatalf("SMA() returned %d values, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("SMA()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEMA(t *testing.T) {
	t.Run("flat series stays flat", func(t *testing.T) {
		values := []float64{10, 10, 10, 10, 10, 10}
		got := EMA(values, 3)
		if len(got) != 4 {
			t.Fatalf("EMA() returned %d values, want 4", len(got))
		}
		for i, v := range got {
			if !almostEqual(v, 10) {
				t.Errorf("EMA()[%d] = %v, want 10", i, v)
			}
		}
	})

	t.Run("seeded with first window mean", func(t *testing.T) {
		got := EMA([]float64{1, 2, 3}, 3)
		if len(got) != 1 || !almostEqual(got[0], 2) {
			t.Errorf("EMA() = %v, want [2]", got)
		}
	})

	t.Run("tracks the step", func(t *testing.T) {
		// Seed 10, then (20-10)*0.5+10 = 15.
		got := EMA([]float64{10, 10, 10, 20}, 3)
		if len(got) != 2 || !almostEqual(got[1], 15) {
			t.Errorf("EMA() = %v, want second value 15", got)
		}
	})

	t.Run("series too short", func(t *testing.T) {
		if got := EMA([]float64{1, 2}, 3); got != nil {
			t.Errorf("EMA() = %v, want nil", got)
		}
	})
}

func TestRSI(t *testing.T) {
	t.Run("all gains pin at 100", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			values[i] = 100 + float64(i)
		}
		got := RSI(values, 14)
		if got == nil {
			t.Fatal("RSI() = nil, want values")
		}
		for i, v := range got {
			if !almostEqual(v, 100) {
				t.Errorf("RSI()[%d] = %v, want 100", i, v)
			}
		}
	})

	t.Run("all losses pin at 0", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			values[i] = 200 - float64(i)
		}
		got := RSI(values, 14)
		if got == nil {
			t.Fatal("RSI() = nil, want values")
		}
		for i, v := range got {
			if !almostEqual(v, 0) {
				t.Errorf("RSI()[%d] = %v, want 0", i, v)
			}
		}
	})

	t.Run("exactly period bars yields one value", func(t *testing.T) {
		values := make([]float64, 14)
		for i := range values {
			values[i] = 100 + float64(i%3)
		}
		got := RSI(values, 14)
		if len(got) != 1 {
			t.Fatalf("RSI() returned %d values, want 1", len(got))
		}
		if got[0] < 0 || got[0] > 100 {
			t.Errorf("RSI()[0] = %v, out of [0, 100]", got[0])
		}
	})

	t.Run("series too short", func(t *testing.T) {
		if got := RSI([]float64{1, 2, 3}, 14); got != nil {
			t.Errorf("RSI() = %v, want nil", got)
		}
	})
}

func TestMACD(t *testing.T) {
	t.Run("flat series is all zero", func(t *testing.T) {
		values := make([]float64, 60)
		for i := range values {
			values[i] = 50
		}
		got := MACD(values, 12, 26, 9)
		if len(got) != 60-26+1 {
			t.Fatalf("MACD() returned %d points, want %d", len(got), 60-26+1)
		}
		for i, p := range got {
			if !almostEqual(p.MACDLine, 0) || !almostEqual(p.SignalLine, 0) || !almostEqual(p.Histogram, 0) {
				t.Errorf("MACD()[%d] = %+v, want zeros", i, p)
			}
		}
	})

	t.Run("signal line gated until seeded", func(t *testing.T) {
		values := make([]float64, 40)
		for i := range values {
			values[i] = 100 + float64(i)*0.5
		}
		got := MACD(values, 12, 26, 9)
		if got == nil {
			t.Fatal("MACD() = nil, want points")
		}
		for i := 0; i < 8 && i < len(got); i++ {
			if got[i].SignalLine != 0 || got[i].Histogram != 0 {
				t.Errorf("MACD()[%d] signal = %v hist = %v, want 0 before seed", i, got[i].SignalLine, got[i].Histogram)
			}
		}
		last := got[len(got)-1]
		if last.SignalLine == 0 {
			t.Error("MACD() last signal = 0, want seeded value")
		}
		if !almostEqual(last.Histogram, last.MACDLine-last.SignalLine) {
			t.Errorf("MACD() histogram = %v, want line-signal = %v", last.Histogram, last.MACDLine-last.SignalLine)
		}
	})

	t.Run("series too short", func(t *testing.T) {
		if got := MACD(make([]float64, 25), 12, 26, 9); got != nil {
			t.Errorf("MACD() = %v, want nil", got)
		}
	})

	t.Run("invalid periods", func(t *testing.T) {
		if got := MACD(make([]float64, 60), 26, 12, 9); got != nil {
			t.Errorf("MACD() with fast >= slow = %v, want nil", got)
		}
	})
}

func TestBollinger(t *testing.T) {
	t.Run("flat series collapses bands", func(t *testing.T) {
		values := make([]float64, 25)
		for i := range values {
			values[i] = 80
		}
		got := Bollinger(values, 20, 2.0)
		if len(got) != 6 {
			t.Fatalf("Bollinger() returned %d points, want 6", len(got))
		}
		for i, p := range got {
			if !almostEqual(p.UpperBand, 80) || !almostEqual(p.MiddleBand, 80) || !almostEqual(p.LowerBand, 80) {
				t.Errorf("Bollinger()[%d] bands = %+v, want all 80", i, p)
			}
			if p.PercentB != 0 {
				t.Errorf("Bollinger()[%d] %%B = %v, want 0 for zero-width band", i, p.PercentB)
			}
		}
	})

	t.Run("band ordering", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			values[i] = 100 + float64(i%7)
		}
		got := Bollinger(values, 20, 2.0)
		for i, p := range got {
			if p.LowerBand > p.MiddleBand || p.MiddleBand > p.UpperBand {
				t.Errorf("Bollinger()[%d] = %+v, bands out of order", i, p)
			}
		}
	})

	t.Run("series too short", func(t *testing.T) {
		if got := Bollinger(make([]float64, 10), 20, 2.0); got != nil {
			t.Errorf("Bollinger() = %v, want nil", got)
		}
	})
}

func TestADX(t *testing.T) {
	t.Run("needs two smoothing chains of data", func(t *testing.T) {
		// 27 bars: the dx series is shorter than the period, so the
		// final smoothing yields nothing.
		closes := make([]float64, 27)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		if got := ADX(barsFromCloses(closes), 14); got != nil {
			t.Errorf("ADX() = %v, want nil for 27 bars", got)
		}
	})

	t.Run("flat series is all zero", func(t *testing.T) {
		bars := make([]models.PriceBar, 40)
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range bars {
			bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Open: 50, High: 50, Low: 50, Close: 50}
		}
		got := ADX(bars, 14)
		if got == nil {
			t.Fatal("ADX() = nil, want values")
		}
		for i, v := range got {
			if !almostEqual(v, 0) {
				t.Errorf("ADX()[%d] = %v, want 0 for flat series", i, v)
			}
		}
	})

	t.Run("steady climb approaches 100", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			closes[i] = 100 + float64(i)*2
		}
		got := ADX(barsFromCloses(closes), 14)
		if got == nil {
			t.Fatal("ADX() = nil, want values")
		}
		last := got[len(got)-1]
		if last < 90 || last > 100 {
			t.Errorf("ADX() last = %v, want near 100 for a one-way trend", last)
		}
	})
}

func TestComputeWithParams(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		if got := Compute(nil); got != nil {
			t.Errorf("Compute(nil) = %v, want nil", got)
		}
	})

	t.Run("short series gates per indicator", func(t *testing.T) {
		closes := []float64{100, 101, 102, 101, 103, 104, 103, 105, 106, 107}
		set := Compute(barsFromCloses(closes))
		if set == nil {
			t.Fatal("Compute() = nil, want a set with nil fields")
		}
		if set.SMA20 != nil || set.SMA50 != nil || set.SMA200 != nil {
			t.Error("Compute() SMAs should be nil for 10 bars")
		}
		if set.RSI != nil || set.MACD != nil || set.Bollinger != nil || set.ADX != nil {
			t.Error("Compute() longer indicators should be nil for 10 bars")
		}
		if _, ok := set.LastRSI(); ok {
			t.Error("LastRSI() reported a value for a 10-bar series")
		}
	})

	t.Run("long series fills every field", func(t *testing.T) {
		closes := make([]float64, 250)
		for i := range closes {
			closes[i] = 100 + float64(i)*0.3 + float64(i%5)
		}
		set := Compute(barsFromCloses(closes))
		if set == nil {
			t.Fatal("Compute() = nil")
		}
		if len(set.SMA20) != 250-20+1 {
			t.Errorf("SMA20 has %d values, want %d", len(set.SMA20), 231)
		}
		if len(set.SMA200) != 250-200+1 {
			t.Errorf("SMA200 has %d values, want %d", len(set.SMA200), 51)
		}
		if set.EMA12 == nil || set.EMA26 == nil || set.RSI == nil || set.MACD == nil || set.Bollinger == nil || set.ADX == nil {
			t.Error("Compute() left fields nil for a 250-bar series")
		}
		if _, ok := set.LastBollinger(); !ok {
			t.Error("LastBollinger() unavailable for a 250-bar series")
		}
	})
}

func TestSetNilReceivers(t *testing.T) {
	var s *Set
	if _, ok := s.LastRSI(); ok {
		t.Error("LastRSI() on nil set reported a value")
	}
	if _, ok := s.LastBollinger(); ok {
		t.Error("LastBollinger() on nil set reported a value")
	}
}
