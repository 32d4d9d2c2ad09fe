package indicators

import (
	"math"
	"sort"

	"stock-analyzer/internal/models"
)

// Fibonacci ratio labels in retracement order, 0% at the high.
var fibonacciRatios = []struct {
	Label string
	Ratio float64
}{
	{"0%", 0},
	{"23.6%", 0.236},
	{"38.2%", 0.382},
	{"50%", 0.5},
	{"61.8%", 0.618},
	{"100%", 1.0},
}

// FibonacciLevels represents Fibonacci retracement levels between the
// highest and lowest close of the supplied window.
type FibonacciLevels struct {
	High   float64            `json:"high"`
	Low    float64            `json:"low"`
	Levels map[string]float64 `json:"levels"`
}

// IsZero reports whether the structure is the degenerate all-zero case.
func (f *FibonacciLevels) IsZero() bool {
	return f == nil || (f.High == 0 && f.Low == 0)
}

// Level returns the price at the given ratio label, or false when the
// structure is degenerate.
func (f *FibonacciLevels) Level(label string) (float64, bool) {
	if f.IsZero() {
		return 0, false
	}
	price, ok := f.Levels[label]
	return price, ok
}

// Fibonacci calculates retracement levels from the max and min close of
// the whole supplied window. Fewer than 2 bars yields an all-zero
// structure rather than an error.
func Fibonacci(bars []models.PriceBar) *FibonacciLevels {
	levels := make(map[string]float64, len(fibonacciRatios))
	if len(bars) < 2 {
		for _, r := range fibonacciRatios {
			levels[r.Label] = 0
		}
		return &FibonacciLevels{Levels: levels}
	}

	closes := models.Closes(bars)
	high := highest(closes)
	low := lowest(closes)
	diff := high - low

	for _, r := range fibonacciRatios {
		levels[r.Label] = high - r.Ratio*diff
	}

	return &FibonacciLevels{High: high, Low: low, Levels: levels}
}

// PriceLevel is one detected support or resistance level.
type PriceLevel struct {
	Price      float64 `json:"price"`
	TouchCount int     `json:"touchCount"`
	Index      int     `json:"index"`
}

// SupportResistance holds detected support and resistance levels,
// ranked by touch count descending, at most 5 each.
type SupportResistance struct {
	Support    []PriceLevel `json:"support"`
	Resistance []PriceLevel `json:"resistance"`
}

const (
	levelTolerance = 0.02
	maxLevels      = 5
	minTouches     = 2
)

// FindSupportResistance detects local price levels: supports from the
// low column, resistances from the high column, using a shared
// touch-count heuristic. Fewer than 5 bars yields empty lists.
func FindSupportResistance(bars []models.PriceBar) *SupportResistance {
	if len(bars) < 5 {
		return &SupportResistance{
			Support:    []PriceLevel{},
			Resistance: []PriceLevel{},
		}
	}

	return &SupportResistance{
		Support:    findLevels(models.Lows(bars)),
		Resistance: findLevels(models.Highs(bars)),
	}
}

// findLevels scans for local levels: a point qualifies as a candidate
// when it is not more than 2% below either immediate neighbor, the
// first and last two points excluded. Its touch count is the number of
// other points within 2% relative tolerance of its price.
func findLevels(prices []float64) []PriceLevel {
	var candidates []PriceLevel

	for i := 2; i < len(prices)-2; i++ {
		p := prices[i]
		if p < prices[i-1]*(1-levelTolerance) || p < prices[i+1]*(1-levelTolerance) {
			continue
		}

		touches := 0
		for j, other := range prices {
			if j == i {
				continue
			}
			if p != 0 && math.Abs(other-p)/p <= levelTolerance {
				touches++
			}
		}

		if touches >= minTouches {
			candidates = append(candidates, PriceLevel{
				Price:      p,
				TouchCount: touches,
				Index:      i,
			})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].TouchCount > candidates[b].TouchCount
	})

	if len(candidates) > maxLevels {
		candidates = candidates[:maxLevels]
	}
	if candidates == nil {
		candidates = []PriceLevel{}
	}
	return candidates
}

// Nearest returns the level closest in price to the reference, or
// false when the list is empty.
func Nearest(levels []PriceLevel, price float64) (PriceLevel, bool) {
	if len(levels) == 0 {
		return PriceLevel{}, false
	}
	best := levels[0]
	for _, l := range levels[1:] {
		if math.Abs(l.Price-price) < math.Abs(best.Price-price) {
			best = l
		}
	}
	return best, true
}
