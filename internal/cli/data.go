package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	apperrors "stock-analyzer/internal/errors"
	"stock-analyzer/internal/models"
)

const dateLayout = "2006-01-02"

// csvBar mirrors one row of a bars CSV file. Dates are kept as strings
// so the layout can be validated explicitly.
type csvBar struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

// loadBars reads a daily OHLCV series from a CSV file with columns
// date,open,high,low,close,volume. Rows must be ordered oldest to
// newest with unique dates.
func loadBars(path string) ([]models.PriceBar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "opening bars file %s", path)
	}
	defer f.Close()

	var rows []*csvBar
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.Wrapf(err, "parsing bars file %s", path)
	}

	bars := make([]models.PriceBar, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return nil, apperrors.NewSeriesError(i, fmt.Sprintf("invalid date %q, expected %s", row.Date, dateLayout))
		}
		bars = append(bars, models.PriceBar{
			Date:   date,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	if err := validateSeries(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// validateSeries checks the ordering invariant of a bar series.
func validateSeries(bars []models.PriceBar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return apperrors.NewSeriesError(i, fmt.Sprintf(
				"date %s does not advance past %s",
				bars[i].Date.Format(dateLayout),
				bars[i-1].Date.Format(dateLayout),
			))
		}
	}
	return nil
}

// loadConsensus reads optional analyst consensus figures from a JSON
// file. Fields are merged into the record as-is.
func loadConsensus(path string) (*models.AnalystConsensus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "reading consensus file %s", path)
	}
	var consensus models.AnalystConsensus
	if err := json.Unmarshal(data, &consensus); err != nil {
		return nil, apperrors.Wrapf(err, "parsing consensus file %s", path)
	}
	return &consensus, nil
}
