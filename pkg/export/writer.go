// Package export serializes the combined price/indicator table to tabular
// file formats.
package export

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// TimestampLayout is the wire format of the Datetime column.
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one record of the output table. A None RSI must serialize as an
// explicit missing-value marker, never as a numeric zero, so the no-signal
// case stays distinguishable from a computed zero.
type Row struct {
	Time  time.Time
	Close float64
	RSI   optional.Option[float64]
}

// TableWriter defines the interface for writing the output table to a destination.
type TableWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single row.
	Write(row Row) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// BuildRows zips a price series with its indicator series into output rows.
// The two series must be positionally parallel.
func BuildRows(prices types.PriceSeries, indicators types.IndicatorSeries) ([]Row, error) {
	if len(prices) != len(indicators) {
		return nil, errors.Newf(errors.ErrCodeSeriesLengthMismatch,
			"price series has %d bars but indicator series has %d", len(prices), len(indicators))
	}

	rows := make([]Row, len(prices))

	for i := range prices {
		if !prices[i].Time.Equal(indicators[i].Time) {
			return nil, errors.Newf(errors.ErrCodeSeriesLengthMismatch,
				"timestamp mismatch at index %d: %s vs %s", i,
				prices[i].Time.Format(TimestampLayout), indicators[i].Time.Format(TimestampLayout))
		}

		rows[i] = Row{
			Time:  prices[i].Time,
			Close: prices[i].Close,
			RSI:   indicators[i].Value,
		}
	}

	return rows, nil
}
