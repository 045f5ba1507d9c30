package types

import (
	"fmt"
	"time"
)

// PricePoint is a single bar of an instrument's price history. Only the
// closing price is carried; the indicator pipeline has no use for the rest of
// the OHLCV record.
type PricePoint struct {
	Time  time.Time `csv:"time"`
	Close float64   `csv:"close"`
}

// PriceSeries is an ordered sequence of price points. Timestamps are strictly
// increasing; irregular sampling (missing non-trading hours) is allowed.
// The series is owned by the caller and is never mutated by consumers.
type PriceSeries []PricePoint

// Validate checks the series invariants: strictly increasing timestamps and
// non-negative prices. An empty series is valid.
func (s PriceSeries) Validate() error {
	for i, p := range s {
		if p.Close < 0 {
			return fmt.Errorf("price at index %d is negative: %f", i, p.Close)
		}

		if i > 0 && !s[i-1].Time.Before(p.Time) {
			return fmt.Errorf("timestamps not strictly increasing at index %d: %s >= %s",
				i, s[i-1].Time.Format(time.RFC3339), p.Time.Format(time.RFC3339))
		}
	}

	return nil
}
