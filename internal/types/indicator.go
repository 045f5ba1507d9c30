package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeRSI IndicatorType = "rsi"
)

// IndicatorPoint pairs a bar timestamp with its computed indicator value.
//
// Value is None when the indicator is mathematically undefined for the bar
// (zero price movement across the whole smoothing window). This is distinct
// from Some(0), which is the fill used for bars without enough history.
// Exporters must keep the two apart: None serializes as a missing value,
// never as a numeric zero.
type IndicatorPoint struct {
	Time  time.Time
	Value optional.Option[float64]
}

// IndicatorSeries is positionally parallel to the PriceSeries it was computed
// from: same length, same timestamp at every index.
type IndicatorSeries []IndicatorPoint
