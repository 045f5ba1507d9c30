package indicator

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// RSI represents the Relative Strength Index indicator, computed with Wilder
// smoothing (alpha = 1/period, no adjustment correction).
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with the conventional 14-bar period.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Period returns the configured smoothing period.
func (r *RSI) Period() int {
	return r.period
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.Newf(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int), got %d", len(params))
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidParameter, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	r.period = period

	return nil
}

// Compute implements the Indicator interface.
//
// Each bar's price delta is split into a gain stream and a loss stream, both
// smoothed independently with the Wilder recurrence
//
//	avg[i] = alpha*x[i] + (1-alpha)*avg[i-1], alpha = 1/period
//
// seeded by the first delta. The relative strength rs = avgGain/avgLoss maps
// to rsi = 100 - 100/(1+rs).
//
// The running averages only carry a full window's worth of history from index
// period-1 onward; earlier bars are filled with zero. Where the window is
// live, two boundary cases take precedence over the formula, in this order:
// a completely flat window (both averages exactly zero) yields None, the
// no-signal sentinel, and a window with gains but no losses is forced to
// exactly 100 rather than left to the division by zero.
func (r *RSI) Compute(series types.PriceSeries) (types.IndicatorSeries, error) {
	out := make(types.IndicatorSeries, len(series))
	if len(series) == 0 {
		return out, nil
	}

	alpha := 1.0 / float64(r.period)

	var avgGain, avgLoss float64

	seeded := false

	for i := range series {
		out[i].Time = series[i].Time

		if i > 0 {
			delta := series[i].Close - series[i-1].Close
			gain := math.Max(delta, 0)
			loss := math.Max(-delta, 0)

			if !seeded {
				avgGain, avgLoss = gain, loss
				seeded = true
			} else {
				avgGain = alpha*gain + (1-alpha)*avgGain
				avgLoss = alpha*loss + (1-alpha)*avgLoss
			}
		}

		switch {
		case i == 0 || i < r.period-1:
			// Insufficient history, filled with a real zero.
			out[i].Value = optional.Some(0.0)
		case avgGain == 0 && avgLoss == 0:
			// Flat window, the indicator carries no signal.
			out[i].Value = optional.None[float64]()
		case avgLoss == 0:
			// Pure upward movement, no drawdowns in the window.
			out[i].Value = optional.Some(100.0)
		default:
			rs := avgGain / avgLoss
			out[i].Value = optional.Some(100 - 100/(1+rs))
		}
	}

	return out, nil
}
