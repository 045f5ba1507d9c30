package indicator

import (
	"github.com/RamiMonso/rsi-csv/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement.
// Compute is a pure function of its inputs: it performs no I/O, shares no
// state between calls, and is safe to invoke concurrently.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator parameters
	Config(params ...any) error
	// Compute derives one indicator value per input bar. The output has the
	// same length as the input and carries the same timestamp at every index.
	Compute(series types.PriceSeries) (types.IndicatorSeries, error)
}
