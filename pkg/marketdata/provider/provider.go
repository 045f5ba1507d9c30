package provider

import (
	"context"
	"time"

	"github.com/polygon-io/client-go/rest/models"

	"github.com/RamiMonso/rsi-csv/internal/types"
)

// OnFetchProgress reports download progress to the caller.
type OnFetchProgress = func(current float64, total float64, message string)

// FetchRequest describes one historical price query in provider terms.
// StartDate is inclusive; EndDate is exclusive (the client pushes the user's
// inclusive end boundary forward before building the request).
type FetchRequest struct {
	Ticker     string
	StartDate  time.Time
	EndDate    time.Time
	Multiplier int
	Timespan   models.Timespan
	// Adjusted selects prices adjusted for splits and dividends where the
	// source distinguishes them.
	Adjusted bool
}

// Provider fetches an instrument's historical bars from a remote source.
type Provider interface {
	// Fetch returns the ordered closing-price series for the request.
	// A range with no data yields an empty series, not an error; errors are
	// reserved for transport and availability failures. The context can be
	// used to cancel the fetch.
	Fetch(ctx context.Context, req FetchRequest, onProgress OnFetchProgress) (types.PriceSeries, error)
}
