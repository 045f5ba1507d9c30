package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"

	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

type PolygonProvider struct {
	client *polygon.Client
}

// NewPolygonProvider creates a Polygon.io backed provider. An API key is
// required for all Polygon endpoints.
func NewPolygonProvider(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires an API key")
	}

	return &PolygonProvider{
		client: polygon.New(apiKey),
	}, nil
}

// Fetch implements Provider using the Polygon aggregates endpoint. Results
// stream in ascending time order, so the returned series needs no sorting.
func (p *PolygonProvider) Fetch(ctx context.Context, req FetchRequest, onProgress OnFetchProgress) (types.PriceSeries, error) {
	totalIterations := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1

	bar := progressbar.NewOptions(totalIterations,
		progressbar.OptionSetDescription(fmt.Sprintf("Fetching %s", req.Ticker)),
		progressbar.OptionShowCount())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     req.Ticker,
		Multiplier: req.Multiplier,
		Timespan:   req.Timespan,
		From:       models.Millis(req.StartDate),
		To:         models.Millis(req.EndDate),
	}.WithLimit(50000).WithAdjusted(req.Adjusted).WithOrder(models.Asc)

	iter := p.client.ListAggs(ctx, params)

	series := make(types.PriceSeries, 0, totalIterations)

	for iter.Next() {
		agg := iter.Item()
		series = append(series, types.PricePoint{
			Time:  time.Time(agg.Timestamp),
			Close: agg.Close,
		})

		if len(series)%1000 == 0 {
			daysElapsed := int(time.Time(agg.Timestamp).Sub(req.StartDate).Hours() / 24)
			bar.Set(daysElapsed)

			if onProgress != nil {
				onProgress(float64(daysElapsed), float64(totalIterations), fmt.Sprintf("Fetching %s", req.Ticker))
			}
		}
	}

	if iter.Err() != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, iter.Err(), "error iterating polygon aggregates for %s", req.Ticker)
	}

	bar.Finish()

	return series, nil
}
