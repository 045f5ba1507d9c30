package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// binancePageSize is the hard cap of the Binance klines endpoint.
const binancePageSize = 500

type BinanceProvider struct {
	client *binance.Client
}

// NewBinanceProvider creates a Binance backed provider. Public market data
// needs no credentials.
func NewBinanceProvider() (Provider, error) {
	return &BinanceProvider{
		client: binance.NewClient("", ""),
	}, nil
}

// Fetch implements Provider using the Binance klines endpoint, paginating in
// 500-row pages. The Adjusted flag is ignored: crypto pairs have no corporate
// actions, raw and adjusted prices coincide.
func (b *BinanceProvider) Fetch(ctx context.Context, req FetchRequest, onProgress OnFetchProgress) (types.PriceSeries, error) {
	interval, err := toBinanceInterval(req.Timespan, req.Multiplier)
	if err != nil {
		return nil, err
	}

	startMillis := req.StartDate.UnixMilli()
	endMillis := req.EndDate.UnixMilli()

	currentStart := startMillis

	var series types.PriceSeries

	for {
		klines, err := b.client.NewKlinesService().
			Symbol(req.Ticker).
			Interval(interval).
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(binancePageSize).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch klines for %s", req.Ticker)
		}

		if onProgress != nil {
			onProgress(float64(currentStart-startMillis), float64(endMillis-startMillis),
				fmt.Sprintf("Fetching %s klines from Binance", req.Ticker))
		}

		for _, k := range klines {
			closePrice, err := strconv.ParseFloat(k.Close, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMalformedSeries, err, "malformed close price %q for %s", k.Close, req.Ticker)
			}

			series = append(series, types.PricePoint{
				// OpenTime stamps the bar, matching the aggregates convention.
				Time:  time.UnixMilli(k.OpenTime),
				Close: closePrice,
			})
		}

		// Last page: either empty or short of the page cap.
		if len(klines) < binancePageSize {
			break
		}

		// Continue from the close time of the last kline + 1ms to avoid duplicates.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	return series, nil
}

// toBinanceInterval converts the timespan and multiplier to a Binance
// interval string (1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M).
func toBinanceInterval(timespan models.Timespan, multiplier int) (string, error) {
	switch timespan {
	case models.Minute:
		return fmt.Sprintf("%dm", multiplier), nil
	case models.Hour:
		return fmt.Sprintf("%dh", multiplier), nil
	case models.Day:
		return fmt.Sprintf("%dd", multiplier), nil
	case models.Week:
		return fmt.Sprintf("%dw", multiplier), nil
	case models.Month:
		return fmt.Sprintf("%dM", multiplier), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported timespan for Binance: %s", timespan)
	}
}
