package marketdata

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RamiMonso/rsi-csv/internal/logger"
	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
	"github.com/RamiMonso/rsi-csv/pkg/marketdata/provider"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  ProviderType `validate:"required,oneof=polygon binance"`
	PolygonApiKey string       `validate:"required_if=ProviderType polygon"`
}

// FetchParams holds the user-facing parameters of one historical price query.
// Both date boundaries are inclusive; the client widens the end before
// handing the range to the provider.
type FetchParams struct {
	Ticker    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required"`
	Interval  Interval  `validate:"required"`
	Adjusted  bool
}

// Client fetches historical price series from a configured provider and
// normalizes them into the shape the indicator pipeline expects.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	log        *logger.Logger
	onProgress provider.OnFetchProgress
}

// NewClient creates a market data client with the given configuration.
// onProgress and log may be nil.
func NewClient(config ClientConfig, log *logger.Logger, onProgress provider.OnFetchProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	var (
		marketProvider provider.Provider
		err            error
	)

	switch config.ProviderType {
	case ProviderPolygon:
		marketProvider, err = provider.NewPolygonProvider(config.PolygonApiKey)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create Polygon provider", err)
		}
	case ProviderBinance:
		marketProvider, err = provider.NewBinanceProvider()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create Binance provider", err)
		}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider type: %s", config.ProviderType)
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		log:        log,
		onProgress: onProgress,
	}, nil
}

// newClientWithProvider wires an explicit provider, bypassing construction.
// Used by tests to substitute a stub.
func newClientWithProvider(config ClientConfig, p provider.Provider, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:   p,
		config:     config,
		validate:   validator.New(),
		log:        log,
		onProgress: nil,
	}
}

// Fetch retrieves the price series described by params. An empty series is a
// normal outcome for a range with no data.
func (c *Client) Fetch(ctx context.Context, params FetchParams) (types.PriceSeries, error) {
	if err := c.validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid fetch parameters", err)
	}

	ticker := strings.ToUpper(strings.TrimSpace(params.Ticker))
	if ticker == "" {
		return nil, errors.New(errors.ErrCodeInvalidTicker, "ticker is empty")
	}

	if params.EndDate.Before(params.StartDate) {
		return nil, errors.Newf(errors.ErrCodeInvalidDateRange, "end date %s precedes start date %s",
			params.EndDate.Format("2006-01-02"), params.StartDate.Format("2006-01-02"))
	}

	req := provider.FetchRequest{
		Ticker:     ticker,
		StartDate:  params.StartDate,
		EndDate:    params.Interval.InclusiveEnd(params.EndDate),
		Multiplier: params.Interval.Multiplier(),
		Timespan:   params.Interval.Timespan(),
		Adjusted:   params.Adjusted,
	}

	c.log.Info("fetching price series",
		zap.String("ticker", ticker),
		zap.String("interval", string(params.Interval)),
		zap.Time("start", req.StartDate),
		zap.Time("end", req.EndDate),
		zap.Bool("adjusted", params.Adjusted),
	)

	series, err := c.provider.Fetch(ctx, req, c.onProgress)
	if err != nil {
		return nil, err
	}

	if err := series.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMalformedSeries, err, "provider %s returned a malformed series", c.config.ProviderType)
	}

	c.log.Info("fetched price series", zap.String("ticker", ticker), zap.Int("bars", len(series)))

	return series, nil
}
