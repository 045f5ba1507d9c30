// Command rsi-csv fetches a single instrument's historical closing prices,
// computes the RSI momentum indicator per bar, and exports the combined table
// to CSV or Parquet.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/RamiMonso/rsi-csv/internal/indicator"
	"github.com/RamiMonso/rsi-csv/internal/logger"
	"github.com/RamiMonso/rsi-csv/internal/types"
	"github.com/RamiMonso/rsi-csv/pkg/errors"
	"github.com/RamiMonso/rsi-csv/pkg/export"
	"github.com/RamiMonso/rsi-csv/pkg/marketdata"
)

func main() {
	cmd := &cli.Command{
		Name:  "rsi-csv",
		Usage: "Download historical closing prices and export them with per-bar RSI values",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Usage:    "Instrument ticker symbol (e.g. AAPL or BTCUSDT)",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format. Defaults to --days before the end date.",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date (inclusive) in `YYYY-MM-DD` format. Defaults to today.",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.IntFlag{
				Name:  "days",
				Usage: "Number of days back from the end date, used when --start is absent",
				Value: 365,
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   fmt.Sprintf("Bar interval, one of %v", marketdata.SupportedIntervals()),
				Value:   string(marketdata.IntervalOneDay),
			},
			&cli.IntFlag{
				Name:  "period",
				Usage: "RSI smoothing period. Defaults to the config file value (14).",
			},
			&cli.BoolFlag{
				Name:  "adjusted",
				Usage: "Use prices adjusted for splits and dividends",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Data provider to use (e.g. %s, %s)", marketdata.ProviderPolygon, marketdata.ProviderBinance),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv or parquet",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path to the output directory",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a yaml config file with defaults",
			},
		},
		Action: exportAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// exportAction runs the fetch → compute → export pipeline.
func exportAction(ctx context.Context, cmd *cli.Command) error {
	zlog, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer zlog.Sync()

	config := DefaultAppConfig()
	if path := cmd.String("config"); path != "" {
		config, err = LoadAppConfig(path)
		if err != nil {
			return err
		}
	}

	if config.PolygonApiKey == "" {
		config.PolygonApiKey = os.Getenv("POLYGON_API_KEY")
	}

	providerName := config.Provider
	if cmd.IsSet("provider") {
		providerName = cmd.String("provider")
	}

	format := config.Format
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}

	outputDir := config.Output
	if cmd.IsSet("output") {
		outputDir = cmd.String("output")
	}

	period := config.Period
	if cmd.IsSet("period") {
		period = int(cmd.Int("period"))
	}

	adjusted := config.Adjusted != nil && *config.Adjusted
	if cmd.IsSet("adjusted") {
		adjusted = cmd.Bool("adjusted")
	}

	interval, err := marketdata.ParseInterval(cmd.String("interval"))
	if err != nil {
		return err
	}

	endDate := cmd.Timestamp("end")

	startDate := cmd.Timestamp("start")
	if startDate.IsZero() {
		startDate = endDate.AddDate(0, 0, -int(cmd.Int("days")))
	}

	ticker := strings.ToUpper(strings.TrimSpace(cmd.String("ticker")))

	// Configure the indicator before any network calls so parameter misuse
	// fails fast.
	registry := indicator.NewDefaultRegistry()

	rsi, err := registry.Get(types.IndicatorTypeRSI)
	if err != nil {
		return err
	}

	if err := rsi.Config(period); err != nil {
		return err
	}

	client, err := marketdata.NewClient(marketdata.ClientConfig{
		ProviderType:  marketdata.ProviderType(providerName),
		PolygonApiKey: config.PolygonApiKey,
	}, zlog, nil)
	if err != nil {
		return err
	}

	series, err := client.Fetch(ctx, marketdata.FetchParams{
		Ticker:    ticker,
		StartDate: startDate,
		EndDate:   endDate,
		Interval:  interval,
		Adjusted:  adjusted,
	})
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return errors.Newf(errors.ErrCodeNoData, "no data found for %s between %s and %s",
			ticker, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	indicators, err := rsi.Compute(series)
	if err != nil {
		return err
	}

	rows, err := export.BuildRows(series, indicators)
	if err != nil {
		return err
	}

	outputPath, err := writeRows(rows, ticker, period, startDate, endDate, format, outputDir, zlog)
	if err != nil {
		return err
	}

	zlog.Info("export complete",
		zap.String("ticker", ticker),
		zap.Int("rows", len(rows)),
		zap.String("output", outputPath),
	)

	return nil
}

// writeRows serializes the output table and returns the written file path.
func writeRows(rows []export.Row, ticker string, period int, startDate, endDate time.Time, format, outputDir string, zlog *logger.Logger) (string, error) {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	fileName := fmt.Sprintf("%s_RSI%d_%s_%s", ticker, period,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var writer export.TableWriter

	switch format {
	case "csv":
		writer = export.NewCSVWriter(filepath.Join(outputDir, fileName+".csv"), fmt.Sprintf("RSI_%d", period))
	case "parquet":
		writer = export.NewDuckDBWriter(filepath.Join(outputDir, fileName+".parquet"))
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported output format: %s", format)
	}

	if err := writer.Initialize(); err != nil {
		return "", err
	}

	defer func() {
		if err := writer.Close(); err != nil {
			zlog.Warn("failed to close writer", zap.Error(err))
		}
	}()

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	outputPath, err := writer.Finalize()
	if err != nil {
		return "", err
	}

	if statter, ok := writer.(interface{ Stats() (export.TableStats, error) }); ok {
		stats, err := statter.Stats()
		if err != nil {
			zlog.Warn("failed to read table stats", zap.Error(err))
		} else {
			zlog.Info("table stats",
				zap.Int64("rows", stats.Rows),
				zap.Time("first", stats.First),
				zap.Time("last", stats.Last),
			)
		}
	}

	return outputPath, nil
}
