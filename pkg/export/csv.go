package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// CSVWriter implements TableWriter for comma-separated output.
type CSVWriter struct {
	file       *os.File
	w          *csv.Writer
	outputPath string
	header     []string
}

// NewCSVWriter creates a CSV writer targeting outputPath. rsiHeader labels
// the indicator column, e.g. "RSI_14".
func NewCSVWriter(outputPath string, rsiHeader string) TableWriter {
	return &CSVWriter{
		outputPath: outputPath,
		header:     []string{"Datetime", "Close", rsiHeader},
	}
}

// Initialize creates the output file and writes the header row.
func (w *CSVWriter) Initialize() error {
	file, err := os.Create(w.outputPath)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeWriterNotInitialized, err, "failed to create %s", w.outputPath)
	}

	w.file = file
	w.w = csv.NewWriter(file)

	if err := w.w.Write(w.header); err != nil {
		file.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write header", err)
	}

	return nil
}

// Write appends one row. A no-signal RSI becomes an empty field.
func (w *CSVWriter) Write(row Row) error {
	if w.w == nil {
		return errors.New(errors.ErrCodeWriterNotInitialized, "csv writer not initialized")
	}

	rsi := ""
	if row.RSI.IsSome() {
		rsi = strconv.FormatFloat(row.RSI.Unwrap(), 'f', -1, 64)
	}

	record := []string{
		row.Time.Format(TimestampLayout),
		strconv.FormatFloat(row.Close, 'f', -1, 64),
		rsi,
	}

	if err := w.w.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write row", err)
	}

	return nil
}

// Finalize flushes buffered rows and reports the output path.
func (w *CSVWriter) Finalize() (string, error) {
	if w.w == nil {
		return "", errors.New(errors.ErrCodeWriterNotInitialized, "csv writer not initialized")
	}

	w.w.Flush()

	if err := w.w.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to flush csv", err)
	}

	return w.outputPath, nil
}

// Close closes the underlying file.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil
	w.w = nil

	return err
}

// GetOutputPath returns the configured output file path.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
