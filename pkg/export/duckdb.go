package export

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// TableStats summarizes a written table.
type TableStats struct {
	Rows  int64
	First time.Time
	Last  time.Time
}

// DuckDBWriter implements TableWriter via an in-memory DuckDB table exported
// to Parquet on Finalize. The no-signal sentinel is stored as SQL NULL.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	sq         squirrel.StatementBuilderType
	outputPath string
}

// NewDuckDBWriter creates a writer that exports to a Parquet file at outputPath.
func NewDuckDBWriter(outputPath string) TableWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Initialize opens the in-memory database, creates the table, begins a
// transaction, and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriterNotInitialized, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS indicator_data (
			id TEXT,
			time TIMESTAMP,
			close DOUBLE,
			rsi DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriterNotInitialized, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriterNotInitialized, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO indicator_data (id, time, close, rsi)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriterNotInitialized, "failed to prepare statement", err)
	}

	return nil
}

// Write persists a single row using the prepared statement within the transaction.
func (w *DuckDBWriter) Write(row Row) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeWriterNotInitialized, "writer not initialized or statement is nil")
	}

	// NULL for the no-signal sentinel keeps it distinct from a numeric zero
	// in every downstream reader.
	var rsi any
	if row.RSI.IsSome() {
		rsi = row.RSI.Unwrap()
	}

	_, err := w.stmt.Exec(uuid.New().String(), row.Time, row.Close, rsi)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert row", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table to Parquet.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeWriterNotInitialized, "writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	_, err = w.db.Exec(fmt.Sprintf(`COPY indicator_data TO '%s' (FORMAT PARQUET)`, w.outputPath))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to export to Parquet", err)
	}

	return w.outputPath, nil
}

// Stats reports row count and covered time span of the written table.
// Only valid after Finalize and before Close.
func (w *DuckDBWriter) Stats() (TableStats, error) {
	if w.db == nil {
		return TableStats{}, errors.New(errors.ErrCodeWriterNotInitialized, "writer is closed")
	}

	query, args, err := w.sq.
		Select("COUNT(*)", "MIN(time)", "MAX(time)").
		From("indicator_data").
		ToSql()
	if err != nil {
		return TableStats{}, errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to build stats query", err)
	}

	var stats TableStats

	var first, last sql.NullTime

	if err := w.db.QueryRow(query, args...).Scan(&stats.Rows, &first, &last); err != nil {
		return TableStats{}, errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to query stats", err)
	}

	if first.Valid {
		stats.First = first.Time
	}

	if last.Valid {
		stats.Last = last.Time
	}

	return stats, nil
}

// Close releases the statement, rolls back any open transaction, and closes
// the database connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close statement: %w", err))
		}

		w.stmt = nil
	}

	if w.tx != nil {
		// Finalize was never reached, discard the pending rows.
		_ = w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close db connection: %w", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		errMsg := "errors occurred during close:"
		for _, e := range closeErrors {
			errMsg += fmt.Sprintf("\n- %v", e)
		}

		return errors.New(errors.ErrCodeFinalizeFailed, errMsg)
	}

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
