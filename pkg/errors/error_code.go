package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidInterval      ErrorCode = 103
	ErrCodeInvalidDateRange     ErrorCode = 104
	ErrCodeInvalidTicker        ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106
	ErrCodeInvalidProvider      ErrorCode = 107

	// Market data errors (200-299)
	ErrCodeFetchFailed     ErrorCode = 200
	ErrCodeMalformedSeries ErrorCode = 201
	ErrCodeNoData          ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301

	// Export errors (400-499)
	ErrCodeWriterNotInitialized ErrorCode = 400
	ErrCodeWriteFailed          ErrorCode = 401
	ErrCodeFinalizeFailed       ErrorCode = 402
	ErrCodeSeriesLengthMismatch ErrorCode = 403
)
