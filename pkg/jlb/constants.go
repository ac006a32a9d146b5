package jlb

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Session or load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitDatasetMissing  = 12 // Dataset file not found
	ExitLoadFailed      = 13 // Bulk load failed
)

const (
	// DefaultRenderDepth is the nesting level below which records are
	// rendered on a single compact line.
	DefaultRenderDepth = 2

	// DefaultBatchSize is the number of rows sent per pgx.Batch during a load.
	DefaultBatchSize = 500

	// DefaultTableName is the target table when none is configured.
	DefaultTableName = "records"

	// LoadManifestTable records one row per completed load run.
	LoadManifestTable = "jlb_load"

	// DefaultStatsSampleSize is the number of records previewed by the
	// stats report when --sample is not given.
	DefaultStatsSampleSize = 5

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxRecordPreviewLength is the maximum number of characters shown
	// when previewing a record in reports and error messages.
	MaxRecordPreviewLength = 120
)
