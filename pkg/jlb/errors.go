package jlb

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := dataset.Open(path)
//	if errors.Is(err, jlb.ErrDatasetNotFound) {
//	    // Handle missing dataset file
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDatasetNotFound indicates the dataset file does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrReadFailed indicates an I/O failure while reading the dataset.
	ErrReadFailed = errors.New("dataset read failed")

	// ErrDecodeFailed indicates a single line of the dataset is not valid JSON.
	// The wrapping error names the offending line number.
	ErrDecodeFailed = errors.New("record decode failed")

	// ErrIndexOutOfRange indicates a record index outside [0, count).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidSelector indicates user input that is neither an index,
	// "random", nor an exit command.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrLoadFailed indicates the bulk load did not complete.
	ErrLoadFailed = errors.New("load failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrDatasetNotFound):
		return ExitDatasetMissing
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes cobra/pflag argument and flag errors by message,
// since they carry no sentinel to match on.
func isUsageError(err error) bool {
	errStr := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts 1 arg(s)",
		"required flag",
		"invalid argument",
		"missing required argument",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
