// Package jlb defines the public contract shared by the jlb commands:
// configuration types, sentinel errors, exit codes, and the Logger interface.
package jlb

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Record is one decoded JSON value corresponding to one line of a dataset file.
type Record any

// identifierPattern matches unquoted SQL identifiers accepted as table names.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// BrowseConfig contains all parameters for an interactive browse session.
type BrowseConfig struct {
	// DatasetPath is the JSON-lines file to browse (required)
	DatasetPath string

	// RenderDepth is the nesting level below which values are rendered compactly
	RenderDepth int

	// NoColor disables ANSI styling even when stdout is a terminal
	NoColor bool

	// Seed, when non-zero, makes random selection deterministic
	Seed uint64

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks the configuration for errors.
// Returns an error wrapping ErrInvalidConfig describing every problem found.
func (c *BrowseConfig) Validate() error {
	var errs []error

	if c.DatasetPath == "" {
		errs = append(errs, fmt.Errorf("DatasetPath is required: %w", ErrInvalidConfig))
	}

	if c.RenderDepth < 0 {
		errs = append(errs, fmt.Errorf("render depth cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// LoadConfig contains all parameters for a bulk load operation.
type LoadConfig struct {
	// DatasetPath is the JSON-lines file to load (required)
	DatasetPath string

	// ConnectionString is the PostgreSQL connection string (required)
	ConnectionString string

	// Table is the target table name (required, unquoted identifier)
	Table string

	// BatchSize is the number of rows per insert batch
	BatchSize int

	// Replace truncates the target table before loading
	Replace bool

	// SkipInvalid skips lines that fail to decode instead of aborting
	SkipInvalid bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks the configuration for errors.
// Returns an error wrapping ErrInvalidConfig describing every problem found.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.DatasetPath == "" {
		errs = append(errs, fmt.Errorf("DatasetPath is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.Table == "" {
		errs = append(errs, fmt.Errorf("Table is required: %w", ErrInvalidConfig))
	} else if !identifierPattern.MatchString(c.Table) {
		errs = append(errs, fmt.Errorf("table name %q is not a valid identifier: %w", c.Table, ErrInvalidConfig))
	}

	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// StatsConfig contains all parameters for a dataset summary report.
type StatsConfig struct {
	// DatasetPath is the JSON-lines file to summarize (required)
	DatasetPath string

	// SampleSize is the number of random record previews included in the report
	SampleSize int

	// Seed, when non-zero, makes sampling deterministic
	Seed uint64

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks the configuration for errors.
// Returns an error wrapping ErrInvalidConfig describing every problem found.
func (c *StatsConfig) Validate() error {
	var errs []error

	if c.DatasetPath == "" {
		errs = append(errs, fmt.Errorf("DatasetPath is required: %w", ErrInvalidConfig))
	}

	if c.SampleSize < 0 {
		errs = append(errs, fmt.Errorf("sample size cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig holds resolved PostgreSQL connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// Additional connection parameters
	AppName        string
	ConnectTimeout time.Duration
}
