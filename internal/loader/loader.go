// Package loader bulk-copies a JSON-lines dataset into a PostgreSQL table.
//
// The load runs inside a single transaction: either the target table ends
// up containing every record or nothing is committed. Each record becomes
// one row keyed by its zero-based record index, with the original line
// text stored as JSONB. A manifest row describing the run is written to
// the jlb_load table.
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/jlb/internal/dataset"
	"github.com/vvka-141/jlb/pkg/jlb"
)

// progressInterval is how many rows pass between verbose progress lines.
const progressInterval = 10000

// Result summarizes a completed load run.
type Result struct {
	// LoadID identifies this run in the jlb_load manifest table.
	LoadID uuid.UUID

	// Table is the target table name.
	Table string

	// Rows is the number of records inserted.
	Rows int64

	// Skipped is the number of undecodable lines skipped (only non-zero
	// with SkipInvalid).
	Skipped int
}

// Loader performs bulk loads.
type Loader struct {
	logger jlb.Logger
}

// New creates a Loader.
func New(logger jlb.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load copies every record of ds into the table named by config.
//
// Lines that fail to decode abort the load naming the offending line,
// unless config.SkipInvalid is set, in which case they are counted and
// skipped. A non-empty target table aborts the load unless
// config.Replace truncates it first. All failures wrap jlb.ErrLoadFailed.
func (l *Loader) Load(ctx context.Context, pool *pgxpool.Pool, ds *dataset.Dataset, config jlb.LoadConfig) (*Result, error) {
	batchSize := config.BatchSize
	if batchSize == 0 {
		batchSize = jlb.DefaultBatchSize
	}
	table := pgx.Identifier{config.Table}.Sanitize()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %v: %w", err, jlb.ErrLoadFailed)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := l.prepareTables(ctx, tx, table, config); err != nil {
		return nil, err
	}

	result := &Result{
		LoadID: uuid.New(),
		Table:  config.Table,
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (idx, record) VALUES ($1, $2)`, table)
	batch := &pgx.Batch{}

	count := ds.Count()
	l.logger.Verbose("loading %d records from %s into %s", count, ds.Path(), config.Table)

	for index := 0; index < count; index++ {
		if _, err := ds.Get(index); err != nil {
			if config.SkipInvalid && errors.Is(err, jlb.ErrDecodeFailed) {
				l.logger.Verbose("skipping undecodable record %d: %v", index, err)
				result.Skipped++
				continue
			}
			return nil, fmt.Errorf("%v: %w", err, jlb.ErrLoadFailed)
		}

		raw, err := ds.Raw(index)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, jlb.ErrLoadFailed)
		}

		batch.Queue(insertSQL, index, string(raw))
		result.Rows++

		if batch.Len() >= batchSize {
			if err := l.flush(ctx, tx, batch); err != nil {
				return nil, err
			}
			batch = &pgx.Batch{}
		}

		if result.Rows%progressInterval == 0 {
			l.logger.Verbose("inserted %d/%d records", result.Rows, count)
		}
	}

	if err := l.flush(ctx, tx, batch); err != nil {
		return nil, err
	}

	manifestSQL := fmt.Sprintf(
		`INSERT INTO %s (load_id, dataset, table_name, row_count, skipped) VALUES ($1, $2, $3, $4, $5)`,
		pgx.Identifier{jlb.LoadManifestTable}.Sanitize())
	if _, err := tx.Exec(ctx, manifestSQL,
		result.LoadID, ds.Path(), config.Table, result.Rows, result.Skipped); err != nil {
		return nil, fmt.Errorf("record load manifest: %v: %w", err, jlb.ErrLoadFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit load: %v: %w", err, jlb.ErrLoadFailed)
	}

	l.logger.Info("Loaded %d records into %s (skipped %d), load id %s",
		result.Rows, config.Table, result.Skipped, result.LoadID)
	return result, nil
}

// prepareTables creates the target and manifest tables and enforces the
// replace-or-refuse contract for non-empty targets.
func (l *Loader) prepareTables(ctx context.Context, tx pgx.Tx, table string, config jlb.LoadConfig) error {
	createSQL := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (idx BIGINT PRIMARY KEY, record JSONB NOT NULL)`, table)
	if _, err := tx.Exec(ctx, createSQL); err != nil {
		return fmt.Errorf("create table %s: %v: %w", config.Table, err, jlb.ErrLoadFailed)
	}

	manifestSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		load_id UUID PRIMARY KEY,
		dataset TEXT NOT NULL,
		table_name TEXT NOT NULL,
		row_count BIGINT NOT NULL,
		skipped BIGINT NOT NULL,
		loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, pgx.Identifier{jlb.LoadManifestTable}.Sanitize())
	if _, err := tx.Exec(ctx, manifestSQL); err != nil {
		return fmt.Errorf("create manifest table: %v: %w", err, jlb.ErrLoadFailed)
	}

	if config.Replace {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`TRUNCATE %s`, table)); err != nil {
			return fmt.Errorf("truncate %s: %v: %w", config.Table, err, jlb.ErrLoadFailed)
		}
		return nil
	}

	var hasRows bool
	checkSQL := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s)`, table)
	if err := tx.QueryRow(ctx, checkSQL).Scan(&hasRows); err != nil {
		return fmt.Errorf("inspect table %s: %v: %w", config.Table, err, jlb.ErrLoadFailed)
	}
	if hasRows {
		return fmt.Errorf("table %s already contains rows; use --replace to truncate it first: %w",
			config.Table, jlb.ErrLoadFailed)
	}
	return nil
}

// flush sends the accumulated batch and verifies every insert.
func (l *Loader) flush(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert batch: %v: %w", err, jlb.ErrLoadFailed)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("complete batch insert: %v: %w", err, jlb.ErrLoadFailed)
	}
	return nil
}
