package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/jlb/internal/retry"
	"github.com/vvka-141/jlb/pkg/jlb"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns limits concurrent connections during a load.
	// The loader is a single pipeline, so a small pool suffices.
	DefaultMaxConns = 4

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps connections alive during long loads
	// to avoid reconnection overhead.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// Connector establishes a pgx connection pool from a resolved
// ConnectionConfig, retrying transient failures with exponential backoff.
type Connector struct {
	config        *jlb.ConnectionConfig
	logger        jlb.Logger
	retryExecutor *retry.Executor
}

// NewConnector creates a Connector with default retry behavior:
// jlb.DefaultRetryMaxAttempts attempts, exponential backoff starting at
// jlb.DefaultRetryInitialDelay, capped at jlb.DefaultRetryMaxDelay.
func NewConnector(config *jlb.ConnectionConfig, logger jlb.Logger) *Connector {
	classifier := retry.NewPostgreSQLErrorClassifier()
	strategy := retry.NewExponentialBackoff(jlb.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(jlb.DefaultRetryInitialDelay),
		retry.WithMaxDelay(jlb.DefaultRetryMaxDelay),
	)

	executor := retry.NewExecutor(classifier, strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("connection attempt %d failed (%v), retrying in %s", attempt+1, err, delay)
		})

	return &Connector{
		config:        config,
		logger:        logger,
		retryExecutor: executor,
	}
}

// Connect establishes a connection pool, pinging it to verify the
// database is reachable before returning.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	connStr := BuildConnectionString(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := pgxpool.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("parse connection config: %w", err)
		}

		configurePool(poolConfig)

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, c.config)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return wrapConnectionError(err, c.config)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	c.logger.Verbose("connected to %s:%d/%s", c.config.Host, c.config.Port, c.config.Database)
	return pool, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable
// guidance and the jlb.ErrConnectionFailed sentinel.
func wrapConnectionError(err error, config *jlb.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	switch {
	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %v: %w`, addr, config.Host, config.Port, err, jlb.ErrConnectionFailed)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %v: %w`, config.Host, err, jlb.ErrConnectionFailed)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database %q

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username
  - User does not have access to the database

Original error: %v: %w`, config.Database, err, jlb.ErrConnectionFailed)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database %q does not exist

To create it:
  createdb %s

Original error: %v: %w`, config.Database, config.Database, err, jlb.ErrConnectionFailed)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %v: %w`, addr, err, jlb.ErrConnectionFailed)

	default:
		return fmt.Errorf("connect to database: %v: %w", err, jlb.ErrConnectionFailed)
	}
}
