package db

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/vvka-141/jlb/pkg/jlb"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (--host, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PGPASSWORD environment variable
//  2. .pgpass file (PostgreSQL standard)
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no host-related granular flags were provided.
// Database is excluded because -d may also override the database named
// in a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g == nil || (g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == "")
}

// ResolveConnection produces a ConnectionConfig from, in order of
// precedence:
//  1. the --connection flag (mutually exclusive with granular flags)
//  2. the JLB_CONNECTION_STRING or DATABASE_URL environment variable
//  3. granular flags, falling back to libpq PG* environment variables,
//     falling back to defaults (localhost:5432, current OS user, prefer)
//
// A -d/--database flag always overrides the database from any source.
func ResolveConnection(connString string, flags *GranularConnFlags) (*jlb.ConnectionConfig, error) {
	if connString != "" && !flags.IsEmpty() {
		return nil, fmt.Errorf("--connection is mutually exclusive with --host/--port/--username/--sslmode: %w", jlb.ErrInvalidConfig)
	}

	if connString == "" {
		if env := os.Getenv("JLB_CONNECTION_STRING"); env != "" {
			connString = env
		} else if env := os.Getenv("DATABASE_URL"); env != "" {
			connString = env
		}
	}

	var config *jlb.ConnectionConfig
	if connString != "" {
		parsed, err := ParseConnectionString(connString)
		if err != nil {
			return nil, err
		}
		config = parsed
	} else {
		config = fromFlagsAndEnv(flags)
	}

	if flags != nil && flags.Database != "" {
		config.Database = flags.Database
	}
	if config.Password == "" {
		config.Password = os.Getenv("PGPASSWORD")
	}
	if config.AppName == "" {
		config.AppName = "jlb"
	}

	if config.Database == "" {
		return nil, fmt.Errorf("no target database: use -d, a connection string, or $PGDATABASE: %w", jlb.ErrInvalidConfig)
	}

	return config, nil
}

// fromFlagsAndEnv builds a config from granular flags with libpq
// environment-variable fallbacks.
func fromFlagsAndEnv(flags *GranularConnFlags) *jlb.ConnectionConfig {
	if flags == nil {
		flags = &GranularConnFlags{}
	}

	config := &jlb.ConnectionConfig{
		Host:     firstNonEmpty(flags.Host, os.Getenv("PGHOST"), "localhost"),
		Port:     5432,
		Username: firstNonEmpty(flags.Username, os.Getenv("PGUSER"), currentOSUser()),
		Database: firstNonEmpty(flags.Database, os.Getenv("PGDATABASE")),
		SSLMode:  firstNonEmpty(flags.SSLMode, os.Getenv("PGSSLMODE"), "prefer"),
	}

	if flags.Port != 0 {
		config.Port = flags.Port
	} else if env := os.Getenv("PGPORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil {
			config.Port = port
		}
	}

	return config
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func currentOSUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
