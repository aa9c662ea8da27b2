// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"votiz/cliparse"
)

// Open connects to the configured database. Postgres uses lib/pq; sqlite
// uses the pure-Go modernc driver so development and tests need no cgo and
// no running server.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	switch cfg.DatabaseType {
	case "postgres":
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return conn, nil
	case "sqlite":
		conn, err := sql.Open("sqlite", sqliteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// A single connection sidesteps SQLITE_BUSY under concurrent writes
		conn.SetMaxOpenConns(1)
		return conn, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}

// sqliteDSN turns a plain path into a DSN with foreign keys enabled.
// Cascading deletes depend on the pragma, so it is not optional.
func sqliteDSN(path string) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
