// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database, verifies the connection and creates the schema.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}

	// sqlite allows one writer; a single connection serializes transactions
	// instead of failing them with SQLITE_BUSY.
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}

	if err := CreateSchema(conn, dbType); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
