// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	schema, err := schemaFor(dbType)
	if err != nil {
		return err
	}

	_, err = db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func schemaFor(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return sqliteSchema, nil
	case TypePostgres:
		return postgresSchema, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

const postgresSchema = `
-- Records keyed by derived address
CREATE TABLE IF NOT EXISTS account (
    address TEXT PRIMARY KEY,
    data BYTEA NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS account (
    address TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
