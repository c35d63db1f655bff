// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/voteledger/ledger"
)

// Store implements ledger.Store on the account table.
type Store struct {
	db     *sql.DB
	dbType string
	logger *slog.Logger
}

func NewStore(db *sql.DB, dbType string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, dbType: dbType, logger: logger}
}

func (s *Store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Rows read for update are locked on postgres so concurrent increments
	// queue behind each other.
	if err := fn(&sqlTx{ctx: ctx, tx: tx, lockRows: s.dbType == TypePostgres}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) View(ctx context.Context, fn func(tx ledger.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: s.dbType == TypePostgres})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(&sqlTx{ctx: ctx, tx: tx, readOnly: true})
}

func (s *Store) Scan(ctx context.Context, fn func(addr ledger.Address, data []byte) error) error {
	type row struct {
		addr ledger.Address
		data []byte
	}

	// Rows are collected first so fn never runs while the connection is busy.
	rows, err := s.db.QueryContext(ctx, `SELECT address, data FROM account ORDER BY address`)
	if err != nil {
		return fmt.Errorf("query accounts: %w", err)
	}
	var all []row
	for rows.Next() {
		var hexAddr string
		var data []byte
		if err := rows.Scan(&hexAddr, &data); err != nil {
			rows.Close()
			return fmt.Errorf("scan account: %w", err)
		}
		addr, err := ledger.ParseAddress(hexAddr)
		if err != nil {
			rows.Close()
			return err
		}
		all = append(all, row{addr: addr, data: data})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate accounts: %w", err)
	}
	rows.Close()

	for _, r := range all {
		if err := fn(r.addr, r.data); err != nil {
			return err
		}
	}
	return nil
}

type sqlTx struct {
	ctx      context.Context
	tx       *sql.Tx
	lockRows bool
	readOnly bool
}

func (t *sqlTx) Get(addr ledger.Address) ([]byte, error) {
	query := `SELECT data FROM account WHERE address = $1`
	if t.lockRows {
		query += ` FOR UPDATE`
	}

	var data []byte
	err := t.tx.QueryRowContext(t.ctx, query, addr.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account %s: %w", addr, err)
	}
	return data, nil
}

func (t *sqlTx) Insert(addr ledger.Address, data []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	now := time.Now()
	result, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO account (address, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO NOTHING
	`, addr.String(), data, now, now)
	if err != nil {
		return fmt.Errorf("insert account %s: %w", addr, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert account %s: %w", addr, err)
	}
	if n == 0 {
		return ledger.ErrAlreadyExists
	}
	return nil
}

func (t *sqlTx) Put(addr ledger.Address, data []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	result, err := t.tx.ExecContext(t.ctx, `
		UPDATE account
		SET data = $1, updated_at = $2
		WHERE address = $3
	`, data, time.Now(), addr.String())
	if err != nil {
		return fmt.Errorf("update account %s: %w", addr, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account %s: %w", addr, err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

var errReadOnly = errors.New("db: write in read-only transaction")

var _ ledger.Store = (*Store)(nil)
