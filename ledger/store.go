// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "context"

// Tx is the view of the store inside a single transaction.
type Tx interface {
	// Get returns the record at addr or ErrNotFound.
	Get(addr Address) ([]byte, error)
	// Insert stores data at addr only if nothing occupies it, else ErrAlreadyExists.
	Insert(addr Address, data []byte) error
	// Put overwrites an existing record, else ErrNotFound.
	Put(addr Address, data []byte) error
}

// Store is a key-addressed record store with atomic transactions.
//
// Update commits the writes made through its Tx only when fn returns nil.
// Concurrent Updates touching the same address must not lose writes.
type Store interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(tx Tx) error) error
	Scan(ctx context.Context, fn func(addr Address, data []byte) error) error
}
