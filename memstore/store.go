// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package memstore is an in-process ledger.Store.
//
// Update holds a single lock for the whole transaction and applies buffered
// writes only when the callback succeeds.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/danielhkuo/voteledger/ledger"
)

type Store struct {
	mu      sync.RWMutex
	records map[ledger.Address][]byte
}

func NewStore() *Store {
	return &Store{records: make(map[ledger.Address][]byte)}
}

func (s *Store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{base: s.records, writes: make(map[ledger.Address][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for addr, data := range tx.writes {
		s.records[addr] = data
	}
	return nil
}

func (s *Store) View(ctx context.Context, fn func(tx ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{base: s.records, readOnly: true})
}

// Scan visits records in address order.
func (s *Store) Scan(ctx context.Context, fn func(addr ledger.Address, data []byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	addrs := make([]ledger.Address, 0, len(s.records))
	for addr := range s.records {
		addrs = append(addrs, addr)
	}
	snapshot := make(map[ledger.Address][]byte, len(s.records))
	for addr, data := range s.records {
		snapshot[addr] = data
	}
	s.mu.RUnlock()

	sort.Slice(addrs, func(i, j int) bool { return addrs[i].String() < addrs[j].String() })
	for _, addr := range addrs {
		if err := fn(addr, clone(snapshot[addr])); err != nil {
			return err
		}
	}
	return nil
}

// Len reports how many records are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

type memTx struct {
	base     map[ledger.Address][]byte
	writes   map[ledger.Address][]byte
	readOnly bool
}

func (t *memTx) lookup(addr ledger.Address) ([]byte, bool) {
	if data, ok := t.writes[addr]; ok {
		return data, true
	}
	data, ok := t.base[addr]
	return data, ok
}

func (t *memTx) Get(addr ledger.Address) ([]byte, error) {
	data, ok := t.lookup(addr)
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return clone(data), nil
}

func (t *memTx) Insert(addr ledger.Address, data []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	if _, ok := t.lookup(addr); ok {
		return ledger.ErrAlreadyExists
	}
	t.writes[addr] = clone(data)
	return nil
}

func (t *memTx) Put(addr ledger.Address, data []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	if _, ok := t.lookup(addr); !ok {
		return ledger.ErrNotFound
	}
	t.writes[addr] = clone(data)
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

var _ ledger.Store = (*Store)(nil)
