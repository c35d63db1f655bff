// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package redisstore keeps ledger records in Redis.
//
// Each record is one string key, <prefix>:<hex address>. Update runs inside
// WATCH/MULTI/EXEC: every key is watched before it is read and writes are
// buffered until the callback returns, so a concurrent writer to any touched
// key aborts the EXEC and the transaction is replayed.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-redis/redis"

	"github.com/danielhkuo/voteledger/ledger"
)

const (
	DefaultPrefix = "voteledger"

	// maxAttempts bounds replays of a transaction that lost a WATCH race.
	maxAttempts = 64
	scanCount   = 200
)

var (
	ErrTooManyConflicts = errors.New("redisstore: transaction kept conflicting")
	errReadOnly         = errors.New("redisstore: write in read-only transaction")
)

type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewStore(client *redis.Client, prefix string, logger *slog.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, prefix: prefix, logger: logger}
}

// Connect dials addr and verifies the server answers PING.
func Connect(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *Store) key(addr ledger.Address) string {
	return s.prefix + ":" + addr.String()
}

func (s *Store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	client := s.client.WithContext(ctx)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := client.Watch(func(tx *redis.Tx) error {
			rtx := &redisTx{store: s, tx: tx, writes: make(map[string][]byte)}
			if err := fn(rtx); err != nil {
				return err
			}
			if len(rtx.writes) == 0 {
				return nil
			}
			_, err := tx.Pipelined(func(pipe redis.Pipeliner) error {
				for _, key := range rtx.order {
					pipe.Set(key, rtx.writes[key], 0)
				}
				return nil
			})
			return err
		})
		if err == redis.TxFailedErr {
			s.logger.Debug("redis transaction conflict, replaying", "attempt", attempt)
			continue
		}
		return err
	}
	return ErrTooManyConflicts
}

func (s *Store) View(ctx context.Context, fn func(tx ledger.Tx) error) error {
	client := s.client.WithContext(ctx)
	return client.Watch(func(tx *redis.Tx) error {
		return fn(&redisTx{store: s, tx: tx, readOnly: true})
	})
}

func (s *Store) Scan(ctx context.Context, fn func(addr ledger.Address, data []byte) error) error {
	client := s.client.WithContext(ctx)
	match := s.prefix + ":*"

	var cursor uint64
	for {
		keys, next, err := client.Scan(cursor, match, scanCount).Result()
		if err != nil {
			return fmt.Errorf("scan %s: %w", match, err)
		}
		for _, key := range keys {
			addr, err := ledger.ParseAddress(strings.TrimPrefix(key, s.prefix+":"))
			if err != nil {
				continue
			}
			data, err := client.Get(key).Bytes()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return fmt.Errorf("get %s: %w", key, err)
			}
			if err := fn(addr, data); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

type redisTx struct {
	store    *Store
	tx       *redis.Tx
	writes   map[string][]byte
	order    []string
	readOnly bool
}

func (t *redisTx) read(addr ledger.Address) ([]byte, bool, error) {
	key := t.store.key(addr)
	if data, ok := t.writes[key]; ok {
		return data, true, nil
	}
	if !t.readOnly {
		if err := t.tx.Watch(key).Err(); err != nil {
			return nil, false, fmt.Errorf("watch %s: %w", key, err)
		}
	}
	data, err := t.tx.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return data, true, nil
}

func (t *redisTx) Get(addr ledger.Address) ([]byte, error) {
	data, ok, err := t.read(addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return data, nil
}

func (t *redisTx) Insert(addr ledger.Address, data []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	_, ok, err := t.read(addr)
	if err != nil {
		return err
	}
	if ok {
		return ledger.ErrAlreadyExists
	}
	t.buffer(addr, data)
	return nil
}

func (t *redisTx) Put(addr ledger.Address, data []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	_, ok, err := t.read(addr)
	if err != nil {
		return err
	}
	if !ok {
		return ledger.ErrNotFound
	}
	t.buffer(addr, data)
	return nil
}

func (t *redisTx) buffer(addr ledger.Address, data []byte) {
	key := t.store.key(addr)
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
	t.writes[key] = append([]byte(nil), data...)
}

var _ ledger.Store = (*Store)(nil)
