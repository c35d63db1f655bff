// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package redisstore

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/ledger/storetest"
)

func TestStoreContract(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := Connect(addr)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storetest.Run(t, func(t *testing.T) ledger.Store {
		prefix := "voteledger-test-" + uuid.NewString()
		t.Cleanup(func() {
			keys, _ := client.Keys(prefix + ":*").Result()
			if len(keys) > 0 {
				client.Del(keys...)
			}
		})
		return NewStore(client, prefix, logger)
	})
}

func TestKey(t *testing.T) {
	s := NewStore(nil, "", nil)
	addr := ledger.PollAddress("prog", 1)

	if got, want := s.key(addr), DefaultPrefix+":"+addr.String(); got != want {
		t.Errorf("key() = %s, want %s", got, want)
	}
}
