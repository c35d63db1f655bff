// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storetest checks that a ledger.Store honours the transaction contract.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/voteledger/ledger"
)

// Run exercises newStore against the Store contract. Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) ledger.Store) {
	t.Run("InsertGet", func(t *testing.T) { testInsertGet(t, newStore(t)) })
	t.Run("InsertConflict", func(t *testing.T) { testInsertConflict(t, newStore(t)) })
	t.Run("PutMissing", func(t *testing.T) { testPutMissing(t, newStore(t)) })
	t.Run("Rollback", func(t *testing.T) { testRollback(t, newStore(t)) })
	t.Run("ReadYourWrites", func(t *testing.T) { testReadYourWrites(t, newStore(t)) })
	t.Run("ViewReadOnly", func(t *testing.T) { testViewReadOnly(t, newStore(t)) })
	t.Run("Scan", func(t *testing.T) { testScan(t, newStore(t)) })
	t.Run("ConcurrentIncrements", func(t *testing.T) { testConcurrentIncrements(t, newStore(t)) })
	t.Run("ConcurrentInsert", func(t *testing.T) { testConcurrentInsert(t, newStore(t)) })
}

func addr(name string) ledger.Address {
	return ledger.DeriveAddress("storetest", []byte(name))
}

func testInsertGet(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := addr("a")

	err := s.Update(ctx, func(tx ledger.Tx) error {
		return tx.Insert(a, []byte("hello"))
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	err = s.View(ctx, func(tx ledger.Tx) error {
		data, err := tx.Get(a)
		if err != nil {
			return err
		}
		if string(data) != "hello" {
			t.Errorf("Get() = %q, want hello", data)
		}
		_, err = tx.Get(addr("missing"))
		if !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("Get(missing) = %v, want ErrNotFound", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
}

func testInsertConflict(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := addr("a")

	insert := func(data string) error {
		return s.Update(ctx, func(tx ledger.Tx) error { return tx.Insert(a, []byte(data)) })
	}
	if err := insert("first"); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if err := insert("second"); !errors.Is(err, ledger.ErrAlreadyExists) {
		t.Fatalf("second Insert = %v, want ErrAlreadyExists", err)
	}

	assertData(t, s, a, "first")
}

func testPutMissing(t *testing.T, s ledger.Store) {
	err := s.Update(context.Background(), func(tx ledger.Tx) error {
		return tx.Put(addr("missing"), []byte("x"))
	})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("Put(missing) = %v, want ErrNotFound", err)
	}
}

func testRollback(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a, b := addr("a"), addr("b")

	if err := s.Update(ctx, func(tx ledger.Tx) error { return tx.Insert(a, []byte("v1")) }); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx ledger.Tx) error {
		if err := tx.Put(a, []byte("v2")); err != nil {
			return err
		}
		if err := tx.Insert(b, []byte("orphan")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() = %v, want callback error", err)
	}

	assertData(t, s, a, "v1")
	err = s.View(ctx, func(tx ledger.Tx) error {
		_, err := tx.Get(b)
		return err
	})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("rolled back insert is visible: %v", err)
	}
}

func testReadYourWrites(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := addr("a")

	err := s.Update(ctx, func(tx ledger.Tx) error {
		if err := tx.Insert(a, []byte("v1")); err != nil {
			return err
		}
		data, err := tx.Get(a)
		if err != nil {
			return err
		}
		if string(data) != "v1" {
			t.Errorf("Get() after Insert = %q, want v1", data)
		}
		if err := tx.Insert(a, []byte("again")); !errors.Is(err, ledger.ErrAlreadyExists) {
			t.Errorf("Insert() over own write = %v, want ErrAlreadyExists", err)
		}
		return tx.Put(a, []byte("v2"))
	})
	if err != nil {
		t.Fatal(err)
	}
	assertData(t, s, a, "v2")
}

func testViewReadOnly(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := addr("a")

	err := s.View(ctx, func(tx ledger.Tx) error {
		return tx.Insert(a, []byte("x"))
	})
	if err == nil {
		t.Fatal("Insert inside View succeeded")
	}
	err = s.View(ctx, func(tx ledger.Tx) error {
		_, err := tx.Get(a)
		return err
	})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("write from View is visible: %v", err)
	}
}

func testScan(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	want := map[ledger.Address]string{addr("a"): "1", addr("b"): "2", addr("c"): "3"}

	err := s.Update(ctx, func(tx ledger.Tx) error {
		for a, v := range want {
			if err := tx.Insert(a, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	got := map[ledger.Address]string{}
	err = s.Scan(ctx, func(a ledger.Address, data []byte) error {
		got[a] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Scan visited %d records, want %d", len(got), len(want))
	}
	for a, v := range want {
		if got[a] != v {
			t.Errorf("Scan %s = %q, want %q", a, got[a], v)
		}
	}

	stop := errors.New("stop")
	if err := s.Scan(ctx, func(ledger.Address, []byte) error { return stop }); !errors.Is(err, stop) {
		t.Errorf("Scan() = %v, want callback error", err)
	}
}

func testConcurrentIncrements(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := addr("counter")
	const workers = 20

	if err := s.Update(ctx, func(tx ledger.Tx) error { return tx.Insert(a, []byte{0}) }); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Update(ctx, func(tx ledger.Tx) error {
				data, err := tx.Get(a)
				if err != nil {
					return err
				}
				return tx.Put(a, []byte{data[0] + 1})
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("increment failed: %v", err)
		}
	}
	assertData(t, s, a, string([]byte{workers}))
}

func testConcurrentInsert(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := addr("contested")
	const workers = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Update(ctx, func(tx ledger.Tx) error { return tx.Insert(a, []byte("x")) })
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ledger.ErrAlreadyExists):
			conflicts++
		default:
			t.Errorf("unexpected insert error: %v", err)
		}
	}
	if ok != 1 || conflicts != workers-1 {
		t.Errorf("got %d successes and %d conflicts, want 1 and %d", ok, conflicts, workers-1)
	}
}

func assertData(t *testing.T, s ledger.Store, a ledger.Address, want string) {
	t.Helper()
	err := s.View(context.Background(), func(tx ledger.Tx) error {
		data, err := tx.Get(a)
		if err != nil {
			return err
		}
		if string(data) != want {
			t.Errorf("data at %s = %q, want %q", a, data, want)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
}
