// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/voteledger/auth"
	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/db"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/memstore"
)

// TestProgram is the program identity used by test ledgers
const TestProgram = "voteledger-test"

// DiscardLogger drops all log output
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestDB opens a fresh sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// SetupTestLedger returns a ledger backed by a fresh sqlite database
func SetupTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	conn := SetupTestDB(t)
	store := db.NewStore(conn, db.TypeSQLite, DiscardLogger())
	return ledger.New(store, TestProgram, DiscardLogger())
}

// SetupMemLedger returns a ledger over an in-memory store, for tests that seed raw records
func SetupMemLedger(t *testing.T) (*ledger.Ledger, *memstore.Store) {
	t.Helper()

	store := memstore.NewStore()
	return ledger.New(store, TestProgram, DiscardLogger()), store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  cliparse.StoreSQLite,
		DatabaseURL:   "file::memory:",
		AdminKeySalt:  "test-admin-salt",
		SignerKeySalt: "test-signer-salt",
		ProgramID:     TestProgram,
	}
}

// CreateTestSigner issues a signer and returns its request headers
func CreateTestSigner(t *testing.T, cfg cliparse.Config) map[string]string {
	t.Helper()

	signer, err := auth.NewSigner(cfg.SignerKeySalt)
	if err != nil {
		t.Fatalf("Failed to create test signer: %v", err)
	}
	return map[string]string{
		"X-Signer-ID":  signer.ID,
		"X-Signer-Key": signer.Key,
	}
}

// AdminHeaders returns signer headers plus the poll's admin key
func AdminHeaders(signer map[string]string, cfg cliparse.Config, pollID uint64) map[string]string {
	headers := map[string]string{"X-Admin-Key": auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)}
	for k, v := range signer {
		headers[k] = v
	}
	return headers
}

// CreateTestPoll creates a poll directly in the ledger
func CreateTestPoll(t *testing.T, l *ledger.Ledger, pollID uint64, description string) ledger.Poll {
	t.Helper()

	poll, err := l.CreatePoll(context.Background(), ledger.CreatePollParams{
		PollID:      pollID,
		Description: description,
		PollStart:   100,
		PollEnd:     200,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// AddTestCandidate registers a candidate directly in the ledger
func AddTestCandidate(t *testing.T, l *ledger.Ledger, pollID uint64, name string) {
	t.Helper()

	if _, _, err := l.CreateCandidate(context.Background(), pollID, name); err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
