// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/voteledger/auth"
	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/middleware"
)

// Request headers checked by the handlers
const (
	HeaderAdminKey  = "X-Admin-Key"
	HeaderSignerID  = "X-Signer-ID"
	HeaderSignerKey = "X-Signer-Key"
)

// ledgerStatus maps a ledger error kind to its HTTP status
func ledgerStatus(kind string) int {
	switch kind {
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindAlreadyExists, ledger.KindOverflow:
		return http.StatusConflict
	case ledger.KindEncodingTooLarge:
		return http.StatusBadRequest
	case ledger.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeLedgerError reports err with its taxonomy kind; internal errors are
// logged and their details hidden from the caller.
func writeLedgerError(w http.ResponseWriter, op string, err error) {
	kind := ledger.KindOf(err)
	status := ledgerStatus(kind)
	if status == http.StatusInternalServerError {
		slog.Error("ledger operation failed", "op", op, "error", err)
		middleware.KindErrorResponse(w, status, kind, "Failed to "+op)
		return
	}
	slog.Info("ledger operation rejected", "op", op, "kind", kind, "error", err)
	middleware.KindErrorResponse(w, status, kind, err.Error())
}

// parsePollID reads the {id} path value as a u64
func parsePollID(r *http.Request) (uint64, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, errors.New("poll_id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("poll_id must be an unsigned 64-bit integer")
	}
	return id, nil
}

// requireSigner checks the signer headers
func requireSigner(r *http.Request, cfg cliparse.Config) error {
	err := auth.ValidateSigner(r.Header.Get(HeaderSignerID), r.Header.Get(HeaderSignerKey), cfg.SignerKeySalt)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrUnauthorized, err)
	}
	return nil
}

// requirePollAdmin checks the signer headers and the poll's admin key
func requirePollAdmin(r *http.Request, cfg cliparse.Config, pollID uint64) error {
	if err := requireSigner(r, cfg); err != nil {
		return err
	}
	if err := auth.ValidateAdminKey(pollID, r.Header.Get(HeaderAdminKey), cfg.AdminKeySalt); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrUnauthorized, err)
	}
	return nil
}
