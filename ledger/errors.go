// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "errors"

var (
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrOverflow         = errors.New("counter overflow")
	ErrEncodingTooLarge = errors.New("encoded value too large")
	ErrUnauthorized     = errors.New("unauthorized")

	// ErrCorruptRecord means stored bytes do not decode as the expected record.
	ErrCorruptRecord = errors.New("corrupt record")
)

// Error kinds as reported to callers.
const (
	KindAlreadyExists    = "already_exists"
	KindNotFound         = "not_found"
	KindOverflow         = "overflow"
	KindEncodingTooLarge = "encoding_too_large"
	KindUnauthorized     = "unauthorized"
	KindInternal         = "internal"
)

// KindOf maps err onto the ledger error taxonomy.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrOverflow):
		return KindOverflow
	case errors.Is(err, ErrEncodingTooLarge):
		return KindEncodingTooLarge
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}
