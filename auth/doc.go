// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth decides who may call the ledger.

# Signers

Every mutating request comes from a signer. A signer is registered once and
receives an ID (UUID) and a key:

	signer, err := auth.NewSigner(cfg.SignerKeySalt)

The key is an HMAC of the ID, so it can be checked without storing it:

	err := auth.ValidateSigner(id, key, cfg.SignerKeySalt)

Signers send X-Signer-ID and X-Signer-Key headers.

# Admin Keys

Creating a poll returns an admin key derived from the poll ID:

	adminKey := auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)

Adding candidates to the poll requires it in the X-Admin-Key header:

	err := auth.ValidateAdminKey(pollID, adminKey, cfg.AdminKeySalt)

All comparisons use hmac.Equal.

# Random IDs

	id, err := auth.GenerateID(16) // 32 hex chars
*/
package auth
