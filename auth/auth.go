// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidSignerKey = errors.New("invalid signer key")
	ErrMissingSigner    = errors.New("signer id and key are required")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminKey creates an HMAC-based admin key for a poll
// This is deterministic and verifiable
func GenerateAdminKey(pollID uint64, salt string) string {
	return sign(strconv.FormatUint(pollID, 10), salt)
}

// ValidateAdminKey checks if the provided admin key is valid for the poll
func ValidateAdminKey(pollID uint64, adminKey, salt string) error {
	expected := GenerateAdminKey(pollID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// Signer is a registered caller allowed to create polls and cast votes.
type Signer struct {
	ID  string
	Key string
}

// NewSigner issues a fresh signer identity and its key
func NewSigner(salt string) (Signer, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Signer{}, fmt.Errorf("failed to generate signer id: %w", err)
	}
	return Signer{ID: id.String(), Key: GenerateSignerKey(id.String(), salt)}, nil
}

// GenerateSignerKey derives the key for a signer id
func GenerateSignerKey(signerID, salt string) string {
	return sign("signer:"+signerID, salt)
}

// ValidateSigner checks that signerID is a well-formed id and key was issued for it
func ValidateSigner(signerID, key, salt string) error {
	if signerID == "" || key == "" {
		return ErrMissingSigner
	}
	if _, err := uuid.Parse(signerID); err != nil {
		return ErrInvalidSignerKey
	}
	expected := GenerateSignerKey(signerID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidSignerKey
	}
	return nil
}

func sign(message, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(message))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
