// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// addressTag separates ledger addresses from any other SHA-256 use of the same bytes.
const addressTag = "voteledger/derived-address"

// Address is a storage location derived from a program identity and seeds.
type Address [32]byte

// DeriveAddress hashes the program identity and seeds into an Address.
// Every seed is length-prefixed, so distinct seed tuples never share an input.
func DeriveAddress(program string, seeds ...[]byte) Address {
	h := sha256.New()
	h.Write([]byte(addressTag))
	writeSeed(h, []byte(program))

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(seeds)))
	h.Write(count[:])
	for _, seed := range seeds {
		writeSeed(h, seed)
	}

	var addr Address
	copy(addr[:], h.Sum(nil))
	return addr
}

func writeSeed(h interface{ Write([]byte) (int, error) }, seed []byte) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(seed)))
	h.Write(n[:])
	h.Write(seed)
}

// PollSeeds returns the derivation inputs for a poll: [le64(poll_id)].
func PollSeeds(pollID uint64) [][]byte {
	return [][]byte{pollIDSeed(pollID)}
}

// CandidateSeeds returns [le64(poll_id), name].
func CandidateSeeds(pollID uint64, name string) [][]byte {
	return [][]byte{pollIDSeed(pollID), []byte(name)}
}

func pollIDSeed(pollID uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, pollID)
	return b
}

// PollAddress is address(Poll) = f(poll_id).
func PollAddress(program string, pollID uint64) Address {
	return DeriveAddress(program, PollSeeds(pollID)...)
}

// CandidateAddress is address(Candidate) = f(poll_id, candidate_name).
func CandidateAddress(program string, pollID uint64, name string) Address {
	return DeriveAddress(program, CandidateSeeds(pollID, name)...)
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress decodes the hex form produced by Address.String.
func ParseAddress(s string) (Address, error) {
	var addr Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return addr, fmt.Errorf("parse address: %w", err)
	}
	if len(b) != len(addr) {
		return addr, fmt.Errorf("parse address: want %d bytes, got %d", len(addr), len(b))
	}
	copy(addr[:], b)
	return addr, nil
}
