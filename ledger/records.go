// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// MaxStringLen bounds the encoded length of descriptions and candidate names.
const MaxStringLen = 280

// DiscriminatorLen is the size of the record-type prefix on every stored record.
const DiscriminatorLen = 8

var (
	pollDiscriminator      = discriminator("account:Poll")
	candidateDiscriminator = discriminator("account:Candidate")
)

func discriminator(name string) [DiscriminatorLen]byte {
	sum := sha256.Sum256([]byte(name))
	var d [DiscriminatorLen]byte
	copy(d[:], sum[:DiscriminatorLen])
	return d
}

type Poll struct {
	PollID          uint64 `json:"poll_id"`
	Description     string `json:"description"`
	PollStart       uint64 `json:"poll_start"`
	PollEnd         uint64 `json:"poll_end"`
	CandidateAmount uint64 `json:"candidate_amount"`
}

type Candidate struct {
	CandidateName  string `json:"candidate_name"`
	CandidateVotes uint64 `json:"candidate_votes"`
}

// CheckEncodedLen rejects strings whose encoding exceeds MaxStringLen bytes.
func CheckEncodedLen(field, s string) error {
	if len(s) > MaxStringLen {
		return fmt.Errorf("%s is %d bytes, limit %d: %w", field, len(s), MaxStringLen, ErrEncodingTooLarge)
	}
	return nil
}

// EncodePoll lays out a Poll as discriminator, poll_id, description,
// poll_start, poll_end, candidate_amount.
func EncodePoll(p Poll) ([]byte, error) {
	if err := CheckEncodedLen("description", p.Description); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(DiscriminatorLen + 8 + 4 + len(p.Description) + 24)
	buf.Write(pollDiscriminator[:])
	putU64(&buf, p.PollID)
	putString(&buf, p.Description)
	putU64(&buf, p.PollStart)
	putU64(&buf, p.PollEnd)
	putU64(&buf, p.CandidateAmount)
	return buf.Bytes(), nil
}

func DecodePoll(data []byte) (Poll, error) {
	var p Poll
	r, err := newReader(data, pollDiscriminator)
	if err != nil {
		return p, fmt.Errorf("poll: %w", err)
	}
	p.PollID = r.u64()
	p.Description = r.string()
	p.PollStart = r.u64()
	p.PollEnd = r.u64()
	p.CandidateAmount = r.u64()
	if err := r.done(); err != nil {
		return Poll{}, fmt.Errorf("poll: %w", err)
	}
	return p, nil
}

// EncodeCandidate lays out a Candidate as discriminator, candidate_name, candidate_votes.
func EncodeCandidate(c Candidate) ([]byte, error) {
	if err := CheckEncodedLen("candidate_name", c.CandidateName); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(DiscriminatorLen + 4 + len(c.CandidateName) + 8)
	buf.Write(candidateDiscriminator[:])
	putString(&buf, c.CandidateName)
	putU64(&buf, c.CandidateVotes)
	return buf.Bytes(), nil
}

func DecodeCandidate(data []byte) (Candidate, error) {
	var c Candidate
	r, err := newReader(data, candidateDiscriminator)
	if err != nil {
		return c, fmt.Errorf("candidate: %w", err)
	}
	c.CandidateName = r.string()
	c.CandidateVotes = r.u64()
	if err := r.done(); err != nil {
		return Candidate{}, fmt.Errorf("candidate: %w", err)
	}
	return c, nil
}

// IsPollRecord reports whether data carries the Poll discriminator.
func IsPollRecord(data []byte) bool {
	return len(data) >= DiscriminatorLen && bytes.Equal(data[:DiscriminatorLen], pollDiscriminator[:])
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putString(buf *bytes.Buffer, s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	buf.Write(n[:])
	buf.WriteString(s)
}

// reader records the first failure and turns every later read into a no-op.
type reader struct {
	data []byte
	err  error
}

func newReader(data []byte, want [DiscriminatorLen]byte) (*reader, error) {
	if len(data) < DiscriminatorLen || !bytes.Equal(data[:DiscriminatorLen], want[:]) {
		return nil, fmt.Errorf("%w: discriminator mismatch", ErrCorruptRecord)
	}
	return &reader{data: data[DiscriminatorLen:]}, nil
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data) < n {
		r.err = fmt.Errorf("%w: truncated", ErrCorruptRecord)
		return nil
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) string() string {
	nb := r.take(4)
	if nb == nil {
		return ""
	}
	n := binary.LittleEndian.Uint32(nb)
	if n > MaxStringLen {
		r.err = fmt.Errorf("%w: string length %d", ErrCorruptRecord, n)
		return ""
	}
	return string(r.take(int(n)))
}

func (r *reader) done() error {
	if r.err != nil {
		return r.err
	}
	if len(r.data) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorruptRecord, len(r.data))
	}
	return nil
}
