// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// DefaultProgram is the program identity used when none is configured.
const DefaultProgram = "voteledger"

type Ledger struct {
	store   Store
	program string
	logger  *slog.Logger
}

func New(store Store, program string, logger *slog.Logger) *Ledger {
	if program == "" {
		program = DefaultProgram
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{store: store, program: program, logger: logger}
}

func (l *Ledger) Program() string {
	return l.program
}

func (l *Ledger) PollAddress(pollID uint64) Address {
	return PollAddress(l.program, pollID)
}

func (l *Ledger) CandidateAddress(pollID uint64, name string) Address {
	return CandidateAddress(l.program, pollID, name)
}

type CreatePollParams struct {
	PollID      uint64
	Description string
	PollStart   uint64
	PollEnd     uint64
	// CandidateAmount is accepted for compatibility and ignored; the count starts at 0.
	CandidateAmount uint64
}

// CreatePoll allocates a Poll at address(poll_id).
func (l *Ledger) CreatePoll(ctx context.Context, params CreatePollParams) (Poll, error) {
	poll := Poll{
		PollID:      params.PollID,
		Description: params.Description,
		PollStart:   params.PollStart,
		PollEnd:     params.PollEnd,
	}
	data, err := EncodePoll(poll)
	if err != nil {
		return Poll{}, fmt.Errorf("create poll %d: %w", params.PollID, err)
	}

	addr := l.PollAddress(params.PollID)
	err = l.store.Update(ctx, func(tx Tx) error {
		return tx.Insert(addr, data)
	})
	if err != nil {
		return Poll{}, fmt.Errorf("create poll %d: %w", params.PollID, err)
	}

	l.logger.Info("poll created", "poll_id", poll.PollID, "address", addr.String())
	return poll, nil
}

// CreateCandidate allocates a Candidate under an existing poll and bumps the
// poll's candidate_amount in the same transaction.
func (l *Ledger) CreateCandidate(ctx context.Context, pollID uint64, name string) (Candidate, Poll, error) {
	candidate := Candidate{CandidateName: name}
	candidateData, err := EncodeCandidate(candidate)
	if err != nil {
		return Candidate{}, Poll{}, fmt.Errorf("create candidate %q in poll %d: %w", name, pollID, err)
	}

	pollAddr := l.PollAddress(pollID)
	candidateAddr := l.CandidateAddress(pollID, name)

	var poll Poll
	err = l.store.Update(ctx, func(tx Tx) error {
		raw, err := tx.Get(pollAddr)
		if err != nil {
			return fmt.Errorf("poll: %w", err)
		}
		poll, err = DecodePoll(raw)
		if err != nil {
			return err
		}

		// The uniqueness check goes first; a failed increment rolls it back.
		if err := tx.Insert(candidateAddr, candidateData); err != nil {
			return fmt.Errorf("candidate: %w", err)
		}

		poll.CandidateAmount, err = increment(poll.CandidateAmount)
		if err != nil {
			return fmt.Errorf("candidate_amount: %w", err)
		}
		pollData, err := EncodePoll(poll)
		if err != nil {
			return err
		}
		return tx.Put(pollAddr, pollData)
	})
	if err != nil {
		return Candidate{}, Poll{}, fmt.Errorf("create candidate %q in poll %d: %w", name, pollID, err)
	}

	l.logger.Info("candidate created",
		"poll_id", pollID,
		"candidate_name", name,
		"candidate_amount", poll.CandidateAmount,
		"address", candidateAddr.String(),
	)
	return candidate, poll, nil
}

// CastVote adds one vote to the named candidate and returns the new tally.
func (l *Ledger) CastVote(ctx context.Context, pollID uint64, name string) (uint64, error) {
	pollAddr := l.PollAddress(pollID)
	candidateAddr := l.CandidateAddress(pollID, name)

	var candidate Candidate
	err := l.store.Update(ctx, func(tx Tx) error {
		if _, err := tx.Get(pollAddr); err != nil {
			return fmt.Errorf("poll: %w", err)
		}
		raw, err := tx.Get(candidateAddr)
		if err != nil {
			return fmt.Errorf("candidate: %w", err)
		}
		candidate, err = DecodeCandidate(raw)
		if err != nil {
			return err
		}

		candidate.CandidateVotes, err = increment(candidate.CandidateVotes)
		if err != nil {
			return fmt.Errorf("candidate_votes: %w", err)
		}
		data, err := EncodeCandidate(candidate)
		if err != nil {
			return err
		}
		return tx.Put(candidateAddr, data)
	})
	if err != nil {
		return 0, fmt.Errorf("vote for %q in poll %d: %w", name, pollID, err)
	}

	l.logger.Info("vote cast",
		"poll_id", pollID,
		"candidate_name", candidate.CandidateName,
		"candidate_votes", candidate.CandidateVotes,
	)
	return candidate.CandidateVotes, nil
}

func (l *Ledger) GetPoll(ctx context.Context, pollID uint64) (Poll, error) {
	var poll Poll
	addr := l.PollAddress(pollID)
	err := l.store.View(ctx, func(tx Tx) error {
		raw, err := tx.Get(addr)
		if err != nil {
			return err
		}
		poll, err = DecodePoll(raw)
		return err
	})
	if err != nil {
		return Poll{}, fmt.Errorf("get poll %d: %w", pollID, err)
	}
	return poll, nil
}

func (l *Ledger) GetCandidate(ctx context.Context, pollID uint64, name string) (Candidate, error) {
	var candidate Candidate
	pollAddr := l.PollAddress(pollID)
	candidateAddr := l.CandidateAddress(pollID, name)
	err := l.store.View(ctx, func(tx Tx) error {
		if _, err := tx.Get(pollAddr); err != nil {
			return fmt.Errorf("poll: %w", err)
		}
		raw, err := tx.Get(candidateAddr)
		if err != nil {
			return fmt.Errorf("candidate: %w", err)
		}
		candidate, err = DecodeCandidate(raw)
		return err
	})
	if err != nil {
		return Candidate{}, fmt.Errorf("get candidate %q in poll %d: %w", name, pollID, err)
	}
	return candidate, nil
}

// ListPolls returns every poll ordered by poll_id.
func (l *Ledger) ListPolls(ctx context.Context) ([]Poll, error) {
	polls := []Poll{}
	err := l.store.Scan(ctx, func(addr Address, data []byte) error {
		if !IsPollRecord(data) {
			return nil
		}
		poll, err := DecodePoll(data)
		if err != nil {
			return fmt.Errorf("%s: %w", addr, err)
		}
		polls = append(polls, poll)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].PollID < polls[j].PollID })
	return polls, nil
}

func increment(v uint64) (uint64, error) {
	if v == math.MaxUint64 {
		return v, ErrOverflow
	}
	return v + 1, nil
}
