// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger keeps polls, candidates and their vote tallies in a
key-addressed record store.

# Addressing

Records are never looked up by handle. Each one lives at an address derived
from the program identity and a fixed list of seeds:

	address(Poll)      = DeriveAddress(program, le64(poll_id))
	address(Candidate) = DeriveAddress(program, le64(poll_id), candidate_name)

Seeds are length-prefixed before hashing, so a candidate name can never be
split differently to reach another record's address.

# Operations

	l := ledger.New(store, "voteledger", logger)

	l.CreatePoll(ctx, ledger.CreatePollParams{PollID: 1, Description: "Best Pet"})
	l.CreateCandidate(ctx, 1, "Cat")
	votes, err := l.CastVote(ctx, 1, "Cat")

CreatePoll and CreateCandidate are create-if-absent: repeating them fails with
ErrAlreadyExists and leaves the first record untouched. CreateCandidate inserts
the candidate and increments the poll's candidate_amount in one Update; if
either step fails neither is visible. CastVote increments candidate_votes by
exactly one. Counters fail with ErrOverflow instead of wrapping.

# Errors

Every failure wraps one of ErrAlreadyExists, ErrNotFound, ErrOverflow,
ErrEncodingTooLarge or ErrUnauthorized (or a store error). Use errors.Is or
KindOf to tell them apart.

# Stores

Store is implemented by memstore (in process), db (sqlite and postgres) and
redisstore (Redis WATCH/MULTI).

# Record layout

Records are an 8-byte type discriminator followed by their fields in
declaration order: u64 little-endian, strings as a u32 little-endian length
and at most 280 bytes of text.
*/
package ledger
