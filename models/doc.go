// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON request and response bodies of the HTTP API.

Ledger records (ledger.Poll, ledger.Candidate) are embedded as-is; their
addresses are rendered as hex strings.

# Requests

  - CreatePollRequest: poll_id, description, poll_start, poll_end
    (candidate_amount is accepted and ignored)
  - CreateCandidateRequest: candidate_name
  - CastVoteRequest: candidate_name

# Errors

All errors use ErrorResponse:

	{"error": "Conflict", "kind": "already_exists", "message": "..."}

kind is one of already_exists, not_found, overflow, encoding_too_large,
unauthorized or internal; it is omitted for plain request validation failures.
*/
package models
