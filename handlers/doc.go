// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voteledger API.

# Handler Types

Each handler is a struct holding the ledger and config:

  - SignerHandler: Signer registration
  - PollHandler: Poll creation and reads
  - CandidateHandler: Candidate registration and reads
  - VotingHandler: Vote casting

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(l, cfg)

# Authorization

Every write needs a registered signer, sent as X-Signer-ID and X-Signer-Key.
Creating a poll returns its admin_key; registering candidates additionally
requires that key in X-Admin-Key.

	POST /signers                  → Register (returns signer_id, signer_key)
	POST /polls                    → CreatePoll (returns admin_key)
	POST /polls/{id}/candidates    → CreateCandidate (admin only)
	POST /polls/{id}/votes         → CastVote

# Errors

Ledger errors map onto HTTP statuses and carry their kind in the body:

	not_found           404
	already_exists      409
	overflow            409
	encoding_too_large  400
	unauthorized        401
	internal            500 (details logged, not returned)
*/
package handlers
