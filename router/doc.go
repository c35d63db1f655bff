// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voteledger API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, cfg)

# Endpoints

Health:

	GET /health

Signers:

	POST /signers - Issue a signer id and key

Polls (creating requires X-Signer-ID and X-Signer-Key):

	POST /polls      - Create poll, returns admin_key
	GET  /polls      - List polls
	GET  /polls/{id} - Poll record

Candidates (creating also requires X-Admin-Key):

	POST /polls/{id}/candidates        - Register candidate
	GET  /polls/{id}/candidates/{name} - Candidate tally

Votes (requires signer headers):

	POST /polls/{id}/votes - Add one vote to candidate_name

# Handler Initialization

	signerHandler := handlers.NewSignerHandler(cfg)
	pollHandler := handlers.NewPollHandler(l, cfg)
	candidateHandler := handlers.NewCandidateHandler(l, cfg)
	votingHandler := handlers.NewVotingHandler(l, cfg)

All handlers except signers share the same *ledger.Ledger.
*/
package router
