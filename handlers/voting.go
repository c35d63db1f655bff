// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/middleware"
	"github.com/danielhkuo/voteledger/models"
)

type VotingHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewVotingHandler(l *ledger.Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{ledger: l, cfg: cfg}
}

// CastVote handles POST /polls/{id}/votes
// Any recognized signer may vote, any number of times
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parsePollID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := requireSigner(r, h.cfg); err != nil {
		writeLedgerError(w, "cast vote", err)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_name is required")
		return
	}

	votes, err := h.ledger.CastVote(r.Context(), pollID, req.CandidateName)
	if err != nil {
		writeLedgerError(w, "cast vote", err)
		return
	}

	slog.Info("vote accepted",
		"poll_id", pollID,
		"candidate_name", req.CandidateName,
		"tally", formatVotes(votes),
		"signer", r.Header.Get(HeaderSignerID),
	)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		PollID:         pollID,
		CandidateName:  req.CandidateName,
		CandidateVotes: votes,
	})
}
