// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math/big"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/middleware"
	"github.com/danielhkuo/voteledger/models"
)

type CandidateHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewCandidateHandler(l *ledger.Ledger, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{ledger: l, cfg: cfg}
}

// CreateCandidate handles POST /polls/{id}/candidates
// Requires a signer and the poll's admin key
func (h *CandidateHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, err := parsePollID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := requirePollAdmin(r, h.cfg, pollID); err != nil {
		writeLedgerError(w, "create candidate", err)
		return
	}

	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_name is required")
		return
	}

	candidate, poll, err := h.ledger.CreateCandidate(r.Context(), pollID, req.CandidateName)
	if err != nil {
		writeLedgerError(w, "create candidate", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCandidateResponse{
		Candidate:       candidate,
		Address:         h.ledger.CandidateAddress(pollID, candidate.CandidateName),
		CandidateAmount: poll.CandidateAmount,
	})
}

// GetCandidate handles GET /polls/{id}/candidates/{name}
func (h *CandidateHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, err := parsePollID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_name is required")
		return
	}

	candidate, err := h.ledger.GetCandidate(r.Context(), pollID, name)
	if err != nil {
		writeLedgerError(w, "get candidate", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateResponse{
		PollID:       pollID,
		Candidate:    candidate,
		Address:      h.ledger.CandidateAddress(pollID, name),
		VotesDisplay: formatVotes(candidate.CandidateVotes),
	})
}

// formatVotes renders a tally with thousands separators, e.g. 1,234,567
func formatVotes(votes uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(votes))
}
