// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voteledger/auth"
	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/middleware"
	"github.com/danielhkuo/voteledger/models"
)

type PollHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewPollHandler(l *ledger.Ledger, cfg cliparse.Config) *PollHandler {
	return &PollHandler{ledger: l, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	if err := requireSigner(r, h.cfg); err != nil {
		writeLedgerError(w, "create poll", err)
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.PollID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := h.ledger.CreatePoll(r.Context(), ledger.CreatePollParams{
		PollID:          *req.PollID,
		Description:     req.Description,
		PollStart:       req.PollStart,
		PollEnd:         req.PollEnd,
		CandidateAmount: req.CandidateAmount,
	})
	if err != nil {
		writeLedgerError(w, "create poll", err)
		return
	}

	slog.Info("poll registered", "poll_id", poll.PollID, "signer", r.Header.Get(HeaderSignerID))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		Poll:     poll,
		Address:  h.ledger.PollAddress(poll.PollID),
		AdminKey: auth.GenerateAdminKey(poll.PollID, h.cfg.AdminKeySalt),
	})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := parsePollID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	poll, err := h.ledger.GetPoll(r.Context(), pollID)
	if err != nil {
		writeLedgerError(w, "get poll", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{
		Poll:    poll,
		Address: h.ledger.PollAddress(pollID),
	})
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.ledger.ListPolls(r.Context())
	if err != nil {
		writeLedgerError(w, "list polls", err)
		return
	}

	resp := models.ListPollsResponse{Polls: make([]models.PollResponse, 0, len(polls))}
	for _, poll := range polls {
		resp.Polls = append(resp.Polls, models.PollResponse{
			Poll:    poll,
			Address: h.ledger.PollAddress(poll.PollID),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
