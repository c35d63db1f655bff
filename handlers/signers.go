// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voteledger/auth"
	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/middleware"
	"github.com/danielhkuo/voteledger/models"
)

type SignerHandler struct {
	cfg cliparse.Config
}

func NewSignerHandler(cfg cliparse.Config) *SignerHandler {
	return &SignerHandler{cfg: cfg}
}

// Register handles POST /signers
func (h *SignerHandler) Register(w http.ResponseWriter, r *http.Request) {
	signer, err := auth.NewSigner(h.cfg.SignerKeySalt)
	if err != nil {
		slog.Error("failed to issue signer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register signer")
		return
	}

	slog.Info("signer registered", "signer", signer.ID, "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterSignerResponse{
		SignerID:  signer.ID,
		SignerKey: signer.Key,
	})
}
