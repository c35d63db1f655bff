// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/voteledger/cliparse"
	"github.com/danielhkuo/voteledger/handlers"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/middleware"
)

func NewRouter(l *ledger.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	signerHandler := handlers.NewSignerHandler(cfg)
	pollHandler := handlers.NewPollHandler(l, cfg)
	candidateHandler := handlers.NewCandidateHandler(l, cfg)
	votingHandler := handlers.NewVotingHandler(l, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Signer registration
	mux.HandleFunc("POST /signers", middleware.WithLogging(signerHandler.Register))

	// Poll registry
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Candidate registry (admin key required to create)
	mux.HandleFunc("POST /polls/{id}/candidates", middleware.WithLogging(candidateHandler.CreateCandidate))
	mux.HandleFunc("GET /polls/{id}/candidates/{name}", middleware.WithLogging(candidateHandler.GetCandidate))

	// Vote tally
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.CastVote))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteledger API v1"))
	})

	return mux
}
