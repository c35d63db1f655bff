package models

import "github.com/danielhkuo/voteledger/ledger"

// Request types

// CandidateAmount is accepted and ignored; a new poll always starts at 0 candidates.
type CreatePollRequest struct {
	PollID          *uint64 `json:"poll_id"`
	Description     string  `json:"description"`
	PollStart       uint64  `json:"poll_start"`
	PollEnd         uint64  `json:"poll_end"`
	CandidateAmount uint64  `json:"candidate_amount,omitempty"`
}

type CreateCandidateRequest struct {
	CandidateName string `json:"candidate_name"`
}

type CastVoteRequest struct {
	CandidateName string `json:"candidate_name"`
}

// Response types

type RegisterSignerResponse struct {
	SignerID  string `json:"signer_id"`
	SignerKey string `json:"signer_key"`
}

type CreatePollResponse struct {
	Poll     ledger.Poll    `json:"poll"`
	Address  ledger.Address `json:"address"`
	AdminKey string         `json:"admin_key"`
}

type PollResponse struct {
	Poll    ledger.Poll    `json:"poll"`
	Address ledger.Address `json:"address"`
}

type ListPollsResponse struct {
	Polls []PollResponse `json:"polls"`
}

type CreateCandidateResponse struct {
	Candidate       ledger.Candidate `json:"candidate"`
	Address         ledger.Address   `json:"address"`
	CandidateAmount uint64           `json:"candidate_amount"`
}

type CandidateResponse struct {
	PollID       uint64           `json:"poll_id"`
	Candidate    ledger.Candidate `json:"candidate"`
	Address      ledger.Address   `json:"address"`
	VotesDisplay string           `json:"votes_display"`
}

type CastVoteResponse struct {
	PollID         uint64 `json:"poll_id"`
	CandidateName  string `json:"candidate_name"`
	CandidateVotes uint64 `json:"candidate_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
