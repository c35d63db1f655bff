// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/models"
	"github.com/danielhkuo/voteledger/testutil"
)

func castVote(handler *VotingHandler, pollID, candidate string, headers map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.CastVoteRequest{CandidateName: candidate}, headers)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.CastVote(w, req)
	return w
}

func TestCastVote(t *testing.T) {
	l := testutil.SetupTestLedger(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(l, cfg)
	signer := testutil.CreateTestSigner(t, cfg)

	testutil.CreateTestPoll(t, l, 1, "Best Pet")
	testutil.AddTestCandidate(t, l, 1, "Cat")

	tests := []struct {
		name           string
		pollID         string
		candidate      string
		headers        map[string]string
		expectedStatus int
		expectedKind   string
		expectedVotes  uint64
	}{
		{"first vote", "1", "Cat", signer, http.StatusOK, "", 1},
		{"same signer votes again", "1", "Cat", signer, http.StatusOK, "", 2},
		{"missing candidate", "1", "Dog", signer, http.StatusNotFound, ledger.KindNotFound, 0},
		{"missing poll", "2", "Cat", signer, http.StatusNotFound, ledger.KindNotFound, 0},
		{"empty candidate name", "1", "", signer, http.StatusBadRequest, "", 0},
		{"missing signer", "1", "Cat", nil, http.StatusUnauthorized, ledger.KindUnauthorized, 0},
		{"invalid poll id", "1.5", "Cat", signer, http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := castVote(handler, tt.pollID, tt.candidate, tt.headers)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedKind != "" {
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Kind != tt.expectedKind {
					t.Errorf("Expected kind %s, got %s", tt.expectedKind, errResp.Kind)
				}
			}

			if tt.expectedStatus == http.StatusOK {
				var resp models.CastVoteResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.CandidateVotes != tt.expectedVotes {
					t.Errorf("Expected %d votes, got %d", tt.expectedVotes, resp.CandidateVotes)
				}
				if resp.PollID != 1 || resp.CandidateName != "Cat" {
					t.Errorf("Unexpected response %+v", resp)
				}
			}
		})
	}

	c, err := l.GetCandidate(context.Background(), 1, "Cat")
	if err != nil {
		t.Fatal(err)
	}
	if c.CandidateVotes != 2 {
		t.Errorf("Expected 2 stored votes, got %d", c.CandidateVotes)
	}
}

func TestCastVoteOverflow(t *testing.T) {
	l, store := testutil.SetupMemLedger(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(l, cfg)

	testutil.CreateTestPoll(t, l, 1, "Best Pet")
	data, err := ledger.EncodeCandidate(ledger.Candidate{CandidateName: "Cat", CandidateVotes: math.MaxUint64})
	if err != nil {
		t.Fatal(err)
	}
	err = store.Update(context.Background(), func(tx ledger.Tx) error {
		return tx.Insert(l.CandidateAddress(1, "Cat"), data)
	})
	if err != nil {
		t.Fatal(err)
	}

	w := castVote(handler, "1", "Cat", testutil.CreateTestSigner(t, cfg))

	testutil.AssertStatus(t, w, http.StatusConflict)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Kind != ledger.KindOverflow {
		t.Errorf("Expected kind overflow, got %s", errResp.Kind)
	}
}

func TestCastVoteCorruptRecordHidesDetails(t *testing.T) {
	l, store := testutil.SetupMemLedger(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(l, cfg)

	testutil.CreateTestPoll(t, l, 1, "Best Pet")
	err := store.Update(context.Background(), func(tx ledger.Tx) error {
		return tx.Insert(l.CandidateAddress(1, "Cat"), []byte("not a candidate"))
	})
	if err != nil {
		t.Fatal(err)
	}

	w := castVote(handler, "1", "Cat", testutil.CreateTestSigner(t, cfg))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Kind != ledger.KindInternal {
		t.Errorf("Expected kind internal, got %s", errResp.Kind)
	}
	if errResp.Message != "Failed to cast vote" {
		t.Errorf("Internal error details leaked: %q", errResp.Message)
	}
}
