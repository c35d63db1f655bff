// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/voteledger/auth"
	"github.com/danielhkuo/voteledger/ledger"
	"github.com/danielhkuo/voteledger/models"
	"github.com/danielhkuo/voteledger/testutil"
)

func pollID(id uint64) *uint64 {
	return &id
}

func TestCreatePoll(t *testing.T) {
	l := testutil.SetupTestLedger(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(l, cfg)
	signer := testutil.CreateTestSigner(t, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		headers        map[string]string
		expectedStatus int
		expectedKind   string
		checkResponse  func(t *testing.T, resp *models.CreatePollResponse)
	}{
		{
			name: "valid poll creation",
			requestBody: models.CreatePollRequest{
				PollID:      pollID(1),
				Description: "Best Pet",
				PollStart:   100,
				PollEnd:     200,
			},
			headers:        signer,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreatePollResponse) {
				want := ledger.Poll{PollID: 1, Description: "Best Pet", PollStart: 100, PollEnd: 200}
				if resp.Poll != want {
					t.Errorf("Expected poll %+v, got %+v", want, resp.Poll)
				}
				if resp.Address != l.PollAddress(1) {
					t.Errorf("Expected address %s, got %s", l.PollAddress(1), resp.Address)
				}
				if resp.AdminKey != auth.GenerateAdminKey(1, cfg.AdminKeySalt) {
					t.Error("Admin key does not match expected value")
				}
			},
		},
		{
			name: "candidate_amount ignored",
			requestBody: models.CreatePollRequest{
				PollID:          pollID(2),
				Description:     "Lunch",
				CandidateAmount: 7,
			},
			headers:        signer,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreatePollResponse) {
				if resp.Poll.CandidateAmount != 0 {
					t.Errorf("Expected candidate_amount 0, got %d", resp.Poll.CandidateAmount)
				}
			},
		},
		{
			name:           "duplicate poll id",
			requestBody:    models.CreatePollRequest{PollID: pollID(1), Description: "Again"},
			headers:        signer,
			expectedStatus: http.StatusConflict,
			expectedKind:   ledger.KindAlreadyExists,
		},
		{
			name: "description too long",
			requestBody: models.CreatePollRequest{
				PollID:      pollID(3),
				Description: strings.Repeat("x", ledger.MaxStringLen+1),
			},
			headers:        signer,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   ledger.KindEncodingTooLarge,
		},
		{
			name:           "missing poll id",
			requestBody:    models.CreatePollRequest{Description: "No id"},
			headers:        signer,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing signer",
			requestBody:    models.CreatePollRequest{PollID: pollID(4)},
			expectedStatus: http.StatusUnauthorized,
			expectedKind:   ledger.KindUnauthorized,
		},
		{
			name:        "forged signer key",
			requestBody: models.CreatePollRequest{PollID: pollID(4)},
			headers: map[string]string{
				HeaderSignerID:  signer[HeaderSignerID],
				HeaderSignerKey: "forged",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedKind:   ledger.KindUnauthorized,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			headers:        signer,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedKind != "" {
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Kind != tt.expectedKind {
					t.Errorf("Expected kind %s, got %s", tt.expectedKind, errResp.Kind)
				}
			}

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}

	// A rejected signer must not have created poll 4.
	if _, err := l.GetPoll(context.Background(), 4); err == nil {
		t.Error("Poll 4 exists after unauthorized requests")
	}
}

func TestGetPoll(t *testing.T) {
	l := testutil.SetupTestLedger(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(l, cfg)

	testutil.CreateTestPoll(t, l, 1, "Best Pet")
	testutil.AddTestCandidate(t, l, 1, "Cat")

	tests := []struct {
		name           string
		pollID         string
		expectedStatus int
	}{
		{"existing poll", "1", http.StatusOK},
		{"missing poll", "2", http.StatusNotFound},
		{"non-numeric id", "abc", http.StatusBadRequest},
		{"negative id", "-1", http.StatusBadRequest},
		{"id overflows u64", "18446744073709551616", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/polls/"+tt.pollID, nil, nil)
			req.SetPathValue("id", tt.pollID)
			w := httptest.NewRecorder()

			handler.GetPoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.PollResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Poll.Description != "Best Pet" {
					t.Errorf("Expected description 'Best Pet', got '%s'", resp.Poll.Description)
				}
				if resp.Poll.CandidateAmount != 1 {
					t.Errorf("Expected candidate_amount 1, got %d", resp.Poll.CandidateAmount)
				}
				if resp.Address != l.PollAddress(1) {
					t.Error("Address does not match derived poll address")
				}
			}
		})
	}
}

func TestListPolls(t *testing.T) {
	l := testutil.SetupTestLedger(t)
	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(l, cfg)

	t.Run("empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListPolls(w, testutil.MakeRequest("GET", "/polls", nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), `"polls":[]`) {
			t.Errorf("Expected empty polls array, got %s", w.Body.String())
		}
	})

	testutil.CreateTestPoll(t, l, 20, "Second")
	testutil.CreateTestPoll(t, l, 10, "First")

	t.Run("ordered by poll id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListPolls(w, testutil.MakeRequest("GET", "/polls", nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ListPollsResponse
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Polls) != 2 {
			t.Fatalf("Expected 2 polls, got %d", len(resp.Polls))
		}
		if resp.Polls[0].Poll.PollID != 10 || resp.Polls[1].Poll.PollID != 20 {
			t.Errorf("Polls out of order: %d, %d", resp.Polls[0].Poll.PollID, resp.Polls[1].Poll.PollID)
		}
	})
}
