// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/project-judge/auth"
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/scoring"
	"github.com/danielhkuo/project-judge/testutil"
)

// TestConcurrentVoteSubmissions verifies that simultaneous submissions from
// different voters all land and the aggregated totals add up
func TestConcurrentVoteSubmissions(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(s, cfg)

	testutil.CreateTestSet(t, s, cfg, "spring", models.SetState{})
	design := testutil.AddTestCriterion(t, s, "spring", "Design")
	impact := testutil.AddTestCriterion(t, s, "spring", "Impact")
	alpha := testutil.AddTestEntry(t, s, "spring", "alpha", false)
	beta := testutil.AddTestEntry(t, s, "spring", "beta", false)
	s.UpdateSetState(context.Background(), "spring", models.SetState{VotingOpen: true})

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			token, _ := auth.GenerateVoterToken()
			v := int64(voterIdx % 3)
			body := models.SubmitVotesRequest{Votes: []models.VoteInput{
				{EntryID: alpha, Scores: map[int64]int64{design: v, impact: 1}},
				{EntryID: beta, Scores: map[int64]int64{design: -v, impact: 2}},
			}}
			req := testutil.MakeRequest("POST", "/sets/spring/votes", body, map[string]string{"X-Voter-Token": token})
			req.SetPathValue("name", "spring")
			w := httptest.NewRecorder()

			handler.SubmitVotes(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful submissions, got %d", numVoters, successCount.Load())
	}

	count, err := s.CountVotes(context.Background(), "spring")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2*numVoters {
		t.Errorf("Expected %d votes, got %d", 2*numVoters, count)
	}

	ctx := context.Background()
	entries, _ := s.ListEntries(ctx, "spring")
	criteria, _ := s.ListCriteria(ctx, "spring")
	rows, err := s.SumSubresults(ctx, "spring")
	if err != nil {
		t.Fatal(err)
	}
	scores := scoring.Aggregate(entries, criteria, rows)

	// design values 0,1,2,0,1,2,0,1,2,0 sum to 9
	if got := scores[alpha]; got.Total != 9+int64(numVoters) {
		t.Errorf("alpha: expected total %d, got %+v", 9+numVoters, got)
	}
	if got := scores[beta]; got.Total != -9+2*int64(numVoters) {
		t.Errorf("beta: expected total %d, got %+v", -9+2*numVoters, got)
	}
}

// TestConcurrentClose verifies that racing close requests leave the set
// published and never in an inconsistent phase
func TestConcurrentClose(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSetHandler(s, cfg)

	adminKey := testutil.CreateTestSet(t, s, cfg, "spring", models.SetState{VotingOpen: true})

	numAttempts := 5
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/sets/spring/close", nil, map[string]string{"X-Admin-Key": adminKey})
			req.SetPathValue("name", "spring")
			w := httptest.NewRecorder()

			handler.CloseVoting(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() < 1 {
		t.Error("Expected at least one successful close")
	}

	state, err := s.GetSetState(context.Background(), "spring")
	if err != nil {
		t.Fatal(err)
	}
	if state.Phase() != models.PhasePublished {
		t.Errorf("Expected phase published, got %s", state.Phase())
	}
}

// TestConcurrentMoves verifies that racing reorders keep the display order
// dense and every entry present
func TestConcurrentMoves(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewEntryHandler(s, cfg)

	adminKey := testutil.CreateTestSet(t, s, cfg, "spring", models.SetState{})
	var ids []int64
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, testutil.AddTestEntry(t, s, "spring", name, false))
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			idStr := strconv.FormatInt(ids[idx%len(ids)], 10)
			req := testutil.MakeRequest("POST", "/sets/spring/entries/"+idStr+"/move", nil, map[string]string{"X-Admin-Key": adminKey})
			req.SetPathValue("name", "spring")
			req.SetPathValue("id", idStr)
			w := httptest.NewRecorder()

			if idx%2 == 0 {
				handler.MoveUp(w, req)
			} else {
				handler.MoveDown(w, req)
			}
		}(i)
	}

	wg.Wait()

	entries, err := s.ListEntries(context.Background(), "spring")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(ids) {
		t.Fatalf("Expected %d entries, got %d", len(ids), len(entries))
	}
	seen := map[int64]bool{}
	for i, e := range entries {
		if e.Order != i {
			t.Errorf("Expected order %d at position %d, got %d", i, i, e.Order)
		}
		seen[e.ID] = true
	}
	if len(seen) != len(ids) {
		t.Errorf("Expected %d distinct entries, got %d", len(ids), len(seen))
	}
}

// TestConcurrentCriteria verifies that racing requests for names differing
// only in case create exactly one criterion
func TestConcurrentCriteria(t *testing.T) {
	_, s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSetHandler(s, cfg)

	adminKey := testutil.CreateTestSet(t, s, cfg, "spring", models.SetState{})
	names := []string{"Design", "design", "DESIGN", "dEsIgN", "Design"}

	var created, conflicts atomic.Int32
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := models.AddCriterionRequest{Name: name}
			req := testutil.MakeRequest("POST", "/sets/spring/criteria", body, map[string]string{"X-Admin-Key": adminKey})
			req.SetPathValue("name", "spring")
			w := httptest.NewRecorder()

			handler.AddCriterion(w, req)

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected status %d for %q", w.Code, name)
			}
		}()
	}

	wg.Wait()

	if created.Load() != 1 || conflicts.Load() != int32(len(names)-1) {
		t.Errorf("Expected 1 created and %d conflicts, got %d and %d", len(names)-1, created.Load(), conflicts.Load())
	}

	criteria, err := s.ListCriteria(context.Background(), "spring")
	if err != nil {
		t.Fatal(err)
	}
	if len(criteria) != 1 {
		t.Errorf("Expected 1 criterion, got %+v", criteria)
	}
}
