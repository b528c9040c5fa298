// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/project-judge/auth"
	"github.com/danielhkuo/project-judge/cliparse"
	"github.com/danielhkuo/project-judge/db"
	"github.com/danielhkuo/project-judge/models"
	"github.com/danielhkuo/project-judge/store"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in t.TempDir and is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "judge.db")
	conn, err := db.Open(context.Background(), db.DialectSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps SetupTestDB in a store
func SetupTestStore(t *testing.T) (*sql.DB, *store.SQLStore) {
	t.Helper()
	conn := SetupTestDB(t)
	return conn, store.New(conn, db.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.DefaultConfig()
	cfg.DatabaseURL = "file:test.db"
	cfg.AdminKeySalt = "test-admin-salt"
	return cfg
}

// CreateTestSet creates a set with the given state and returns its admin key
func CreateTestSet(t *testing.T, s *store.SQLStore, cfg cliparse.Config, name string, state models.SetState) string {
	t.Helper()

	ctx := context.Background()
	if err := s.CreateSet(ctx, name, time.Now()); err != nil {
		t.Fatalf("Failed to create test set: %v", err)
	}
	if state != (models.SetState{}) {
		if err := s.UpdateSetState(ctx, name, state); err != nil {
			t.Fatalf("Failed to set test set state: %v", err)
		}
	}

	return auth.GenerateAdminKey(name, cfg.AdminKeySalt)
}

// AddTestCriterion adds a criterion to a set and returns its ID
func AddTestCriterion(t *testing.T, s *store.SQLStore, setName, name string) int64 {
	t.Helper()

	c, err := s.AddCriterion(context.Background(), setName, name)
	if err != nil {
		t.Fatalf("Failed to create test criterion: %v", err)
	}
	return c.ID
}

// AddTestEntry appends an entry to a set and returns its ID
func AddTestEntry(t *testing.T, s *store.SQLStore, setName, name string, sensitive bool) int64 {
	t.Helper()

	e, err := s.AddEntry(context.Background(), models.Entry{
		SetName:   setName,
		Name:      name,
		URL:       "https://example.com/" + name,
		Sensitive: sensitive,
	})
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}
	return e.ID
}

// CastTestVote stores one vote for an entry. scores maps criterion ID to value.
func CastTestVote(t *testing.T, s *store.SQLStore, entryID int64, scores map[int64]int64) string {
	t.Helper()

	token, _ := auth.GenerateVoterToken()
	vote := models.Vote{
		ID:         uuid.NewString(),
		EntryID:    entryID,
		VoterToken: token,
		CreatedAt:  time.Now(),
	}
	for criterionID, value := range scores {
		vote.Subresults = append(vote.Subresults, models.VoteSubresult{
			VoteID:      vote.ID,
			CriterionID: criterionID,
			Value:       value,
		})
	}

	if err := s.InsertVotes(context.Background(), []models.Vote{vote}); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return vote.ID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
