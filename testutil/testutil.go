// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/store"
)

// SetupTestStore starts an in-process Redis and returns a Store connected to
// it. Both are torn down automatically when the test ends.
func SetupTestStore(t *testing.T) (*store.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	s, err := store.New("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	if err := s.Ping(); err != nil {
		t.Fatalf("Failed to ping test store: %v", err)
	}
	t.Cleanup(s.Close)

	return s, mr
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3001,
		RedisURL:        "redis://localhost:6379",
		CORSOrigin:      "http://localhost:3000",
		VoterSalt:       "test-voter-salt",
		PollExpiryHours: 24,
		SweepInterval:   time.Hour,
	}
}

// ExpirePoll rewrites a poll's stored deadline and index score to the given
// instant, simulating a poll whose lifetime has passed without waiting.
func ExpirePoll(t *testing.T, s *store.Store, pollID string, at time.Time) {
	t.Helper()

	if err := s.Client.HSet(store.PollKey(pollID), "expiresAt", at.Format(time.RFC3339Nano)).Err(); err != nil {
		t.Fatalf("Failed to rewrite poll expiry: %v", err)
	}
	z := redis.Z{Score: float64(at.UnixMilli()), Member: pollID}
	if err := s.Client.ZAdd(store.ActivePollsKey, z).Err(); err != nil {
		t.Fatalf("Failed to rewrite index score: %v", err)
	}
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
