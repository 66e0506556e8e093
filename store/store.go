// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"log/slog"

	"github.com/go-redis/redis"
)

// Redis key prefixes for poll records. All four records of a poll are keyed
// by the poll identifier and expire together.
const (
	PollKeyPrefix   = "poll:"
	VotesKeyPrefix  = "poll:votes:"
	VotersKeyPrefix = "poll:voters:"
	ActivePollsKey  = "polls:active"
)

// Store holds the Redis connections. A subscribed connection cannot issue
// regular commands, so pub/sub gets dedicated clients.
type Store struct {
	Client *redis.Client // data operations
	Pub    *redis.Client // publish
	Sub    *redis.Client // subscribe
}

// New opens the three Redis connections described by redisURL.
func New(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	s := &Store{
		Client: redis.NewClient(opts),
		Pub:    redis.NewClient(opts),
		Sub:    redis.NewClient(opts),
	}
	return s, nil
}

// Ping verifies the data connection is reachable.
func (s *Store) Ping() error {
	if err := s.Client.Ping().Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close shuts down all connections. Called last during shutdown, after the
// subscriber has unsubscribed.
func (s *Store) Close() {
	for _, c := range []*redis.Client{s.Sub, s.Pub, s.Client} {
		if err := c.Close(); err != nil {
			slog.Error("failed to close redis connection", "error", err)
		}
	}
}

// PollKey returns the metadata hash key for a poll.
func PollKey(pollID string) string {
	return PollKeyPrefix + pollID
}

// VotesKey returns the vote-counter hash key for a poll.
func VotesKey(pollID string) string {
	return VotesKeyPrefix + pollID
}

// VotersKey returns the voter-fingerprint set key for a poll.
func VotersKey(pollID string) string {
	return VotersKeyPrefix + pollID
}
