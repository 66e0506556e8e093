// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Create input bounds.
const (
	MinOptions        = 2
	MaxOptions        = 10
	MinQuestionLength = 3
	MaxQuestionLength = 500
	MaxOptionLength   = 200
	MinExpiryHours    = 1
	MaxExpiryHours    = 168
)

// Repository owns every poll-related key in the store; no other component
// writes poll state.
type Repository struct {
	s                  *store.Store
	notifier           *Notifier
	defaultExpiryHours int
}

func NewRepository(s *store.Store, defaultExpiryHours int) *Repository {
	return &Repository{
		s:                  s,
		notifier:           NewNotifier(s.Pub),
		defaultExpiryHours: defaultExpiryHours,
	}
}

// Create validates the input, generates poll and option IDs, and persists
// the poll as one pipelined batch: metadata, zeroed counters, active-index
// entry, and a TTL on every poll key. The metadata write precedes the index
// entry inside the batch so the index never references a poll without
// metadata.
func (r *Repository) Create(question string, optionTexts []string, expiryHours *int) (*models.Poll, error) {
	question = strings.TrimSpace(question)
	if len(question) < MinQuestionLength || len(question) > MaxQuestionLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("question must be %d-%d characters", MinQuestionLength, MaxQuestionLength)}
	}

	if len(optionTexts) < MinOptions || len(optionTexts) > MaxOptions {
		return nil, &ValidationError{Reason: fmt.Sprintf("polls need %d-%d options", MinOptions, MaxOptions)}
	}

	hours := r.defaultExpiryHours
	if expiryHours != nil {
		hours = *expiryHours
	}
	if hours < MinExpiryHours || hours > MaxExpiryHours {
		return nil, &ValidationError{Reason: fmt.Sprintf("expiry must be %d-%d hours", MinExpiryHours, MaxExpiryHours)}
	}

	pollID, err := auth.GenerateID(auth.PollIDBytes)
	if err != nil {
		return nil, err
	}

	options := make([]models.Option, 0, len(optionTexts))
	voteFields := make(map[string]interface{}, len(optionTexts))
	for _, text := range optionTexts {
		text = strings.TrimSpace(text)
		if text == "" || len(text) > MaxOptionLength {
			return nil, &ValidationError{Reason: fmt.Sprintf("options must be 1-%d characters", MaxOptionLength)}
		}
		optionID, err := auth.GenerateID(auth.OptionIDBytes)
		if err != nil {
			return nil, err
		}
		options = append(options, models.Option{ID: optionID, Text: text, Votes: 0})
		voteFields[optionID] = "0"
	}

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}

	now := time.Now().UTC()
	ttl := time.Duration(hours) * time.Hour
	expiresAt := now.Add(ttl)

	p := &models.Poll{
		ID:         pollID,
		Question:   question,
		Options:    options,
		CreatedAt:  now,
		ExpiresAt:  &expiresAt,
		IsActive:   true,
		TotalVotes: 0,
	}

	pipe := r.s.Client.Pipeline()
	pipe.HMSet(store.PollKey(pollID), map[string]interface{}{
		"id":        pollID,
		"question":  question,
		"options":   string(optionsJSON),
		"createdAt": now.Format(time.RFC3339Nano),
		"expiresAt": expiresAt.Format(time.RFC3339Nano),
		"isActive":  "true",
	})
	pipe.HMSet(store.VotesKey(pollID), voteFields)
	pipe.ZAdd(store.ActivePollsKey, redis.Z{
		Score:  float64(expiresAt.UnixMilli()),
		Member: pollID,
	})
	pipe.Expire(store.PollKey(pollID), ttl)
	pipe.Expire(store.VotesKey(pollID), ttl)
	if _, err := pipe.Exec(); err != nil {
		return nil, fmt.Errorf("failed to persist poll: %w", err)
	}

	slog.Info("poll created", "poll_id", pollID, "question", question, "options", len(options), "expires_at", expiresAt)
	return p, nil
}

// Get reads poll metadata and current counters, recomputes the vote total,
// and evaluates expiry at read time: a poll past its deadline reports
// isActive=false even before the sweep removes it.
func (r *Repository) Get(pollID string) (*models.Poll, error) {
	data, err := r.s.Client.HGetAll(store.PollKey(pollID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read poll: %w", err)
	}
	if data["id"] == "" {
		return nil, ErrNotFound
	}

	votes, err := r.s.Client.HGetAll(store.VotesKey(pollID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read vote counters: %w", err)
	}

	var options []models.Option
	if err := json.Unmarshal([]byte(data["options"]), &options); err != nil {
		return nil, fmt.Errorf("corrupt options record for poll %s: %w", pollID, err)
	}

	totalVotes := 0
	for i := range options {
		count, _ := strconv.Atoi(votes[options[i].ID])
		options[i].Votes = count
		totalVotes += count
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, data["createdAt"])

	var expiresAt *time.Time
	expired := false
	if raw := data["expiresAt"]; raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err == nil {
			expiresAt = &t
			expired = t.Before(time.Now())
		}
	}

	return &models.Poll{
		ID:         data["id"],
		Question:   data["question"],
		Options:    options,
		CreatedAt:  createdAt,
		ExpiresAt:  expiresAt,
		IsActive:   data["isActive"] == "true" && !expired,
		TotalVotes: totalVotes,
	}, nil
}

// ListActive returns polls from the active index whose expiry is still in
// the future, each re-validated through Get so flagged-off polls drop out.
func (r *Repository) ListActive() ([]*models.Poll, error) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	pollIDs, err := r.s.Client.ZRangeByScore(store.ActivePollsKey, redis.ZRangeBy{
		Min: now,
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read active index: %w", err)
	}

	polls := make([]*models.Poll, 0, len(pollIDs))
	for _, pollID := range pollIDs {
		p, err := r.Get(pollID)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.IsActive {
			polls = append(polls, p)
		}
	}
	return polls, nil
}

// Vote records one vote for optionID on behalf of fingerprint and returns
// the updated poll.
//
// The protocol is validate, membership-test, then a single atomic batch that
// increments the counter and records the fingerprint. Counters use HINCRBY,
// so two concurrent votes from different fingerprints both land. Two
// concurrent votes from the same fingerprint can both pass the membership
// test before either writes it; that narrow over-count (at most one per
// racing fingerprint) is accepted rather than serialized behind a per-poll
// lock.
func (r *Repository) Vote(pollID, optionID, fingerprint string) (*models.Poll, error) {
	p, err := r.Get(pollID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrClosed
	}

	validOption := false
	for _, opt := range p.Options {
		if opt.ID == optionID {
			validOption = true
			break
		}
	}
	if !validOption {
		return nil, ErrInvalidOption
	}

	voted, err := r.s.Client.SIsMember(store.VotersKey(pollID), fingerprint).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check voter set: %w", err)
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	// Single MULTI/EXEC batch: the only state-mutating step. The voter set
	// is created lazily here, so it also picks up the poll's remaining TTL
	// to keep all poll keys expiring together.
	pipe := r.s.Client.TxPipeline()
	pipe.HIncrBy(store.VotesKey(pollID), optionID, 1)
	pipe.SAdd(store.VotersKey(pollID), fingerprint)
	if p.ExpiresAt != nil {
		if remaining := time.Until(*p.ExpiresAt); remaining > 0 {
			pipe.Expire(store.VotersKey(pollID), remaining)
		}
	}
	if _, err := pipe.Exec(); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	updated, err := r.Get(pollID)
	if err != nil {
		return nil, err
	}

	r.notifier.PublishUpdate(updated)
	slog.Info("vote recorded", "poll_id", pollID, "option_id", optionID, "total_votes", updated.TotalVotes)
	return updated, nil
}

// Close flips the active flag without deleting data. Returns false only if
// the poll does not exist; closing an already-closed poll returns true, the
// flag write being unconditional.
func (r *Repository) Close(pollID string) (bool, error) {
	exists, err := r.s.Client.Exists(store.PollKey(pollID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check poll: %w", err)
	}
	if exists == 0 {
		return false, nil
	}

	if err := r.s.Client.HSet(store.PollKey(pollID), "isActive", "false").Err(); err != nil {
		return false, fmt.Errorf("failed to close poll: %w", err)
	}

	r.notifier.PublishClosed(pollID)
	slog.Info("poll closed", "poll_id", pollID)
	return true, nil
}

// Delete removes all four poll records. Returns true iff at least one key
// existed, which makes deletion idempotent: a second call finds nothing and
// reports false.
func (r *Repository) Delete(pollID string) (bool, error) {
	pipe := r.s.Client.Pipeline()
	delPoll := pipe.Del(store.PollKey(pollID))
	delVotes := pipe.Del(store.VotesKey(pollID))
	delVoters := pipe.Del(store.VotersKey(pollID))
	remIndex := pipe.ZRem(store.ActivePollsKey, pollID)
	if _, err := pipe.Exec(); err != nil {
		return false, fmt.Errorf("failed to delete poll: %w", err)
	}

	deleted := delPoll.Val() > 0 || delVotes.Val() > 0 || delVoters.Val() > 0 || remIndex.Val() > 0
	if deleted {
		// Close and delete share the same client-visible signal: stop
		// accepting this poll.
		r.notifier.PublishClosed(pollID)
		slog.Info("poll deleted", "poll_id", pollID)
	}
	return deleted, nil
}

// SweepExpired deletes every poll whose index entry is at or before now and
// returns the number actually removed. Safe to run concurrently with live
// traffic: Delete is idempotent, so racing sweeps or votes resolve to
// "poll no longer found".
func (r *Repository) SweepExpired() (int, error) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	expiredIDs, err := r.s.Client.ZRangeByScore(store.ActivePollsKey, redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to query expired polls: %w", err)
	}

	removed := 0
	for _, pollID := range expiredIDs {
		deleted, err := r.Delete(pollID)
		if err != nil {
			return removed, err
		}
		if deleted {
			removed++
		}
	}

	if removed > 0 {
		slog.Info("cleaned up expired polls", "count", removed)
	}
	return removed, nil
}
