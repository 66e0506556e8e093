// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Notifier publishes state changes to per-poll channels. Publishing is
// fire-and-forget: the state change has already committed, so a failed
// publish is logged here and never surfaced to the caller of the mutation.
// Live updates are a convenience layer, not a durability guarantee.
type Notifier struct {
	pub *redis.Client
}

func NewNotifier(pub *redis.Client) *Notifier {
	return &Notifier{pub: pub}
}

// PublishUpdate broadcasts the full poll snapshot after a successful vote.
func (n *Notifier) PublishUpdate(p *models.Poll) {
	payload, err := json.Marshal(p)
	if err != nil {
		slog.Error("failed to marshal poll snapshot", "poll_id", p.ID, "error", err)
		return
	}
	if err := n.pub.Publish(store.UpdateChannel(p.ID), string(payload)).Err(); err != nil {
		slog.Error("failed to publish poll update", "poll_id", p.ID, "error", err)
	}
}

// PublishClosed broadcasts the bare poll ID after a close or delete.
func (n *Notifier) PublishClosed(pollID string) {
	if err := n.pub.Publish(store.ClosedChannel(pollID), pollID).Err(); err != nil {
		slog.Error("failed to publish poll close", "poll_id", pollID, "error", err)
	}
}
