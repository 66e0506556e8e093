// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bridge

import (
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Bridge is the single long-lived subscriber that fans poll events out to
// live connections. One pattern subscription covers every poll's channels,
// so the connection count stays constant no matter how many polls exist,
// and per-poll delivery order follows publish order because all messages
// arrive on one stream.
type Bridge struct {
	hub    *Hub
	pubsub *redis.PubSub
}

// NewBridge opens the pattern subscription. Call Run to start delivering.
func NewBridge(s *store.Store, hub *Hub) *Bridge {
	return &Bridge{
		hub:    hub,
		pubsub: s.Sub.PSubscribe(store.UpdatePattern, store.ClosedPattern),
	}
}

// Run delivers subscription messages to the hub until Close. The handler
// must stay non-blocking: every poll shares this one stream, so a stall
// here stalls live updates for all of them.
func (b *Bridge) Run() {
	slog.Info("broadcast subscription active",
		"patterns", []string{store.UpdatePattern, store.ClosedPattern})

	for msg := range b.pubsub.Channel() {
		b.dispatch(msg)
	}
}

func (b *Bridge) dispatch(msg *redis.Message) {
	pollID, kind, ok := store.ParseChannel(msg.Channel)
	if !ok {
		// A malicious or future channel name must not crash the bridge.
		slog.Debug("dropping message with unexpected channel", "channel", msg.Channel)
		return
	}

	switch kind {
	case store.KindUpdate:
		var snapshot models.Poll
		if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
			slog.Debug("dropping unparseable poll snapshot", "channel", msg.Channel, "error", err)
			return
		}
		b.hub.Broadcast(pollID, models.Event{Type: models.EventVoteUpdate, Data: snapshot})
	case store.KindClosed:
		b.hub.Broadcast(pollID, models.Event{Type: models.EventPollClosed, Data: pollID})
	}
}

// Close unsubscribes from the broadcast patterns and ends Run.
func (b *Bridge) Close() {
	if err := b.pubsub.PUnsubscribe(store.UpdatePattern, store.ClosedPattern); err != nil {
		slog.Error("failed to unsubscribe", "error", err)
	}
	if err := b.pubsub.Close(); err != nil {
		slog.Error("failed to close subscription", "error", err)
	}
}
