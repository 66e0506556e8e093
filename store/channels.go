// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"strings"

	"github.com/danielhkuo/livepoll/auth"
)

// Event kinds carried on poll channels.
const (
	KindUpdate = "updates"
	KindClosed = "closed"
)

// Pub/sub patterns covering every poll's channels. One pattern subscription
// per kind bounds the connection count regardless of how many polls exist.
const (
	UpdatePattern = "poll:*:updates"
	ClosedPattern = "poll:*:closed"
)

// UpdateChannel returns the per-poll channel carrying full poll snapshots.
func UpdateChannel(pollID string) string {
	return "poll:" + pollID + ":updates"
}

// ClosedChannel returns the per-poll channel carrying closed-poll signals.
func ClosedChannel(pollID string) string {
	return "poll:" + pollID + ":closed"
}

// ParseChannel extracts the poll ID and event kind from a channel name.
// Returns ok=false for anything that is not poll:<valid id>:updates or
// poll:<valid id>:closed; callers drop such messages rather than erroring,
// since an unexpected channel name must never crash the subscriber.
func ParseChannel(channel string) (pollID, kind string, ok bool) {
	rest, found := strings.CutPrefix(channel, "poll:")
	if !found {
		return "", "", false
	}

	pollID, kind, found = strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	if kind != KindUpdate && kind != KindClosed {
		return "", "", false
	}
	if !auth.ValidID(pollID) {
		return "", "", false
	}

	return pollID, kind, true
}
