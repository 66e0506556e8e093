// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package bridge fans poll state changes out to live WebSocket connections.

The Hub is the room manager: a single goroutine owning all membership state,
fed through a command channel (actor pattern, no mutexes). Each connection
belongs to at most one poll room; joining a new room implicitly leaves the
old one, and disconnecting drops the membership.

The Bridge is the single long-lived Redis subscriber. It pattern-subscribes
to poll:*:updates and poll:*:closed once at startup, parses the poll ID and
event kind out of each channel name, and re-emits tagged events
(vote-update with the full snapshot, poll-closed with the bare ID) to the
matching room. Messages with unexpected channel names or unparseable
payloads are dropped with a debug log, never treated as fatal.

Conn wraps one gorilla/websocket connection with the usual two pumps. The
write pump drains a buffered channel and drops frames for clients that fall
behind, which keeps the hub's delivery path non-blocking end to end.
Snapshots are idempotent, so the next update corrects any gap.

Delivery is at-least-once and unordered across polls; within one poll it
follows publish order because everything rides a single subscription stream.
*/
package bridge
