// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides typed access to the shared Redis store.

# Connections

Store holds three go-redis clients built from one REDIS_URL: Client for data
operations, Pub for publishing, and Sub for the pattern subscription. Pub/sub
needs its own connections because a subscribed Redis connection cannot issue
regular commands.

# Key Layout

Every poll owns four records, all keyed by the poll ID and all expiring
together:

	poll:<id>         metadata hash (question, options JSON, timestamps, flag)
	poll:votes:<id>   vote-counter hash (option ID → count)
	poll:voters:<id>  voter-fingerprint set
	polls:active      global sorted set, score = expiry unix-millis

# Channels

State changes are broadcast on per-poll channels:

	poll:<id>:updates   full poll snapshot JSON after each vote
	poll:<id>:closed    bare poll ID on close or delete

ParseChannel is the defensive inverse of the channel helpers: it rejects any
name that does not match the expected shape instead of erroring, so a
malformed or future channel name can never take down a subscriber.
*/
package store
