// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

Livepoll is an anonymous real-time polling service: anyone can create a
poll, anyone can vote once per poll, and everyone watching the poll sees
tallies update live over WebSocket.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	VOTER_SALT=... REDIS_URL=redis://... go run main.go

Or with flags:

	go run main.go -p 3001 -r "redis://localhost:6379" -voter-salt "..."

# Configuration

Required settings:

  - VOTER_SALT (-voter-salt): Secret for voter fingerprint HMAC

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - REDIS_URL (-r): Redis connection URL (default: redis://localhost:6379)
  - CORS_ORIGIN (-cors-origin): Allowed origins, comma separated
  - POLL_EXPIRY_HOURS (-expiry-hours): Default poll lifetime (default: 24)
  - SWEEP_INTERVAL (-sweep-interval): Expired poll sweep cadence (default: 1h)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, export, live upgrade)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON envelope helpers
  - models: Request/response and event types
  - auth: ID generation, ID validation, voter fingerprints
  - poll: Repository (Redis-backed poll state), notifier, expiry sweeper
  - store: Redis connections, key and channel naming
  - bridge: WebSocket hub and the pub/sub → hub bridge
  - cliparse: Configuration parsing

All poll state lives in Redis; the server itself is stateless apart from
live WebSocket connections, so horizontal scaling only requires pointing
every instance at the same Redis. See package documentation for each
component.
*/
package main
