// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers.

# Poll Endpoints

  - GET    /polls              list active polls
  - POST   /polls              create a poll
  - GET    /polls/{id}         fetch one poll
  - POST   /polls/{id}/vote    cast a vote
  - POST   /polls/{id}/close   stop accepting votes
  - DELETE /polls/{id}         remove the poll and its records
  - GET    /polls/{id}/export  results as CSV (default), JSON, or text

# Live Endpoint

  - GET /live  WebSocket upgrade into the fan-out hub

# Error Mapping

Repository errors map to precise status codes: not found → 404, closed or
invalid option or bad input → 400, already voted → 409 (conflict, not
retryable), anything untyped → 503 with the store presumed unavailable.

Voter fingerprints are derived per request from the client IP and
User-Agent; there is no voter account or session.
*/
package handlers
