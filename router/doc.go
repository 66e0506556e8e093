// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livepoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(repo, hub, s, cfg)

# Endpoints

Health:

	GET /health

Poll lifecycle (public):

	GET    /polls            - List active polls
	POST   /polls            - Create poll
	GET    /polls/{id}       - Get poll with current tallies
	POST   /polls/{id}/close - Stop accepting votes
	DELETE /polls/{id}       - Remove poll and its records

Voting and results (public):

	POST /polls/{id}/vote   - Cast a vote
	GET  /polls/{id}/export - Results as CSV, JSON, or text

Live updates:

	GET /live - WebSocket upgrade into the fan-out hub

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(repo, cfg)
	liveHandler := handlers.NewLiveHandler(hub, cfg)

Poll handlers receive the repository and configuration; the live handler
receives the hub. The health check pings the store directly.
*/
package router
