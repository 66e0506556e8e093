// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and live-event types.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options, expiryHours
  - VoteRequest: optionId
  - ClientMessage: live-connection join-poll / leave-poll request

# Response Types

  - APIResponse: the {success, data, error, message} envelope used by every
    HTTP endpoint
  - Event: tagged server-to-client live message (vote-update, poll-closed,
    error)

# Domain Types

  - Poll: question, ordered options, lifetime, derived total vote count
  - Option: one selectable answer with its own vote counter

Poll and Option marshal to the exact snapshot shape broadcast to live
connections, so handlers and the fan-out bridge share one wire format.
*/
package models
