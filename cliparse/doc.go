// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3001)
  - RedisURL: Redis connection URL (default: redis://localhost:6379)
  - CORSOrigin: Allowed CORS origins, comma separated (default: http://localhost:3000)
  - VoterSalt: Secret for voter fingerprint HMAC (required)
  - PollExpiryHours: Default poll lifetime in hours, 1-168 (default: 24)
  - SweepInterval: Expired-poll sweep interval (default: 1h)

# CLI Flags

	-p              Server port
	-r              Redis URL
	--cors-origin   Allowed CORS origins
	--expiry-hours  Default poll expiry in hours
	--sweep-interval Sweep interval (Go duration string)
	--voter-salt    Voter fingerprint salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	REDIS_URL         → -r
	CORS_ORIGIN       → --cors-origin
	POLL_EXPIRY_HOURS → --expiry-hours
	SWEEP_INTERVAL    → --sweep-interval
	VOTER_SALT        → --voter-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or out of range:

  - VOTER_SALT must be provided
  - PORT must be 1-65535
  - POLL_EXPIRY_HOURS must be 1-168
  - SWEEP_INTERVAL must be at least one second
*/
package cliparse
