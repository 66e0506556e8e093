// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Response Helpers

Every endpoint answers with the {success, data, error, message} envelope:

  - SuccessResponse: success=true with data and optional message
  - ErrorResponse: success=false with an error string
  - JSONResponse: raw JSON write for anything else (exports)
  - ParseJSONBody: decode a request body

# Middleware

  - WithLogging: slog request start/completion with duration
  - CORS: allows configured origins (comma separated list, or "*")

# Utilities

GetClientIP resolves the client address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr; it feeds the voter
fingerprint, so proxy headers matter.
*/
package middleware
