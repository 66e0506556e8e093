// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier generation and voter fingerprinting.

# Identifiers

GenerateID produces collision-resistant random hex tokens from crypto/rand.
Poll IDs use 8 bytes (16 hex chars), option IDs 6 bytes (12 hex chars);
collision probability is negligible at those sizes, so there is no retry
loop. ValidID enforces the wire shape for identifiers: 1-50 characters of
[A-Za-z0-9_-].

# Voter Fingerprints

VoterFingerprint derives a 32-hex-char HMAC-SHA256 token from the client IP
and User-Agent. It exists solely to reject duplicate votes on a poll; it is
not an identity and must never be treated as a security boundary.
*/
package auth
