// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ID byte lengths for the two token kinds.
const (
	PollIDBytes   = 8 // 16 hex chars
	OptionIDBytes = 6 // 12 hex chars
)

// MaxIDLength bounds poll and option identifiers on the wire.
const MaxIDLength = 50

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidID reports whether s is a well-formed poll or option identifier:
// 1-50 characters, alphanumeric plus hyphen and underscore.
func ValidID(s string) bool {
	if len(s) == 0 || len(s) > MaxIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// VoterFingerprint derives an opaque dedup token from the client IP and
// User-Agent. It is a best-effort repeat-vote detector, not authentication.
// Includes salt so fingerprints cannot be precomputed off-line.
func VoterFingerprint(ip, userAgent, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip + ":" + userAgent))
	sum := h.Sum(nil)
	// First 16 bytes (128 bits) - enough for deduplication
	return hex.EncodeToString(sum[:16])
}
