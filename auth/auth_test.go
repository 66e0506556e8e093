package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int
	}{
		{"poll id length", PollIDBytes, 16},
		{"option id length", OptionIDBytes, 12},
		{"single byte", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID failed: %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("Expected length %d, got %d (%q)", tt.wantLen, len(id), id)
			}
			if !ValidID(id) {
				t.Errorf("Generated ID %q fails ValidID", id)
			}
		})
	}
}

func TestGenerateIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateID(PollIDBytes)
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"simple hex", "a1b2c3d4", true},
		{"with hyphen and underscore", "poll-id_42", true},
		{"single char", "x", true},
		{"max length", strings.Repeat("a", 50), true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 51), false},
		{"contains colon", "poll:123", false},
		{"contains space", "poll 123", false},
		{"contains slash", "a/b", false},
		{"unicode", "pöll", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidID(tt.id); got != tt.want {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestVoterFingerprint(t *testing.T) {
	fp := VoterFingerprint("203.0.113.9", "Mozilla/5.0", "test-salt")

	if len(fp) != 32 {
		t.Errorf("Expected 32 hex chars, got %d (%q)", len(fp), fp)
	}

	// Deterministic for the same inputs
	if fp != VoterFingerprint("203.0.113.9", "Mozilla/5.0", "test-salt") {
		t.Error("Fingerprint is not deterministic")
	}

	// Different IP, UA, or salt changes the fingerprint
	if fp == VoterFingerprint("203.0.113.10", "Mozilla/5.0", "test-salt") {
		t.Error("Different IP produced the same fingerprint")
	}
	if fp == VoterFingerprint("203.0.113.9", "curl/8.0", "test-salt") {
		t.Error("Different User-Agent produced the same fingerprint")
	}
	if fp == VoterFingerprint("203.0.113.9", "Mozilla/5.0", "other-salt") {
		t.Error("Different salt produced the same fingerprint")
	}
}
