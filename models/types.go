package models

import "time"

// Broadcast event type constants
const (
	EventVoteUpdate = "vote-update"
	EventPollClosed = "poll-closed"
	EventError      = "error"
)

// Client-originated live message types
const (
	MessageJoinPoll  = "join-poll"
	MessageLeavePoll = "leave-poll"
)

// Request types

// CreatePollRequest carries a new poll. ExpiryHours distinguishes "omitted"
// (nil, server default applies) from an explicit out-of-range zero.
type CreatePollRequest struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	ExpiryHours *int     `json:"expiryHours,omitempty"`
}

type VoteRequest struct {
	OptionID string `json:"optionId"`
}

// ClientMessage is a live-connection request (join-poll or leave-poll).
type ClientMessage struct {
	Type   string `json:"type"`
	PollID string `json:"pollId"`
}

// Event is a tagged server-originated live message. Data carries the full
// poll snapshot for vote-update and the bare poll ID for poll-closed.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Response envelope

type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Poll struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Options    []Option   `json:"options"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  *time.Time `json:"expiresAt"`
	IsActive   bool       `json:"isActive"`
	TotalVotes int        `json:"totalVotes"`
}

type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}
