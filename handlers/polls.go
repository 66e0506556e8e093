// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/poll"
)

type PollHandler struct {
	repo *poll.Repository
	cfg  cliparse.Config
}

func NewPollHandler(repo *poll.Repository, cfg cliparse.Config) *PollHandler {
	return &PollHandler{repo: repo, cfg: cfg}
}

// respondPollError maps repository errors to precise status codes. Typed
// application errors are never collapsed into a generic failure; anything
// untyped is treated as the store being unavailable.
func respondPollError(w http.ResponseWriter, err error) {
	var vErr *poll.ValidationError
	switch {
	case errors.Is(err, poll.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, poll.ErrClosed):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Poll is closed")
	case errors.Is(err, poll.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option")
	case errors.Is(err, poll.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted on this poll")
	case errors.As(err, &vErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, vErr.Reason)
	default:
		slog.Error("store operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable, retry later")
	}
}

// pollID extracts and shape-checks the {id} path segment. Returns "" after
// writing the error response if the ID is malformed.
func pollID(w http.ResponseWriter, r *http.Request) string {
	id := r.PathValue("id")
	if !auth.ValidID(id) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll ID")
		return ""
	}
	return id
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.repo.ListActive()
	if err != nil {
		respondPollError(w, err)
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, polls, "")
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.repo.Create(req.Question, req.Options, req.ExpiryHours)
	if err != nil {
		respondPollError(w, err)
		return
	}

	middleware.SuccessResponse(w, http.StatusCreated, p, "Poll created")
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id := pollID(w, r)
	if id == "" {
		return
	}

	p, err := h.repo.Get(id)
	if err != nil {
		respondPollError(w, err)
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, p, "")
}

// Vote handles POST /polls/{id}/vote
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id := pollID(w, r)
	if id == "" {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !auth.ValidID(req.OptionID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		return
	}

	fingerprint := auth.VoterFingerprint(middleware.GetClientIP(r), r.UserAgent(), h.cfg.VoterSalt)

	p, err := h.repo.Vote(id, req.OptionID, fingerprint)
	if err != nil {
		respondPollError(w, err)
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, p, "Vote recorded")
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	id := pollID(w, r)
	if id == "" {
		return
	}

	closed, err := h.repo.Close(id)
	if err != nil {
		respondPollError(w, err)
		return
	}
	if !closed {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, nil, "Poll closed")
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id := pollID(w, r)
	if id == "" {
		return
	}

	deleted, err := h.repo.Delete(id)
	if err != nil {
		respondPollError(w, err)
		return
	}
	if !deleted {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, nil, "Poll deleted")
}
