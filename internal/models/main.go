// Package models defines the wire-level data structures and validation
// shared between the leaderboard client and server.
package models

import (
	"errors"
	"strings"
)

// ErrInvalidEmail marks an address that fails shape validation.
var ErrInvalidEmail = errors.New("invalid email")

// NormalizeEmail lowercases and trims an email address. It returns
// ErrInvalidEmail when the result does not look like an address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Entry represents one player's best score for an event.
type Entry struct {
	// EventID identifies the gamified event the score belongs to.
	EventID string `json:"event_id"`
	// Email is the lowercased account email of the player.
	Email string `json:"email"`
	// Score is the best recorded run score.
	Score int64 `json:"score"`
	// RunID is the identifier of the run that produced the score.
	RunID string `json:"run_id"`
	// UpdatedAt is the unix timestamp of the last improvement.
	UpdatedAt int64 `json:"updated_at"`
}

// SubmitRequest is the payload for submitting a run result.
type SubmitRequest struct {
	EventID string `json:"event_id"`
	Score   int64  `json:"score"`
	RunID   string `json:"run_id"`
}

// SubmitResponse reports whether the submitted score improved the stored best.
type SubmitResponse struct {
	Accepted bool  `json:"accepted"`
	Entry    Entry `json:"entry"`
}
