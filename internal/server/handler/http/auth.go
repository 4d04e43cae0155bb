// Package http provides the HTTP handlers of the leaderboard API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atelier-filial/filial/internal/middleware"
	"github.com/atelier-filial/filial/internal/models"
)

// PlayerService defines the registration operations required by the HTTP
// handlers.
type PlayerService interface {
	// PlayerExists checks whether a player with the given email exists.
	PlayerExists(ctx context.Context, email string) (bool, error)
	// RegisterPlayer registers a new player, returning the normalized email.
	RegisterPlayer(ctx context.Context, email string) (string, error)
}

// AuthHandler handles player registration and login.
type AuthHandler struct {
	// PlayerService performs the underlying registration operations.
	PlayerService PlayerService
	// TokenSecret signs the issued API tokens.
	TokenSecret string
}

// RegisterRequest represents the JSON payload for registration and login.
type RegisterRequest struct {
	// Email is the player address to register.
	Email string `json:"email"`
}

// TokenResponse carries the issued API token.
type TokenResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Register handles player registration requests. It expects a JSON body with
// an "email" field; a new player is registered and receives an API token.
// An already-registered email is rejected with a conflict.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	exists, err := h.PlayerService.PlayerExists(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrInvalidEmail) {
			http.Error(w, "invalid email", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "player already exists", http.StatusConflict)
		return
	}

	email, err := h.PlayerService.RegisterPlayer(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "failed to save player", http.StatusInternalServerError)
		return
	}

	h.writeToken(w, email)
}

// Login handles token reissue for an existing player.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	exists, err := h.PlayerService.PlayerExists(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrInvalidEmail) {
			http.Error(w, "invalid email", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "player not found", http.StatusForbidden)
		return
	}

	email, _ := models.NormalizeEmail(req.Email)
	h.writeToken(w, email)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, email string) {
	token, err := middleware.GenerateToken(h.TokenSecret, email)
	if err != nil {
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TokenResponse{
		Status: "ok",
		Email:  email,
		Token:  token,
	})
}
