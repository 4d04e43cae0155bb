package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-filial/filial/internal/middleware"
	"github.com/atelier-filial/filial/internal/models"
	"github.com/atelier-filial/filial/internal/service"
)

// LeaderboardService defines the score operations required by the
// ScoresHandler.
type LeaderboardService interface {
	// SubmitBest stores a run result when it beats the player's best,
	// returning the authoritative entry and whether it improved.
	SubmitBest(ctx context.Context, eventID, email string, score int64, runID string) (models.Entry, bool, error)
	// Top returns the event's best entries, highest first.
	Top(ctx context.Context, eventID string, n int) ([]models.Entry, error)
	// Best returns one player's best entry, nil when absent.
	Best(ctx context.Context, eventID, email string) (*models.Entry, error)
	// Retire removes all entries of the given events.
	Retire(ctx context.Context, eventIDs []string) (int64, error)
}

// ScoresHandler handles HTTP requests for event scores.
type ScoresHandler struct {
	LeaderboardService LeaderboardService
}

// Submit handles POST /api/scores requests. The player comes from the
// authenticated context, the run result from the JSON body.
func (h *ScoresHandler) Submit(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmailFromContext(r.Context())

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	entry, accepted, err := h.LeaderboardService.SubmitBest(
		r.Context(), req.EventID, email, req.Score, req.RunID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEvent) || errors.Is(err, service.ErrInvalidScore) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.SubmitResponse{Accepted: accepted, Entry: entry})
}

// Top handles GET /api/scores/{eventID}/top requests. The list is public.
func (h *ScoresHandler) Top(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.LeaderboardService.Top(r.Context(), eventID, n)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

// MyBest handles GET /api/scores/{eventID}/me requests for the
// authenticated player.
func (h *ScoresHandler) MyBest(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	email := middleware.GetUserEmailFromContext(r.Context())

	entry, err := h.LeaderboardService.Best(r.Context(), eventID, email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entry == nil {
		http.Error(w, "no score recorded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}

// Retire handles POST /api/events/retire requests, dropping the given
// events' scores.
func (h *ScoresHandler) Retire(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventIDs []string `json:"event_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	removed, err := h.LeaderboardService.Retire(r.Context(), req.EventIDs)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"removed": removed})
}
