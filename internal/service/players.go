// Package service provides the leaderboard business logic, delegating
// persistence to repository interfaces.
package service

import (
	"context"

	"github.com/atelier-filial/filial/internal/models"
)

// PlayerRepository defines the persistence operations required by the
// player service.
type PlayerRepository interface {
	// PlayerExists returns true when a player with the email is registered.
	PlayerExists(ctx context.Context, email string) (bool, error)
	// RegisterPlayer creates the player record.
	RegisterPlayer(ctx context.Context, email string) error
}

// PlayerService implements registration on top of a PlayerRepository.
type PlayerService struct {
	repo PlayerRepository
}

// NewPlayerService constructs a PlayerService using the provided repository.
func NewPlayerService(repo PlayerRepository) *PlayerService {
	return &PlayerService{repo: repo}
}

// PlayerExists checks whether a normalized email is registered.
func (s *PlayerService) PlayerExists(ctx context.Context, email string) (bool, error) {
	normalized, err := models.NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	return s.repo.PlayerExists(ctx, normalized)
}

// RegisterPlayer normalizes the email and creates the player record.
// Registering an already-known email succeeds silently.
func (s *PlayerService) RegisterPlayer(ctx context.Context, email string) (string, error) {
	normalized, err := models.NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	return normalized, s.repo.RegisterPlayer(ctx, normalized)
}
