package service

import (
	"context"
	"errors"
	"time"

	"github.com/atelier-filial/filial/internal/models"
)

// Validation failures surfaced to the API as bad requests.
var (
	ErrInvalidEvent = errors.New("invalid event id")
	ErrInvalidScore = errors.New("invalid score")
)

// Top-list bounds.
const (
	DefaultTopN = 10
	MaxTopN     = 100
)

// LeaderboardRepository defines the persistence operations needed by the
// leaderboard service.
type LeaderboardRepository interface {
	// UpsertBest stores the entry when it beats the stored best, reporting
	// whether it did.
	UpsertBest(ctx context.Context, entry models.Entry) (bool, error)
	// TopN fetches the event's best entries, highest first.
	TopN(ctx context.Context, eventID string, n int) ([]models.Entry, error)
	// BestFor fetches one player's best entry, nil when absent.
	BestFor(ctx context.Context, eventID, email string) (*models.Entry, error)
	// RetireEvents removes all entries of the given events.
	RetireEvents(ctx context.Context, eventIDs []string) (int64, error)
}

// LeaderboardService implements best-score upkeep for events.
type LeaderboardService struct {
	repo LeaderboardRepository
	now  func() time.Time
}

// NewLeaderboardService constructs a LeaderboardService with the provided
// repository.
func NewLeaderboardService(repo LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo, now: time.Now}
}

// SubmitBest validates and stores a run result, returning the stored entry
// and whether it improved the best. A submission that does not improve the
// best is not an error; the caller gets the authoritative entry back.
func (s *LeaderboardService) SubmitBest(ctx context.Context, eventID, email string, score int64, runID string) (models.Entry, bool, error) {
	if eventID == "" {
		return models.Entry{}, false, ErrInvalidEvent
	}
	if score < 0 {
		return models.Entry{}, false, ErrInvalidScore
	}

	entry := models.Entry{
		EventID:   eventID,
		Email:     email,
		Score:     score,
		RunID:     runID,
		UpdatedAt: s.now().Unix(),
	}

	accepted, err := s.repo.UpsertBest(ctx, entry)
	if err != nil {
		return models.Entry{}, false, err
	}
	if accepted {
		return entry, true, nil
	}

	best, err := s.repo.BestFor(ctx, eventID, email)
	if err != nil {
		return models.Entry{}, false, err
	}
	if best == nil {
		// The upsert declined and no row exists; treat as stored-nothing.
		return entry, false, nil
	}
	return *best, false, nil
}

// Top returns the event's best entries. n is clamped into [1, MaxTopN];
// zero and negative values use the default.
func (s *LeaderboardService) Top(ctx context.Context, eventID string, n int) ([]models.Entry, error) {
	if eventID == "" {
		return nil, ErrInvalidEvent
	}
	if n <= 0 {
		n = DefaultTopN
	}
	if n > MaxTopN {
		n = MaxTopN
	}
	return s.repo.TopN(ctx, eventID, n)
}

// Best returns one player's best entry for an event, nil when the player
// has none.
func (s *LeaderboardService) Best(ctx context.Context, eventID, email string) (*models.Entry, error) {
	if eventID == "" {
		return nil, ErrInvalidEvent
	}
	return s.repo.BestFor(ctx, eventID, email)
}

// Retire drops all entries of the given events, returning the removed count.
func (s *LeaderboardService) Retire(ctx context.Context, eventIDs []string) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	return s.repo.RetireEvents(ctx, eventIDs)
}
