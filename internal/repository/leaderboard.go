package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelier-filial/filial/internal/models"
	"github.com/lib/pq"
)

// PostgresLeaderboardRepository implements score persistence against a
// PostgreSQL database.
type PostgresLeaderboardRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresLeaderboardRepository creates a repository over the given
// connection.
func NewPostgresLeaderboardRepository(db *sql.DB) *PostgresLeaderboardRepository {
	return &PostgresLeaderboardRepository{DB: db}
}

// UpsertBest stores the entry when it beats the player's current best for
// the event. It returns true when the entry was stored. The read and write
// run in one transaction so concurrent submissions cannot lower a best.
func (r *PostgresLeaderboardRepository) UpsertBest(ctx context.Context, entry models.Entry) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT score FROM scores WHERE event_id = $1 AND email = $2
	`, entry.EventID, entry.Email).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("check best: %w", err)
	}
	if err == nil && existing >= entry.Score {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scores (event_id, email, score, run_id, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, email) DO UPDATE SET
			score = EXCLUDED.score,
			run_id = EXCLUDED.run_id,
			updated_at = EXCLUDED.updated_at
	`, entry.EventID, entry.Email, entry.Score, entry.RunID, entry.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// TopN fetches the event's best entries, highest score first, ties broken by
// earliest improvement.
func (r *PostgresLeaderboardRepository) TopN(ctx context.Context, eventID string, n int) ([]models.Entry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT event_id, email, score, run_id, updated_at FROM scores
		WHERE event_id = $1
		ORDER BY score DESC, updated_at ASC
		LIMIT $2
	`, eventID, n)
	if err != nil {
		return nil, fmt.Errorf("TopN: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.EventID, &e.Email, &e.Score, &e.RunID, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BestFor fetches one player's best entry for an event. A player without an
// entry returns (nil, nil).
func (r *PostgresLeaderboardRepository) BestFor(ctx context.Context, eventID, email string) (*models.Entry, error) {
	var e models.Entry
	err := r.DB.QueryRowContext(ctx, `
		SELECT event_id, email, score, run_id, updated_at FROM scores
		WHERE event_id = $1 AND email = $2
	`, eventID, email).Scan(&e.EventID, &e.Email, &e.Score, &e.RunID, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BestFor: %w", err)
	}
	return &e, nil
}

// RetireEvents deletes every entry of the given events and returns how many
// rows went away.
func (r *PostgresLeaderboardRepository) RetireEvents(ctx context.Context, eventIDs []string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM scores WHERE event_id = ANY($1)`,
		pq.Array(eventIDs),
	)
	if err != nil {
		return 0, fmt.Errorf("RetireEvents: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}
