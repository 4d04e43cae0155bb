// Package repository provides persistence implementations for the
// leaderboard service using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
)

// PostgresPlayerRepository implements player registration against PostgreSQL.
type PostgresPlayerRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPlayerRepository creates a repository over the given connection.
func NewPostgresPlayerRepository(db *sql.DB) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{DB: db}
}

// PlayerExists checks whether a player with the given email is registered.
func (r *PostgresPlayerRepository) PlayerExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// RegisterPlayer creates the player record. Registering an existing email is
// a no-op thanks to ON CONFLICT DO NOTHING.
func (r *PostgresPlayerRepository) RegisterPlayer(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO players (email) VALUES ($1) ON CONFLICT DO NOTHING`,
		email,
	)
	return err
}
