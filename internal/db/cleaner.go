package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartStaleScoreCleaner removes leaderboard entries that have not improved
// within the retention window, on the given interval. Events are seasonal;
// entries older than a season only clutter the top lists.
func StartStaleScoreCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention).Unix()
				res, err := db.ExecContext(ctx, `
                    DELETE FROM scores
                     WHERE updated_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean stale scores", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned stale scores", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
