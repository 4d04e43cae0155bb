package leaderboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-filial/filial/internal/commerce"
)

// StartAutoSync periodically pushes the locally recorded best scores of the
// joined events to the server. Failures are logged and swallowed; the next
// tick retries from scratch. A nil client makes this a no-op.
func StartAutoSync(
	ctx context.Context,
	c *Client,
	store *commerce.Store,
	interval time.Duration,
	log *zap.Logger,
) {
	if !c.Configured() {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				SyncOnce(ctx, c, store, log)
			}
		}
	}()
}

// SyncOnce uploads the current local bests for every joined event.
func SyncOnce(ctx context.Context, c *Client, store *commerce.Store, log *zap.Logger) {
	if !c.Configured() {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}

	for _, eventID := range store.JoinedEvents() {
		best := store.BestScore(eventID)
		if best <= 0 {
			continue
		}
		if _, err := c.SubmitBest(ctx, eventID, best, ""); err != nil {
			log.Warn("leaderboard sync failed",
				zap.String("event", eventID), zap.Error(err))
		}
	}
}
