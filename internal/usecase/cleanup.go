package usecase

import (
	"context"
	"time"
)

// RunCleanup sweeps finished games every interval until ctx is canceled.
func (that *GameManager) RunCleanup(ctx context.Context, interval time.Duration) {
	log := that.logger.With("method", "RunCleanup")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("cleanup stopped")
			return
		case <-ticker.C:
			if _, err := that.CleanupFinishedGames(ctx); err != nil {
				log.Error("failed to cleanup games", "error", err)
			}
		}
	}
}
