package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// doseSweeperStore marks overdue pending doses as missed
type doseSweeperStore interface {
	MarkStalePendingMissed(ctx context.Context, cutoff time.Time) (int64, error)
}

// StartDoseSweeper starts a background goroutine that periodically marks
// pending doses older than the cutoff window as missed. The worker stops
// when ctx is done.
func StartDoseSweeper(ctx context.Context, interval, cutoff time.Duration, store doseSweeperStore, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("dose sweeper shutting down")
				return
			case <-ticker.C:
				staleBefore := time.Now().Add(-cutoff)
				marked, err := store.MarkStalePendingMissed(ctx, staleBefore)
				if err != nil {
					logger.Error("dose sweeper failed to mark stale doses", zap.Error(err))
					continue
				}
				if marked > 0 {
					logger.Info("dose sweeper marked stale doses as missed",
						zap.Int64("count", marked),
					)
				}
			}
		}
	}()
}
