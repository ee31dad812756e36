package jobs

import (
	"context"
	"time"

	"shiftmarket-backend/internal/logger"
)

// ExpireStaleRequests cancels unresolved requests whose shift date has
// already passed. Nobody can take over a shift that has been worked.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", func() {
		ctx := context.Background()

		today := time.Now().UTC().Format("2006-01-02")
		systemUserID := jr.config.Scheduler.SystemUserID

		count, err := jr.store.CancelExpired(ctx, systemUserID, today)
		if err != nil {
			logger.Error("Failed to expire stale requests", "error", err)
			return
		}

		logger.Info("Expired stale marketplace requests", "count", count, "before", today)
	})
}
