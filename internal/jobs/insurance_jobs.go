package jobs

import (
	"context"
	"time"

	"rentfolio-backend/internal/logger"
)

// RunInsuranceExpirySweep re-evaluates monitor-eligible insurance records
// against the current date. The sweep is bounded by a configured timeout and
// never runs concurrently with itself; a trigger that arrives while a sweep
// is still in flight is dropped.
func (jr *JobRunner) RunInsuranceExpirySweep() {
	if !jr.sweepMu.TryLock() {
		logger.Warn("Insurance sweep already running, skipping trigger")
		return
	}
	defer jr.sweepMu.Unlock()

	jr.runWithRecovery("RunInsuranceExpirySweep", func() {
		timeout := time.Duration(jr.config.Insurance.SweepTimeoutMinutes) * time.Minute
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := jr.services.Insurance.RunExpirySweep(ctx, time.Now())
		if err != nil {
			logger.Error("Insurance sweep failed",
				"error", err,
				"examined", result.Examined,
				"updated", result.Updated)
		}
	})
}
