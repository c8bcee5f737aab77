package jobs

import (
	"context"
	"time"

	"rentfolio-backend/internal/logger"
)

// FlagStaleSigningSessions surfaces DRAFT leases whose signing session has
// lapsed without a confirmation. No state changes; the landlord gets a
// follow-up email and decides whether to re-request or abandon.
func (jr *JobRunner) FlagStaleSigningSessions() {
	jr.runWithRecovery("FlagStaleSigningSessions", func() {
		ctx := context.Background()

		stale, err := jr.services.Lease.ListStaleSigningSessions(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list stale signing sessions", "error", err)
			return
		}
		if len(stale) == 0 {
			return
		}

		logger.Info("Found stale signing sessions", "count", len(stale))

		for i := range stale {
			lease := &stale[i]
			logger.Debug("Stale signing session",
				"lease_id", lease.ID,
				"listing_id", lease.ListingID,
				"requested_on", lease.SigningRequestedOn)

			landlord, err := jr.store.UserRepository.GetByID(ctx, lease.LandlordID)
			if err != nil {
				logger.Error("Failed to load landlord for stale session", "error", err, "lease_id", lease.ID)
				continue
			}
			listing, err := jr.store.ListingRepository.GetByID(ctx, lease.ListingID)
			if err != nil {
				logger.Error("Failed to load listing for stale session", "error", err, "lease_id", lease.ID)
				continue
			}
			_ = jr.services.Email.SendSigningFollowUp(ctx, landlord.Email, listing.Address)
		}
	})
}
