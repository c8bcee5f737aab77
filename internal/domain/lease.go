package domain

import "time"

type LeaseStatus string

const (
	LeaseStatusDraft      LeaseStatus = "DRAFT"
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
)

type PaymentFrequency string

const (
	PaymentFrequencyMonthly PaymentFrequency = "MONTHLY"
	PaymentFrequencyWeekly  PaymentFrequency = "WEEKLY"
)

// Lease binds one tenant, one landlord and one listing. At most one lease
// per listing may be ACTIVE at any time; the activation write re-checks
// that inside the database.
type Lease struct {
	ID               int32            `json:"id"`
	ListingID        int32            `json:"listing_id"`
	TenantID         int32            `json:"tenant_id"`
	LandlordID       int32            `json:"landlord_id"`
	Status           LeaseStatus      `json:"status"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	RentCents        int32            `json:"rent_cents"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	DepositCents     int32            `json:"deposit_cents"`
	// Signing handoff bookkeeping. The e-sign collaborator owns the session;
	// we only record that one was requested and when, so stale DRAFT leases
	// can be surfaced for manual follow-up.
	SigningSessionID   *string    `json:"signing_session_id,omitempty"`
	SigningRequestedOn *time.Time `json:"signing_requested_on,omitempty"`
	ActivatedOn        *time.Time `json:"activated_on,omitempty"`
	TerminatedOn       *time.Time `json:"terminated_on,omitempty"`
	CreatedOn          time.Time  `json:"created_on"`
	UpdatedOn          time.Time  `json:"updated_on"`
}

// SigningExpired reports whether a requested signing session has outlived
// the configured confirmation window without the lease leaving DRAFT.
func (l *Lease) SigningExpired(now time.Time, window time.Duration) bool {
	if l.Status != LeaseStatusDraft || l.SigningRequestedOn == nil {
		return false
	}
	return now.Sub(*l.SigningRequestedOn) > window
}
