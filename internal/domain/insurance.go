package domain

import "time"

type InsuranceStatus string

const (
	InsuranceStatusPending      InsuranceStatus = "PENDING"
	InsuranceStatusVerified     InsuranceStatus = "VERIFIED"
	InsuranceStatusExpiringSoon InsuranceStatus = "EXPIRING_SOON"
	InsuranceStatusExpired      InsuranceStatus = "EXPIRED"
	InsuranceStatusRejected     InsuranceStatus = "REJECTED"
)

// Insurance is a tenant's renter's-insurance compliance record. PENDING and
// REJECTED only change through explicit landlord review; VERIFIED and
// EXPIRING_SOON are additionally re-evaluated against the expiry date by the
// scheduled compliance sweep.
type Insurance struct {
	ID           int32           `json:"id"`
	TenantID     int32           `json:"tenant_id"`
	ProviderName string          `json:"provider_name"`
	PolicyNumber string          `json:"policy_number"`
	ExpiryDate   time.Time       `json:"expiry_date"`
	Status       InsuranceStatus `json:"status"`
	DocumentKey  string          `json:"document_key"`
	CreatedOn    time.Time       `json:"created_on"`
	// UpdatedOn doubles as the optimistic stamp for the sweep's guarded
	// writes: a sweep update only lands if the row has not moved since read.
	UpdatedOn time.Time `json:"updated_on"`
}

// MonitorEligible reports whether the compliance sweep may touch the record.
func (i *Insurance) MonitorEligible() bool {
	return i.Status == InsuranceStatusVerified || i.Status == InsuranceStatusExpiringSoon
}

// ExpiryStatusAt computes the time-derived status for the record at the
// given instant. expiringSoonDays is the advance-warning window. The second
// return is false when the record is not monitor-eligible or the computed
// status equals the current one (no write needed).
func (i *Insurance) ExpiryStatusAt(now time.Time, expiringSoonDays int) (InsuranceStatus, bool) {
	if !i.MonitorEligible() {
		return i.Status, false
	}
	daysLeft := int(i.ExpiryDate.Sub(now).Hours() / 24)
	var next InsuranceStatus
	switch {
	case !i.ExpiryDate.After(now):
		next = InsuranceStatusExpired
	case daysLeft <= expiringSoonDays:
		next = InsuranceStatusExpiringSoon
	default:
		next = InsuranceStatusVerified
	}
	return next, next != i.Status
}

// SweepResult summarizes one compliance sweep run.
type SweepResult struct {
	Examined             int `json:"examined"`
	Updated              int `json:"updated"`
	SkippedDueToConflict int `json:"skipped_due_to_conflict"`
}
