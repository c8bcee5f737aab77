package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusNew      ApplicationStatus = "NEW"
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// IsTerminal reports whether no further review transitions are allowed.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

type Application struct {
	ID         int32             `json:"id"`
	ListingID  int32             `json:"listing_id"`
	TenantID   int32             `json:"tenant_id"`
	LandlordID int32             `json:"landlord_id"`
	Status     ApplicationStatus `json:"status"`
	Message    string            `json:"message"`
	DecidedOn  *time.Time        `json:"decided_on,omitempty"`
	// ClearedOn marks the administrative action that reopens the listing.
	// Cleared applications are retained but stop blocking availability.
	ClearedOn *time.Time `json:"cleared_on,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
}
