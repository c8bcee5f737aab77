package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "OPEN"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceStatusCancelled  MaintenanceStatus = "CANCELLED"
)

type MaintenanceCategory string

const (
	MaintenanceCategoryPlumbing   MaintenanceCategory = "PLUMBING"
	MaintenanceCategoryElectrical MaintenanceCategory = "ELECTRICAL"
	MaintenanceCategoryHVAC       MaintenanceCategory = "HVAC"
	MaintenanceCategoryAppliance  MaintenanceCategory = "APPLIANCE"
	MaintenanceCategoryStructural MaintenanceCategory = "STRUCTURAL"
	MaintenanceCategoryPest       MaintenanceCategory = "PEST"
	MaintenanceCategoryOther      MaintenanceCategory = "OTHER"
)

type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "LOW"
	MaintenancePriorityMedium MaintenancePriority = "MEDIUM"
	MaintenancePriorityHigh   MaintenancePriority = "HIGH"
	MaintenancePriorityUrgent MaintenancePriority = "URGENT"
)

type MaintenanceRequest struct {
	ID          int32               `json:"id"`
	ListingID   int32               `json:"listing_id"`
	LeaseID     *int32              `json:"lease_id,omitempty"`
	RaisedByID  int32               `json:"raised_by_id"`
	TenantID    int32               `json:"tenant_id"`
	LandlordID  int32               `json:"landlord_id"`
	Category    MaintenanceCategory `json:"category"`
	Priority    MaintenancePriority `json:"priority"`
	Status      MaintenanceStatus   `json:"status"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CompletedOn *time.Time          `json:"completed_on,omitempty"`
	CancelledOn *time.Time          `json:"cancelled_on,omitempty"`
	CreatedOn   time.Time           `json:"created_on"`
	UpdatedOn   time.Time           `json:"updated_on"`
}

// CanTransitionTo validates the request state machine:
// OPEN -> IN_PROGRESS -> {COMPLETED, CANCELLED}, plus OPEN -> CANCELLED.
func (m *MaintenanceRequest) CanTransitionTo(target MaintenanceStatus) bool {
	switch m.Status {
	case MaintenanceStatusOpen:
		return target == MaintenanceStatusInProgress || target == MaintenanceStatusCancelled
	case MaintenanceStatusInProgress:
		return target == MaintenanceStatusCompleted || target == MaintenanceStatusCancelled
	default:
		return false
	}
}

// Billable reports whether an invoice may be issued against the request.
func (m *MaintenanceRequest) Billable() bool {
	return m.Status == MaintenanceStatusCompleted || m.Status == MaintenanceStatusInProgress
}
