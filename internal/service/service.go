package service

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"
)

type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "APPROVE"
	ReviewDecisionReject  ReviewDecision = "REJECT"
)

type BulkEntityType string

const (
	BulkEntityListing     BulkEntityType = "LISTING"
	BulkEntityApplication BulkEntityType = "APPLICATION"
	BulkEntityMaintenance BulkEntityType = "MAINTENANCE"
	BulkEntityInvoice     BulkEntityType = "INVOICE"
)

type BulkAction string

const (
	BulkActionDelete BulkAction = "DELETE"
	BulkActionCancel BulkAction = "CANCEL"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type ListingService interface {
	CreateListing(ctx context.Context, actor Actor, listing *domain.Listing) error
	GetListing(ctx context.Context, actor Actor, id int32) (*domain.Listing, bool, error)
	UpdateListing(ctx context.Context, actor Actor, listing *domain.Listing) error
	ListMyListings(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Listing, int32, error)
	// BrowseListings is the tenant feed: non-deleted listings whose computed
	// availability is true.
	BrowseListings(ctx context.Context, page, pageSize int32) ([]domain.Listing, int32, error)
	// ClearApplications is the administrative reopen action: it stamps every
	// uncleared application of the listing so the slot shows as available
	// again. Rejected applications do not reopen a listing on their own.
	ClearApplications(ctx context.Context, actor Actor, listingID int32) (int64, error)
	AddImage(ctx context.Context, actor Actor, image *domain.ListingImage) error
	GetImages(ctx context.Context, listingID int32) ([]domain.ListingImage, error)
}

type ApplicationService interface {
	Submit(ctx context.Context, actor Actor, listingID int32, message string) (*domain.Application, error)
	// Open moves a NEW application to PENDING when the landlord starts review.
	Open(ctx context.Context, actor Actor, id int32) (*domain.Application, error)
	// Review decides a PENDING application. APPROVE atomically creates the
	// DRAFT lease and returns it; REJECT returns a nil lease.
	Review(ctx context.Context, actor Actor, id int32, decision ReviewDecision) (*domain.Application, *domain.Lease, error)
	ListForTenant(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Application, int32, error)
	ListForLandlord(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.Application, int32, error)
}

type LeaseService interface {
	CreateDraft(ctx context.Context, actor Actor, lease *domain.Lease) error
	GetLease(ctx context.Context, actor Actor, id int32) (*domain.Lease, error)
	// RequestSigning asks the e-sign collaborator for a session on a DRAFT
	// lease and records the handoff. Activation happens only on confirmation.
	RequestSigning(ctx context.Context, actor Actor, leaseID int32) (string, error)
	// HandleSigningConfirmation is the collaborator's callback: it performs
	// the DRAFT -> ACTIVE transition for the lease bound to the session.
	HandleSigningConfirmation(ctx context.Context, sessionID string) (*domain.Lease, error)
	Activate(ctx context.Context, actor Actor, leaseID int32) (*domain.Lease, error)
	Terminate(ctx context.Context, actor Actor, leaseID int32) (*domain.Lease, error)
	// ListStaleSigningSessions surfaces DRAFT leases whose signing window has
	// lapsed, for manual landlord follow-up. No automated retry happens.
	ListStaleSigningSessions(ctx context.Context, now time.Time) ([]domain.Lease, error)
	ListForTenant(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Lease, int32, error)
	ListForLandlord(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.Lease, int32, error)
}

type MaintenanceService interface {
	Create(ctx context.Context, actor Actor, req *domain.MaintenanceRequest) error
	Get(ctx context.Context, actor Actor, id int32) (*domain.MaintenanceRequest, error)
	Transition(ctx context.Context, actor Actor, id int32, target domain.MaintenanceStatus) (*domain.MaintenanceRequest, error)
	ListForTenant(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error)
	ListForLandlord(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error)
}

type BillingService interface {
	// IssueInvoice bills a COMPLETED or IN_PROGRESS maintenance request and
	// creates the paired PENDING payment in the same transaction.
	IssueInvoice(ctx context.Context, actor Actor, maintenanceRequestID int32, amountCents int32, description string) (*domain.Invoice, *domain.Payment, error)
	// SubmitPaymentProof attaches a proof-of-payment file reference. Also the
	// resubmission path after a FAILED confirmation.
	SubmitPaymentProof(ctx context.Context, actor Actor, paymentID int32, proofKey string) (*domain.Payment, error)
	ConfirmPayment(ctx context.Context, actor Actor, paymentID int32, decision domain.PaymentStatus) (*domain.Invoice, *domain.Payment, error)
	GetInvoice(ctx context.Context, actor Actor, id int32) (*domain.Invoice, *domain.Payment, error)
	ListForTenant(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Invoice, int32, error)
	ListForLandlord(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Invoice, int32, error)
}

type InsuranceService interface {
	Submit(ctx context.Context, actor Actor, ins *domain.Insurance) error
	GetForTenant(ctx context.Context, actor Actor, tenantID int32) (*domain.Insurance, error)
	Review(ctx context.Context, actor Actor, id int32, decision domain.InsuranceStatus) (*domain.Insurance, error)
	// RunExpirySweep re-evaluates every VERIFIED/EXPIRING_SOON record against
	// the given instant. It never fails the batch for a single record: a
	// concurrent modification is skipped and counted, an error is logged and
	// skipped, a cancelled context stops the run with partial counts.
	RunExpirySweep(ctx context.Context, now time.Time) (domain.SweepResult, error)
}

type BulkService interface {
	// Mutate applies one action to a batch of ids, all or nothing: if any id
	// fails ownership or state preconditions the whole batch is rejected with
	// a BulkPreconditionError listing the offenders.
	Mutate(ctx context.Context, actor Actor, entityType BulkEntityType, ids []int32, action BulkAction) (int64, error)
}

// SigningService is the e-sign/document collaborator: consumed, not owned.
type SigningService interface {
	RequestSession(ctx context.Context, lease *domain.Lease) (string, error)
}

type EmailService interface {
	SendApplicationReceived(ctx context.Context, landlordEmail, tenantName, address string) error
	SendApplicationDecision(ctx context.Context, tenantEmail, address string, approved bool) error
	SendLeaseActivated(ctx context.Context, email, address string) error
	SendLeaseTerminated(ctx context.Context, email, address string) error
	SendInvoiceIssued(ctx context.Context, tenantEmail, description string, amountCents int32) error
	SendPaymentConfirmed(ctx context.Context, tenantEmail string, amountCents int32) error
	SendInsuranceExpiring(ctx context.Context, tenantEmail string, expiryDate time.Time) error
	SendSigningFollowUp(ctx context.Context, landlordEmail, address string) error
}
