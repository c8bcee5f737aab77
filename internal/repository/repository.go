package repository

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int32) (*domain.Listing, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	ListByLandlord(ctx context.Context, landlordID int32, page, pageSize int32) ([]domain.Listing, int32, error)
	// ListPublished returns non-deleted listings for the browse feed;
	// availability is computed on top by the service.
	ListPublished(ctx context.Context, page, pageSize int32) ([]domain.Listing, int32, error)
	// BulkSoftDelete stamps deleted_on on every listed id in one transaction.
	// The write re-checks that none of the listings has an ACTIVE lease; on a
	// row-count mismatch nothing is committed and ErrOptimisticConflict is
	// returned.
	BulkSoftDelete(ctx context.Context, ids []int32) (int64, error)

	CreateImage(ctx context.Context, image *domain.ListingImage) error
	GetImages(ctx context.Context, listingID int32) ([]domain.ListingImage, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Application, error)
	// TransitionStatus moves the application between statuses guarded on the
	// pre-image. decidedOn is stamped when non-nil. Returns false when the
	// row no longer carries the expected status.
	TransitionStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, decidedOn *time.Time) (bool, error)
	// ExistsOpen reports whether a non-terminal application exists for the
	// (listing, tenant) pair.
	ExistsOpen(ctx context.Context, listingID, tenantID int32) (bool, error)
	// ExistsByLandlordTenant reports whether the tenant has ever applied to
	// one of the landlord's listings.
	ExistsByLandlordTenant(ctx context.Context, landlordID, tenantID int32) (bool, error)
	ListByListing(ctx context.Context, listingID int32) ([]domain.Application, error)
	ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Application, int32, error)
	ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.Application, int32, error)
	// ApproveWithLease moves the application to APPROVED and creates the DRAFT
	// lease in one transaction. The application update is guarded on the
	// PENDING pre-image; a miss rolls back the lease insert and returns
	// ErrOptimisticConflict.
	ApproveWithLease(ctx context.Context, app *domain.Application, lease *domain.Lease) error
	// ClearByListing stamps cleared_on on every uncleared application of the
	// listing, reopening it for the browse feed.
	ClearByListing(ctx context.Context, listingID int32) (int64, error)
	BulkClear(ctx context.Context, ids []int32) (int64, error)
}

type LeaseRepository interface {
	Create(ctx context.Context, lease *domain.Lease) error
	GetByID(ctx context.Context, id int32) (*domain.Lease, error)
	GetBySigningSession(ctx context.Context, sessionID string) (*domain.Lease, error)
	Update(ctx context.Context, lease *domain.Lease) error
	// Activate performs the guarded DRAFT -> ACTIVE write. The statement
	// itself re-checks that no other ACTIVE lease exists for the same listing,
	// so the invariant holds under concurrent activations without prior
	// locking. Returns the number of rows moved (0 or 1).
	Activate(ctx context.Context, id int32, now time.Time) (int64, error)
	HasActiveByListing(ctx context.Context, listingID int32) (bool, error)
	// ExistsByLandlordTenant reports whether any lease binds the pair.
	ExistsByLandlordTenant(ctx context.Context, landlordID, tenantID int32) (bool, error)
	ListByListing(ctx context.Context, listingID int32) ([]domain.Lease, error)
	ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Lease, int32, error)
	ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error)
	// ListStaleSigning returns DRAFT leases whose signing session was
	// requested before the cutoff and never confirmed.
	ListStaleSigning(ctx context.Context, cutoff time.Time) ([]domain.Lease, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, req *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id int32) (*domain.MaintenanceRequest, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.MaintenanceRequest, error)
	// TransitionStatus moves the request between statuses guarded on the
	// pre-image, stamping completed_on or cancelled_on for terminal targets.
	// Returns false when the row no longer carries the expected status.
	TransitionStatus(ctx context.Context, id int32, from, to domain.MaintenanceStatus, now time.Time) (bool, error)
	ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error)
	ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error)
	BulkCancel(ctx context.Context, ids []int32, now time.Time) (int64, error)
}

// InvoiceRepository owns the invoice/payment pair; the two rows are only
// ever written together where the PAID <=> PAID invariant demands it.
type InvoiceRepository interface {
	// CreateWithPayment inserts the invoice and its PENDING payment in one
	// transaction.
	CreateWithPayment(ctx context.Context, inv *domain.Invoice, pay *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Invoice, error)
	GetPaymentByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetPaymentByInvoice(ctx context.Context, invoiceID int32) (*domain.Payment, error)
	// UpdatePaymentGuarded writes the payment row only if it still carries
	// the expected status. Returns false on a pre-image mismatch.
	UpdatePaymentGuarded(ctx context.Context, pay *domain.Payment, from domain.PaymentStatus) (bool, error)
	// Settle moves invoice and payment to the given terminal pair (PAID/PAID
	// or CANCELLED/CANCELLED) in one transaction. Both writes are guarded on
	// their pre-images; a miss on either rolls back and returns
	// ErrOptimisticConflict.
	Settle(ctx context.Context, invoiceID int32, status domain.InvoiceStatus, paidDate *time.Time, fromPayment domain.PaymentStatus) error
	ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Invoice, int32, error)
	ListByLandlord(ctx context.Context, landlordID int32, page, pageSize int32) ([]domain.Invoice, int32, error)
	BulkCancel(ctx context.Context, ids []int32) (int64, error)
}

type InsuranceRepository interface {
	Create(ctx context.Context, ins *domain.Insurance) error
	GetByID(ctx context.Context, id int32) (*domain.Insurance, error)
	GetByTenant(ctx context.Context, tenantID int32) (*domain.Insurance, error)
	// UpdateStatusReviewed applies a landlord review decision guarded on the
	// PENDING pre-image. Returns false when the record was no longer PENDING.
	UpdateStatusReviewed(ctx context.Context, id int32, to domain.InsuranceStatus) (bool, error)
	// ListSweepCandidates returns records in VERIFIED or EXPIRING_SOON.
	ListSweepCandidates(ctx context.Context) ([]domain.Insurance, error)
	// UpdateStatusGuarded writes the time-derived status only if the row still
	// carries the expected status and updated_on stamp. Returns false on a
	// pre-image mismatch (concurrent review or sweep).
	UpdateStatusGuarded(ctx context.Context, id int32, from, to domain.InsuranceStatus, stamp time.Time) (bool, error)
}
