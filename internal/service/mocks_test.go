package service_test

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Listing, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepo) ListByLandlord(ctx context.Context, landlordID int32, page, pageSize int32) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, landlordID, page, pageSize)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingRepo) ListPublished(ctx context.Context, page, pageSize int32) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingRepo) BulkSoftDelete(ctx context.Context, ids []int32) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockListingRepo) CreateImage(ctx context.Context, img *domain.ListingImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}
func (m *MockListingRepo) GetImages(ctx context.Context, listingID int32) ([]domain.ListingImage, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingImage), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Application, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) TransitionStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, decidedOn *time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, decidedOn)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) ExistsOpen(ctx context.Context, listingID, tenantID int32) (bool, error) {
	args := m.Called(ctx, listingID, tenantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) ExistsByLandlordTenant(ctx context.Context, landlordID, tenantID int32) (bool, error) {
	args := m.Called(ctx, landlordID, tenantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) ListByListing(ctx context.Context, listingID int32) ([]domain.Application, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, landlordID, status, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ApproveWithLease(ctx context.Context, a *domain.Application, lease *domain.Lease) error {
	args := m.Called(ctx, a, lease)
	return args.Error(0)
}
func (m *MockApplicationRepo) ClearByListing(ctx context.Context, listingID int32) (int64, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) BulkClear(ctx context.Context, ids []int32) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockLeaseRepo
type MockLeaseRepo struct {
	mock.Mock
}

func (m *MockLeaseRepo) Create(ctx context.Context, l *domain.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLeaseRepo) GetByID(ctx context.Context, id int32) (*domain.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) GetBySigningSession(ctx context.Context, sessionID string) (*domain.Lease, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) Update(ctx context.Context, l *domain.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLeaseRepo) Activate(ctx context.Context, id int32, now time.Time) (int64, error) {
	args := m.Called(ctx, id, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLeaseRepo) HasActiveByListing(ctx context.Context, listingID int32) (bool, error) {
	args := m.Called(ctx, listingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLeaseRepo) ExistsByLandlordTenant(ctx context.Context, landlordID, tenantID int32) (bool, error) {
	args := m.Called(ctx, landlordID, tenantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLeaseRepo) ListByListing(ctx context.Context, listingID int32) ([]domain.Lease, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Lease, int32, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return args.Get(0).([]domain.Lease), args.Get(1).(int32), args.Error(2)
}
func (m *MockLeaseRepo) ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error) {
	args := m.Called(ctx, landlordID, status, page, pageSize)
	return args.Get(0).([]domain.Lease), args.Get(1).(int32), args.Error(2)
}
func (m *MockLeaseRepo) ListStaleSigning(ctx context.Context, cutoff time.Time) ([]domain.Lease, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int32) (*domain.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceRequest), args.Error(1)
}
func (m *MockMaintenanceRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.MaintenanceRequest, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MaintenanceRequest), args.Error(1)
}
func (m *MockMaintenanceRepo) TransitionStatus(ctx context.Context, id int32, from, to domain.MaintenanceStatus, now time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, now)
	return args.Bool(0), args.Error(1)
}
func (m *MockMaintenanceRepo) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	args := m.Called(ctx, tenantID, status, page, pageSize)
	return args.Get(0).([]domain.MaintenanceRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockMaintenanceRepo) ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	args := m.Called(ctx, landlordID, status, page, pageSize)
	return args.Get(0).([]domain.MaintenanceRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockMaintenanceRepo) BulkCancel(ctx context.Context, ids []int32, now time.Time) (int64, error) {
	args := m.Called(ctx, ids, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) CreateWithPayment(ctx context.Context, inv *domain.Invoice, pay *domain.Payment) error {
	args := m.Called(ctx, inv, pay)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Invoice, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) GetPaymentByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockInvoiceRepo) GetPaymentByInvoice(ctx context.Context, invoiceID int32) (*domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockInvoiceRepo) UpdatePaymentGuarded(ctx context.Context, pay *domain.Payment, from domain.PaymentStatus) (bool, error) {
	args := m.Called(ctx, pay, from)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvoiceRepo) Settle(ctx context.Context, invoiceID int32, status domain.InvoiceStatus, paidDate *time.Time, fromPayment domain.PaymentStatus) error {
	args := m.Called(ctx, invoiceID, status, paidDate, fromPayment)
	return args.Error(0)
}
func (m *MockInvoiceRepo) ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Invoice, int32, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return args.Get(0).([]domain.Invoice), args.Get(1).(int32), args.Error(2)
}
func (m *MockInvoiceRepo) ListByLandlord(ctx context.Context, landlordID int32, page, pageSize int32) ([]domain.Invoice, int32, error) {
	args := m.Called(ctx, landlordID, page, pageSize)
	return args.Get(0).([]domain.Invoice), args.Get(1).(int32), args.Error(2)
}
func (m *MockInvoiceRepo) BulkCancel(ctx context.Context, ids []int32) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockInsuranceRepo
type MockInsuranceRepo struct {
	mock.Mock
}

func (m *MockInsuranceRepo) Create(ctx context.Context, ins *domain.Insurance) error {
	args := m.Called(ctx, ins)
	return args.Error(0)
}
func (m *MockInsuranceRepo) GetByID(ctx context.Context, id int32) (*domain.Insurance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Insurance), args.Error(1)
}
func (m *MockInsuranceRepo) GetByTenant(ctx context.Context, tenantID int32) (*domain.Insurance, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Insurance), args.Error(1)
}
func (m *MockInsuranceRepo) UpdateStatusReviewed(ctx context.Context, id int32, to domain.InsuranceStatus) (bool, error) {
	args := m.Called(ctx, id, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockInsuranceRepo) ListSweepCandidates(ctx context.Context) ([]domain.Insurance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Insurance), args.Error(1)
}
func (m *MockInsuranceRepo) UpdateStatusGuarded(ctx context.Context, id int32, from, to domain.InsuranceStatus, stamp time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, stamp)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApplicationReceived(ctx context.Context, landlordEmail, tenantName, address string) error {
	args := m.Called(ctx, landlordEmail, tenantName, address)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationDecision(ctx context.Context, tenantEmail, address string, approved bool) error {
	args := m.Called(ctx, tenantEmail, address, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendLeaseActivated(ctx context.Context, email, address string) error {
	args := m.Called(ctx, email, address)
	return args.Error(0)
}
func (m *MockEmailService) SendLeaseTerminated(ctx context.Context, email, address string) error {
	args := m.Called(ctx, email, address)
	return args.Error(0)
}
func (m *MockEmailService) SendInvoiceIssued(ctx context.Context, tenantEmail, description string, amountCents int32) error {
	args := m.Called(ctx, tenantEmail, description, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentConfirmed(ctx context.Context, tenantEmail string, amountCents int32) error {
	args := m.Called(ctx, tenantEmail, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendInsuranceExpiring(ctx context.Context, tenantEmail string, expiryDate time.Time) error {
	args := m.Called(ctx, tenantEmail, expiryDate)
	return args.Error(0)
}
func (m *MockEmailService) SendSigningFollowUp(ctx context.Context, landlordEmail, address string) error {
	args := m.Called(ctx, landlordEmail, address)
	return args.Error(0)
}

// MockSigningService
type MockSigningService struct {
	mock.Mock
}

func (m *MockSigningService) RequestSession(ctx context.Context, lease *domain.Lease) (string, error) {
	args := m.Called(ctx, lease)
	return args.String(0), args.Error(1)
}
