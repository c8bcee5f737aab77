package service

import (
	"context"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type billingService struct {
	invoiceRepo repository.InvoiceRepository
	maintRepo   repository.MaintenanceRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	maintRepo repository.MaintenanceRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) BillingService {
	return &billingService{
		invoiceRepo: invoiceRepo,
		maintRepo:   maintRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

func (s *billingService) IssueInvoice(ctx context.Context, actor Actor, maintenanceRequestID int32, amountCents int32, description string) (*domain.Invoice, *domain.Payment, error) {
	if amountCents <= 0 {
		return nil, nil, fmt.Errorf("%w: invoice amount must be positive, got %d", domain.ErrValidation, amountCents)
	}

	req, err := s.maintRepo.GetByID(ctx, maintenanceRequestID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireScope(actor, req.LandlordID, "maintenance_request", maintenanceRequestID); err != nil {
		return nil, nil, err
	}
	if !req.Billable() {
		return nil, nil, domain.NewTransitionError("invoice", req.Status, domain.MaintenanceStatusCompleted)
	}

	inv := &domain.Invoice{
		MaintenanceRequestID: maintenanceRequestID,
		LandlordID:           req.LandlordID,
		TenantID:             req.TenantID,
		AmountCents:          amountCents,
		Description:          description,
		Status:               domain.InvoiceStatusPending,
	}
	pay := &domain.Payment{Status: domain.PaymentStatusPending}
	if err := s.invoiceRepo.CreateWithPayment(ctx, inv, pay); err != nil {
		return nil, nil, err
	}

	tenant, _ := s.userRepo.GetByID(ctx, inv.TenantID)
	if tenant != nil {
		_ = s.emailSvc.SendInvoiceIssued(ctx, tenant.Email, description, amountCents)
	}
	return inv, pay, nil
}

// SubmitPaymentProof is the tenant's move. A FAILED payment re-enters
// PENDING with the new proof attached, so a bad upload is recoverable
// without landlord intervention.
func (s *billingService) SubmitPaymentProof(ctx context.Context, actor Actor, paymentID int32, proofKey string) (*domain.Payment, error) {
	pay, err := s.invoiceRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, pay.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := requireScope(actor, inv.TenantID, "payment", paymentID); err != nil {
		return nil, err
	}
	if pay.Status != domain.PaymentStatusPending && pay.Status != domain.PaymentStatusFailed {
		return pay, domain.NewTransitionError("payment", pay.Status, domain.PaymentStatusPending)
	}

	prior := pay.Status
	pay.Status = domain.PaymentStatusPending
	pay.ProofOfPaymentKey = proofKey
	moved, err := s.invoiceRepo.UpdatePaymentGuarded(ctx, pay, prior)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrOptimisticConflict
	}
	return pay, nil
}

func (s *billingService) ConfirmPayment(ctx context.Context, actor Actor, paymentID int32, decision domain.PaymentStatus) (*domain.Invoice, *domain.Payment, error) {
	pay, err := s.invoiceRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, pay.InvoiceID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireScope(actor, inv.LandlordID, "payment", paymentID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	switch decision {
	case domain.PaymentStatusPaid:
		if !pay.AwaitingConfirmation() {
			return inv, pay, domain.NewTransitionError("payment", pay.Status, domain.PaymentStatusPaid)
		}
		if err := s.invoiceRepo.Settle(ctx, inv.ID, domain.InvoiceStatusPaid, &now, pay.Status); err != nil {
			return nil, nil, err
		}
		inv.Status = domain.InvoiceStatusPaid
		pay.Status = domain.PaymentStatusPaid
		pay.PaidDate = &now

		tenant, _ := s.userRepo.GetByID(ctx, inv.TenantID)
		if tenant != nil {
			_ = s.emailSvc.SendPaymentConfirmed(ctx, tenant.Email, inv.AmountCents)
		}
		return inv, pay, nil

	case domain.PaymentStatusFailed:
		if !pay.AwaitingConfirmation() {
			return inv, pay, domain.NewTransitionError("payment", pay.Status, domain.PaymentStatusFailed)
		}
		// FAILED only touches the payment row; the invoice stays PENDING so
		// the tenant can resubmit proof. Guarded on the PENDING pre-image so
		// a decision that raced a settlement cannot break the paired rows.
		prior := pay.Status
		pay.Status = domain.PaymentStatusFailed
		moved, err := s.invoiceRepo.UpdatePaymentGuarded(ctx, pay, prior)
		if err != nil {
			return nil, nil, err
		}
		if !moved {
			return nil, nil, domain.ErrOptimisticConflict
		}
		return inv, pay, nil

	case domain.PaymentStatusCancelled:
		if pay.Status != domain.PaymentStatusPending && pay.Status != domain.PaymentStatusFailed {
			return inv, pay, domain.NewTransitionError("payment", pay.Status, domain.PaymentStatusCancelled)
		}
		if err := s.invoiceRepo.Settle(ctx, inv.ID, domain.InvoiceStatusCancelled, nil, pay.Status); err != nil {
			return nil, nil, err
		}
		inv.Status = domain.InvoiceStatusCancelled
		pay.Status = domain.PaymentStatusCancelled
		return inv, pay, nil

	default:
		return nil, nil, fmt.Errorf("unknown payment decision %q", decision)
	}
}

func (s *billingService) GetInvoice(ctx context.Context, actor Actor, id int32) (*domain.Invoice, *domain.Payment, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !actor.CanManage(inv.LandlordID) && !actor.CanManage(inv.TenantID) {
		return nil, nil, domain.ErrOwnershipViolation
	}
	pay, err := s.invoiceRepo.GetPaymentByInvoice(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, pay, nil
}

func (s *billingService) ListForTenant(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Invoice, int32, error) {
	return s.invoiceRepo.ListByTenant(ctx, actor.UserID, page, pageSize)
}

func (s *billingService) ListForLandlord(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Invoice, int32, error) {
	return s.invoiceRepo.ListByLandlord(ctx, actor.UserID, page, pageSize)
}
