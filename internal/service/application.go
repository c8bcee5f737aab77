package service

import (
	"context"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type applicationService struct {
	appRepo     repository.ApplicationRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) ApplicationService {
	return &applicationService{
		appRepo:     appRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

func (s *applicationService) Submit(ctx context.Context, actor Actor, listingID int32, message string) (*domain.Application, error) {
	if err := requireRole(actor, domain.UserRoleTenant); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.DeletedOn != nil {
		return nil, domain.ErrNotFound
	}

	// A tenant may reapply after a rejection, but never hold two open
	// applications for the same listing.
	exists, err := s.appRepo.ExistsOpen(ctx, listingID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateApplication
	}

	app := &domain.Application{
		ListingID:  listingID,
		TenantID:   actor.UserID,
		LandlordID: listing.LandlordID,
		Status:     domain.ApplicationStatusNew,
		Message:    message,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	landlord, _ := s.userRepo.GetByID(ctx, listing.LandlordID)
	tenant, _ := s.userRepo.GetByID(ctx, actor.UserID)
	if landlord != nil && tenant != nil {
		_ = s.emailSvc.SendApplicationReceived(ctx, landlord.Email, tenant.Name, listing.Address)
	}

	return app, nil
}

func (s *applicationService) Open(ctx context.Context, actor Actor, id int32) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireScope(actor, app.LandlordID, "application", id); err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusNew {
		return app, domain.NewTransitionError("application", app.Status, domain.ApplicationStatusPending)
	}

	// Guarded on the NEW pre-image; a lost race reports the state that won.
	moved, err := s.appRepo.TransitionStatus(ctx, id, domain.ApplicationStatusNew, domain.ApplicationStatusPending, nil)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.appRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return current, domain.NewTransitionError("application", current.Status, domain.ApplicationStatusPending)
	}
	app.Status = domain.ApplicationStatusPending
	return app, nil
}

func (s *applicationService) Review(ctx context.Context, actor Actor, id int32, decision ReviewDecision) (*domain.Application, *domain.Lease, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := requireScope(actor, app.LandlordID, "application", id); err != nil {
		return nil, nil, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return app, nil, domain.NewTransitionError("application", app.Status, domain.ApplicationStatusApproved)
	}

	listing, err := s.listingRepo.GetByID(ctx, app.ListingID)
	if err != nil {
		return nil, nil, err
	}

	switch decision {
	case ReviewDecisionApprove:
		// Lease terms start from the listing; the landlord finalizes them on
		// the draft before activation.
		lease := &domain.Lease{
			ListingID:        app.ListingID,
			TenantID:         app.TenantID,
			LandlordID:       app.LandlordID,
			Status:           domain.LeaseStatusDraft,
			StartDate:        listing.AvailableFrom,
			EndDate:          listing.AvailableFrom.AddDate(1, 0, 0),
			RentCents:        listing.RentCents,
			PaymentFrequency: domain.PaymentFrequencyMonthly,
			DepositCents:     listing.DepositCents,
		}
		if err := s.appRepo.ApproveWithLease(ctx, app, lease); err != nil {
			return app, nil, err
		}
		s.notifyDecision(ctx, app, listing, true)
		return app, lease, nil

	case ReviewDecisionReject:
		// Guarded on PENDING so a rejection cannot clobber a concurrent
		// approval that already spawned a lease.
		now := time.Now()
		moved, err := s.appRepo.TransitionStatus(ctx, id, domain.ApplicationStatusPending, domain.ApplicationStatusRejected, &now)
		if err != nil {
			return nil, nil, err
		}
		if !moved {
			current, err := s.appRepo.GetByID(ctx, id)
			if err != nil {
				return nil, nil, err
			}
			return current, nil, domain.NewTransitionError("application", current.Status, domain.ApplicationStatusRejected)
		}
		app.Status = domain.ApplicationStatusRejected
		app.DecidedOn = &now
		s.notifyDecision(ctx, app, listing, false)
		return app, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown review decision %q", decision)
	}
}

func (s *applicationService) notifyDecision(ctx context.Context, app *domain.Application, listing *domain.Listing, approved bool) {
	tenant, _ := s.userRepo.GetByID(ctx, app.TenantID)
	if tenant != nil {
		_ = s.emailSvc.SendApplicationDecision(ctx, tenant.Email, listing.Address, approved)
	}
}

func (s *applicationService) ListForTenant(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Application, int32, error) {
	return s.appRepo.ListByTenant(ctx, actor.UserID, page, pageSize)
}

func (s *applicationService) ListForLandlord(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	return s.appRepo.ListByLandlord(ctx, actor.UserID, status, page, pageSize)
}
