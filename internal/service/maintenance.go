package service

import (
	"context"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type maintenanceService struct {
	maintRepo   repository.MaintenanceRepository
	listingRepo repository.ListingRepository
	leaseRepo   repository.LeaseRepository
}

func NewMaintenanceService(
	maintRepo repository.MaintenanceRepository,
	listingRepo repository.ListingRepository,
	leaseRepo repository.LeaseRepository,
) MaintenanceService {
	return &maintenanceService{
		maintRepo:   maintRepo,
		listingRepo: listingRepo,
		leaseRepo:   leaseRepo,
	}
}

func (s *maintenanceService) Create(ctx context.Context, actor Actor, req *domain.MaintenanceRequest) error {
	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return err
	}

	req.RaisedByID = actor.UserID
	req.LandlordID = listing.LandlordID
	req.Status = domain.MaintenanceStatusOpen
	if req.Priority == "" {
		req.Priority = domain.MaintenancePriorityMedium
	}

	switch {
	case actor.IsTenant():
		req.TenantID = actor.UserID
	case actor.CanManage(listing.LandlordID):
		// Landlord-raised requests must still name the tenant of record.
		if req.TenantID == 0 && req.LeaseID == nil {
			return fmt.Errorf("%w: a landlord-raised request needs a tenant or a lease", domain.ErrValidation)
		}
	default:
		return domain.ErrOwnershipViolation
	}

	if req.LeaseID != nil {
		lease, err := s.leaseRepo.GetByID(ctx, *req.LeaseID)
		if err != nil {
			return err
		}
		if lease.ListingID != req.ListingID {
			return domain.ErrOwnershipViolation
		}
		if req.TenantID == 0 {
			req.TenantID = lease.TenantID
		}
	}

	return s.maintRepo.Create(ctx, req)
}

func (s *maintenanceService) Get(ctx context.Context, actor Actor, id int32) (*domain.MaintenanceRequest, error) {
	req, err := s.maintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(req.LandlordID) && !actor.CanManage(req.TenantID) {
		return nil, domain.ErrOwnershipViolation
	}
	return req, nil
}

// Transition applies the role-gated state machine. Cancelling an OPEN
// request is the one move the tenant of record may make; everything else is
// the landlord's.
func (s *maintenanceService) Transition(ctx context.Context, actor Actor, id int32, target domain.MaintenanceStatus) (*domain.MaintenanceRequest, error) {
	req, err := s.maintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tenantMayCancel := target == domain.MaintenanceStatusCancelled && req.Status == domain.MaintenanceStatusOpen
	if tenantMayCancel {
		if !actor.CanManage(req.LandlordID) && !actor.CanManage(req.TenantID) {
			return nil, domain.ErrOwnershipViolation
		}
	} else {
		if err := requireScope(actor, req.LandlordID, "maintenance_request", id); err != nil {
			return nil, err
		}
	}

	if !req.CanTransitionTo(target) {
		return req, domain.NewTransitionError("maintenance_request", req.Status, target)
	}

	// Guarded on the pre-image; a lost race reports the state that won.
	now := time.Now()
	moved, err := s.maintRepo.TransitionStatus(ctx, id, req.Status, target, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.maintRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return current, domain.NewTransitionError("maintenance_request", current.Status, target)
	}
	req.Status = target
	switch target {
	case domain.MaintenanceStatusCompleted:
		req.CompletedOn = &now
	case domain.MaintenanceStatusCancelled:
		req.CancelledOn = &now
	}
	return req, nil
}

func (s *maintenanceService) ListForTenant(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	return s.maintRepo.ListByTenant(ctx, actor.UserID, status, page, pageSize)
}

func (s *maintenanceService) ListForLandlord(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	return s.maintRepo.ListByLandlord(ctx, actor.UserID, status, page, pageSize)
}
