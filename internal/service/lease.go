package service

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
	"rentfolio-backend/internal/utils"
)

type leaseService struct {
	leaseRepo     repository.LeaseRepository
	listingRepo   repository.ListingRepository
	userRepo      repository.UserRepository
	signingSvc    SigningService
	emailSvc      EmailService
	signingWindow time.Duration
}

func NewLeaseService(
	leaseRepo repository.LeaseRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	signingSvc SigningService,
	emailSvc EmailService,
	signingWindow time.Duration,
) LeaseService {
	return &leaseService{
		leaseRepo:     leaseRepo,
		listingRepo:   listingRepo,
		userRepo:      userRepo,
		signingSvc:    signingSvc,
		emailSvc:      emailSvc,
		signingWindow: signingWindow,
	}
}

func (s *leaseService) CreateDraft(ctx context.Context, actor Actor, lease *domain.Lease) error {
	if err := requireRole(actor, domain.UserRoleLandlord, domain.UserRoleAdmin); err != nil {
		return err
	}

	listing, err := s.listingRepo.GetByID(ctx, lease.ListingID)
	if err != nil {
		return err
	}
	if err := requireScope(actor, listing.LandlordID, "listing", lease.ListingID); err != nil {
		return err
	}

	if _, err := utils.LeaseTermMonths(lease.StartDate, lease.EndDate); err != nil {
		return err
	}

	lease.LandlordID = listing.LandlordID
	lease.Status = domain.LeaseStatusDraft
	return s.leaseRepo.Create(ctx, lease)
}

func (s *leaseService) GetLease(ctx context.Context, actor Actor, id int32) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(lease.LandlordID) && !actor.CanManage(lease.TenantID) {
		return nil, domain.ErrOwnershipViolation
	}
	return lease, nil
}

func (s *leaseService) RequestSigning(ctx context.Context, actor Actor, leaseID int32) (string, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return "", err
	}
	if err := requireScope(actor, lease.LandlordID, "lease", leaseID); err != nil {
		return "", err
	}
	if lease.Status != domain.LeaseStatusDraft {
		return "", domain.NewTransitionError("lease", lease.Status, domain.LeaseStatusDraft)
	}

	sessionID, err := s.signingSvc.RequestSession(ctx, lease)
	if err != nil {
		return "", err
	}

	now := time.Now()
	lease.SigningSessionID = &sessionID
	lease.SigningRequestedOn = &now
	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *leaseService) HandleSigningConfirmation(ctx context.Context, sessionID string) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetBySigningSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.activate(ctx, lease)
}

func (s *leaseService) Activate(ctx context.Context, actor Actor, leaseID int32) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if err := requireScope(actor, lease.LandlordID, "lease", leaseID); err != nil {
		return nil, err
	}
	return s.activate(ctx, lease)
}

// activate performs the guarded DRAFT -> ACTIVE write and disambiguates the
// miss: a conflicting ACTIVE lease on the listing beats a stale read.
func (s *leaseService) activate(ctx context.Context, lease *domain.Lease) (*domain.Lease, error) {
	if lease.Status != domain.LeaseStatusDraft {
		return lease, domain.NewTransitionError("lease", lease.Status, domain.LeaseStatusActive)
	}

	rows, err := s.leaseRepo.Activate(ctx, lease.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		conflict, cerr := s.leaseRepo.HasActiveByListing(ctx, lease.ListingID)
		if cerr == nil && conflict {
			return lease, domain.ErrConflictingActiveLease
		}
		current, rerr := s.leaseRepo.GetByID(ctx, lease.ID)
		if rerr != nil {
			return lease, rerr
		}
		return current, domain.NewTransitionError("lease", current.Status, domain.LeaseStatusActive)
	}

	activated, err := s.leaseRepo.GetByID(ctx, lease.ID)
	if err != nil {
		return nil, err
	}
	s.notifyParties(ctx, activated, true)
	return activated, nil
}

func (s *leaseService) Terminate(ctx context.Context, actor Actor, leaseID int32) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if err := requireScope(actor, lease.LandlordID, "lease", leaseID); err != nil {
		return nil, err
	}
	if lease.Status != domain.LeaseStatusActive {
		return lease, domain.NewTransitionError("lease", lease.Status, domain.LeaseStatusTerminated)
	}

	// Termination removes the ACTIVE block on the listing but leaves its
	// applications in place; the slot stays hidden until they are cleared.
	now := time.Now()
	lease.Status = domain.LeaseStatusTerminated
	lease.TerminatedOn = &now
	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		return nil, err
	}
	s.notifyParties(ctx, lease, false)
	return lease, nil
}

func (s *leaseService) notifyParties(ctx context.Context, lease *domain.Lease, activated bool) {
	listing, _ := s.listingRepo.GetByID(ctx, lease.ListingID)
	if listing == nil {
		return
	}
	for _, id := range []int32{lease.TenantID, lease.LandlordID} {
		u, _ := s.userRepo.GetByID(ctx, id)
		if u == nil {
			continue
		}
		if activated {
			_ = s.emailSvc.SendLeaseActivated(ctx, u.Email, listing.Address)
		} else {
			_ = s.emailSvc.SendLeaseTerminated(ctx, u.Email, listing.Address)
		}
	}
}

func (s *leaseService) ListStaleSigningSessions(ctx context.Context, now time.Time) ([]domain.Lease, error) {
	return s.leaseRepo.ListStaleSigning(ctx, now.Add(-s.signingWindow))
}

func (s *leaseService) ListForTenant(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Lease, int32, error) {
	return s.leaseRepo.ListByTenant(ctx, actor.UserID, page, pageSize)
}

func (s *leaseService) ListForLandlord(ctx context.Context, actor Actor, status string, page, pageSize int32) ([]domain.Lease, int32, error) {
	return s.leaseRepo.ListByLandlord(ctx, actor.UserID, status, page, pageSize)
}
