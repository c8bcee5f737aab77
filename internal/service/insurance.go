package service

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/repository"
)

type insuranceService struct {
	insRepo          repository.InsuranceRepository
	userRepo         repository.UserRepository
	leaseRepo        repository.LeaseRepository
	appRepo          repository.ApplicationRepository
	emailSvc         EmailService
	expiringSoonDays int
}

func NewInsuranceService(
	insRepo repository.InsuranceRepository,
	userRepo repository.UserRepository,
	leaseRepo repository.LeaseRepository,
	appRepo repository.ApplicationRepository,
	emailSvc EmailService,
	expiringSoonDays int,
) InsuranceService {
	return &insuranceService{
		insRepo:          insRepo,
		userRepo:         userRepo,
		leaseRepo:        leaseRepo,
		appRepo:          appRepo,
		emailSvc:         emailSvc,
		expiringSoonDays: expiringSoonDays,
	}
}

// Submit upserts the tenant's policy record. A resubmission always lands in
// PENDING regardless of the previous status, awaiting a fresh review.
func (s *insuranceService) Submit(ctx context.Context, actor Actor, ins *domain.Insurance) error {
	if err := requireRole(actor, domain.UserRoleTenant); err != nil {
		return err
	}
	ins.TenantID = actor.UserID
	ins.Status = domain.InsuranceStatusPending
	return s.insRepo.Create(ctx, ins)
}

func (s *insuranceService) GetForTenant(ctx context.Context, actor Actor, tenantID int32) (*domain.Insurance, error) {
	if err := s.requireInsuranceScope(ctx, actor, tenantID); err != nil {
		return nil, err
	}
	return s.insRepo.GetByTenant(ctx, tenantID)
}

// requireInsuranceScope admits the tenant themselves, admins, and landlords
// who hold a lease or an application with the tenant. An unrelated landlord
// has no business reading another tenant's policy.
func (s *insuranceService) requireInsuranceScope(ctx context.Context, actor Actor, tenantID int32) error {
	if actor.CanManage(tenantID) {
		return nil
	}
	if actor.Role != domain.UserRoleLandlord {
		return domain.ErrOwnershipViolation
	}
	related, err := s.leaseRepo.ExistsByLandlordTenant(ctx, actor.UserID, tenantID)
	if err != nil {
		return err
	}
	if !related {
		related, err = s.appRepo.ExistsByLandlordTenant(ctx, actor.UserID, tenantID)
		if err != nil {
			return err
		}
	}
	if !related {
		logger.Warn("Scope rejection", "entity", "insurance", "tenant_id", tenantID, "user_id", actor.UserID, "role", actor.Role)
		return domain.ErrOwnershipViolation
	}
	return nil
}

// Review decides a PENDING record. The write is guarded on the PENDING
// pre-image so a concurrent resubmission or second reviewer cannot be
// silently overwritten.
func (s *insuranceService) Review(ctx context.Context, actor Actor, id int32, decision domain.InsuranceStatus) (*domain.Insurance, error) {
	if err := requireRole(actor, domain.UserRoleLandlord, domain.UserRoleAdmin); err != nil {
		return nil, err
	}
	if decision != domain.InsuranceStatusVerified && decision != domain.InsuranceStatusRejected {
		return nil, domain.NewTransitionError("insurance", domain.InsuranceStatusPending, decision)
	}

	ins, err := s.insRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireInsuranceScope(ctx, actor, ins.TenantID); err != nil {
		return nil, err
	}
	if ins.Status != domain.InsuranceStatusPending {
		return ins, domain.NewTransitionError("insurance", ins.Status, decision)
	}

	ok, err := s.insRepo.UpdateStatusReviewed(ctx, id, decision)
	if err != nil {
		return nil, err
	}
	if !ok {
		return ins, domain.ErrOptimisticConflict
	}
	ins.Status = decision
	return ins, nil
}

// RunExpirySweep re-evaluates every monitor-eligible record against now.
// Per-record failures never abort the batch: a pre-image mismatch means a
// review or resubmission won the race and the record is skipped.
func (s *insuranceService) RunExpirySweep(ctx context.Context, now time.Time) (domain.SweepResult, error) {
	var result domain.SweepResult

	candidates, err := s.insRepo.ListSweepCandidates(ctx)
	if err != nil {
		return result, err
	}

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			logger.Warn("Insurance sweep stopped early", "error", err, "examined", result.Examined)
			return result, err
		}
		ins := &candidates[i]
		result.Examined++

		next, changed := ins.ExpiryStatusAt(now, s.expiringSoonDays)
		if !changed {
			continue
		}

		ok, err := s.insRepo.UpdateStatusGuarded(ctx, ins.ID, ins.Status, next, ins.UpdatedOn)
		if err != nil {
			logger.Error("Insurance sweep update failed", "error", err, "insurance_id", ins.ID)
			continue
		}
		if !ok {
			result.SkippedDueToConflict++
			continue
		}
		result.Updated++

		if next == domain.InsuranceStatusExpiringSoon {
			tenant, _ := s.userRepo.GetByID(ctx, ins.TenantID)
			if tenant != nil {
				_ = s.emailSvc.SendInsuranceExpiring(ctx, tenant.Email, ins.ExpiryDate)
			}
		}
	}

	logger.Info("Insurance sweep finished",
		"examined", result.Examined,
		"updated", result.Updated,
		"skipped", result.SkippedDueToConflict)
	return result, nil
}
