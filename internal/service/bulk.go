package service

import (
	"context"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/repository"
)

type bulkService struct {
	listingRepo repository.ListingRepository
	appRepo     repository.ApplicationRepository
	leaseRepo   repository.LeaseRepository
	maintRepo   repository.MaintenanceRepository
	invoiceRepo repository.InvoiceRepository
}

func NewBulkService(
	listingRepo repository.ListingRepository,
	appRepo repository.ApplicationRepository,
	leaseRepo repository.LeaseRepository,
	maintRepo repository.MaintenanceRepository,
	invoiceRepo repository.InvoiceRepository,
) BulkService {
	return &bulkService{
		listingRepo: listingRepo,
		appRepo:     appRepo,
		leaseRepo:   leaseRepo,
		maintRepo:   maintRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Mutate is all or nothing. Every id is checked against ownership and state
// preconditions up front; one offender rejects the whole batch. The bulk SQL
// re-checks the same preconditions, so a record that moved between the check
// and the write surfaces as ErrOptimisticConflict and nothing is committed.
func (s *bulkService) Mutate(ctx context.Context, actor Actor, entityType BulkEntityType, ids []int32, action BulkAction) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: bulk mutation requires at least one id", domain.ErrValidation)
	}

	var (
		affected int64
		err      error
	)
	switch {
	case entityType == BulkEntityListing && action == BulkActionDelete:
		affected, err = s.deleteListings(ctx, actor, ids)
	case entityType == BulkEntityApplication && action == BulkActionCancel:
		affected, err = s.clearApplications(ctx, actor, ids)
	case entityType == BulkEntityMaintenance && action == BulkActionCancel:
		affected, err = s.cancelMaintenance(ctx, actor, ids)
	case entityType == BulkEntityInvoice && action == BulkActionCancel:
		affected, err = s.cancelInvoices(ctx, actor, ids)
	default:
		return 0, fmt.Errorf("unsupported bulk mutation %s/%s", entityType, action)
	}
	if err != nil {
		return 0, err
	}

	logger.Info("Bulk mutation applied",
		"entity_type", entityType,
		"action", action,
		"count", affected,
		"user_id", actor.UserID)
	return affected, nil
}

func (s *bulkService) deleteListings(ctx context.Context, actor Actor, ids []int32) (int64, error) {
	listings, err := s.listingRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	found := make(map[int32]*domain.Listing, len(listings))
	for i := range listings {
		found[listings[i].ID] = &listings[i]
	}

	var failed []int32
	for _, id := range ids {
		l, ok := found[id]
		if !ok || l.DeletedOn != nil || !actor.CanManage(l.LandlordID) {
			failed = append(failed, id)
			continue
		}
		active, err := s.leaseRepo.HasActiveByListing(ctx, id)
		if err != nil {
			return 0, err
		}
		if active {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return 0, &domain.BulkPreconditionError{FailedIDs: failed}
	}

	return s.listingRepo.BulkSoftDelete(ctx, ids)
}

func (s *bulkService) clearApplications(ctx context.Context, actor Actor, ids []int32) (int64, error) {
	apps, err := s.appRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	found := make(map[int32]*domain.Application, len(apps))
	for i := range apps {
		found[apps[i].ID] = &apps[i]
	}

	var failed []int32
	for _, id := range ids {
		a, ok := found[id]
		if !ok || a.ClearedOn != nil || !actor.CanManage(a.LandlordID) {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return 0, &domain.BulkPreconditionError{FailedIDs: failed}
	}

	return s.appRepo.BulkClear(ctx, ids)
}

func (s *bulkService) cancelMaintenance(ctx context.Context, actor Actor, ids []int32) (int64, error) {
	reqs, err := s.maintRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	found := make(map[int32]*domain.MaintenanceRequest, len(reqs))
	for i := range reqs {
		found[reqs[i].ID] = &reqs[i]
	}

	var failed []int32
	for _, id := range ids {
		r, ok := found[id]
		if !ok || !actor.CanManage(r.LandlordID) || !r.CanTransitionTo(domain.MaintenanceStatusCancelled) {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return 0, &domain.BulkPreconditionError{FailedIDs: failed}
	}

	return s.maintRepo.BulkCancel(ctx, ids, time.Now())
}

func (s *bulkService) cancelInvoices(ctx context.Context, actor Actor, ids []int32) (int64, error) {
	invs, err := s.invoiceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	found := make(map[int32]*domain.Invoice, len(invs))
	for i := range invs {
		found[invs[i].ID] = &invs[i]
	}

	var failed []int32
	for _, id := range ids {
		inv, ok := found[id]
		if !ok || !actor.CanManage(inv.LandlordID) || inv.Status != domain.InvoiceStatusPending {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return 0, &domain.BulkPreconditionError{FailedIDs: failed}
	}

	return s.invoiceRepo.BulkCancel(ctx, ids)
}
