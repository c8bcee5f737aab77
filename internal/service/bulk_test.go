package service_test

import (
	"context"
	"testing"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBulkFixture() (*MockListingRepo, *MockApplicationRepo, *MockLeaseRepo, *MockMaintenanceRepo, *MockInvoiceRepo, service.BulkService) {
	listingRepo := new(MockListingRepo)
	appRepo := new(MockApplicationRepo)
	leaseRepo := new(MockLeaseRepo)
	maintRepo := new(MockMaintenanceRepo)
	invoiceRepo := new(MockInvoiceRepo)
	svc := service.NewBulkService(listingRepo, appRepo, leaseRepo, maintRepo, invoiceRepo)
	return listingRepo, appRepo, leaseRepo, maintRepo, invoiceRepo, svc
}

func TestBulkService_DeleteListings(t *testing.T) {
	ctx := context.Background()
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}

	t.Run("All preconditions met", func(t *testing.T) {
		listingRepo, _, leaseRepo, _, _, svc := newBulkFixture()
		ids := []int32{1, 2}
		listingRepo.On("GetByIDs", ctx, ids).Return([]domain.Listing{
			{ID: 1, LandlordID: 2},
			{ID: 2, LandlordID: 2},
		}, nil)
		leaseRepo.On("HasActiveByListing", ctx, int32(1)).Return(false, nil)
		leaseRepo.On("HasActiveByListing", ctx, int32(2)).Return(false, nil)
		listingRepo.On("BulkSoftDelete", ctx, ids).Return(int64(2), nil)

		affected, err := svc.Mutate(ctx, landlord, service.BulkEntityListing, ids, service.BulkActionDelete)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("One offender rejects the batch", func(t *testing.T) {
		listingRepo, _, leaseRepo, _, _, svc := newBulkFixture()
		ids := []int32{1, 2, 3}
		listingRepo.On("GetByIDs", ctx, ids).Return([]domain.Listing{
			{ID: 1, LandlordID: 2},
			{ID: 2, LandlordID: 99}, // not ours
		}, nil)
		leaseRepo.On("HasActiveByListing", ctx, int32(1)).Return(false, nil)

		_, err := svc.Mutate(ctx, landlord, service.BulkEntityListing, ids, service.BulkActionDelete)
		var precondErr *domain.BulkPreconditionError
		assert.ErrorAs(t, err, &precondErr)
		assert.ElementsMatch(t, []int32{2, 3}, precondErr.FailedIDs)
		listingRepo.AssertNotCalled(t, "BulkSoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("Active lease blocks deletion", func(t *testing.T) {
		listingRepo, _, leaseRepo, _, _, svc := newBulkFixture()
		ids := []int32{1}
		listingRepo.On("GetByIDs", ctx, ids).Return([]domain.Listing{{ID: 1, LandlordID: 2}}, nil)
		leaseRepo.On("HasActiveByListing", ctx, int32(1)).Return(true, nil)

		_, err := svc.Mutate(ctx, landlord, service.BulkEntityListing, ids, service.BulkActionDelete)
		var precondErr *domain.BulkPreconditionError
		assert.ErrorAs(t, err, &precondErr)
		assert.Equal(t, []int32{1}, precondErr.FailedIDs)
	})

	t.Run("Already deleted listing is an offender", func(t *testing.T) {
		listingRepo, _, _, _, _, svc := newBulkFixture()
		now := time.Now()
		ids := []int32{1}
		listingRepo.On("GetByIDs", ctx, ids).Return([]domain.Listing{{ID: 1, LandlordID: 2, DeletedOn: &now}}, nil)

		_, err := svc.Mutate(ctx, landlord, service.BulkEntityListing, ids, service.BulkActionDelete)
		var precondErr *domain.BulkPreconditionError
		assert.ErrorAs(t, err, &precondErr)
	})
}

func TestBulkService_ClearApplications(t *testing.T) {
	ctx := context.Background()
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}

	t.Run("Cleared in one batch", func(t *testing.T) {
		_, appRepo, _, _, _, svc := newBulkFixture()
		ids := []int32{4, 5}
		appRepo.On("GetByIDs", ctx, ids).Return([]domain.Application{
			{ID: 4, LandlordID: 2, Status: domain.ApplicationStatusRejected},
			{ID: 5, LandlordID: 2, Status: domain.ApplicationStatusNew},
		}, nil)
		appRepo.On("BulkClear", ctx, ids).Return(int64(2), nil)

		affected, err := svc.Mutate(ctx, landlord, service.BulkEntityApplication, ids, service.BulkActionCancel)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("Already cleared application is an offender", func(t *testing.T) {
		_, appRepo, _, _, _, svc := newBulkFixture()
		now := time.Now()
		ids := []int32{4}
		appRepo.On("GetByIDs", ctx, ids).Return([]domain.Application{{ID: 4, LandlordID: 2, ClearedOn: &now}}, nil)

		_, err := svc.Mutate(ctx, landlord, service.BulkEntityApplication, ids, service.BulkActionCancel)
		var precondErr *domain.BulkPreconditionError
		assert.ErrorAs(t, err, &precondErr)
		assert.Equal(t, []int32{4}, precondErr.FailedIDs)
	})
}

func TestBulkService_CancelMaintenance(t *testing.T) {
	ctx := context.Background()
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}

	t.Run("Open and in-progress requests cancel", func(t *testing.T) {
		_, _, _, maintRepo, _, svc := newBulkFixture()
		ids := []int32{7, 8}
		maintRepo.On("GetByIDs", ctx, ids).Return([]domain.MaintenanceRequest{
			{ID: 7, LandlordID: 2, Status: domain.MaintenanceStatusOpen},
			{ID: 8, LandlordID: 2, Status: domain.MaintenanceStatusInProgress},
		}, nil)
		maintRepo.On("BulkCancel", ctx, ids, mock.AnythingOfType("time.Time")).Return(int64(2), nil)

		affected, err := svc.Mutate(ctx, landlord, service.BulkEntityMaintenance, ids, service.BulkActionCancel)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("Completed request is an offender", func(t *testing.T) {
		_, _, _, maintRepo, _, svc := newBulkFixture()
		ids := []int32{7, 8}
		maintRepo.On("GetByIDs", ctx, ids).Return([]domain.MaintenanceRequest{
			{ID: 7, LandlordID: 2, Status: domain.MaintenanceStatusOpen},
			{ID: 8, LandlordID: 2, Status: domain.MaintenanceStatusCompleted},
		}, nil)

		_, err := svc.Mutate(ctx, landlord, service.BulkEntityMaintenance, ids, service.BulkActionCancel)
		var precondErr *domain.BulkPreconditionError
		assert.ErrorAs(t, err, &precondErr)
		assert.Equal(t, []int32{8}, precondErr.FailedIDs)
		maintRepo.AssertNotCalled(t, "BulkCancel", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBulkService_CancelInvoices(t *testing.T) {
	ctx := context.Background()
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}

	t.Run("Pending invoices cancel", func(t *testing.T) {
		_, _, _, _, invoiceRepo, svc := newBulkFixture()
		ids := []int32{20}
		invoiceRepo.On("GetByIDs", ctx, ids).Return([]domain.Invoice{{ID: 20, LandlordID: 2, Status: domain.InvoiceStatusPending}}, nil)
		invoiceRepo.On("BulkCancel", ctx, ids).Return(int64(1), nil)

		affected, err := svc.Mutate(ctx, landlord, service.BulkEntityInvoice, ids, service.BulkActionCancel)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("Paid invoice is an offender", func(t *testing.T) {
		_, _, _, _, invoiceRepo, svc := newBulkFixture()
		ids := []int32{20}
		invoiceRepo.On("GetByIDs", ctx, ids).Return([]domain.Invoice{{ID: 20, LandlordID: 2, Status: domain.InvoiceStatusPaid}}, nil)

		_, err := svc.Mutate(ctx, landlord, service.BulkEntityInvoice, ids, service.BulkActionCancel)
		var precondErr *domain.BulkPreconditionError
		assert.ErrorAs(t, err, &precondErr)
	})
}

func TestBulkService_Mutate_Validation(t *testing.T) {
	ctx := context.Background()
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}
	_, _, _, _, _, svc := newBulkFixture()

	t.Run("Empty id set rejected", func(t *testing.T) {
		_, err := svc.Mutate(ctx, landlord, service.BulkEntityListing, nil, service.BulkActionDelete)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unsupported pair rejected", func(t *testing.T) {
		_, err := svc.Mutate(ctx, landlord, service.BulkEntityListing, []int32{1}, service.BulkActionCancel)
		assert.Error(t, err)
	})
}
