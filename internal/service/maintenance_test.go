package service_test

import (
	"context"
	"testing"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMaintenanceFixture() (*MockMaintenanceRepo, *MockListingRepo, *MockLeaseRepo, service.MaintenanceService) {
	maintRepo := new(MockMaintenanceRepo)
	listingRepo := new(MockListingRepo)
	leaseRepo := new(MockLeaseRepo)
	svc := service.NewMaintenanceService(maintRepo, listingRepo, leaseRepo)
	return maintRepo, listingRepo, leaseRepo, svc
}

func TestMaintenanceService_Create(t *testing.T) {
	ctx := context.Background()
	tenant := service.Actor{UserID: 5, Role: domain.UserRoleTenant}
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}
	listing := &domain.Listing{ID: 1, LandlordID: 2}

	t.Run("Tenant raises against a listing", func(t *testing.T) {
		maintRepo, listingRepo, _, svc := newMaintenanceFixture()
		listingRepo.On("GetByID", ctx, int32(1)).Return(listing, nil)
		maintRepo.On("Create", ctx, mock.AnythingOfType("*domain.MaintenanceRequest")).Return(nil)

		req := &domain.MaintenanceRequest{ListingID: 1, Title: "Leaking tap"}
		err := svc.Create(ctx, tenant, req)
		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusOpen, req.Status)
		assert.Equal(t, domain.MaintenancePriorityMedium, req.Priority)
		assert.Equal(t, int32(5), req.TenantID)
		assert.Equal(t, int32(2), req.LandlordID)
	})

	t.Run("Landlord must name tenant or lease", func(t *testing.T) {
		maintRepo, listingRepo, _, svc := newMaintenanceFixture()
		listingRepo.On("GetByID", ctx, int32(1)).Return(listing, nil)

		err := svc.Create(ctx, landlord, &domain.MaintenanceRequest{ListingID: 1})
		assert.ErrorIs(t, err, domain.ErrValidation)
		maintRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Tenant inferred from the lease", func(t *testing.T) {
		maintRepo, listingRepo, leaseRepo, svc := newMaintenanceFixture()
		leaseID := int32(10)
		listingRepo.On("GetByID", ctx, int32(1)).Return(listing, nil)
		leaseRepo.On("GetByID", ctx, leaseID).Return(&domain.Lease{ID: 10, ListingID: 1, TenantID: 5}, nil)
		maintRepo.On("Create", ctx, mock.AnythingOfType("*domain.MaintenanceRequest")).Return(nil)

		req := &domain.MaintenanceRequest{ListingID: 1, LeaseID: &leaseID}
		err := svc.Create(ctx, landlord, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), req.TenantID)
	})

	t.Run("Lease on another listing rejected", func(t *testing.T) {
		_, listingRepo, leaseRepo, svc := newMaintenanceFixture()
		leaseID := int32(10)
		listingRepo.On("GetByID", ctx, int32(1)).Return(listing, nil)
		leaseRepo.On("GetByID", ctx, leaseID).Return(&domain.Lease{ID: 10, ListingID: 99, TenantID: 5}, nil)

		err := svc.Create(ctx, landlord, &domain.MaintenanceRequest{ListingID: 1, LeaseID: &leaseID})
		assert.ErrorIs(t, err, domain.ErrOwnershipViolation)
	})

	t.Run("Foreign landlord rejected", func(t *testing.T) {
		_, listingRepo, _, svc := newMaintenanceFixture()
		listingRepo.On("GetByID", ctx, int32(1)).Return(&domain.Listing{ID: 1, LandlordID: 77}, nil)

		err := svc.Create(ctx, landlord, &domain.MaintenanceRequest{ListingID: 1, TenantID: 5})
		assert.ErrorIs(t, err, domain.ErrOwnershipViolation)
	})
}

func TestMaintenanceService_Transition(t *testing.T) {
	ctx := context.Background()
	tenant := service.Actor{UserID: 5, Role: domain.UserRoleTenant}
	landlord := service.Actor{UserID: 2, Role: domain.UserRoleLandlord}

	t.Run("Tenant cancels an open request", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusOpen}, nil)
		maintRepo.On("TransitionStatus", ctx, int32(7), domain.MaintenanceStatusOpen, domain.MaintenanceStatusCancelled, mock.AnythingOfType("time.Time")).Return(true, nil)

		req, err := svc.Transition(ctx, tenant, 7, domain.MaintenanceStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusCancelled, req.Status)
		assert.NotNil(t, req.CancelledOn)
	})

	t.Run("Tenant cannot cancel once work started", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusInProgress}, nil)

		_, err := svc.Transition(ctx, tenant, 7, domain.MaintenanceStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrOwnershipViolation)
	})

	t.Run("Tenant cannot complete", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusInProgress}, nil)

		_, err := svc.Transition(ctx, tenant, 7, domain.MaintenanceStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrOwnershipViolation)
	})

	t.Run("Landlord completes in-progress work", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusInProgress}, nil)
		maintRepo.On("TransitionStatus", ctx, int32(7), domain.MaintenanceStatusInProgress, domain.MaintenanceStatusCompleted, mock.AnythingOfType("time.Time")).Return(true, nil)

		req, err := svc.Transition(ctx, landlord, 7, domain.MaintenanceStatusCompleted)
		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusCompleted, req.Status)
		assert.NotNil(t, req.CompletedOn)
	})

	t.Run("Open cannot jump to completed", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusOpen}, nil)

		_, err := svc.Transition(ctx, landlord, 7, domain.MaintenanceStatusCompleted)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		maintRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost race reports the state that won", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusOpen}, nil).Once()
		// A concurrent bulk cancel moved the row first; the guarded write
		// misses and the cancelled state comes back untouched.
		maintRepo.On("TransitionStatus", ctx, int32(7), domain.MaintenanceStatusOpen, domain.MaintenanceStatusInProgress, mock.AnythingOfType("time.Time")).Return(false, nil)
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusCancelled}, nil).Once()

		req, err := svc.Transition(ctx, landlord, 7, domain.MaintenanceStatusInProgress)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, domain.MaintenanceStatusCancelled, req.Status)
	})

	t.Run("Cancelled is terminal", func(t *testing.T) {
		maintRepo, _, _, svc := newMaintenanceFixture()
		maintRepo.On("GetByID", ctx, int32(7)).Return(&domain.MaintenanceRequest{ID: 7, TenantID: 5, LandlordID: 2, Status: domain.MaintenanceStatusCancelled}, nil)

		_, err := svc.Transition(ctx, landlord, 7, domain.MaintenanceStatusInProgress)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}
