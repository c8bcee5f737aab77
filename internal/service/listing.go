package service

import (
	"context"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/repository"
)

type listingService struct {
	listingRepo repository.ListingRepository
	appRepo     repository.ApplicationRepository
	leaseRepo   repository.LeaseRepository
}

func NewListingService(
	listingRepo repository.ListingRepository,
	appRepo repository.ApplicationRepository,
	leaseRepo repository.LeaseRepository,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		appRepo:     appRepo,
		leaseRepo:   leaseRepo,
	}
}

func (s *listingService) CreateListing(ctx context.Context, actor Actor, l *domain.Listing) error {
	if err := requireRole(actor, domain.UserRoleLandlord, domain.UserRoleAdmin); err != nil {
		return err
	}
	if l.LandlordID == 0 {
		l.LandlordID = actor.UserID
	}
	if err := requireScope(actor, l.LandlordID, "listing", 0); err != nil {
		return err
	}
	return s.listingRepo.Create(ctx, l)
}

// GetListing recomputes availability from the live application and lease
// rows on every read; it is never cached on the entity.
func (s *listingService) GetListing(ctx context.Context, actor Actor, id int32) (*domain.Listing, bool, error) {
	l, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	available, err := s.availability(ctx, l)
	if err != nil {
		return nil, false, err
	}
	return l, available, nil
}

func (s *listingService) availability(ctx context.Context, l *domain.Listing) (bool, error) {
	apps, err := s.appRepo.ListByListing(ctx, l.ID)
	if err != nil {
		return false, err
	}
	leases, err := s.leaseRepo.ListByListing(ctx, l.ID)
	if err != nil {
		return false, err
	}
	return l.IsAvailable(apps, leases), nil
}

func (s *listingService) UpdateListing(ctx context.Context, actor Actor, l *domain.Listing) error {
	current, err := s.listingRepo.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	if err := requireScope(actor, current.LandlordID, "listing", l.ID); err != nil {
		return err
	}
	l.LandlordID = current.LandlordID
	return s.listingRepo.Update(ctx, l)
}

func (s *listingService) ListMyListings(ctx context.Context, actor Actor, page, pageSize int32) ([]domain.Listing, int32, error) {
	return s.listingRepo.ListByLandlord(ctx, actor.UserID, page, pageSize)
}

// BrowseListings filters the published page down to listings that are
// actually open. Listing volume is low; the per-listing joins are the price
// of never serving a stale availability flag.
func (s *listingService) BrowseListings(ctx context.Context, page, pageSize int32) ([]domain.Listing, int32, error) {
	listings, _, err := s.listingRepo.ListPublished(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	var open []domain.Listing
	for i := range listings {
		available, err := s.availability(ctx, &listings[i])
		if err != nil {
			return nil, 0, err
		}
		if available {
			open = append(open, listings[i])
		}
	}
	return open, int32(len(open)), nil
}

func (s *listingService) ClearApplications(ctx context.Context, actor Actor, listingID int32) (int64, error) {
	l, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return 0, err
	}
	if err := requireScope(actor, l.LandlordID, "listing", listingID); err != nil {
		return 0, err
	}
	cleared, err := s.appRepo.ClearByListing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	logger.Info("Listing reopened", "listing_id", listingID, "applications_cleared", cleared, "user_id", actor.UserID)
	return cleared, nil
}

func (s *listingService) AddImage(ctx context.Context, actor Actor, img *domain.ListingImage) error {
	l, err := s.listingRepo.GetByID(ctx, img.ListingID)
	if err != nil {
		return err
	}
	if err := requireScope(actor, l.LandlordID, "listing", img.ListingID); err != nil {
		return err
	}
	return s.listingRepo.CreateImage(ctx, img)
}

func (s *listingService) GetImages(ctx context.Context, listingID int32) ([]domain.ListingImage, error) {
	return s.listingRepo.GetImages(ctx, listingID)
}
