package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"

	"github.com/lib/pq"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, landlord_id, address, city, property_type, bedrooms, bathrooms, rent_cents, deposit_cents, available_from, description, deleted_on, created_on, updated_on`

func scanListing(row interface{ Scan(...any) error }, l *domain.Listing) error {
	return row.Scan(&l.ID, &l.LandlordID, &l.Address, &l.City, &l.PropertyType, &l.Bedrooms, &l.Bathrooms,
		&l.RentCents, &l.DepositCents, &l.AvailableFrom, &l.Description, &l.DeletedOn, &l.CreatedOn, &l.UpdatedOn)
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (landlord_id, address, city, property_type, bedrooms, bathrooms, rent_cents, deposit_cents, available_from, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, l.LandlordID, l.Address, l.City, l.PropertyType, l.Bedrooms, l.Bathrooms,
		l.RentCents, l.DepositCents, l.AvailableFrom, l.Description, now, now).Scan(&l.ID)
}

func (r *listingRepository) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	l := &domain.Listing{}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	err := scanListing(r.db.QueryRowContext(ctx, query, id), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	query := `UPDATE listings SET address=$1, city=$2, property_type=$3, bedrooms=$4, bathrooms=$5, rent_cents=$6, deposit_cents=$7, available_from=$8, description=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, l.Address, l.City, l.PropertyType, l.Bedrooms, l.Bathrooms,
		l.RentCents, l.DepositCents, l.AvailableFrom, l.Description, time.Now(), l.ID)
	return err
}

func (r *listingRepository) ListByLandlord(ctx context.Context, landlordID int32, page, pageSize int32) ([]domain.Listing, int32, error) {
	where := `WHERE landlord_id = $1 AND deleted_on IS NULL`

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM listings `+where, landlordID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + listingColumns + ` FROM listings ` + where + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, landlordID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	return listings, count, rows.Err()
}

func (r *listingRepository) ListPublished(ctx context.Context, page, pageSize int32) ([]domain.Listing, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM listings WHERE deleted_on IS NULL`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE deleted_on IS NULL ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	return listings, count, rows.Err()
}

// BulkSoftDelete re-checks the no-ACTIVE-lease precondition inside the write
// so a lease activated between validation and commit aborts the whole batch.
func (r *listingRepository) BulkSoftDelete(ctx context.Context, ids []int32) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `UPDATE listings SET deleted_on = $2, updated_on = $2
	          WHERE id = ANY($1) AND deleted_on IS NULL
	          AND NOT EXISTS (SELECT 1 FROM leases WHERE leases.listing_id = listings.id AND leases.status = 'ACTIVE')`
	res, err := tx.ExecContext(ctx, query, pq.Array(ids), time.Now())
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected != int64(len(ids)) {
		return affected, domain.ErrOptimisticConflict
	}
	return affected, tx.Commit()
}

func (r *listingRepository) CreateImage(ctx context.Context, img *domain.ListingImage) error {
	query := `INSERT INTO listing_images (listing_id, storage_key, is_primary, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, img.ListingID, img.StorageKey, img.IsPrimary, time.Now()).Scan(&img.ID)
}

func (r *listingRepository) GetImages(ctx context.Context, listingID int32) ([]domain.ListingImage, error) {
	query := `SELECT id, listing_id, storage_key, is_primary, created_on FROM listing_images WHERE listing_id = $1 ORDER BY is_primary DESC, id`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ListingImage
	for rows.Next() {
		var img domain.ListingImage
		if err := rows.Scan(&img.ID, &img.ListingID, &img.StorageKey, &img.IsPrimary, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
