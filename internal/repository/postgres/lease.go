package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type leaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

const leaseColumns = `id, listing_id, tenant_id, landlord_id, status, start_date, end_date, rent_cents, payment_frequency, deposit_cents, signing_session_id, signing_requested_on, activated_on, terminated_on, created_on, updated_on`

func scanLease(row interface{ Scan(...any) error }, l *domain.Lease) error {
	return row.Scan(&l.ID, &l.ListingID, &l.TenantID, &l.LandlordID, &l.Status, &l.StartDate, &l.EndDate,
		&l.RentCents, &l.PaymentFrequency, &l.DepositCents, &l.SigningSessionID, &l.SigningRequestedOn,
		&l.ActivatedOn, &l.TerminatedOn, &l.CreatedOn, &l.UpdatedOn)
}

func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	query := `INSERT INTO leases (listing_id, tenant_id, landlord_id, status, start_date, end_date, rent_cents, payment_frequency, deposit_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, l.ListingID, l.TenantID, l.LandlordID, l.Status, l.StartDate, l.EndDate,
		l.RentCents, l.PaymentFrequency, l.DepositCents, now, now).Scan(&l.ID)
}

func (r *leaseRepository) GetByID(ctx context.Context, id int32) (*domain.Lease, error) {
	l := &domain.Lease{}
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`
	err := scanLease(r.db.QueryRowContext(ctx, query, id), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaseRepository) GetBySigningSession(ctx context.Context, sessionID string) (*domain.Lease, error) {
	l := &domain.Lease{}
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE signing_session_id = $1`
	err := scanLease(r.db.QueryRowContext(ctx, query, sessionID), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	query := `UPDATE leases SET status=$1, start_date=$2, end_date=$3, rent_cents=$4, payment_frequency=$5, deposit_cents=$6, signing_session_id=$7, signing_requested_on=$8, activated_on=$9, terminated_on=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, l.Status, l.StartDate, l.EndDate, l.RentCents, l.PaymentFrequency,
		l.DepositCents, l.SigningSessionID, l.SigningRequestedOn, l.ActivatedOn, l.TerminatedOn, time.Now(), l.ID)
	return err
}

// Activate re-checks the single-ACTIVE-lease invariant inside the UPDATE, so
// two concurrent activations for the same listing cannot both succeed.
func (r *leaseRepository) Activate(ctx context.Context, id int32, now time.Time) (int64, error) {
	query := `UPDATE leases SET status='ACTIVE', activated_on=$2, updated_on=$2
	          WHERE id=$1 AND status='DRAFT'
	          AND NOT EXISTS (SELECT 1 FROM leases other WHERE other.listing_id = leases.listing_id AND other.status = 'ACTIVE')`
	res, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *leaseRepository) HasActiveByListing(ctx context.Context, listingID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leases WHERE listing_id = $1 AND status = 'ACTIVE')`
	err := r.db.QueryRowContext(ctx, query, listingID).Scan(&exists)
	return exists, err
}

func (r *leaseRepository) ExistsByLandlordTenant(ctx context.Context, landlordID, tenantID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leases WHERE landlord_id = $1 AND tenant_id = $2)`
	err := r.db.QueryRowContext(ctx, query, landlordID, tenantID).Scan(&exists)
	return exists, err
}

func (r *leaseRepository) ListByListing(ctx context.Context, listingID int32) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE listing_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		if err := scanLease(rows, &l); err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (r *leaseRepository) ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Lease, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leases WHERE tenant_id = $1`, tenantID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + leaseColumns + ` FROM leases WHERE tenant_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		if err := scanLease(rows, &l); err != nil {
			return nil, 0, err
		}
		leases = append(leases, l)
	}
	return leases, count, rows.Err()
}

func (r *leaseRepository) ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error) {
	where := `WHERE landlord_id = $1`
	args := []interface{}{landlordID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leases `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + leaseColumns + ` FROM leases ` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		if err := scanLease(rows, &l); err != nil {
			return nil, 0, err
		}
		leases = append(leases, l)
	}
	return leases, count, rows.Err()
}

func (r *leaseRepository) ListStaleSigning(ctx context.Context, cutoff time.Time) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE status = 'DRAFT' AND signing_requested_on IS NOT NULL AND signing_requested_on < $1 ORDER BY signing_requested_on`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		if err := scanLease(rows, &l); err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}
