package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"

	"github.com/lib/pq"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, listing_id, tenant_id, landlord_id, status, message, decided_on, cleared_on, created_on, updated_on`

func scanApplication(row interface{ Scan(...any) error }, a *domain.Application) error {
	return row.Scan(&a.ID, &a.ListingID, &a.TenantID, &a.LandlordID, &a.Status, &a.Message,
		&a.DecidedOn, &a.ClearedOn, &a.CreatedOn, &a.UpdatedOn)
}

func (r *applicationRepository) Create(ctx context.Context, a *domain.Application) error {
	query := `INSERT INTO applications (listing_id, tenant_id, landlord_id, status, message, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, a.ListingID, a.TenantID, a.LandlordID, a.Status, a.Message, now, now).Scan(&a.ID)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	a := &domain.Application{}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	err := scanApplication(r.db.QueryRowContext(ctx, query, id), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *applicationRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// TransitionStatus guards the write on the status pre-image so a racing
// review or open cannot be silently overwritten.
func (r *applicationRepository) TransitionStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, decidedOn *time.Time) (bool, error) {
	query := `UPDATE applications SET status=$1, decided_on=COALESCE($2, decided_on), updated_on=$3 WHERE id=$4 AND status=$5`
	res, err := r.db.ExecContext(ctx, query, to, decidedOn, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *applicationRepository) ExistsOpen(ctx context.Context, listingID, tenantID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM applications WHERE listing_id = $1 AND tenant_id = $2 AND status IN ('NEW', 'PENDING'))`
	err := r.db.QueryRowContext(ctx, query, listingID, tenantID).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) ExistsByLandlordTenant(ctx context.Context, landlordID, tenantID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM applications WHERE landlord_id = $1 AND tenant_id = $2)`
	err := r.db.QueryRowContext(ctx, query, landlordID, tenantID).Scan(&exists)
	return exists, err
}

func (r *applicationRepository) ListByListing(ctx context.Context, listingID int32) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE listing_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Application, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM applications WHERE tenant_id = $1`, tenantID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE tenant_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, count, rows.Err()
}

func (r *applicationRepository) ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	where := `WHERE landlord_id = $1`
	args := []interface{}{landlordID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM applications `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationColumns + ` FROM applications ` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, count, rows.Err()
}

// ApproveWithLease is the one write that crosses the application/lease
// boundary: the approval and the draft lease either both land or neither.
func (r *applicationRepository) ApproveWithLease(ctx context.Context, a *domain.Application, lease *domain.Lease) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE applications SET status='APPROVED', decided_on=$1, updated_on=$1 WHERE id=$2 AND status='PENDING'`,
		now, a.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOptimisticConflict
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO leases (listing_id, tenant_id, landlord_id, status, start_date, end_date, rent_cents, payment_frequency, deposit_cents, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		lease.ListingID, lease.TenantID, lease.LandlordID, lease.Status, lease.StartDate, lease.EndDate,
		lease.RentCents, lease.PaymentFrequency, lease.DepositCents, now, now).Scan(&lease.ID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	a.Status = domain.ApplicationStatusApproved
	a.DecidedOn = &now
	return nil
}

func (r *applicationRepository) ClearByListing(ctx context.Context, listingID int32) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET cleared_on=$1, updated_on=$1 WHERE listing_id=$2 AND cleared_on IS NULL`,
		time.Now(), listingID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *applicationRepository) BulkClear(ctx context.Context, ids []int32) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE applications SET cleared_on=$2, updated_on=$2 WHERE id = ANY($1) AND cleared_on IS NULL AND status <> 'APPROVED'`,
		pq.Array(ids), time.Now())
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
