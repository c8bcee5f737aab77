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

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, listing_id, lease_id, raised_by_id, tenant_id, landlord_id, category, priority, status, title, description, completed_on, cancelled_on, created_on, updated_on`

func scanMaintenance(row interface{ Scan(...any) error }, m *domain.MaintenanceRequest) error {
	return row.Scan(&m.ID, &m.ListingID, &m.LeaseID, &m.RaisedByID, &m.TenantID, &m.LandlordID,
		&m.Category, &m.Priority, &m.Status, &m.Title, &m.Description,
		&m.CompletedOn, &m.CancelledOn, &m.CreatedOn, &m.UpdatedOn)
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRequest) error {
	query := `INSERT INTO maintenance_requests (listing_id, lease_id, raised_by_id, tenant_id, landlord_id, category, priority, status, title, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, m.ListingID, m.LeaseID, m.RaisedByID, m.TenantID, m.LandlordID,
		m.Category, m.Priority, m.Status, m.Title, m.Description, now, now).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.MaintenanceRequest, error) {
	m := &domain.MaintenanceRequest{}
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`
	err := scanMaintenance(r.db.QueryRowContext(ctx, query, id), m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MaintenanceRequest
	for rows.Next() {
		var m domain.MaintenanceRequest
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		reqs = append(reqs, m)
	}
	return reqs, rows.Err()
}

// TransitionStatus guards the write on the status pre-image. The terminal
// stamp column is picked inside the statement so the guard and the stamp
// land atomically.
func (r *maintenanceRepository) TransitionStatus(ctx context.Context, id int32, from, to domain.MaintenanceStatus, now time.Time) (bool, error) {
	query := `UPDATE maintenance_requests SET status=$1,
	          completed_on=CASE WHEN $1 = 'COMPLETED' THEN $2 ELSE completed_on END,
	          cancelled_on=CASE WHEN $1 = 'CANCELLED' THEN $2 ELSE cancelled_on END,
	          updated_on=$2
	          WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, now, id, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *maintenanceRepository) listBy(ctx context.Context, column string, ownerID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	where := fmt.Sprintf(`WHERE %s = $1`, column)
	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM maintenance_requests `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests ` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.MaintenanceRequest
	for rows.Next() {
		var m domain.MaintenanceRequest
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, m)
	}
	return reqs, count, rows.Err()
}

func (r *maintenanceRepository) ListByTenant(ctx context.Context, tenantID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	return r.listBy(ctx, "tenant_id", tenantID, status, page, pageSize)
}

func (r *maintenanceRepository) ListByLandlord(ctx context.Context, landlordID int32, status string, page, pageSize int32) ([]domain.MaintenanceRequest, int32, error) {
	return r.listBy(ctx, "landlord_id", landlordID, status, page, pageSize)
}

func (r *maintenanceRepository) BulkCancel(ctx context.Context, ids []int32, now time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE maintenance_requests SET status='CANCELLED', cancelled_on=$2, updated_on=$2
		 WHERE id = ANY($1) AND status IN ('OPEN', 'IN_PROGRESS')`,
		pq.Array(ids), now)
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
