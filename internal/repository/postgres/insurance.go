package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type insuranceRepository struct {
	db *sql.DB
}

func NewInsuranceRepository(db *sql.DB) repository.InsuranceRepository {
	return &insuranceRepository{db: db}
}

const insuranceColumns = `id, tenant_id, provider_name, policy_number, expiry_date, status, document_key, created_on, updated_on`

func scanInsurance(row interface{ Scan(...any) error }, i *domain.Insurance) error {
	return row.Scan(&i.ID, &i.TenantID, &i.ProviderName, &i.PolicyNumber, &i.ExpiryDate,
		&i.Status, &i.DocumentKey, &i.CreatedOn, &i.UpdatedOn)
}

func (r *insuranceRepository) Create(ctx context.Context, i *domain.Insurance) error {
	query := `INSERT INTO insurance (tenant_id, provider_name, policy_number, expiry_date, status, document_key, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (tenant_id) DO UPDATE SET provider_name=EXCLUDED.provider_name, policy_number=EXCLUDED.policy_number,
	              expiry_date=EXCLUDED.expiry_date, status=EXCLUDED.status, document_key=EXCLUDED.document_key, updated_on=EXCLUDED.updated_on
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, i.TenantID, i.ProviderName, i.PolicyNumber, i.ExpiryDate,
		i.Status, i.DocumentKey, now, now).Scan(&i.ID)
}

func (r *insuranceRepository) GetByID(ctx context.Context, id int32) (*domain.Insurance, error) {
	i := &domain.Insurance{}
	query := `SELECT ` + insuranceColumns + ` FROM insurance WHERE id = $1`
	err := scanInsurance(r.db.QueryRowContext(ctx, query, id), i)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *insuranceRepository) GetByTenant(ctx context.Context, tenantID int32) (*domain.Insurance, error) {
	i := &domain.Insurance{}
	query := `SELECT ` + insuranceColumns + ` FROM insurance WHERE tenant_id = $1`
	err := scanInsurance(r.db.QueryRowContext(ctx, query, tenantID), i)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *insuranceRepository) UpdateStatusReviewed(ctx context.Context, id int32, to domain.InsuranceStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE insurance SET status=$1, updated_on=$2 WHERE id=$3 AND status='PENDING'`,
		to, time.Now(), id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *insuranceRepository) ListSweepCandidates(ctx context.Context) ([]domain.Insurance, error) {
	query := `SELECT ` + insuranceColumns + ` FROM insurance WHERE status IN ('VERIFIED', 'EXPIRING_SOON') ORDER BY expiry_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Insurance
	for rows.Next() {
		var i domain.Insurance
		if err := scanInsurance(rows, &i); err != nil {
			return nil, err
		}
		records = append(records, i)
	}
	return records, rows.Err()
}

// UpdateStatusGuarded is the sweep's conditional write: the WHERE clause
// carries the full pre-image (status and updated_on) so a record touched by
// a concurrent landlord review is skipped, never overwritten.
func (r *insuranceRepository) UpdateStatusGuarded(ctx context.Context, id int32, from, to domain.InsuranceStatus, stamp time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE insurance SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4 AND updated_on=$5`,
		to, time.Now(), id, from, stamp)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
