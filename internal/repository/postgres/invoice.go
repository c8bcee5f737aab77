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

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, maintenance_request_id, landlord_id, tenant_id, amount_cents, description, status, created_on, updated_on`
const paymentColumns = `id, invoice_id, status, proof_of_payment_key, paid_date, created_on, updated_on`

func scanInvoice(row interface{ Scan(...any) error }, inv *domain.Invoice) error {
	return row.Scan(&inv.ID, &inv.MaintenanceRequestID, &inv.LandlordID, &inv.TenantID,
		&inv.AmountCents, &inv.Description, &inv.Status, &inv.CreatedOn, &inv.UpdatedOn)
}

func scanPayment(row interface{ Scan(...any) error }, p *domain.Payment) error {
	return row.Scan(&p.ID, &p.InvoiceID, &p.Status, &p.ProofOfPaymentKey, &p.PaidDate, &p.CreatedOn, &p.UpdatedOn)
}

func (r *invoiceRepository) CreateWithPayment(ctx context.Context, inv *domain.Invoice, pay *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO invoices (maintenance_request_id, landlord_id, tenant_id, amount_cents, description, status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		inv.MaintenanceRequestID, inv.LandlordID, inv.TenantID, inv.AmountCents, inv.Description, inv.Status, now, now).Scan(&inv.ID)
	if err != nil {
		return err
	}

	pay.InvoiceID = inv.ID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO payments (invoice_id, status, proof_of_payment_key, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		pay.InvoiceID, pay.Status, pay.ProofOfPaymentKey, now, now).Scan(&pay.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	err := scanInvoice(r.db.QueryRowContext(ctx, query, id), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) GetPaymentByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := scanPayment(r.db.QueryRowContext(ctx, query, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *invoiceRepository) GetPaymentByInvoice(ctx context.Context, invoiceID int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1`
	err := scanPayment(r.db.QueryRowContext(ctx, query, invoiceID), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePaymentGuarded guards the write on the status pre-image so a
// confirmation that raced a settlement cannot overwrite the settled row.
func (r *invoiceRepository) UpdatePaymentGuarded(ctx context.Context, p *domain.Payment, from domain.PaymentStatus) (bool, error) {
	query := `UPDATE payments SET status=$1, proof_of_payment_key=$2, paid_date=$3, updated_on=$4 WHERE id=$5 AND status=$6`
	res, err := r.db.ExecContext(ctx, query, p.Status, p.ProofOfPaymentKey, p.PaidDate, time.Now(), p.ID, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// Settle is the only write path that moves an invoice to PAID or CANCELLED;
// it always carries the payment row along in the same transaction, which is
// what keeps Invoice PAID <=> Payment PAID. Both rows are guarded on their
// pre-images; a miss on either side rolls the transaction back.
func (r *invoiceRepository) Settle(ctx context.Context, invoiceID int32, status domain.InvoiceStatus, paidDate *time.Time, fromPayment domain.PaymentStatus) error {
	if status != domain.InvoiceStatusPaid && status != domain.InvoiceStatusCancelled {
		return fmt.Errorf("settle: unsupported target status %s", status)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET status=$1, updated_on=$2 WHERE id=$3 AND status='PENDING'`,
		status, now, invoiceID)
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

	res, err = tx.ExecContext(ctx,
		`UPDATE payments SET status=$1, paid_date=$2, updated_on=$3 WHERE invoice_id=$4 AND status=$5`,
		domain.PaymentStatus(status), paidDate, now, invoiceID, fromPayment)
	if err != nil {
		return err
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOptimisticConflict
	}

	return tx.Commit()
}

func (r *invoiceRepository) listBy(ctx context.Context, column string, ownerID int32, page, pageSize int32) ([]domain.Invoice, int32, error) {
	where := fmt.Sprintf(`WHERE %s = $1`, column)

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM invoices `+where, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices ` + where + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, count, rows.Err()
}

func (r *invoiceRepository) ListByTenant(ctx context.Context, tenantID int32, page, pageSize int32) ([]domain.Invoice, int32, error) {
	return r.listBy(ctx, "tenant_id", tenantID, page, pageSize)
}

func (r *invoiceRepository) ListByLandlord(ctx context.Context, landlordID int32, page, pageSize int32) ([]domain.Invoice, int32, error) {
	return r.listBy(ctx, "landlord_id", landlordID, page, pageSize)
}

func (r *invoiceRepository) BulkCancel(ctx context.Context, ids []int32) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET status='CANCELLED', updated_on=$2 WHERE id = ANY($1) AND status='PENDING'`,
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

	if _, err := tx.ExecContext(ctx,
		`UPDATE payments SET status='CANCELLED', updated_on=$2 WHERE invoice_id = ANY($1)`,
		pq.Array(ids), now); err != nil {
		return 0, err
	}

	return affected, tx.Commit()
}
