package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Invoice is issued against a maintenance request. Every invoice has
// exactly one payment record, created in the same transaction.
// Invariant: Invoice.Status == PAID if and only if its payment is PAID.
type Invoice struct {
	ID                   int32         `json:"id"`
	MaintenanceRequestID int32         `json:"maintenance_request_id"`
	LandlordID           int32         `json:"landlord_id"`
	TenantID             int32         `json:"tenant_id"`
	AmountCents          int32         `json:"amount_cents"`
	Description          string        `json:"description"`
	Status               InvoiceStatus `json:"status"`
	CreatedOn            time.Time     `json:"created_on"`
	UpdatedOn            time.Time     `json:"updated_on"`
}

type Payment struct {
	ID        int32         `json:"id"`
	InvoiceID int32         `json:"invoice_id"`
	Status    PaymentStatus `json:"status"`
	// ProofOfPaymentKey is an opaque file-storage reference uploaded by the
	// tenant. A payment with a proof attached is awaiting landlord review.
	ProofOfPaymentKey string     `json:"proof_of_payment_key"`
	PaidDate          *time.Time `json:"paid_date,omitempty"`
	CreatedOn         time.Time  `json:"created_on"`
	UpdatedOn         time.Time  `json:"updated_on"`
}

// AwaitingConfirmation reports whether the landlord can decide on the payment.
func (p *Payment) AwaitingConfirmation() bool {
	return p.Status == PaymentStatusPending && p.ProofOfPaymentKey != ""
}
