package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"
)

type BillingHandler struct {
	billingSvc service.BillingService
}

func NewBillingHandler(billingSvc service.BillingService) *BillingHandler {
	return &BillingHandler{billingSvc: billingSvc}
}

type issueInvoiceRequest struct {
	AmountCents int32  `json:"amount_cents"`
	Description string `json:"description"`
}

type invoiceResponse struct {
	Invoice *domain.Invoice `json:"invoice"`
	Payment *domain.Payment `json:"payment"`
}

func (h *BillingHandler) IssueInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid maintenance request id"})
		return
	}
	var req issueInvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AmountCents <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount_cents must be positive"})
		return
	}
	inv, pay, err := h.billingSvc.IssueInvoice(r.Context(), actorFrom(r), id, req.AmountCents, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoiceResponse{Invoice: inv, Payment: pay})
}

type paymentProofRequest struct {
	ProofKey string `json:"proof_key"`
}

func (h *BillingHandler) SubmitPaymentProof(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	var req paymentProofRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProofKey == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "proof_key is required"})
		return
	}
	pay, err := h.billingSvc.SubmitPaymentProof(r.Context(), actorFrom(r), id, req.ProofKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pay)
}

type confirmPaymentRequest struct {
	Decision domain.PaymentStatus `json:"decision"`
}

func (h *BillingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	var req confirmPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	inv, pay, err := h.billingSvc.ConfirmPayment(r.Context(), actorFrom(r), id, req.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceResponse{Invoice: inv, Payment: pay})
}

func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id"})
		return
	}
	inv, pay, err := h.billingSvc.GetInvoice(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceResponse{Invoice: inv, Payment: pay})
}

func (h *BillingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	invoices, total, err := h.billingSvc.ListForTenant(r.Context(), actorFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: invoices, Total: total, Page: page})
}

func (h *BillingHandler) ListForLandlord(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	invoices, total, err := h.billingSvc.ListForLandlord(r.Context(), actorFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: invoices, Total: total, Page: page})
}
