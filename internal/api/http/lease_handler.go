package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"
)

type LeaseHandler struct {
	leaseSvc service.LeaseService
}

func NewLeaseHandler(leaseSvc service.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseSvc: leaseSvc}
}

func (h *LeaseHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var lease domain.Lease
	if !decodeBody(w, r, &lease) {
		return
	}
	if err := h.leaseSvc.CreateDraft(r.Context(), actorFrom(r), &lease); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lease)
}

func (h *LeaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lease id"})
		return
	}
	lease, err := h.leaseSvc.GetLease(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

type requestSigningResponse struct {
	SessionID string `json:"session_id"`
}

func (h *LeaseHandler) RequestSigning(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lease id"})
		return
	}
	sessionID, err := h.leaseSvc.RequestSigning(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestSigningResponse{SessionID: sessionID})
}

type signingCallbackRequest struct {
	SessionID string `json:"session_id"`
}

// SigningCallback is the e-sign collaborator's webhook. It carries no user
// token; the session id is the credential.
func (h *LeaseHandler) SigningCallback(w http.ResponseWriter, r *http.Request) {
	var req signingCallbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session_id is required"})
		return
	}
	lease, err := h.leaseSvc.HandleSigningConfirmation(r.Context(), req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lease id"})
		return
	}
	lease, err := h.leaseSvc.Activate(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lease id"})
		return
	}
	lease, err := h.leaseSvc.Terminate(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) ListStaleSigning(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if !actor.IsAdmin() {
		writeError(w, domain.ErrOwnershipViolation)
		return
	}
	leases, err := h.leaseSvc.ListStaleSigningSessions(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leases)
}

func (h *LeaseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	leases, total, err := h.leaseSvc.ListForTenant(r.Context(), actorFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: leases, Total: total, Page: page})
}

func (h *LeaseHandler) ListForLandlord(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	leases, total, err := h.leaseSvc.ListForLandlord(r.Context(), actorFrom(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: leases, Total: total, Page: page})
}
