package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"
)

type InsuranceHandler struct {
	insSvc service.InsuranceService
}

func NewInsuranceHandler(insSvc service.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{insSvc: insSvc}
}

func (h *InsuranceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var ins domain.Insurance
	if !decodeBody(w, r, &ins) {
		return
	}
	if err := h.insSvc.Submit(r.Context(), actorFrom(r), &ins); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ins)
}

func (h *InsuranceHandler) GetForTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, mux.Vars(r), "tenant_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid tenant id"})
		return
	}
	ins, err := h.insSvc.GetForTenant(r.Context(), actorFrom(r), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}

type reviewInsuranceRequest struct {
	Decision domain.InsuranceStatus `json:"decision"`
}

func (h *InsuranceHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid insurance id"})
		return
	}
	var req reviewInsuranceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ins, err := h.insSvc.Review(r.Context(), actorFrom(r), id, req.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}
