package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"
)

type MaintenanceHandler struct {
	maintSvc service.MaintenanceService
}

func NewMaintenanceHandler(maintSvc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintSvc: maintSvc}
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.MaintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.maintSvc.Create(r.Context(), actorFrom(r), &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid maintenance request id"})
		return
	}
	req, err := h.maintSvc.Get(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type transitionRequest struct {
	Status domain.MaintenanceStatus `json:"status"`
}

func (h *MaintenanceHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid maintenance request id"})
		return
	}
	var body transitionRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, err := h.maintSvc.Transition(r.Context(), actorFrom(r), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *MaintenanceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	reqs, total, err := h.maintSvc.ListForTenant(r.Context(), actorFrom(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: reqs, Total: total, Page: page})
}

func (h *MaintenanceHandler) ListForLandlord(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	reqs, total, err := h.maintSvc.ListForLandlord(r.Context(), actorFrom(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: reqs, Total: total, Page: page})
}
