package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"
)

type ApplicationHandler struct {
	appSvc service.ApplicationService
}

func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

type submitApplicationRequest struct {
	ListingID int32  `json:"listing_id"`
	Message   string `json:"message"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.appSvc.Submit(r.Context(), actorFrom(r), req.ListingID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid application id"})
		return
	}
	app, err := h.appSvc.Open(r.Context(), actorFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

type reviewApplicationRequest struct {
	Decision service.ReviewDecision `json:"decision"`
}

type reviewApplicationResponse struct {
	Application *domain.Application `json:"application"`
	Lease       *domain.Lease       `json:"lease,omitempty"`
}

func (h *ApplicationHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, mux.Vars(r), "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid application id"})
		return
	}
	var req reviewApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, lease, err := h.appSvc.Review(r.Context(), actorFrom(r), id, req.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewApplicationResponse{Application: app, Lease: lease})
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	apps, total, err := h.appSvc.ListForTenant(r.Context(), actorFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: apps, Total: total, Page: page})
}

func (h *ApplicationHandler) ListForLandlord(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	apps, total, err := h.appSvc.ListForLandlord(r.Context(), actorFrom(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: apps, Total: total, Page: page})
}
