package http

import (
	"net/http"

	"rentfolio-backend/internal/service"
)

type BulkHandler struct {
	bulkSvc service.BulkService
}

func NewBulkHandler(bulkSvc service.BulkService) *BulkHandler {
	return &BulkHandler{bulkSvc: bulkSvc}
}

type bulkMutateRequest struct {
	EntityType service.BulkEntityType `json:"entity_type"`
	IDs        []int32                `json:"ids"`
	Action     service.BulkAction     `json:"action"`
}

type bulkMutateResponse struct {
	Affected int64 `json:"affected"`
}

func (h *BulkHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	var req bulkMutateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ids must not be empty"})
		return
	}
	affected, err := h.bulkSvc.Mutate(r.Context(), actorFrom(r), req.EntityType, req.IDs, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bulkMutateResponse{Affected: affected})
}
