package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/service"
)

type errorResponse struct {
	Error     string  `json:"error"`
	FailedIDs []int32 `json:"failed_ids,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP status codes. State-machine
// violations and lost races are conflicts, scope rejections are forbidden,
// and a bulk precondition failure reports the offending ids.
func writeError(w http.ResponseWriter, err error) {
	var bulkErr *domain.BulkPreconditionError
	switch {
	case errors.As(err, &bulkErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     bulkErr.Error(),
			FailedIDs: bulkErr.FailedIDs,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrOwnershipViolation):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConflictingActiveLease),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrOptimisticConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// pathID parses the named route variable as an int32 id.
func pathID(r *http.Request, vars map[string]string, name string) (int32, error) {
	raw, ok := vars[name]
	if !ok {
		return 0, strconv.ErrSyntax
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

// pagination reads page/page_size query parameters with sane defaults.
func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

type pagedResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Page  int32 `json:"page"`
}
