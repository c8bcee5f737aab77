package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Not found", domain.ErrNotFound, http.StatusNotFound},
		{"Scope rejection", domain.ErrOwnershipViolation, http.StatusForbidden},
		{"Invalid transition", domain.NewTransitionError("lease", domain.LeaseStatusTerminated, domain.LeaseStatusActive), http.StatusConflict},
		{"Conflicting active lease", domain.ErrConflictingActiveLease, http.StatusConflict},
		{"Lost race", domain.ErrOptimisticConflict, http.StatusConflict},
		{"Bad request", fmt.Errorf("%w: a landlord-raised request needs a tenant or a lease", domain.ErrValidation), http.StatusBadRequest},
		{"Bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Unexpected failure", errUnexpected, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

var errUnexpected = fmt.Errorf("disk on fire")

func TestWriteError_BulkPrecondition(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &domain.BulkPreconditionError{FailedIDs: []int32{2, 3}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []int32{2, 3}, body.FailedIDs)
}
