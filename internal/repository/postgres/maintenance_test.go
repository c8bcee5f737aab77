package postgres

import (
	"context"
	"testing"
	"time"

	"rentfolio-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMaintenanceRepository_TransitionStatus(t *testing.T) {
	query := `UPDATE maintenance_requests SET status=\$1,(\s|.)+WHERE id=\$3 AND status=\$4`
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	t.Run("Pre-image intact", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewMaintenanceRepository(db)

		mock.ExpectExec(query).
			WithArgs(domain.MaintenanceStatusCompleted, now, int32(7), domain.MaintenanceStatusInProgress).
			WillReturnResult(sqlmock.NewResult(0, 1))

		moved, err := repo.TransitionStatus(context.Background(), 7, domain.MaintenanceStatusInProgress, domain.MaintenanceStatusCompleted, now)
		assert.NoError(t, err)
		assert.True(t, moved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Row moved since read", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewMaintenanceRepository(db)

		mock.ExpectExec(query).
			WithArgs(domain.MaintenanceStatusInProgress, now, int32(7), domain.MaintenanceStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 0))

		moved, err := repo.TransitionStatus(context.Background(), 7, domain.MaintenanceStatusOpen, domain.MaintenanceStatusInProgress, now)
		assert.NoError(t, err)
		assert.False(t, moved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
