package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"rentfolio-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLeaseRepository_Activate(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE leases SET status='ACTIVE'`)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("Guarded update lands", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewLeaseRepository(db)

		mock.ExpectExec(query).
			WithArgs(int32(10), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Activate(context.Background(), 10, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflicting active lease yields zero rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewLeaseRepository(db)

		mock.ExpectExec(query).
			WithArgs(int32(10), now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Activate(context.Background(), 10, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaseRepository_GetByID(t *testing.T) {
	t.Run("Missing lease maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewLeaseRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM leases WHERE id = \$1`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err = repo.GetByID(context.Background(), 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Row scans", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewLeaseRepository(db)

		now := time.Now()
		cols := []string{"id", "listing_id", "tenant_id", "landlord_id", "status", "start_date", "end_date",
			"rent_cents", "payment_frequency", "deposit_cents", "signing_session_id", "signing_requested_on",
			"activated_on", "terminated_on", "created_on", "updated_on"}
		mock.ExpectQuery(`SELECT (.+) FROM leases WHERE id = \$1`).
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int32(10), int32(1), int32(5), int32(2), "DRAFT", now, now.AddDate(1, 0, 0),
					int32(150000), "MONTHLY", int32(150000), nil, nil, nil, nil, now, now))

		lease, err := repo.GetByID(context.Background(), 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.LeaseStatusDraft, lease.Status)
		assert.Nil(t, lease.SigningSessionID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaseRepository_HasActiveByListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewLeaseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	active, err := repo.HasActiveByListing(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseRepository_ExistsByLandlordTenant(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewLeaseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM leases WHERE landlord_id = $1 AND tenant_id = $2)`)).
		WithArgs(int32(2), int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	related, err := repo.ExistsByLandlordTenant(context.Background(), 2, 5)
	assert.NoError(t, err)
	assert.False(t, related)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseRepository_ListStaleSigning(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewLeaseRepository(db)

	now := time.Now()
	cutoff := now.Add(-72 * time.Hour)
	session := "sign_abc"
	cols := []string{"id", "listing_id", "tenant_id", "landlord_id", "status", "start_date", "end_date",
		"rent_cents", "payment_frequency", "deposit_cents", "signing_session_id", "signing_requested_on",
		"activated_on", "terminated_on", "created_on", "updated_on"}
	mock.ExpectQuery(`SELECT (.+) FROM leases WHERE status = 'DRAFT' AND signing_requested_on IS NOT NULL`).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int32(10), int32(1), int32(5), int32(2), "DRAFT", now, now.AddDate(1, 0, 0),
				int32(150000), "MONTHLY", int32(150000), &session, &cutoff, nil, nil, now, now))

	stale, err := repo.ListStaleSigning(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Len(t, stale, 1)
	assert.Equal(t, "sign_abc", *stale[0].SigningSessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
