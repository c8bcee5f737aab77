package postgres

import (
	"database/sql"

	"rentfolio-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ListingRepository
	repository.ApplicationRepository
	repository.LeaseRepository
	repository.MaintenanceRepository
	repository.InvoiceRepository
	repository.InsuranceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		ListingRepository:     NewListingRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		LeaseRepository:       NewLeaseRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
		InvoiceRepository:     NewInvoiceRepository(db),
		InsuranceRepository:   NewInsuranceRepository(db),
	}
}
