package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/security"
	"rentfolio-backend/internal/service"
	"rentfolio-backend/internal/storage"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Listing     *ListingHandler
	Application *ApplicationHandler
	Lease       *LeaseHandler
	Maintenance *MaintenanceHandler
	Billing     *BillingHandler
	Insurance   *InsuranceHandler
	Bulk        *BulkHandler
}

// NewHandlers wires handlers from the service layer.
func NewHandlers(
	authSvc service.AuthService,
	listingSvc service.ListingService,
	appSvc service.ApplicationService,
	leaseSvc service.LeaseService,
	maintSvc service.MaintenanceService,
	billingSvc service.BillingService,
	insSvc service.InsuranceService,
	bulkSvc service.BulkService,
) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(authSvc),
		Listing:     NewListingHandler(listingSvc),
		Application: NewApplicationHandler(appSvc),
		Lease:       NewLeaseHandler(leaseSvc),
		Maintenance: NewMaintenanceHandler(maintSvc),
		Billing:     NewBillingHandler(billingSvc),
		Insurance:   NewInsuranceHandler(insSvc),
		Bulk:        NewBulkHandler(bulkSvc),
	}
}

// NewRouter builds the full route table. Login, the signing webhook and the
// mock storage endpoints are public; everything else sits behind the auth
// middleware.
func NewRouter(h *Handlers, tm security.TokenManager, mockStorage *storage.MockStorageService) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/v1/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/api/v1/signing/callback", h.Lease.SigningCallback).Methods("POST")
	if mockStorage != nil {
		RegisterMockStorageRoutes(r, mockStorage)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Authenticated routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Handler)

	// Listings
	api.HandleFunc("/listings", h.Listing.Create).Methods("POST")
	api.HandleFunc("/listings", h.Listing.ListMine).Methods("GET")
	api.HandleFunc("/listings/browse", h.Listing.Browse).Methods("GET")
	api.HandleFunc("/listings/{id}", h.Listing.Get).Methods("GET")
	api.HandleFunc("/listings/{id}", h.Listing.Update).Methods("PUT")
	api.HandleFunc("/listings/{id}/clear-applications", h.Listing.ClearApplications).Methods("POST")
	api.HandleFunc("/listings/{id}/images", h.Listing.AddImage).Methods("POST")
	api.HandleFunc("/listings/{id}/images", h.Listing.GetImages).Methods("GET")

	// Applications
	api.HandleFunc("/applications", h.Application.Submit).Methods("POST")
	api.HandleFunc("/applications", h.Application.ListMine).Methods("GET")
	api.HandleFunc("/landlord/applications", h.Application.ListForLandlord).Methods("GET")
	api.HandleFunc("/applications/{id}/open", h.Application.Open).Methods("POST")
	api.HandleFunc("/applications/{id}/review", h.Application.Review).Methods("POST")

	// Leases
	api.HandleFunc("/leases", h.Lease.CreateDraft).Methods("POST")
	api.HandleFunc("/leases", h.Lease.ListMine).Methods("GET")
	api.HandleFunc("/landlord/leases", h.Lease.ListForLandlord).Methods("GET")
	api.HandleFunc("/leases/stale-signing", h.Lease.ListStaleSigning).Methods("GET")
	api.HandleFunc("/leases/{id}", h.Lease.Get).Methods("GET")
	api.HandleFunc("/leases/{id}/signing", h.Lease.RequestSigning).Methods("POST")
	api.HandleFunc("/leases/{id}/activate", h.Lease.Activate).Methods("POST")
	api.HandleFunc("/leases/{id}/terminate", h.Lease.Terminate).Methods("POST")

	// Maintenance
	api.HandleFunc("/maintenance", h.Maintenance.Create).Methods("POST")
	api.HandleFunc("/maintenance", h.Maintenance.ListMine).Methods("GET")
	api.HandleFunc("/landlord/maintenance", h.Maintenance.ListForLandlord).Methods("GET")
	api.HandleFunc("/maintenance/{id}", h.Maintenance.Get).Methods("GET")
	api.HandleFunc("/maintenance/{id}/transition", h.Maintenance.Transition).Methods("POST")

	// Billing
	api.HandleFunc("/maintenance/{id}/invoice", h.Billing.IssueInvoice).Methods("POST")
	api.HandleFunc("/invoices", h.Billing.ListMine).Methods("GET")
	api.HandleFunc("/landlord/invoices", h.Billing.ListForLandlord).Methods("GET")
	api.HandleFunc("/invoices/{id}", h.Billing.GetInvoice).Methods("GET")
	api.HandleFunc("/payments/{id}/proof", h.Billing.SubmitPaymentProof).Methods("POST")
	api.HandleFunc("/payments/{id}/confirm", h.Billing.ConfirmPayment).Methods("POST")

	// Insurance
	api.HandleFunc("/insurance", h.Insurance.Submit).Methods("POST")
	api.HandleFunc("/insurance/tenant/{tenant_id}", h.Insurance.GetForTenant).Methods("GET")
	api.HandleFunc("/insurance/{id}/review", h.Insurance.Review).Methods("POST")

	// Bulk mutations
	api.HandleFunc("/bulk", h.Bulk.Mutate).Methods("POST")

	return r
}
