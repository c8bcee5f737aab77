package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	apihttp "rentfolio-backend/internal/api/http"
	"rentfolio-backend/internal/config"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/repository/postgres"
	"rentfolio-backend/internal/security"
	"rentfolio-backend/internal/service"
	"rentfolio-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentfolio API server...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize token manager
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize mock storage
	mockStorage, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	signingService := service.NewMockSigningService()

	authService := service.NewAuthService(store.UserRepository, tokenManager)
	listingService := service.NewListingService(
		store.ListingRepository,
		store.ApplicationRepository,
		store.LeaseRepository,
	)
	applicationService := service.NewApplicationService(
		store.ApplicationRepository,
		store.ListingRepository,
		store.UserRepository,
		emailService,
	)
	leaseService := service.NewLeaseService(
		store.LeaseRepository,
		store.ListingRepository,
		store.UserRepository,
		signingService,
		emailService,
		time.Duration(cfg.Signing.StaleAfterHours)*time.Hour,
	)
	maintenanceService := service.NewMaintenanceService(
		store.MaintenanceRepository,
		store.ListingRepository,
		store.LeaseRepository,
	)
	billingService := service.NewBillingService(
		store.InvoiceRepository,
		store.MaintenanceRepository,
		store.UserRepository,
		emailService,
	)
	insuranceService := service.NewInsuranceService(
		store.InsuranceRepository,
		store.UserRepository,
		store.LeaseRepository,
		store.ApplicationRepository,
		emailService,
		cfg.Insurance.ExpiringSoonDays,
	)
	bulkService := service.NewBulkService(
		store.ListingRepository,
		store.ApplicationRepository,
		store.LeaseRepository,
		store.MaintenanceRepository,
		store.InvoiceRepository,
	)

	// Build router
	h := apihttp.NewHandlers(
		authService,
		listingService,
		applicationService,
		leaseService,
		maintenanceService,
		billingService,
		insuranceService,
		bulkService,
	)
	router := apihttp.NewRouter(h, tokenManager, mockStorage)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
