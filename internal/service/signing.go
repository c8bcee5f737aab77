package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
)

// mockSigningService stands in for the external e-sign provider. It mints a
// session identifier and trusts the webhook endpoint to report completion,
// which is exactly the surface the real provider integration will replace.
type mockSigningService struct{}

func NewMockSigningService() SigningService {
	return &mockSigningService{}
}

func (s *mockSigningService) RequestSession(ctx context.Context, lease *domain.Lease) (string, error) {
	sessionID := fmt.Sprintf("sign_%s", uuid.New().String())
	logger.Info("Signing session created", "lease_id", lease.ID, "session_id", sessionID)
	return sessionID, nil
}
