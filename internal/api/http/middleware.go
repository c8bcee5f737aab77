package http

import (
	"context"
	"net/http"
	"strings"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/security"
	"rentfolio-backend/internal/service"
)

type contextKey string

const actorContextKey contextKey = "actor"

// AuthMiddleware validates the bearer token and injects the acting user
// into the request context. Handlers behind it can assume an actor exists.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		actor := service.Actor{
			UserID: claims.UserID,
			Role:   domain.UserRole(claims.Role),
		}
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	// Remove Bearer prefix if present
	if len(header) > 7 && strings.ToUpper(header[0:7]) == "BEARER " {
		return header[7:]
	}
	return header
}

// actorFrom returns the authenticated actor placed by AuthMiddleware.
func actorFrom(r *http.Request) service.Actor {
	actor, _ := r.Context().Value(actorContextKey).(service.Actor)
	return actor
}
