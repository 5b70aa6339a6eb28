package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskhq/taskhq-api/internal/api/shared"
	"github.com/taskhq/taskhq-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the verified identity claims to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Auth failures log at WARN so repeated attempts stand out.
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Authorization header required", auth.ErrMissingToken,
				shared.WithElevatedLogLevel())
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				"Invalid authorization format", auth.ErrInvalidToken,
				shared.WithElevatedLogLevel())
			return
		}

		token := parts[1]

		claims, err := m.tokenService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Token expired", err, shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Token not yet valid", err, shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					"Invalid token", err, shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the verified identity claims from the request context.
// Returns the claims and a boolean indicating if they were found.
func GetIdentity(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.IdentityContextKey).(*auth.Claims)
	return claims, ok
}
