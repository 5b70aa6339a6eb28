package middleware

import (
	"net/http"

	"github.com/taskhq/taskhq-api/internal/api/shared"
	"github.com/taskhq/taskhq-api/internal/domain"
)

// RequireRoles returns middleware that allows the request through only when
// the authenticated identity carries one of the given roles. It must run
// after Authenticate; a request with no identity in the context is rejected
// as unauthenticated rather than forbidden.
//
// The role comes from the verified token claims, not the database, so a role
// change takes effect on the user's next sign-in.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetIdentity(r)
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}

			if _, ok := allowed[claims.Role]; !ok {
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
