package middleware

import (
	"net/http"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

// RequireRole lets the request through only when the signed-in principal holds one of roles.
// Anonymous requests go to unauthenticated, wrong roles to forbidden.
func RequireRole(unauthenticated, forbidden http.HandlerFunc, roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				unauthenticated(w, r)
				return
			}

			if !HasRole(principal, roles...) {
				logger.From(r.Context()).Warn("access denied: role required",
					"user_id", principal.UserID,
					"role", string(principal.Role),
					"required_roles", roles,
					"path", r.URL.Path)
				forbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func HasRole(p *internal.Principal, roles ...user.Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
