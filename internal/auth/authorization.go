package auth

import (
	"errors"
	"net/http"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/transport/middleware"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

// RequireSession redirects to /login unless the cookie names a live session. The principal,
// its token and its user id are placed on the request context.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(h.cookie.Name); err == nil {
			sessionID = c.Value
		}

		principal, err := h.Service.Load(r.Context(), sessionID)
		if err != nil {
			var flash *web.Flash
			if errors.Is(err, internal.ErrSessionExpired) {
				flash = web.Failure("Your session has expired, please sign in again")
			} else if !errors.Is(err, internal.ErrSessionNotFound) {
				logger.From(r.Context()).Error("failed to load session", "error", err)
			}
			if sessionID != "" {
				h.clearCookie(w)
			}
			h.Redirect(w, r, "/login", flash)
			return
		}

		ctx := internal.ContextWithPrincipal(r.Context(), principal)
		ctx = apiclient.WithToken(ctx, principal.Token)
		ctx = logger.With(ctx, "userID", principal.UserID, "role", string(principal.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole answers 403 for signed-in users holding a different role.
func (h *Handler) RequireRole(role user.Role) func(http.Handler) http.Handler {
	return middleware.RequireRole(
		func(w http.ResponseWriter, r *http.Request) {
			h.Redirect(w, r, "/login", nil)
		},
		func(w http.ResponseWriter, r *http.Request) {
			h.RenderError(w, r, http.StatusForbidden, internal.ErrRoleRequired.Message)
		},
		role,
	)
}

func (h *Handler) RequireHR() func(http.Handler) http.Handler {
	return h.RequireRole(user.RoleHR)
}
