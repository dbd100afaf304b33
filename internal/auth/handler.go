package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	cookie  CookieConfig
}

type CookieConfig struct {
	Name   string
	Secure bool
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = internal.DefaultSessionCookieName
	}
	return &Handler{
		BaseHandler: base,
		Service:     svc,
		cookie:      cookie,
	}
}

// LoginPage shows the form, or sends signed-in users home.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cookie.Name); err == nil {
		if _, err := h.Service.Load(r.Context(), c.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.Render(w, r, http.StatusOK, "login", web.Page{Title: "Sign in"})
}

// Login keeps the user on the login page on any failure; only success redirects.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, http.StatusBadRequest, "invalid form submission", nil)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	sessionID, principal, err := h.Service.Login(r.Context(), username, password)
	if err != nil {
		logger.From(r.Context()).Warn("login failed", "username", username, "error", err)

		var fields map[string]string
		var appErr *internal.AppError
		if errors.As(err, &appErr) {
			fields = appErr.FieldErrors()
		}
		h.renderLoginError(w, r, http.StatusOK, transport.ErrorMessage(err, "could not sign in"), fields)
		return
	}

	h.setCookie(w, sessionID, principal.ExpiresAt)
	h.Redirect(w, r, "/", web.Success("Welcome, "+principal.DisplayName()))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cookie.Name); err == nil {
		if err := h.Service.Logout(r.Context(), c.Value); err != nil {
			logger.From(r.Context()).Error("failed to delete session", "error", err)
		}
	}
	h.clearCookie(w)
	h.Redirect(w, r, "/login", web.Success("You have been signed out"))
}

// EndSession is installed as the upstream-401 hook: the token is no longer accepted.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cookie.Name); err == nil {
		_ = h.Service.Logout(r.Context(), c.Value)
	}
	h.clearCookie(w)
	h.Redirect(w, r, "/login", web.Failure("Your session has expired, please sign in again"))
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, status int, message string, fields map[string]string) {
	form := r.PostForm
	form.Del("password")
	h.Render(w, r, status, "login", web.Page{
		Title:  "Sign in",
		Flash:  web.Failure(message),
		Errors: fields,
		Form:   form,
	})
}

func (h *Handler) setCookie(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
