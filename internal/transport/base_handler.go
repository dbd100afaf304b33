package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger   *slog.Logger
	Renderer *web.Renderer
	// OnUnauthorized ends the session when the upstream rejects the token mid-session.
	OnUnauthorized func(w http.ResponseWriter, r *http.Request)
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger, renderer *web.Renderer) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg, Renderer: renderer}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": message,
	})
}

// Render fills in the viewer and any pending toast, then writes the page.
func (h *BaseHandler) Render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page) {
	if page.Viewer == nil {
		page.Viewer, _ = internal.PrincipalFromContext(r.Context())
	}
	// the pending toast is consumed either way; one set by the handler takes its place
	pending := web.PopFlash(w, r)
	if page.Flash == nil {
		page.Flash = pending
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, name, page); err != nil {
		logger.From(r.Context()).Error("failed to render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError shows the generic error page.
func (h *BaseHandler) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.Render(w, r, status, "error", web.Page{
		Title: http.StatusText(status),
		Data:  ErrorView{Status: status, Message: message},
	})
}

type ErrorView struct {
	Status  int
	Message string
}

// Redirect answers with 303 See Other, queueing flash for the next page.
func (h *BaseHandler) Redirect(w http.ResponseWriter, r *http.Request, to string, flash *web.Flash) {
	web.SetFlash(w, flash)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// Fail turns err into an error toast and redirects. An upstream 401 ends the session instead.
func (h *BaseHandler) Fail(w http.ResponseWriter, r *http.Request, to string, err error, action string) {
	if apiclient.IsUnauthorized(err) && h.OnUnauthorized != nil {
		logger.From(r.Context()).Warn("upstream rejected session token", "error", err)
		h.OnUnauthorized(w, r)
		return
	}
	logger.From(r.Context()).Error(action, "error", err)
	h.Redirect(w, r, to, web.Failure(ErrorMessage(err, action)))
}

// ErrorMessage is the user-facing text for err, prefixed by what was being attempted.
func ErrorMessage(err error, action string) string {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		return appErr.GetDetailedMessage()
	}

	if action == "" {
		return apiclient.Message(err)
	}
	if !apiclient.HasMessage(err) {
		return action
	}
	return action + ": " + apiclient.Message(err)
}
