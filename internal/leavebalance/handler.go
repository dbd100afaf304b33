package leavebalance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/timeoff"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
)

// UserLister feeds the employee picker on the HR create form.
type UserLister interface {
	ListUsers(ctx context.Context) ([]user.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Users    UserLister
	PageSize int
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, users UserLister, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = internal.DefaultPageSize
	}
	return &Handler{BaseHandler: base, Service: svc, Users: users, PageSize: pageSize}
}

type View struct {
	Mine       *leavebalance.Balance
	Balances   []leavebalance.Balance
	Page       pagination.Page
	Users      []user.User
	LeaveTypes []string
	Year       int
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.Page{})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/leave-balances", web.Failure("invalid form submission"))
		return
	}
	form := CreateForm{
		UserID:        r.PostForm.Get("user_id"),
		LeaveType:     r.PostForm.Get("leave_type"),
		Year:          r.PostForm.Get("year"),
		RemainingDays: r.PostForm.Get("remaining_days"),
		TotalDays:     r.PostForm.Get("total_days"),
	}

	if _, err := h.Service.Create(r.Context(), form); err != nil {
		h.formError(w, r, err, "could not create leave balance")
		return
	}
	h.Redirect(w, r, "/leave-balances", web.Success("Leave balance created"))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/leave-balances", web.Failure("invalid form submission"))
		return
	}
	form := UpdateForm{
		RemainingDays: r.PostForm.Get("remaining_days"),
		LeaveType:     r.PostForm.Get("leave_type"),
		Year:          r.PostForm.Get("year"),
	}

	if _, err := h.Service.Update(r.Context(), id, form); err != nil {
		h.formError(w, r, err, "could not update leave balance")
		return
	}
	h.Redirect(w, r, "/leave-balances", web.Success("Leave balance updated"))
}

// Accrue runs the accrual for the employee whose id is in the path.
func (h *Handler) Accrue(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	b, err := h.Service.Accrue(r.Context(), userID)
	if err != nil {
		h.Fail(w, r, "/leave-balances", err, "could not accrue leave")
		return
	}
	h.Redirect(w, r, "/leave-balances", web.Success(fmt.Sprintf("Accrued: %g days remaining", b.RemainingDays)))
}

func (h *Handler) formError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var appErr *internal.AppError
	if errors.As(err, &appErr) && appErr.Type == internal.ErrorTypeValidation {
		h.render(w, r, http.StatusUnprocessableEntity, web.Page{
			Flash:  web.Failure(appErr.GetDetailedMessage()),
			Errors: appErr.FieldErrors(),
			Form:   r.PostForm,
		})
		return
	}
	h.Fail(w, r, "/leave-balances", err, action)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page web.Page) {
	ctx := r.Context()
	principal, _ := internal.PrincipalFromContext(ctx)

	mine, err := h.Service.Mine(ctx)
	if err != nil {
		h.Fail(w, r, "/", err, "could not load leave balance")
		return
	}
	view := View{
		Mine:       mine,
		LeaveTypes: timeoff.LeaveTypes(),
		Year:       time.Now().In(h.Renderer.Location()).Year(),
	}

	if principal.IsHR() {
		all, err := h.Service.List(ctx)
		if err != nil {
			h.Fail(w, r, "/", err, "could not load leave balances")
			return
		}
		view.Balances, view.Page = pagination.Slice(all, pagination.FromQuery(r.URL.Query(), h.PageSize))

		if h.Users != nil {
			if users, err := h.Users.ListUsers(ctx); err == nil {
				view.Users = users
			}
		}
	}

	if page.Form == nil {
		page.Form = map[string][]string{"year": {strconv.Itoa(view.Year)}}
	}
	page.Title = "Leave balances"
	page.Active = "leave-balances"
	page.Data = view
	h.Render(w, r, status, "leavebalances", page)
}
