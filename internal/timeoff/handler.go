package timeoff

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/request"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
)

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	PageSize int
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = internal.DefaultPageSize
	}
	return &Handler{BaseHandler: base, Service: svc, PageSize: pageSize}
}

type View struct {
	Table      request.TableView
	LeaveTypes []string
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		h.Fail(w, r, "/", err, "could not load time-off requests")
		return
	}
	h.render(w, r, http.StatusOK, list, web.Page{})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/time-off", web.Failure("invalid form submission"))
		return
	}
	form := CreateForm{
		StartDate: r.PostForm.Get("start_date"),
		EndDate:   r.PostForm.Get("end_date"),
		LeaveType: r.PostForm.Get("leave_type"),
		Reason:    r.PostForm.Get("reason"),
	}

	if _, err := h.Service.Create(r.Context(), form); err != nil {
		var appErr *internal.AppError
		if errors.As(err, &appErr) && appErr.Type == internal.ErrorTypeValidation {
			list, lerr := h.Service.List(r.Context())
			if lerr != nil {
				h.Fail(w, r, "/time-off", lerr, "could not load time-off requests")
				return
			}
			h.render(w, r, http.StatusUnprocessableEntity, list, web.Page{
				Flash:  web.Failure("Please fix the highlighted fields"),
				Errors: appErr.FieldErrors(),
				Form:   r.PostForm,
			})
			return
		}
		h.Fail(w, r, "/time-off", err, "could not request time off")
		return
	}
	h.Redirect(w, r, "/time-off", web.Success("Time-off request sent"))
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/time-off", web.Failure("invalid form submission"))
		return
	}
	form := ReviewForm{Status: r.PostForm.Get("status"), Comment: r.PostForm.Get("review_comment")}

	reviewed, err := h.Service.Review(r.Context(), id, form)
	if err != nil {
		h.Fail(w, r, "/time-off", err, "could not review time-off request")
		return
	}

	list, err := h.Service.List(r.Context())
	if err != nil {
		h.Fail(w, r, "/time-off", err, "could not load time-off requests")
		return
	}
	list = Merge(list, id, reviewed, timeoff.Status(form.Status), form.Comment)

	h.render(w, r, http.StatusOK, list, web.Page{
		Flash: web.Success("Time-off request " + request.StatusLabel(form.Status)),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, list []timeoff.Request, page web.Page) {
	principal, _ := internal.PrincipalFromContext(r.Context())

	table := request.NewTableView(request.FromTimeOffs(list), r.URL.Query().Get("status"), pagination.FromQuery(r.URL.Query(), h.PageSize), "/time-off")
	table.ShowOwner = principal.IsHR()
	table.CanReview = principal.IsHR()

	page.Title = "Time off"
	page.Active = "time-off"
	page.Data = View{Table: table, LeaveTypes: LeaveTypes()}
	h.Render(w, r, status, "timeoff", page)
}
