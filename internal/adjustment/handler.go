package adjustment

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/request"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
)

// RecordLister supplies the caller's recent records for the correction form.
type RecordLister interface {
	ListOwn(ctx context.Context, page pagination.Page) ([]timetracking.Record, pagination.Page, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Records  RecordLister
	PageSize int
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI, records RecordLister, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = internal.DefaultPageSize
	}
	return &Handler{BaseHandler: base, Service: svc, Records: records, PageSize: pageSize}
}

type View struct {
	Table   request.TableView
	Types   []string
	Records []timetracking.Record
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		h.Fail(w, r, "/", err, "could not load adjustments")
		return
	}
	h.render(w, r, http.StatusOK, list, web.Page{})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/adjustments", web.Failure("invalid form submission"))
		return
	}
	form := CreateForm{
		TimeRecordID:      r.PostForm.Get("time_record_id"),
		AdjustedTimestamp: r.PostForm.Get("adjusted_timestamp"),
		AdjustedType:      r.PostForm.Get("adjusted_type"),
		Reason:            r.PostForm.Get("reason"),
	}

	_, err := h.Service.Create(r.Context(), form)
	if err != nil {
		var appErr *internal.AppError
		if errors.As(err, &appErr) && appErr.Type == internal.ErrorTypeValidation {
			list, lerr := h.Service.List(r.Context())
			if lerr != nil {
				h.Fail(w, r, "/adjustments", lerr, "could not load adjustments")
				return
			}
			h.render(w, r, http.StatusUnprocessableEntity, list, web.Page{
				Flash:  web.Failure("Please fix the highlighted fields"),
				Errors: appErr.FieldErrors(),
				Form:   r.PostForm,
			})
			return
		}
		h.Fail(w, r, "/adjustments", err, "could not create adjustment")
		return
	}
	h.Redirect(w, r, "/adjustments", web.Success("Adjustment request sent"))
}

// Review applies the HR decision and renders the reconciled list straight away.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/adjustments", web.Failure("invalid form submission"))
		return
	}
	form := ReviewForm{Status: r.PostForm.Get("status"), Comment: r.PostForm.Get("review_comment")}

	reviewed, err := h.Service.Review(r.Context(), id, form)
	if err != nil {
		h.Fail(w, r, "/adjustments", err, "could not review adjustment")
		return
	}

	list, err := h.Service.List(r.Context())
	if err != nil {
		h.Fail(w, r, "/adjustments", err, "could not load adjustments")
		return
	}
	list = Merge(list, id, reviewed, adjustment.Status(form.Status), form.Comment)

	h.render(w, r, http.StatusOK, list, web.Page{
		Flash: web.Success("Adjustment " + request.StatusLabel(form.Status)),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, list []adjustment.Adjustment, page web.Page) {
	principal, _ := internal.PrincipalFromContext(r.Context())

	rows := request.FromAdjustments(list, h.Renderer.Location())
	table := request.NewTableView(rows, r.URL.Query().Get("status"), pagination.FromQuery(r.URL.Query(), h.PageSize), "/adjustments")
	table.ShowOwner = principal.IsHR()
	table.CanReview = principal.IsHR()

	view := View{Table: table, Types: Types()}
	if h.Records != nil {
		if records, _, err := h.Records.ListOwn(r.Context(), pagination.Page{Limit: 20}); err == nil {
			view.Records = records
		}
	}

	page.Title = "Time adjustments"
	page.Active = "adjustments"
	page.Data = view
	h.Render(w, r, status, "adjustments", page)
}
