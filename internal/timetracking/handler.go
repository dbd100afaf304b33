package timetracking

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
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

// RecordsView backs the records table on /time-tracking and /employees/{id}/records.
type RecordsView struct {
	Heading    string
	BasePath   string
	Records    []timetracking.Record
	Page       pagination.Page
	Filter     string
	Query      string
	CanClock   bool
	NextAction timetracking.RecordType
}

func (v RecordsView) Filters() []string {
	return []string{FilterAll, FilterCheckIn, FilterCheckOut}
}

// Records lists the caller's records. HR may pass ?q= to search employees by name instead.
func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pagination.FromQuery(r.URL.Query(), h.PageSize)
	filter := filterFromQuery(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	principal, _ := internal.PrincipalFromContext(ctx)

	view := RecordsView{
		Heading:  "My time records",
		BasePath: "/time-tracking",
		Filter:   filter,
		CanClock: true,
	}

	var (
		records []timetracking.Record
		err     error
	)
	if query != "" && principal.IsHR() {
		view.Heading = fmt.Sprintf("Records matching %q", query)
		view.Query = query
		records, page, err = h.Service.Search(ctx, query, page)
	} else {
		records, page, err = h.Service.ListOwn(ctx, page)
	}
	if err != nil {
		h.Fail(w, r, "/", err, "could not load time records")
		return
	}

	if next, err := h.Service.NextRecordType(ctx); err == nil {
		view.NextAction = next
	} else {
		view.CanClock = false
	}

	view.Records = FilterByType(records, filter)
	view.Page = page
	h.Render(w, r, http.StatusOK, "records", web.Page{Title: "Time tracking", Active: "time-tracking", Data: view})
}

// EmployeeRecords is the HR view of one employee's records.
func (h *Handler) EmployeeRecords(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	page := pagination.FromQuery(r.URL.Query(), h.PageSize)
	filter := filterFromQuery(r)

	records, page, err := h.Service.ListForUser(r.Context(), userID, page)
	if err != nil {
		h.Fail(w, r, "/users", err, "could not load employee records")
		return
	}

	name := userID
	if len(records) > 0 && records[0].UserFullName != "" {
		name = records[0].UserFullName
	}

	view := RecordsView{
		Heading:  "Time records of " + name,
		BasePath: "/employees/" + userID + "/records",
		Records:  FilterByType(records, filter),
		Page:     page,
		Filter:   filter,
	}
	h.Render(w, r, http.StatusOK, "records", web.Page{Title: "Employee records", Active: "users", Data: view})
}

// Clock toggles check-in/check-out and returns to the page the form came from.
func (h *Handler) Clock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/time-tracking", web.Failure("invalid form submission"))
		return
	}
	back := safeReturn(r.PostForm.Get("return"), "/time-tracking")

	record, err := h.Service.Toggle(r.Context(), r.PostForm.Get("description"))
	if err != nil {
		h.Fail(w, r, back, err, "could not record clock event")
		return
	}

	msg := "Checked in"
	if record.RecordType == timetracking.CheckOut {
		msg = "Checked out"
	}
	if !record.Timestamp.IsZero() {
		msg += " at " + record.Timestamp.In(h.Renderer.Location()).Format("15:04")
	}
	h.Redirect(w, r, back, web.Success(msg))
}

func filterFromQuery(r *http.Request) string {
	switch f := r.URL.Query().Get("type"); f {
	case FilterCheckIn, FilterCheckOut:
		return f
	}
	return FilterAll
}

// safeReturn only allows local absolute paths. Browsers read a backslash as a slash, so
// "/\host" would leave the site; any backslash or control character is refused.
func safeReturn(path, fallback string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return fallback
	}
	if strings.ContainsAny(path, "\\\r\n\t") {
		return fallback
	}
	u, err := url.Parse(path)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	return path
}
