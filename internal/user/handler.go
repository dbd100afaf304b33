package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
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

type ListView struct {
	Users  []user.User
	Page   pagination.Page
	State  string
	States []string
}

type FormView struct {
	Roles   []string
	Account *user.User
}

// Profile handles GET /profile from the session's cached profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())
	h.renderProfile(w, r, http.StatusOK, web.Page{Form: profileValues(principal.Profile)})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/profile", web.Failure("invalid form submission"))
		return
	}
	principal, _ := internal.PrincipalFromContext(r.Context())
	form := ProfileForm{
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
		FullName: r.PostForm.Get("full_name"),
	}

	if _, err := h.Service.UpdateProfile(r.Context(), principal, form); err != nil {
		if fields, ok := validationFields(err); ok {
			h.renderProfile(w, r, http.StatusUnprocessableEntity, web.Page{
				Flash:  web.Failure("Please fix the highlighted fields"),
				Errors: fields,
				Form:   r.PostForm,
			})
			return
		}
		h.Fail(w, r, "/profile", err, "could not update user")
		return
	}
	h.Redirect(w, r, "/profile", web.Success("Your changes have been saved"))
}

// DeleteProfile removes the caller's own account, which also ends the session.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())
	if err := h.Service.DeleteSelf(r.Context(), principal); err != nil {
		h.Fail(w, r, "/profile", err, "could not delete user")
		return
	}
	logger.From(r.Context()).Info("account deleted by its owner")
	h.Redirect(w, r, "/login", web.Success("Your account has been deleted"))
}

// List handles GET /users for HR, optionally filtered by ?state=active|inactive.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.Fail(w, r, "/", err, "could not load users")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = FilterAll
	}
	visible, page := pagination.Slice(FilterByState(users, state), pagination.FromQuery(r.URL.Query(), h.PageSize))

	h.Render(w, r, http.StatusOK, "users", web.Page{
		Title:  "Users",
		Active: "users",
		Data: ListView{
			Users:  visible,
			Page:   page,
			State:  state,
			States: []string{FilterAll, FilterActive, FilterInactive},
		},
	})
}

func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderNew(w, r, http.StatusOK, web.Page{Form: map[string][]string{"role": {string(user.RoleEmployee)}}})
}

// Create submits the registration form. Validation failures re-render the form and never call the backend.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/users/new", web.Failure("invalid form submission"))
		return
	}
	form := RegisterForm{
		Username:            r.PostForm.Get("username"),
		Email:               r.PostForm.Get("email"),
		FullName:            r.PostForm.Get("full_name"),
		Password:            r.PostForm.Get("password"),
		ConfirmPassword:     r.PostForm.Get("confirm_password"),
		Role:                r.PostForm.Get("role"),
		InitialVacationDays: r.PostForm.Get("initial_vacation_days"),
		WeeklyHours:         r.PostForm.Get("weekly_hours"),
		MonthlyHours:        r.PostForm.Get("monthly_hours"),
	}

	resp, err := h.Service.Register(r.Context(), form)
	if err != nil {
		values := r.PostForm
		values.Del("password")
		values.Del("confirm_password")

		if fields, ok := validationFields(err); ok {
			h.renderNew(w, r, http.StatusUnprocessableEntity, web.Page{
				Flash:  web.Failure("Please fix the highlighted fields"),
				Errors: fields,
				Form:   values,
			})
			return
		}
		h.renderNew(w, r, http.StatusOK, web.Page{
			Flash: web.Failure(transport.ErrorMessage(err, "could not create user")),
			Form:  values,
		})
		return
	}

	message := "User created"
	if resp != nil && resp.Message != "" {
		message = resp.Message
	}
	h.Redirect(w, r, "/users", web.Success(message))
}

// Edit handles GET /users/{id}.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	account, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Fail(w, r, "/users", err, "could not load user")
		return
	}
	h.renderEdit(w, r, http.StatusOK, account, web.Page{Form: employeeValues(account)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.Redirect(w, r, "/users/"+id, web.Failure("invalid form submission"))
		return
	}
	principal, _ := internal.PrincipalFromContext(r.Context())
	form := EmployeeForm{
		ProfileForm: ProfileForm{
			Username: r.PostForm.Get("username"),
			Email:    r.PostForm.Get("email"),
			FullName: r.PostForm.Get("full_name"),
		},
		InitialVacationDays: r.PostForm.Get("initial_vacation_days"),
		WeeklyHours:         r.PostForm.Get("weekly_hours"),
		MonthlyHours:        r.PostForm.Get("monthly_hours"),
	}

	if _, err := h.Service.UpdateEmployee(r.Context(), principal, id, form); err != nil {
		if fields, ok := validationFields(err); ok {
			account, gerr := h.Service.Get(r.Context(), id)
			if gerr != nil {
				h.Fail(w, r, "/users", gerr, "could not load user")
				return
			}
			h.renderEdit(w, r, http.StatusUnprocessableEntity, account, web.Page{
				Flash:  web.Failure("Please fix the highlighted fields"),
				Errors: fields,
				Form:   r.PostForm,
			})
			return
		}
		h.Fail(w, r, "/users/"+id, err, "could not update user")
		return
	}
	h.Redirect(w, r, "/users/"+id, web.Success("Employee updated"))
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())
	updated, err := h.Service.Deactivate(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.Fail(w, r, "/users", err, "could not deactivate user")
		return
	}
	name := "User"
	if updated != nil {
		name = updated.DisplayName()
	}
	h.Redirect(w, r, "/users", web.Success(name+" has been deactivated"))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := internal.PrincipalFromContext(r.Context())
	if err := h.Service.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.Fail(w, r, "/users", err, "could not delete user")
		return
	}
	h.Redirect(w, r, "/users", web.Success("User deleted"))
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, status int, page web.Page) {
	principal, _ := internal.PrincipalFromContext(r.Context())
	page.Title = "My profile"
	page.Active = "profile"
	page.Data = FormView{Account: principal.Profile}
	h.Render(w, r, status, "profile", page)
}

func (h *Handler) renderNew(w http.ResponseWriter, r *http.Request, status int, page web.Page) {
	page.Title = "New user"
	page.Active = "users"
	page.Data = FormView{Roles: Roles()}
	h.Render(w, r, status, "user_new", page)
}

func (h *Handler) renderEdit(w http.ResponseWriter, r *http.Request, status int, account *user.User, page web.Page) {
	page.Title = account.DisplayName()
	page.Active = "users"
	page.Data = FormView{Account: account}
	h.Render(w, r, status, "user_edit", page)
}

func validationFields(err error) (map[string]string, bool) {
	var appErr *internal.AppError
	if errors.As(err, &appErr) && appErr.Type == internal.ErrorTypeValidation {
		return appErr.FieldErrors(), true
	}
	return nil, false
}

func profileValues(u *user.User) map[string][]string {
	if u == nil {
		return nil
	}
	return map[string][]string{
		"username":  {u.Username},
		"email":     {u.Email},
		"full_name": {u.FullName},
	}
}

func employeeValues(u *user.User) map[string][]string {
	values := profileValues(u)
	if values == nil {
		return nil
	}
	values["initial_vacation_days"] = []string{number(u.InitialVacationDays)}
	values["weekly_hours"] = []string{number(u.WeeklyHours)}
	values["monthly_hours"] = []string{number(u.MonthlyHours)}
	return values
}

func number(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}
