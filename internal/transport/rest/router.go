package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/timeclock/internal/adjustment"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/auth"
	"github.com/frahmantamala/timeclock/internal/dashboard"
	"github.com/frahmantamala/timeclock/internal/leavebalance"
	"github.com/frahmantamala/timeclock/internal/timeoff"
	"github.com/frahmantamala/timeclock/internal/timetracking"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/middleware"
	"github.com/frahmantamala/timeclock/internal/transport/swagger"
	"github.com/frahmantamala/timeclock/internal/user"
)

// Handlers groups the page handlers mounted by RegisterAllRoutes.
type Handlers struct {
	Base          *transport.BaseHandler
	Auth          *auth.Handler
	Dashboard     *dashboard.Handler
	TimeTracking  *timetracking.Handler
	Adjustments   *adjustment.Handler
	TimeOff       *timeoff.Handler
	LeaveBalances *leavebalance.Handler
	Users         *user.Handler
	Health        *HealthHandler
}

func RegisterAllRoutes(router chi.Router, h Handlers, logger *slog.Logger) {
	// Apply global middleware
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware(logger, func(w http.ResponseWriter, r *http.Request) {
		h.Base.RenderError(w, r, http.StatusInternalServerError, "Something went wrong, please try again")
	}))

	// Upstream contract and its browser
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(apiclient.UpstreamSpec())
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.healthCheckHandler)
		r.Get("/ping", h.Health.pingHandler)
	})

	router.Get("/login", h.Auth.LoginPage)
	router.Post("/login", h.Auth.Login)
	router.Post("/logout", h.Auth.Logout)

	// Everything else needs a live session
	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireSession)

		pr.Get("/", h.Dashboard.Show)

		pr.Get("/time-tracking", h.TimeTracking.Records)
		pr.Post("/time-tracking/clock", h.TimeTracking.Clock)

		pr.Get("/adjustments", h.Adjustments.List)
		pr.Post("/adjustments", h.Adjustments.Create)

		pr.Get("/time-off", h.TimeOff.List)
		pr.Post("/time-off", h.TimeOff.Create)

		pr.Get("/leave-balances", h.LeaveBalances.List)

		pr.Get("/profile", h.Users.Profile)
		pr.Post("/profile", h.Users.UpdateProfile)
		pr.Post("/profile/delete", h.Users.DeleteProfile)

		// HR only
		pr.Group(func(hr chi.Router) {
			hr.Use(h.Auth.RequireHR())

			hr.Post("/adjustments/{id}/review", h.Adjustments.Review)
			hr.Post("/time-off/{id}/review", h.TimeOff.Review)

			hr.Post("/leave-balances", h.LeaveBalances.Create)
			hr.Post("/leave-balances/{id}", h.LeaveBalances.Update)
			hr.Post("/leave-balances/{id}/accrue", h.LeaveBalances.Accrue)

			hr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.Users.List)
				ur.Post("/", h.Users.Create)
				ur.Get("/new", h.Users.NewForm)
				ur.Get("/{id}", h.Users.Edit)
				ur.Post("/{id}", h.Users.Update)
				ur.Post("/{id}/deactivate", h.Users.Deactivate)
				ur.Post("/{id}/delete", h.Users.Delete)
			})

			hr.Get("/employees/{id}/records", h.TimeTracking.EmployeeRecords)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.Base.RenderError(w, r, http.StatusNotFound, "The page you were looking for does not exist")
	})
}
