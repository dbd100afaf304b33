package timeoff_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/timeoff"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var _ = Describe("Handler", func() {
	var (
		upstream *fakeUpstream
		router   *chi.Mux
	)

	BeforeEach(func() {
		upstream = newFakeUpstream()
		service := timeoff.NewService(upstream, &recordingPublisher{}, logger.Discard())

		renderer, err := web.NewRenderer(time.UTC)
		Expect(err).NotTo(HaveOccurred())
		handler := timeoff.NewHandler(transport.NewBaseHandler(logger.Discard(), renderer), service, 10)

		router = chi.NewRouter()
		router.Get("/time-off", handler.List)
		router.Post("/time-off", handler.Create)
		router.Post("/time-off/{id}/review", handler.Review)
	})

	as := func(role user.Role, req *http.Request) *httptest.ResponseRecorder {
		ctx := internal.ContextWithPrincipal(context.Background(), &internal.Principal{UserID: "x", Role: role})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req.WithContext(ctx))
		return w
	}

	postForm := func(path string, values url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	It("shows review actions to HR only", func() {
		w := as(user.RoleHR, httptest.NewRequest(http.MethodGet, "/time-off", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("/time-off/t-1/review"))

		w = as(user.RoleEmployee, httptest.NewRequest(http.MethodGet, "/time-off", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("/time-off/t-1/review"))
	})

	It("redirects after a valid request", func() {
		w := as(user.RoleEmployee, postForm("/time-off", url.Values{
			"start_date": {"2026-04-06"},
			"end_date":   {"2026-04-07"},
			"leave_type": {"SICK"},
			"reason":     {"flu"},
		}))
		Expect(w.Code).To(Equal(http.StatusSeeOther))
		Expect(w.Header().Get("Location")).To(Equal("/time-off"))
		Expect(upstream.created).To(HaveLen(1))
		Expect(upstream.created[0].DaysRequested).To(Equal(2.0))
	})

	It("re-renders the form with field errors", func() {
		w := as(user.RoleEmployee, postForm("/time-off", url.Values{"start_date": {"2026-04-06"}, "end_date": {"2026-04-01"}}))
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(w.Body.String()).To(ContainSubstring("Please fix the highlighted fields"))
		Expect(upstream.created).To(BeEmpty())
	})

	It("renders the reviewed request in place", func() {
		w := as(user.RoleHR, postForm("/time-off/t-1/review", url.Values{"status": {"APPROVED"}}))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Time-off request Approved"))
		Expect(w.Body.String()).NotTo(ContainSubstring("/time-off/t-1/review"))
	})
})
