package adjustment_test

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
	"github.com/frahmantamala/timeclock/internal/adjustment"
	datamodel "github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
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
		upstream = &fakeUpstream{list: []datamodel.Adjustment{
			{ID: "a-1", UserID: "u-1", Status: datamodel.StatusPending, AdjustedType: datamodel.TypeEntryCorrection, Reason: "late bus"},
		}}
		service := adjustment.NewService(upstream, &recordingPublisher{}, time.UTC, logger.Discard())

		renderer, err := web.NewRenderer(time.UTC)
		Expect(err).NotTo(HaveOccurred())
		handler := adjustment.NewHandler(transport.NewBaseHandler(logger.Discard(), renderer), service, nil, 10)

		router = chi.NewRouter()
		router.Get("/adjustments", handler.List)
		router.Post("/adjustments", handler.Create)
		router.Post("/adjustments/{id}/review", handler.Review)
	})

	as := func(role user.Role, req *http.Request) *httptest.ResponseRecorder {
		ctx := internal.ContextWithPrincipal(context.Background(), &internal.Principal{UserID: "x", Role: role})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req.WithContext(ctx))
		return w
	}

	It("shows review actions to HR only", func() {
		w := as(user.RoleHR, httptest.NewRequest(http.MethodGet, "/adjustments", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("/adjustments/a-1/review"))

		w = as(user.RoleEmployee, httptest.NewRequest(http.MethodGet, "/adjustments", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("late bus"))
		Expect(w.Body.String()).NotTo(ContainSubstring("/adjustments/a-1/review"))
	})

	It("re-renders the form with field errors", func() {
		req := httptest.NewRequest(http.MethodPost, "/adjustments", strings.NewReader(url.Values{"reason": {"x"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := as(user.RoleEmployee, req)
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(w.Body.String()).To(ContainSubstring("Please fix the highlighted fields"))
		Expect(upstream.created).To(BeEmpty())
	})

	It("renders the reviewed entry without reloading", func() {
		req := httptest.NewRequest(http.MethodPost, "/adjustments/a-1/review",
			strings.NewReader(url.Values{"status": {"APPROVED"}, "review_comment": {"ok"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := as(user.RoleHR, req)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(upstream.reviewArgs).To(Equal([]string{"a-1", "APPROVED", "ok"}))
		Expect(w.Body.String()).NotTo(ContainSubstring("/adjustments/a-1/review"))
	})
})
