package middleware_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal/transport/middleware"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var _ = Describe("RecoveryMiddleware", func() {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	It("hands the response to onPanic", func() {
		called := false
		onPanic := func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		}

		w := httptest.NewRecorder()
		middleware.RecoveryMiddleware(logger.Discard(), onPanic)(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(called).To(BeTrue())
		Expect(w.Code).To(Equal(http.StatusTeapot))
	})

	It("falls back to a plain 500", func() {
		w := httptest.NewRecorder()
		middleware.RecoveryMiddleware(logger.Discard(), nil)(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	It("lets ErrAbortHandler through", func() {
		abort := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})
		Expect(func() {
			middleware.RecoveryMiddleware(logger.Discard(), nil)(abort).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		}).To(PanicWith(http.ErrAbortHandler))
	})
})
