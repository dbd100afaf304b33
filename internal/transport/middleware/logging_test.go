package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal/transport/middleware"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var _ = Describe("LoggingMiddleware", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
		logger.InitWithWriter(out, "production", "debug")
		DeferCleanup(func() { logger.Init("development", "error") })
	})

	serve := func(req *http.Request, next http.HandlerFunc) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		middleware.LoggingMiddleware(next).ServeHTTP(w, req)
		return w
	}

	It("masks credentials in form bodies and headers", func() {
		form := url.Values{"username": {"ana"}, "password": {"hunter2"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Cookie", "timeclock_session=abc123")

		var seen string
		serve(req, func(w http.ResponseWriter, r *http.Request) {
			Expect(r.ParseForm()).To(Succeed())
			seen = r.PostForm.Get("password")
			http.Redirect(w, r, "/", http.StatusSeeOther)
		})

		Expect(seen).To(Equal("hunter2"))
		logged := out.String()
		Expect(logged).To(ContainSubstring("username=ana"))
		Expect(logged).NotTo(ContainSubstring("hunter2"))
		Expect(logged).NotTo(ContainSubstring("abc123"))
		Expect(logged).To(ContainSubstring(`"location":"/"`))
		Expect(logged).To(ContainSubstring(`"status_code":303`))
	})

	It("masks nested JSON fields in responses", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
		serve(req, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"user":{"name":"ana","access_token":"jwt-value"}}`))
		})

		logged := out.String()
		Expect(logged).To(ContainSubstring("ana"))
		Expect(logged).NotTo(ContainSubstring("jwt-value"))
	})

	It("logs only the size of HTML responses", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		serve(req, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<p>secret page</p>"))
		})

		logged := out.String()
		Expect(logged).NotTo(ContainSubstring("secret page"))
		Expect(logged).To(ContainSubstring(`"response_size":18`))
	})

	It("logs client errors at warn level", func() {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		serve(req, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		Expect(out.String()).To(ContainSubstring(`"level":"WARN"`))
	})
})
