package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal/transport/middleware"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

var _ = Describe("RequestID", func() {
	serve := func(incoming string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if incoming != "" {
			req.Header.Set(middleware.TraceHeader, incoming)
		}
		w := httptest.NewRecorder()
		middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(logger.From(r.Context())).NotTo(BeNil())
		})).ServeHTTP(w, req)
		return w.Header().Get(middleware.TraceHeader)
	}

	It("keeps a well-formed incoming id", func() {
		id := uuid.NewString()
		Expect(serve(id)).To(Equal(id))
	})

	It("replaces a missing or malformed id", func() {
		for _, incoming := range []string{"", "<script>alert(1)</script>"} {
			traceID := serve(incoming)
			_, err := uuid.Parse(traceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(traceID).NotTo(Equal(incoming))
		}
	})
})
