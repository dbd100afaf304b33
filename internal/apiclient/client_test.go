package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type capturedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          string
}

type fakeUpstream struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     string
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, capturedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          string(data),
	})
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (f *fakeUpstream) last() capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

var _ = Describe("Client", func() {
	var (
		upstream *fakeUpstream
		server   *httptest.Server
		client   *apiclient.Client
		ctx      context.Context
	)

	newClient := func(validate bool) *apiclient.Client {
		c, err := apiclient.NewClient(apiclient.Config{
			BaseURL:           server.URL,
			Timeout:           time.Second,
			ValidateResponses: validate,
		}, logger.Discard())
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	BeforeEach(func() {
		upstream = &fakeUpstream{status: http.StatusOK, body: `{}`}
		server = httptest.NewServer(upstream)
		client = newClient(false)
		ctx = apiclient.WithToken(context.Background(), "tok-123")
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("authentication header", func() {
		It("forwards the bearer token from the context", func() {
			upstream.body = `{"id":"u1","username":"ana","email":"ana@example.com","role":"EMPLOYEE","is_active":true}`

			u, err := client.Me(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("ana"))
			Expect(upstream.last().Authorization).To(Equal("Bearer tok-123"))
			Expect(upstream.last().Path).To(Equal("/users/me"))
		})

		It("omits the header when no token is present", func() {
			upstream.body = `[]`

			_, err := client.ListUsers(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(upstream.last().Authorization).To(BeEmpty())
		})
	})

	Describe("Login", func() {
		It("posts a form-encoded body", func() {
			upstream.body = `{"access_token":"abc","token_type":"bearer"}`

			token, err := client.Login(context.Background(), "ana", "secret1")
			Expect(err).NotTo(HaveOccurred())
			Expect(token.AccessToken).To(Equal("abc"))

			req := upstream.last()
			Expect(req.Method).To(Equal(http.MethodPost))
			Expect(req.Path).To(Equal("/auth/login"))
			Expect(req.ContentType).To(Equal("application/x-www-form-urlencoded"))
			Expect(req.Body).To(Equal("password=secret1&username=ana"))
		})
	})

	Describe("error normalisation", func() {
		It("uses a string detail", func() {
			upstream.status = http.StatusBadRequest
			upstream.body = `{"detail":"Incorrect username or password"}`

			_, err := client.Login(context.Background(), "ana", "bad")
			Expect(err).To(HaveOccurred())
			Expect(apiclient.Message(err)).To(Equal("Incorrect username or password"))

			var apiErr *apiclient.APIError
			Expect(err).To(BeAssignableToTypeOf(apiErr))
		})

		It("joins validation-error messages", func() {
			upstream.status = http.StatusUnprocessableEntity
			upstream.body = `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"loc":["body","username"],"msg":"field required"}]}`

			_, err := client.CreateUser(ctx, user.Create{})
			Expect(apiclient.Message(err)).To(Equal("value is not a valid email address; field required"))
		})

		It("falls back to message", func() {
			upstream.status = http.StatusInternalServerError
			upstream.body = `{"message":"database unavailable"}`

			_, err := client.ListUsers(ctx)
			Expect(apiclient.Message(err)).To(Equal("database unavailable"))
		})

		It("falls back to a generic text for unreadable bodies", func() {
			upstream.status = http.StatusBadGateway
			upstream.body = `<html>bad gateway</html>`

			_, err := client.ListUsers(ctx)
			Expect(apiclient.Message(err)).To(Equal("request failed"))
		})

		It("reports 401 and 404 distinctly", func() {
			upstream.status = http.StatusUnauthorized
			upstream.body = `{"detail":"Could not validate credentials"}`
			_, err := client.Me(ctx)
			Expect(apiclient.IsUnauthorized(err)).To(BeTrue())
			Expect(apiclient.IsNotFound(err)).To(BeFalse())

			upstream.status = http.StatusNotFound
			upstream.body = `{"detail":"User not found"}`
			_, err = client.GetUser(ctx, "missing")
			Expect(apiclient.IsNotFound(err)).To(BeTrue())
		})

		It("wraps transport failures", func() {
			server.Close()

			_, err := client.ListUsers(ctx)
			Expect(err).To(HaveOccurred())
			Expect(apiclient.Message(err)).To(Equal("request failed"))
		})
	})

	Describe("time tracking", func() {
		It("sends pagination as query parameters", func() {
			upstream.body = `{"total":0,"count":0,"limit":5,"offset":10,"results":[]}`

			page, err := client.ListRecords(ctx, 5, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Limit).To(Equal(5))
			Expect(upstream.last().RawQuery).To(Equal("limit=5&offset=10"))
		})

		It("decodes naive timestamps as UTC", func() {
			upstream.body = `{"id":"r1","user_id":"u1","record_type":"CHECK_IN","timestamp":"2024-03-04T08:30:00","create_date":"2024-03-04T08:30:00.123456"}`

			record, err := client.CreateRecord(ctx, timetracking.Create{RecordType: timetracking.CheckIn})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Timestamp.Time).To(Equal(time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC)))

			var sent map[string]interface{}
			Expect(json.Unmarshal([]byte(upstream.last().Body), &sent)).To(Succeed())
			Expect(sent["record_type"]).To(Equal("CHECK_IN"))
		})

		It("formats the weekly summary query", func() {
			upstream.body = `{"hours_worked":12.5,"weekly_limit":40,"over_limit":0}`

			summary, err := client.WeeklyHours(ctx, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.HoursWorked).To(Equal(12.5))
			Expect(upstream.last().RawQuery).To(Equal("week_start=2024-03-04"))
		})
	})

	Describe("ReviewAdjustment", func() {
		It("puts the decision in the query string", func() {
			upstream.body = `{"id":"a1","user_id":"u1","adjusted_timestamp":"2024-03-04T08:00:00","adjusted_type":"ENTRY_CORRECTION","reason":"forgot","status":"APPROVED"}`

			adj, err := client.ReviewAdjustment(ctx, "a1", adjustment.StatusApproved, "ok")
			Expect(err).NotTo(HaveOccurred())
			Expect(adj.Status).To(Equal(adjustment.StatusApproved))

			req := upstream.last()
			Expect(req.Method).To(Equal(http.MethodPut))
			Expect(req.Path).To(Equal("/time-adjustments/a1/review"))
			Expect(req.RawQuery).To(Equal("new_status=APPROVED&review_comment=ok"))
		})

		It("returns nil when the backend answers without a body", func() {
			upstream.body = ``

			adj, err := client.ReviewAdjustment(ctx, "a1", adjustment.StatusRejected, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(adj).To(BeNil())
		})
	})

	Describe("contract validation", func() {
		BeforeEach(func() {
			client = newClient(true)
		})

		It("accepts documented responses", func() {
			upstream.body = `{"id":"b1","user_id":"u1","leave_type":"VACATION","year":2024,"remaining_days":12,"total_days":null}`

			balance, err := client.MyLeaveBalance(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.RemainingDays).To(Equal(12.0))
		})

		It("rejects responses that break the schema", func() {
			upstream.body = `{"id":"b1","leave_type":"VACATION"}`

			_, err := client.MyLeaveBalance(ctx)
			Expect(err).To(HaveOccurred())
			Expect(apiclient.Message(err)).To(Equal("unexpected response from server"))
		})
	})
})
