package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/dashboard"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type fakeClock struct {
	next      timetracking.RecordType
	weeklyErr error
}

func (f *fakeClock) NextRecordType(ctx context.Context) (timetracking.RecordType, error) {
	return f.next, nil
}

func (f *fakeClock) ListOwn(ctx context.Context, page pagination.Page) ([]timetracking.Record, pagination.Page, error) {
	return []timetracking.Record{
		{ID: "r-1", RecordType: timetracking.CheckIn, Timestamp: datamodel.Timestamp{Time: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}, Description: "from the office"},
	}, page, nil
}

func (f *fakeClock) Weekly(ctx context.Context, ref time.Time) (*timetracking.WeeklyHours, error) {
	if f.weeklyErr != nil {
		return nil, f.weeklyErr
	}
	return &timetracking.WeeklyHours{HoursWorked: 42.5, WeeklyLimit: 40, OverLimit: 2.5}, nil
}

func (f *fakeClock) Monthly(ctx context.Context, ref time.Time) (*timetracking.MonthlyHours, error) {
	return &timetracking.MonthlyHours{HoursWorked: 120, MonthlyLimit: 160}, nil
}

// fakeBalances answers after delay unless the context is cancelled first.
type fakeBalances struct{ delay time.Duration }

func (f fakeBalances) Mine(ctx context.Context) (*leavebalance.Balance, error) {
	select {
	case <-time.After(f.delay):
		return &leavebalance.Balance{LeaveType: "VACATION", Year: 2026, RemainingDays: 12}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type fakeAdjustments struct{ calls int }

func (f *fakeAdjustments) List(ctx context.Context) ([]adjustment.Adjustment, error) {
	f.calls++
	return []adjustment.Adjustment{
		{ID: "a-1", Status: adjustment.StatusPending},
		{ID: "a-2", Status: adjustment.StatusApproved},
		{ID: "a-3", Status: adjustment.StatusPending},
	}, nil
}

type fakeTimeOff struct{ calls int }

func (f *fakeTimeOff) List(ctx context.Context) ([]timeoff.Request, error) {
	f.calls++
	return []timeoff.Request{{ID: "t-1", Status: timeoff.StatusPending}}, nil
}

var _ = Describe("Handler", func() {
	var (
		clock       *fakeClock
		adjustments *fakeAdjustments
		timeOff     *fakeTimeOff
		handler     *dashboard.Handler
		unauthed    bool
		balances    fakeBalances
	)

	BeforeEach(func() {
		clock = &fakeClock{next: timetracking.CheckOut}
		adjustments = &fakeAdjustments{}
		timeOff = &fakeTimeOff{}
		unauthed = false
		balances = fakeBalances{}
	})

	JustBeforeEach(func() {
		renderer, err := web.NewRenderer(time.UTC)
		Expect(err).NotTo(HaveOccurred())
		base := transport.NewBaseHandler(logger.Discard(), renderer)
		base.OnUnauthorized = func(w http.ResponseWriter, r *http.Request) {
			unauthed = true
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		}
		handler = dashboard.NewHandler(base, clock, balances, adjustments, timeOff)
	})

	show := func(role user.Role) *httptest.ResponseRecorder {
		ctx := internal.ContextWithPrincipal(context.Background(), &internal.Principal{UserID: "u-1", Role: role})
		w := httptest.NewRecorder()
		handler.Show(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		return w
	}

	It("renders every panel for an employee", func() {
		w := show(user.RoleEmployee)
		Expect(w.Code).To(Equal(http.StatusOK))

		body := w.Body.String()
		Expect(body).To(ContainSubstring("Employee panel"))
		Expect(body).To(ContainSubstring("Clock out"))
		Expect(body).To(ContainSubstring("42.5h"))
		Expect(body).To(ContainSubstring("2.5h over"))
		Expect(body).To(ContainSubstring("120.0h"))
		Expect(body).To(ContainSubstring("12 days"))
		Expect(body).To(ContainSubstring("from the office"))
		Expect(body).NotTo(ContainSubstring("Pending reviews"))
		Expect(adjustments.calls).To(BeZero())
		Expect(timeOff.calls).To(BeZero())
	})

	It("counts pending requests for HR", func() {
		w := show(user.RoleHR)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("2 adjustments · 1 time off"))
	})

	It("still renders when a panel fails", func() {
		clock.weeklyErr = &apiclient.APIError{StatusCode: http.StatusInternalServerError, Message: "stats are down"}

		w := show(user.RoleEmployee)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("stats are down"))
		Expect(w.Body.String()).To(ContainSubstring("Clock out"))
	})

	Context("when a fast panel fails while a slow one is loading", func() {
		BeforeEach(func() {
			balances = fakeBalances{delay: 50 * time.Millisecond}
			clock.weeklyErr = &apiclient.APIError{StatusCode: http.StatusInternalServerError, Message: "stats are down"}
		})

		It("still renders the slow panel", func() {
			w := show(user.RoleEmployee)
			Expect(w.Code).To(Equal(http.StatusOK))

			body := w.Body.String()
			Expect(body).To(ContainSubstring("stats are down"))
			Expect(body).To(ContainSubstring("12 days"))
			Expect(body).To(ContainSubstring("120.0h"))
		})
	})

	It("ends the session when the backend rejects the token", func() {
		clock.weeklyErr = &apiclient.APIError{StatusCode: http.StatusUnauthorized, Message: "expired"}

		w := show(user.RoleEmployee)
		Expect(unauthed).To(BeTrue())
		Expect(w.Code).To(Equal(http.StatusSeeOther))
	})

	It("labels the clock button from the next action", func() {
		Expect(dashboard.View{NextAction: timetracking.CheckIn}.ClockLabel()).To(Equal("Clock in"))
		Expect(dashboard.View{NextAction: timetracking.CheckOut}.ClockLabel()).To(Equal("Clock out"))
	})
})
