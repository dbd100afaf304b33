package leavebalance_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	datamodel "github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/internal/leavebalance"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type fakeUpstream struct {
	mine     *datamodel.Balance
	mineErr  error
	balances []datamodel.Balance
	created  []datamodel.Create
	updates  map[string]datamodel.Update
	accrued  []string
	err      error
}

func (f *fakeUpstream) MyLeaveBalance(ctx context.Context) (*datamodel.Balance, error) {
	return f.mine, f.mineErr
}

func (f *fakeUpstream) ListLeaveBalances(ctx context.Context) ([]datamodel.Balance, error) {
	return f.balances, f.err
}

func (f *fakeUpstream) CreateLeaveBalance(ctx context.Context, payload datamodel.Create) (*datamodel.Balance, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, payload)
	return &datamodel.Balance{ID: "b-new", UserID: payload.UserID, LeaveType: payload.LeaveType, Year: payload.Year, RemainingDays: payload.RemainingDays}, nil
}

func (f *fakeUpstream) UpdateLeaveBalance(ctx context.Context, id string, payload datamodel.Update) (*datamodel.Balance, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.updates == nil {
		f.updates = map[string]datamodel.Update{}
	}
	f.updates[id] = payload
	return &datamodel.Balance{ID: id, RemainingDays: *payload.RemainingDays}, nil
}

func (f *fakeUpstream) AccrueLeave(ctx context.Context, userID string) (*datamodel.Balance, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.accrued = append(f.accrued, userID)
	return &datamodel.Balance{ID: "b-" + userID, UserID: userID, LeaveType: "VACATION", Year: 2026, RemainingDays: 12.5}, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

var _ = Describe("Service", func() {
	var (
		api       *fakeUpstream
		publisher *recordingPublisher
		svc       *leavebalance.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		api = &fakeUpstream{}
		publisher = &recordingPublisher{}
		svc = leavebalance.NewService(api, publisher, logger.Discard())
		ctx = context.Background()
	})

	Describe("Mine", func() {
		It("treats a missing balance as none", func() {
			api.mineErr = &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "Leave balance not found"}

			b, err := svc.Mine(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(BeNil())
		})

		It("surfaces other failures", func() {
			api.mineErr = &apiclient.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}

			_, err := svc.Mine(ctx)
			Expect(apiclient.Message(err)).To(Equal("boom"))
		})
	})

	Describe("Create", func() {
		It("converts the form into the create payload", func() {
			b, err := svc.Create(ctx, leavebalance.CreateForm{
				UserID:        "u-1",
				LeaveType:     "VACATION",
				Year:          "2026",
				RemainingDays: "15.5",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.ID).To(Equal("b-new"))
			Expect(api.created).To(HaveLen(1))
			Expect(api.created[0].Year).To(Equal(2026))
			Expect(api.created[0].RemainingDays).To(Equal(15.5))
			Expect(api.created[0].TotalDays).To(BeNil())
		})

		It("rejects an invalid form without calling the backend", func() {
			_, err := svc.Create(ctx, leavebalance.CreateForm{
				LeaveType:     "SABBATICAL",
				Year:          "20x6",
				RemainingDays: "-1",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.FieldErrors()).To(HaveKey("user_id"))
			Expect(appErr.FieldErrors()).To(HaveKey("leave_type"))
			Expect(appErr.FieldErrors()).To(HaveKey("year"))
			Expect(appErr.FieldErrors()).To(HaveKey("remaining_days"))
			Expect(api.created).To(BeEmpty())
		})

		DescribeTable("refuses a year outside the calendar",
			func(year string) {
				_, err := svc.Create(ctx, leavebalance.CreateForm{
					UserID:        "u-1",
					LeaveType:     "VACATION",
					Year:          year,
					RemainingDays: "1",
				})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.FieldErrors()).To(HaveKey("year"))
				Expect(api.created).To(BeEmpty())
			},
			Entry("zero", "0"),
			Entry("five digits", "10000"),
			Entry("too long for an int", "99999999999999999999"),
		)
	})

	Describe("Update", func() {
		It("sends only the remaining days when nothing else changes", func() {
			b, err := svc.Update(ctx, "b-9", leavebalance.UpdateForm{RemainingDays: " 4 "})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.RemainingDays).To(Equal(4.0))

			sent := api.updates["b-9"]
			Expect(sent.LeaveType).To(BeNil())
			Expect(sent.Year).To(BeNil())
		})

		It("refuses an overflowing year instead of sending zero", func() {
			_, err := svc.Update(ctx, "b-9", leavebalance.UpdateForm{RemainingDays: "4", Year: "99999999999999999999"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.FieldErrors()).To(HaveKey("year"))
			Expect(api.updates).To(BeEmpty())
		})

		It("requires remaining days", func() {
			_, err := svc.Update(ctx, "b-9", leavebalance.UpdateForm{})
			Expect(err).To(HaveOccurred())
			Expect(api.updates).To(BeEmpty())
		})
	})

	Describe("Accrue", func() {
		It("publishes a leave.accrued event with the new balance", func() {
			b, err := svc.Accrue(ctx, "u-7")
			Expect(err).NotTo(HaveOccurred())
			Expect(b.RemainingDays).To(Equal(12.5))

			Expect(publisher.published).To(HaveLen(1))
			event, ok := publisher.published[0].(*events.LeaveAccruedEvent)
			Expect(ok).To(BeTrue())
			Expect(event.EventType()).To(Equal(events.EventTypeLeaveAccrued))
			Expect(event.UserID).To(Equal("u-7"))
			Expect(event.Year).To(Equal(2026))
		})

		It("does not publish when the backend fails", func() {
			api.err = &apiclient.APIError{StatusCode: http.StatusBadRequest, Message: "already accrued"}

			_, err := svc.Accrue(ctx, "u-7")
			Expect(apiclient.Message(err)).To(Equal("already accrued"))
			Expect(publisher.published).To(BeEmpty())
		})

		It("requires a user id", func() {
			_, err := svc.Accrue(ctx, "")
			Expect(err).To(HaveOccurred())
			Expect(api.accrued).To(BeEmpty())
		})
	})
})
