package timeoff_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	datamodel "github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/internal/timeoff"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type fakeUpstream struct {
	created []datamodel.Create
	stored  map[string]datamodel.Request
	updates map[string]datamodel.Update
	// emptyUpdate makes UpdateTimeOff acknowledge without a body
	emptyUpdate bool
	getErr      error
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		stored: map[string]datamodel.Request{
			"t-1": {ID: "t-1", UserID: "u-1", Status: datamodel.StatusPending, LeaveType: datamodel.LeaveVacation},
		},
		updates: map[string]datamodel.Update{},
	}
}

func (f *fakeUpstream) CreateTimeOff(ctx context.Context, payload datamodel.Create) (*datamodel.Request, error) {
	f.created = append(f.created, payload)
	return &datamodel.Request{ID: "t-new", Status: datamodel.StatusPending}, nil
}

func (f *fakeUpstream) ListTimeOff(ctx context.Context) ([]datamodel.Request, error) {
	list := make([]datamodel.Request, 0, len(f.stored))
	for _, r := range f.stored {
		list = append(list, r)
	}
	return list, nil
}

func (f *fakeUpstream) GetTimeOff(ctx context.Context, id string) (*datamodel.Request, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.stored[id]
	if !ok {
		return nil, &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "Time off request not found"}
	}
	return &r, nil
}

func (f *fakeUpstream) UpdateTimeOff(ctx context.Context, id string, payload datamodel.Update) (*datamodel.Request, error) {
	f.updates[id] = payload
	r := f.stored[id]
	r.Status = *payload.Status
	r.ReviewComment = payload.ReviewComment
	f.stored[id] = r
	if f.emptyUpdate {
		return nil, nil
	}
	return &r, nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		upstream  *fakeUpstream
		publisher *recordingPublisher
		service   *timeoff.Service
		form      timeoff.CreateForm
	)

	BeforeEach(func() {
		ctx = internal.ContextWithUserID(context.Background(), "hr-1")
		upstream = newFakeUpstream()
		publisher = &recordingPublisher{}
		service = timeoff.NewService(upstream, publisher, logger.Discard())
		form = timeoff.CreateForm{
			StartDate: "2026-04-06",
			EndDate:   "2026-04-10",
			LeaveType: string(datamodel.LeaveVacation),
			Reason:    " Easter ",
		}
	})

	Describe("Create", func() {
		It("computes the requested days inclusively", func() {
			_, err := service.Create(ctx, form)
			Expect(err).NotTo(HaveOccurred())
			Expect(upstream.created).To(HaveLen(1))
			Expect(upstream.created[0].DaysRequested).To(Equal(5.0))
			Expect(upstream.created[0].Reason).To(Equal("Easter"))
		})

		It("counts a single day as one", func() {
			form.EndDate = form.StartDate
			_, err := service.Create(ctx, form)
			Expect(err).NotTo(HaveOccurred())
			Expect(upstream.created[0].DaysRequested).To(Equal(1.0))
		})

		DescribeTable("rejects invalid forms",
			func(mutate func(f *timeoff.CreateForm), field string) {
				mutate(&form)
				_, err := service.Create(ctx, form)

				var appErr *internal.AppError
				Expect(errors.As(err, &appErr)).To(BeTrue())
				Expect(appErr.FieldErrors()).To(HaveKey(field))
				Expect(upstream.created).To(BeEmpty())
			},
			Entry("end before start", func(f *timeoff.CreateForm) { f.EndDate = "2026-04-01" }, "end_date"),
			Entry("bad date", func(f *timeoff.CreateForm) { f.StartDate = "06/04/2026" }, "start_date"),
			Entry("unknown leave type", func(f *timeoff.CreateForm) { f.LeaveType = "SABBATICAL" }, "leave_type"),
			Entry("blank reason", func(f *timeoff.CreateForm) { f.Reason = "" }, "reason"),
		)
	})

	Describe("Review", func() {
		It("patches the status and comment and announces it", func() {
			reviewed, err := service.Review(ctx, "t-1", timeoff.ReviewForm{Status: "APPROVED", Comment: "enjoy"})
			Expect(err).NotTo(HaveOccurred())
			Expect(reviewed.Status).To(Equal(datamodel.StatusApproved))
			Expect(*upstream.updates["t-1"].ReviewComment).To(Equal("enjoy"))

			Expect(publisher.events).To(HaveLen(1))
			event := publisher.events[0].(*events.RequestReviewedEvent)
			Expect(event.EventType()).To(Equal(events.EventTypeTimeOffReviewed))
			Expect(event.OwnerID).To(Equal("u-1"))
			Expect(event.ReviewerID).To(Equal("hr-1"))
		})

		It("omits an empty comment", func() {
			_, err := service.Review(ctx, "t-1", timeoff.ReviewForm{Status: "REJECTED", Comment: "  "})
			Expect(err).NotTo(HaveOccurred())
			Expect(upstream.updates["t-1"].ReviewComment).To(BeNil())
		})

		It("reads the request back when the update has no body", func() {
			upstream.emptyUpdate = true

			reviewed, err := service.Review(ctx, "t-1", timeoff.ReviewForm{Status: "REJECTED"})
			Expect(err).NotTo(HaveOccurred())
			Expect(reviewed).NotTo(BeNil())
			Expect(reviewed.Status).To(Equal(datamodel.StatusRejected))
		})

		It("returns nil when neither update nor read-back has a body", func() {
			upstream.emptyUpdate = true
			upstream.getErr = errors.New("boom")

			reviewed, err := service.Review(ctx, "t-1", timeoff.ReviewForm{Status: "REJECTED"})
			Expect(err).NotTo(HaveOccurred())
			Expect(reviewed).To(BeNil())
		})

		It("still succeeds when publishing fails", func() {
			publisher.err = errors.New("bus down")

			_, err := service.Review(ctx, "t-1", timeoff.ReviewForm{Status: "APPROVED"})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})

var _ = Describe("Merge", func() {
	list := []datamodel.Request{
		{ID: "t-1", Status: datamodel.StatusPending},
		{ID: "t-2", Status: datamodel.StatusPending},
	}

	It("prefers the server's copy", func() {
		merged := timeoff.Merge(list, "t-1", &datamodel.Request{ID: "t-1", Status: datamodel.StatusRejected, Reason: "server"}, datamodel.StatusApproved, "")
		Expect(merged[0].Status).To(Equal(datamodel.StatusRejected))
		Expect(merged[0].Reason).To(Equal("server"))
	})

	It("patches locally without one", func() {
		merged := timeoff.Merge(list, "t-2", nil, datamodel.StatusApproved, "ok")
		Expect(merged[1].Status).To(Equal(datamodel.StatusApproved))
		Expect(*merged[1].ReviewComment).To(Equal("ok"))
		Expect(list[1].ReviewComment).To(BeNil())
	})
})

var _ = Describe("DaysBetween", func() {
	It("includes both ends", func() {
		start := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
		Expect(timeoff.DaysBetween(start, start)).To(Equal(1.0))
		Expect(timeoff.DaysBetween(start, start.AddDate(0, 0, 6))).To(Equal(7.0))
	})
})
