// Package dashboard renders the landing page: clock button, hour summaries and recent activity.
package dashboard

import (
	"context"
	"time"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
)

type Clock interface {
	NextRecordType(ctx context.Context) (timetracking.RecordType, error)
	ListOwn(ctx context.Context, page pagination.Page) ([]timetracking.Record, pagination.Page, error)
	Weekly(ctx context.Context, ref time.Time) (*timetracking.WeeklyHours, error)
	Monthly(ctx context.Context, ref time.Time) (*timetracking.MonthlyHours, error)
}

type Balances interface {
	Mine(ctx context.Context) (*leavebalance.Balance, error)
}

type Adjustments interface {
	List(ctx context.Context) ([]adjustment.Adjustment, error)
}

type TimeOff interface {
	List(ctx context.Context) ([]timeoff.Request, error)
}

type View struct {
	NextAction     timetracking.RecordType
	Weekly         *timetracking.WeeklyHours
	Monthly        *timetracking.MonthlyHours
	Balance        *leavebalance.Balance
	Recent         []timetracking.Record
	PendingAdjust  int
	PendingTimeOff int
	LoadFailed     bool
}

func (v View) ClockLabel() string {
	if v.NextAction == timetracking.CheckOut {
		return "Clock out"
	}
	return "Clock in"
}

func countPendingAdjustments(list []adjustment.Adjustment) int {
	n := 0
	for _, a := range list {
		if a.Status == adjustment.StatusPending {
			n++
		}
	}
	return n
}

func countPendingTimeOff(list []timeoff.Request) int {
	n := 0
	for _, r := range list {
		if r.Status == timeoff.StatusPending {
			n++
		}
	}
	return n
}
