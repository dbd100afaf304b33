// Package timetracking drives the clock toggle and the record views.
package timetracking

import (
	"context"
	"time"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
)

type ServiceAPI interface {
	Toggle(ctx context.Context, description string) (*timetracking.Record, error)
	NextRecordType(ctx context.Context) (timetracking.RecordType, error)
	ListOwn(ctx context.Context, page pagination.Page) ([]timetracking.Record, pagination.Page, error)
	ListForUser(ctx context.Context, userID string, page pagination.Page) ([]timetracking.Record, pagination.Page, error)
	Search(ctx context.Context, fullName string, page pagination.Page) ([]timetracking.Record, pagination.Page, error)
	Weekly(ctx context.Context, ref time.Time) (*timetracking.WeeklyHours, error)
	Monthly(ctx context.Context, ref time.Time) (*timetracking.MonthlyHours, error)
}

// UpstreamAPI is the slice of the REST client used here. Calls authenticate with the token on ctx.
type UpstreamAPI interface {
	CreateRecord(ctx context.Context, payload timetracking.Create) (*timetracking.Record, error)
	ListRecords(ctx context.Context, limit, offset int) (*timetracking.Page, error)
	ListUserRecords(ctx context.Context, userID string, limit, offset int) (*timetracking.Page, error)
	SearchRecords(ctx context.Context, userID, fullName string, limit, offset int) ([]timetracking.Record, error)
	WeeklyHours(ctx context.Context, weekStart time.Time) (*timetracking.WeeklyHours, error)
	MonthlyHours(ctx context.Context, year int, month time.Month) (*timetracking.MonthlyHours, error)
}

const (
	FilterAll      = "all"
	FilterCheckIn  = string(timetracking.CheckIn)
	FilterCheckOut = string(timetracking.CheckOut)
)

// NextRecordTypeByParity alternates on the number of records already made: even means the
// next one is a CHECK_IN.
func NextRecordTypeByParity(n int) timetracking.RecordType {
	if n%2 == 0 {
		return timetracking.CheckIn
	}
	return timetracking.CheckOut
}

// FilterByType keeps records of the given type; FilterAll or "" keeps everything.
func FilterByType(records []timetracking.Record, filter string) []timetracking.Record {
	if filter == "" || filter == FilterAll {
		return records
	}
	filtered := make([]timetracking.Record, 0, len(records))
	for _, r := range records {
		if string(r.RecordType) == filter {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// WeekStart is the Monday of the week containing t, at midnight in t's zone.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
