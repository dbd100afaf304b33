package timeoff

import (
	"time"

	errors "github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/common/validation"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
)

var leaveTypeNames = []string{
	string(timeoff.LeaveVacation),
	string(timeoff.LeaveSick),
	string(timeoff.LeavePersonal),
	string(timeoff.LeaveOther),
}

func LeaveTypes() []string {
	return leaveTypeNames
}

type CreateForm struct {
	StartDate string
	EndDate   string
	LeaveType string
	Reason    string
}

// DaysBetween counts calendar days from start to end, both included.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours()/24 + 1
}

func (f CreateForm) ToCreate() (timeoff.Create, *errors.AppError) {
	v := validation.NewValidator()
	v.Field("start_date", f.StartDate).Required().Date()
	v.Field("end_date", f.EndDate).Required().Date().NotBefore(f.StartDate, "end_date must not be before start_date")
	v.Field("leave_type", f.LeaveType).OneOf(errors.ErrCodeInvalidLeaveType, leaveTypeNames...)
	v.Field("reason", f.Reason).Required().MaxLength(500)
	if err := v.Validate(); err != nil {
		return timeoff.Create{}, err
	}

	start, _ := time.Parse(validation.DateLayout, f.StartDate)
	end, _ := time.Parse(validation.DateLayout, f.EndDate)
	return timeoff.Create{
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		LeaveType:     timeoff.LeaveType(f.LeaveType),
		DaysRequested: DaysBetween(start, end),
		Reason:        f.Reason,
	}, nil
}

type ReviewForm struct {
	Status  string
	Comment string
}

func (f ReviewForm) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(errors.ErrCodeInvalidStatus, string(timeoff.StatusApproved), string(timeoff.StatusRejected))
	v.Field("review_comment", f.Comment).MaxLength(500)
	return v.Validate()
}
