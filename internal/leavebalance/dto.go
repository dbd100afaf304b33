package leavebalance

import (
	"fmt"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/common/validation"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/timeoff"
)

type CreateForm struct {
	UserID        string
	LeaveType     string
	Year          string
	RemainingDays string
	TotalDays     string
}

func (f CreateForm) ToCreate() (leavebalance.Create, *errors.AppError) {
	v := validation.NewValidator()
	v.Field("user_id", f.UserID).Required()
	v.Field("leave_type", f.LeaveType).OneOf(errors.ErrCodeInvalidLeaveType, timeoff.LeaveTypes()...)
	v.Field("year", f.Year).Required().OptionalDigits().Custom(validYear("year"))
	v.Field("remaining_days", f.RemainingDays).Required().NonNegativeNumber()
	v.Field("total_days", f.TotalDays).NonNegativeNumber()
	if err := v.Validate(); err != nil {
		return leavebalance.Create{}, err
	}

	year, _ := strconv.Atoi(f.Year)
	remaining, _ := strconv.ParseFloat(f.RemainingDays, 64)
	payload := leavebalance.Create{
		UserID:        f.UserID,
		LeaveType:     f.LeaveType,
		Year:          year,
		RemainingDays: remaining,
	}
	if f.TotalDays != "" {
		total, _ := strconv.ParseFloat(f.TotalDays, 64)
		payload.TotalDays = &total
	}
	return payload, nil
}

const (
	minYear = 1
	maxYear = 9999
)

// validYear refuses digit strings outside a calendar year, including ones too long for an int.
func validYear(field string) func(interface{}) *errors.AppError {
	return func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		year, err := strconv.Atoi(v)
		if err != nil && !isDigits(v) {
			return nil
		}
		if err != nil || year < minYear || year > maxYear {
			return errors.NewValidationFieldError(field, fmt.Sprintf("%s must be between %d and %d", field, minYear, maxYear), errors.ErrCodeNotNumeric)
		}
		return nil
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UpdateForm is the HR manual adjustment. Blank fields are left untouched.
type UpdateForm struct {
	RemainingDays string
	LeaveType     string
	Year          string
}

func (f UpdateForm) ToUpdate() (leavebalance.Update, *errors.AppError) {
	f.RemainingDays = strings.TrimSpace(f.RemainingDays)

	v := validation.NewValidator()
	v.Field("remaining_days", f.RemainingDays).Required().NonNegativeNumber()
	if f.LeaveType != "" {
		v.Field("leave_type", f.LeaveType).OneOf(errors.ErrCodeInvalidLeaveType, timeoff.LeaveTypes()...)
	}
	v.Field("year", f.Year).OptionalDigits().Custom(validYear("year"))
	if err := v.Validate(); err != nil {
		return leavebalance.Update{}, err
	}

	remaining, _ := strconv.ParseFloat(f.RemainingDays, 64)
	update := leavebalance.Update{RemainingDays: &remaining}
	if f.LeaveType != "" {
		lt := f.LeaveType
		update.LeaveType = &lt
	}
	if f.Year != "" {
		year, _ := strconv.Atoi(f.Year)
		update.Year = &year
	}
	return update, nil
}
