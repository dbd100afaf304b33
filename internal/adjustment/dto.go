package adjustment

import (
	"time"

	errors "github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/common/validation"
	"github.com/frahmantamala/timeclock/internal/core/datamodel"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
)

// localTimestampLayout is what a datetime-local input submits.
const localTimestampLayout = "2006-01-02T15:04"

type CreateForm struct {
	TimeRecordID      string
	AdjustedTimestamp string
	AdjustedType      string
	Reason            string
}

var typeNames = []string{
	string(adjustment.TypeEntryCorrection),
	string(adjustment.TypeExitCorrection),
	string(adjustment.TypeManualEntry),
	string(adjustment.TypeOther),
}

func Types() []string {
	return typeNames
}

// ToCreate validates the form and reads the timestamp in loc.
func (f CreateForm) ToCreate(loc *time.Location) (adjustment.Create, *errors.AppError) {
	v := validation.NewValidator()
	v.Field("time_record_id", f.TimeRecordID).Required()
	v.Field("adjusted_timestamp", f.AdjustedTimestamp).Required().Custom(func(value interface{}) *errors.AppError {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := time.ParseInLocation(localTimestampLayout, s, loc); err != nil {
			return errors.NewValidationFieldError("adjusted_timestamp", "adjusted_timestamp must be a date and time", errors.ErrCodeInvalidDate)
		}
		return nil
	})
	v.Field("adjusted_type", f.AdjustedType).OneOf(errors.ErrCodeValidationFailed, typeNames...)
	v.Field("reason", f.Reason).Required().MaxLength(500)
	if err := v.Validate(); err != nil {
		return adjustment.Create{}, err
	}

	ts, _ := time.ParseInLocation(localTimestampLayout, f.AdjustedTimestamp, loc)
	return adjustment.Create{
		TimeRecordID:      f.TimeRecordID,
		AdjustedTimestamp: datamodel.NewTimestamp(ts),
		AdjustedType:      adjustment.Type(f.AdjustedType),
		Reason:            f.Reason,
	}, nil
}

type ReviewForm struct {
	Status  string
	Comment string
}

func (f ReviewForm) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(errors.ErrCodeInvalidStatus, string(adjustment.StatusApproved), string(adjustment.StatusRejected))
	v.Field("review_comment", f.Comment).MaxLength(500)
	return v.Validate()
}
