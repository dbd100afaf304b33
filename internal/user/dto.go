package user

import (
	"strconv"
	"strings"

	errors "github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/common/validation"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

// RegisterForm is the HR "new employee" form.
type RegisterForm struct {
	Username            string
	Email               string
	FullName            string
	Password            string
	ConfirmPassword     string
	Role                string
	InitialVacationDays string
	WeeklyHours         string
	MonthlyHours        string
}

func Roles() []string {
	return []string{string(user.RoleEmployee), string(user.RoleHR)}
}

// ToCreate trims the text fields before validating them, so length rules apply to what is sent.
func (f RegisterForm) ToCreate() (user.Create, *errors.AppError) {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FullName = strings.TrimSpace(f.FullName)
	f.InitialVacationDays = strings.TrimSpace(f.InitialVacationDays)
	f.WeeklyHours = strings.TrimSpace(f.WeeklyHours)
	f.MonthlyHours = strings.TrimSpace(f.MonthlyHours)

	v := validation.NewValidator()
	v.Field("username", f.Username).Required().MinLength(3)
	v.Field("email", f.Email).Required().Email()
	v.Field("full_name", f.FullName).Required().MinLength(2)
	v.Field("password", f.Password).Required().MinLength(6)
	v.Field("confirm_password", f.ConfirmPassword).Required().MinLength(6).Matches(f.Password, "passwords do not match")
	v.Field("role", f.Role).OneOf(errors.ErrCodeInvalidRole, Roles()...)
	v.Field("initial_vacation_days", f.InitialVacationDays).OptionalDigits()
	v.Field("weekly_hours", f.WeeklyHours).Required().OptionalDigits()
	v.Field("monthly_hours", f.MonthlyHours).OptionalDigits()
	if err := v.Validate(); err != nil {
		return user.Create{}, err
	}

	return user.Create{
		Username:            f.Username,
		Email:               f.Email,
		FullName:            f.FullName,
		Password:            f.Password,
		ConfirmPassword:     f.ConfirmPassword,
		Role:                user.Role(f.Role),
		InitialVacationDays: optionalNumber(f.InitialVacationDays),
		WeeklyHours:         optionalNumber(f.WeeklyHours),
		MonthlyHours:        optionalNumber(f.MonthlyHours),
	}, nil
}

// ProfileForm edits the caller's own account. Blank fields are left unchanged.
type ProfileForm struct {
	Username string
	Email    string
	FullName string
}

func (f ProfileForm) trimmed() ProfileForm {
	return ProfileForm{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		FullName: strings.TrimSpace(f.FullName),
	}
}

func (f ProfileForm) rules(v *validation.ValidationBuilder) {
	if f.Username != "" {
		v.Field("username", f.Username).MinLength(3)
	}
	if f.Email != "" {
		v.Field("email", f.Email).Email()
	}
	if f.FullName != "" {
		v.Field("full_name", f.FullName).MinLength(2)
	}
}

func (f ProfileForm) update() user.Update {
	return user.Update{
		Username: optionalText(f.Username),
		Email:    optionalText(f.Email),
		FullName: optionalText(f.FullName),
	}
}

func (f ProfileForm) ToUpdate() (user.Update, *errors.AppError) {
	f = f.trimmed()
	v := validation.NewValidator()
	f.rules(v)
	if err := v.Validate(); err != nil {
		return user.Update{}, err
	}
	return f.update(), nil
}

// EmployeeForm is the HR edit of another account, including the hour baselines.
type EmployeeForm struct {
	ProfileForm
	InitialVacationDays string
	WeeklyHours         string
	MonthlyHours        string
}

func (f EmployeeForm) ToUpdate() (user.Update, *errors.AppError) {
	profile := f.ProfileForm.trimmed()

	v := validation.NewValidator()
	profile.rules(v)
	v.Field("initial_vacation_days", f.InitialVacationDays).OptionalDigits()
	v.Field("weekly_hours", f.WeeklyHours).Required().OptionalDigits()
	v.Field("monthly_hours", f.MonthlyHours).OptionalDigits()
	if err := v.Validate(); err != nil {
		return user.Update{}, err
	}

	update := profile.update()
	update.InitialVacationDays = optionalNumber(f.InitialVacationDays)
	update.WeeklyHours = optionalNumber(f.WeeklyHours)
	update.MonthlyHours = optionalNumber(f.MonthlyHours)
	return update, nil
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}
