package user

import "github.com/frahmantamala/timeclock/internal/core/datamodel"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleHR       Role = "RRHH"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleHR
}

// User mirrors the backend's UserOut.
type User struct {
	ID                  string               `json:"id"`
	Username            string               `json:"username"`
	Email               string               `json:"email"`
	FullName            string               `json:"full_name,omitempty"`
	IsActive            bool                 `json:"is_active"`
	RoleID              string               `json:"role_id,omitempty"`
	Role                Role                 `json:"role"`
	InitialVacationDays *float64             `json:"initial_vacation_days,omitempty"`
	WeeklyHours         *float64             `json:"weekly_hours,omitempty"`
	MonthlyHours        *float64             `json:"monthly_hours,omitempty"`
	CreateDate          datamodel.Timestamp  `json:"create_date"`
	UpdateDate          *datamodel.Timestamp `json:"update_date,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

type Create struct {
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	FullName            string   `json:"full_name"`
	Password            string   `json:"password"`
	ConfirmPassword     string   `json:"confirm_password"`
	Role                Role     `json:"role"`
	InitialVacationDays *float64 `json:"initial_vacation_days,omitempty"`
	WeeklyHours         *float64 `json:"weekly_hours,omitempty"`
	MonthlyHours        *float64 `json:"monthly_hours,omitempty"`
}

// Update carries only the fields being changed.
type Update struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Role     *Role   `json:"role,omitempty"`

	InitialVacationDays *float64 `json:"initial_vacation_days,omitempty"`
	WeeklyHours         *float64 `json:"weekly_hours,omitempty"`
	MonthlyHours        *float64 `json:"monthly_hours,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
