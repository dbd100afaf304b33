// Package user serves the profile page and the HR account management screens.
package user

import (
	"context"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
	Register(ctx context.Context, form RegisterForm) (*user.RegisterResponse, error)
	UpdateProfile(ctx context.Context, p *internal.Principal, form ProfileForm) (*user.User, error)
	UpdateEmployee(ctx context.Context, p *internal.Principal, userID string, form EmployeeForm) (*user.User, error)
	Deactivate(ctx context.Context, p *internal.Principal, userID string) (*user.User, error)
	Delete(ctx context.Context, p *internal.Principal, userID string) error
	DeleteSelf(ctx context.Context, p *internal.Principal) error
}

type UpstreamAPI interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	CreateUser(ctx context.Context, payload user.Create) (*user.RegisterResponse, error)
}

// SessionAPI routes profile changes through the session layer so the cached profile stays fresh.
type SessionAPI interface {
	UpdateUser(ctx context.Context, p *internal.Principal, userID string, update user.Update) (*user.User, error)
	DeleteUser(ctx context.Context, p *internal.Principal, userID string) error
}

// Filter values for the HR user list.
const (
	FilterAll      = "all"
	FilterActive   = "active"
	FilterInactive = "inactive"
)

func FilterByState(users []user.User, state string) []user.User {
	if state != FilterActive && state != FilterInactive {
		return users
	}
	want := state == FilterActive
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.IsActive == want {
			out = append(out, u)
		}
	}
	return out
}
