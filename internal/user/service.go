package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type Service struct {
	api       UpstreamAPI
	sessions  SessionAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(api UpstreamAPI, sessions SessionAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{api: api, sessions: sessions, publisher: publisher, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.api.ListUsers(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*user.User, error) {
	return s.api.GetUser(ctx, id)
}

// Register validates the whole form first; an invalid form never reaches the backend.
func (s *Service) Register(ctx context.Context, form RegisterForm) (*user.RegisterResponse, error) {
	payload, verr := form.ToCreate()
	if verr != nil {
		return nil, verr
	}
	resp, err := s.api.CreateUser(ctx, payload)
	if err != nil {
		return nil, err
	}
	logger.From(ctx).Info("user registered", "username", payload.Username, "role", payload.Role)
	return resp, nil
}

func (s *Service) UpdateProfile(ctx context.Context, p *internal.Principal, form ProfileForm) (*user.User, error) {
	update, verr := form.ToUpdate()
	if verr != nil {
		return nil, verr
	}
	return s.sessions.UpdateUser(ctx, p, p.UserID, update)
}

func (s *Service) UpdateEmployee(ctx context.Context, p *internal.Principal, userID string, form EmployeeForm) (*user.User, error) {
	update, verr := form.ToUpdate()
	if verr != nil {
		return nil, verr
	}
	return s.sessions.UpdateUser(ctx, p, userID, update)
}

// Deactivate is the soft delete: the account stays but can no longer sign in.
func (s *Service) Deactivate(ctx context.Context, p *internal.Principal, userID string) (*user.User, error) {
	if userID == p.UserID {
		return nil, ErrSelfAction
	}
	inactive := false
	updated, err := s.sessions.UpdateUser(ctx, p, userID, user.Update{IsActive: &inactive})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewUserDeactivatedEvent(userID, p.UserID)); err != nil {
			s.logger.Warn("failed to publish deactivation event", "user_id", userID, "error", err)
		}
	}
	return updated, nil
}

// Delete removes an account. HR may not delete itself from the management screen;
// the profile page goes through DeleteSelf instead.
func (s *Service) Delete(ctx context.Context, p *internal.Principal, userID string) error {
	if userID == p.UserID {
		return ErrSelfAction
	}
	return s.sessions.DeleteUser(ctx, p, userID)
}

func (s *Service) DeleteSelf(ctx context.Context, p *internal.Principal) error {
	return s.sessions.DeleteUser(ctx, p, p.UserID)
}

var ErrSelfAction = internal.NewForbiddenError("You cannot do this to your own account", internal.ErrCodeSelfAction)
