package leavebalance

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type Service struct {
	api       UpstreamAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(api UpstreamAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{api: api, publisher: publisher, logger: logger}
}

// Mine returns nil without error when no balance exists yet.
func (s *Service) Mine(ctx context.Context) (*leavebalance.Balance, error) {
	b, err := s.api.MyLeaveBalance(ctx)
	if apiclient.IsNotFound(err) {
		return nil, nil
	}
	return b, err
}

func (s *Service) List(ctx context.Context) ([]leavebalance.Balance, error) {
	return s.api.ListLeaveBalances(ctx)
}

func (s *Service) Create(ctx context.Context, form CreateForm) (*leavebalance.Balance, error) {
	payload, verr := form.ToCreate()
	if verr != nil {
		return nil, verr
	}
	return s.api.CreateLeaveBalance(ctx, payload)
}

func (s *Service) Update(ctx context.Context, id string, form UpdateForm) (*leavebalance.Balance, error) {
	update, verr := form.ToUpdate()
	if verr != nil {
		return nil, verr
	}
	b, err := s.api.UpdateLeaveBalance(ctx, id, update)
	if err != nil {
		return nil, err
	}
	logger.From(ctx).Info("leave balance adjusted", "balance_id", id, "remaining_days", *update.RemainingDays)
	return b, nil
}

// Accrue runs the monthly accrual for one employee and announces the new balance.
func (s *Service) Accrue(ctx context.Context, userID string) (*leavebalance.Balance, error) {
	if userID == "" {
		return nil, internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	b, err := s.api.AccrueLeave(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := events.NewLeaveAccruedEvent(userID, b.LeaveType, b.Year, b.RemainingDays)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish accrual event", "user_id", userID, "error", err)
		}
	}
	return b, nil
}
