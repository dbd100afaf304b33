package timeoff

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
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

func (s *Service) Create(ctx context.Context, form CreateForm) (*timeoff.Request, error) {
	form.Reason = strings.TrimSpace(form.Reason)
	payload, verr := form.ToCreate()
	if verr != nil {
		return nil, verr
	}
	return s.api.CreateTimeOff(ctx, payload)
}

func (s *Service) List(ctx context.Context) ([]timeoff.Request, error) {
	return s.api.ListTimeOff(ctx)
}

// Review patches the request with the HR decision. When the backend answers without a body the
// request is read back; if that fails too the result is nil.
func (s *Service) Review(ctx context.Context, id string, form ReviewForm) (*timeoff.Request, error) {
	form.Comment = strings.TrimSpace(form.Comment)
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	status := timeoff.Status(form.Status)
	update := timeoff.Update{Status: &status}
	if form.Comment != "" {
		update.ReviewComment = &form.Comment
	}

	reviewed, err := s.api.UpdateTimeOff(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if reviewed == nil {
		if fresh, err := s.api.GetTimeOff(ctx, id); err == nil {
			reviewed = fresh
		} else {
			s.logger.Warn("could not read back reviewed request", "request_id", id, "error", err)
		}
	}

	ownerID := ""
	if reviewed != nil {
		ownerID = reviewed.UserID
	}
	event := events.NewTimeOffReviewedEvent(id, ownerID, internal.UserIDFromContext(ctx), string(status), form.Comment)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish review event", "request_id", id, "error", err)
		}
	}

	logger.From(ctx).Info("time-off request reviewed", "request_id", id, "status", string(status))
	return reviewed, nil
}
