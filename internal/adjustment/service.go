package adjustment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/events"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

type Service struct {
	api       UpstreamAPI
	publisher events.Publisher
	loc       *time.Location
	logger    *slog.Logger
}

func NewService(api UpstreamAPI, publisher events.Publisher, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{api: api, publisher: publisher, loc: loc, logger: logger}
}

func (s *Service) Create(ctx context.Context, form CreateForm) (*adjustment.Adjustment, error) {
	form.Reason = strings.TrimSpace(form.Reason)
	payload, verr := form.ToCreate(s.loc)
	if verr != nil {
		return nil, verr
	}
	return s.api.CreateAdjustment(ctx, payload)
}

func (s *Service) List(ctx context.Context) ([]adjustment.Adjustment, error) {
	return s.api.ListAdjustments(ctx)
}

// Review records the HR decision. The result is nil when the backend acknowledged without a body.
func (s *Service) Review(ctx context.Context, id string, form ReviewForm) (*adjustment.Adjustment, error) {
	form.Comment = strings.TrimSpace(form.Comment)
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	status := adjustment.Status(form.Status)
	reviewed, err := s.api.ReviewAdjustment(ctx, id, status, form.Comment)
	if err != nil {
		return nil, err
	}

	ownerID := ""
	if reviewed != nil {
		ownerID = reviewed.UserID
	}
	event := events.NewAdjustmentReviewedEvent(id, ownerID, internal.UserIDFromContext(ctx), string(status), form.Comment)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish review event", "adjustment_id", id, "error", err)
		}
	}

	logger.From(ctx).Info("adjustment reviewed", "adjustment_id", id, "status", string(status))
	return reviewed, nil
}
