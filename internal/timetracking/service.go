package timetracking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

// lookupLimit bounds how many recent records the toggle inspects.
const lookupLimit = 50

type Service struct {
	api    UpstreamAPI
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger

	// serialises toggles per user so a double submit cannot emit the same type twice
	locks sync.Map
}

func NewService(api UpstreamAPI, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		api:    api,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Toggle records the opposite of the user's last clock event today.
func (s *Service) Toggle(ctx context.Context, description string) (*timetracking.Record, error) {
	userID := internal.UserIDFromContext(ctx)
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	next, err := s.NextRecordType(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.api.CreateRecord(ctx, timetracking.Create{
		RecordType:  next,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("clock event recorded", "record_type", string(next), "record_id", record.ID)
	return record, nil
}

// NextRecordType asks the server for recent records and looks at the latest one from today.
// When the records carry no timestamps it falls back to parity of the total.
func (s *Service) NextRecordType(ctx context.Context) (timetracking.RecordType, error) {
	page, err := s.api.ListRecords(ctx, lookupLimit, 0)
	if err != nil {
		return "", fmt.Errorf("failed to look up last record: %w", err)
	}

	records := page.Results
	for _, r := range records {
		if r.Timestamp.IsZero() {
			s.logger.Warn("records without timestamps, falling back to parity", "total", page.Total)
			return NextRecordTypeByParity(page.Total), nil
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp.Time)
	})

	today := s.now().In(s.loc)
	for _, r := range records {
		if !sameDay(r.Timestamp.In(s.loc), today) {
			continue
		}
		if r.RecordType == timetracking.CheckIn {
			return timetracking.CheckOut, nil
		}
		return timetracking.CheckIn, nil
	}
	return timetracking.CheckIn, nil
}

func (s *Service) ListOwn(ctx context.Context, page pagination.Page) ([]timetracking.Record, pagination.Page, error) {
	result, err := s.api.ListRecords(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, page, err
	}
	return result.Results, page.WithTotal(result.Total), nil
}

func (s *Service) ListForUser(ctx context.Context, userID string, page pagination.Page) ([]timetracking.Record, pagination.Page, error) {
	if userID == "" {
		return nil, page, internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	result, err := s.api.ListUserRecords(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, page, err
	}
	return result.Results, page.WithTotal(result.Total), nil
}

// Search returns a bare list upstream, so the window is sliced locally.
func (s *Service) Search(ctx context.Context, fullName string, page pagination.Page) ([]timetracking.Record, pagination.Page, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, page, internal.NewValidationFieldError("q", "enter a name to search", internal.ErrCodeValidationFailed)
	}
	records, err := s.api.SearchRecords(ctx, "", fullName, 0, 0)
	if err != nil {
		return nil, page, err
	}
	window, page := pagination.Slice(records, page)
	return window, page, nil
}

func (s *Service) Weekly(ctx context.Context, ref time.Time) (*timetracking.WeeklyHours, error) {
	return s.api.WeeklyHours(ctx, WeekStart(ref.In(s.loc)))
}

func (s *Service) Monthly(ctx context.Context, ref time.Time) (*timetracking.MonthlyHours, error) {
	local := ref.In(s.loc)
	return s.api.MonthlyHours(ctx, local.Year(), local.Month())
}
