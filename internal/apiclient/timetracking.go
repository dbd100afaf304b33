package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/timetracking"
)

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

func (c *Client) CreateRecord(ctx context.Context, payload timetracking.Create) (*timetracking.Record, error) {
	var record timetracking.Record
	if err := c.send(ctx, http.MethodPost, "/time-tracking/", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRecords returns the caller's records, newest first.
func (c *Client) ListRecords(ctx context.Context, limit, offset int) (*timetracking.Page, error) {
	var page timetracking.Page
	if err := c.get(ctx, "/time-tracking/", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ListUserRecords(ctx context.Context, userID string, limit, offset int) (*timetracking.Page, error) {
	var page timetracking.Page
	path := "/time-tracking/user/" + userID
	if err := c.get(ctx, path, pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchRecords looks up records by employee; either userID or fullName may be empty.
func (c *Client) SearchRecords(ctx context.Context, userID, fullName string, limit, offset int) ([]timetracking.Record, error) {
	q := pageQuery(limit, offset)
	if userID != "" {
		q.Set("user_id", userID)
	}
	if fullName != "" {
		q.Set("user_full_name", fullName)
	}

	var records []timetracking.Record
	if err := c.get(ctx, "/time-tracking/search", q, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) WeeklyHours(ctx context.Context, weekStart time.Time) (*timetracking.WeeklyHours, error) {
	q := url.Values{}
	q.Set("week_start", weekStart.Format("2006-01-02"))

	var summary timetracking.WeeklyHours
	if err := c.get(ctx, "/time-tracking/weekly", q, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) MonthlyHours(ctx context.Context, year int, month time.Month) (*timetracking.MonthlyHours, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(int(month)))

	var summary timetracking.MonthlyHours
	if err := c.get(ctx, "/time-tracking/monthly", q, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
