package apiclient

import (
	"context"
	"net/http"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
)

func timeOffPath(id string) string {
	return "/time_off_requests/" + id
}

func (c *Client) CreateTimeOff(ctx context.Context, payload timeoff.Create) (*timeoff.Request, error) {
	var req timeoff.Request
	if err := c.send(ctx, http.MethodPost, "/time_off_requests", payload, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *Client) ListTimeOff(ctx context.Context) ([]timeoff.Request, error) {
	var list []timeoff.Request
	if err := c.get(ctx, "/time_off_requests", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetTimeOff(ctx context.Context, id string) (*timeoff.Request, error) {
	var req timeoff.Request
	if err := c.get(ctx, timeOffPath(id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateTimeOff patches a request; HR uses it to review. A nil result with a nil error means
// the backend acknowledged without a body.
func (c *Client) UpdateTimeOff(ctx context.Context, id string, payload timeoff.Update) (*timeoff.Request, error) {
	var req timeoff.Request
	if err := c.send(ctx, http.MethodPatch, timeOffPath(id), payload, &req); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, nil
	}
	return &req, nil
}
