package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
)

func (c *Client) CreateAdjustment(ctx context.Context, payload adjustment.Create) (*adjustment.Adjustment, error) {
	var adj adjustment.Adjustment
	if err := c.send(ctx, http.MethodPost, "/time-adjustments/", payload, &adj); err != nil {
		return nil, err
	}
	return &adj, nil
}

// ListAdjustments returns the caller's requests, or every request for HR.
func (c *Client) ListAdjustments(ctx context.Context) ([]adjustment.Adjustment, error) {
	var list []adjustment.Adjustment
	if err := c.get(ctx, "/time-adjustments/", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReviewAdjustment sends the decision as query parameters. A nil result with a nil error means
// the backend acknowledged without a body.
func (c *Client) ReviewAdjustment(ctx context.Context, id string, status adjustment.Status, comment string) (*adjustment.Adjustment, error) {
	q := url.Values{}
	q.Set("new_status", string(status))
	if comment != "" {
		q.Set("review_comment", comment)
	}

	req := request{
		method: http.MethodPut,
		path:   "/time-adjustments/" + id + "/review",
		query:  q,
	}

	var adj adjustment.Adjustment
	if err := c.do(ctx, req, &adj); err != nil {
		return nil, err
	}
	if adj.ID == "" {
		return nil, nil
	}
	return &adj, nil
}
