// Package timeoff handles leave requests and their HR review.
package timeoff

import (
	"context"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
)

type ServiceAPI interface {
	Create(ctx context.Context, form CreateForm) (*timeoff.Request, error)
	List(ctx context.Context) ([]timeoff.Request, error)
	Review(ctx context.Context, id string, form ReviewForm) (*timeoff.Request, error)
}

type UpstreamAPI interface {
	CreateTimeOff(ctx context.Context, payload timeoff.Create) (*timeoff.Request, error)
	ListTimeOff(ctx context.Context) ([]timeoff.Request, error)
	GetTimeOff(ctx context.Context, id string) (*timeoff.Request, error)
	UpdateTimeOff(ctx context.Context, id string, payload timeoff.Update) (*timeoff.Request, error)
}

// Merge replaces the request with the server's copy, or patches status and comment when
// there is none. Last write wins.
func Merge(list []timeoff.Request, id string, reviewed *timeoff.Request, status timeoff.Status, comment string) []timeoff.Request {
	merged := make([]timeoff.Request, len(list))
	copy(merged, list)

	for i := range merged {
		if merged[i].ID != id {
			continue
		}
		if reviewed != nil {
			merged[i] = *reviewed
			continue
		}
		merged[i].Status = status
		if comment != "" {
			c := comment
			merged[i].ReviewComment = &c
		}
	}
	return merged
}
